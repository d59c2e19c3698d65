package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dan9191/budget-advisor/internal/models"
	"github.com/lib/pq"
)

var (
	// ErrNotFound is returned when a lookup matches no row
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a unique constraint rejects an insert
	ErrDuplicate = errors.New("already exists")
)

const uniqueViolation = "23505"

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates the schema if it does not exist
func (r *Repository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// CreateUser creates a new user and its default profile
func (r *Repository) CreateUser(ctx context.Context, user *models.User, thresholds models.Thresholds) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO advisor.users (username, email, password_hash, created_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err = tx.QueryRowContext(ctx, query, user.Username, user.Email, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("user %s: %w", user.Email, ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO advisor.profiles (user_id, display_name, subscription_tier, savings_threshold, expense_threshold)
		VALUES ($1, $2, $3, $4, $5)`,
		user.ID, user.Username, models.TierFree, thresholds.SavingsRate, thresholds.ExpenseRatio)
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}

	return tx.Commit()
}

// FindUserByEmail retrieves a user by email
func (r *Repository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, username, email, password_hash, created_at
		FROM advisor.users
		WHERE email = $1`
	err := r.db.QueryRowContext(ctx, query, email).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", email, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// GetProfile retrieves the profile of a user
func (r *Repository) GetProfile(ctx context.Context, userID int64) (*models.Profile, error) {
	p := &models.Profile{UserID: userID}
	query := `
		SELECT display_name, subscription_tier, savings_threshold, expense_threshold, updated_at
		FROM advisor.profiles
		WHERE user_id = $1`
	err := r.db.QueryRowContext(ctx, query, userID).
		Scan(&p.DisplayName, &p.SubscriptionTier, &p.Thresholds.SavingsRate, &p.Thresholds.ExpenseRatio, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("profile of user %d: %w", userID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return p, nil
}

// UpdateProfile stores display name and thresholds. The subscription tier is
// managed by billing and is not changed here.
func (r *Repository) UpdateProfile(ctx context.Context, p *models.Profile) error {
	query := `
		UPDATE advisor.profiles
		SET display_name = $2, savings_threshold = $3, expense_threshold = $4, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = $1
		RETURNING subscription_tier, updated_at`
	err := r.db.QueryRowContext(ctx, query, p.UserID, p.DisplayName, p.Thresholds.SavingsRate, p.Thresholds.ExpenseRatio).
		Scan(&p.SubscriptionTier, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("profile of user %d: %w", p.UserID, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}
