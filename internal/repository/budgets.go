package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dan9191/budget-advisor/internal/models"
)

// BudgetOwner pairs a user's active budget with the user and their settings
type BudgetOwner struct {
	User    models.User
	Profile models.Profile
	Budget  models.Budget
}

// SaveBudget stores a new active budget and deactivates the previous one
func (r *Repository) SaveBudget(ctx context.Context, b *models.Budget) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`UPDATE advisor.budgets SET is_active = FALSE WHERE user_id = $1 AND is_active`, b.UserID); err != nil {
		return fmt.Errorf("failed to deactivate budgets: %w", err)
	}

	query := `
		INSERT INTO advisor.budgets (user_id, monthly_income, monthly_expenses, savings, emergency_fund, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, TRUE, CURRENT_TIMESTAMP)
		RETURNING id, is_active, created_at`
	err = tx.QueryRowContext(ctx, query, b.UserID, b.MonthlyIncome, b.MonthlyExpenses, b.Savings, b.EmergencyFund).
		Scan(&b.ID, &b.IsActive, &b.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create budget: %w", err)
	}

	return tx.Commit()
}

// ActiveBudget returns the newest active budget of a user
func (r *Repository) ActiveBudget(ctx context.Context, userID int64) (*models.Budget, error) {
	b := &models.Budget{UserID: userID}
	query := `
		SELECT id, monthly_income, monthly_expenses, savings, emergency_fund, is_active, created_at
		FROM advisor.budgets
		WHERE user_id = $1 AND is_active
		ORDER BY created_at DESC
		LIMIT 1`
	err := r.db.QueryRowContext(ctx, query, userID).
		Scan(&b.ID, &b.MonthlyIncome, &b.MonthlyExpenses, &b.Savings, &b.EmergencyFund, &b.IsActive, &b.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("active budget of user %d: %w", userID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get active budget: %w", err)
	}
	return b, nil
}

// ListBudgetOwners returns every user that has an active budget
func (r *Repository) ListBudgetOwners(ctx context.Context) ([]BudgetOwner, error) {
	query := `
		SELECT DISTINCT ON (u.id)
			u.id, u.username, u.email, u.created_at,
			p.display_name, p.subscription_tier, p.savings_threshold, p.expense_threshold, p.updated_at,
			b.id, b.monthly_income, b.monthly_expenses, b.savings, b.emergency_fund, b.is_active, b.created_at
		FROM advisor.users u
		JOIN advisor.profiles p ON p.user_id = u.id
		JOIN advisor.budgets b ON b.user_id = u.id AND b.is_active
		ORDER BY u.id, b.created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list budget owners: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var owners []BudgetOwner
	for rows.Next() {
		var o BudgetOwner
		if err := rows.Scan(
			&o.User.ID, &o.User.Username, &o.User.Email, &o.User.CreatedAt,
			&o.Profile.DisplayName, &o.Profile.SubscriptionTier,
			&o.Profile.Thresholds.SavingsRate, &o.Profile.Thresholds.ExpenseRatio, &o.Profile.UpdatedAt,
			&o.Budget.ID, &o.Budget.MonthlyIncome, &o.Budget.MonthlyExpenses, &o.Budget.Savings,
			&o.Budget.EmergencyFund, &o.Budget.IsActive, &o.Budget.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan budget owner: %w", err)
		}
		o.Profile.UserID = o.User.ID
		o.Budget.UserID = o.User.ID
		owners = append(owners, o)
	}
	return owners, rows.Err()
}
