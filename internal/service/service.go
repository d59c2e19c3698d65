package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Dan9191/budget-advisor/internal/config"
	"github.com/Dan9191/budget-advisor/internal/models"
	"github.com/Dan9191/budget-advisor/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPremiumRequired    = errors.New("premium subscription required")
	ErrNoBudget           = errors.New("no active budget")
	ErrAdvisorUnavailable = errors.New("advisor unavailable")
)

// Store is the persistence the service depends on
type Store interface {
	CreateUser(ctx context.Context, user *models.User, thresholds models.Thresholds) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetProfile(ctx context.Context, userID int64) (*models.Profile, error)
	UpdateProfile(ctx context.Context, p *models.Profile) error

	SaveBudget(ctx context.Context, b *models.Budget) error
	ActiveBudget(ctx context.Context, userID int64) (*models.Budget, error)
	ListBudgetOwners(ctx context.Context) ([]repository.BudgetOwner, error)

	CreateDecision(ctx context.Context, d *models.DecisionRecord) error
	ListDecisions(ctx context.Context, userID int64, limit int) ([]models.DecisionRecord, error)
	UpdateDecisionResult(ctx context.Context, id int64, result []byte, tier string) error

	CreateConversation(ctx context.Context, c *models.Conversation) error
	GetConversation(ctx context.Context, id uuid.UUID, userID int64) (*models.Conversation, error)
	AddMessage(ctx context.Context, m *repository.StoredMessage) error
	ListMessages(ctx context.Context, conversationID uuid.UUID) ([]repository.StoredMessage, error)
}

// Advisor answers free-form questions about a budget
type Advisor interface {
	Advise(ctx context.Context, budget *models.BudgetSnapshot, history []models.Message, message string) (string, error)
}

// Notifier delivers health alerts to users
type Notifier interface {
	SendHealthAlert(to, username string, report models.HealthReport) error
}

// Service handles business logic
type Service struct {
	store    Store
	advisor  Advisor
	notifier Notifier
	log      *logrus.Logger
	config   *config.Config
}

// NewService initializes a new service. advisor and notifier may be nil for
// tools that never chat or send alerts.
func NewService(store Store, advisor Advisor, notifier Notifier, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{store: store, advisor: advisor, notifier: notifier, log: log, config: cfg}
}

// Register creates a new user with hashed password
func (s *Service) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	username, email = strings.TrimSpace(username), strings.TrimSpace(strings.ToLower(email))
	if username == "" || !strings.Contains(email, "@") || len(password) < 8 {
		return nil, fmt.Errorf("%w: username, valid email and a password of at least 8 characters are required", ErrInvalidInput)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}
	if err := s.store.CreateUser(ctx, user, s.config.DefaultThresholds); err != nil {
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Login authenticates a user and returns a JWT token
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.store.FindUserByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(user.ID, 10),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return tokenString, nil
}

// Profile returns the settings of a user
func (s *Service) Profile(ctx context.Context, userID int64) (*models.Profile, error) {
	return s.store.GetProfile(ctx, userID)
}

// UpdateProfile changes display name and alert thresholds
func (s *Service) UpdateProfile(ctx context.Context, userID int64, displayName string, thresholds models.Thresholds) (*models.Profile, error) {
	if err := config.ValidateThresholds(thresholds); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	p := &models.Profile{
		UserID:      userID,
		DisplayName: strings.TrimSpace(displayName),
		Thresholds:  thresholds,
	}
	if err := s.store.UpdateProfile(ctx, p); err != nil {
		return nil, err
	}
	s.log.Infof("Profile updated for user %d", userID)
	return p, nil
}
