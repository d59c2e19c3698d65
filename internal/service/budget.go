package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dan9191/budget-advisor/internal/health"
	"github.com/Dan9191/budget-advisor/internal/models"
	"github.com/Dan9191/budget-advisor/internal/repository"
	"github.com/shopspring/decimal"
)

// SaveBudget stores snapshot as the user's active budget
func (s *Service) SaveBudget(ctx context.Context, userID int64, snapshot models.BudgetSnapshot) (*models.Budget, error) {
	if err := validateSnapshot(snapshot); err != nil {
		return nil, err
	}

	b := &models.Budget{UserID: userID, BudgetSnapshot: snapshot}
	if err := s.store.SaveBudget(ctx, b); err != nil {
		return nil, err
	}
	s.log.Infof("Budget saved for user %d", userID)
	return b, nil
}

// CurrentBudget returns the user's active budget or ErrNoBudget
func (s *Service) CurrentBudget(ctx context.Context, userID int64) (*models.Budget, error) {
	b, err := s.store.ActiveBudget(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNoBudget
	}
	return b, err
}

// Overview scores the active budget against the user's thresholds
func (s *Service) Overview(ctx context.Context, userID int64) (models.HealthReport, error) {
	b, err := s.CurrentBudget(ctx, userID)
	if err != nil {
		return models.HealthReport{}, err
	}
	p, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		return models.HealthReport{}, err
	}
	return health.Score(b.BudgetSnapshot, p.Thresholds), nil
}

func validateSnapshot(snapshot models.BudgetSnapshot) error {
	fields := []struct {
		name  string
		value decimal.Decimal
	}{
		{"monthly_income", snapshot.MonthlyIncome},
		{"monthly_expenses", snapshot.MonthlyExpenses},
		{"savings", snapshot.Savings},
		{"emergency_fund", snapshot.EmergencyFund},
	}
	for _, f := range fields {
		if f.value.IsNegative() {
			return fmt.Errorf("%w: %s must not be negative", ErrInvalidInput, f.name)
		}
	}
	return nil
}
