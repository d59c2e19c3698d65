package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dan9191/budget-advisor/internal/health"
)

// SendHealthAlerts scores every active budget and notifies owners whose
// thresholds were crossed. Delivery failures do not stop the run; they are
// joined into the returned error.
func (s *Service) SendHealthAlerts(ctx context.Context) (int, error) {
	owners, err := s.store.ListBudgetOwners(ctx)
	if err != nil {
		return 0, err
	}

	sent := 0
	var errs []error
	for _, o := range owners {
		if err := ctx.Err(); err != nil {
			return sent, err
		}
		report := health.Score(o.Budget.BudgetSnapshot, o.Profile.Thresholds)
		if !report.Alerting() {
			continue
		}
		name := o.Profile.DisplayName
		if name == "" {
			name = o.User.Username
		}
		if err := s.notifier.SendHealthAlert(o.User.Email, name, report); err != nil {
			errs = append(errs, fmt.Errorf("user %d: %w", o.User.ID, err))
			continue
		}
		sent++
	}

	s.log.Infof("Health alerts sent: %d of %d budgets, %d failed", sent, len(owners), len(errs))
	return sent, errors.Join(errs...)
}
