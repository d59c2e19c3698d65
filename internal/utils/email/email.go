package email

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/Dan9191/budget-advisor/internal/config"
	"github.com/Dan9191/budget-advisor/internal/models"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendHealthAlert notifies a user that their budget crossed an alert threshold
func (s *Sender) SendHealthAlert(to, username string, report models.HealthReport) error {
	e := s.healthAlert(to, username, report)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send health alert to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}

func (s *Sender) healthAlert(to, username string, report models.HealthReport) *email.Email {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "Budget Health Alert"

	var body strings.Builder
	fmt.Fprintf(&body, "Dear %s,\n\n", username)
	if report.SavingsBelowThreshold {
		fmt.Fprintf(&body,
			"Your savings rate is %s%%, below your alert threshold of %d%%.\n",
			report.SavingsRatePercent.StringFixed(1), report.Thresholds.SavingsRate)
	}
	if report.ExpensesAboveThreshold {
		fmt.Fprintf(&body,
			"Your expenses take %s%% of your income, above your alert threshold of %d%%.\n",
			report.ExpenseRatioPercent.StringFixed(1), report.Thresholds.ExpenseRatio)
	}
	fmt.Fprintf(&body, "Overall budget health: %s.\n", report.Status)
	if report.MonthsToEmergencyGoal > 0 {
		fmt.Fprintf(&body,
			"Your emergency fund covers %s months of expenses. At your current pace it takes %d months to reach six.\n",
			report.EmergencyMonths.StringFixed(1), report.MonthsToEmergencyGoal)
	}
	body.WriteString("\nYou can change your alert thresholds in Settings.\n")
	body.WriteString("\nBest regards,\nBudget Advisor")
	e.Text = []byte(body.String())
	return e
}
