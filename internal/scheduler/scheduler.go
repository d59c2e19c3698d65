// Package scheduler runs periodic jobs such as health alert mailing.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// AlertSender sends health alerts for every active budget
type AlertSender interface {
	SendHealthAlerts(ctx context.Context) (int, error)
}

type Scheduler struct {
	cron   *cron.Cron
	sender AlertSender
	log    *logrus.Logger
}

// New schedules health alerts on schedule, a standard five-field cron expression
// or descriptor such as "@daily". Overlapping runs are skipped.
func New(schedule string, sender AlertSender, log *logrus.Logger) (*Scheduler, error) {
	logger := cron.VerbosePrintfLogger(log)
	s := &Scheduler{
		cron:   cron.New(cron.WithLogger(logger), cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger))),
		sender: sender,
		log:    log,
	}
	if _, err := s.cron.AddFunc(schedule, func() { s.RunAlerts(context.Background()) }); err != nil {
		return nil, fmt.Errorf("invalid alert schedule %q: %w", schedule, err)
	}
	return s, nil
}

// Start runs the scheduler in its own goroutine
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("Scheduler started")
}

// Stop prevents new runs and waits for a running job or ctx, whichever ends first
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
		s.log.Info("Scheduler stopped")
	case <-ctx.Done():
		s.log.Warn("Scheduler stop timed out")
	}
}

// RunAlerts sends one round of health alerts
func (s *Scheduler) RunAlerts(ctx context.Context) {
	sent, err := s.sender.SendHealthAlerts(ctx)
	if err != nil {
		s.log.WithField("sent", sent).Errorf("Health alert run failed: %v", err)
		return
	}
	s.log.WithField("sent", sent).Info("Health alert run finished")
}
