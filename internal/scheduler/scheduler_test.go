package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

type fakeSender struct {
	calls chan struct{}
	err   error
}

func (f *fakeSender) SendHealthAlerts(context.Context) (int, error) {
	f.calls <- struct{}{}
	return 2, f.err
}

func quietLogger() (*logrus.Logger, *test.Hook) {
	return test.NewNullLogger()
}

func TestNew_InvalidSchedule(t *testing.T) {
	log, _ := quietLogger()
	if _, err := New("every morning", &fakeSender{}, log); err == nil {
		t.Fatal("expected error for invalid schedule")
	}
}

func TestRunAlerts(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantLevel logrus.Level
	}{
		{"success", nil, logrus.InfoLevel},
		{"failure", errors.New("smtp down"), logrus.ErrorLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, hook := quietLogger()
			sender := &fakeSender{calls: make(chan struct{}, 1), err: tt.err}
			s, err := New("@daily", sender, log)
			if err != nil {
				t.Fatal(err)
			}

			s.RunAlerts(context.Background())

			entry := hook.LastEntry()
			if entry == nil || entry.Level != tt.wantLevel {
				t.Fatalf("last log entry = %+v, want level %s", entry, tt.wantLevel)
			}
			if entry.Data["sent"] != 2 {
				t.Errorf("sent field = %v, want 2", entry.Data["sent"])
			}
		})
	}
}

func TestScheduledRun(t *testing.T) {
	log, _ := quietLogger()
	sender := &fakeSender{calls: make(chan struct{}, 4)}
	s, err := New("@every 1s", sender, log)
	if err != nil {
		t.Fatal(err)
	}
	s.Start()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		s.Stop(ctx)
	}()

	select {
	case <-sender.calls:
	case <-time.After(3 * time.Second):
		t.Fatal("alerts were not sent on schedule")
	}
}
