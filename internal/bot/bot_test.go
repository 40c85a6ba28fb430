package bot

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/edgard/hysteriabot/internal/bot/tasks"
	"github.com/edgard/hysteriabot/internal/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func noopTask(context.Context) error { return nil }

func newTestScheduler(t *testing.T, cfg *config.SchedulerConfig) *Scheduler {
	t.Helper()
	s, err := NewScheduler(discardLogger(), cfg, map[string]tasks.ScheduledTaskFunc{
		"service_watch": noopTask,
		"other":         noopTask,
	})
	if err != nil {
		t.Fatalf("NewScheduler() error = %v", err)
	}
	return s
}

func TestSchedulerSchedulesEnabledTasks(t *testing.T) {
	t.Parallel()

	s := newTestScheduler(t, &config.SchedulerConfig{Tasks: map[string]config.TaskConfig{
		"service_watch": {Enabled: true, Schedule: "*/5 * * * *"},
		"other":         {Enabled: false, Schedule: "* * * * *"},
		"unregistered":  {Enabled: true, Schedule: "* * * * *"},
		"bad_schedule":  {Enabled: true, Schedule: "not a cron"},
	}})

	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer func() {
		if err := s.Stop(); err != nil {
			t.Errorf("Stop() error = %v", err)
		}
	}()

	jobs := s.Jobs()
	sort.Strings(jobs)
	if diff := cmp.Diff([]string{"service_watch"}, jobs); diff != "" {
		t.Errorf("jobs mismatch (-want +got):\n%s", diff)
	}

	if err := s.Start(); err == nil {
		t.Error("second Start() error = nil, want error")
	}
}

func TestSchedulerStopWhenNotRunning(t *testing.T) {
	t.Parallel()

	s := newTestScheduler(t, nil)
	if err := s.Stop(); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
}

type blockingListener struct{}

func (blockingListener) Start(ctx context.Context) { <-ctx.Done() }

type returningListener struct{}

func (returningListener) Start(context.Context) {}

func TestRunStopsOnCancel(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	b := NewBot(discardLogger(), cfg, blockingListener{}, newTestScheduler(t, &cfg.Scheduler))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- b.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}

func TestRunFailsWhenListenerStops(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	b := NewBot(discardLogger(), cfg, returningListener{}, newTestScheduler(t, &cfg.Scheduler))

	done := make(chan error, 1)
	go func() { done <- b.Run(context.Background()) }()

	select {
	case err := <-done:
		if err == nil {
			t.Error("Run() error = nil, want error")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after listener stopped")
	}
}
