package scheduler

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/codr1/storefront/internal/config"
	"github.com/codr1/storefront/internal/models"
)

type fakeActivator struct {
	mu        sync.Mutex
	known     map[string]bool
	activated chan string
	err       error
}

func newFakeActivator(ids ...string) *fakeActivator {
	known := make(map[string]bool, len(ids))
	for _, id := range ids {
		known[id] = true
	}
	return &fakeActivator{known: known, activated: make(chan string, 4)}
}

func (f *fakeActivator) FindTheme(id string) (models.ThemeConfig, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return models.ThemeConfig{ID: id}, f.known[id]
}

func (f *fakeActivator) SetThemeByID(id string) error {
	if f.err != nil {
		return f.err
	}
	f.activated <- id
	return nil
}

func newTestService(t *testing.T) *Service {
	t.Helper()

	svc, err := New()
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}
	t.Cleanup(func() { _ = svc.Stop() })
	return svc
}

func TestRegisterThemeSchedules(t *testing.T) {
	svc := newTestService(t)
	activator := newFakeActivator("holiday-season", "default")

	err := RegisterThemeSchedules(svc, activator, []config.ScheduleConfig{
		{Name: "holiday-campaign", Cron: "0 6 1 12 *", Preset: "holiday-season"},
		{Name: "new-year-reset", Cron: "0 6 2 1 *", Preset: "default"},
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	jobs := svc.Jobs()
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}
	names := map[string]bool{}
	for _, job := range jobs {
		names[job.Name()] = true
	}
	if !names["holiday-campaign"] || !names["new-year-reset"] {
		t.Fatalf("unexpected job names %v", names)
	}
}

func TestRegisterThemeSchedulesUnknownPreset(t *testing.T) {
	svc := newTestService(t)
	activator := newFakeActivator("default")

	err := RegisterThemeSchedules(svc, activator, []config.ScheduleConfig{
		{Name: "ok", Cron: "0 6 2 1 *", Preset: "default"},
		{Name: "broken", Cron: "0 6 1 12 *", Preset: "missing"},
	})
	if err == nil {
		t.Fatalf("expected error for unknown preset")
	}
	if len(svc.Jobs()) != 0 {
		t.Fatalf("expected no jobs registered after validation failure")
	}
}

func TestRegisterThemeSchedulesRequiresService(t *testing.T) {
	if err := RegisterThemeSchedules(nil, newFakeActivator(), nil); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}
}

func TestScheduledJobActivatesPreset(t *testing.T) {
	svc := newTestService(t)
	activator := newFakeActivator("holiday-season")

	if err := RegisterThemeSchedules(svc, activator, []config.ScheduleConfig{
		{Name: "holiday-campaign", Cron: "0 6 1 12 *", Preset: "holiday-season"},
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	svc.Start()

	if err := svc.Jobs()[0].RunNow(); err != nil {
		t.Fatalf("run now: %v", err)
	}
	select {
	case id := <-activator.activated:
		if id != "holiday-season" {
			t.Fatalf("expected holiday-season, got %q", id)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("scheduled job did not run")
	}
}

func TestActivateThemeLogsFailure(t *testing.T) {
	activator := newFakeActivator()
	activator.err = errors.New("boom")

	activateTheme(activator, config.ScheduleConfig{Name: "x", Preset: "y"})()

	select {
	case id := <-activator.activated:
		t.Fatalf("unexpected activation %q", id)
	default:
	}
}

func TestAddJobValidation(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		name     string
		jobName  string
		cronExpr string
		want     error
	}{
		{name: "empty name", jobName: " ", cronExpr: "* * * * *", want: ErrEmptyJobName},
		{name: "empty cron", jobName: "job", cronExpr: "", want: ErrEmptyCronExpr},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.AddJob(tc.jobName, tc.cronExpr, func() {}); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	var nilService *Service
	if _, err := nilService.AddJob("job", "* * * * *", func() {}); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}
}
