package scheduler

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/codr1/storefront/internal/config"
	"github.com/codr1/storefront/internal/models"
)

// ThemeActivator is the part of the theme store a schedule needs.
type ThemeActivator interface {
	FindTheme(id string) (models.ThemeConfig, bool)
	SetThemeByID(id string) error
}

// RegisterThemeSchedules adds one job per schedule that makes its preset the
// current theme. Every preset is checked before any job is added.
func RegisterThemeSchedules(s *Service, themes ThemeActivator, schedules []config.ScheduleConfig) error {
	if s == nil {
		return ErrNotInitialized
	}
	for _, schedule := range schedules {
		if _, ok := themes.FindTheme(schedule.Preset); !ok {
			return fmt.Errorf("theme schedule %q: unknown preset %q", schedule.Name, schedule.Preset)
		}
	}

	for _, schedule := range schedules {
		if _, err := s.AddJob(schedule.Name, schedule.Cron, activateTheme(themes, schedule)); err != nil {
			return fmt.Errorf("theme schedule %q: %w", schedule.Name, err)
		}
	}
	return nil
}

func activateTheme(themes ThemeActivator, schedule config.ScheduleConfig) func() {
	jobLogger := log.With().
		Str("component", "theme_schedule").
		Str("job_name", schedule.Name).
		Str("theme_id", schedule.Preset).
		Logger()

	return func() {
		if err := themes.SetThemeByID(schedule.Preset); err != nil {
			jobLogger.Error().Err(err).Msg("Failed to activate scheduled theme")
			return
		}
		jobLogger.Info().Msg("Scheduled theme activated")
	}
}
