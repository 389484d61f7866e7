package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// SchedulerSettings holds the cron specs of the background jobs
type SchedulerSettings struct {
	Enabled          bool   `mapstructure:"enabled"`
	MeetingReminders string `mapstructure:"meeting_reminders" validate:"required"`
	TokenCleanup     string `mapstructure:"token_cleanup" validate:"required"`
	OverdueWorksheet string `mapstructure:"overdue_worksheets" validate:"required"`
}

// Validate checks that all fields in SchedulerSettings are valid
func (s *SchedulerSettings) Validate() error {
	validate := validator.New()
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for SchedulerSettings: %w", err)
	}
	return nil
}
