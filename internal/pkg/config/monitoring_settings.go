package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// MonitoringSettings configures the in-process performance dashboard
type MonitoringSettings struct {
	Enabled        bool          `mapstructure:"enabled"`
	SampleInterval time.Duration `mapstructure:"sample_interval" validate:"required"`
	MaxMetrics     int           `mapstructure:"max_metrics" validate:"gt=0"`
}

// Validate checks that all fields in MonitoringSettings are valid
func (s *MonitoringSettings) Validate() error {
	validate := validator.New()
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for MonitoringSettings: %w", err)
	}
	return nil
}
