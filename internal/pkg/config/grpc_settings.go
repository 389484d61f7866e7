package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// GrpcSettings configures the gRPC listener serving the standard health service
type GrpcSettings struct {
	Enabled       bool          `mapstructure:"enabled"`
	Port          string        `mapstructure:"port" validate:"required,numeric"`
	CheckInterval time.Duration `mapstructure:"check_interval" validate:"required,gt=0"`
}

// Validate checks that all fields in GrpcSettings are valid
func (s *GrpcSettings) Validate() error {
	validate := validator.New()
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for GrpcSettings: %w", err)
	}
	return nil
}
