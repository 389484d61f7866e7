package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// RateLimitSettings configures the token bucket limiters of the HTTP layer
type RateLimitSettings struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second" validate:"gt=0"`
	Burst             int     `mapstructure:"burst" validate:"gt=0"`
	AuthPerSecond     float64 `mapstructure:"auth_requests_per_second" validate:"gt=0"`
	AuthBurst         int     `mapstructure:"auth_burst" validate:"gt=0"`
}

// Validate checks that all fields in RateLimitSettings are valid
func (s *RateLimitSettings) Validate() error {
	validate := validator.New()
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for RateLimitSettings: %w", err)
	}
	return nil
}
