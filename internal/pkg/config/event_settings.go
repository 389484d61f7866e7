package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Event bus driver constants
const (
	EventDriverMemory = "memory"
	EventDriverNATS   = "nats"
)

// EventSettings selects and configures the domain event bus
type EventSettings struct {
	Driver        string `mapstructure:"driver" validate:"required,oneof=memory nats"`
	NATSURL       string `mapstructure:"nats_url"`
	SubjectPrefix string `mapstructure:"subject_prefix"`
	ClientName    string `mapstructure:"client_name"`
}

// Validate checks that all fields in EventSettings are valid
func (s *EventSettings) Validate() error {
	validate := validator.New()
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for EventSettings: %w", err)
	}
	if s.Driver == EventDriverNATS && s.NATSURL == "" {
		return fmt.Errorf("nats url is required for nats driver")
	}
	return nil
}
