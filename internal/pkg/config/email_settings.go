package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Email sender constants
const (
	EmailSenderSMTP = "smtp"
	EmailSenderLog  = "log"
)

// EmailSettings configures outgoing mail
type EmailSettings struct {
	Sender      string `mapstructure:"sender" validate:"required,oneof=smtp log"`
	FromAddress string `mapstructure:"from_address" validate:"required,email"`
	FromName    string `mapstructure:"from_name"`
	SMTPHost    string `mapstructure:"smtp_host"`
	SMTPPort    int    `mapstructure:"smtp_port"`
	SMTPUser    string `mapstructure:"smtp_user"`
	SMTPPass    string `mapstructure:"smtp_password"`
	SupportURL  string `mapstructure:"support_url"`
}

// Validate checks that all fields in EmailSettings are valid
func (s *EmailSettings) Validate() error {
	validate := validator.New()
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for EmailSettings: %w", err)
	}
	if s.Sender == EmailSenderSMTP {
		if s.SMTPHost == "" {
			return fmt.Errorf("smtp host is required for smtp sender")
		}
		if s.SMTPPort < 1 || s.SMTPPort > 65535 {
			return fmt.Errorf("smtp port must be between 1 and 65535")
		}
	}
	return nil
}
