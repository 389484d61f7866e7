package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// StorageSettings configures the document store for application uploads
type StorageSettings struct {
	BasePath          string   `mapstructure:"base_path" validate:"required"`
	MaxFileSizeBytes  int64    `mapstructure:"max_file_size_bytes" validate:"gt=0"`
	AllowedExtensions []string `mapstructure:"allowed_extensions" validate:"required,min=1,dive,startswith=."`
}

// Validate checks that all fields in StorageSettings are valid
func (s *StorageSettings) Validate() error {
	validate := validator.New()
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for StorageSettings: %w", err)
	}
	return nil
}
