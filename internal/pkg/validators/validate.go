// Package validators holds custom validation tags and the shared struct validator.
package validators

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Wetooa/mentara-sub026/internal/pkg/apperr"

	"github.com/go-playground/validator/v10"
)

var (
	instance     *validator.Validate
	instanceOnce sync.Once
)

// Validator returns the shared validator with every custom tag registered.
func Validator() *validator.Validate {
	instanceOnce.Do(func() {
		v := validator.New()
		mustRegister(v, "hhmm", ClockTimeValidation)
		mustRegister(v, "weekday", WeekdayValidation)
		mustRegister(v, "notblank", NotBlankValidation)
		mustRegister(v, "role", RoleValidation)
		instance = v
	})
	return instance
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("failed to register custom validator %s: %v", tag, err))
	}
}

// ValidateStruct validates s and reports failing fields as a validation error.
func ValidateStruct(s interface{}) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		messages := make([]string, 0, len(validationErrors))
		for _, fieldErr := range validationErrors {
			messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
		}
		return apperr.Validation("validation failed", fmt.Errorf("%v", messages))
	}
	return apperr.Validation("validation error", err)
}
