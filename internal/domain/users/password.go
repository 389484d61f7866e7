package users

import (
	"unicode"

	"github.com/Wetooa/mentara-sub026/internal/pkg/apperr"
)

// ValidatePasswordStrength requires MinPasswordLength characters with at least one letter and one digit
func ValidatePasswordStrength(password string) error {
	if len(password) < MinPasswordLength {
		return apperr.Validation("validation failed: password must be at least 8 characters", nil)
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return apperr.Validation("validation failed: password must contain a letter and a digit", nil)
	}
	return nil
}
