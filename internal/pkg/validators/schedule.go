package validators

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var clockTimePattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// Weekdays lists the accepted upper-case day names in calendar order starting on Sunday.
var Weekdays = []string{"SUNDAY", "MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY", "SATURDAY"}

// ClockTimeValidation accepts 24 hour "HH:MM" strings.
func ClockTimeValidation(fl validator.FieldLevel) bool {
	return IsClockTime(fl.Field().String())
}

// IsClockTime reports whether s is a 24 hour "HH:MM" string.
func IsClockTime(s string) bool {
	return clockTimePattern.MatchString(s)
}

// WeekdayValidation accepts upper-case English weekday names.
func WeekdayValidation(fl validator.FieldLevel) bool {
	day := fl.Field().String()
	for _, d := range Weekdays {
		if d == day {
			return true
		}
	}
	return false
}

// NotBlankValidation rejects strings made only of whitespace.
func NotBlankValidation(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
