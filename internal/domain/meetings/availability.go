package meetings

import (
	"fmt"
	"strings"
	"time"

	"github.com/Wetooa/mentara-sub026/internal/pkg/apperr"
	"github.com/Wetooa/mentara-sub026/internal/pkg/validators"
)

// Availability is a weekly recurring window in which a therapist accepts bookings
type Availability struct {
	ID          string `validate:"required,uuid4"`
	TherapistID string `validate:"required,uuid4"`
	DayOfWeek   string `validate:"required,weekday"`
	StartTime   string `validate:"required,hhmm"`
	EndTime     string `validate:"required,hhmm"`
	IsAvailable bool
	Notes       string `validate:"max=500"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate for validating Availability struct
func (a *Availability) Validate() error {
	if err := validators.ValidateStruct(a); err != nil {
		return err
	}
	start, _ := ParseClock(a.StartTime)
	end, _ := ParseClock(a.EndTime)
	if start >= end {
		return apperr.Validation("validation failed: start time must be before end time", nil)
	}
	return nil
}

// StartMinutes returns the window start as minutes after midnight
func (a *Availability) StartMinutes() int {
	m, _ := ParseClock(a.StartTime)
	return m
}

// EndMinutes returns the window end as minutes after midnight
func (a *Availability) EndMinutes() int {
	m, _ := ParseClock(a.EndTime)
	return m
}

// Covers reports whether [start, end) falls inside the window on start's weekday, in loc
func (a *Availability) Covers(start, end time.Time, loc *time.Location) bool {
	if !a.IsAvailable {
		return false
	}
	localStart := start.In(loc)
	localEnd := end.In(loc)
	if WeekdayName(localStart.Weekday()) != a.DayOfWeek {
		return false
	}
	if !sameDay(localStart, localEnd) && !isMidnight(localEnd) {
		return false
	}

	startMinutes := localStart.Hour()*60 + localStart.Minute()
	endMinutes := localEnd.Hour()*60 + localEnd.Minute()
	if isMidnight(localEnd) && !sameDay(localStart, localEnd) {
		endMinutes = 24 * 60
	}
	return startMinutes >= a.StartMinutes() && endMinutes <= a.EndMinutes()
}

// AvailabilityInput creates or replaces an availability window
type AvailabilityInput struct {
	DayOfWeek   string `validate:"required,weekday"`
	StartTime   string `validate:"required,hhmm"`
	EndTime     string `validate:"required,hhmm"`
	IsAvailable *bool
	Notes       string `validate:"max=500"`
}

// Validate for validating AvailabilityInput struct
func (in *AvailabilityInput) Validate() error {
	in.DayOfWeek = strings.ToUpper(strings.TrimSpace(in.DayOfWeek))
	if err := validators.ValidateStruct(in); err != nil {
		return err
	}
	start, _ := ParseClock(in.StartTime)
	end, _ := ParseClock(in.EndTime)
	if start >= end {
		return apperr.Validation("validation failed: start time must be before end time", nil)
	}
	return nil
}

// ParseClock converts "HH:MM" into minutes after midnight
func ParseClock(s string) (int, error) {
	if !validators.IsClockTime(s) {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// WeekdayName returns the upper-case English name of d
func WeekdayName(d time.Weekday) string {
	return strings.ToUpper(d.String())
}

var weekdayOrder = map[string]int{
	"MONDAY": 0, "TUESDAY": 1, "WEDNESDAY": 2, "THURSDAY": 3, "FRIDAY": 4, "SATURDAY": 5, "SUNDAY": 6,
}

// WeekdayIndex orders weekday names from Monday to Sunday. Unknown names sort last.
func WeekdayIndex(day string) int {
	if i, ok := weekdayOrder[day]; ok {
		return i
	}
	return len(weekdayOrder)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func isMidnight(t time.Time) bool {
	return t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0
}
