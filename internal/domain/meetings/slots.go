package meetings

import (
	"fmt"
	"sort"
	"time"

	"github.com/Wetooa/mentara-sub026/internal/pkg/apperr"
)

// SlotConfig tunes slot generation
type SlotConfig struct {
	SlotInterval      time.Duration
	MinAdvanceBooking time.Duration
	MaxAdvanceBooking time.Duration
	Durations         []int
}

// DefaultSlotConfig offers 30 minute steps bookable from 2 hours up to 90 days ahead
func DefaultSlotConfig() SlotConfig {
	return SlotConfig{
		SlotInterval:      30 * time.Minute,
		MinAdvanceBooking: 2 * time.Hour,
		MaxAdvanceBooking: 90 * 24 * time.Hour,
		Durations:         []int{30, 60, 90, 120},
	}
}

// AvailableDuration is a session length that fits at a slot
type AvailableDuration struct {
	Duration int
	EndTime  time.Time
}

// TimeSlot is a bookable start time with the session lengths that fit there
type TimeSlot struct {
	StartTime          time.Time
	EndTime            time.Time
	AvailableDurations []AvailableDuration
}

// SlotRequest is the input of GenerateSlots
type SlotRequest struct {
	// Date is the calendar day in the therapist's time zone. Only its year, month and day are used.
	Date           time.Time
	Location       *time.Location
	Availabilities []*Availability
	// Meetings are the therapist's meetings that may overlap the day
	Meetings []*Meeting
	Now      time.Time
}

// ValidateBookingDay rejects a calendar day in loc that has no instant inside the booking window at now
func ValidateBookingDay(date time.Time, loc *time.Location, now time.Time, cfg SlotConfig) error {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := date.Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, loc)

	if !dayStart.AddDate(0, 0, 1).After(now.Add(cfg.MinAdvanceBooking)) {
		return apperr.Validation(fmt.Sprintf("Bookings must be made at least %d hours in advance", int(cfg.MinAdvanceBooking.Hours())), nil)
	}
	if dayStart.After(now.Add(cfg.MaxAdvanceBooking)) {
		return apperr.Validation(fmt.Sprintf("Bookings can only be made up to %d days in advance", int(cfg.MaxAdvanceBooking.Hours()/24)), nil)
	}
	return nil
}

// GenerateSlots lists the bookable start times of a day sorted by start.
// Days with no start inside the booking window yield an empty list.
func GenerateSlots(req SlotRequest, cfg SlotConfig) []TimeSlot {
	slots := []TimeSlot{}
	loc := req.Location
	if loc == nil {
		loc = time.UTC
	}
	if cfg.SlotInterval <= 0 {
		cfg.SlotInterval = DefaultSlotConfig().SlotInterval
	}
	if len(cfg.Durations) == 0 {
		cfg.Durations = DefaultSlotConfig().Durations
	}

	y, m, d := req.Date.Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, loc)
	earliest := req.Now.Add(cfg.MinAdvanceBooking)
	latest := req.Now.Add(cfg.MaxAdvanceBooking)
	dayName := WeekdayName(dayStart.Weekday())

	blocking := make([]*Meeting, 0, len(req.Meetings))
	for _, meeting := range req.Meetings {
		if meeting.IsBlocking() {
			blocking = append(blocking, meeting)
		}
	}

	for _, window := range req.Availabilities {
		if !window.IsAvailable || window.DayOfWeek != dayName {
			continue
		}
		windowStart := dayStart.Add(time.Duration(window.StartMinutes()) * time.Minute)
		windowEnd := dayStart.Add(time.Duration(window.EndMinutes()) * time.Minute)

		for start := windowStart; start.Before(windowEnd); start = start.Add(cfg.SlotInterval) {
			if start.Before(earliest) || start.After(latest) {
				continue
			}
			durations := fittingDurations(start, windowEnd, blocking, cfg.Durations)
			if len(durations) == 0 {
				continue
			}
			slots = append(slots, TimeSlot{
				StartTime:          start,
				EndTime:            durations[len(durations)-1].EndTime,
				AvailableDurations: durations,
			})
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].StartTime.Before(slots[j].StartTime)
	})
	return slots
}

func fittingDurations(start, windowEnd time.Time, meetings []*Meeting, durations []int) []AvailableDuration {
	fitting := []AvailableDuration{}
	for _, minutes := range durations {
		end := start.Add(time.Duration(minutes) * time.Minute)
		if end.After(windowEnd) {
			continue
		}
		if overlapsAny(start, end, meetings) {
			continue
		}
		fitting = append(fitting, AvailableDuration{Duration: minutes, EndTime: end})
	}
	return fitting
}

func overlapsAny(start, end time.Time, meetings []*Meeting) bool {
	for _, meeting := range meetings {
		if meeting.Overlaps(start, end) {
			return true
		}
	}
	return false
}

// FindConflict returns the first blocking meeting overlapping [start, end), skipping excludeID
func FindConflict(meetings []*Meeting, start, end time.Time, excludeID string) *Meeting {
	for _, meeting := range meetings {
		if meeting.ID == excludeID || !meeting.IsBlocking() {
			continue
		}
		if meeting.Overlaps(start, end) {
			return meeting
		}
	}
	return nil
}
