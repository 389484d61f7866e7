//go:build unit
// +build unit

package meetings

import (
	"testing"
	"time"

	"github.com/Wetooa/mentara-sub026/internal/pkg/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func window(day, start, end string) *Availability {
	return &Availability{
		ID:          uuid.NewString(),
		TherapistID: uuid.NewString(),
		DayOfWeek:   day,
		StartTime:   start,
		EndTime:     end,
		IsAvailable: true,
	}
}

func TestAvailability_Validate(t *testing.T) {
	require.NoError(t, window("MONDAY", "09:00", "17:00").Validate())

	err := window("MONDAY", "17:00", "09:00").Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start time must be before end time")

	require.Error(t, window("monday", "09:00", "17:00").Validate())
	require.Error(t, window("MONDAY", "9:00", "17:00").Validate())
}

func TestAvailabilityInput_ValidateNormalisesDay(t *testing.T) {
	in := &AvailabilityInput{DayOfWeek: " tuesday ", StartTime: "08:30", EndTime: "12:00"}
	require.NoError(t, in.Validate())
	assert.Equal(t, "TUESDAY", in.DayOfWeek)
}

func TestAvailability_Covers(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Manila")
	require.NoError(t, err)
	a := window("MONDAY", "09:00", "12:00")

	// 2025-06-02 is a Monday. 01:00 UTC is 09:00 in Manila.
	start := time.Date(2025, 6, 2, 1, 0, 0, 0, time.UTC)
	assert.True(t, a.Covers(start, start.Add(time.Hour), loc))
	assert.True(t, a.Covers(start.Add(2*time.Hour), start.Add(3*time.Hour), loc))
	assert.False(t, a.Covers(start.Add(2*time.Hour), start.Add(4*time.Hour), loc))
	assert.False(t, a.Covers(start, start.Add(time.Hour), time.UTC))

	a.IsAvailable = false
	assert.False(t, a.Covers(start, start.Add(time.Hour), loc))
}

func TestMeeting_CancellationNotice(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	m := &Meeting{StartTime: now.Add(30 * time.Hour)}
	assert.Equal(t, 30, m.CancellationNoticeHours(now))
	assert.True(t, IsRefundEligible(m.CancellationNoticeHours(now)))

	m.StartTime = now.Add(23*time.Hour + 59*time.Minute)
	assert.Equal(t, 23, m.CancellationNoticeHours(now))
	assert.False(t, IsRefundEligible(m.CancellationNoticeHours(now)))
}

func TestMeeting_StatusHelpers(t *testing.T) {
	therapist, client := uuid.NewString(), uuid.NewString()
	m := &Meeting{TherapistID: therapist, ClientID: client, Status: StatusScheduled}

	assert.True(t, m.IsParticipant(therapist))
	assert.True(t, m.IsParticipant(client))
	assert.False(t, m.IsParticipant(uuid.NewString()))
	assert.False(t, m.IsParticipant(""))
	assert.True(t, m.IsBlocking())
	assert.False(t, m.IsFinal())

	m.Status = StatusCancelled
	assert.False(t, m.IsBlocking())
	assert.True(t, m.IsFinal())
}

func TestGenerateSlots(t *testing.T) {
	loc := time.UTC
	// 2025-06-02 is a Monday
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, loc)
	now := time.Date(2025, 6, 1, 8, 0, 0, 0, loc)

	booked := &Meeting{
		ID:        uuid.NewString(),
		StartTime: time.Date(2025, 6, 2, 10, 0, 0, 0, loc),
		EndTime:   time.Date(2025, 6, 2, 11, 0, 0, 0, loc),
		Status:    StatusConfirmed,
	}
	cancelled := &Meeting{
		ID:        uuid.NewString(),
		StartTime: time.Date(2025, 6, 2, 11, 0, 0, 0, loc),
		EndTime:   time.Date(2025, 6, 2, 12, 0, 0, 0, loc),
		Status:    StatusCancelled,
	}

	slots := GenerateSlots(SlotRequest{
		Date:           date,
		Location:       loc,
		Availabilities: []*Availability{window("MONDAY", "09:00", "12:00"), window("TUESDAY", "09:00", "12:00")},
		Meetings:       []*Meeting{booked, cancelled},
		Now:            now,
	}, DefaultSlotConfig())

	starts := make([]string, 0, len(slots))
	for _, s := range slots {
		starts = append(starts, s.StartTime.Format("15:04"))
	}
	assert.Equal(t, []string{"09:00", "09:30", "11:00", "11:30"}, starts)

	assert.Equal(t, []AvailableDuration{{Duration: 30, EndTime: time.Date(2025, 6, 2, 9, 30, 0, 0, loc)}, {Duration: 60, EndTime: time.Date(2025, 6, 2, 10, 0, 0, 0, loc)}}, slots[0].AvailableDurations)
	assert.Len(t, slots[1].AvailableDurations, 1)
	assert.Len(t, slots[2].AvailableDurations, 2)
	assert.Equal(t, time.Date(2025, 6, 2, 12, 0, 0, 0, loc), slots[2].EndTime)
}

func TestGenerateSlots_OutsideBookingWindow(t *testing.T) {
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	availabilities := []*Availability{window("MONDAY", "09:00", "12:00")}

	// same day: only starts at least 2 hours ahead remain
	slots := GenerateSlots(SlotRequest{Date: now, Availabilities: availabilities, Now: now}, DefaultSlotConfig())
	require.Len(t, slots, 0)

	past := GenerateSlots(SlotRequest{Date: now.AddDate(0, 0, -7), Availabilities: availabilities, Now: now}, DefaultSlotConfig())
	assert.Empty(t, past)

	tooFar := GenerateSlots(SlotRequest{Date: now.AddDate(0, 0, 91), Availabilities: availabilities, Now: now}, DefaultSlotConfig())
	assert.Empty(t, tooFar)
	assert.NotNil(t, tooFar)
}

func TestValidateBookingDay(t *testing.T) {
	cfg := DefaultSlotConfig()
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		date    time.Time
		now     time.Time
		wantErr string
	}{
		{"today with hours left", now, now, ""},
		{"tomorrow", now.AddDate(0, 0, 1), now, ""},
		{"last bookable day", now.AddDate(0, 0, 90), now, ""},
		{"yesterday", now.AddDate(0, 0, -1), now, "Bookings must be made at least 2 hours in advance"},
		{"today too late", now, time.Date(2025, 6, 2, 22, 30, 0, 0, time.UTC), "Bookings must be made at least 2 hours in advance"},
		{"beyond ninety days", now.AddDate(0, 0, 91), now, "Bookings can only be made up to 90 days in advance"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBookingDay(tt.date, time.UTC, tt.now, cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
			assert.Equal(t, tt.wantErr, apperr.MessageOf(err))
		})
	}
}

func TestFindConflict(t *testing.T) {
	start := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	existing := &Meeting{ID: "m-1", StartTime: start, EndTime: start.Add(time.Hour), Status: StatusScheduled}

	assert.Equal(t, existing, FindConflict([]*Meeting{existing}, start.Add(30*time.Minute), start.Add(90*time.Minute), ""))
	assert.Nil(t, FindConflict([]*Meeting{existing}, start.Add(time.Hour), start.Add(2*time.Hour), ""))
	assert.Nil(t, FindConflict([]*Meeting{existing}, start, start.Add(time.Hour), "m-1"))
}

func TestWeekdayIndex(t *testing.T) {
	assert.Less(t, WeekdayIndex("MONDAY"), WeekdayIndex("SUNDAY"))
	assert.Equal(t, 7, WeekdayIndex("FUNDAY"))
}
