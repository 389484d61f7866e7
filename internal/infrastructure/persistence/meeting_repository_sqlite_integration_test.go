//go:build integration
// +build integration

package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/Wetooa/mentara-sub026/internal/domain/meetings"
	"github.com/Wetooa/mentara-sub026/internal/pkg/apperr"
	"github.com/Wetooa/mentara-sub026/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeetingSqliteRepository_CreateAndGet(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	start := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Minute)
	meeting := CreateTestMeeting(t, uuid.NewString(), uuid.NewString(), start)
	require.NoError(t, ctx.MeetingRepo.Create(context.Background(), meeting))

	fetched, err := ctx.MeetingRepo.GetByID(context.Background(), meeting.ID)
	require.NoError(t, err)
	assert.Equal(t, meeting.Title, fetched.Title)
	assert.True(t, fetched.StartTime.Equal(start))

	_, err = ctx.MeetingRepo.GetByID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestMeetingSqliteRepository_ListForUser(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)
	bg := context.Background()

	therapistID, clientID := uuid.NewString(), uuid.NewString()
	base := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Minute)

	first := CreateTestMeeting(t, therapistID, clientID, base)
	second := CreateTestMeeting(t, therapistID, clientID, base.Add(3*time.Hour))
	second.Status = meetings.StatusCancelled
	unrelated := CreateTestMeeting(t, uuid.NewString(), uuid.NewString(), base)
	for _, m := range []*meetings.Meeting{first, second, unrelated} {
		require.NoError(t, ctx.MeetingRepo.Create(bg, m))
	}

	list, err := ctx.MeetingRepo.ListForUser(bg, clientID, &meetings.Query{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID, "newest start first")

	list, err = ctx.MeetingRepo.ListForUser(bg, therapistID, &meetings.Query{Status: meetings.StatusScheduled})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, first.ID, list[0].ID)

	from := base.Add(time.Hour)
	list, err = ctx.MeetingRepo.ListForUser(bg, therapistID, &meetings.Query{From: &from})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, second.ID, list[0].ID)
}

func TestMeetingSqliteRepository_ListOverlapping(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)
	bg := context.Background()

	therapistID := uuid.NewString()
	base := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Minute)

	booked := CreateTestMeeting(t, therapistID, uuid.NewString(), base)
	cancelled := CreateTestMeeting(t, therapistID, uuid.NewString(), base)
	cancelled.Status = meetings.StatusCancelled
	require.NoError(t, ctx.MeetingRepo.Create(bg, booked))
	require.NoError(t, ctx.MeetingRepo.Create(bg, cancelled))

	overlapping, err := ctx.MeetingRepo.ListOverlapping(bg, []string{therapistID}, base.Add(30*time.Minute), base.Add(90*time.Minute))
	require.NoError(t, err)
	require.Len(t, overlapping, 1)
	assert.Equal(t, booked.ID, overlapping[0].ID)

	// Back to back meetings do not overlap
	overlapping, err = ctx.MeetingRepo.ListOverlapping(bg, []string{therapistID}, base.Add(time.Hour), base.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, overlapping)
}

func TestMeetingSqliteRepository_Reminders(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)
	bg := context.Background()

	now := time.Now().UTC().Truncate(time.Minute)
	soon := CreateTestMeeting(t, uuid.NewString(), uuid.NewString(), now.Add(2*time.Hour))
	later := CreateTestMeeting(t, uuid.NewString(), uuid.NewString(), now.Add(72*time.Hour))
	require.NoError(t, ctx.MeetingRepo.Create(bg, soon))
	require.NoError(t, ctx.MeetingRepo.Create(bg, later))

	due, err := ctx.MeetingRepo.ListDueForReminder(bg, now, now.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, soon.ID, due[0].ID)

	require.NoError(t, ctx.MeetingRepo.MarkReminderSent(bg, soon.ID, now))

	due, err = ctx.MeetingRepo.ListDueForReminder(bg, now, now.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, due)
}

func TestAvailabilitySqliteRepository(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)
	bg := context.Background()

	therapistID := uuid.NewString()
	newWindow := func(day, start, end string) *meetings.Availability {
		return &meetings.Availability{
			ID:          uuid.NewString(),
			TherapistID: therapistID,
			DayOfWeek:   day,
			StartTime:   start,
			EndTime:     end,
			IsAvailable: true,
		}
	}

	friday := newWindow("FRIDAY", "09:00", "12:00")
	mondayLate := newWindow("MONDAY", "13:00", "17:00")
	mondayEarly := newWindow("MONDAY", "08:00", "10:00")
	for _, a := range []*meetings.Availability{friday, mondayLate, mondayEarly} {
		require.NoError(t, ctx.AvailabilityRepo.Create(bg, a))
	}

	list, err := ctx.AvailabilityRepo.ListByTherapist(bg, therapistID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, mondayEarly.ID, list[0].ID)
	assert.Equal(t, mondayLate.ID, list[1].ID)
	assert.Equal(t, friday.ID, list[2].ID)

	friday.IsAvailable = false
	require.NoError(t, ctx.AvailabilityRepo.Update(bg, friday))
	fetched, err := ctx.AvailabilityRepo.GetByID(bg, friday.ID)
	require.NoError(t, err)
	assert.False(t, fetched.IsAvailable)

	require.NoError(t, ctx.AvailabilityRepo.Delete(bg, friday.ID))
	_, err = ctx.AvailabilityRepo.GetByID(bg, friday.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	invalid := newWindow("MONDAY", "17:00", "09:00")
	assert.Error(t, ctx.AvailabilityRepo.Create(bg, invalid))
}
