//go:build integration
// +build integration

package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/Wetooa/mentara-sub026/internal/domain/dashboards"
	"github.com/Wetooa/mentara-sub026/internal/domain/meetings"
	"github.com/Wetooa/mentara-sub026/internal/domain/reviews"
	"github.com/Wetooa/mentara-sub026/internal/domain/shared"
	"github.com/Wetooa/mentara-sub026/internal/domain/users"
	"github.com/Wetooa/mentara-sub026/internal/domain/worksheets"
	"github.com/Wetooa/mentara-sub026/internal/pkg/apperr"
	"github.com/Wetooa/mentara-sub026/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewSqliteRepository(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)
	bg := context.Background()

	therapistID := uuid.NewString()
	clientA, clientB := uuid.NewString(), uuid.NewString()

	five := CreateTestReview(t, clientA, therapistID, uuid.NewString(), 5)
	four := CreateTestReview(t, clientB, therapistID, uuid.NewString(), 4)
	hidden := CreateTestReview(t, clientA, therapistID, uuid.NewString(), 1)
	hidden.Status = reviews.StatusRejected
	for _, r := range []*reviews.Review{five, four, hidden} {
		require.NoError(t, ctx.ReviewRepo.Create(bg, r))
	}

	t.Run("OneReviewPerMeeting", func(t *testing.T) {
		exists, err := ctx.ReviewRepo.ExistsForMeeting(bg, clientA, five.MeetingID)
		require.NoError(t, err)
		assert.True(t, exists)

		dup := CreateTestReview(t, clientA, therapistID, five.MeetingID, 3)
		err = ctx.ReviewRepo.Create(bg, dup)
		assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	})

	t.Run("ListFiltersAndSorts", func(t *testing.T) {
		list, total, err := ctx.ReviewRepo.List(bg, &reviews.Query{
			TherapistID: therapistID,
			Status:      reviews.StatusApproved,
			SortBy:      reviews.SortRating,
			SortOrder:   "asc",
		}, shared.NewPagination(1, 10, 10))
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, list, 2)
		assert.Equal(t, four.ID, list[0].ID)

		_, total, err = ctx.ReviewRepo.List(bg, &reviews.Query{ClientID: clientA}, shared.NewPagination(1, 10, 10))
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
	})

	t.Run("RatingCountsIgnoreHiddenReviews", func(t *testing.T) {
		counts, err := ctx.ReviewRepo.RatingCounts(bg, therapistID)
		require.NoError(t, err)
		assert.Equal(t, map[int]int64{5: 1, 4: 1}, counts)

		recent, err := ctx.ReviewRepo.ListApprovedSince(bg, therapistID, time.Now().UTC().Add(-time.Hour))
		require.NoError(t, err)
		assert.Len(t, recent, 2)
	})

	t.Run("HelpfulVotesCountOncePerUser", func(t *testing.T) {
		voter := uuid.NewString()
		added, count, err := ctx.ReviewRepo.AddHelpfulVote(bg, &reviews.HelpfulVote{ReviewID: five.ID, UserID: voter, CreatedAt: time.Now().UTC()})
		require.NoError(t, err)
		assert.True(t, added)
		assert.Equal(t, 1, count)

		added, count, err = ctx.ReviewRepo.AddHelpfulVote(bg, &reviews.HelpfulVote{ReviewID: five.ID, UserID: voter, CreatedAt: time.Now().UTC()})
		require.NoError(t, err)
		assert.False(t, added)
		assert.Equal(t, 1, count)

		total, err := ctx.ReviewRepo.HelpfulVotes(bg, therapistID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, ctx.ReviewRepo.Delete(bg, five.ID))
		_, err := ctx.ReviewRepo.GetByID(bg, five.ID)
		assert.ErrorIs(t, err, apperr.ErrNotFound)

		err = ctx.ReviewRepo.Delete(bg, five.ID)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestDashboardSqliteRepository(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)
	bg := context.Background()

	therapistID, clientID := uuid.NewString(), uuid.NewString()
	now := time.Now().UTC().Truncate(time.Second)

	soon := CreateTestMeeting(t, therapistID, clientID, now.Add(24*time.Hour))
	later := CreateTestMeeting(t, therapistID, clientID, now.Add(72*time.Hour))
	later.Status = meetings.StatusConfirmed
	done := CreateTestMeeting(t, therapistID, clientID, now.Add(-72*time.Hour))
	done.Status = meetings.StatusCompleted
	for _, m := range []*meetings.Meeting{later, soon, done} {
		require.NoError(t, ctx.MeetingRepo.Create(bg, m))
	}

	t.Run("Meetings", func(t *testing.T) {
		upcoming := &dashboards.MeetingFilter{ClientID: clientID, Statuses: dashboards.UpcomingStatuses, StartsFrom: &now}
		count, err := ctx.DashboardRepo.CountMeetings(bg, upcoming)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)

		upcoming.Limit = 1
		list, err := ctx.DashboardRepo.ListMeetings(bg, upcoming)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, soon.ID, list[0].ID)

		list, err = ctx.DashboardRepo.ListMeetings(bg, &dashboards.MeetingFilter{TherapistID: therapistID, NewestFirst: true})
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, later.ID, list[0].ID)

		dayStart, dayEnd := dashboards.DayBounds(now)
		count, err = ctx.DashboardRepo.CountMeetings(bg, &dashboards.MeetingFilter{
			TherapistID: therapistID,
			Statuses:    []string{meetings.StatusCompleted},
			UpdatedFrom: &dayStart,
			UpdatedTo:   &dayEnd,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("WorksheetsUndatedLast", func(t *testing.T) {
		due := now.Add(48 * time.Hour)
		dated := &worksheets.Worksheet{ID: uuid.NewString(), TherapistID: therapistID, ClientID: clientID, Title: "Dated", DueDate: &due, Status: worksheets.StatusAssigned, CreatedAt: now, UpdatedAt: now}
		undated := &worksheets.Worksheet{ID: uuid.NewString(), TherapistID: therapistID, ClientID: clientID, Title: "Undated", Status: worksheets.StatusAssigned, CreatedAt: now, UpdatedAt: now}
		submitted := &worksheets.Worksheet{ID: uuid.NewString(), TherapistID: therapistID, ClientID: clientID, Title: "Done", Status: worksheets.StatusSubmitted, CreatedAt: now, UpdatedAt: now}
		for _, w := range []*worksheets.Worksheet{undated, dated, submitted} {
			require.NoError(t, ctx.WorksheetRepo.Create(bg, w))
		}

		filter := &dashboards.WorksheetFilter{ClientID: clientID, Statuses: dashboards.PendingWorksheetStatuses}
		list, err := ctx.DashboardRepo.ListWorksheets(bg, filter)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, dated.ID, list[0].ID)
		assert.Equal(t, undated.ID, list[1].ID)

		count, err := ctx.DashboardRepo.CountWorksheets(bg, &dashboards.WorksheetFilter{TherapistID: therapistID, Statuses: dashboards.CompletedWorksheetStatuses})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("UsersByRole", func(t *testing.T) {
		for _, role := range []string{users.RoleClient, users.RoleClient, users.RoleTherapist} {
			require.NoError(t, ctx.UserRepo.Create(bg, CreateTestUser(t, role)))
		}
		counts, err := ctx.DashboardRepo.CountUsersByRole(bg)
		require.NoError(t, err)
		assert.Equal(t, int64(2), counts[users.RoleClient])
		assert.Equal(t, int64(1), counts[users.RoleTherapist])
	})
}
