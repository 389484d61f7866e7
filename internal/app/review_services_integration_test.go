//go:build integration
// +build integration

package app

import (
	"context"
	"testing"
	"time"

	"github.com/Wetooa/mentara-sub026/internal/domain/auditlogs"
	"github.com/Wetooa/mentara-sub026/internal/domain/meetings"
	"github.com/Wetooa/mentara-sub026/internal/domain/moderation"
	"github.com/Wetooa/mentara-sub026/internal/domain/notifications"
	"github.com/Wetooa/mentara-sub026/internal/domain/reviews"
	"github.com/Wetooa/mentara-sub026/internal/domain/users"
	"github.com/Wetooa/mentara-sub026/internal/infrastructure/persistence"
	"github.com/Wetooa/mentara-sub026/internal/pkg/apperr"
	"github.com/Wetooa/mentara-sub026/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reviewFixture struct {
	services  *TestServices
	client    *users.User
	therapist *users.User
}

func setupReviews(t *testing.T) *reviewFixture {
	t.Helper()

	services := SetupTestServices(t, config.SqliteDbType)
	f := &reviewFixture{
		services:  services,
		client:    services.SeedUser(t, users.RoleClient),
		therapist: services.SeedApprovedTherapist(t),
	}
	services.SeedActiveRelationship(t, f.client.ID, f.therapist.ID)
	return f
}

// meeting persists a meeting between the fixture's pair with status
func (f *reviewFixture) meeting(t *testing.T, status string) *meetings.Meeting {
	t.Helper()

	m := persistence.CreateTestMeeting(t, f.therapist.ID, f.client.ID, time.Now().UTC().Add(-48*time.Hour).Truncate(time.Second))
	m.Status = status
	require.NoError(t, f.services.DBContext.MeetingRepo.Create(context.Background(), m))
	return m
}

func (f *reviewFixture) review(t *testing.T, meetingID string, rating int, anonymous bool) *reviews.Review {
	t.Helper()

	review, err := f.services.ReviewService.Create(context.Background(), f.client.ID, &reviews.CreateInput{
		TherapistID: f.therapist.ID,
		MeetingID:   meetingID,
		Rating:      rating,
		Title:       "Thoughtful",
		Content:     "Listened carefully.",
		IsAnonymous: anonymous,
	})
	require.NoError(t, err)
	return review
}

func TestReviewService_Create(t *testing.T) {
	f := setupReviews(t)
	ctx := context.Background()
	completed := f.meeting(t, meetings.StatusCompleted)

	review := f.review(t, completed.ID, 5, false)
	assert.Equal(t, reviews.StatusApproved, review.Status)

	_, err := f.services.ReviewService.Create(ctx, f.client.ID, &reviews.CreateInput{
		TherapistID: f.therapist.ID,
		MeetingID:   completed.ID,
		Rating:      4,
	})
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	page, err := f.services.NotificationService.List(ctx, f.therapist.ID, &notifications.Query{UnreadOnly: true})
	require.NoError(t, err)
	require.NotEmpty(t, page.Items)
	assert.Equal(t, notifications.TypeReviewReceived, page.Items[0].Type)

	logs, err := f.services.AuditService.FindAuditLogs(ctx, &auditlogs.Query{Entity: auditlogs.EntityReview})
	require.NoError(t, err)
	require.Len(t, logs.Items, 1)
	assert.Equal(t, review.ID, logs.Items[0].EntityID)
}

func TestReviewService_Create_RequiresCompletedMeeting(t *testing.T) {
	f := setupReviews(t)
	ctx := context.Background()
	scheduled := f.meeting(t, meetings.StatusScheduled)

	tests := []struct {
		name  string
		input *reviews.CreateInput
	}{
		{"meeting not completed", &reviews.CreateInput{TherapistID: f.therapist.ID, MeetingID: scheduled.ID, Rating: 5}},
		{"unknown meeting", &reviews.CreateInput{TherapistID: f.therapist.ID, MeetingID: newID(), Rating: 5}},
		{"rating out of range", &reviews.CreateInput{TherapistID: f.therapist.ID, MeetingID: scheduled.ID, Rating: 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.services.ReviewService.Create(ctx, f.client.ID, tt.input)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		})
	}

	stranger := f.services.SeedUser(t, users.RoleClient)
	completed := f.meeting(t, meetings.StatusCompleted)
	_, err := f.services.ReviewService.Create(ctx, stranger.ID, &reviews.CreateInput{TherapistID: f.therapist.ID, MeetingID: completed.ID, Rating: 5})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestReviewService_UpdateAndDelete_OwnerOnly(t *testing.T) {
	f := setupReviews(t)
	ctx := context.Background()
	review := f.review(t, f.meeting(t, meetings.StatusCompleted).ID, 3, false)
	other := f.services.SeedUser(t, users.RoleClient)

	rating := 4
	_, err := f.services.ReviewService.Update(ctx, other.ID, review.ID, &reviews.UpdateInput{Rating: &rating})
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	_, err = f.services.ReviewService.Update(ctx, f.client.ID, review.ID, &reviews.UpdateInput{})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	updated, err := f.services.ReviewService.Update(ctx, f.client.ID, review.ID, &reviews.UpdateInput{Rating: &rating})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Rating)

	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(f.services.ReviewService.Delete(ctx, other.ID, review.ID)))
	require.NoError(t, f.services.ReviewService.Delete(ctx, f.client.ID, review.ID))
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(f.services.ReviewService.Delete(ctx, f.client.ID, review.ID)))
}

func TestReviewService_List_HidesAuthorsAndModeratedReviews(t *testing.T) {
	f := setupReviews(t)
	ctx := context.Background()
	moderator := f.services.SeedUser(t, users.RoleModerator)

	anonymous := f.review(t, f.meeting(t, meetings.StatusCompleted).ID, 5, true)
	rejected := f.review(t, f.meeting(t, meetings.StatusCompleted).ID, 1, false)
	_, err := f.services.ReviewService.Moderate(ctx, moderator.ID, rejected.ID, &reviews.ModerateInput{Status: reviews.StatusRejected, Note: "Off topic"})
	require.NoError(t, err)

	public, err := f.services.ReviewService.List(ctx, "", "", &reviews.Query{TherapistID: f.therapist.ID})
	require.NoError(t, err)
	require.Len(t, public.Page.Items, 1)
	assert.Equal(t, anonymous.ID, public.Page.Items[0].ID)
	assert.Empty(t, public.Page.Items[0].ClientID)
	assert.Equal(t, 5.0, public.AverageRating)

	own, err := f.services.ReviewService.List(ctx, f.client.ID, users.RoleClient, &reviews.Query{ClientID: f.client.ID})
	require.NoError(t, err)
	assert.Len(t, own.Page.Items, 2)

	staff, err := f.services.ReviewService.List(ctx, moderator.ID, users.RoleModerator, &reviews.Query{Status: reviews.StatusRejected})
	require.NoError(t, err)
	require.Len(t, staff.Page.Items, 1)
	assert.Equal(t, "Off topic", staff.Page.Items[0].ModerationNote)
}

func TestReviewService_MarkHelpfulAndStats(t *testing.T) {
	f := setupReviews(t)
	ctx := context.Background()
	voter := f.services.SeedUser(t, users.RoleClient)

	five := f.review(t, f.meeting(t, meetings.StatusCompleted).ID, 5, false)
	f.review(t, f.meeting(t, meetings.StatusCompleted).ID, 2, true)

	_, err := f.services.ReviewService.MarkHelpful(ctx, f.client.ID, five.ID)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	result, err := f.services.ReviewService.MarkHelpful(ctx, voter.ID, five.ID)
	require.NoError(t, err)
	assert.True(t, result.Counted)
	assert.Equal(t, 1, result.HelpfulCount)

	result, err = f.services.ReviewService.MarkHelpful(ctx, voter.ID, five.ID)
	require.NoError(t, err)
	assert.False(t, result.Counted)
	assert.Equal(t, 1, result.HelpfulCount)

	stats, err := f.services.ReviewService.GetStats(ctx, f.therapist.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalReviews)
	assert.Equal(t, 3.5, stats.AverageRating)
	assert.Equal(t, 50.0, stats.RecommendationRate)
	assert.Equal(t, int64(1), stats.TotalHelpfulVotes)
	assert.Equal(t, int64(1), stats.RatingDistribution[2])
	require.Len(t, stats.Monthly, 1)
	assert.Equal(t, 2, stats.Monthly[0].Count)
	assert.Len(t, stats.RecentReviews, 2)
}

func TestModerationService_ReviewReport_RemovesReview(t *testing.T) {
	f := setupReviews(t)
	ctx := context.Background()
	reporter := f.services.SeedUser(t, users.RoleClient)
	moderator := f.services.SeedUser(t, users.RoleModerator)
	review := f.review(t, f.meeting(t, meetings.StatusCompleted).ID, 1, false)

	report, err := f.services.ModerationService.CreateReport(ctx, reporter.ID, &moderation.CreateReportInput{
		ContentType: moderation.ContentReview,
		ContentID:   review.ID,
		Reason:      moderation.ReasonSpam,
	})
	require.NoError(t, err)
	assert.Equal(t, f.client.ID, report.ReportedUserID)

	_, err = f.services.ModerationService.ReviewReport(ctx, moderator.ID, report.ID, &moderation.ReviewInput{
		Action: moderation.ActionRemoveContent,
		Notes:  "Spam",
	})
	require.NoError(t, err)

	stored, err := f.services.DBContext.ReviewRepo.GetByID(ctx, review.ID)
	require.NoError(t, err)
	assert.Equal(t, reviews.StatusRejected, stored.Status)
	assert.Equal(t, moderator.ID, stored.ModeratedBy)

	_, err = f.services.ReviewService.MarkHelpful(ctx, reporter.ID, review.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
