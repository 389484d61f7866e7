//go:build integration
// +build integration

package app

import (
	"context"
	"testing"

	"github.com/Wetooa/mentara-sub026/internal/domain/moderation"
	"github.com/Wetooa/mentara-sub026/internal/domain/notifications"
	"github.com/Wetooa/mentara-sub026/internal/domain/shared"
	"github.com/Wetooa/mentara-sub026/internal/domain/users"
	"github.com/Wetooa/mentara-sub026/internal/pkg/apperr"
	"github.com/Wetooa/mentara-sub026/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModerationService_CreateReport(t *testing.T) {
	f := setupMessaging(t)
	message := f.send(t, f.bob, "you are an idiot")
	ctx := context.Background()

	input := &moderation.CreateReportInput{
		ContentType:    moderation.ContentMessage,
		ContentID:      message.ID,
		ReportedUserID: f.bob.ID,
		Reason:         moderation.ReasonHarassment,
		Details:        "Insulting language",
	}
	report, err := f.services.ModerationService.CreateReport(ctx, f.alice.ID, input)
	require.NoError(t, err)
	assert.Equal(t, moderation.ReportPending, report.Status)

	_, err = f.services.ModerationService.CreateReport(ctx, f.alice.ID, input)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	userReport, err := f.services.ModerationService.CreateReport(ctx, f.alice.ID, &moderation.CreateReportInput{
		ContentType: moderation.ContentUser,
		ContentID:   f.bob.ID,
		Reason:      moderation.ReasonOther,
	})
	require.NoError(t, err)
	assert.Equal(t, f.bob.ID, userReport.ReportedUserID)

	got, err := f.services.ModerationService.GetReport(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, report.ID, got.ID)

	_, err = f.services.ModerationService.GetReport(ctx, newID())
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestModerationService_ReviewReport_RemoveContent(t *testing.T) {
	f := setupMessaging(t)
	moderator := f.services.SeedUser(t, users.RoleModerator)
	message := f.send(t, f.bob, "buy now, click here")
	ctx := context.Background()

	report, err := f.services.ModerationService.CreateReport(ctx, f.alice.ID, &moderation.CreateReportInput{
		ContentType:    moderation.ContentMessage,
		ContentID:      message.ID,
		ReportedUserID: f.bob.ID,
		Reason:         moderation.ReasonSpam,
	})
	require.NoError(t, err)

	reviewed, err := f.services.ModerationService.ReviewReport(ctx, moderator.ID, report.ID, &moderation.ReviewInput{
		Action: moderation.ActionRemoveContent,
		Notes:  "Spam",
	})
	require.NoError(t, err)
	assert.Equal(t, moderation.ReportResolved, reviewed.Status)
	assert.Equal(t, moderator.ID, reviewed.ReviewedBy)
	assert.Equal(t, moderation.ActionRemoveContent, reviewed.ActionTaken)

	page, err := f.services.MessagingService.GetConversationMessages(ctx, f.alice.ID, f.conversation.Conversation.ID, shared.Pagination{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.True(t, page.Items[0].IsDeleted)

	_, err = f.services.ModerationService.ReviewReport(ctx, moderator.ID, report.ID, &moderation.ReviewInput{Action: moderation.ActionDismiss})
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestModerationService_ReviewReport_Warn_NotifiesUser(t *testing.T) {
	f := setupMessaging(t)
	moderator := f.services.SeedUser(t, users.RoleModerator)
	ctx := context.Background()

	report, err := f.services.ModerationService.CreateReport(ctx, f.alice.ID, &moderation.CreateReportInput{
		ContentType: moderation.ContentUser,
		ContentID:   f.bob.ID,
		Reason:      moderation.ReasonInappropriate,
	})
	require.NoError(t, err)

	_, err = f.services.ModerationService.ReviewReport(ctx, moderator.ID, report.ID, &moderation.ReviewInput{Action: moderation.ActionWarn})
	require.NoError(t, err)

	page, err := f.services.NotificationService.List(ctx, f.bob.ID, &notifications.Query{UnreadOnly: true})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, notifications.TypeModerationWarning, page.Items[0].Type)
}

func TestModerationService_SuspendAndUnsuspend(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	moderator := services.SeedUser(t, users.RoleModerator)
	admin := services.SeedUser(t, users.RoleAdmin)
	client := services.SeedUser(t, users.RoleClient)
	ctx := context.Background()

	login, err := services.AuthService.Login(ctx, client.Email, TestPassword, testDevice)
	require.NoError(t, err)

	action, err := services.ModerationService.SuspendUser(ctx, moderator.ID, client.ID, &moderation.SuspendInput{
		Reason:       "Repeated harassment",
		DurationDays: 7,
	})
	require.NoError(t, err)
	assert.Equal(t, moderation.ActionSuspend, action.Action)

	_, err = services.AuthService.RefreshAccessToken(ctx, login.Tokens.RefreshToken, testDevice)
	require.Error(t, err)
	_, err = services.AuthService.Login(ctx, client.Email, TestPassword, testDevice)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))

	_, err = services.ModerationService.SuspendUser(ctx, moderator.ID, admin.ID, &moderation.SuspendInput{Reason: "No", DurationDays: 1})
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	_, err = services.ModerationService.SuspendUser(ctx, moderator.ID, moderator.ID, &moderation.SuspendInput{Reason: "No", DurationDays: 1})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = services.ModerationService.UnsuspendUser(ctx, moderator.ID, client.ID, "Appeal accepted")
	require.NoError(t, err)
	_, err = services.AuthService.Login(ctx, client.Email, TestPassword, testDevice)
	require.NoError(t, err)

	_, err = services.ModerationService.UnsuspendUser(ctx, moderator.ID, client.ID, "")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	actions, err := services.ModerationService.ListActions(ctx, &moderation.ActionQuery{TargetUserID: client.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), actions.Total)
}

func TestModerationService_GetModerationStats(t *testing.T) {
	f := setupMessaging(t)
	ctx := context.Background()

	_, err := f.services.ModerationService.CreateReport(ctx, f.alice.ID, &moderation.CreateReportInput{
		ContentType: moderation.ContentUser,
		ContentID:   f.bob.ID,
		Reason:      moderation.ReasonSpam,
	})
	require.NoError(t, err)

	stats, err := f.services.ModerationService.GetModerationStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalReports)
	assert.Equal(t, int64(1), stats.ByStatus[moderation.ReportPending])
	assert.Equal(t, int64(0), stats.ByStatus[moderation.ReportResolved])
	assert.Contains(t, stats.ByStatus, moderation.ReportDismissed)
	assert.Equal(t, int64(1), stats.ByReason[moderation.ReasonSpam])
	assert.Contains(t, stats.ByReason, moderation.ReasonSelfHarm)
	assert.Equal(t, int64(0), stats.TotalActions)
}
