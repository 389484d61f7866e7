//go:build integration
// +build integration

package app

import (
	"context"
	"testing"

	"github.com/Wetooa/mentara-sub026/internal/domain/messaging"
	"github.com/Wetooa/mentara-sub026/internal/domain/notifications"
	"github.com/Wetooa/mentara-sub026/internal/domain/shared"
	"github.com/Wetooa/mentara-sub026/internal/domain/users"
	"github.com/Wetooa/mentara-sub026/internal/pkg/apperr"
	"github.com/Wetooa/mentara-sub026/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type messagingFixture struct {
	services     *TestServices
	alice        *users.User
	bob          *users.User
	conversation *messaging.ConversationSummary
}

func setupMessaging(t *testing.T) *messagingFixture {
	t.Helper()

	services := SetupTestServices(t, config.SqliteDbType)
	alice := services.SeedUser(t, users.RoleClient)
	bob := services.SeedUser(t, users.RoleTherapist)

	conversation, err := services.MessagingService.CreateConversation(context.Background(), alice.ID, &messaging.CreateConversationInput{
		ParticipantIDs: []string{bob.ID},
		Type:           messaging.ConversationDirect,
	})
	require.NoError(t, err)
	return &messagingFixture{services: services, alice: alice, bob: bob, conversation: conversation}
}

func (f *messagingFixture) send(t *testing.T, sender *users.User, content string) *messaging.Message {
	t.Helper()

	message, err := f.services.MessagingService.SendMessage(context.Background(), sender.ID, f.conversation.Conversation.ID, &messaging.SendMessageInput{Content: content})
	require.NoError(t, err)
	return message
}

func TestMessagingService_CreateConversation(t *testing.T) {
	f := setupMessaging(t)
	ctx := context.Background()

	require.Len(t, f.conversation.Participants, 2)
	assert.Equal(t, messaging.ParticipantAdmin, f.conversation.Participants[0].Role)
	assert.Equal(t, messaging.ParticipantMember, f.conversation.Participants[1].Role)

	t.Run("direct conversation is reused", func(t *testing.T) {
		again, err := f.services.MessagingService.CreateConversation(ctx, f.bob.ID, &messaging.CreateConversationInput{
			ParticipantIDs: []string{f.alice.ID},
			Type:           messaging.ConversationDirect,
		})
		require.NoError(t, err)
		assert.Equal(t, f.conversation.Conversation.ID, again.Conversation.ID)
	})

	t.Run("unknown participant", func(t *testing.T) {
		_, err := f.services.MessagingService.CreateConversation(ctx, f.alice.ID, &messaging.CreateConversationInput{
			ParticipantIDs: []string{newID()},
			Type:           messaging.ConversationDirect,
		})
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})

	t.Run("only self", func(t *testing.T) {
		_, err := f.services.MessagingService.CreateConversation(ctx, f.alice.ID, &messaging.CreateConversationInput{
			ParticipantIDs: []string{f.alice.ID},
			Type:           messaging.ConversationGroup,
		})
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})
}

func TestMessagingService_SendMessage_EncryptedAtRest(t *testing.T) {
	f := setupMessaging(t)
	ctx := context.Background()

	message := f.send(t, f.alice, "I had a better week")
	assert.Equal(t, "I had a better week", message.Content)
	assert.Equal(t, messaging.MessageText, message.Type)

	stored, err := f.services.DBContext.MessageRepo.GetByID(ctx, message.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "I had a better week", stored.Content)
	assert.NotContains(t, stored.Content, "better week")

	page, err := f.services.MessagingService.GetConversationMessages(ctx, f.bob.ID, f.conversation.Conversation.ID, shared.Pagination{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "I had a better week", page.Items[0].Content)

	assert.Equal(t, 1, f.services.Pusher.Count(f.bob.ID, notifications.EnvelopeMessage))
	unread, err := f.services.NotificationService.UnreadCount(ctx, f.bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)
}

func TestMessagingService_ConversationMessages_OldestFirst(t *testing.T) {
	f := setupMessaging(t)
	ctx := context.Background()

	f.send(t, f.alice, "first")
	f.send(t, f.bob, "second")
	f.send(t, f.alice, "third")

	page, err := f.services.MessagingService.GetConversationMessages(ctx, f.alice.ID, f.conversation.Conversation.ID, shared.Pagination{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "second", page.Items[0].Content)
	assert.Equal(t, "third", page.Items[1].Content)

	conversations, err := f.services.MessagingService.GetUserConversations(ctx, f.bob.ID, shared.Pagination{})
	require.NoError(t, err)
	require.Len(t, conversations.Items, 1)
	require.NotNil(t, conversations.Items[0].LastMessage)
	assert.Equal(t, "third", conversations.Items[0].LastMessage.Content)
}

func TestMessagingService_NonParticipant_Forbidden(t *testing.T) {
	f := setupMessaging(t)
	outsider := f.services.SeedUser(t, users.RoleClient)
	ctx := context.Background()

	_, err := f.services.MessagingService.SendMessage(ctx, outsider.ID, f.conversation.Conversation.ID, &messaging.SendMessageInput{Content: "hello"})
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	_, err = f.services.MessagingService.GetConversationMessages(ctx, outsider.ID, f.conversation.Conversation.ID, shared.Pagination{})
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	_, err = f.services.MessagingService.GetConversationByID(ctx, outsider.ID, f.conversation.Conversation.ID)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestMessagingService_EditAndDelete(t *testing.T) {
	f := setupMessaging(t)
	message := f.send(t, f.alice, "helo")
	ctx := context.Background()

	_, err := f.services.MessagingService.UpdateMessage(ctx, f.bob.ID, message.ID, "hijacked")
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	edited, err := f.services.MessagingService.UpdateMessage(ctx, f.alice.ID, message.ID, "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", edited.Content)
	assert.True(t, edited.IsEdited)

	require.NoError(t, f.services.MessagingService.DeleteMessage(ctx, f.alice.ID, message.ID))
	page, err := f.services.MessagingService.GetConversationMessages(ctx, f.bob.ID, f.conversation.Conversation.ID, shared.Pagination{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.True(t, page.Items[0].IsDeleted)
	assert.Empty(t, page.Items[0].Content)

	_, err = f.services.MessagingService.UpdateMessage(ctx, f.alice.ID, message.ID, "again")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestMessagingService_ReadsAndReactions(t *testing.T) {
	f := setupMessaging(t)
	message := f.send(t, f.alice, "how are you?")
	ctx := context.Background()

	summary, err := f.services.MessagingService.GetConversationByID(ctx, f.bob.ID, f.conversation.Conversation.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.UnreadCount)

	require.NoError(t, f.services.MessagingService.MarkMessageAsRead(ctx, f.bob.ID, message.ID))
	summary, err = f.services.MessagingService.GetConversationByID(ctx, f.bob.ID, f.conversation.Conversation.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), summary.UnreadCount)

	_, err = f.services.MessagingService.AddReaction(ctx, f.bob.ID, message.ID, "❤️")
	require.NoError(t, err)
	page, err := f.services.MessagingService.GetConversationMessages(ctx, f.alice.ID, f.conversation.Conversation.ID, shared.Pagination{})
	require.NoError(t, err)
	require.Len(t, page.Items[0].Reactions, 1)
	assert.Equal(t, f.bob.ID, page.Items[0].Reactions[0].UserID)

	require.NoError(t, f.services.MessagingService.RemoveReaction(ctx, f.bob.ID, message.ID, "❤️"))
	page, err = f.services.MessagingService.GetConversationMessages(ctx, f.alice.ID, f.conversation.Conversation.ID, shared.Pagination{})
	require.NoError(t, err)
	assert.Empty(t, page.Items[0].Reactions)
}

func TestMessagingService_SearchMessages(t *testing.T) {
	f := setupMessaging(t)
	f.send(t, f.alice, "Breathing exercises helped")
	f.send(t, f.bob, "Try the BREATHING worksheet")
	f.send(t, f.alice, "Thanks")
	ctx := context.Background()

	results, err := f.services.MessagingService.SearchMessages(ctx, f.alice.ID, &messaging.SearchQuery{Query: "breathing"})
	require.NoError(t, err)
	assert.Len(t, results, 2)

	outsider := f.services.SeedUser(t, users.RoleClient)
	results, err = f.services.MessagingService.SearchMessages(ctx, outsider.ID, &messaging.SearchQuery{Query: "breathing"})
	require.NoError(t, err)
	assert.Empty(t, results)

	_, err = f.services.MessagingService.SearchMessages(ctx, outsider.ID, &messaging.SearchQuery{
		Query:          "breathing",
		ConversationID: f.conversation.Conversation.ID,
	})
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestMessagingService_BlockUser(t *testing.T) {
	f := setupMessaging(t)
	ctx := context.Background()

	err := f.services.MessagingService.BlockUser(ctx, f.alice.ID, f.alice.ID, "")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	require.NoError(t, f.services.MessagingService.BlockUser(ctx, f.alice.ID, f.bob.ID, "unwanted contact"))
	require.NoError(t, f.services.MessagingService.BlockUser(ctx, f.alice.ID, f.bob.ID, "unwanted contact"))

	_, err = f.services.MessagingService.SendMessage(ctx, f.bob.ID, f.conversation.Conversation.ID, &messaging.SendMessageInput{Content: "hello?"})
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	require.NoError(t, f.services.MessagingService.UnblockUser(ctx, f.alice.ID, f.bob.ID))
	f.send(t, f.bob, "hello again")
}

func TestMessagingService_CrisisMessage_RaisesReport(t *testing.T) {
	f := setupMessaging(t)
	ctx := context.Background()

	message := f.send(t, f.alice, "Some days I want to die")

	reports, err := f.services.ModerationService.ListReports(ctx, nil)
	require.NoError(t, err)
	require.Len(t, reports.Items, 1)
	assert.Equal(t, message.ID, reports.Items[0].ContentID)
	assert.Equal(t, f.alice.ID, reports.Items[0].ReportedUserID)
}
