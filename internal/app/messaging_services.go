package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/Wetooa/mentara-sub026/internal/domain/events"
	"github.com/Wetooa/mentara-sub026/internal/domain/messaging"
	"github.com/Wetooa/mentara-sub026/internal/domain/moderation"
	"github.com/Wetooa/mentara-sub026/internal/domain/notifications"
	"github.com/Wetooa/mentara-sub026/internal/domain/shared"
	"github.com/Wetooa/mentara-sub026/internal/domain/users"
	"github.com/Wetooa/mentara-sub026/internal/pkg/apperr"
	"github.com/Wetooa/mentara-sub026/internal/pkg/logger"

	"github.com/google/uuid"
)

// searchScanLimit bounds how many recent messages a search decrypts
const searchScanLimit = 2000

// messagingService implements the MessagingService interface
type messagingService struct {
	conversations messaging.ConversationRepository
	messages      messaging.MessageRepository
	blocks        messaging.BlockRepository
	users         users.UserRepository
	cipher        messaging.ContentCipher
	screener      moderation.ContentScreener
	pusher        notifications.Pusher
	transactor    shared.Transactor
	events        eventPublisher
	now           Clock
	logger        logger.Logger
}

// NewMessagingService creates a new instance of MessagingService
func NewMessagingService(
	conversationRepo messaging.ConversationRepository,
	messageRepo messaging.MessageRepository,
	blockRepo messaging.BlockRepository,
	userRepo users.UserRepository,
	cipher messaging.ContentCipher,
	screener moderation.ContentScreener,
	pusher notifications.Pusher,
	transactor shared.Transactor,
	bus events.Publisher,
	logger logger.Logger,
) (messaging.MessagingService, error) {
	if cipher == nil {
		return nil, fmt.Errorf("content cipher is required")
	}
	return &messagingService{
		conversations: conversationRepo,
		messages:      messageRepo,
		blocks:        blockRepo,
		users:         userRepo,
		cipher:        cipher,
		screener:      screener,
		pusher:        pusher,
		transactor:    transactor,
		events:        eventPublisher{bus: bus, logger: logger},
		now:           utcNow,
		logger:        logger,
	}, nil
}

// CreateConversation starts a conversation. A direct conversation that already exists is returned as is.
func (s *messagingService) CreateConversation(ctx context.Context, userID string, input *messaging.CreateConversationInput) (*messaging.ConversationSummary, error) {
	if input == nil {
		return nil, apperr.Validation("validation failed: conversation data is required", nil)
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	others := input.OtherParticipants(userID)
	if len(others) == 0 {
		return nil, apperr.Validation("validation failed: at least one other participant is required", nil)
	}
	if input.Type == messaging.ConversationDirect && len(others) != 1 {
		return nil, apperr.Validation("validation failed: direct conversations need exactly one other participant", nil)
	}

	accounts, err := usersByID(ctx, s.users, others)
	if err != nil {
		return nil, err
	}
	for _, id := range others {
		account, ok := accounts[id]
		if !ok || !account.IsActive {
			return nil, apperr.NotFound("Participant not found")
		}
		blocked, err := s.blocks.IsBlockedEitherWay(ctx, userID, id)
		if err != nil {
			return nil, fmt.Errorf("failed to check blocks: %w", err)
		}
		if blocked {
			return nil, apperr.Forbidden("Cannot start a conversation with this user")
		}
	}

	if input.Type == messaging.ConversationDirect {
		existing, err := s.conversations.FindDirect(ctx, userID, others[0])
		if err == nil {
			return s.summary(ctx, userID, existing)
		}
		if apperr.KindOf(err) != apperr.KindNotFound {
			return nil, err
		}
	}

	now := s.now()
	conversation := &messaging.Conversation{
		ID:        uuid.NewString(),
		Type:      input.Type,
		Title:     strings.TrimSpace(input.Title),
		CreatedBy: userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	participants := []*messaging.Participant{{
		ConversationID: conversation.ID,
		UserID:         userID,
		Role:           messaging.ParticipantAdmin,
		JoinedAt:       now,
		IsActive:       true,
	}}
	for _, id := range others {
		participants = append(participants, &messaging.Participant{
			ConversationID: conversation.ID,
			UserID:         id,
			Role:           messaging.ParticipantMember,
			JoinedAt:       now,
			IsActive:       true,
		})
	}
	if err := s.conversations.Create(ctx, conversation, participants); err != nil {
		return nil, apperr.PassThrough("failed to create conversation", err)
	}

	s.logger.Info("Conversation ", conversation.ID, " created by ", userID)
	s.events.publish(ctx, events.ConversationCreated, conversation.ID, map[string]interface{}{
		"type":           conversation.Type,
		"participantIds": append([]string{userID}, others...),
	})
	return &messaging.ConversationSummary{Conversation: conversation, Participants: participants}, nil
}

// GetUserConversations pages through the caller's conversations, most recently active first
func (s *messagingService) GetUserConversations(ctx context.Context, userID string, page shared.Pagination) (*shared.Page[*messaging.ConversationSummary], error) {
	page = shared.NewPagination(page.Page, page.Limit, messaging.DefaultConversationLimit)
	list, total, err := s.conversations.ListForUser(ctx, userID, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}

	summaries := make([]*messaging.ConversationSummary, 0, len(list))
	for _, c := range list {
		summary, err := s.summary(ctx, userID, c)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return shared.NewPage(summaries, total, page), nil
}

func (s *messagingService) GetConversationByID(ctx context.Context, userID, conversationID string) (*messaging.ConversationSummary, error) {
	if _, err := s.requireParticipant(ctx, conversationID, userID); err != nil {
		return nil, err
	}
	conversation, err := s.conversations.GetByID(ctx, conversationID)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, apperr.NotFound("Conversation not found")
		}
		return nil, err
	}
	return s.summary(ctx, userID, conversation)
}

// SendMessage stores an encrypted message, screens it and pushes it to the other participants
func (s *messagingService) SendMessage(ctx context.Context, userID, conversationID string, input *messaging.SendMessageInput) (*messaging.Message, error) {
	if input == nil {
		return nil, apperr.Validation("validation failed: message content is required", nil)
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.requireParticipant(ctx, conversationID, userID); err != nil {
		return nil, err
	}

	participants, err := s.conversations.ListParticipants(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	recipients := make([]string, 0, len(participants))
	for _, p := range participants {
		if p.UserID == userID || !p.IsActive {
			continue
		}
		blocked, err := s.blocks.IsBlockedEitherWay(ctx, userID, p.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to check blocks: %w", err)
		}
		if blocked && len(participants) == 2 {
			return nil, apperr.Forbidden("Cannot send messages to this user")
		}
		if !blocked {
			recipients = append(recipients, p.UserID)
		}
	}

	if input.ReplyToID != nil {
		parent, err := s.messages.GetByID(ctx, *input.ReplyToID)
		if err != nil || parent.ConversationID != conversationID {
			return nil, apperr.Validation("validation failed: reply target is not in this conversation", nil)
		}
	}

	now := s.now()
	message := &messaging.Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		SenderID:       userID,
		Content:        input.Content,
		Type:           input.Type,
		ReplyToID:      input.ReplyToID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if message.Type == "" {
		message.Type = messaging.MessageText
	}

	sealed, err := s.seal(message)
	if err != nil {
		return nil, err
	}
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.messages.Create(ctx, sealed); err != nil {
			return err
		}
		if err := s.conversations.TouchLastMessage(ctx, conversationID, now); err != nil {
			return err
		}
		return s.conversations.UpdateLastRead(ctx, conversationID, userID, now)
	})
	if err != nil {
		return nil, apperr.PassThrough("failed to send message", err)
	}

	if s.screener != nil {
		s.screener.Screen(ctx, userID, moderation.ContentMessage, message.ID, message.Content)
	}

	s.events.publish(ctx, events.MessageSent, message.ID, map[string]interface{}{
		"conversationId": conversationID,
		"senderId":       userID,
		"recipientIds":   recipients,
	})
	if s.pusher != nil && len(recipients) > 0 {
		s.pusher.Broadcast(recipients, notifications.Envelope{Type: notifications.EnvelopeMessage, Data: message})
	}
	return message, nil
}

// GetConversationMessages returns a page of messages counted from the newest, ordered oldest first
func (s *messagingService) GetConversationMessages(ctx context.Context, userID, conversationID string, page shared.Pagination) (*shared.Page[*messaging.Message], error) {
	if _, err := s.requireParticipant(ctx, conversationID, userID); err != nil {
		return nil, err
	}

	page = shared.NewPagination(page.Page, page.Limit, messaging.DefaultMessageLimit)
	list, total, err := s.messages.ListByConversation(ctx, conversationID, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	opened := make([]*messaging.Message, len(list))
	for i, m := range list {
		opened[len(list)-1-i] = s.open(m)
	}
	if err := s.attachReactions(ctx, opened); err != nil {
		return nil, err
	}
	return shared.NewPage(opened, total, page), nil
}

// UpdateMessage edits the caller's own message
func (s *messagingService) UpdateMessage(ctx context.Context, userID, messageID, content string) (*messaging.Message, error) {
	if err := messaging.ValidateContent(content); err != nil {
		return nil, err
	}
	message, err := s.ownMessage(ctx, userID, messageID)
	if err != nil {
		return nil, err
	}
	if message.IsDeleted {
		return nil, apperr.Validation("validation failed: deleted messages cannot be edited", nil)
	}

	message.Edit(content, s.now())
	sealed, err := s.seal(message)
	if err != nil {
		return nil, err
	}
	if err := s.messages.Update(ctx, sealed); err != nil {
		return nil, apperr.PassThrough("failed to update message", err)
	}

	if s.screener != nil {
		s.screener.Screen(ctx, userID, moderation.ContentMessage, message.ID, content)
	}
	return message, nil
}

func (s *messagingService) DeleteMessage(ctx context.Context, userID, messageID string) error {
	message, err := s.ownMessage(ctx, userID, messageID)
	if err != nil {
		return err
	}
	if message.IsDeleted {
		return nil
	}
	return s.softDelete(ctx, message)
}

func (s *messagingService) MarkMessageAsRead(ctx context.Context, userID, messageID string) error {
	message, err := s.loadMessage(ctx, messageID)
	if err != nil {
		return err
	}
	if _, err := s.requireParticipant(ctx, message.ConversationID, userID); err != nil {
		return err
	}

	now := s.now()
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.messages.MarkRead(ctx, &messaging.ReadReceipt{MessageID: messageID, UserID: userID, ReadAt: now}); err != nil {
			return err
		}
		return s.conversations.UpdateLastRead(ctx, message.ConversationID, userID, now)
	})
	if err != nil {
		return apperr.PassThrough("failed to mark message as read", err)
	}

	s.events.publish(ctx, events.MessageRead, messageID, map[string]interface{}{
		"conversationId": message.ConversationID,
		"readerId":       userID,
	})
	return nil
}

func (s *messagingService) AddReaction(ctx context.Context, userID, messageID, emoji string) (*messaging.Reaction, error) {
	emoji = strings.TrimSpace(emoji)
	if emoji == "" {
		return nil, apperr.Validation("validation failed: emoji is required", nil)
	}
	message, err := s.loadMessage(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireParticipant(ctx, message.ConversationID, userID); err != nil {
		return nil, err
	}

	reaction := &messaging.Reaction{
		ID:        uuid.NewString(),
		MessageID: messageID,
		UserID:    userID,
		Emoji:     emoji,
		CreatedAt: s.now(),
	}
	if err := s.messages.AddReaction(ctx, reaction); err != nil {
		return nil, apperr.PassThrough("failed to add reaction", err)
	}
	return reaction, nil
}

func (s *messagingService) RemoveReaction(ctx context.Context, userID, messageID, emoji string) error {
	message, err := s.loadMessage(ctx, messageID)
	if err != nil {
		return err
	}
	if _, err := s.requireParticipant(ctx, message.ConversationID, userID); err != nil {
		return err
	}
	return s.messages.RemoveReaction(ctx, messageID, userID, strings.TrimSpace(emoji))
}

// BlockUser blocks blockedID for the caller. Blocking twice is a no-op.
func (s *messagingService) BlockUser(ctx context.Context, userID, blockedID, reason string) error {
	if err := requireID("userId", blockedID); err != nil {
		return err
	}
	if userID == blockedID {
		return apperr.Validation("Cannot block yourself", nil)
	}
	if _, err := s.users.GetByID(ctx, blockedID); err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return apperr.NotFound("User not found")
		}
		return err
	}

	exists, err := s.blocks.Exists(ctx, userID, blockedID)
	if err != nil {
		return fmt.Errorf("failed to check block: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.blocks.Create(ctx, &messaging.Block{
		BlockerID: userID,
		BlockedID: blockedID,
		Reason:    reason,
		CreatedAt: s.now(),
	}); err != nil {
		return apperr.PassThrough("failed to block user", err)
	}
	s.logger.Info("User ", userID, " blocked ", blockedID)
	return nil
}

func (s *messagingService) UnblockUser(ctx context.Context, userID, blockedID string) error {
	if err := requireID("userId", blockedID); err != nil {
		return err
	}
	return s.blocks.Delete(ctx, userID, blockedID)
}

// SearchMessages decrypts recent messages of the caller's conversations and matches them case-insensitively
func (s *messagingService) SearchMessages(ctx context.Context, userID string, query *messaging.SearchQuery) ([]*messaging.Message, error) {
	if query == nil {
		return nil, apperr.Validation("validation failed: query is required", nil)
	}
	if err := query.Validate(); err != nil {
		return nil, err
	}
	limit := shared.NewPagination(1, query.Limit, shared.DefaultLimit).Limit

	ids, err := s.conversations.ListConversationIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	if query.ConversationID != "" {
		if !containsString(ids, query.ConversationID) {
			return nil, apperr.Forbidden("You are not a participant in this conversation")
		}
		ids = []string{query.ConversationID}
	}
	results := []*messaging.Message{}
	if len(ids) == 0 {
		return results, nil
	}

	candidates, err := s.messages.ListInConversations(ctx, ids, searchScanLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to search messages: %w", err)
	}
	needle := strings.ToLower(strings.TrimSpace(query.Query))
	for _, m := range candidates {
		opened := s.open(m)
		if strings.Contains(strings.ToLower(opened.Content), needle) {
			results = append(results, opened)
			if len(results) == limit {
				break
			}
		}
	}
	return results, nil
}

// RemoveMessageContent soft deletes any message for a moderator
func (s *messagingService) RemoveMessageContent(ctx context.Context, messageID string) error {
	message, err := s.loadMessage(ctx, messageID)
	if err != nil {
		return err
	}
	if message.IsDeleted {
		return nil
	}
	return s.softDelete(ctx, message)
}

func (s *messagingService) softDelete(ctx context.Context, message *messaging.Message) error {
	message.SoftDelete(s.now())
	if err := s.messages.Update(ctx, message); err != nil {
		return apperr.PassThrough("failed to delete message", err)
	}
	s.logger.Info("Message ", message.ID, " deleted")
	return nil
}

func (s *messagingService) summary(ctx context.Context, userID string, conversation *messaging.Conversation) (*messaging.ConversationSummary, error) {
	participants, err := s.conversations.ListParticipants(ctx, conversation.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	summary := &messaging.ConversationSummary{Conversation: conversation, Participants: participants}

	latest, err := s.messages.GetLatest(ctx, conversation.ID)
	switch {
	case err == nil:
		summary.LastMessage = s.open(latest)
	case apperr.KindOf(err) != apperr.KindNotFound:
		return nil, err
	}

	for _, p := range participants {
		if p.UserID != userID {
			continue
		}
		unread, err := s.messages.CountUnread(ctx, conversation.ID, userID, p.LastReadAt)
		if err != nil {
			return nil, fmt.Errorf("failed to count unread messages: %w", err)
		}
		summary.UnreadCount = unread
	}
	return summary, nil
}

func (s *messagingService) requireParticipant(ctx context.Context, conversationID, userID string) (*messaging.Participant, error) {
	if err := requireID("conversationId", conversationID); err != nil {
		return nil, err
	}
	participant, err := s.conversations.GetParticipant(ctx, conversationID, userID)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, apperr.Forbidden("You are not a participant in this conversation")
		}
		return nil, err
	}
	if !participant.IsActive {
		return nil, apperr.Forbidden("You are not a participant in this conversation")
	}
	return participant, nil
}

func (s *messagingService) loadMessage(ctx context.Context, messageID string) (*messaging.Message, error) {
	if err := requireID("messageId", messageID); err != nil {
		return nil, err
	}
	message, err := s.messages.GetByID(ctx, messageID)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, apperr.NotFound("Message not found")
		}
		return nil, err
	}
	return s.open(message), nil
}

func (s *messagingService) ownMessage(ctx context.Context, userID, messageID string) (*messaging.Message, error) {
	message, err := s.loadMessage(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if message.SenderID != userID {
		return nil, apperr.Forbidden("You can only modify your own messages")
	}
	return message, nil
}

// seal returns a copy of message with encrypted content
func (s *messagingService) seal(message *messaging.Message) (*messaging.Message, error) {
	ciphertext, err := s.cipher.Encrypt(message.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt message: %w", err)
	}
	sealed := *message
	sealed.Content = ciphertext
	sealed.Reactions = nil
	return &sealed, nil
}

// open returns a copy of message with decrypted content. Deleted messages carry no content.
func (s *messagingService) open(message *messaging.Message) *messaging.Message {
	opened := *message
	if opened.IsDeleted {
		opened.Content = ""
		return &opened
	}
	plaintext, err := s.cipher.Decrypt(message.Content)
	if err != nil {
		s.logger.Warn("Failed to decrypt message ", message.ID, ": ", err)
		opened.Content = ""
		return &opened
	}
	opened.Content = plaintext
	return &opened
}

func (s *messagingService) attachReactions(ctx context.Context, list []*messaging.Message) error {
	if len(list) == 0 {
		return nil
	}
	ids := make([]string, len(list))
	byID := make(map[string]*messaging.Message, len(list))
	for i, m := range list {
		ids[i] = m.ID
		byID[m.ID] = m
	}
	reactions, err := s.messages.ListReactions(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to list reactions: %w", err)
	}
	for _, r := range reactions {
		if m, ok := byID[r.MessageID]; ok {
			m.Reactions = append(m.Reactions, r)
		}
	}
	return nil
}

func containsString(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
