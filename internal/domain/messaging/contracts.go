package messaging

import (
	"context"
	"time"

	"github.com/Wetooa/mentara-sub026/internal/domain/shared"
)

// ConversationRepository persists conversations and their participants
type ConversationRepository interface {
	Create(ctx context.Context, conversation *Conversation, participants []*Participant) error
	GetByID(ctx context.Context, conversationID string) (*Conversation, error)
	// FindDirect returns the direct conversation between two users or a not found error
	FindDirect(ctx context.Context, userA, userB string) (*Conversation, error)
	// ListForUser returns the conversations of userID, most recently active first
	ListForUser(ctx context.Context, userID string, page shared.Pagination) ([]*Conversation, int64, error)
	ListParticipants(ctx context.Context, conversationID string) ([]*Participant, error)
	GetParticipant(ctx context.Context, conversationID, userID string) (*Participant, error)
	// ListConversationIDs returns the IDs of every conversation userID actively participates in
	ListConversationIDs(ctx context.Context, userID string) ([]string, error)
	TouchLastMessage(ctx context.Context, conversationID string, at time.Time) error
	UpdateLastRead(ctx context.Context, conversationID, userID string, at time.Time) error
}

// MessageRepository persists messages, receipts and reactions
type MessageRepository interface {
	Create(ctx context.Context, message *Message) error
	GetByID(ctx context.Context, messageID string) (*Message, error)
	Update(ctx context.Context, message *Message) error
	// ListByConversation returns a page of messages, newest first
	ListByConversation(ctx context.Context, conversationID string, page shared.Pagination) ([]*Message, int64, error)
	GetLatest(ctx context.Context, conversationID string) (*Message, error)
	// CountUnread counts messages of other senders newer than since
	CountUnread(ctx context.Context, conversationID, userID string, since *time.Time) (int64, error)
	// ListInConversations returns non-deleted messages of the given conversations, newest first
	ListInConversations(ctx context.Context, conversationIDs []string, limit int) ([]*Message, error)

	MarkRead(ctx context.Context, receipt *ReadReceipt) error
	AddReaction(ctx context.Context, reaction *Reaction) error
	RemoveReaction(ctx context.Context, messageID, userID, emoji string) error
	ListReactions(ctx context.Context, messageIDs []string) ([]*Reaction, error)
}

// BlockRepository persists user blocks
type BlockRepository interface {
	Create(ctx context.Context, block *Block) error
	Delete(ctx context.Context, blockerID, blockedID string) error
	Exists(ctx context.Context, blockerID, blockedID string) (bool, error)
	// IsBlockedEitherWay reports whether either user blocked the other
	IsBlockedEitherWay(ctx context.Context, userA, userB string) (bool, error)
}

// ContentCipher encrypts message content at rest
type ContentCipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// MessagingService handles conversations and messages
type MessagingService interface {
	CreateConversation(ctx context.Context, userID string, input *CreateConversationInput) (*ConversationSummary, error)
	GetUserConversations(ctx context.Context, userID string, page shared.Pagination) (*shared.Page[*ConversationSummary], error)
	GetConversationByID(ctx context.Context, userID, conversationID string) (*ConversationSummary, error)
	SendMessage(ctx context.Context, userID, conversationID string, input *SendMessageInput) (*Message, error)
	GetConversationMessages(ctx context.Context, userID, conversationID string, page shared.Pagination) (*shared.Page[*Message], error)
	UpdateMessage(ctx context.Context, userID, messageID, content string) (*Message, error)
	DeleteMessage(ctx context.Context, userID, messageID string) error
	MarkMessageAsRead(ctx context.Context, userID, messageID string) error
	AddReaction(ctx context.Context, userID, messageID, emoji string) (*Reaction, error)
	RemoveReaction(ctx context.Context, userID, messageID, emoji string) error
	BlockUser(ctx context.Context, userID, blockedID, reason string) error
	UnblockUser(ctx context.Context, userID, blockedID string) error
	SearchMessages(ctx context.Context, userID string, query *SearchQuery) ([]*Message, error)
	// RemoveMessageContent soft deletes a message on behalf of a moderator
	RemoveMessageContent(ctx context.Context, messageID string) error
}
