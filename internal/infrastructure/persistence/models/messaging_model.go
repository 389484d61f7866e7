package models

import (
	"time"

	"github.com/Wetooa/mentara-sub026/internal/domain/messaging"
)

// ConversationModel is the GORM database model for conversations
type ConversationModel struct {
	ID            string     `gorm:"primaryKey;type:uuid"`
	Type          string     `gorm:"not null;index;type:varchar(20)"`
	Title         string     `gorm:"type:varchar(200)"`
	CreatedBy     string     `gorm:"not null;type:uuid"`
	LastMessageAt *time.Time `gorm:"index"`
	CreatedAt     time.Time  `gorm:"not null"`
	UpdatedAt     time.Time  `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (ConversationModel) TableName() string {
	return "conversations"
}

// ToDomain converts GORM model to domain entity
func (m *ConversationModel) ToDomain() *messaging.Conversation {
	return &messaging.Conversation{
		ID:            m.ID,
		Type:          m.Type,
		Title:         m.Title,
		CreatedBy:     m.CreatedBy,
		LastMessageAt: m.LastMessageAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *ConversationModel) FromDomain(c *messaging.Conversation) {
	m.ID = c.ID
	m.Type = c.Type
	m.Title = c.Title
	m.CreatedBy = c.CreatedBy
	m.LastMessageAt = c.LastMessageAt
	m.CreatedAt = c.CreatedAt
	m.UpdatedAt = c.UpdatedAt
}

// ParticipantModel is the GORM database model for conversation membership
type ParticipantModel struct {
	ConversationID string    `gorm:"primaryKey;type:uuid"`
	UserID         string    `gorm:"primaryKey;index;type:uuid"`
	Role           string    `gorm:"not null;type:varchar(10)"`
	JoinedAt       time.Time `gorm:"not null"`
	LastReadAt     *time.Time
	IsActive       bool `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (ParticipantModel) TableName() string {
	return "conversation_participants"
}

// ToDomain converts GORM model to domain entity
func (m *ParticipantModel) ToDomain() *messaging.Participant {
	return &messaging.Participant{
		ConversationID: m.ConversationID,
		UserID:         m.UserID,
		Role:           m.Role,
		JoinedAt:       m.JoinedAt,
		LastReadAt:     m.LastReadAt,
		IsActive:       m.IsActive,
	}
}

// FromDomain converts domain entity to GORM model
func (m *ParticipantModel) FromDomain(p *messaging.Participant) {
	m.ConversationID = p.ConversationID
	m.UserID = p.UserID
	m.Role = p.Role
	m.JoinedAt = p.JoinedAt
	m.LastReadAt = p.LastReadAt
	m.IsActive = p.IsActive
}

// MessageModel is the GORM database model for messages. Content holds the encrypted payload.
type MessageModel struct {
	ID             string  `gorm:"primaryKey;type:uuid"`
	ConversationID string  `gorm:"not null;index:idx_messages_conversation_created;type:uuid"`
	SenderID       string  `gorm:"not null;index;type:uuid"`
	Content        string  `gorm:"not null;type:text"`
	Type           string  `gorm:"not null;type:varchar(10)"`
	ReplyToID      *string `gorm:"type:uuid"`
	IsEdited       bool    `gorm:"not null"`
	EditedAt       *time.Time
	IsDeleted      bool `gorm:"not null;index"`
	DeletedAt      *time.Time
	CreatedAt      time.Time `gorm:"not null;index:idx_messages_conversation_created"`
	UpdatedAt      time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (MessageModel) TableName() string {
	return "messages"
}

// ToDomain converts GORM model to domain entity. Content is left as stored.
func (m *MessageModel) ToDomain() *messaging.Message {
	return &messaging.Message{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Content:        m.Content,
		Type:           m.Type,
		ReplyToID:      m.ReplyToID,
		IsEdited:       m.IsEdited,
		EditedAt:       m.EditedAt,
		IsDeleted:      m.IsDeleted,
		DeletedAt:      m.DeletedAt,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *MessageModel) FromDomain(msg *messaging.Message) {
	m.ID = msg.ID
	m.ConversationID = msg.ConversationID
	m.SenderID = msg.SenderID
	m.Content = msg.Content
	m.Type = msg.Type
	m.ReplyToID = msg.ReplyToID
	m.IsEdited = msg.IsEdited
	m.EditedAt = msg.EditedAt
	m.IsDeleted = msg.IsDeleted
	m.DeletedAt = msg.DeletedAt
	m.CreatedAt = msg.CreatedAt
	m.UpdatedAt = msg.UpdatedAt
}

// ReadReceiptModel is the GORM database model for read receipts
type ReadReceiptModel struct {
	MessageID string    `gorm:"primaryKey;type:uuid"`
	UserID    string    `gorm:"primaryKey;type:uuid"`
	ReadAt    time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (ReadReceiptModel) TableName() string {
	return "message_read_receipts"
}

// ReactionModel is the GORM database model for message reactions
type ReactionModel struct {
	ID        string    `gorm:"primaryKey;type:uuid"`
	MessageID string    `gorm:"not null;uniqueIndex:idx_reaction_unique;type:uuid"`
	UserID    string    `gorm:"not null;uniqueIndex:idx_reaction_unique;type:uuid"`
	Emoji     string    `gorm:"not null;uniqueIndex:idx_reaction_unique;type:varchar(32)"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (ReactionModel) TableName() string {
	return "message_reactions"
}

// ToDomain converts GORM model to domain entity
func (m *ReactionModel) ToDomain() *messaging.Reaction {
	return &messaging.Reaction{
		ID:        m.ID,
		MessageID: m.MessageID,
		UserID:    m.UserID,
		Emoji:     m.Emoji,
		CreatedAt: m.CreatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *ReactionModel) FromDomain(r *messaging.Reaction) {
	m.ID = r.ID
	m.MessageID = r.MessageID
	m.UserID = r.UserID
	m.Emoji = r.Emoji
	m.CreatedAt = r.CreatedAt
}

// BlockModel is the GORM database model for user blocks
type BlockModel struct {
	BlockerID string    `gorm:"primaryKey;type:uuid"`
	BlockedID string    `gorm:"primaryKey;index;type:uuid"`
	Reason    string    `gorm:"type:varchar(500)"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (BlockModel) TableName() string {
	return "user_blocks"
}
