package messaging

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Wetooa/mentara-sub026/internal/pkg/apperr"
	"github.com/Wetooa/mentara-sub026/internal/pkg/validators"
)

// Message types
const (
	MessageText   = "text"
	MessageImage  = "image"
	MessageAudio  = "audio"
	MessageVideo  = "video"
	MessageSystem = "system"
)

// MaxMessageLength is the maximum number of characters in a message
const MaxMessageLength = 5000

// Page sizes
const (
	DefaultConversationLimit = 20
	DefaultMessageLimit      = 50
)

// Message is a message in a conversation. Content is plaintext in the domain and encrypted at rest.
type Message struct {
	ID             string `validate:"required,uuid4"`
	ConversationID string `validate:"required,uuid4"`
	SenderID       string `validate:"required,uuid4"`
	Content        string
	Type           string `validate:"required,oneof=text image audio video system"`
	ReplyToID      *string
	IsEdited       bool
	EditedAt       *time.Time
	IsDeleted      bool
	DeletedAt      *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Reactions      []*Reaction
}

// Validate for validating Message struct
func (m *Message) Validate() error {
	if err := validators.ValidateStruct(m); err != nil {
		return err
	}
	return ValidateContent(m.Content)
}

// SoftDelete marks the message deleted at now
func (m *Message) SoftDelete(now time.Time) {
	m.IsDeleted = true
	m.DeletedAt = &now
}

// Edit replaces the content and marks the message edited at now
func (m *Message) Edit(content string, now time.Time) {
	m.Content = content
	m.IsEdited = true
	m.EditedAt = &now
	m.UpdatedAt = now
}

// ValidateContent requires non-blank content of at most MaxMessageLength characters
func ValidateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return apperr.Validation("validation failed: message content is required", nil)
	}
	if utf8.RuneCountInString(content) > MaxMessageLength {
		return apperr.Validation("validation failed: message content exceeds 5000 characters", nil)
	}
	return nil
}

// SendMessageInput posts a message
type SendMessageInput struct {
	Content   string  `validate:"required"`
	Type      string  `validate:"omitempty,oneof=text image audio video"`
	ReplyToID *string `validate:"omitempty,uuid4"`
}

// Validate for validating SendMessageInput struct
func (in *SendMessageInput) Validate() error {
	if err := validators.ValidateStruct(in); err != nil {
		return err
	}
	return ValidateContent(in.Content)
}

// ReadReceipt records that a user read a message
type ReadReceipt struct {
	MessageID string
	UserID    string
	ReadAt    time.Time
}

// Reaction is an emoji reaction to a message
type Reaction struct {
	ID        string `validate:"required,uuid4"`
	MessageID string `validate:"required,uuid4"`
	UserID    string `validate:"required,uuid4"`
	Emoji     string `validate:"required,max=32"`
	CreatedAt time.Time
}

// Block prevents two users from messaging each other
type Block struct {
	BlockerID string
	BlockedID string
	Reason    string
	CreatedAt time.Time
}

// SearchQuery searches message content
type SearchQuery struct {
	Query          string `validate:"required,notblank,max=200"`
	ConversationID string `validate:"omitempty,uuid4"`
	Limit          int
}

// Validate for validating SearchQuery struct
func (q *SearchQuery) Validate() error {
	return validators.ValidateStruct(q)
}
