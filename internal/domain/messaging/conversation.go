package messaging

import (
	"time"

	"github.com/Wetooa/mentara-sub026/internal/pkg/validators"
)

// Conversation types
const (
	ConversationDirect  = "direct"
	ConversationGroup   = "group"
	ConversationSession = "session"
	ConversationSupport = "support"
)

// Participant roles
const (
	ParticipantAdmin  = "ADMIN"
	ParticipantMember = "MEMBER"
)

// Conversation is a thread of messages between participants
type Conversation struct {
	ID            string `validate:"required,uuid4"`
	Type          string `validate:"required,oneof=direct group session support"`
	Title         string `validate:"max=200"`
	CreatedBy     string `validate:"required,uuid4"`
	LastMessageAt *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Validate for validating Conversation struct
func (c *Conversation) Validate() error {
	return validators.ValidateStruct(c)
}

// Participant is a member of a conversation
type Participant struct {
	ConversationID string `validate:"required,uuid4"`
	UserID         string `validate:"required,uuid4"`
	Role           string `validate:"required,oneof=ADMIN MEMBER"`
	JoinedAt       time.Time
	LastReadAt     *time.Time
	IsActive       bool
}

// CreateConversationInput starts a conversation
type CreateConversationInput struct {
	ParticipantIDs []string `validate:"required,min=1,dive,uuid4"`
	Type           string   `validate:"required,oneof=direct group session support"`
	Title          string   `validate:"max=200"`
}

// Validate for validating CreateConversationInput struct
func (in *CreateConversationInput) Validate() error {
	return validators.ValidateStruct(in)
}

// OtherParticipants returns the distinct participant IDs without creatorID
func (in *CreateConversationInput) OtherParticipants(creatorID string) []string {
	seen := map[string]bool{creatorID: true}
	others := make([]string, 0, len(in.ParticipantIDs))
	for _, id := range in.ParticipantIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		others = append(others, id)
	}
	return others
}

// ConversationSummary is a conversation as listed for one user
type ConversationSummary struct {
	Conversation *Conversation
	Participants []*Participant
	LastMessage  *Message
	UnreadCount  int64
}
