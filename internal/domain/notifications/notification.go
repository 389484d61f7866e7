package notifications

import (
	"time"

	"github.com/Wetooa/mentara-sub026/internal/pkg/validators"
)

// Notification types
const (
	TypeAppointmentBooked      = "APPOINTMENT_BOOKED"
	TypeAppointmentCancelled   = "APPOINTMENT_CANCELLED"
	TypeAppointmentRescheduled = "APPOINTMENT_RESCHEDULED"
	TypeAppointmentReminder    = "APPOINTMENT_REMINDER"
	TypeRelationshipRequested  = "THERAPIST_REQUEST_RECEIVED"
	TypeRelationshipAccepted   = "THERAPIST_REQUEST_ACCEPTED"
	TypeApplicationReviewed    = "THERAPIST_APPLICATION_REVIEWED"
	TypeWorksheetAssigned      = "WORKSHEET_ASSIGNED"
	TypeWorksheetSubmitted     = "WORKSHEET_SUBMITTED"
	TypeMessageReceived        = "MESSAGE_RECEIVED"
	TypeModerationWarning      = "MODERATION_WARNING"
	TypeReviewReceived         = "REVIEW_RECEIVED"
)

// Notification is an in-app message for a user
type Notification struct {
	ID        string `validate:"required,uuid4"`
	UserID    string `validate:"required,uuid4"`
	Type      string `validate:"required,max=64"`
	Title     string `validate:"required,max=200"`
	Message   string `validate:"max=2000"`
	Data      map[string]interface{}
	IsRead    bool
	ReadAt    *time.Time
	CreatedAt time.Time
}

// Validate for validating Notification struct
func (n *Notification) Validate() error {
	return validators.ValidateStruct(n)
}

// Query filters a user's notifications
type Query struct {
	UnreadOnly bool
	Page       int
	Limit      int
}

// Envelope is a realtime message pushed to connected clients
type Envelope struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// Realtime envelope types
const (
	EnvelopeNotification = "notification"
	EnvelopeMessage      = "message"
	EnvelopePong         = "pong"
)
