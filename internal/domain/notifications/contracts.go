package notifications

import (
	"context"
	"time"

	"github.com/Wetooa/mentara-sub026/internal/domain/shared"
)

// NotificationRepository persists notifications
type NotificationRepository interface {
	Create(ctx context.Context, notification *Notification) error
	GetByID(ctx context.Context, notificationID string) (*Notification, error)
	List(ctx context.Context, userID string, unreadOnly bool, page shared.Pagination) ([]*Notification, int64, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, notificationID string, at time.Time) error
	MarkAllRead(ctx context.Context, userID string, at time.Time) (int64, error)
	Delete(ctx context.Context, notificationID string) error
}

// Email is a rendered message ready to send
type Email struct {
	To      []string
	Subject string
	HTML    string
	Text    string
}

// Mailer delivers emails
type Mailer interface {
	Send(ctx context.Context, email *Email) error
}

// Pusher delivers realtime envelopes to connected users
type Pusher interface {
	SendToUser(userID string, envelope Envelope) error
	Broadcast(userIDs []string, envelope Envelope)
}

// NotificationInput creates a notification
type NotificationInput struct {
	UserID  string
	Type    string
	Title   string
	Message string
	Data    map[string]interface{}
}

// NotificationService manages a user's notifications
type NotificationService interface {
	Notify(ctx context.Context, input *NotificationInput) (*Notification, error)
	List(ctx context.Context, userID string, query *Query) (*shared.Page[*Notification], error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, userID, notificationID string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, userID, notificationID string) error
}

// Email template names
const (
	TemplateTherapistApproved   = "therapist_approved"
	TemplateTherapistRejected   = "therapist_rejected"
	TemplateEmailVerification   = "email_verification"
	TemplatePasswordReset       = "password_reset"
	TemplateMeetingConfirmation = "meeting_confirmation"
	TemplateMeetingCancelled    = "meeting_cancelled"
	TemplateMeetingReminder     = "meeting_reminder"
)

// Rendered is an email subject with its HTML and plain text bodies
type Rendered struct {
	Subject string
	HTML    string
	Text    string
}

// TemplateRenderer renders named email templates
type TemplateRenderer interface {
	Render(name string, data interface{}) (*Rendered, error)
}
