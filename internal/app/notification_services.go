package app

import (
	"context"
	"fmt"

	"github.com/Wetooa/mentara-sub026/internal/domain/events"
	"github.com/Wetooa/mentara-sub026/internal/domain/moderation"
	"github.com/Wetooa/mentara-sub026/internal/domain/notifications"
	"github.com/Wetooa/mentara-sub026/internal/domain/shared"
	"github.com/Wetooa/mentara-sub026/internal/domain/therapists"
	"github.com/Wetooa/mentara-sub026/internal/pkg/apperr"
	"github.com/Wetooa/mentara-sub026/internal/pkg/logger"

	"github.com/google/uuid"
)

// notificationService implements the NotificationService interface
type notificationService struct {
	notifications notifications.NotificationRepository
	pusher        notifications.Pusher
	now           Clock
	logger        logger.Logger
}

// NewNotificationService creates a new instance of NotificationService
func NewNotificationService(notificationRepo notifications.NotificationRepository, pusher notifications.Pusher, logger logger.Logger) (notifications.NotificationService, error) {
	return &notificationService{
		notifications: notificationRepo,
		pusher:        pusher,
		now:           utcNow,
		logger:        logger,
	}, nil
}

// Notify stores a notification and pushes it to the user's open connections
func (s *notificationService) Notify(ctx context.Context, input *notifications.NotificationInput) (*notifications.Notification, error) {
	if input == nil {
		return nil, apperr.Validation("validation failed: notification data is required", nil)
	}
	notification := &notifications.Notification{
		ID:        uuid.NewString(),
		UserID:    input.UserID,
		Type:      input.Type,
		Title:     input.Title,
		Message:   input.Message,
		Data:      input.Data,
		CreatedAt: s.now(),
	}
	if notification.Data == nil {
		notification.Data = map[string]interface{}{}
	}
	if err := s.notifications.Create(ctx, notification); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	if s.pusher != nil {
		envelope := notifications.Envelope{Type: notifications.EnvelopeNotification, Data: notification}
		if err := s.pusher.SendToUser(notification.UserID, envelope); err != nil {
			s.logger.Warn("Failed to push notification ", notification.ID, ": ", err)
		}
	}
	return notification, nil
}

func (s *notificationService) List(ctx context.Context, userID string, query *notifications.Query) (*shared.Page[*notifications.Notification], error) {
	if query == nil {
		query = &notifications.Query{}
	}
	page := shared.NewPagination(query.Page, query.Limit, shared.DefaultLimit)
	list, total, err := s.notifications.List(ctx, userID, query.UnreadOnly, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return shared.NewPage(list, total, page), nil
}

func (s *notificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return s.notifications.CountUnread(ctx, userID)
}

func (s *notificationService) MarkRead(ctx context.Context, userID, notificationID string) error {
	notification, err := s.owned(ctx, userID, notificationID)
	if err != nil {
		return err
	}
	if notification.IsRead {
		return nil
	}
	return s.notifications.MarkRead(ctx, notificationID, s.now())
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return s.notifications.MarkAllRead(ctx, userID, s.now())
}

func (s *notificationService) Delete(ctx context.Context, userID, notificationID string) error {
	if _, err := s.owned(ctx, userID, notificationID); err != nil {
		return err
	}
	return s.notifications.Delete(ctx, notificationID)
}

func (s *notificationService) owned(ctx context.Context, userID, notificationID string) (*notifications.Notification, error) {
	notification, err := s.notifications.GetByID(ctx, notificationID)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, apperr.NotFound("Notification not found")
		}
		return nil, err
	}
	if notification.UserID != userID {
		return nil, apperr.NotFound("Notification not found")
	}
	return notification, nil
}

// NotificationSubscriber turns domain events into in-app notifications
type NotificationSubscriber struct {
	notifications notifications.NotificationService
	logger        logger.Logger
}

// NewNotificationSubscriber creates a new instance of NotificationSubscriber
func NewNotificationSubscriber(service notifications.NotificationService, logger logger.Logger) *NotificationSubscriber {
	return &NotificationSubscriber{notifications: service, logger: logger}
}

// notifiedEvents lists the event types that produce notifications
var notifiedEvents = []string{
	events.AppointmentBooked,
	events.AppointmentCancelled,
	events.AppointmentRescheduled,
	events.ClientTherapistRequested,
	events.ClientTherapistAccepted,
	events.TherapistApplicationReviewed,
	events.WorksheetAssigned,
	events.WorksheetSubmitted,
	events.MessageSent,
	events.ModerationActionTaken,
	events.ReviewSubmitted,
}

// Register subscribes the handler to every notified event type
func (s *NotificationSubscriber) Register(bus events.Bus) error {
	for _, eventType := range notifiedEvents {
		if err := bus.Subscribe(eventType, s.Handle); err != nil {
			return fmt.Errorf("failed to subscribe to %s: %w", eventType, err)
		}
	}
	return nil
}

// Handle creates the notifications event calls for
func (s *NotificationSubscriber) Handle(ctx context.Context, event events.Event) error {
	for _, input := range notificationsFor(event) {
		if input.UserID == "" {
			continue
		}
		if _, err := s.notifications.Notify(ctx, input); err != nil {
			return err
		}
	}
	return nil
}

func notificationsFor(event events.Event) []*notifications.NotificationInput {
	data := map[string]interface{}{"eventId": event.ID, "aggregateId": event.AggregateID}
	one := func(userID, kind, title, message string) []*notifications.NotificationInput {
		return []*notifications.NotificationInput{{UserID: userID, Type: kind, Title: title, Message: message, Data: data}}
	}
	// participants returns the meeting participants other than the actor
	participants := func(kind, title, message string) []*notifications.NotificationInput {
		var out []*notifications.NotificationInput
		for _, id := range []string{event.String("therapistId"), event.String("clientId")} {
			if id != "" && id != event.ActorID {
				out = append(out, one(id, kind, title, message)...)
			}
		}
		return out
	}

	switch event.Type {
	case events.AppointmentBooked:
		return participants(notifications.TypeAppointmentBooked, "Session booked",
			"A session \""+event.String("title")+"\" has been booked.")
	case events.AppointmentCancelled:
		return participants(notifications.TypeAppointmentCancelled, "Session cancelled",
			"The session \""+event.String("title")+"\" has been cancelled.")
	case events.AppointmentRescheduled:
		return participants(notifications.TypeAppointmentRescheduled, "Session rescheduled",
			"The session \""+event.String("title")+"\" has a new time.")
	case events.ClientTherapistRequested:
		return one(event.String("therapistId"), notifications.TypeRelationshipRequested,
			"New client request", "A client has requested you as their therapist.")
	case events.ClientTherapistAccepted:
		return one(event.String("clientId"), notifications.TypeRelationshipAccepted,
			"Request accepted", "Your therapist has accepted your request.")
	case events.TherapistApplicationReviewed:
		message := "Your therapist application has been updated."
		if event.String("status") == therapists.StatusApproved {
			message = "Your therapist application has been approved."
		}
		return one(event.AggregateID, notifications.TypeApplicationReviewed, "Application reviewed", message)
	case events.WorksheetAssigned:
		return one(event.String("clientId"), notifications.TypeWorksheetAssigned,
			"New worksheet", "You have been assigned \""+event.String("title")+"\".")
	case events.WorksheetSubmitted:
		return one(event.String("therapistId"), notifications.TypeWorksheetSubmitted,
			"Worksheet submitted", "\""+event.String("title")+"\" has been submitted.")
	case events.MessageSent:
		var out []*notifications.NotificationInput
		for _, id := range event.Strings("recipientIds") {
			out = append(out, &notifications.NotificationInput{
				UserID:  id,
				Type:    notifications.TypeMessageReceived,
				Title:   "New message",
				Message: "You have a new message.",
				Data: map[string]interface{}{
					"conversationId": event.String("conversationId"),
					"messageId":      event.AggregateID,
				},
			})
		}
		return out
	case events.ModerationActionTaken:
		if event.String("action") != moderation.ActionWarn {
			return nil
		}
		return one(event.String("targetUserId"), notifications.TypeModerationWarning,
			"Community guidelines warning", "A moderator reviewed content you posted. Please follow the community guidelines.")
	case events.ReviewSubmitted:
		return one(event.String("therapistId"), notifications.TypeReviewReceived,
			"New review", "A client rated a session "+event.String("rating")+" out of 5.")
	}
	return nil
}
