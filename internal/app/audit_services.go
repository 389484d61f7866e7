package app

import (
	"context"
	"fmt"
	"time"

	"github.com/Wetooa/mentara-sub026/internal/domain/auditlogs"
	"github.com/Wetooa/mentara-sub026/internal/domain/events"
	"github.com/Wetooa/mentara-sub026/internal/domain/shared"
	"github.com/Wetooa/mentara-sub026/internal/pkg/apperr"
	"github.com/Wetooa/mentara-sub026/internal/pkg/logger"
	"github.com/Wetooa/mentara-sub026/internal/pkg/reqctx"

	"github.com/google/uuid"
)

// auditService implements the AuditService interface
type auditService struct {
	logs         auditlogs.AuditLogRepository
	systemEvents auditlogs.SystemEventRepository
	now          Clock
	logger       logger.Logger
}

// NewAuditService creates a new instance of AuditService
func NewAuditService(logRepo auditlogs.AuditLogRepository, systemEventRepo auditlogs.SystemEventRepository, logger logger.Logger) (auditlogs.AuditService, error) {
	return &auditService{
		logs:         logRepo,
		systemEvents: systemEventRepo,
		now:          utcNow,
		logger:       logger,
	}, nil
}

// CreateAuditLog records input with the request details carried by ctx
func (s *auditService) CreateAuditLog(ctx context.Context, input *auditlogs.AuditInput) (*auditlogs.AuditLog, error) {
	if input == nil {
		return nil, apperr.Validation("validation failed: audit data is required", nil)
	}
	md := reqctx.FromContext(ctx)

	entry := &auditlogs.AuditLog{
		ID:          uuid.NewString(),
		Action:      input.Action,
		Entity:      input.Entity,
		EntityID:    input.EntityID,
		UserID:      input.UserID,
		UserRole:    input.UserRole,
		OldValues:   input.OldValues,
		NewValues:   input.NewValues,
		Description: input.Description,
		Metadata:    input.Metadata,
		IPAddress:   md.IPAddress,
		UserAgent:   md.UserAgent,
		RequestID:   md.RequestID,
		CreatedAt:   s.now(),
	}
	if entry.UserID == "" {
		entry.UserID = md.UserID
	}
	if entry.UserRole == "" {
		entry.UserRole = md.UserRole
	}
	if err := s.logs.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to create audit log: %w", err)
	}
	return entry, nil
}

// FindAuditLogs pages through matching audit logs, newest first
func (s *auditService) FindAuditLogs(ctx context.Context, query *auditlogs.Query) (*shared.Page[*auditlogs.AuditLog], error) {
	if query == nil {
		query = &auditlogs.Query{}
	}
	page := shared.NewPagination(query.Page, query.Limit, shared.DefaultLimit)
	list, total, err := s.logs.Find(ctx, query, page)
	if err != nil {
		return nil, fmt.Errorf("failed to find audit logs: %w", err)
	}
	return shared.NewPage(list, total, page), nil
}

func (s *auditService) GetAuditStats(ctx context.Context, from, to *time.Time) (*auditlogs.Stats, error) {
	if from != nil && to != nil && to.Before(*from) {
		return nil, apperr.Validation("validation failed: dateTo must not be before dateFrom", nil)
	}
	byAction, err := s.logs.CountByAction(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to count audit logs: %w", err)
	}
	byEntity, err := s.logs.CountByEntity(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to count audit logs: %w", err)
	}

	var total int64
	for _, n := range byAction {
		total += n
	}
	return &auditlogs.Stats{
		Total:    total,
		ByAction: byAction,
		ByEntity: byEntity,
		DateFrom: from,
		DateTo:   to,
	}, nil
}

func (s *auditService) CreateSystemEvent(ctx context.Context, input *auditlogs.SystemEventInput) (*auditlogs.SystemEvent, error) {
	if input == nil {
		return nil, apperr.Validation("validation failed: event data is required", nil)
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	event := &auditlogs.SystemEvent{
		ID:          uuid.NewString(),
		EventType:   input.EventType,
		Severity:    input.Severity,
		Title:       input.Title,
		Description: input.Description,
		Component:   input.Component,
		Metadata:    input.Metadata,
		CreatedAt:   s.now(),
	}
	if err := s.systemEvents.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create system event: %w", err)
	}

	switch event.Severity {
	case auditlogs.SeverityCritical, auditlogs.SeverityError:
		s.logger.Error("System event ", event.EventType, ": ", event.Title)
	case auditlogs.SeverityWarning:
		s.logger.Warn("System event ", event.EventType, ": ", event.Title)
	}
	return event, nil
}

func (s *auditService) FindSystemEvents(ctx context.Context, query *auditlogs.SystemEventQuery) (*shared.Page[*auditlogs.SystemEvent], error) {
	if query == nil {
		query = &auditlogs.SystemEventQuery{}
	}
	if err := query.Validate(); err != nil {
		return nil, err
	}
	page := shared.NewPagination(query.Page, query.Limit, shared.DefaultLimit)
	list, total, err := s.systemEvents.Find(ctx, query, page)
	if err != nil {
		return nil, fmt.Errorf("failed to find system events: %w", err)
	}
	return shared.NewPage(list, total, page), nil
}

func (s *auditService) ResolveSystemEvent(ctx context.Context, eventID, userID, resolution string) (*auditlogs.SystemEvent, error) {
	event, err := s.systemEvents.GetByID(ctx, eventID)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, apperr.NotFound("System event not found")
		}
		return nil, err
	}
	if event.IsResolved {
		return nil, apperr.Conflict("System event already resolved")
	}

	event.Resolve(userID, resolution, s.now())
	if err := s.systemEvents.Update(ctx, event); err != nil {
		return nil, apperr.PassThrough("failed to resolve system event", err)
	}
	return event, nil
}

// auditRule maps a domain event to an audit entry
type auditRule struct {
	action      string
	entity      string
	description string
	// subjectIsActor attributes the entry to the aggregate when the event has no actor
	subjectIsActor bool
}

var auditRules = map[string]auditRule{
	events.UserRegistered:                {auditlogs.ActionCreate, auditlogs.EntityUser, "User registered", true},
	events.UserLoggedIn:                  {auditlogs.ActionLogin, auditlogs.EntityUser, "User logged in", true},
	events.UserLoginFailed:               {auditlogs.ActionFailed, auditlogs.EntityUser, "Failed login attempt", true},
	events.UserLoggedOut:                 {auditlogs.ActionLogout, auditlogs.EntityUser, "User logged out", true},
	events.UserProfileUpdated:            {auditlogs.ActionUpdate, auditlogs.EntityUser, "Profile updated", true},
	events.UserDeactivated:               {auditlogs.ActionDelete, auditlogs.EntityUser, "Account deactivated", true},
	events.UserReactivated:               {auditlogs.ActionUpdate, auditlogs.EntityUser, "Account reactivated", false},
	events.UserRoleChanged:               {auditlogs.ActionUpdate, auditlogs.EntityUser, "Role changed", false},
	events.PasswordChanged:               {auditlogs.ActionUpdate, auditlogs.EntityUser, "Password changed", true},
	events.TherapistApplicationSubmitted: {auditlogs.ActionCreate, auditlogs.EntityTherapistApplication, "Therapist application submitted", true},
	events.TherapistApplicationReviewed:  {auditlogs.ActionUpdate, auditlogs.EntityTherapistApplication, "Therapist application reviewed", false},
	events.ClientTherapistRequested:      {auditlogs.ActionCreate, auditlogs.EntityClientTherapist, "Therapist requested", false},
	events.ClientTherapistAccepted:       {auditlogs.ActionAccept, auditlogs.EntityClientTherapist, "Client request accepted", false},
	events.ClientTherapistDenied:         {auditlogs.ActionDeny, auditlogs.EntityClientTherapist, "Client request denied", false},
	events.ClientTherapistRemoved:        {auditlogs.ActionDelete, auditlogs.EntityClientTherapist, "Relationship removed", false},
	events.AppointmentBooked:             {auditlogs.ActionCreate, auditlogs.EntityMeeting, "Meeting booked", false},
	events.AppointmentRescheduled:        {auditlogs.ActionUpdate, auditlogs.EntityMeeting, "Meeting rescheduled", false},
	events.AppointmentCancelled:          {auditlogs.ActionCancel, auditlogs.EntityMeeting, "Meeting cancelled", false},
	events.AppointmentCompleted:          {auditlogs.ActionUpdate, auditlogs.EntityMeeting, "Meeting completed", false},
	events.ConversationCreated:           {auditlogs.ActionCreate, auditlogs.EntityConversation, "Conversation created", false},
	events.ModerationActionTaken:         {auditlogs.ActionModerate, auditlogs.EntityModeration, "Moderation action taken", false},
	events.WorksheetAssigned:             {auditlogs.ActionCreate, auditlogs.EntityWorksheet, "Worksheet assigned", false},
	events.WorksheetReviewed:             {auditlogs.ActionUpdate, auditlogs.EntityWorksheet, "Worksheet reviewed", false},
	events.ReviewSubmitted:               {auditlogs.ActionCreate, auditlogs.EntityReview, "Review submitted", false},
	events.ReviewModerated:               {auditlogs.ActionModerate, auditlogs.EntityReview, "Review moderated", false},
	events.ReviewDeleted:                 {auditlogs.ActionDelete, auditlogs.EntityReview, "Review deleted", false},
}

// AuditSubscriber writes the audit trail from domain events
type AuditSubscriber struct {
	audit  auditlogs.AuditService
	logger logger.Logger
}

// NewAuditSubscriber creates a new instance of AuditSubscriber
func NewAuditSubscriber(audit auditlogs.AuditService, logger logger.Logger) *AuditSubscriber {
	return &AuditSubscriber{audit: audit, logger: logger}
}

// Register subscribes the audit handler to every audited event type
func (s *AuditSubscriber) Register(bus events.Bus) error {
	for eventType := range auditRules {
		if err := bus.Subscribe(eventType, s.Handle); err != nil {
			return fmt.Errorf("failed to subscribe to %s: %w", eventType, err)
		}
	}
	return nil
}

// Handle records event in the audit trail
func (s *AuditSubscriber) Handle(ctx context.Context, event events.Event) error {
	rule, ok := auditRules[event.Type]
	if !ok {
		return nil
	}
	ctx = reqctx.WithMetadata(ctx, reqctx.Metadata{
		RequestID: event.Metadata.RequestID,
		IPAddress: event.Metadata.IPAddress,
		UserAgent: event.Metadata.UserAgent,
		UserID:    event.ActorID,
		UserRole:  event.ActorRole,
	})

	userID := event.ActorID
	if userID == "" && rule.subjectIsActor {
		userID = event.AggregateID
	}

	input := &auditlogs.AuditInput{
		Action:      rule.action,
		Entity:      rule.entity,
		EntityID:    event.AggregateID,
		UserID:      userID,
		UserRole:    event.ActorRole,
		Description: rule.description,
		Metadata:    event.Payload,
	}
	if old, ok := event.Payload["oldValues"].(map[string]interface{}); ok {
		input.OldValues = old
	}
	if updated, ok := event.Payload["newValues"].(map[string]interface{}); ok {
		input.NewValues = updated
	}
	if event.Type == events.TherapistApplicationReviewed {
		switch event.String("status") {
		case "approved":
			input.Action = auditlogs.ActionApprove
		case "rejected":
			input.Action = auditlogs.ActionReject
		}
	}
	if _, err := s.audit.CreateAuditLog(ctx, input); err != nil {
		return err
	}

	if event.Type == events.UserLoginFailed {
		_, err := s.audit.CreateSystemEvent(ctx, &auditlogs.SystemEventInput{
			EventType:   auditlogs.EventFailedLoginAttempt,
			Severity:    auditlogs.SeverityWarning,
			Title:       "Failed login attempt",
			Description: "Failed login for " + event.String("email"),
			Component:   "auth",
			Metadata: map[string]interface{}{
				"userId":    event.AggregateID,
				"ipAddress": event.Metadata.IPAddress,
				"attempts":  event.Payload["attempts"],
				"locked":    event.Payload["locked"],
			},
		})
		return err
	}
	return nil
}
