package app

import (
	"context"
	"fmt"
	"time"

	"github.com/Wetooa/mentara-sub026/internal/domain/clients"
	"github.com/Wetooa/mentara-sub026/internal/domain/events"
	"github.com/Wetooa/mentara-sub026/internal/domain/meetings"
	"github.com/Wetooa/mentara-sub026/internal/domain/notifications"
	"github.com/Wetooa/mentara-sub026/internal/domain/therapists"
	"github.com/Wetooa/mentara-sub026/internal/domain/users"
	"github.com/Wetooa/mentara-sub026/internal/infrastructure/email"
	"github.com/Wetooa/mentara-sub026/internal/pkg/apperr"
	"github.com/Wetooa/mentara-sub026/internal/pkg/logger"

	"github.com/google/uuid"
)

// DefaultMeetingTitle is used when a booking carries no title
const DefaultMeetingTitle = "Therapy Session"

// ReminderWindow is how far ahead meeting reminders are sent
const ReminderWindow = 24 * time.Hour

// bookingService implements the BookingService interface
type bookingService struct {
	meetings       meetings.MeetingRepository
	availabilities meetings.AvailabilityRepository
	relationships  clients.RelationshipRepository
	therapists     therapists.TherapistRepository
	users          users.UserRepository
	exporter       meetings.CalendarExporter
	slotConfig     meetings.SlotConfig
	events         eventPublisher
	email          emailSender
	now            Clock
	logger         logger.Logger
}

// NewBookingService creates a new instance of BookingService
func NewBookingService(
	meetingRepo meetings.MeetingRepository,
	availabilityRepo meetings.AvailabilityRepository,
	relationshipRepo clients.RelationshipRepository,
	therapistRepo therapists.TherapistRepository,
	userRepo users.UserRepository,
	exporter meetings.CalendarExporter,
	bus events.Publisher,
	mailer notifications.Mailer,
	renderer notifications.TemplateRenderer,
	logger logger.Logger,
) (meetings.BookingService, error) {
	if exporter == nil {
		return nil, fmt.Errorf("calendar exporter is required")
	}
	return &bookingService{
		meetings:       meetingRepo,
		availabilities: availabilityRepo,
		relationships:  relationshipRepo,
		therapists:     therapistRepo,
		users:          userRepo,
		exporter:       exporter,
		slotConfig:     meetings.DefaultSlotConfig(),
		events:         eventPublisher{bus: bus, logger: logger},
		email:          emailSender{mailer: mailer, renderer: renderer, logger: logger},
		now:            utcNow,
		logger:         logger,
	}, nil
}

// CreateMeeting books a session for an active client therapist pair inside the therapist's availability
func (s *bookingService) CreateMeeting(ctx context.Context, userID, role string, input *meetings.CreateInput) (*meetings.Details, error) {
	if input == nil {
		return nil, apperr.Validation("validation failed: meeting data is required", nil)
	}
	switch role {
	case users.RoleClient:
		input.ClientID = userID
	case users.RoleTherapist:
		if input.TherapistID != userID {
			return nil, apperr.Forbidden("Therapists can only book their own sessions")
		}
		if input.ClientID == "" {
			return nil, apperr.Validation("validation failed: clientId is required", nil)
		}
	default:
		return nil, apperr.Forbidden("Only clients and therapists can book meetings")
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	rel, err := s.relationships.Get(ctx, input.ClientID, input.TherapistID)
	if err != nil && apperr.KindOf(err) != apperr.KindNotFound {
		return nil, err
	}
	if err != nil || !rel.IsActive() {
		return nil, apperr.Forbidden("No active relationship between client and therapist")
	}

	therapist, err := s.therapists.GetByUserID(ctx, input.TherapistID)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, apperr.NotFound("Therapist not found")
		}
		return nil, err
	}

	now := s.now()
	start := input.StartTime.UTC()
	end := start.Add(time.Duration(input.Duration) * time.Minute)
	if !start.After(now) {
		return nil, apperr.Validation("validation failed: meeting must start in the future", nil)
	}
	if err := s.checkAvailability(ctx, therapist, start, end); err != nil {
		return nil, err
	}
	if err := s.checkConflicts(ctx, input.TherapistID, input.ClientID, start, end, ""); err != nil {
		return nil, err
	}

	meeting := &meetings.Meeting{
		ID:          uuid.NewString(),
		TherapistID: input.TherapistID,
		ClientID:    input.ClientID,
		Title:       input.Title,
		Description: input.Description,
		StartTime:   start,
		EndTime:     end,
		Duration:    input.Duration,
		Status:      meetings.StatusScheduled,
		MeetingType: input.MeetingType,
		MeetingURL:  input.MeetingURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if meeting.Title == "" {
		meeting.Title = DefaultMeetingTitle
	}
	if meeting.MeetingType == "" {
		meeting.MeetingType = meetings.TypeVideo
	}
	if err := s.meetings.Create(ctx, meeting); err != nil {
		return nil, apperr.PassThrough("failed to create meeting", err)
	}

	details, participants, err := s.details(ctx, meeting)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Meeting ", meeting.ID, " booked for ", meeting.StartTime.Format(time.RFC3339))
	s.events.publish(ctx, events.AppointmentBooked, meeting.ID, meetingPayload(meeting))
	s.notifyParticipants(ctx, participants, details, therapist.Location(), notifications.TemplateMeetingConfirmation, "")
	return details, nil
}

// GetMeetings lists the caller's meetings, latest start first
func (s *bookingService) GetMeetings(ctx context.Context, userID, role string, query *meetings.Query) ([]*meetings.Details, error) {
	if query == nil {
		query = &meetings.Query{}
	}
	if err := query.Validate(); err != nil {
		return nil, err
	}

	list, err := s.meetings.ListForUser(ctx, userID, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list meetings: %w", err)
	}

	ids := make([]string, 0, len(list)*2)
	for _, m := range list {
		ids = append(ids, m.TherapistID, m.ClientID)
	}
	accounts, err := usersByID(ctx, s.users, ids)
	if err != nil {
		return nil, err
	}

	result := make([]*meetings.Details, 0, len(list))
	for _, m := range list {
		result = append(result, newDetails(m, accounts))
	}
	return result, nil
}

func (s *bookingService) GetMeeting(ctx context.Context, userID, meetingID string) (*meetings.Details, error) {
	meeting, err := s.participantMeeting(ctx, userID, meetingID)
	if err != nil {
		return nil, err
	}
	details, _, err := s.details(ctx, meeting)
	return details, err
}

// UpdateMeeting changes an open meeting. Moving it re-checks both calendars.
func (s *bookingService) UpdateMeeting(ctx context.Context, userID, meetingID string, input *meetings.UpdateInput) (*meetings.Details, error) {
	if input == nil {
		return nil, apperr.Validation("validation failed: update data is required", nil)
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	meeting, err := s.participantMeeting(ctx, userID, meetingID)
	if err != nil {
		return nil, err
	}
	if meeting.IsFinal() {
		return nil, apperr.Validation("validation failed: completed or cancelled meetings cannot be updated", nil)
	}

	now := s.now()
	if input.ChangesTime() {
		start := meeting.StartTime
		if input.StartTime != nil {
			start = input.StartTime.UTC()
		}
		duration := meeting.Duration
		if input.Duration != nil {
			duration = *input.Duration
		}
		if !meetings.ValidateDuration(duration) {
			return nil, apperr.Validation("validation failed: duration must be between 15 and 240 minutes", nil)
		}
		if !start.After(now) {
			return nil, apperr.Validation("validation failed: meeting must start in the future", nil)
		}
		end := start.Add(time.Duration(duration) * time.Minute)
		therapist, err := s.therapists.GetByUserID(ctx, meeting.TherapistID)
		if err != nil {
			return nil, err
		}
		if err := s.checkAvailability(ctx, therapist, start, end); err != nil {
			return nil, err
		}
		if err := s.checkConflicts(ctx, meeting.TherapistID, meeting.ClientID, start, end, meeting.ID); err != nil {
			return nil, err
		}
		meeting.StartTime = start
		meeting.EndTime = end
		meeting.Duration = duration
		meeting.ReminderSentAt = nil
	}

	previousStatus := meeting.Status
	if input.Title != nil {
		meeting.Title = *input.Title
	}
	if input.Description != nil {
		meeting.Description = *input.Description
	}
	if input.Status != nil {
		meeting.Status = *input.Status
	}
	if input.MeetingType != nil {
		meeting.MeetingType = *input.MeetingType
	}
	if input.MeetingURL != nil {
		meeting.MeetingURL = *input.MeetingURL
	}
	if input.Notes != nil {
		meeting.Notes = *input.Notes
	}
	meeting.UpdatedAt = now

	if err := s.meetings.Update(ctx, meeting); err != nil {
		return nil, apperr.PassThrough("failed to update meeting", err)
	}

	if input.ChangesTime() {
		s.events.publish(ctx, events.AppointmentRescheduled, meeting.ID, meetingPayload(meeting))
	}
	if meeting.Status == meetings.StatusCompleted && previousStatus != meetings.StatusCompleted {
		s.events.publish(ctx, events.AppointmentCompleted, meeting.ID, meetingPayload(meeting))
	}

	details, _, err := s.details(ctx, meeting)
	return details, err
}

// CancelMeeting cancels an open meeting and reports the notice given
func (s *bookingService) CancelMeeting(ctx context.Context, userID, meetingID, reason string) (*meetings.Cancellation, error) {
	meeting, err := s.participantMeeting(ctx, userID, meetingID)
	if err != nil {
		return nil, err
	}
	switch meeting.Status {
	case meetings.StatusCancelled:
		return nil, apperr.Validation("Meeting is already cancelled", nil)
	case meetings.StatusCompleted:
		return nil, apperr.Validation("Cannot cancel completed meetings", nil)
	}

	now := s.now()
	notice := meeting.CancellationNoticeHours(now)
	meeting.Status = meetings.StatusCancelled
	meeting.CancellationReason = reason
	meeting.CancelledAt = &now
	meeting.UpdatedAt = now
	if err := s.meetings.Update(ctx, meeting); err != nil {
		return nil, apperr.PassThrough("failed to cancel meeting", err)
	}

	s.logger.Info("Meeting ", meeting.ID, " cancelled by ", userID, " with ", notice, " hours notice")
	payload := meetingPayload(meeting)
	payload["reason"] = reason
	payload["cancelledBy"] = userID
	s.events.publish(ctx, events.AppointmentCancelled, meeting.ID, payload)

	if details, participants, err := s.details(ctx, meeting); err == nil {
		s.notifyParticipants(ctx, participants, details, s.therapistLocation(ctx, meeting.TherapistID), notifications.TemplateMeetingCancelled, reason)
	} else {
		s.logger.Warn("Failed to load participants of cancelled meeting ", meeting.ID, ": ", err)
	}

	return &meetings.Cancellation{
		Meeting:                 meeting,
		CancellationNoticeHours: notice,
		RefundEligible:          meetings.IsRefundEligible(notice),
	}, nil
}

// ExportMeetingICS renders the meeting as an iCalendar document for a participant
func (s *bookingService) ExportMeetingICS(ctx context.Context, userID, meetingID string) ([]byte, error) {
	details, err := s.GetMeeting(ctx, userID, meetingID)
	if err != nil {
		return nil, err
	}
	data, err := s.exporter.Export(details)
	if err != nil {
		return nil, fmt.Errorf("failed to export meeting: %w", err)
	}
	return data, nil
}

// GenerateAvailableSlots lists bookable start times of the therapist on date, in the therapist's time zone
func (s *bookingService) GenerateAvailableSlots(ctx context.Context, therapistID string, date time.Time) ([]meetings.TimeSlot, error) {
	therapist, err := s.therapists.GetByUserID(ctx, therapistID)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, apperr.NotFound("Therapist not found")
		}
		return nil, err
	}
	if !therapist.IsApproved() {
		return nil, apperr.NotFound("Therapist not found")
	}

	loc := therapist.Location()
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	now := s.now()
	if err := meetings.ValidateBookingDay(day, loc, now, s.slotConfig); err != nil {
		return nil, err
	}

	availabilities, err := s.availabilities.ListByTherapist(ctx, therapistID)
	if err != nil {
		return nil, fmt.Errorf("failed to list availability: %w", err)
	}
	booked, err := s.meetings.ListOverlapping(ctx, []string{therapistID}, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to list meetings: %w", err)
	}

	return meetings.GenerateSlots(meetings.SlotRequest{
		Date:           day,
		Location:       loc,
		Availabilities: availabilities,
		Meetings:       booked,
		Now:            now,
	}, s.slotConfig), nil
}

// SendReminders emails both participants of meetings starting within ReminderWindow and marks them reminded
func (s *bookingService) SendReminders(ctx context.Context) (int, error) {
	now := s.now()
	due, err := s.meetings.ListDueForReminder(ctx, now, now.Add(ReminderWindow))
	if err != nil {
		return 0, fmt.Errorf("failed to list due meetings: %w", err)
	}

	sent := 0
	for _, meeting := range due {
		details, participants, err := s.details(ctx, meeting)
		if err != nil {
			s.logger.Warn("Skipping reminder for meeting ", meeting.ID, ": ", err)
			continue
		}
		s.notifyParticipants(ctx, participants, details, s.therapistLocation(ctx, meeting.TherapistID), notifications.TemplateMeetingReminder, "")
		if err := s.meetings.MarkReminderSent(ctx, meeting.ID, now); err != nil {
			return sent, fmt.Errorf("failed to mark reminder sent: %w", err)
		}
		sent++
	}

	if sent > 0 {
		s.logger.Info("Sent reminders for ", sent, " meetings")
	}
	return sent, nil
}

func (s *bookingService) participantMeeting(ctx context.Context, userID, meetingID string) (*meetings.Meeting, error) {
	if err := requireID("meetingId", meetingID); err != nil {
		return nil, err
	}
	meeting, err := s.meetings.GetByID(ctx, meetingID)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, apperr.NotFound("Meeting not found")
		}
		return nil, err
	}
	if !meeting.IsParticipant(userID) {
		return nil, apperr.Forbidden("You do not have access to this meeting")
	}
	return meeting, nil
}

func (s *bookingService) checkAvailability(ctx context.Context, therapist *therapists.Therapist, start, end time.Time) error {
	windows, err := s.availabilities.ListByTherapist(ctx, therapist.UserID)
	if err != nil {
		return fmt.Errorf("failed to list availability: %w", err)
	}
	loc := therapist.Location()
	for _, w := range windows {
		if w.Covers(start, end, loc) {
			return nil
		}
	}
	return apperr.Validation("validation failed: therapist is not available at the requested time", nil)
}

func (s *bookingService) checkConflicts(ctx context.Context, therapistID, clientID string, start, end time.Time, excludeID string) error {
	overlapping, err := s.meetings.ListOverlapping(ctx, []string{therapistID, clientID}, start, end)
	if err != nil {
		return fmt.Errorf("failed to check conflicts: %w", err)
	}
	if conflict := meetings.FindConflict(overlapping, start, end, excludeID); conflict != nil {
		return apperr.Conflict("Time slot conflicts with an existing meeting")
	}
	return nil
}

func (s *bookingService) therapistLocation(ctx context.Context, therapistID string) *time.Location {
	therapist, err := s.therapists.GetByUserID(ctx, therapistID)
	if err != nil {
		return time.UTC
	}
	return therapist.Location()
}

// details loads both participants of meeting
func (s *bookingService) details(ctx context.Context, meeting *meetings.Meeting) (*meetings.Details, map[string]*users.User, error) {
	accounts, err := usersByID(ctx, s.users, []string{meeting.TherapistID, meeting.ClientID})
	if err != nil {
		return nil, nil, err
	}
	return newDetails(meeting, accounts), accounts, nil
}

func (s *bookingService) notifyParticipants(ctx context.Context, participants map[string]*users.User, details *meetings.Details, loc *time.Location, template, reason string) {
	m := details.Meeting
	pairs := []struct{ to, other string }{
		{m.ClientID, details.TherapistName},
		{m.TherapistID, details.ClientName},
	}
	for _, p := range pairs {
		recipient, ok := participants[p.to]
		if !ok {
			continue
		}
		s.email.send(ctx, recipient.Email, template, email.MeetingNotice{
			Name:       recipient.FullName(),
			OtherParty: p.other,
			Title:      m.Title,
			When:       email.FormatWhen(m.StartTime, loc),
			Duration:   m.Duration,
			MeetingURL: m.MeetingURL,
			Reason:     reason,
		})
	}
}

func newDetails(meeting *meetings.Meeting, accounts map[string]*users.User) *meetings.Details {
	details := &meetings.Details{Meeting: meeting, DateTime: meeting.StartTime}
	if u, ok := accounts[meeting.TherapistID]; ok {
		details.TherapistName = u.FullName()
	}
	if u, ok := accounts[meeting.ClientID]; ok {
		details.ClientName = u.FullName()
	}
	return details
}

func meetingPayload(m *meetings.Meeting) map[string]interface{} {
	return map[string]interface{}{
		"therapistId": m.TherapistID,
		"clientId":    m.ClientID,
		"title":       m.Title,
		"startTime":   m.StartTime.Format(time.RFC3339),
		"duration":    m.Duration,
		"status":      m.Status,
	}
}

// availabilityService implements the AvailabilityService interface
type availabilityService struct {
	availabilities meetings.AvailabilityRepository
	now            Clock
	logger         logger.Logger
}

// NewAvailabilityService creates a new instance of AvailabilityService
func NewAvailabilityService(availabilityRepo meetings.AvailabilityRepository, logger logger.Logger) (meetings.AvailabilityService, error) {
	return &availabilityService{
		availabilities: availabilityRepo,
		now:            utcNow,
		logger:         logger,
	}, nil
}

func (s *availabilityService) Create(ctx context.Context, therapistID string, input *meetings.AvailabilityInput) (*meetings.Availability, error) {
	if input == nil {
		return nil, apperr.Validation("validation failed: availability data is required", nil)
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	availability := &meetings.Availability{
		ID:          uuid.NewString(),
		TherapistID: therapistID,
		DayOfWeek:   input.DayOfWeek,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		IsAvailable: input.IsAvailable == nil || *input.IsAvailable,
		Notes:       input.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.availabilities.Create(ctx, availability); err != nil {
		return nil, apperr.PassThrough("failed to create availability", err)
	}
	s.logger.Info("Availability ", availability.ID, " created for ", therapistID)
	return availability, nil
}

func (s *availabilityService) List(ctx context.Context, therapistID string) ([]*meetings.Availability, error) {
	return s.availabilities.ListByTherapist(ctx, therapistID)
}

// Update replaces an availability window owned by the therapist
func (s *availabilityService) Update(ctx context.Context, therapistID, availabilityID string, input *meetings.AvailabilityInput) (*meetings.Availability, error) {
	if input == nil {
		return nil, apperr.Validation("validation failed: availability data is required", nil)
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	availability, err := s.owned(ctx, therapistID, availabilityID)
	if err != nil {
		return nil, err
	}

	availability.DayOfWeek = input.DayOfWeek
	availability.StartTime = input.StartTime
	availability.EndTime = input.EndTime
	if input.IsAvailable != nil {
		availability.IsAvailable = *input.IsAvailable
	}
	availability.Notes = input.Notes
	availability.UpdatedAt = s.now()
	if err := s.availabilities.Update(ctx, availability); err != nil {
		return nil, apperr.PassThrough("failed to update availability", err)
	}
	return availability, nil
}

func (s *availabilityService) Delete(ctx context.Context, therapistID, availabilityID string) error {
	if _, err := s.owned(ctx, therapistID, availabilityID); err != nil {
		return err
	}
	return s.availabilities.Delete(ctx, availabilityID)
}

func (s *availabilityService) owned(ctx context.Context, therapistID, availabilityID string) (*meetings.Availability, error) {
	availability, err := s.availabilities.GetByID(ctx, availabilityID)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, apperr.NotFound("Availability slot not found")
		}
		return nil, err
	}
	if availability.TherapistID != therapistID {
		return nil, apperr.NotFound("Availability slot not found")
	}
	return availability, nil
}
