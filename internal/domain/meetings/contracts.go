package meetings

import (
	"context"
	"time"
)

// MeetingRepository persists meetings
type MeetingRepository interface {
	Create(ctx context.Context, meeting *Meeting) error
	GetByID(ctx context.Context, meetingID string) (*Meeting, error)
	Update(ctx context.Context, meeting *Meeting) error
	// ListForUser returns meetings where userID takes part, newest start first
	ListForUser(ctx context.Context, userID string, query *Query) ([]*Meeting, error)
	// ListOverlapping returns blocking meetings of any of userIDs intersecting [start, end)
	ListOverlapping(ctx context.Context, userIDs []string, start, end time.Time) ([]*Meeting, error)
	// ListDueForReminder returns blocking meetings starting in [from, to) without a reminder
	ListDueForReminder(ctx context.Context, from, to time.Time) ([]*Meeting, error)
	MarkReminderSent(ctx context.Context, meetingID string, at time.Time) error
}

// AvailabilityRepository persists therapist availability windows
type AvailabilityRepository interface {
	Create(ctx context.Context, availability *Availability) error
	GetByID(ctx context.Context, availabilityID string) (*Availability, error)
	// ListByTherapist returns windows ordered by weekday then start time
	ListByTherapist(ctx context.Context, therapistID string) ([]*Availability, error)
	Update(ctx context.Context, availability *Availability) error
	Delete(ctx context.Context, availabilityID string) error
}

// CalendarExporter renders meetings as iCalendar documents
type CalendarExporter interface {
	Export(meeting *Details) ([]byte, error)
}

// BookingService books and manages meetings
type BookingService interface {
	CreateMeeting(ctx context.Context, userID, role string, input *CreateInput) (*Details, error)
	GetMeetings(ctx context.Context, userID, role string, query *Query) ([]*Details, error)
	GetMeeting(ctx context.Context, userID, meetingID string) (*Details, error)
	UpdateMeeting(ctx context.Context, userID, meetingID string, input *UpdateInput) (*Details, error)
	CancelMeeting(ctx context.Context, userID, meetingID, reason string) (*Cancellation, error)
	ExportMeetingICS(ctx context.Context, userID, meetingID string) ([]byte, error)
	GenerateAvailableSlots(ctx context.Context, therapistID string, date time.Time) ([]TimeSlot, error)
	SendReminders(ctx context.Context) (int, error)
}

// AvailabilityService manages a therapist's availability windows
type AvailabilityService interface {
	Create(ctx context.Context, therapistID string, input *AvailabilityInput) (*Availability, error)
	List(ctx context.Context, therapistID string) ([]*Availability, error)
	Update(ctx context.Context, therapistID, availabilityID string, input *AvailabilityInput) (*Availability, error)
	Delete(ctx context.Context, therapistID, availabilityID string) error
}
