package meetings

import (
	"math"
	"time"

	"github.com/Wetooa/mentara-sub026/internal/pkg/validators"
)

// Meeting statuses
const (
	StatusScheduled  = "SCHEDULED"
	StatusConfirmed  = "CONFIRMED"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
	StatusCancelled  = "CANCELLED"
	StatusNoShow     = "NO_SHOW"
)

// Meeting types
const (
	TypeVideo    = "video"
	TypeAudio    = "audio"
	TypeChat     = "chat"
	TypeInPerson = "in_person"
)

// Duration limits in minutes
const (
	MinDurationMinutes = 15
	MaxDurationMinutes = 240
)

// RefundNoticeHours is the minimum notice for a refundable cancellation
const RefundNoticeHours = 24

// BlockingStatuses occupy a therapist's or client's calendar
var BlockingStatuses = []string{StatusScheduled, StatusConfirmed, StatusInProgress}

// Meeting is a therapy session between a therapist and a client
type Meeting struct {
	ID                 string    `validate:"required,uuid4"`
	TherapistID        string    `validate:"required,uuid4"`
	ClientID           string    `validate:"required,uuid4,nefield=TherapistID"`
	Title              string    `validate:"required,notblank,max=200"`
	Description        string    `validate:"max=2000"`
	StartTime          time.Time `validate:"required"`
	EndTime            time.Time `validate:"required,gtfield=StartTime"`
	Duration           int       `validate:"gte=15,lte=240"`
	Status             string    `validate:"required,oneof=SCHEDULED CONFIRMED IN_PROGRESS COMPLETED CANCELLED NO_SHOW"`
	MeetingType        string    `validate:"required,oneof=video audio chat in_person"`
	MeetingURL         string    `validate:"omitempty,url,max=2048"`
	Notes              string    `validate:"max=5000"`
	CancellationReason string    `validate:"max=1000"`
	CancelledAt        *time.Time
	ReminderSentAt     *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Validate for validating Meeting struct
func (m *Meeting) Validate() error {
	return validators.ValidateStruct(m)
}

// IsParticipant reports whether userID is the therapist or the client of the meeting
func (m *Meeting) IsParticipant(userID string) bool {
	return userID != "" && (m.TherapistID == userID || m.ClientID == userID)
}

// IsFinal reports whether the meeting can no longer change
func (m *Meeting) IsFinal() bool {
	return m.Status == StatusCompleted || m.Status == StatusCancelled
}

// Overlaps reports whether the meeting intersects [start, end)
func (m *Meeting) Overlaps(start, end time.Time) bool {
	return m.StartTime.Before(end) && start.Before(m.EndTime)
}

// IsBlocking reports whether the meeting occupies its participants' calendars
func (m *Meeting) IsBlocking() bool {
	for _, s := range BlockingStatuses {
		if m.Status == s {
			return true
		}
	}
	return false
}

// CancellationNoticeHours returns the hours between now and the meeting start, rounded down
func (m *Meeting) CancellationNoticeHours(now time.Time) int {
	return int(math.Floor(m.StartTime.Sub(now).Hours()))
}

// Cancellation describes a cancelled meeting
type Cancellation struct {
	Meeting                 *Meeting
	CancellationNoticeHours int
	RefundEligible          bool
}

// IsRefundEligible reports whether notice hours qualify for a refund
func IsRefundEligible(noticeHours int) bool {
	return noticeHours >= RefundNoticeHours
}

// ValidateDuration checks a requested duration in minutes
func ValidateDuration(minutes int) bool {
	return minutes >= MinDurationMinutes && minutes <= MaxDurationMinutes
}
