package auditlogs

import (
	"time"

	"github.com/Wetooa/mentara-sub026/internal/pkg/validators"
)

// System event severities
const (
	SeverityDebug    = "DEBUG"
	SeverityInfo     = "INFO"
	SeverityWarning  = "WARNING"
	SeverityError    = "ERROR"
	SeverityCritical = "CRITICAL"
)

// System event types
const (
	EventFailedLoginAttempt = "FAILED_LOGIN_ATTEMPT"
	EventCrisisContent      = "CRISIS_CONTENT_DETECTED"
	EventPerformanceAlert   = "PERFORMANCE_ALERT"
	EventJobFailed          = "SCHEDULED_JOB_FAILED"
)

// SystemEvent is an operational occurrence that may need attention
type SystemEvent struct {
	ID          string `validate:"required,uuid4"`
	EventType   string `validate:"required,max=64"`
	Severity    string `validate:"required,oneof=DEBUG INFO WARNING ERROR CRITICAL"`
	Title       string `validate:"required,max=200"`
	Description string `validate:"max=2000"`
	Component   string `validate:"max=64"`
	Metadata    map[string]interface{}
	IsResolved  bool
	ResolvedAt  *time.Time
	ResolvedBy  string
	Resolution  string `validate:"max=2000"`
	CreatedAt   time.Time
}

// Validate for validating SystemEvent struct
func (e *SystemEvent) Validate() error {
	return validators.ValidateStruct(e)
}

// Resolve marks the event resolved by userID at now
func (e *SystemEvent) Resolve(userID, resolution string, now time.Time) {
	e.IsResolved = true
	e.ResolvedAt = &now
	e.ResolvedBy = userID
	e.Resolution = resolution
}

// SystemEventQuery filters system events
type SystemEventQuery struct {
	EventType  string
	Severity   string `validate:"omitempty,oneof=DEBUG INFO WARNING ERROR CRITICAL"`
	IsResolved *bool
	Page       int
	Limit      int
}

// Validate for validating SystemEventQuery struct
func (q *SystemEventQuery) Validate() error {
	return validators.ValidateStruct(q)
}

// SystemEventInput raises a system event
type SystemEventInput struct {
	EventType   string `validate:"required,max=64"`
	Severity    string `validate:"required,oneof=DEBUG INFO WARNING ERROR CRITICAL"`
	Title       string `validate:"required,max=200"`
	Description string `validate:"max=2000"`
	Component   string `validate:"max=64"`
	Metadata    map[string]interface{}
}

// Validate for validating SystemEventInput struct
func (in *SystemEventInput) Validate() error {
	return validators.ValidateStruct(in)
}
