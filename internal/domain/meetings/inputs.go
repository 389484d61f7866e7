package meetings

import (
	"time"

	"github.com/Wetooa/mentara-sub026/internal/pkg/validators"
)

// CreateInput books a meeting
type CreateInput struct {
	TherapistID string    `validate:"required,uuid4"`
	ClientID    string    `validate:"omitempty,uuid4"`
	Title       string    `validate:"omitempty,max=200"`
	Description string    `validate:"max=2000"`
	StartTime   time.Time `validate:"required"`
	Duration    int       `validate:"required,gte=15,lte=240"`
	MeetingType string    `validate:"omitempty,oneof=video audio chat in_person"`
	MeetingURL  string    `validate:"omitempty,url,max=2048"`
}

// Validate for validating CreateInput struct
func (in *CreateInput) Validate() error {
	return validators.ValidateStruct(in)
}

// UpdateInput changes a meeting. Nil fields are left untouched.
type UpdateInput struct {
	Title       *string    `validate:"omitempty,notblank,max=200"`
	Description *string    `validate:"omitempty,max=2000"`
	StartTime   *time.Time `validate:"omitempty"`
	Duration    *int       `validate:"omitempty,gte=15,lte=240"`
	Status      *string    `validate:"omitempty,oneof=SCHEDULED CONFIRMED IN_PROGRESS COMPLETED NO_SHOW"`
	MeetingType *string    `validate:"omitempty,oneof=video audio chat in_person"`
	MeetingURL  *string    `validate:"omitempty,url,max=2048"`
	Notes       *string    `validate:"omitempty,max=5000"`
}

// Validate for validating UpdateInput struct
func (in *UpdateInput) Validate() error {
	return validators.ValidateStruct(in)
}

// ChangesTime reports whether the update moves or resizes the meeting
func (in *UpdateInput) ChangesTime() bool {
	return in.StartTime != nil || in.Duration != nil
}

// Query filters a user's meetings
type Query struct {
	Status string `validate:"omitempty,oneof=SCHEDULED CONFIRMED IN_PROGRESS COMPLETED CANCELLED NO_SHOW"`
	From   *time.Time
	To     *time.Time
	Limit  int `validate:"gte=0"`
	Offset int `validate:"gte=0"`
}

// Validate for validating Query struct
func (q *Query) Validate() error {
	return validators.ValidateStruct(q)
}

// Details is a meeting with the display fields added for its participants
type Details struct {
	Meeting       *Meeting
	DateTime      time.Time
	TherapistName string
	ClientName    string
}
