package worksheets

import (
	"time"

	"github.com/Wetooa/mentara-sub026/internal/pkg/validators"
)

// Worksheet statuses
const (
	StatusAssigned  = "assigned"
	StatusSubmitted = "submitted"
	StatusReviewed  = "reviewed"
	StatusOverdue   = "overdue"
)

// Worksheet is homework a therapist assigns to a client
type Worksheet struct {
	ID                string `validate:"required,uuid4"`
	TherapistID       string `validate:"required,uuid4"`
	ClientID          string `validate:"required,uuid4,nefield=TherapistID"`
	Title             string `validate:"required,notblank,max=200"`
	Instructions      string `validate:"max=5000"`
	DueDate           *time.Time
	Status            string `validate:"required,oneof=assigned submitted reviewed overdue"`
	SubmissionContent string `validate:"max=20000"`
	SubmittedAt       *time.Time
	Feedback          string `validate:"max=5000"`
	ReviewedAt        *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Validate for validating Worksheet struct
func (w *Worksheet) Validate() error {
	return validators.ValidateStruct(w)
}

// IsParticipant reports whether userID is the therapist or client of the worksheet
func (w *Worksheet) IsParticipant(userID string) bool {
	return userID != "" && (w.TherapistID == userID || w.ClientID == userID)
}

// CanSubmit reports whether the client may still hand the worksheet in
func (w *Worksheet) CanSubmit() bool {
	return w.Status == StatusAssigned || w.Status == StatusOverdue
}

// IsOverdue reports whether an assigned worksheet passed its due date at now
func (w *Worksheet) IsOverdue(now time.Time) bool {
	return w.Status == StatusAssigned && w.DueDate != nil && w.DueDate.Before(now)
}

// AssignInput assigns a worksheet
type AssignInput struct {
	ClientID     string     `validate:"required,uuid4"`
	Title        string     `validate:"required,notblank,max=200"`
	Instructions string     `validate:"max=5000"`
	DueDate      *time.Time `validate:"omitempty"`
}

// Validate for validating AssignInput struct
func (in *AssignInput) Validate() error {
	return validators.ValidateStruct(in)
}

// SubmitInput hands a worksheet in
type SubmitInput struct {
	Content string `validate:"required,notblank,max=20000"`
}

// Validate for validating SubmitInput struct
func (in *SubmitInput) Validate() error {
	return validators.ValidateStruct(in)
}

// ReviewInput gives feedback on a submission
type ReviewInput struct {
	Feedback string `validate:"required,notblank,max=5000"`
}

// Validate for validating ReviewInput struct
func (in *ReviewInput) Validate() error {
	return validators.ValidateStruct(in)
}

// Query filters worksheets
type Query struct {
	Status string `validate:"omitempty,oneof=assigned submitted reviewed overdue"`
	Page   int
	Limit  int
}

// Validate for validating Query struct
func (q *Query) Validate() error {
	return validators.ValidateStruct(q)
}
