package moderation

import (
	"time"

	"github.com/Wetooa/mentara-sub026/internal/pkg/validators"
)

// Reported content types
const (
	ContentReview  = "review"
	ContentMessage = "message"
	ContentUser    = "user"
)

// Report reasons
const (
	ReasonSpam          = "spam"
	ReasonHarassment    = "harassment"
	ReasonHateSpeech    = "hate_speech"
	ReasonSelfHarm      = "self_harm"
	ReasonInappropriate = "inappropriate"
	ReasonOther         = "other"
)

// Reasons lists every report reason
var Reasons = []string{ReasonSpam, ReasonHarassment, ReasonHateSpeech, ReasonSelfHarm, ReasonInappropriate, ReasonOther}

// Report statuses
const (
	ReportPending     = "pending"
	ReportUnderReview = "under_review"
	ReportResolved    = "resolved"
	ReportDismissed   = "dismissed"
)

// ReportStatuses lists every report status
var ReportStatuses = []string{ReportPending, ReportUnderReview, ReportResolved, ReportDismissed}

// ContentReport is a user's complaint about content or another user
type ContentReport struct {
	ID             string `validate:"required,uuid4"`
	ReporterID     string `validate:"required,uuid4"`
	ContentType    string `validate:"required,oneof=review message user"`
	ContentID      string `validate:"required,max=64"`
	ReportedUserID string `validate:"omitempty,uuid4"`
	Reason         string `validate:"required,oneof=spam harassment hate_speech self_harm inappropriate other"`
	Details        string `validate:"max=2000"`
	Status         string `validate:"required,oneof=pending under_review resolved dismissed"`
	ReviewedBy     string
	ReviewedAt     *time.Time
	ActionTaken    string
	ModeratorNotes string `validate:"max=2000"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Validate for validating ContentReport struct
func (r *ContentReport) Validate() error {
	return validators.ValidateStruct(r)
}

// IsOpen reports whether the report still awaits a decision
func (r *ContentReport) IsOpen() bool {
	return r.Status == ReportPending || r.Status == ReportUnderReview
}

// CreateReportInput files a report
type CreateReportInput struct {
	ContentType    string `validate:"required,oneof=review message user"`
	ContentID      string `validate:"required,max=64"`
	ReportedUserID string `validate:"omitempty,uuid4"`
	Reason         string `validate:"required,oneof=spam harassment hate_speech self_harm inappropriate other"`
	Details        string `validate:"max=2000"`
}

// Validate for validating CreateReportInput struct
func (in *CreateReportInput) Validate() error {
	return validators.ValidateStruct(in)
}

// ReportQuery filters reports
type ReportQuery struct {
	Status      string `validate:"omitempty,oneof=pending under_review resolved dismissed"`
	ContentType string `validate:"omitempty,oneof=review message user"`
	Reason      string `validate:"omitempty,oneof=spam harassment hate_speech self_harm inappropriate other"`
	Page        int
	Limit       int
}

// Validate for validating ReportQuery struct
func (q *ReportQuery) Validate() error {
	return validators.ValidateStruct(q)
}

// Stats counts reports by status and reason
type Stats struct {
	TotalReports int64
	ByStatus     map[string]int64
	ByReason     map[string]int64
	TotalActions int64
}
