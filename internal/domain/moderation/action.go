package moderation

import (
	"time"

	"github.com/Wetooa/mentara-sub026/internal/pkg/apperr"
	"github.com/Wetooa/mentara-sub026/internal/pkg/validators"
)

// Moderator actions
const (
	ActionWarn          = "warn"
	ActionRemoveContent = "remove_content"
	ActionSuspend       = "suspend"
	ActionUnsuspend     = "unsuspend"
	ActionDismiss       = "dismiss"
)

// MaxSuspensionDays caps a single suspension
const MaxSuspensionDays = 365

// ModerationAction records a moderator decision
type ModerationAction struct {
	ID           string `validate:"required,uuid4"`
	ModeratorID  string `validate:"required,uuid4"`
	TargetUserID string `validate:"omitempty,uuid4"`
	ReportID     string `validate:"omitempty,uuid4"`
	Action       string `validate:"required,oneof=warn remove_content suspend unsuspend dismiss"`
	Reason       string `validate:"max=2000"`
	DurationDays int    `validate:"gte=0,lte=365"`
	CreatedAt    time.Time
}

// Validate for validating ModerationAction struct
func (a *ModerationAction) Validate() error {
	return validators.ValidateStruct(a)
}

// ReviewInput is a moderator's decision on a report
type ReviewInput struct {
	Action       string `validate:"required,oneof=warn remove_content suspend dismiss"`
	Notes        string `validate:"max=2000"`
	DurationDays int    `validate:"gte=0,lte=365"`
}

// Validate for validating ReviewInput struct
func (in *ReviewInput) Validate() error {
	if err := validators.ValidateStruct(in); err != nil {
		return err
	}
	if in.Action == ActionSuspend && in.DurationDays < 1 {
		return apperr.Validation("validation failed: suspension requires durationDays", nil)
	}
	return nil
}

// ResultingStatus returns the report status after the action
func (in *ReviewInput) ResultingStatus() string {
	if in.Action == ActionDismiss {
		return ReportDismissed
	}
	return ReportResolved
}

// SuspendInput suspends a user directly
type SuspendInput struct {
	Reason       string `validate:"required,notblank,max=2000"`
	DurationDays int    `validate:"required,gte=1,lte=365"`
}

// Validate for validating SuspendInput struct
func (in *SuspendInput) Validate() error {
	return validators.ValidateStruct(in)
}

// ActionQuery filters moderator actions
type ActionQuery struct {
	ModeratorID  string
	TargetUserID string
	Action       string `validate:"omitempty,oneof=warn remove_content suspend unsuspend dismiss"`
	Page         int
	Limit        int
}

// Validate for validating ActionQuery struct
func (q *ActionQuery) Validate() error {
	return validators.ValidateStruct(q)
}
