package auditlogs

import (
	"time"

	"github.com/Wetooa/mentara-sub026/internal/pkg/validators"
)

// Audited actions
const (
	ActionCreate   = "CREATE"
	ActionUpdate   = "UPDATE"
	ActionDelete   = "DELETE"
	ActionLogin    = "LOGIN"
	ActionLogout   = "LOGOUT"
	ActionFailed   = "LOGIN_FAILED"
	ActionApprove  = "APPROVE"
	ActionReject   = "REJECT"
	ActionAccept   = "ACCEPT"
	ActionDeny     = "DENY"
	ActionCancel   = "CANCEL"
	ActionModerate = "MODERATE"
)

// Audited entities
const (
	EntityUser                 = "USER"
	EntityTherapistApplication = "THERAPIST_APPLICATION"
	EntityClientTherapist      = "CLIENT_THERAPIST"
	EntityMeeting              = "MEETING"
	EntityConversation         = "CONVERSATION"
	EntityModeration           = "MODERATION"
	EntityWorksheet            = "WORKSHEET"
	EntityReview               = "REVIEW"
)

// AuditLog records who did what to which entity
type AuditLog struct {
	ID          string `validate:"required,uuid4"`
	Action      string `validate:"required,max=64"`
	Entity      string `validate:"required,max=64"`
	EntityID    string `validate:"max=64"`
	UserID      string
	UserRole    string
	OldValues   map[string]interface{}
	NewValues   map[string]interface{}
	Description string `validate:"max=1000"`
	Metadata    map[string]interface{}
	IPAddress   string
	UserAgent   string
	RequestID   string
	CreatedAt   time.Time
}

// Validate for validating AuditLog struct
func (l *AuditLog) Validate() error {
	return validators.ValidateStruct(l)
}

// Query filters audit logs
type Query struct {
	UserID   string
	Action   string
	Entity   string
	EntityID string
	DateFrom *time.Time
	DateTo   *time.Time
	Page     int
	Limit    int
}

// Stats totals audit logs over a date range
type Stats struct {
	Total    int64
	ByAction map[string]int64
	ByEntity map[string]int64
	DateFrom *time.Time
	DateTo   *time.Time
}
