package auditlogs

import (
	"context"
	"time"

	"github.com/Wetooa/mentara-sub026/internal/domain/shared"
)

// AuditLogRepository persists audit logs
type AuditLogRepository interface {
	Create(ctx context.Context, log *AuditLog) error
	// Find returns matching logs newest first and the total number of matches
	Find(ctx context.Context, query *Query, page shared.Pagination) ([]*AuditLog, int64, error)
	CountByAction(ctx context.Context, from, to *time.Time) (map[string]int64, error)
	CountByEntity(ctx context.Context, from, to *time.Time) (map[string]int64, error)
}

// SystemEventRepository persists system events
type SystemEventRepository interface {
	Create(ctx context.Context, event *SystemEvent) error
	GetByID(ctx context.Context, eventID string) (*SystemEvent, error)
	Update(ctx context.Context, event *SystemEvent) error
	Find(ctx context.Context, query *SystemEventQuery, page shared.Pagination) ([]*SystemEvent, int64, error)
}

// AuditInput describes an action to record. Request details are taken from the context.
type AuditInput struct {
	Action      string
	Entity      string
	EntityID    string
	UserID      string
	UserRole    string
	OldValues   map[string]interface{}
	NewValues   map[string]interface{}
	Description string
	Metadata    map[string]interface{}
}

// AuditService records and queries the audit trail
type AuditService interface {
	CreateAuditLog(ctx context.Context, input *AuditInput) (*AuditLog, error)
	FindAuditLogs(ctx context.Context, query *Query) (*shared.Page[*AuditLog], error)
	GetAuditStats(ctx context.Context, from, to *time.Time) (*Stats, error)
	CreateSystemEvent(ctx context.Context, input *SystemEventInput) (*SystemEvent, error)
	FindSystemEvents(ctx context.Context, query *SystemEventQuery) (*shared.Page[*SystemEvent], error)
	ResolveSystemEvent(ctx context.Context, eventID, userID, resolution string) (*SystemEvent, error)
}
