package models

import (
	"time"

	"github.com/Wetooa/mentara-sub026/internal/domain/auditlogs"

	"gorm.io/datatypes"
)

// AuditLogModel is the GORM database model for audit logs
type AuditLogModel struct {
	ID          string            `gorm:"primaryKey;type:uuid"`
	Action      string            `gorm:"not null;index;type:varchar(64)"`
	Entity      string            `gorm:"not null;index:idx_audit_entity;type:varchar(64)"`
	EntityID    string            `gorm:"index:idx_audit_entity;type:varchar(64)"`
	UserID      string            `gorm:"index;type:varchar(36)"`
	UserRole    string            `gorm:"type:varchar(20)"`
	OldValues   datatypes.JSONMap `gorm:"type:json"`
	NewValues   datatypes.JSONMap `gorm:"type:json"`
	Description string            `gorm:"type:text"`
	Metadata    datatypes.JSONMap `gorm:"type:json"`
	IPAddress   string            `gorm:"type:varchar(64)"`
	UserAgent   string            `gorm:"type:text"`
	RequestID   string            `gorm:"type:varchar(64)"`
	CreatedAt   time.Time         `gorm:"not null;index"`
}

// TableName specifies the table name for GORM
func (AuditLogModel) TableName() string {
	return "audit_logs"
}

// ToDomain converts GORM model to domain entity
func (m *AuditLogModel) ToDomain() *auditlogs.AuditLog {
	return &auditlogs.AuditLog{
		ID:          m.ID,
		Action:      m.Action,
		Entity:      m.Entity,
		EntityID:    m.EntityID,
		UserID:      m.UserID,
		UserRole:    m.UserRole,
		OldValues:   map[string]interface{}(m.OldValues),
		NewValues:   map[string]interface{}(m.NewValues),
		Description: m.Description,
		Metadata:    map[string]interface{}(m.Metadata),
		IPAddress:   m.IPAddress,
		UserAgent:   m.UserAgent,
		RequestID:   m.RequestID,
		CreatedAt:   m.CreatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *AuditLogModel) FromDomain(l *auditlogs.AuditLog) {
	m.ID = l.ID
	m.Action = l.Action
	m.Entity = l.Entity
	m.EntityID = l.EntityID
	m.UserID = l.UserID
	m.UserRole = l.UserRole
	m.OldValues = datatypes.JSONMap(l.OldValues)
	m.NewValues = datatypes.JSONMap(l.NewValues)
	m.Description = l.Description
	m.Metadata = datatypes.JSONMap(l.Metadata)
	m.IPAddress = l.IPAddress
	m.UserAgent = l.UserAgent
	m.RequestID = l.RequestID
	m.CreatedAt = l.CreatedAt
}

// SystemEventModel is the GORM database model for system events
type SystemEventModel struct {
	ID          string            `gorm:"primaryKey;type:uuid"`
	EventType   string            `gorm:"not null;index;type:varchar(64)"`
	Severity    string            `gorm:"not null;index;type:varchar(10)"`
	Title       string            `gorm:"not null;type:varchar(200)"`
	Description string            `gorm:"type:text"`
	Component   string            `gorm:"type:varchar(64)"`
	Metadata    datatypes.JSONMap `gorm:"type:json"`
	IsResolved  bool              `gorm:"not null;index"`
	ResolvedAt  *time.Time
	ResolvedBy  string    `gorm:"type:varchar(36)"`
	Resolution  string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for GORM
func (SystemEventModel) TableName() string {
	return "system_events"
}

// ToDomain converts GORM model to domain entity
func (m *SystemEventModel) ToDomain() *auditlogs.SystemEvent {
	return &auditlogs.SystemEvent{
		ID:          m.ID,
		EventType:   m.EventType,
		Severity:    m.Severity,
		Title:       m.Title,
		Description: m.Description,
		Component:   m.Component,
		Metadata:    map[string]interface{}(m.Metadata),
		IsResolved:  m.IsResolved,
		ResolvedAt:  m.ResolvedAt,
		ResolvedBy:  m.ResolvedBy,
		Resolution:  m.Resolution,
		CreatedAt:   m.CreatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *SystemEventModel) FromDomain(e *auditlogs.SystemEvent) {
	m.ID = e.ID
	m.EventType = e.EventType
	m.Severity = e.Severity
	m.Title = e.Title
	m.Description = e.Description
	m.Component = e.Component
	m.Metadata = datatypes.JSONMap(e.Metadata)
	m.IsResolved = e.IsResolved
	m.ResolvedAt = e.ResolvedAt
	m.ResolvedBy = e.ResolvedBy
	m.Resolution = e.Resolution
	m.CreatedAt = e.CreatedAt
}
