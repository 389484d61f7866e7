package models

import (
	"time"

	"github.com/Wetooa/mentara-sub026/internal/domain/moderation"
)

// ContentReportModel is the GORM database model for content reports
type ContentReportModel struct {
	ID             string `gorm:"primaryKey;type:uuid"`
	ReporterID     string `gorm:"not null;index;type:uuid"`
	ContentType    string `gorm:"not null;index:idx_report_content;type:varchar(20)"`
	ContentID      string `gorm:"not null;index:idx_report_content;type:varchar(64)"`
	ReportedUserID string `gorm:"index;type:varchar(36)"`
	Reason         string `gorm:"not null;index;type:varchar(20)"`
	Details        string `gorm:"type:text"`
	Status         string `gorm:"not null;index;type:varchar(20)"`
	ReviewedBy     string `gorm:"type:varchar(36)"`
	ReviewedAt     *time.Time
	ActionTaken    string    `gorm:"type:varchar(20)"`
	ModeratorNotes string    `gorm:"type:text"`
	CreatedAt      time.Time `gorm:"not null;index"`
	UpdatedAt      time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (ContentReportModel) TableName() string {
	return "content_reports"
}

// ToDomain converts GORM model to domain entity
func (m *ContentReportModel) ToDomain() *moderation.ContentReport {
	return &moderation.ContentReport{
		ID:             m.ID,
		ReporterID:     m.ReporterID,
		ContentType:    m.ContentType,
		ContentID:      m.ContentID,
		ReportedUserID: m.ReportedUserID,
		Reason:         m.Reason,
		Details:        m.Details,
		Status:         m.Status,
		ReviewedBy:     m.ReviewedBy,
		ReviewedAt:     m.ReviewedAt,
		ActionTaken:    m.ActionTaken,
		ModeratorNotes: m.ModeratorNotes,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *ContentReportModel) FromDomain(r *moderation.ContentReport) {
	m.ID = r.ID
	m.ReporterID = r.ReporterID
	m.ContentType = r.ContentType
	m.ContentID = r.ContentID
	m.ReportedUserID = r.ReportedUserID
	m.Reason = r.Reason
	m.Details = r.Details
	m.Status = r.Status
	m.ReviewedBy = r.ReviewedBy
	m.ReviewedAt = r.ReviewedAt
	m.ActionTaken = r.ActionTaken
	m.ModeratorNotes = r.ModeratorNotes
	m.CreatedAt = r.CreatedAt
	m.UpdatedAt = r.UpdatedAt
}

// ModerationActionModel is the GORM database model for moderator actions
type ModerationActionModel struct {
	ID           string    `gorm:"primaryKey;type:uuid"`
	ModeratorID  string    `gorm:"not null;index;type:uuid"`
	TargetUserID string    `gorm:"index;type:varchar(36)"`
	ReportID     string    `gorm:"index;type:varchar(36)"`
	Action       string    `gorm:"not null;index;type:varchar(20)"`
	Reason       string    `gorm:"type:text"`
	DurationDays int       `gorm:"not null;default:0"`
	CreatedAt    time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for GORM
func (ModerationActionModel) TableName() string {
	return "moderation_actions"
}

// ToDomain converts GORM model to domain entity
func (m *ModerationActionModel) ToDomain() *moderation.ModerationAction {
	return &moderation.ModerationAction{
		ID:           m.ID,
		ModeratorID:  m.ModeratorID,
		TargetUserID: m.TargetUserID,
		ReportID:     m.ReportID,
		Action:       m.Action,
		Reason:       m.Reason,
		DurationDays: m.DurationDays,
		CreatedAt:    m.CreatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *ModerationActionModel) FromDomain(a *moderation.ModerationAction) {
	m.ID = a.ID
	m.ModeratorID = a.ModeratorID
	m.TargetUserID = a.TargetUserID
	m.ReportID = a.ReportID
	m.Action = a.Action
	m.Reason = a.Reason
	m.DurationDays = a.DurationDays
	m.CreatedAt = a.CreatedAt
}
