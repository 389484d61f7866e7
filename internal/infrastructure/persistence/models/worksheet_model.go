package models

import (
	"time"

	"github.com/Wetooa/mentara-sub026/internal/domain/worksheets"
)

// WorksheetModel is the GORM database model for worksheets
type WorksheetModel struct {
	ID                string     `gorm:"primaryKey;type:uuid"`
	TherapistID       string     `gorm:"not null;index;type:uuid"`
	ClientID          string     `gorm:"not null;index;type:uuid"`
	Title             string     `gorm:"not null;type:varchar(200)"`
	Instructions      string     `gorm:"type:text"`
	DueDate           *time.Time `gorm:"index"`
	Status            string     `gorm:"not null;index;type:varchar(20)"`
	SubmissionContent string     `gorm:"type:text"`
	SubmittedAt       *time.Time
	Feedback          string `gorm:"type:text"`
	ReviewedAt        *time.Time
	CreatedAt         time.Time `gorm:"not null"`
	UpdatedAt         time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (WorksheetModel) TableName() string {
	return "worksheets"
}

// ToDomain converts GORM model to domain entity
func (m *WorksheetModel) ToDomain() *worksheets.Worksheet {
	return &worksheets.Worksheet{
		ID:                m.ID,
		TherapistID:       m.TherapistID,
		ClientID:          m.ClientID,
		Title:             m.Title,
		Instructions:      m.Instructions,
		DueDate:           m.DueDate,
		Status:            m.Status,
		SubmissionContent: m.SubmissionContent,
		SubmittedAt:       m.SubmittedAt,
		Feedback:          m.Feedback,
		ReviewedAt:        m.ReviewedAt,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *WorksheetModel) FromDomain(w *worksheets.Worksheet) {
	m.ID = w.ID
	m.TherapistID = w.TherapistID
	m.ClientID = w.ClientID
	m.Title = w.Title
	m.Instructions = w.Instructions
	m.DueDate = w.DueDate
	m.Status = w.Status
	m.SubmissionContent = w.SubmissionContent
	m.SubmittedAt = w.SubmittedAt
	m.Feedback = w.Feedback
	m.ReviewedAt = w.ReviewedAt
	m.CreatedAt = w.CreatedAt
	m.UpdatedAt = w.UpdatedAt
}
