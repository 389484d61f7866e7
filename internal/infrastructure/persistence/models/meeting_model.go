package models

import (
	"time"

	"github.com/Wetooa/mentara-sub026/internal/domain/meetings"
)

// MeetingModel is the GORM database model for therapy sessions
type MeetingModel struct {
	ID                 string    `gorm:"primaryKey;type:uuid"`
	TherapistID        string    `gorm:"not null;index;type:uuid"`
	ClientID           string    `gorm:"not null;index;type:uuid"`
	Title              string    `gorm:"not null;type:varchar(200)"`
	Description        string    `gorm:"type:text"`
	StartTime          time.Time `gorm:"not null;index"`
	EndTime            time.Time `gorm:"not null;index"`
	Duration           int       `gorm:"not null"`
	Status             string    `gorm:"not null;index;type:varchar(20)"`
	MeetingType        string    `gorm:"not null;type:varchar(20)"`
	MeetingURL         string    `gorm:"type:varchar(2048)"`
	Notes              string    `gorm:"type:text"`
	CancellationReason string    `gorm:"type:text"`
	CancelledAt        *time.Time
	ReminderSentAt     *time.Time
	CreatedAt          time.Time `gorm:"not null"`
	UpdatedAt          time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (MeetingModel) TableName() string {
	return "meetings"
}

// ToDomain converts GORM model to domain entity
func (m *MeetingModel) ToDomain() *meetings.Meeting {
	return &meetings.Meeting{
		ID:                 m.ID,
		TherapistID:        m.TherapistID,
		ClientID:           m.ClientID,
		Title:              m.Title,
		Description:        m.Description,
		StartTime:          m.StartTime,
		EndTime:            m.EndTime,
		Duration:           m.Duration,
		Status:             m.Status,
		MeetingType:        m.MeetingType,
		MeetingURL:         m.MeetingURL,
		Notes:              m.Notes,
		CancellationReason: m.CancellationReason,
		CancelledAt:        m.CancelledAt,
		ReminderSentAt:     m.ReminderSentAt,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *MeetingModel) FromDomain(mt *meetings.Meeting) {
	m.ID = mt.ID
	m.TherapistID = mt.TherapistID
	m.ClientID = mt.ClientID
	m.Title = mt.Title
	m.Description = mt.Description
	m.StartTime = mt.StartTime
	m.EndTime = mt.EndTime
	m.Duration = mt.Duration
	m.Status = mt.Status
	m.MeetingType = mt.MeetingType
	m.MeetingURL = mt.MeetingURL
	m.Notes = mt.Notes
	m.CancellationReason = mt.CancellationReason
	m.CancelledAt = mt.CancelledAt
	m.ReminderSentAt = mt.ReminderSentAt
	m.CreatedAt = mt.CreatedAt
	m.UpdatedAt = mt.UpdatedAt
}

// AvailabilityModel is the GORM database model for therapist availability windows
type AvailabilityModel struct {
	ID          string `gorm:"primaryKey;type:uuid"`
	TherapistID string `gorm:"not null;index;type:uuid"`
	DayOfWeek   string `gorm:"not null;type:varchar(10)"`
	StartTime   string `gorm:"not null;type:varchar(5)"`
	EndTime     string `gorm:"not null;type:varchar(5)"`
	IsAvailable bool   `gorm:"not null"`
	Notes       string `gorm:"type:varchar(500)"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the table name for GORM
func (AvailabilityModel) TableName() string {
	return "therapist_availabilities"
}

// ToDomain converts GORM model to domain entity
func (m *AvailabilityModel) ToDomain() *meetings.Availability {
	return &meetings.Availability{
		ID:          m.ID,
		TherapistID: m.TherapistID,
		DayOfWeek:   m.DayOfWeek,
		StartTime:   m.StartTime,
		EndTime:     m.EndTime,
		IsAvailable: m.IsAvailable,
		Notes:       m.Notes,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *AvailabilityModel) FromDomain(a *meetings.Availability) {
	m.ID = a.ID
	m.TherapistID = a.TherapistID
	m.DayOfWeek = a.DayOfWeek
	m.StartTime = a.StartTime
	m.EndTime = a.EndTime
	m.IsAvailable = a.IsAvailable
	m.Notes = a.Notes
	m.CreatedAt = a.CreatedAt
	m.UpdatedAt = a.UpdatedAt
}
