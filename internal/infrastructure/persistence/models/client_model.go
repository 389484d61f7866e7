package models

import (
	"time"

	"github.com/Wetooa/mentara-sub026/internal/domain/clients"

	"gorm.io/datatypes"
)

// ClientTherapistModel is the GORM database model for client therapist relationships
type ClientTherapistModel struct {
	ID          string    `gorm:"primaryKey;type:uuid"`
	ClientID    string    `gorm:"not null;uniqueIndex:idx_client_therapist_pair;type:uuid"`
	TherapistID string    `gorm:"not null;uniqueIndex:idx_client_therapist_pair;index;type:uuid"`
	Status      string    `gorm:"not null;index;type:varchar(20)"`
	AssignedAt  time.Time `gorm:"not null"`
	RemovedAt   *time.Time
}

// TableName specifies the table name for GORM
func (ClientTherapistModel) TableName() string {
	return "client_therapists"
}

// ToDomain converts GORM model to domain entity
func (m *ClientTherapistModel) ToDomain() *clients.ClientTherapist {
	return &clients.ClientTherapist{
		ID:          m.ID,
		ClientID:    m.ClientID,
		TherapistID: m.TherapistID,
		Status:      m.Status,
		AssignedAt:  m.AssignedAt,
		RemovedAt:   m.RemovedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *ClientTherapistModel) FromDomain(r *clients.ClientTherapist) {
	m.ID = r.ID
	m.ClientID = r.ClientID
	m.TherapistID = r.TherapistID
	m.Status = r.Status
	m.AssignedAt = r.AssignedAt
	m.RemovedAt = r.RemovedAt
}

// PreAssessmentModel is the GORM database model for pre-assessments
type PreAssessmentModel struct {
	ID             string            `gorm:"primaryKey;type:uuid"`
	ClientID       string            `gorm:"not null;index;type:uuid"`
	Answers        datatypes.JSONMap `gorm:"not null"`
	Scores         datatypes.JSONType[map[string]float64]
	SeverityLevels datatypes.JSONType[map[string]string]
	CreatedAt      time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for GORM
func (PreAssessmentModel) TableName() string {
	return "pre_assessments"
}

// ToDomain converts GORM model to domain entity
func (m *PreAssessmentModel) ToDomain() *clients.PreAssessment {
	return &clients.PreAssessment{
		ID:             m.ID,
		ClientID:       m.ClientID,
		Answers:        map[string]interface{}(m.Answers),
		Scores:         m.Scores.Data(),
		SeverityLevels: m.SeverityLevels.Data(),
		CreatedAt:      m.CreatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *PreAssessmentModel) FromDomain(p *clients.PreAssessment) {
	m.ID = p.ID
	m.ClientID = p.ClientID
	m.Answers = datatypes.JSONMap(p.Answers)
	m.Scores = datatypes.NewJSONType(p.Scores)
	m.SeverityLevels = datatypes.NewJSONType(p.SeverityLevels)
	m.CreatedAt = p.CreatedAt
}
