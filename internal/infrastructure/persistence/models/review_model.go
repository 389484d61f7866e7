package models

import (
	"time"

	"github.com/Wetooa/mentara-sub026/internal/domain/reviews"
)

// ReviewModel is the GORM database model for therapist reviews
type ReviewModel struct {
	ID             string `gorm:"primaryKey;type:uuid"`
	ClientID       string `gorm:"not null;uniqueIndex:idx_review_client_meeting;type:uuid"`
	TherapistID    string `gorm:"not null;index;type:uuid"`
	MeetingID      string `gorm:"not null;uniqueIndex:idx_review_client_meeting;type:uuid"`
	Rating         int    `gorm:"not null;index"`
	Title          string `gorm:"type:varchar(200)"`
	Content        string `gorm:"type:text"`
	IsAnonymous    bool   `gorm:"not null;default:false"`
	Status         string `gorm:"not null;index;type:varchar(20)"`
	HelpfulCount   int    `gorm:"not null;default:0"`
	ModeratedBy    string `gorm:"type:varchar(36)"`
	ModerationNote string `gorm:"type:text"`
	ModeratedAt    *time.Time
	CreatedAt      time.Time `gorm:"not null;index"`
	UpdatedAt      time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (ReviewModel) TableName() string {
	return "reviews"
}

// ToDomain converts GORM model to domain entity
func (m *ReviewModel) ToDomain() *reviews.Review {
	return &reviews.Review{
		ID:             m.ID,
		ClientID:       m.ClientID,
		TherapistID:    m.TherapistID,
		MeetingID:      m.MeetingID,
		Rating:         m.Rating,
		Title:          m.Title,
		Content:        m.Content,
		IsAnonymous:    m.IsAnonymous,
		Status:         m.Status,
		HelpfulCount:   m.HelpfulCount,
		ModeratedBy:    m.ModeratedBy,
		ModerationNote: m.ModerationNote,
		ModeratedAt:    m.ModeratedAt,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *ReviewModel) FromDomain(r *reviews.Review) {
	m.ID = r.ID
	m.ClientID = r.ClientID
	m.TherapistID = r.TherapistID
	m.MeetingID = r.MeetingID
	m.Rating = r.Rating
	m.Title = r.Title
	m.Content = r.Content
	m.IsAnonymous = r.IsAnonymous
	m.Status = r.Status
	m.HelpfulCount = r.HelpfulCount
	m.ModeratedBy = r.ModeratedBy
	m.ModerationNote = r.ModerationNote
	m.ModeratedAt = r.ModeratedAt
	m.CreatedAt = r.CreatedAt
	m.UpdatedAt = r.UpdatedAt
}

// ReviewHelpfulVoteModel records that a user found a review helpful
type ReviewHelpfulVoteModel struct {
	ReviewID  string    `gorm:"primaryKey;type:uuid"`
	UserID    string    `gorm:"primaryKey;type:uuid"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (ReviewHelpfulVoteModel) TableName() string {
	return "review_helpful_votes"
}
