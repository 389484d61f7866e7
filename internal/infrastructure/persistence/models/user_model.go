package models

import (
	"time"

	"github.com/Wetooa/mentara-sub026/internal/domain/users"
)

// UserModel is the GORM database model for accounts
type UserModel struct {
	ID                  string `gorm:"primaryKey;type:uuid"`
	Email               string `gorm:"not null;uniqueIndex;type:varchar(255)"`
	PasswordHash        string `gorm:"not null;type:varchar(255)"`
	FirstName           string `gorm:"type:varchar(100)"`
	LastName            string `gorm:"type:varchar(100)"`
	Role                string `gorm:"not null;index;type:varchar(20)"`
	IsActive            bool   `gorm:"not null"`
	EmailVerified       bool   `gorm:"not null;default:false"`
	ProfilePicture      string `gorm:"type:varchar(2048)"`
	Bio                 string `gorm:"type:text"`
	Birthday            *time.Time
	FailedLoginCount    int `gorm:"not null;default:0"`
	LockedUntil         *time.Time
	LastLoginAt         *time.Time
	SuspendedUntil      *time.Time
	SuspensionReason    string    `gorm:"type:text"`
	SeenRecommendations bool      `gorm:"not null;default:false"`
	CreatedAt           time.Time `gorm:"not null"`
	UpdatedAt           time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts GORM model to domain entity
func (m *UserModel) ToDomain() *users.User {
	return &users.User{
		ID:                  m.ID,
		Email:               m.Email,
		PasswordHash:        m.PasswordHash,
		FirstName:           m.FirstName,
		LastName:            m.LastName,
		Role:                m.Role,
		IsActive:            m.IsActive,
		EmailVerified:       m.EmailVerified,
		ProfilePicture:      m.ProfilePicture,
		Bio:                 m.Bio,
		Birthday:            m.Birthday,
		FailedLoginCount:    m.FailedLoginCount,
		LockedUntil:         m.LockedUntil,
		LastLoginAt:         m.LastLoginAt,
		SuspendedUntil:      m.SuspendedUntil,
		SuspensionReason:    m.SuspensionReason,
		SeenRecommendations: m.SeenRecommendations,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *UserModel) FromDomain(u *users.User) {
	m.ID = u.ID
	m.Email = u.Email
	m.PasswordHash = u.PasswordHash
	m.FirstName = u.FirstName
	m.LastName = u.LastName
	m.Role = u.Role
	m.IsActive = u.IsActive
	m.EmailVerified = u.EmailVerified
	m.ProfilePicture = u.ProfilePicture
	m.Bio = u.Bio
	m.Birthday = u.Birthday
	m.FailedLoginCount = u.FailedLoginCount
	m.LockedUntil = u.LockedUntil
	m.LastLoginAt = u.LastLoginAt
	m.SuspendedUntil = u.SuspendedUntil
	m.SuspensionReason = u.SuspensionReason
	m.SeenRecommendations = u.SeenRecommendations
	m.CreatedAt = u.CreatedAt
	m.UpdatedAt = u.UpdatedAt
}

// RefreshTokenModel is the GORM database model for sessions
type RefreshTokenModel struct {
	ID         string    `gorm:"primaryKey;type:uuid"`
	UserID     string    `gorm:"not null;index;type:uuid"`
	TokenHash  string    `gorm:"not null;uniqueIndex;type:varchar(64)"`
	ExpiresAt  time.Time `gorm:"not null;index"`
	RevokedAt  *time.Time
	IPAddress  string `gorm:"type:varchar(64)"`
	UserAgent  string `gorm:"type:text"`
	DeviceName string `gorm:"type:varchar(100)"`
	Location   string `gorm:"type:varchar(100)"`
	LastUsedAt *time.Time
	CreatedAt  time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (RefreshTokenModel) TableName() string {
	return "refresh_tokens"
}

// ToDomain converts GORM model to domain entity
func (m *RefreshTokenModel) ToDomain() *users.RefreshToken {
	return &users.RefreshToken{
		ID:         m.ID,
		UserID:     m.UserID,
		TokenHash:  m.TokenHash,
		ExpiresAt:  m.ExpiresAt,
		RevokedAt:  m.RevokedAt,
		IPAddress:  m.IPAddress,
		UserAgent:  m.UserAgent,
		DeviceName: m.DeviceName,
		Location:   m.Location,
		LastUsedAt: m.LastUsedAt,
		CreatedAt:  m.CreatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *RefreshTokenModel) FromDomain(t *users.RefreshToken) {
	m.ID = t.ID
	m.UserID = t.UserID
	m.TokenHash = t.TokenHash
	m.ExpiresAt = t.ExpiresAt
	m.RevokedAt = t.RevokedAt
	m.IPAddress = t.IPAddress
	m.UserAgent = t.UserAgent
	m.DeviceName = t.DeviceName
	m.Location = t.Location
	m.LastUsedAt = t.LastUsedAt
	m.CreatedAt = t.CreatedAt
}

// UserTokenModel is the GORM database model for one-time tokens
type UserTokenModel struct {
	ID        string    `gorm:"primaryKey;type:uuid"`
	UserID    string    `gorm:"not null;index;type:uuid"`
	Purpose   string    `gorm:"not null;type:varchar(32)"`
	TokenHash string    `gorm:"not null;uniqueIndex;type:varchar(64)"`
	ExpiresAt time.Time `gorm:"not null;index"`
	UsedAt    *time.Time
	CreatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (UserTokenModel) TableName() string {
	return "user_tokens"
}

// ToDomain converts GORM model to domain entity
func (m *UserTokenModel) ToDomain() *users.UserToken {
	return &users.UserToken{
		ID:        m.ID,
		UserID:    m.UserID,
		Purpose:   m.Purpose,
		TokenHash: m.TokenHash,
		ExpiresAt: m.ExpiresAt,
		UsedAt:    m.UsedAt,
		CreatedAt: m.CreatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *UserTokenModel) FromDomain(t *users.UserToken) {
	m.ID = t.ID
	m.UserID = t.UserID
	m.Purpose = t.Purpose
	m.TokenHash = t.TokenHash
	m.ExpiresAt = t.ExpiresAt
	m.UsedAt = t.UsedAt
	m.CreatedAt = t.CreatedAt
}
