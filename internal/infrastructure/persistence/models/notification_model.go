package models

import (
	"time"

	"github.com/Wetooa/mentara-sub026/internal/domain/notifications"

	"gorm.io/datatypes"
)

// NotificationModel is the GORM database model for in-app notifications
type NotificationModel struct {
	ID        string            `gorm:"primaryKey;type:uuid"`
	UserID    string            `gorm:"not null;index:idx_notifications_user_read;type:uuid"`
	Type      string            `gorm:"not null;type:varchar(64)"`
	Title     string            `gorm:"not null;type:varchar(200)"`
	Message   string            `gorm:"type:text"`
	Data      datatypes.JSONMap `gorm:"type:json"`
	IsRead    bool              `gorm:"not null;index:idx_notifications_user_read"`
	ReadAt    *time.Time
	CreatedAt time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for GORM
func (NotificationModel) TableName() string {
	return "notifications"
}

// ToDomain converts GORM model to domain entity
func (m *NotificationModel) ToDomain() *notifications.Notification {
	return &notifications.Notification{
		ID:        m.ID,
		UserID:    m.UserID,
		Type:      m.Type,
		Title:     m.Title,
		Message:   m.Message,
		Data:      map[string]interface{}(m.Data),
		IsRead:    m.IsRead,
		ReadAt:    m.ReadAt,
		CreatedAt: m.CreatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *NotificationModel) FromDomain(n *notifications.Notification) {
	m.ID = n.ID
	m.UserID = n.UserID
	m.Type = n.Type
	m.Title = n.Title
	m.Message = n.Message
	m.Data = datatypes.JSONMap(n.Data)
	m.IsRead = n.IsRead
	m.ReadAt = n.ReadAt
	m.CreatedAt = n.CreatedAt
}
