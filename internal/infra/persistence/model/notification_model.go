package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// NotificationModel is the GORM-specific struct for the 'notifications' table.
// It represents an in-app notification delivered to one user.
type NotificationModel struct {
	ID        uuid.UUID         `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID    uuid.UUID         `gorm:"type:uuid;not null;index"`
	Type      string            `gorm:"type:varchar(32);not null"`
	Title     string            `gorm:"type:text;not null"`
	Content   string            `gorm:"type:text"`
	Data      datatypes.JSONMap `gorm:"type:jsonb"`
	ReadAt    *time.Time        `gorm:"index"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (NotificationModel) TableName() string {
	return "notifications"
}
