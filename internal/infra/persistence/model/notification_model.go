package model

import (
	"time"

	"github.com/google/uuid"
)

// NotificationModel mirrors the 'notifications' table.
type NotificationModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index"`
	Title          string    `gorm:"type:varchar(200);not null"`
	Message        string    `gorm:"type:text;not null"`
	Type           string    `gorm:"type:varchar(30);not null;default:'general'"`
	IsRead         bool      `gorm:"not null;default:false"`
	RelatedOrderID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt      time.Time
}

// TableName explicitly sets the table name for GORM.
func (NotificationModel) TableName() string {
	return "notifications"
}
