package model

import (
	"time"

	"github.com/google/uuid"
)

// SubscriptionModel mirrors the 'subscriptions' ledger table. Every admin
// activation appends a row; the current status lives on the profile.
type SubscriptionModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Type      string    `gorm:"type:varchar(20);not null"`
	Amount    float64   `gorm:"not null;default:0"`
	StartDate time.Time `gorm:"not null"`
	EndDate   time.Time `gorm:"not null"`
	Status    string    `gorm:"type:varchar(20);not null"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (SubscriptionModel) TableName() string {
	return "subscriptions"
}
