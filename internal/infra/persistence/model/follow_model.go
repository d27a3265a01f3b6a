package model

import (
	"time"

	"github.com/google/uuid"
)

// MerchantFollowModel mirrors the 'merchant_follows' table. The pair
// (marketer_id, merchant_id) is unique.
type MerchantFollowModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	MarketerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_follow_pair"`
	MerchantID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_follow_pair"`
	CreatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (MerchantFollowModel) TableName() string {
	return "merchant_follows"
}
