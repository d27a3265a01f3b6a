// Package model contains the GORM persistence models mirroring the database schema.
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table.
type UserModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	Email     string    `gorm:"type:varchar(255);unique;not null"`
	Name      string    `gorm:"type:varchar(100);not null"`
	Phone     string    `gorm:"type:varchar(20)"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Profile *ProfileModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// ProfileModel mirrors the 'user_profiles' table. One row per user; the
// role-specific columns are nullable and populated per role.
type ProfileModel struct {
	UserID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Role               string    `gorm:"type:varchar(20);not null"`
	BusinessName       *string   `gorm:"type:varchar(200)"`
	BusinessType       *string   `gorm:"type:varchar(100)"`
	PaymentMethod      *string   `gorm:"type:varchar(50)"`
	PaymentDetails     *string   `gorm:"type:varchar(200)"`
	IsVerified         bool      `gorm:"not null;default:false"`
	CompletedOrders    int       `gorm:"not null;default:0"`
	SubscriptionStatus string    `gorm:"type:varchar(20);not null;default:'inactive'"`
	SubscriptionExpiry *time.Time
	IsBanned           bool `gorm:"not null;default:false"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProfileModel) TableName() string {
	return "user_profiles"
}
