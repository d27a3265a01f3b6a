package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderModel mirrors the 'orders' table. MerchantID is denormalized from the
// product at creation time so merchant views survive product deletion attempts.
type OrderModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key"`
	ProductID      uuid.UUID `gorm:"type:uuid;not null;index"`
	MarketerID     uuid.UUID `gorm:"type:uuid;not null;index"`
	MerchantID     uuid.UUID `gorm:"type:uuid;not null;index"`
	CustomerName   string    `gorm:"type:varchar(100);not null"`
	CustomerPhone  string    `gorm:"type:varchar(20);not null"`
	Quantity       int       `gorm:"not null"`
	SalePrice      float64   `gorm:"not null"`
	MarketerProfit float64   `gorm:"not null"`
	Status         string    `gorm:"type:varchar(20);not null;default:'pending';index"`
	PaymentStatus  string    `gorm:"type:varchar(20);not null;default:'pending'"`
	DeliveryDate   *time.Time
	PaymentDueDate *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}
