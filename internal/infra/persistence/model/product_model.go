package model

import (
	"time"

	"github.com/google/uuid"
)

// ProductModel mirrors the 'products' table.
type ProductModel struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key"`
	MerchantID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Name              string    `gorm:"type:varchar(200);not null"`
	Description       string    `gorm:"type:text"`
	ImageURL          string    `gorm:"type:varchar(500)"`
	BasePrice         float64   `gorm:"not null"`
	MinMarketerProfit float64   `gorm:"not null"`
	SuggestedPrice    *float64
	IsActive          bool   `gorm:"not null;default:true"`
	Category          string `gorm:"type:varchar(100)"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}
