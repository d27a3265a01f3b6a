// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Product is a merchant-owned listing that marketers resell.
// Pricing invariant: SuggestedPrice, when set, must cover the base price plus
// the minimum marketer profit.
type Product struct {
	ID                uuid.UUID
	MerchantID        uuid.UUID // Owner. Order creation snapshots this value.
	Name              string
	Description       string
	ImageURL          string
	BasePrice         float64 // Amount the merchant collects per unit.
	MinMarketerProfit float64 // Smallest acceptable per-unit marketer margin.
	SuggestedPrice    *float64
	IsActive          bool
	Category          string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// PricingValid reports whether the product pricing satisfies the listing
// invariants: positive prices and a suggested price that leaves room for the
// minimum marketer profit.
func (p *Product) PricingValid() bool {
	if p.BasePrice <= 0 || p.MinMarketerProfit <= 0 {
		return false
	}
	if p.SuggestedPrice != nil && *p.SuggestedPrice < p.BasePrice+p.MinMarketerProfit {
		return false
	}

	return true
}

// ProductListing is a product joined with the trust snapshot of its merchant,
// as shown to marketers browsing the catalog.
type ProductListing struct {
	Product
	MerchantName            string
	MerchantBusinessName    string
	MerchantVerified        bool
	MerchantCompletedOrders int
}

// MerchantFollow records a marketer following a merchant's catalog.
// The (MarketerID, MerchantID) pair is unique.
type MerchantFollow struct {
	ID         uuid.UUID
	MarketerID uuid.UUID
	MerchantID uuid.UUID
	CreatedAt  time.Time
}
