// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Subscription is the auxiliary ledger row written when an admin activates a
// subscription. The effective gate is Profile.SubscriptionStatus; this record
// only preserves the billing history.
type Subscription struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Type      string // e.g. "marketer_monthly", "merchant_per_product".
	Amount    float64
	StartDate time.Time
	EndDate   time.Time
	Status    SubscriptionStatus
	CreatedAt time.Time
}
