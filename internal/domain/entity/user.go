// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core identity in the system. It carries only the fundamental
// account information shared across all roles; everything role-specific lives
// on the Profile.
type User struct {
	ID        uuid.UUID // The Global Unique Identifier (GUID) for the user.
	Email     string    // Unique login identifier. Stored lowercased.
	Name      string    // The user's display name.
	Phone     string    // Optional contact phone number.
	Profile   *Profile  // The role profile created atomically with the user.
	CreatedAt time.Time // Timestamp of when this account was created.
	UpdatedAt time.Time // Timestamp of the last modification.
}

// Profile holds the moderation and commerce state attached to a user.
// The role discriminates which of the optional sub-profiles is present:
// merchants carry Merchant, marketers carry Marketer, admins carry neither.
type Profile struct {
	UserID             uuid.UUID
	Role               Role
	IsVerified         bool // Trust badge, granted by threshold or by an admin. Never auto-revoked.
	CompletedOrders    int  // Count of paid completed orders, drives verification promotion.
	SubscriptionStatus SubscriptionStatus
	SubscriptionExpiry *time.Time
	IsBanned           bool
	Merchant           *MerchantInfo // Present iff Role == RoleMerchant.
	Marketer           *MarketerInfo // Present iff Role == RoleMarketer.
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// MerchantInfo holds the fields specific to the merchant role.
type MerchantInfo struct {
	BusinessName string
	BusinessType string
}

// MarketerInfo holds the payout fields specific to the marketer role.
type MarketerInfo struct {
	PaymentMethod  string // e.g. wallet provider name.
	PaymentDetails string // e.g. wallet number.
}

// HasActiveSubscription reports whether the profile passes the subscription gate.
func (p *Profile) HasActiveSubscription() bool {
	return p.SubscriptionStatus == SubscriptionActive
}
