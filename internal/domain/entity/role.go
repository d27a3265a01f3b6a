// Package entity contains the core business objects of the project.
package entity

// Role represents the type of account a user registered as.
// The role is fixed at registration and is never reassigned.
type Role string

const (
	// RoleMerchant owns products and receives orders.
	RoleMerchant Role = "merchant"
	// RoleMarketer resells products and earns the profit margin.
	RoleMarketer Role = "marketer"
	// RoleAdmin moderates the platform.
	RoleAdmin Role = "admin"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleMerchant, RoleMarketer, RoleAdmin:
		return true
	default:
		return false
	}
}

// SubscriptionStatus represents the effective subscription state on a profile.
// Only an active subscription allows merchants to list products and marketers
// to place orders.
type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionInactive  SubscriptionStatus = "inactive"
	SubscriptionExpired   SubscriptionStatus = "expired"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
)

// String returns the string representation of the SubscriptionStatus.
func (s SubscriptionStatus) String() string {
	return string(s)
}

// IsValid checks if the SubscriptionStatus is a valid value.
func (s SubscriptionStatus) IsValid() bool {
	switch s {
	case SubscriptionActive, SubscriptionInactive, SubscriptionExpired, SubscriptionCancelled:
		return true
	default:
		return false
	}
}
