// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"
	"time"

	"souqlink/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserFilter narrows admin user listings.
type UserFilter struct {
	Role    entity.Role // Zero value means all roles.
	Search  string      // Substring match on name or email.
	Page    int
	PerPage int
}

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
type UserRepository interface {
	// Create persists a new user together with its profile in one insert.
	Create(ctx context.Context, user *entity.User) error

	// FindByID retrieves a single user by their unique ID, profile included.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address, profile included.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Update persists changes to the user record and its profile.
	Update(ctx context.Context, user *entity.User) error

	// List returns a page of users matching the filter plus the total match count.
	List(ctx context.Context, filter UserFilter) ([]*entity.User, int64, error)

	// FindAllByRole returns every user carrying the given role; a nil role
	// returns every user. Used for broadcast fan-out.
	FindAllByRole(ctx context.Context, role *entity.Role) ([]*entity.User, error)

	// SetBanned flips the ban flag on a user's profile.
	SetBanned(ctx context.Context, userID uuid.UUID, banned bool) error

	// SetVerified grants the verification badge unconditionally.
	SetVerified(ctx context.Context, userID uuid.UUID) error

	// SetSubscription sets the subscription status and optional expiry.
	SetSubscription(ctx context.Context, userID uuid.UUID, status entity.SubscriptionStatus, expiry *time.Time) error

	// IncrementCompletedOrders atomically adds one to the profile's completed
	// order count and promotes the verification badge when the new count
	// reaches verifyThreshold. Promotion is one-way.
	IncrementCompletedOrders(ctx context.Context, userID uuid.UUID, verifyThreshold int) error

	// CountUsers counts users, optionally restricted to accounts created at or after since.
	CountUsers(ctx context.Context, since *time.Time) (int64, error)

	// CountByRole counts profiles with the given role.
	CountByRole(ctx context.Context, role entity.Role) (int64, error)

	// CountBySubscriptionStatus counts profiles with the given subscription status.
	CountBySubscriptionStatus(ctx context.Context, status entity.SubscriptionStatus) (int64, error)
}
