// Package usecase defines the application's use case interfaces and the DTOs
// passed across the delivery boundary.
package usecase

import (
	"context"

	"souqlink/internal/domain/entity"

	"github.com/google/uuid"
)

// RegisterInput carries the registration payload. Role-specific fields are
// only honored for the matching role.
type RegisterInput struct {
	Email          string `json:"email"`
	Name           string `json:"name"`
	Role           string `json:"user_type"`
	Phone          string `json:"phone"`
	BusinessName   string `json:"business_name"`
	BusinessType   string `json:"business_type"`
	PaymentMethod  string `json:"payment_method"`
	PaymentDetails string `json:"payment_details"`
}

// UpdateProfileInput carries the partial profile update payload. Nil fields
// are left untouched.
type UpdateProfileInput struct {
	Name           *string `json:"name"`
	Phone          *string `json:"phone"`
	BusinessName   *string `json:"business_name"`
	BusinessType   *string `json:"business_type"`
	PaymentMethod  *string `json:"payment_method"`
	PaymentDetails *string `json:"payment_details"`
}

// IdentityUsecase defines the interface for account management use cases.
type IdentityUsecase interface {
	// Register creates a User plus its role Profile and opens a session.
	// Returns the created user and the session token to set as a cookie.
	Register(ctx context.Context, input RegisterInput) (*entity.User, string, error)

	// Login authenticates by email and opens a session. Banned accounts are refused.
	Login(ctx context.Context, email string) (*entity.User, string, error)

	// GetCurrent returns the authenticated user's own record, profile included.
	GetCurrent(ctx context.Context, userID uuid.UUID) (*entity.User, error)

	// UpdateProfile applies a partial update to the caller's own record.
	// Role-specific fields are only writable by the matching role.
	UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) error
}
