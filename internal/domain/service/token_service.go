// Package service defines domain service interfaces implemented by the infra layer.
package service

import (
	"time"

	"souqlink/internal/domain/entity"

	"github.com/google/uuid"
)

// SessionClaims is the request-scoped identity carried by the session cookie.
// It is the only cross-request state: a capability naming who the caller is
// and which role they registered as.
type SessionClaims struct {
	UserID uuid.UUID
	Role   entity.Role
}

// TokenService signs and validates the session token stored in the cookie.
type TokenService interface {
	// Generate creates a signed session token for the given identity.
	Generate(userID uuid.UUID, role entity.Role) (string, error)

	// Validate parses and verifies a session token string.
	Validate(token string) (*SessionClaims, error)

	// TTL returns the configured session lifetime, used for the cookie Max-Age.
	TTL() time.Duration
}
