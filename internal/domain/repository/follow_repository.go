package repository

import (
	"context"
	"errors"

	"souqlink/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrFollowNotFound is returned when a marketer does not follow the given merchant.
var ErrFollowNotFound = errors.New("follow not found")

// ErrFollowExists is returned when the (marketer, merchant) pair already exists.
var ErrFollowExists = errors.New("follow already exists")

// FollowRepository persists marketer-follows-merchant relations.
type FollowRepository interface {
	// Create records a follow. The (marketer, merchant) pair is unique;
	// duplicates yield ErrFollowExists.
	Create(ctx context.Context, follow *entity.MerchantFollow) error

	// Delete removes a follow; a missing pair yields ErrFollowNotFound.
	Delete(ctx context.Context, marketerID, merchantID uuid.UUID) error

	// Exists reports whether the marketer already follows the merchant.
	Exists(ctx context.Context, marketerID, merchantID uuid.UUID) (bool, error)

	// FindFollowedMerchants returns the merchants a marketer follows,
	// profiles included, newest follow first.
	FindFollowedMerchants(ctx context.Context, marketerID uuid.UUID) ([]*entity.User, error)
}
