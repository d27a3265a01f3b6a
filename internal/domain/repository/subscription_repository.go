package repository

import (
	"context"

	"souqlink/internal/domain/entity"

	"github.com/google/uuid"
)

// SubscriptionRepository persists the auxiliary subscription ledger.
// The effective subscription gate lives on the profile; these rows only keep history.
type SubscriptionRepository interface {
	// Create appends a ledger row.
	Create(ctx context.Context, subscription *entity.Subscription) error

	// FindByUser returns a user's subscription history, newest first.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Subscription, error)
}
