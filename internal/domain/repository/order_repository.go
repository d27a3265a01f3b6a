package repository

import (
	"context"
	"errors"
	"time"

	"souqlink/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrOrderNotFound is a domain-specific error returned when an order is not found.
var ErrOrderNotFound = errors.New("order not found")

// OrderFilter narrows admin order listings.
type OrderFilter struct {
	Status  entity.OrderStatus // Zero value means all statuses.
	Page    int
	PerPage int
}

// OrderRepository defines the standard operations for order persistence.
type OrderRepository interface {
	// Create persists a new order.
	Create(ctx context.Context, order *entity.Order) error

	// FindByID retrieves a single order by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// FindSnapshotByID resolves the current-state summary of an order for
	// notification enrichment. Missing orders yield ErrOrderNotFound.
	FindSnapshotByID(ctx context.Context, id uuid.UUID) (*entity.OrderSnapshot, error)

	// FindByMarketer returns all orders placed by a marketer, newest first,
	// joined with product context.
	FindByMarketer(ctx context.Context, marketerID uuid.UUID) ([]*entity.OrderDetail, error)

	// FindByMerchant returns all orders received by a merchant, newest first,
	// joined with product context and the marketer's payout information.
	FindByMerchant(ctx context.Context, merchantID uuid.UUID) ([]*entity.OrderDetail, error)

	// Update persists changes to an existing order.
	Update(ctx context.Context, order *entity.Order) error

	// List returns a page of orders for the admin view plus the total match count.
	List(ctx context.Context, filter OrderFilter) ([]*entity.OrderDetail, int64, error)

	// CountByProduct counts orders referencing a product. Guards product deletion.
	CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error)

	// CountOrders counts orders, optionally restricted to those created at or after since.
	CountOrders(ctx context.Context, since *time.Time) (int64, error)

	// CountByStatus returns order counts grouped by status.
	CountByStatus(ctx context.Context) (map[entity.OrderStatus]int64, error)
}
