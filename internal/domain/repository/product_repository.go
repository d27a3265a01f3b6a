package repository

import (
	"context"
	"errors"

	"souqlink/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrProductNotFound is a domain-specific error returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

// ProductFilter narrows admin product listings.
type ProductFilter struct {
	Search  string // Substring match on product name or merchant name.
	Page    int
	PerPage int
}

// ProductRepository defines the standard operations for product persistence.
type ProductRepository interface {
	// Create persists a new product.
	Create(ctx context.Context, product *entity.Product) error

	// FindByID retrieves a single product by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// FindDetailByID retrieves a product joined with its merchant's trust snapshot.
	FindDetailByID(ctx context.Context, id uuid.UUID) (*entity.ProductListing, error)

	// FindByMerchant returns all products owned by a merchant, newest first.
	FindByMerchant(ctx context.Context, merchantID uuid.UUID) ([]*entity.Product, error)

	// FindActive returns active products whose merchant holds an active
	// subscription, newest first, with the merchant trust snapshot attached.
	FindActive(ctx context.Context) ([]*entity.ProductListing, error)

	// Update persists changes to an existing product.
	Update(ctx context.Context, product *entity.Product) error

	// Delete removes a product. Callers must verify it is order-free first.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns a page of products for the admin view plus the total match count.
	List(ctx context.Context, filter ProductFilter) ([]*entity.ProductListing, int64, error)

	// CountProducts counts products, optionally only active ones.
	CountProducts(ctx context.Context, activeOnly bool) (int64, error)
}
