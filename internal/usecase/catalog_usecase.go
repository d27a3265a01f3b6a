package usecase

import (
	"context"

	"souqlink/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateProductInput carries the product creation payload.
type CreateProductInput struct {
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	ImageURL          string   `json:"image_url"`
	BasePrice         float64  `json:"base_price"`
	MinMarketerProfit float64  `json:"min_marketer_profit"`
	SuggestedPrice    *float64 `json:"suggested_price"`
	Category          string   `json:"category"`
}

// UpdateProductInput carries the partial product update payload. Nil fields
// are left untouched; the result is re-validated against the pricing invariant.
type UpdateProductInput struct {
	Name              *string  `json:"name"`
	Description       *string  `json:"description"`
	ImageURL          *string  `json:"image_url"`
	BasePrice         *float64 `json:"base_price"`
	MinMarketerProfit *float64 `json:"min_marketer_profit"`
	SuggestedPrice    *float64 `json:"suggested_price"`
	Category          *string  `json:"category"`
}

// CatalogUsecase defines the interface for product catalog use cases.
type CatalogUsecase interface {
	// CreateProduct lists a new product. Caller must be a merchant with an
	// active subscription.
	CreateProduct(ctx context.Context, merchantID uuid.UUID, input CreateProductInput) (*entity.Product, error)

	// ListMine returns the merchant's own products, newest first.
	ListMine(ctx context.Context, merchantID uuid.UUID) ([]*entity.Product, error)

	// ListActive returns products visible to marketers: active, with an
	// actively subscribed merchant, trust snapshot attached.
	ListActive(ctx context.Context, marketerID uuid.UUID) ([]*entity.ProductListing, error)

	// GetProduct returns a product's public detail with the merchant trust snapshot.
	GetProduct(ctx context.Context, productID uuid.UUID) (*entity.ProductListing, error)

	// ToggleActive flips the product's active flag and returns the new value.
	ToggleActive(ctx context.Context, ownerID, productID uuid.UUID) (bool, error)

	// UpdateProduct applies a partial update to an owned product.
	UpdateProduct(ctx context.Context, ownerID, productID uuid.UUID, input UpdateProductInput) error

	// DeleteProduct removes an owned product unless orders reference it.
	DeleteProduct(ctx context.Context, ownerID, productID uuid.UUID) error

	// ProductQR renders a PNG QR code encoding the product's share URL.
	ProductQR(ctx context.Context, productID uuid.UUID) ([]byte, error)

	// FollowMerchant subscribes a marketer to a merchant's catalog.
	FollowMerchant(ctx context.Context, marketerID, merchantID uuid.UUID) error

	// UnfollowMerchant removes the follow.
	UnfollowMerchant(ctx context.Context, marketerID, merchantID uuid.UUID) error

	// ListFollowedMerchants returns the merchants the marketer follows.
	ListFollowedMerchants(ctx context.Context, marketerID uuid.UUID) ([]*entity.User, error)
}
