package usecase

import (
	"context"

	"souqlink/internal/domain/entity"

	"github.com/google/uuid"
)

// Pagination is the page metadata attached to admin listings.
type Pagination struct {
	Page    int   `json:"page"`
	Pages   int   `json:"pages"`
	PerPage int   `json:"per_page"`
	Total   int64 `json:"total"`
	HasNext bool  `json:"has_next"`
	HasPrev bool  `json:"has_prev"`
}

// NewPagination derives the page metadata from a total match count.
func NewPagination(page, perPage int, total int64) *Pagination {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	pages := int((total + int64(perPage) - 1) / int64(perPage))

	return &Pagination{
		Page:    page,
		Pages:   pages,
		PerPage: perPage,
		Total:   total,
		HasNext: page < pages,
		HasPrev: page > 1,
	}
}

// DashboardStats aggregates the platform-wide counters shown on the admin
// dashboard.
type DashboardStats struct {
	TotalUsers            int64                        `json:"total_users"`
	TotalMerchants        int64                        `json:"total_merchants"`
	TotalMarketers        int64                        `json:"total_marketers"`
	TotalProducts         int64                        `json:"total_products"`
	ActiveProducts        int64                        `json:"active_products"`
	TotalOrders           int64                        `json:"total_orders"`
	OrdersByStatus        map[entity.OrderStatus]int64 `json:"orders_by_status"`
	ActiveSubscriptions   int64                        `json:"active_subscriptions"`
	InactiveSubscriptions int64                        `json:"inactive_subscriptions"`
	NewUsersLastMonth     int64                        `json:"new_users_last_month"`
	NewOrdersLastMonth    int64                        `json:"new_orders_last_month"`
}

// ListUsersInput filters the admin user listing.
type ListUsersInput struct {
	Role    string
	Search  string
	Page    int
	PerPage int
}

// ListProductsInput filters the admin product listing.
type ListProductsInput struct {
	Search  string
	Page    int
	PerPage int
}

// ListOrdersInput filters the admin order listing.
type ListOrdersInput struct {
	Status  string
	Page    int
	PerPage int
}

// BroadcastInput carries an admin broadcast payload. Target selects the
// audience: "all", "merchant" or "marketer".
type BroadcastInput struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Target  string `json:"user_type"`
}

// AdminUsecase defines the interface for platform moderation use cases.
// Every operation requires the caller to hold the admin role.
type AdminUsecase interface {
	// Dashboard returns the platform-wide aggregate counters.
	Dashboard(ctx context.Context, adminID uuid.UUID) (*DashboardStats, error)

	// ListUsers returns a page of users with optional role and search filters.
	ListUsers(ctx context.Context, adminID uuid.UUID, input ListUsersInput) ([]*entity.User, *Pagination, error)

	// ListProducts returns a page of products with an optional search filter.
	ListProducts(ctx context.Context, adminID uuid.UUID, input ListProductsInput) ([]*entity.ProductListing, *Pagination, error)

	// ListOrders returns a page of orders with an optional status filter.
	ListOrders(ctx context.Context, adminID uuid.UUID, input ListOrdersInput) ([]*entity.OrderDetail, *Pagination, error)

	// BanUser bans a non-admin account, forces its subscription inactive and
	// notifies the target. Banning an already banned account changes nothing.
	BanUser(ctx context.Context, adminID, userID uuid.UUID) error

	// UnbanUser lifts the ban and notifies the target.
	UnbanUser(ctx context.Context, adminID, userID uuid.UUID) error

	// VerifyUser grants the verification badge unconditionally.
	VerifyUser(ctx context.Context, adminID, userID uuid.UUID) error

	// UpdateSubscription overrides a user's subscription status. Activation
	// stamps an expiry (default 30 days) and appends a ledger row.
	UpdateSubscription(ctx context.Context, adminID, userID uuid.UUID, status string, expiryDays *int) error

	// Broadcast fans one notification out to every user in the target
	// audience and returns the number of recipients.
	Broadcast(ctx context.Context, adminID uuid.UUID, input BroadcastInput) (int, error)
}
