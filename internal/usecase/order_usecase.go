package usecase

import (
	"context"

	"souqlink/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateOrderInput carries the order creation payload.
type CreateOrderInput struct {
	ProductID     uuid.UUID `json:"product_id"`
	CustomerName  string    `json:"customer_name"`
	CustomerPhone string    `json:"customer_phone"`
	SalePrice     float64   `json:"sale_price"`
	Quantity      int       `json:"quantity"`
}

// OrderUsecase defines the interface for the order workflow use cases.
type OrderUsecase interface {
	// CreateOrder places an order on an active product. Caller must be a
	// marketer with an active subscription; the computed profit must meet the
	// product's minimum. The merchant is notified in the same unit of work.
	CreateOrder(ctx context.Context, marketerID uuid.UUID, input CreateOrderInput) (uuid.UUID, error)

	// ListMarketerOrders returns the marketer's own orders, newest first.
	ListMarketerOrders(ctx context.Context, marketerID uuid.UUID) ([]*entity.OrderDetail, error)

	// ListMerchantOrders returns the merchant's received orders, newest first,
	// with the marketer payout information.
	ListMerchantOrders(ctx context.Context, merchantID uuid.UUID) ([]*entity.OrderDetail, error)

	// UpdateStatus moves an order along the fulfilment state machine. Only the
	// order's merchant may transition it; illegal edges are rejected.
	// Completing stamps the delivery date and the payment due date, and the
	// marketer is notified in the same unit of work.
	UpdateStatus(ctx context.Context, merchantID, orderID uuid.UUID, newStatus entity.OrderStatus) error

	// ConfirmPayment marks a COMPLETED order's profit as settled and bumps
	// both counterparties' completed-order counters.
	ConfirmPayment(ctx context.Context, marketerID, orderID uuid.UUID) error

	// ReportDelay flags a COMPLETED order's settlement as delayed and
	// notifies the merchant.
	ReportDelay(ctx context.Context, marketerID, orderID uuid.UUID) error

	// MarketerStats aggregates the marketer's own orders.
	MarketerStats(ctx context.Context, marketerID uuid.UUID) (*entity.MarketerStats, error)

	// MerchantStats aggregates the merchant's received orders, including
	// outstanding amounts per marketer.
	MerchantStats(ctx context.Context, merchantID uuid.UUID) (*entity.MerchantStats, error)
}
