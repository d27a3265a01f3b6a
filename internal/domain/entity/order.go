// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the fulfilment state of an order. Transitions follow an
// explicit table; terminal states admit no further transitions.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderInProgress OrderStatus = "in_progress"
	OrderCompleted  OrderStatus = "completed"
	OrderRejected   OrderStatus = "rejected"
	OrderNotSerious OrderStatus = "not_serious"
)

// orderTransitions is the allowed edge set of the order state machine.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:    {OrderInProgress, OrderCompleted, OrderRejected, OrderNotSerious},
	OrderInProgress: {OrderCompleted, OrderRejected, OrderNotSerious},
}

// String returns the string representation of the OrderStatus.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid checks if the OrderStatus is a valid value.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderPending, OrderInProgress, OrderCompleted, OrderRejected, OrderNotSerious:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the status admits no further transitions.
func (s OrderStatus) IsTerminal() bool {
	switch s {
	case OrderCompleted, OrderRejected, OrderNotSerious:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether the state machine permits moving from s to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

// PaymentStatus tracks settlement of the marketer's profit, independently of
// the fulfilment status.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentDelayed PaymentStatus = "delayed"
)

// String returns the string representation of the PaymentStatus.
func (s PaymentStatus) String() string {
	return string(s)
}

// Order is a marketer's sale of a product to an end customer.
// MerchantID is captured from the product at creation time and is never
// re-derived, even if the product later changes hands.
type Order struct {
	ID             uuid.UUID
	ProductID      uuid.UUID
	MerchantID     uuid.UUID // Snapshot of product.MerchantID at creation.
	MarketerID     uuid.UUID
	CustomerName   string
	CustomerPhone  string
	SalePrice      float64 // Per-unit price the customer pays.
	Quantity       int
	MarketerProfit float64 // Quantity * (SalePrice - product base price), fixed at creation.
	Status         OrderStatus
	PaymentStatus  PaymentStatus
	DeliveryDate   *time.Time // Stamped when the order completes.
	PaymentDueDate *time.Time // DeliveryDate + settlement window.
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ComputeMarketerProfit returns the total marketer margin for a sale.
func ComputeMarketerProfit(quantity int, salePrice, basePrice float64) float64 {
	q := float64(quantity)

	return q*salePrice - q*basePrice
}

// OrderDetail is an order joined with the read-time context the listing
// endpoints need: product name and counterparty payout information.
type OrderDetail struct {
	Order
	ProductName          string
	MerchantName         string
	MerchantBusinessName string
	MarketerName         string
	MarketerPayMethod    string
	MarketerPayDetails   string
}

// OrderSnapshot is the related-order summary attached to a notification at
// read time. It reflects the order's current state, not its state when the
// notification was created.
type OrderSnapshot struct {
	OrderID       uuid.UUID     `json:"id"`
	ProductName   string        `json:"product_name"`
	CustomerName  string        `json:"customer_name"`
	Status        OrderStatus   `json:"status"`
	PaymentStatus PaymentStatus `json:"payment_status"`
}

// MarketerStats aggregates a marketer's own orders.
type MarketerStats struct {
	TotalOrders     int     `json:"total_orders"`
	CompletedOrders int     `json:"completed_orders"`
	SuccessRate     float64 `json:"success_rate"`
	TotalProfit     float64 `json:"total_profit"`   // Sum of profit on paid orders.
	PendingProfit   float64 `json:"pending_profit"` // Completed but not yet paid.
}

// MerchantStats aggregates a merchant's received orders, including the
// outstanding amount owed to each marketer.
type MerchantStats struct {
	TotalOrders          int                   `json:"total_orders"`
	CompletedOrders      int                   `json:"completed_orders"`
	SuccessRate          float64               `json:"success_rate"`
	TotalOwedToMarketers float64               `json:"total_owed_to_marketers"`
	MarketerDebts        map[uuid.UUID]float64 `json:"marketer_debts"`
}
