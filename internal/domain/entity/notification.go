// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType tags the workflow event that produced a notification.
type NotificationType string

const (
	NotificationOrderUpdate NotificationType = "order_update"
	NotificationNewOrder    NotificationType = "new_order"
	NotificationPayment     NotificationType = "payment"
	NotificationGeneral     NotificationType = "general"
)

// String returns the string representation of the NotificationType.
func (t NotificationType) String() string {
	return string(t)
}

// Notification is an append-only inbox message. It is only ever created as a
// side effect of workflow or admin actions, never directly by end users.
type Notification struct {
	ID             uuid.UUID
	UserID         uuid.UUID // Inbox owner.
	Title          string
	Message        string
	Type           NotificationType
	IsRead         bool
	RelatedOrderID *uuid.UUID
	CreatedAt      time.Time
}
