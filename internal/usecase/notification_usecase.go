package usecase

import (
	"context"

	"souqlink/internal/domain/entity"

	"github.com/google/uuid"
)

// NotificationView is a notification plus the current-state snapshot of its
// related order, resolved at read time.
type NotificationView struct {
	Notification *entity.Notification
	RelatedOrder *entity.OrderSnapshot // Nil when no order is attached or it no longer resolves.
}

// NotificationUsecase defines the interface for the inbox use cases.
// Every mutation is ownership-checked against the notification's user.
type NotificationUsecase interface {
	// List returns the caller's notifications, newest first.
	List(ctx context.Context, userID uuid.UUID) ([]*NotificationView, error)

	// UnreadCount counts the caller's unread notifications.
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)

	// MarkRead flags one owned notification as read.
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error

	// MarkAllRead flags every unread notification of the caller as read.
	MarkAllRead(ctx context.Context, userID uuid.UUID) error

	// Delete removes one owned notification.
	Delete(ctx context.Context, userID, notificationID uuid.UUID) error

	// ClearAll empties the caller's inbox.
	ClearAll(ctx context.Context, userID uuid.UUID) error
}
