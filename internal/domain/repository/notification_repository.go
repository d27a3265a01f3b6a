package repository

import (
	"context"
	"errors"

	"souqlink/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrNotificationNotFound is a domain-specific error returned when a notification is not found.
var ErrNotificationNotFound = errors.New("notification not found")

// NotificationRepository defines the standard operations for inbox persistence.
type NotificationRepository interface {
	// Create persists a single notification.
	Create(ctx context.Context, notification *entity.Notification) error

	// CreateBatch persists many notifications in one insert. Used by broadcast fan-out.
	CreateBatch(ctx context.Context, notifications []*entity.Notification) error

	// FindByID retrieves a single notification by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Notification, error)

	// FindByUser returns all notifications for a user, newest first.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Notification, error)

	// CountUnread counts the user's unread notifications.
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)

	// MarkRead flips the read flag on one notification.
	MarkRead(ctx context.Context, id uuid.UUID) error

	// MarkAllRead flips the read flag on every unread notification of a user.
	MarkAllRead(ctx context.Context, userID uuid.UUID) error

	// Delete removes one notification.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteAllByUser clears a user's inbox.
	DeleteAllByUser(ctx context.Context, userID uuid.UUID) error
}
