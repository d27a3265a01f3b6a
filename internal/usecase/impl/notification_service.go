package impl

import (
	"context"
	"log/slog"

	domainerrors "souqlink/internal/domain/errors"
	"souqlink/internal/domain/repository"
	"souqlink/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// notificationService implements the NotificationUsecase interface.
type notificationService struct {
	notificationRepo repository.NotificationRepository
	orderRepo        repository.OrderRepository
	logger           *slog.Logger
}

// NotificationServiceParams holds dependencies for NotificationService, injected by Fx.
type NotificationServiceParams struct {
	fx.In

	NotificationRepo repository.NotificationRepository
	OrderRepo        repository.OrderRepository
	Logger           *slog.Logger
}

// NewNotificationService is the constructor for notificationService.
func NewNotificationService(params NotificationServiceParams) usecase.NotificationUsecase {
	return &notificationService{
		notificationRepo: params.NotificationRepo,
		orderRepo:        params.OrderRepo,
		logger:           params.Logger,
	}
}

// List returns the caller's notifications newest first, each enriched with the
// current state of its related order. The snapshot reflects the order NOW, not
// the order as it was when the notification fired.
func (srv *notificationService) List(ctx context.Context, userID uuid.UUID) ([]*usecase.NotificationView, error) {
	notifications, err := srv.notificationRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list notifications")
	}

	views := make([]*usecase.NotificationView, 0, len(notifications))
	for _, notification := range notifications {
		view := &usecase.NotificationView{Notification: notification}

		if notification.RelatedOrderID != nil {
			snapshot, err := srv.orderRepo.FindSnapshotByID(ctx, *notification.RelatedOrderID)
			if err != nil && !errors.Is(err, repository.ErrOrderNotFound) {
				return nil, errors.Wrap(err, "failed to resolve related order")
			}
			view.RelatedOrder = snapshot
		}

		views = append(views, view)
	}

	return views, nil
}

// UnreadCount counts the caller's unread notifications.
func (srv *notificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	count, err := srv.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		return 0, errors.Wrap(err, "failed to count unread notifications")
	}

	return count, nil
}

// MarkRead flags one owned notification as read.
func (srv *notificationService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	if err := srv.requireOwned(ctx, userID, notificationID); err != nil {
		return err
	}

	if err := srv.notificationRepo.MarkRead(ctx, notificationID); err != nil {
		return errors.Wrap(err, "failed to mark notification read")
	}

	return nil
}

// MarkAllRead flags every unread notification of the caller as read.
func (srv *notificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	if err := srv.notificationRepo.MarkAllRead(ctx, userID); err != nil {
		return errors.Wrap(err, "failed to mark all notifications read")
	}

	return nil
}

// Delete removes one owned notification.
func (srv *notificationService) Delete(ctx context.Context, userID, notificationID uuid.UUID) error {
	if err := srv.requireOwned(ctx, userID, notificationID); err != nil {
		return err
	}

	if err := srv.notificationRepo.Delete(ctx, notificationID); err != nil {
		return errors.Wrap(err, "failed to delete notification")
	}

	return nil
}

// ClearAll empties the caller's inbox.
func (srv *notificationService) ClearAll(ctx context.Context, userID uuid.UUID) error {
	if err := srv.notificationRepo.DeleteAllByUser(ctx, userID); err != nil {
		return errors.Wrap(err, "failed to clear notifications")
	}

	return nil
}

// requireOwned ensures the notification exists and belongs to the caller.
func (srv *notificationService) requireOwned(ctx context.Context, userID, notificationID uuid.UUID) error {
	notification, err := srv.notificationRepo.FindByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotificationNotFound) {
			return domainerrors.ErrNotificationNotFound
		}

		return errors.Wrap(err, "failed to find notification")
	}

	if notification.UserID != userID {
		return domainerrors.ErrNotOwner
	}

	return nil
}
