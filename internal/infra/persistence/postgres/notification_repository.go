package postgres

import (
	"context"

	"souqlink/internal/domain/entity"
	domainerrors "souqlink/internal/domain/errors"
	"souqlink/internal/domain/repository"
	"souqlink/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// notificationRepository implements the repository.NotificationRepository interface.
type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository is the constructor for notificationRepository.
func NewNotificationRepository(db *gorm.DB) repository.NotificationRepository {
	return &notificationRepository{
		db: db,
	}
}

// Create persists a single notification.
func (repo *notificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	notificationM := fromNotificationDomain(notification)

	if err := repo.db.WithContext(ctx).Create(notificationM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrUserNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create notification")
	}

	notification.CreatedAt = notificationM.CreatedAt

	return nil
}

// CreateBatch persists many notifications in one insert. Used by broadcast fan-out.
func (repo *notificationRepository) CreateBatch(ctx context.Context, notifications []*entity.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	notificationModels := make([]*model.NotificationModel, 0, len(notifications))
	for _, notification := range notifications {
		notificationModels = append(notificationModels, fromNotificationDomain(notification))
	}

	// Batches of 100 balance round trips against statement size.
	if err := repo.db.WithContext(ctx).CreateInBatches(notificationModels, 100).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to batch create notifications")
	}

	for i, notificationM := range notificationModels {
		notifications[i].CreatedAt = notificationM.CreatedAt
	}

	return nil
}

// FindByID retrieves a single notification by its unique ID.
func (repo *notificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Notification, error) {
	var notificationM model.NotificationModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&notificationM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotificationNotFound
		}

		return nil, errors.Wrap(err, "failed to find notification by ID")
	}

	return toNotificationDomain(&notificationM), nil
}

// FindByUser returns all notifications for a user, newest first.
func (repo *notificationRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Notification, error) {
	var notificationModels []*model.NotificationModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notificationModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find notifications by user")
	}

	notifications := make([]*entity.Notification, 0, len(notificationModels))
	for _, notificationM := range notificationModels {
		notifications = append(notifications, toNotificationDomain(notificationM))
	}

	return notifications, nil
}

// CountUnread counts the user's unread notifications.
func (repo *notificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.NotificationModel{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count unread notifications")
	}

	return count, nil
}

// MarkRead flips the read flag on one notification.
func (repo *notificationRepository) MarkRead(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.NotificationModel{}).
		Where("id = ?", id).
		Update("is_read", true)

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to mark notification read")
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotificationNotFound
	}

	return nil
}

// MarkAllRead flips the read flag on every unread notification of a user.
func (repo *notificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Model(&model.NotificationModel{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error; err != nil {
		return errors.Wrap(err, "failed to mark all notifications read")
	}

	return nil
}

// Delete removes one notification.
func (repo *notificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.NotificationModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete notification")
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotificationNotFound
	}

	return nil
}

// DeleteAllByUser clears a user's inbox.
func (repo *notificationRepository) DeleteAllByUser(ctx context.Context, userID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.NotificationModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to clear notifications")
	}

	return nil
}

// --- Mapper Functions ---

// toNotificationDomain converts a GORM NotificationModel to a domain Notification entity.
func toNotificationDomain(data *model.NotificationModel) *entity.Notification {
	if data == nil {
		return nil
	}

	return &entity.Notification{
		ID:             data.ID,
		UserID:         data.UserID,
		Title:          data.Title,
		Message:        data.Message,
		Type:           entity.NotificationType(data.Type),
		IsRead:         data.IsRead,
		RelatedOrderID: data.RelatedOrderID,
		CreatedAt:      data.CreatedAt,
	}
}

// fromNotificationDomain converts a domain Notification entity to a GORM NotificationModel.
func fromNotificationDomain(data *entity.Notification) *model.NotificationModel {
	if data == nil {
		return nil
	}

	return &model.NotificationModel{
		ID:             data.ID,
		UserID:         data.UserID,
		Title:          data.Title,
		Message:        data.Message,
		Type:           data.Type.String(),
		IsRead:         data.IsRead,
		RelatedOrderID: data.RelatedOrderID,
		CreatedAt:      data.CreatedAt,
	}
}
