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

// subscriptionRepository implements the repository.SubscriptionRepository interface.
type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository is the constructor for subscriptionRepository.
func NewSubscriptionRepository(db *gorm.DB) repository.SubscriptionRepository {
	return &subscriptionRepository{
		db: db,
	}
}

// Create appends a subscription ledger row.
func (repo *subscriptionRepository) Create(ctx context.Context, subscription *entity.Subscription) error {
	subscriptionM := fromSubscriptionDomain(subscription)

	if err := repo.db.WithContext(ctx).Create(subscriptionM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrUserNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create subscription record")
	}

	subscription.CreatedAt = subscriptionM.CreatedAt

	return nil
}

// FindByUser returns a user's subscription history, newest first.
func (repo *subscriptionRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Subscription, error) {
	var subscriptionModels []*model.SubscriptionModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&subscriptionModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find subscriptions by user")
	}

	subscriptions := make([]*entity.Subscription, 0, len(subscriptionModels))
	for _, subscriptionM := range subscriptionModels {
		subscriptions = append(subscriptions, toSubscriptionDomain(subscriptionM))
	}

	return subscriptions, nil
}

// --- Mapper Functions ---

// toSubscriptionDomain converts a GORM SubscriptionModel to a domain Subscription entity.
func toSubscriptionDomain(data *model.SubscriptionModel) *entity.Subscription {
	if data == nil {
		return nil
	}

	return &entity.Subscription{
		ID:        data.ID,
		UserID:    data.UserID,
		Type:      data.Type,
		Amount:    data.Amount,
		StartDate: data.StartDate,
		EndDate:   data.EndDate,
		Status:    entity.SubscriptionStatus(data.Status),
		CreatedAt: data.CreatedAt,
	}
}

// fromSubscriptionDomain converts a domain Subscription entity to a GORM SubscriptionModel.
func fromSubscriptionDomain(data *entity.Subscription) *model.SubscriptionModel {
	if data == nil {
		return nil
	}

	return &model.SubscriptionModel{
		ID:        data.ID,
		UserID:    data.UserID,
		Type:      data.Type,
		Amount:    data.Amount,
		StartDate: data.StartDate,
		EndDate:   data.EndDate,
		Status:    data.Status.String(),
		CreatedAt: data.CreatedAt,
	}
}
