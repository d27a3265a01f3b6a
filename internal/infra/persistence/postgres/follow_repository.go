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

// followRepository implements the repository.FollowRepository interface.
type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository is the constructor for followRepository.
func NewFollowRepository(db *gorm.DB) repository.FollowRepository {
	return &followRepository{
		db: db,
	}
}

// Create records a follow. Duplicate pairs yield ErrFollowExists.
func (repo *followRepository) Create(ctx context.Context, follow *entity.MerchantFollow) error {
	followM := &model.MerchantFollowModel{
		ID:         follow.ID,
		MarketerID: follow.MarketerID,
		MerchantID: follow.MerchantID,
		CreatedAt:  follow.CreatedAt,
	}

	if err := repo.db.WithContext(ctx).Create(followM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrFollowExists
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrUserNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create follow")
	}

	follow.CreatedAt = followM.CreatedAt

	return nil
}

// Delete removes a follow; a missing pair yields ErrFollowNotFound.
func (repo *followRepository) Delete(ctx context.Context, marketerID, merchantID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("marketer_id = ? AND merchant_id = ?", marketerID, merchantID).
		Delete(&model.MerchantFollowModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete follow")
	}
	if result.RowsAffected == 0 {
		return repository.ErrFollowNotFound
	}

	return nil
}

// Exists reports whether the marketer already follows the merchant.
func (repo *followRepository) Exists(ctx context.Context, marketerID, merchantID uuid.UUID) (bool, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.MerchantFollowModel{}).
		Where("marketer_id = ? AND merchant_id = ?", marketerID, merchantID).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check follow existence")
	}

	return count > 0, nil
}

// FindFollowedMerchants returns the merchants a marketer follows, profiles
// included, newest follow first.
func (repo *followRepository) FindFollowedMerchants(ctx context.Context, marketerID uuid.UUID) ([]*entity.User, error) {
	var userModels []*model.UserModel

	if err := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Joins("JOIN merchant_follows ON merchant_follows.merchant_id = users.id").
		Where("merchant_follows.marketer_id = ?", marketerID).
		Order("merchant_follows.created_at DESC").
		Preload("Profile").
		Find(&userModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find followed merchants")
	}

	merchants := make([]*entity.User, 0, len(userModels))
	for _, userM := range userModels {
		merchants = append(merchants, toUserDomain(userM))
	}

	return merchants, nil
}
