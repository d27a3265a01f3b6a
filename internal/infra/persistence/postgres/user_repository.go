package postgres

import (
	"context"
	"time"

	"souqlink/internal/domain/entity"
	domainerrors "souqlink/internal/domain/errors"
	"souqlink/internal/domain/repository"
	"souqlink/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// userRepository implements the repository.UserRepository interface.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{
		db: db,
	}
}

// Create persists a new user and its profile in one insert.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrEmailAlreadyRegistered
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// FindByID retrieves a user by their unique ID, profile included.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel

	if err := repo.db.WithContext(ctx).
		Preload("Profile").
		Where("id = ?", id).
		First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by ID")
	}

	return toUserDomain(&userM), nil
}

// FindByEmail retrieves a user by their email address, profile included.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userM model.UserModel

	if err := repo.db.WithContext(ctx).
		Preload("Profile").
		Where("email = ?", email).
		First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return toUserDomain(&userM), nil
}

// Update persists changes to the user record and its profile.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)
	profileM := userM.Profile
	userM.Profile = nil

	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", userM.ID).
		Updates(map[string]interface{}{
			"name":  userM.Name,
			"phone": userM.Phone,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	if profileM == nil {
		return nil
	}

	if err := repo.db.WithContext(ctx).
		Model(&model.ProfileModel{}).
		Where("user_id = ?", profileM.UserID).
		Updates(map[string]interface{}{
			"business_name":   profileM.BusinessName,
			"business_type":   profileM.BusinessType,
			"payment_method":  profileM.PaymentMethod,
			"payment_details": profileM.PaymentDetails,
		}).Error; err != nil {
		return errors.Wrap(err, "failed to update user profile")
	}

	return nil
}

// List returns a page of users matching the filter plus the total match count.
func (repo *userRepository) List(ctx context.Context, filter repository.UserFilter) ([]*entity.User, int64, error) {
	query := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Joins("JOIN user_profiles ON user_profiles.user_id = users.id")

	if filter.Role != "" {
		query = query.Where("user_profiles.role = ?", filter.Role.String())
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("users.name ILIKE ? OR users.email ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count users")
	}

	var userModels []*model.UserModel
	if err := query.
		Order("users.created_at DESC").
		Scopes(paginate(filter.Page, filter.PerPage)).
		Preload("Profile").
		Find(&userModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list users")
	}

	users := make([]*entity.User, 0, len(userModels))
	for _, userM := range userModels {
		users = append(users, toUserDomain(userM))
	}

	return users, total, nil
}

// FindAllByRole returns every user carrying the given role; nil means everyone.
func (repo *userRepository) FindAllByRole(ctx context.Context, role *entity.Role) ([]*entity.User, error) {
	query := repo.db.WithContext(ctx).Model(&model.UserModel{})

	if role != nil {
		query = query.
			Joins("JOIN user_profiles ON user_profiles.user_id = users.id").
			Where("user_profiles.role = ?", role.String())
	}

	var userModels []*model.UserModel
	if err := query.Preload("Profile").Find(&userModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find users by role")
	}

	users := make([]*entity.User, 0, len(userModels))
	for _, userM := range userModels {
		users = append(users, toUserDomain(userM))
	}

	return users, nil
}

// SetBanned flips the ban flag on a user's profile.
func (repo *userRepository) SetBanned(ctx context.Context, userID uuid.UUID, banned bool) error {
	return repo.updateProfile(ctx, userID, map[string]interface{}{
		"is_banned": banned,
	})
}

// SetVerified grants the verification badge unconditionally.
func (repo *userRepository) SetVerified(ctx context.Context, userID uuid.UUID) error {
	return repo.updateProfile(ctx, userID, map[string]interface{}{
		"is_verified": true,
	})
}

// SetSubscription sets the subscription status and optional expiry.
func (repo *userRepository) SetSubscription(ctx context.Context, userID uuid.UUID, status entity.SubscriptionStatus, expiry *time.Time) error {
	return repo.updateProfile(ctx, userID, map[string]interface{}{
		"subscription_status": status.String(),
		"subscription_expiry": expiry,
	})
}

// IncrementCompletedOrders bumps the completed order counter and promotes the
// verification badge when the new count reaches the threshold, all in a single
// UPDATE so concurrent settlements cannot lose increments. The badge is never
// taken back here.
func (repo *userRepository) IncrementCompletedOrders(ctx context.Context, userID uuid.UUID, verifyThreshold int) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProfileModel{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"completed_orders": gorm.Expr("completed_orders + 1"),
			"is_verified":      gorm.Expr("is_verified OR completed_orders + 1 >= ?", verifyThreshold),
		})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to increment completed orders")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// CountUsers counts users, optionally restricted to accounts created at or after since.
func (repo *userRepository) CountUsers(ctx context.Context, since *time.Time) (int64, error) {
	query := repo.db.WithContext(ctx).Model(&model.UserModel{})
	if since != nil {
		query = query.Where("created_at >= ?", *since)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count users")
	}

	return count, nil
}

// CountByRole counts profiles with the given role.
func (repo *userRepository) CountByRole(ctx context.Context, role entity.Role) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.ProfileModel{}).
		Where("role = ?", role.String()).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count users by role")
	}

	return count, nil
}

// CountBySubscriptionStatus counts profiles with the given subscription status.
func (repo *userRepository) CountBySubscriptionStatus(ctx context.Context, status entity.SubscriptionStatus) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.ProfileModel{}).
		Where("subscription_status = ?", status.String()).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count users by subscription status")
	}

	return count, nil
}

func (repo *userRepository) updateProfile(ctx context.Context, userID uuid.UUID, values map[string]interface{}) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProfileModel{}).
		Where("user_id = ?", userID).
		Updates(values)

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update user profile")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:        data.ID,
		Email:     data.Email,
		Name:      data.Name,
		Phone:     data.Phone,
		Profile:   toProfileDomain(data.Profile),
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// toProfileDomain converts a GORM ProfileModel to a domain Profile entity.
// The role decides which of the optional sub-profiles is materialized.
func toProfileDomain(data *model.ProfileModel) *entity.Profile {
	if data == nil {
		return nil
	}

	profile := &entity.Profile{
		UserID:             data.UserID,
		Role:               entity.Role(data.Role),
		IsVerified:         data.IsVerified,
		CompletedOrders:    data.CompletedOrders,
		SubscriptionStatus: entity.SubscriptionStatus(data.SubscriptionStatus),
		SubscriptionExpiry: data.SubscriptionExpiry,
		IsBanned:           data.IsBanned,
		CreatedAt:          data.CreatedAt,
		UpdatedAt:          data.UpdatedAt,
	}

	switch profile.Role {
	case entity.RoleMerchant:
		profile.Merchant = &entity.MerchantInfo{
			BusinessName: derefString(data.BusinessName),
			BusinessType: derefString(data.BusinessType),
		}
	case entity.RoleMarketer:
		profile.Marketer = &entity.MarketerInfo{
			PaymentMethod:  derefString(data.PaymentMethod),
			PaymentDetails: derefString(data.PaymentDetails),
		}
	}

	return profile
}

// fromUserDomain converts a domain User entity to a GORM UserModel.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:        data.ID,
		Email:     data.Email,
		Name:      data.Name,
		Phone:     data.Phone,
		Profile:   fromProfileDomain(data.Profile),
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromProfileDomain converts a domain Profile entity to a GORM ProfileModel.
func fromProfileDomain(data *entity.Profile) *model.ProfileModel {
	if data == nil {
		return nil
	}

	profileM := &model.ProfileModel{
		UserID:             data.UserID,
		Role:               data.Role.String(),
		IsVerified:         data.IsVerified,
		CompletedOrders:    data.CompletedOrders,
		SubscriptionStatus: data.SubscriptionStatus.String(),
		SubscriptionExpiry: data.SubscriptionExpiry,
		IsBanned:           data.IsBanned,
		CreatedAt:          data.CreatedAt,
		UpdatedAt:          data.UpdatedAt,
	}

	if data.Merchant != nil {
		profileM.BusinessName = nullableString(data.Merchant.BusinessName)
		profileM.BusinessType = nullableString(data.Merchant.BusinessType)
	}
	if data.Marketer != nil {
		profileM.PaymentMethod = nullableString(data.Marketer.PaymentMethod)
		profileM.PaymentDetails = nullableString(data.Marketer.PaymentDetails)
	}

	return profileM
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}

func derefString(p *string) string {
	if p == nil {
		return ""
	}

	return *p
}

// paginate clamps and applies page/perPage as a reusable GORM scope.
func paginate(page, perPage int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page < 1 {
			page = 1
		}
		if perPage < 1 {
			perPage = 20
		}

		return db.Limit(perPage).Offset((page - 1) * perPage)
	}
}
