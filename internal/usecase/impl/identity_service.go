// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"souqlink/internal/domain/entity"
	domainerrors "souqlink/internal/domain/errors"
	"souqlink/internal/domain/repository"
	"souqlink/internal/domain/service"
	"souqlink/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	// Iraqi mobile numbers: 07 followed by an operator digit 3-9 and 8 digits.
	phoneRegex = regexp.MustCompile(`^07[3-9]\d{8}$`)
)

// identityService implements the IdentityUsecase interface.
type identityService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	tokenService service.TokenService
	logger       *slog.Logger
}

// IdentityServiceParams holds dependencies for IdentityService, injected by Fx.
type IdentityServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewIdentityService is the constructor for identityService.
func NewIdentityService(params IdentityServiceParams) usecase.IdentityUsecase {
	return &identityService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// Register creates a User plus its role Profile and opens a session.
func (srv *identityService) Register(ctx context.Context, input usecase.RegisterInput) (*entity.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	name := strings.TrimSpace(input.Name)
	phone := strings.TrimSpace(input.Phone)
	role := entity.Role(strings.TrimSpace(input.Role))

	if !emailRegex.MatchString(email) {
		return nil, "", domainerrors.NewValidationError("البريد الإلكتروني غير صحيح")
	}
	if len([]rune(name)) < 2 {
		return nil, "", domainerrors.NewValidationError("الاسم يجب أن يكون أكثر من حرفين")
	}
	if !role.IsValid() {
		return nil, "", domainerrors.NewValidationError("نوع المستخدم غير صحيح")
	}
	if phone != "" && !phoneRegex.MatchString(phone) {
		return nil, "", domainerrors.NewValidationError("رقم الهاتف غير صحيح")
	}

	user := buildNewUser(email, name, phone, role, input)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		if _, err := userRepo.FindByEmail(ctx, email); err == nil {
			return domainerrors.ErrEmailAlreadyRegistered
		} else if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to check email availability")
		}

		return userRepo.Create(ctx, user)
	})
	if err != nil {
		return nil, "", err
	}

	token, err := srv.tokenService.Generate(user.ID, role)
	if err != nil {
		return nil, "", errors.Wrap(err, "failed to generate session token")
	}

	srv.logger.InfoContext(ctx, "user registered",
		slog.String("userID", user.ID.String()),
		slog.String("role", role.String()),
	)

	return user, token, nil
}

// buildNewUser assembles the User entity with the profile matching the role.
// Admin accounts start verified with an active subscription; everyone else
// starts unverified and must be activated by an admin.
func buildNewUser(email, name, phone string, role entity.Role, input usecase.RegisterInput) *entity.User {
	userID := uuid.New()

	subscription := entity.SubscriptionInactive
	if role == entity.RoleAdmin {
		subscription = entity.SubscriptionActive
	}

	profile := &entity.Profile{
		UserID:             userID,
		Role:               role,
		IsVerified:         role == entity.RoleAdmin,
		SubscriptionStatus: subscription,
	}

	switch role {
	case entity.RoleMerchant:
		profile.Merchant = &entity.MerchantInfo{
			BusinessName: strings.TrimSpace(input.BusinessName),
			BusinessType: strings.TrimSpace(input.BusinessType),
		}
	case entity.RoleMarketer:
		profile.Marketer = &entity.MarketerInfo{
			PaymentMethod:  strings.TrimSpace(input.PaymentMethod),
			PaymentDetails: strings.TrimSpace(input.PaymentDetails),
		}
	}

	now := time.Now()

	return &entity.User{
		ID:        userID,
		Email:     email,
		Name:      name,
		Phone:     phone,
		Profile:   profile,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Login authenticates by email and opens a session.
func (srv *identityService) Login(ctx context.Context, email string) (*entity.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, "", domainerrors.NewValidationError("البريد الإلكتروني مطلوب")
	}

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, "", domainerrors.ErrUserNotFound
		}

		return nil, "", errors.Wrap(err, "failed to find user by email")
	}

	if user.Profile == nil {
		return nil, "", domainerrors.ErrProfileNotFound
	}
	if user.Profile.IsBanned {
		return nil, "", domainerrors.ErrAccountBanned
	}

	token, err := srv.tokenService.Generate(user.ID, user.Profile.Role)
	if err != nil {
		return nil, "", errors.Wrap(err, "failed to generate session token")
	}

	srv.logger.InfoContext(ctx, "user logged in", slog.String("userID", user.ID.String()))

	return user, token, nil
}

// GetCurrent returns the authenticated user's own record.
func (srv *identityService) GetCurrent(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find current user")
	}

	if user.Profile == nil {
		return nil, domainerrors.ErrProfileNotFound
	}

	return user, nil
}

// UpdateProfile applies a partial update to the caller's own record.
func (srv *identityService) UpdateProfile(ctx context.Context, userID uuid.UUID, input usecase.UpdateProfileInput) error {
	user, err := srv.GetCurrent(ctx, userID)
	if err != nil {
		return err
	}

	if input.Name != nil {
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.Phone != nil {
		phone := strings.TrimSpace(*input.Phone)
		if phone != "" && !phoneRegex.MatchString(phone) {
			return domainerrors.NewValidationError("رقم الهاتف غير صحيح")
		}
		user.Phone = phone
	}

	// Role-specific fields are only writable by the matching role.
	switch user.Profile.Role {
	case entity.RoleMerchant:
		if user.Profile.Merchant == nil {
			user.Profile.Merchant = &entity.MerchantInfo{}
		}
		if input.BusinessName != nil {
			user.Profile.Merchant.BusinessName = strings.TrimSpace(*input.BusinessName)
		}
		if input.BusinessType != nil {
			user.Profile.Merchant.BusinessType = strings.TrimSpace(*input.BusinessType)
		}
	case entity.RoleMarketer:
		if user.Profile.Marketer == nil {
			user.Profile.Marketer = &entity.MarketerInfo{}
		}
		if input.PaymentMethod != nil {
			user.Profile.Marketer.PaymentMethod = strings.TrimSpace(*input.PaymentMethod)
		}
		if input.PaymentDetails != nil {
			user.Profile.Marketer.PaymentDetails = strings.TrimSpace(*input.PaymentDetails)
		}
	}

	if err := srv.userRepo.Update(ctx, user); err != nil {
		return errors.Wrap(err, "failed to update profile")
	}

	return nil
}
