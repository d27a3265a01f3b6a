package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"souqlink/config"
	"souqlink/internal/domain/entity"
	domainerrors "souqlink/internal/domain/errors"
	"souqlink/internal/domain/repository"
	"souqlink/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// subscriptionLabels are the localized messages sent when an admin overrides a
// user's subscription status.
var subscriptionLabels = map[entity.SubscriptionStatus]string{
	entity.SubscriptionActive:    "تم تفعيل اشتراكك",
	entity.SubscriptionInactive:  "تم إلغاء تفعيل اشتراكك",
	entity.SubscriptionExpired:   "انتهت صلاحية اشتراكك",
	entity.SubscriptionCancelled: "تم إلغاء اشتراكك",
}

// adminService implements the AdminUsecase interface.
type adminService struct {
	txManager        repository.TransactionManager
	userRepo         repository.UserRepository
	productRepo      repository.ProductRepository
	orderRepo        repository.OrderRepository
	notificationRepo repository.NotificationRepository
	subscriptionDays int
	logger           *slog.Logger
}

// AdminServiceParams holds dependencies for AdminService, injected by Fx.
type AdminServiceParams struct {
	fx.In

	TxManager        repository.TransactionManager
	UserRepo         repository.UserRepository
	ProductRepo      repository.ProductRepository
	OrderRepo        repository.OrderRepository
	NotificationRepo repository.NotificationRepository
	Config           *config.Config
	Logger           *slog.Logger
}

// NewAdminService is the constructor for adminService.
func NewAdminService(params AdminServiceParams) usecase.AdminUsecase {
	return &adminService{
		txManager:        params.TxManager,
		userRepo:         params.UserRepo,
		productRepo:      params.ProductRepo,
		orderRepo:        params.OrderRepo,
		notificationRepo: params.NotificationRepo,
		subscriptionDays: params.Config.Platform.DefaultSubscriptionDays,
		logger:           params.Logger,
	}
}

// Dashboard returns the platform-wide aggregate counters.
func (srv *adminService) Dashboard(ctx context.Context, adminID uuid.UUID) (*usecase.DashboardStats, error) {
	if err := srv.requireAdmin(ctx, adminID); err != nil {
		return nil, err
	}

	stats := &usecase.DashboardStats{}

	var err error
	if stats.TotalUsers, err = srv.userRepo.CountUsers(ctx, nil); err != nil {
		return nil, errors.Wrap(err, "failed to count users")
	}
	if stats.TotalMerchants, err = srv.userRepo.CountByRole(ctx, entity.RoleMerchant); err != nil {
		return nil, errors.Wrap(err, "failed to count merchants")
	}
	if stats.TotalMarketers, err = srv.userRepo.CountByRole(ctx, entity.RoleMarketer); err != nil {
		return nil, errors.Wrap(err, "failed to count marketers")
	}
	if stats.TotalProducts, err = srv.productRepo.CountProducts(ctx, false); err != nil {
		return nil, errors.Wrap(err, "failed to count products")
	}
	if stats.ActiveProducts, err = srv.productRepo.CountProducts(ctx, true); err != nil {
		return nil, errors.Wrap(err, "failed to count active products")
	}
	if stats.TotalOrders, err = srv.orderRepo.CountOrders(ctx, nil); err != nil {
		return nil, errors.Wrap(err, "failed to count orders")
	}
	if stats.OrdersByStatus, err = srv.orderRepo.CountByStatus(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to count orders by status")
	}
	if stats.ActiveSubscriptions, err = srv.userRepo.CountBySubscriptionStatus(ctx, entity.SubscriptionActive); err != nil {
		return nil, errors.Wrap(err, "failed to count active subscriptions")
	}
	if stats.InactiveSubscriptions, err = srv.userRepo.CountBySubscriptionStatus(ctx, entity.SubscriptionInactive); err != nil {
		return nil, errors.Wrap(err, "failed to count inactive subscriptions")
	}

	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)
	if stats.NewUsersLastMonth, err = srv.userRepo.CountUsers(ctx, &thirtyDaysAgo); err != nil {
		return nil, errors.Wrap(err, "failed to count new users")
	}
	if stats.NewOrdersLastMonth, err = srv.orderRepo.CountOrders(ctx, &thirtyDaysAgo); err != nil {
		return nil, errors.Wrap(err, "failed to count new orders")
	}

	return stats, nil
}

// ListUsers returns a page of users with optional role and search filters.
func (srv *adminService) ListUsers(ctx context.Context, adminID uuid.UUID, input usecase.ListUsersInput) ([]*entity.User, *usecase.Pagination, error) {
	if err := srv.requireAdmin(ctx, adminID); err != nil {
		return nil, nil, err
	}

	filter := repository.UserFilter{
		Search:  strings.TrimSpace(input.Search),
		Page:    input.Page,
		PerPage: input.PerPage,
	}
	if role := entity.Role(input.Role); role.IsValid() {
		filter.Role = role
	}

	users, total, err := srv.userRepo.List(ctx, filter)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to list users")
	}

	return users, usecase.NewPagination(input.Page, input.PerPage, total), nil
}

// ListProducts returns a page of products with an optional search filter.
func (srv *adminService) ListProducts(ctx context.Context, adminID uuid.UUID, input usecase.ListProductsInput) ([]*entity.ProductListing, *usecase.Pagination, error) {
	if err := srv.requireAdmin(ctx, adminID); err != nil {
		return nil, nil, err
	}

	listings, total, err := srv.productRepo.List(ctx, repository.ProductFilter{
		Search:  strings.TrimSpace(input.Search),
		Page:    input.Page,
		PerPage: input.PerPage,
	})
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to list products")
	}

	return listings, usecase.NewPagination(input.Page, input.PerPage, total), nil
}

// ListOrders returns a page of orders with an optional status filter.
func (srv *adminService) ListOrders(ctx context.Context, adminID uuid.UUID, input usecase.ListOrdersInput) ([]*entity.OrderDetail, *usecase.Pagination, error) {
	if err := srv.requireAdmin(ctx, adminID); err != nil {
		return nil, nil, err
	}

	filter := repository.OrderFilter{
		Page:    input.Page,
		PerPage: input.PerPage,
	}
	if status := entity.OrderStatus(input.Status); status.IsValid() {
		filter.Status = status
	}

	orders, total, err := srv.orderRepo.List(ctx, filter)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to list orders")
	}

	return orders, usecase.NewPagination(input.Page, input.PerPage, total), nil
}

// BanUser bans a non-admin account and forces its subscription inactive.
func (srv *adminService) BanUser(ctx context.Context, adminID, userID uuid.UUID) error {
	if err := srv.requireAdmin(ctx, adminID); err != nil {
		return err
	}

	target, err := srv.findTarget(ctx, userID)
	if err != nil {
		return err
	}
	if target.Profile.Role == entity.RoleAdmin {
		return domainerrors.ErrCannotBanAdmin
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		if err := userRepo.SetBanned(ctx, userID, true); err != nil {
			return errors.Wrap(err, "failed to ban user")
		}
		if err := userRepo.SetSubscription(ctx, userID, entity.SubscriptionInactive, nil); err != nil {
			return errors.Wrap(err, "failed to deactivate subscription")
		}

		return repoFactory.NewNotificationRepository().Create(ctx, newAdminNotification(
			userID, "تم حظر الحساب", "تم حظر حسابك من قبل الإدارة"))
	})
	if err != nil {
		return err
	}

	srv.logger.InfoContext(ctx, "user banned", slog.String("userID", userID.String()))

	return nil
}

// UnbanUser lifts the ban.
func (srv *adminService) UnbanUser(ctx context.Context, adminID, userID uuid.UUID) error {
	if err := srv.requireAdmin(ctx, adminID); err != nil {
		return err
	}
	if _, err := srv.findTarget(ctx, userID); err != nil {
		return err
	}

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.NewUserRepository().SetBanned(ctx, userID, false); err != nil {
			return errors.Wrap(err, "failed to unban user")
		}

		return repoFactory.NewNotificationRepository().Create(ctx, newAdminNotification(
			userID, "تم إلغاء حظر الحساب", "تم إلغاء حظر حسابك من قبل الإدارة"))
	})
}

// VerifyUser grants the verification badge unconditionally.
func (srv *adminService) VerifyUser(ctx context.Context, adminID, userID uuid.UUID) error {
	if err := srv.requireAdmin(ctx, adminID); err != nil {
		return err
	}
	if _, err := srv.findTarget(ctx, userID); err != nil {
		return err
	}

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.NewUserRepository().SetVerified(ctx, userID); err != nil {
			return errors.Wrap(err, "failed to verify user")
		}

		return repoFactory.NewNotificationRepository().Create(ctx, newAdminNotification(
			userID, "تم توثيق الحساب", "تم توثيق حسابك من قبل الإدارة"))
	})
}

// UpdateSubscription overrides a user's subscription status. Activation stamps
// an expiry and appends a ledger row preserving the billing history.
func (srv *adminService) UpdateSubscription(ctx context.Context, adminID, userID uuid.UUID, status string, expiryDays *int) error {
	if err := srv.requireAdmin(ctx, adminID); err != nil {
		return err
	}

	subscriptionStatus := entity.SubscriptionStatus(status)
	if !subscriptionStatus.IsValid() {
		return domainerrors.ErrInvalidSubscriptionStatus
	}

	target, err := srv.findTarget(ctx, userID)
	if err != nil {
		return err
	}

	var expiry *time.Time
	days := srv.subscriptionDays
	if expiryDays != nil && *expiryDays > 0 {
		days = *expiryDays
	}

	now := time.Now()
	if subscriptionStatus == entity.SubscriptionActive {
		expiresAt := now.AddDate(0, 0, days)
		expiry = &expiresAt
	}

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.NewUserRepository().SetSubscription(ctx, userID, subscriptionStatus, expiry); err != nil {
			return errors.Wrap(err, "failed to update subscription status")
		}

		if subscriptionStatus == entity.SubscriptionActive {
			ledgerRow := &entity.Subscription{
				ID:        uuid.New(),
				UserID:    userID,
				Type:      subscriptionType(target.Profile.Role),
				StartDate: now,
				EndDate:   *expiry,
				Status:    entity.SubscriptionActive,
				CreatedAt: now,
			}
			if err := repoFactory.NewSubscriptionRepository().Create(ctx, ledgerRow); err != nil {
				return errors.Wrap(err, "failed to append subscription record")
			}
		}

		return repoFactory.NewNotificationRepository().Create(ctx, newAdminNotification(
			userID, "تحديث الاشتراك", subscriptionLabels[subscriptionStatus]))
	})
}

// Broadcast fans one notification out to every user in the target audience.
func (srv *adminService) Broadcast(ctx context.Context, adminID uuid.UUID, input usecase.BroadcastInput) (int, error) {
	if err := srv.requireAdmin(ctx, adminID); err != nil {
		return 0, err
	}

	title := strings.TrimSpace(input.Title)
	message := strings.TrimSpace(input.Message)
	if title == "" || message == "" {
		return 0, domainerrors.NewValidationError("العنوان والرسالة مطلوبان")
	}

	var role *entity.Role
	switch input.Target {
	case "all":
	case entity.RoleMerchant.String(), entity.RoleMarketer.String():
		target := entity.Role(input.Target)
		role = &target
	default:
		return 0, domainerrors.ErrInvalidBroadcastTarget
	}

	recipients, err := srv.userRepo.FindAllByRole(ctx, role)
	if err != nil {
		return 0, errors.Wrap(err, "failed to resolve broadcast recipients")
	}

	now := time.Now()
	notifications := make([]*entity.Notification, 0, len(recipients))
	for _, recipient := range recipients {
		notifications = append(notifications, &entity.Notification{
			ID:        uuid.New(),
			UserID:    recipient.ID,
			Title:     title,
			Message:   message,
			Type:      entity.NotificationGeneral,
			CreatedAt: now,
		})
	}

	if err := srv.notificationRepo.CreateBatch(ctx, notifications); err != nil {
		return 0, errors.Wrap(err, "failed to broadcast notifications")
	}

	srv.logger.InfoContext(ctx, "broadcast sent",
		slog.String("target", input.Target),
		slog.Int("recipients", len(notifications)),
	)

	return len(notifications), nil
}

// requireAdmin checks the caller holds the admin role.
func (srv *adminService) requireAdmin(ctx context.Context, adminID uuid.UUID) error {
	admin, err := srv.userRepo.FindByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound
		}

		return errors.Wrap(err, "failed to load admin caller")
	}
	if admin.Profile == nil {
		return domainerrors.ErrProfileNotFound
	}
	if admin.Profile.Role != entity.RoleAdmin {
		return domainerrors.ErrAdminOnly
	}

	return nil
}

// findTarget loads the moderation target, profile included.
func (srv *adminService) findTarget(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	target, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find target user")
	}
	if target.Profile == nil {
		return nil, domainerrors.ErrProfileNotFound
	}

	return target, nil
}

// newAdminNotification builds a GENERAL notification from the administration.
func newAdminNotification(userID uuid.UUID, title, message string) *entity.Notification {
	return &entity.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		Message:   message,
		Type:      entity.NotificationGeneral,
		CreatedAt: time.Now(),
	}
}

// subscriptionType names the ledger row for the role being activated.
func subscriptionType(role entity.Role) string {
	return fmt.Sprintf("%s_monthly", role.String())
}
