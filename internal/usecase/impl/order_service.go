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

// statusLabels are the localized names used in order-update notifications.
var statusLabels = map[entity.OrderStatus]string{
	entity.OrderInProgress: "قيد التنفيذ",
	entity.OrderCompleted:  "تم التوصيل",
	entity.OrderRejected:   "مرفوض",
	entity.OrderNotSerious: "غير جدي",
}

// orderService implements the OrderUsecase interface.
type orderService struct {
	txManager               repository.TransactionManager
	userRepo                repository.UserRepository
	productRepo             repository.ProductRepository
	orderRepo               repository.OrderRepository
	paymentDueDays          int
	marketerVerifyThreshold int
	merchantVerifyThreshold int
	logger                  *slog.Logger
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	UserRepo    repository.UserRepository
	ProductRepo repository.ProductRepository
	OrderRepo   repository.OrderRepository
	Config      *config.Config
	Logger      *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		txManager:               params.TxManager,
		userRepo:                params.UserRepo,
		productRepo:             params.ProductRepo,
		orderRepo:               params.OrderRepo,
		paymentDueDays:          params.Config.Platform.PaymentDueDays,
		marketerVerifyThreshold: params.Config.Platform.MarketerVerifyThreshold,
		merchantVerifyThreshold: params.Config.Platform.MerchantVerifyThreshold,
		logger:                  params.Logger,
	}
}

// CreateOrder places an order on an active product. The order and the
// merchant's NEW_ORDER notification land in one transaction.
func (srv *orderService) CreateOrder(ctx context.Context, marketerID uuid.UUID, input usecase.CreateOrderInput) (uuid.UUID, error) {
	caller, err := srv.requireRole(ctx, marketerID, entity.RoleMarketer, domainerrors.ErrMarketerOnly)
	if err != nil {
		return uuid.Nil, err
	}
	if !caller.Profile.HasActiveSubscription() {
		return uuid.Nil, domainerrors.ErrSubscriptionRequired
	}

	customerName := strings.TrimSpace(input.CustomerName)
	customerPhone := strings.TrimSpace(input.CustomerPhone)
	if input.ProductID == uuid.Nil || customerName == "" || customerPhone == "" {
		return uuid.Nil, domainerrors.NewValidationError("بيانات الطلب غير مكتملة")
	}
	if input.Quantity <= 0 {
		return uuid.Nil, domainerrors.NewValidationError("الكمية يجب أن تكون أكبر من صفر")
	}
	if input.SalePrice <= 0 {
		return uuid.Nil, domainerrors.NewValidationError("سعر البيع يجب أن يكون أكبر من صفر")
	}

	product, err := srv.productRepo.FindByID(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return uuid.Nil, domainerrors.ErrProductNotFound
		}

		return uuid.Nil, errors.Wrap(err, "failed to find product for order")
	}
	if !product.IsActive {
		return uuid.Nil, domainerrors.ErrProductInactive
	}

	profit := entity.ComputeMarketerProfit(input.Quantity, input.SalePrice, product.BasePrice)
	minProfit := product.MinMarketerProfit * float64(input.Quantity)
	if profit < minProfit {
		return uuid.Nil, domainerrors.NewValidationError(
			fmt.Sprintf("الربح يجب أن لا يقل عن %g دينار", minProfit))
	}

	now := time.Now()
	order := &entity.Order{
		ID:        uuid.New(),
		ProductID: product.ID,
		// The merchant is captured here once and never re-derived.
		MerchantID:     product.MerchantID,
		MarketerID:     marketerID,
		CustomerName:   customerName,
		CustomerPhone:  customerPhone,
		SalePrice:      input.SalePrice,
		Quantity:       input.Quantity,
		MarketerProfit: profit,
		Status:         entity.OrderPending,
		PaymentStatus:  entity.PaymentPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.NewOrderRepository().Create(ctx, order); err != nil {
			return errors.Wrap(err, "failed to create order")
		}

		notification := &entity.Notification{
			ID:             uuid.New(),
			UserID:         product.MerchantID,
			Title:          "طلب جديد",
			Message:        fmt.Sprintf("لديك طلب جديد على منتج: %s", product.Name),
			Type:           entity.NotificationNewOrder,
			RelatedOrderID: &order.ID,
			CreatedAt:      now,
		}

		return repoFactory.NewNotificationRepository().Create(ctx, notification)
	})
	if err != nil {
		return uuid.Nil, err
	}

	srv.logger.InfoContext(ctx, "order created",
		slog.String("orderID", order.ID.String()),
		slog.String("productID", product.ID.String()),
		slog.Float64("marketerProfit", profit),
	)

	return order.ID, nil
}

// ListMarketerOrders returns the marketer's own orders.
func (srv *orderService) ListMarketerOrders(ctx context.Context, marketerID uuid.UUID) ([]*entity.OrderDetail, error) {
	orders, err := srv.orderRepo.FindByMarketer(ctx, marketerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list marketer orders")
	}

	return orders, nil
}

// ListMerchantOrders returns the merchant's received orders.
func (srv *orderService) ListMerchantOrders(ctx context.Context, merchantID uuid.UUID) ([]*entity.OrderDetail, error) {
	orders, err := srv.orderRepo.FindByMerchant(ctx, merchantID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list merchant orders")
	}

	return orders, nil
}

// UpdateStatus moves an order along the fulfilment state machine.
func (srv *orderService) UpdateStatus(ctx context.Context, merchantID, orderID uuid.UUID, newStatus entity.OrderStatus) error {
	if !newStatus.IsValid() || newStatus == entity.OrderPending {
		return domainerrors.ErrInvalidOrderStatus
	}

	order, err := srv.findOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if order.MerchantID != merchantID {
		return domainerrors.ErrNotOwner
	}
	if !order.Status.CanTransitionTo(newStatus) {
		return domainerrors.ErrIllegalTransition
	}

	now := time.Now()
	order.Status = newStatus
	order.UpdatedAt = now
	if newStatus == entity.OrderCompleted {
		due := now.AddDate(0, 0, srv.paymentDueDays)
		order.DeliveryDate = &now
		order.PaymentDueDate = &due
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.NewOrderRepository().Update(ctx, order); err != nil {
			return errors.Wrap(err, "failed to update order status")
		}

		notification := &entity.Notification{
			ID:             uuid.New(),
			UserID:         order.MarketerID,
			Title:          "تحديث حالة الطلب",
			Message:        fmt.Sprintf("تم تحديث حالة طلبك إلى: %s", statusLabels[newStatus]),
			Type:           entity.NotificationOrderUpdate,
			RelatedOrderID: &order.ID,
			CreatedAt:      now,
		}

		return repoFactory.NewNotificationRepository().Create(ctx, notification)
	})
	if err != nil {
		return err
	}

	srv.logger.InfoContext(ctx, "order status updated",
		slog.String("orderID", orderID.String()),
		slog.String("status", newStatus.String()),
	)

	return nil
}

// ConfirmPayment settles a COMPLETED order's profit. The payment flag and both
// counter increments land in one transaction; the increments are atomic at the
// storage layer so concurrent settlements cannot lose counts.
func (srv *orderService) ConfirmPayment(ctx context.Context, marketerID, orderID uuid.UUID) error {
	order, err := srv.findOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if order.MarketerID != marketerID {
		return domainerrors.ErrNotOwner
	}
	if order.Status != entity.OrderCompleted {
		return domainerrors.ErrOrderNotCompleted
	}

	order.PaymentStatus = entity.PaymentPaid
	order.UpdatedAt = time.Now()

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.NewOrderRepository().Update(ctx, order); err != nil {
			return errors.Wrap(err, "failed to mark order paid")
		}

		userRepo := repoFactory.NewUserRepository()
		if err := userRepo.IncrementCompletedOrders(ctx, order.MarketerID, srv.marketerVerifyThreshold); err != nil {
			return errors.Wrap(err, "failed to bump marketer completed orders")
		}
		if err := userRepo.IncrementCompletedOrders(ctx, order.MerchantID, srv.merchantVerifyThreshold); err != nil {
			return errors.Wrap(err, "failed to bump merchant completed orders")
		}

		return nil
	})
}

// ReportDelay flags a COMPLETED order's settlement as delayed.
func (srv *orderService) ReportDelay(ctx context.Context, marketerID, orderID uuid.UUID) error {
	order, err := srv.findOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if order.MarketerID != marketerID {
		return domainerrors.ErrNotOwner
	}
	if order.Status != entity.OrderCompleted {
		return domainerrors.ErrOrderNotCompleted
	}

	now := time.Now()
	order.PaymentStatus = entity.PaymentDelayed
	order.UpdatedAt = now

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.NewOrderRepository().Update(ctx, order); err != nil {
			return errors.Wrap(err, "failed to mark order delayed")
		}

		notification := &entity.Notification{
			ID:             uuid.New(),
			UserID:         order.MerchantID,
			Title:          "تأخير في الدفع",
			Message:        "تم الإبلاغ عن تأخير في دفع ربح المسوق",
			Type:           entity.NotificationPayment,
			RelatedOrderID: &order.ID,
			CreatedAt:      now,
		}

		return repoFactory.NewNotificationRepository().Create(ctx, notification)
	})
}

// MarketerStats aggregates the marketer's own orders.
func (srv *orderService) MarketerStats(ctx context.Context, marketerID uuid.UUID) (*entity.MarketerStats, error) {
	orders, err := srv.orderRepo.FindByMarketer(ctx, marketerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load marketer orders for stats")
	}

	stats := &entity.MarketerStats{TotalOrders: len(orders)}
	for _, order := range orders {
		if order.Status == entity.OrderCompleted {
			stats.CompletedOrders++
			if order.PaymentStatus == entity.PaymentPending {
				stats.PendingProfit += order.MarketerProfit
			}
		}
		if order.PaymentStatus == entity.PaymentPaid {
			stats.TotalProfit += order.MarketerProfit
		}
	}
	if stats.TotalOrders > 0 {
		stats.SuccessRate = float64(stats.CompletedOrders) / float64(stats.TotalOrders) * 100
	}

	return stats, nil
}

// MerchantStats aggregates the merchant's received orders, including the
// outstanding amount owed to each marketer.
func (srv *orderService) MerchantStats(ctx context.Context, merchantID uuid.UUID) (*entity.MerchantStats, error) {
	orders, err := srv.orderRepo.FindByMerchant(ctx, merchantID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load merchant orders for stats")
	}

	stats := &entity.MerchantStats{
		TotalOrders:   len(orders),
		MarketerDebts: map[uuid.UUID]float64{},
	}
	for _, order := range orders {
		if order.Status != entity.OrderCompleted {
			continue
		}
		stats.CompletedOrders++
		if order.PaymentStatus == entity.PaymentPending {
			stats.TotalOwedToMarketers += order.MarketerProfit
			stats.MarketerDebts[order.MarketerID] += order.MarketerProfit
		}
	}
	if stats.TotalOrders > 0 {
		stats.SuccessRate = float64(stats.CompletedOrders) / float64(stats.TotalOrders) * 100
	}

	return stats, nil
}

// findOrder loads an order and maps missing rows to the domain error.
func (srv *orderService) findOrder(ctx context.Context, orderID uuid.UUID) (*entity.Order, error) {
	order, err := srv.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order")
	}

	return order, nil
}

// requireRole loads the user and checks the profile carries the wanted role.
func (srv *orderService) requireRole(ctx context.Context, userID uuid.UUID, role entity.Role, roleErr error) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to load caller")
	}
	if user.Profile == nil {
		return nil, domainerrors.ErrProfileNotFound
	}
	if user.Profile.Role != role {
		return nil, roleErr
	}

	return user, nil
}
