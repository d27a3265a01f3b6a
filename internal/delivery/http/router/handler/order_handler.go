package handler

import (
	"log/slog"
	"net/http"

	"souqlink/internal/delivery/http/middleware"
	"souqlink/internal/delivery/http/response"
	"souqlink/internal/domain/entity"
	domainerrors "souqlink/internal/domain/errors"
	"souqlink/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// OrderHandler holds dependencies for the order workflow endpoints.
type OrderHandler struct {
	uc     usecase.OrderUsecase
	logger *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler, injected by Fx.
func NewOrderHandler(uc usecase.OrderUsecase, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		uc:     uc,
		logger: logger,
	}
}

// Create places an order for the authenticated marketer.
func (h *OrderHandler) Create(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Error(c, http.StatusUnauthorized, domainerrors.ErrAuthenticationRequired.Message())
	}

	var input usecase.CreateOrderInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c)
	}

	orderID, err := h.uc.CreateOrder(c.Request().Context(), userID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusCreated, map[string]any{
		"order_id": orderID,
		"message":  "تم إنشاء الطلب بنجاح",
	})
}

// ListMarketer returns the marketer's own orders.
func (h *OrderHandler) ListMarketer(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Error(c, http.StatusUnauthorized, domainerrors.ErrAuthenticationRequired.Message())
	}

	orders, err := h.uc.ListMarketerOrders(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, map[string]any{"orders": toOrderViews(orders)})
}

// ListMerchant returns the merchant's received orders.
func (h *OrderHandler) ListMerchant(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Error(c, http.StatusUnauthorized, domainerrors.ErrAuthenticationRequired.Message())
	}

	orders, err := h.uc.ListMerchantOrders(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, map[string]any{"orders": toOrderViews(orders)})
}

// UpdateStatus moves an order along the fulfilment state machine.
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Error(c, http.StatusUnauthorized, domainerrors.ErrAuthenticationRequired.Message())
	}

	orderID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var input struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c)
	}

	if err := h.uc.UpdateStatus(c.Request().Context(), userID, orderID, entity.OrderStatus(input.Status)); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, http.StatusOK, "تم تحديث حالة الطلب")
}

// ConfirmPayment marks a completed order's profit as settled.
func (h *OrderHandler) ConfirmPayment(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Error(c, http.StatusUnauthorized, domainerrors.ErrAuthenticationRequired.Message())
	}

	orderID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.uc.ConfirmPayment(c.Request().Context(), userID, orderID); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, http.StatusOK, "تم تأكيد استلام الربح")
}

// ReportDelay flags a completed order's settlement as delayed.
func (h *OrderHandler) ReportDelay(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Error(c, http.StatusUnauthorized, domainerrors.ErrAuthenticationRequired.Message())
	}

	orderID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.uc.ReportDelay(c.Request().Context(), userID, orderID); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, http.StatusOK, "تم الإبلاغ عن التأخير")
}

// MarketerStats aggregates the marketer's own orders.
func (h *OrderHandler) MarketerStats(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Error(c, http.StatusUnauthorized, domainerrors.ErrAuthenticationRequired.Message())
	}

	stats, err := h.uc.MarketerStats(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, stats)
}

// MerchantStats aggregates the merchant's received orders.
func (h *OrderHandler) MerchantStats(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Error(c, http.StatusUnauthorized, domainerrors.ErrAuthenticationRequired.Message())
	}

	stats, err := h.uc.MerchantStats(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, stats)
}
