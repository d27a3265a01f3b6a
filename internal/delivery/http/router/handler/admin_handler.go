package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"souqlink/internal/delivery/http/middleware"
	"souqlink/internal/delivery/http/response"
	domainerrors "souqlink/internal/domain/errors"
	"souqlink/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AdminHandler holds dependencies for the moderation endpoints.
type AdminHandler struct {
	uc     usecase.AdminUsecase
	logger *slog.Logger
}

// NewAdminHandler is the constructor for AdminHandler, injected by Fx.
func NewAdminHandler(uc usecase.AdminUsecase, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		uc:     uc,
		logger: logger,
	}
}

// Dashboard returns the platform-wide aggregate counters.
func (h *AdminHandler) Dashboard(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Error(c, http.StatusUnauthorized, domainerrors.ErrAuthenticationRequired.Message())
	}

	stats, err := h.uc.Dashboard(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, stats)
}

// ListUsers returns a page of users with optional role and search filters.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Error(c, http.StatusUnauthorized, domainerrors.ErrAuthenticationRequired.Message())
	}

	users, page, err := h.uc.ListUsers(c.Request().Context(), userID, usecase.ListUsersInput{
		Role:    c.QueryParam("user_type"),
		Search:  c.QueryParam("search"),
		Page:    queryInt(c, "page", 1),
		PerPage: queryInt(c, "per_page", 20),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, map[string]any{
		"users":      toUserViews(users),
		"pagination": page,
	})
}

// ListProducts returns a page of products with an optional search filter.
func (h *AdminHandler) ListProducts(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Error(c, http.StatusUnauthorized, domainerrors.ErrAuthenticationRequired.Message())
	}

	listings, page, err := h.uc.ListProducts(c.Request().Context(), userID, usecase.ListProductsInput{
		Search:  c.QueryParam("search"),
		Page:    queryInt(c, "page", 1),
		PerPage: queryInt(c, "per_page", 20),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, map[string]any{
		"products":   toListingViews(listings),
		"pagination": page,
	})
}

// ListOrders returns a page of orders with an optional status filter.
func (h *AdminHandler) ListOrders(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Error(c, http.StatusUnauthorized, domainerrors.ErrAuthenticationRequired.Message())
	}

	orders, page, err := h.uc.ListOrders(c.Request().Context(), userID, usecase.ListOrdersInput{
		Status:  c.QueryParam("status"),
		Page:    queryInt(c, "page", 1),
		PerPage: queryInt(c, "per_page", 20),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, map[string]any{
		"orders":     toOrderViews(orders),
		"pagination": page,
	})
}

// Ban bans a non-admin account.
func (h *AdminHandler) Ban(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Error(c, http.StatusUnauthorized, domainerrors.ErrAuthenticationRequired.Message())
	}

	targetID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.uc.BanUser(c.Request().Context(), userID, targetID); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, http.StatusOK, "تم حظر المستخدم")
}

// Unban lifts a ban.
func (h *AdminHandler) Unban(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Error(c, http.StatusUnauthorized, domainerrors.ErrAuthenticationRequired.Message())
	}

	targetID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.uc.UnbanUser(c.Request().Context(), userID, targetID); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, http.StatusOK, "تم إلغاء حظر المستخدم")
}

// Verify grants the verification badge.
func (h *AdminHandler) Verify(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Error(c, http.StatusUnauthorized, domainerrors.ErrAuthenticationRequired.Message())
	}

	targetID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.uc.VerifyUser(c.Request().Context(), userID, targetID); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, http.StatusOK, "تم توثيق المستخدم")
}

// UpdateSubscription overrides a user's subscription status.
func (h *AdminHandler) UpdateSubscription(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Error(c, http.StatusUnauthorized, domainerrors.ErrAuthenticationRequired.Message())
	}

	targetID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var input struct {
		Status string `json:"status"`
		Days   *int   `json:"days"`
	}
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c)
	}

	if err := h.uc.UpdateSubscription(c.Request().Context(), userID, targetID, input.Status, input.Days); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, http.StatusOK, "تم تحديث الاشتراك")
}

// Broadcast fans one notification out to an audience.
func (h *AdminHandler) Broadcast(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Error(c, http.StatusUnauthorized, domainerrors.ErrAuthenticationRequired.Message())
	}

	var input usecase.BroadcastInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c)
	}

	count, err := h.uc.Broadcast(c.Request().Context(), userID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, map[string]any{
		"message": "تم إرسال الإشعار",
		"count":   count,
	})
}

// queryInt parses an integer query parameter with a fallback.
func queryInt(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return fallback
	}

	return value
}
