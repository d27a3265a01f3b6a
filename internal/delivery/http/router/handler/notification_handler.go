package handler

import (
	"log/slog"
	"net/http"

	"souqlink/internal/delivery/http/middleware"
	"souqlink/internal/delivery/http/response"
	domainerrors "souqlink/internal/domain/errors"
	"souqlink/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// NotificationHandler holds dependencies for the inbox endpoints.
type NotificationHandler struct {
	uc     usecase.NotificationUsecase
	logger *slog.Logger
}

// NewNotificationHandler is the constructor for NotificationHandler, injected by Fx.
func NewNotificationHandler(uc usecase.NotificationUsecase, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{
		uc:     uc,
		logger: logger,
	}
}

// List returns the caller's notifications plus the unread count.
func (h *NotificationHandler) List(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Error(c, http.StatusUnauthorized, domainerrors.ErrAuthenticationRequired.Message())
	}

	items, err := h.uc.List(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	unread, err := h.uc.UnreadCount(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, map[string]any{
		"notifications": toNotificationViews(items),
		"unread_count":  unread,
	})
}

// UnreadCount returns only the unread counter, polled by the client badge.
func (h *NotificationHandler) UnreadCount(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Error(c, http.StatusUnauthorized, domainerrors.ErrAuthenticationRequired.Message())
	}

	unread, err := h.uc.UnreadCount(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, map[string]any{"unread_count": unread})
}

// MarkRead flags one owned notification as read.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Error(c, http.StatusUnauthorized, domainerrors.ErrAuthenticationRequired.Message())
	}

	notificationID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.uc.MarkRead(c.Request().Context(), userID, notificationID); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, http.StatusOK, "تم تعليم الإشعار كمقروء")
}

// MarkAllRead flags every unread notification of the caller as read.
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Error(c, http.StatusUnauthorized, domainerrors.ErrAuthenticationRequired.Message())
	}

	if err := h.uc.MarkAllRead(c.Request().Context(), userID); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, http.StatusOK, "تم تعليم جميع الإشعارات كمقروءة")
}

// Delete removes one owned notification.
func (h *NotificationHandler) Delete(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Error(c, http.StatusUnauthorized, domainerrors.ErrAuthenticationRequired.Message())
	}

	notificationID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Request().Context(), userID, notificationID); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, http.StatusOK, "تم حذف الإشعار")
}

// ClearAll empties the caller's inbox.
func (h *NotificationHandler) ClearAll(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Error(c, http.StatusUnauthorized, domainerrors.ErrAuthenticationRequired.Message())
	}

	if err := h.uc.ClearAll(c.Request().Context(), userID); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, http.StatusOK, "تم حذف جميع الإشعارات")
}
