// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"souqlink/config"
	"souqlink/internal/delivery/http/middleware"
	"souqlink/internal/delivery/http/response"
	domainerrors "souqlink/internal/domain/errors"
	"souqlink/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for the account endpoints.
type AuthHandler struct {
	uc     usecase.IdentityUsecase
	cfg    *config.Config
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.IdentityUsecase, cfg *config.Config, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		uc:     uc,
		cfg:    cfg,
		logger: logger,
	}
}

// Register handles the account registration request and opens a session.
func (h *AuthHandler) Register(c echo.Context) error {
	var input usecase.RegisterInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c)
	}

	user, token, err := h.uc.Register(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	h.setSessionCookie(c, token)

	return response.JSON(c, http.StatusCreated, map[string]any{"user": toUserView(user)})
}

// Login handles the login request and opens a session.
func (h *AuthHandler) Login(c echo.Context) error {
	var input struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c)
	}

	user, token, err := h.uc.Login(c.Request().Context(), input.Email)
	if err != nil {
		return errors.WithStack(err)
	}

	h.setSessionCookie(c, token)

	return response.JSON(c, http.StatusOK, map[string]any{"user": toUserView(user)})
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.clearSessionCookie(c)

	return response.Message(c, http.StatusOK, "تم تسجيل الخروج")
}

// Me returns the authenticated caller's own record.
func (h *AuthHandler) Me(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Error(c, http.StatusUnauthorized, domainerrors.ErrAuthenticationRequired.Message())
	}

	user, err := h.uc.GetCurrent(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, map[string]any{"user": toUserView(user)})
}

// UpdateProfile applies a partial update to the caller's own record.
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Error(c, http.StatusUnauthorized, domainerrors.ErrAuthenticationRequired.Message())
	}

	var input usecase.UpdateProfileInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c)
	}

	if err := h.uc.UpdateProfile(c.Request().Context(), userID, input); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, http.StatusOK, "تم تحديث الملف الشخصي")
}

func (h *AuthHandler) setSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     h.cfg.Session.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cfg.Session.TTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.Session.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     h.cfg.Session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.Session.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
