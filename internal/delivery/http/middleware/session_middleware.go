package middleware

import (
	"net/http"

	"souqlink/config"
	"souqlink/internal/delivery/http/response"
	"souqlink/internal/domain/entity"
	domainerrors "souqlink/internal/domain/errors"
	"souqlink/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Context keys set by Authenticate for downstream handlers.
const (
	ContextUserID = "userID"
	ContextRole   = "role"
)

// SessionMiddleware authenticates requests from the session cookie.
type SessionMiddleware struct {
	tokenSvc service.TokenService
	cfg      *config.Config
}

// NewSessionMiddleware is the constructor for SessionMiddleware.
func NewSessionMiddleware(tokenSvc service.TokenService, cfg *config.Config) *SessionMiddleware {
	return &SessionMiddleware{tokenSvc: tokenSvc, cfg: cfg}
}

// Authenticate validates the session cookie and stores the caller's identity
// on the request context.
func (m *SessionMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(m.cfg.Session.CookieName)
		if err != nil || cookie.Value == "" {
			return response.Error(c, http.StatusUnauthorized, domainerrors.ErrAuthenticationRequired.Message())
		}

		claims, err := m.tokenSvc.Validate(cookie.Value)
		if err != nil {
			return response.Error(c, http.StatusUnauthorized, domainerrors.ErrAuthenticationRequired.Message())
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)

		return next(c)
	}
}

// RequireRole checks the session carries a specific role. It must be used
// AFTER the Authenticate middleware.
func (m *SessionMiddleware) RequireRole(required entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(ContextRole).(entity.Role)
			if !ok || role != required {
				return response.Error(c, http.StatusForbidden, roleGateMessage(required))
			}

			return next(c)
		}
	}
}

// UserID extracts the authenticated caller's ID set by Authenticate.
func UserID(c echo.Context) (uuid.UUID, bool) {
	userID, ok := c.Get(ContextUserID).(uuid.UUID)

	return userID, ok
}

func roleGateMessage(role entity.Role) string {
	switch role {
	case entity.RoleMerchant:
		return domainerrors.ErrMerchantOnly.Message()
	case entity.RoleMarketer:
		return domainerrors.ErrMarketerOnly.Message()
	case entity.RoleAdmin:
		return domainerrors.ErrAdminOnly.Message()
	default:
		return domainerrors.ErrAuthenticationRequired.Message()
	}
}
