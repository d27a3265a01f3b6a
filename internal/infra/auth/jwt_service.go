// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"souqlink/config"
	"souqlink/internal/domain/entity"
	"souqlink/internal/domain/service"
	"souqlink/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// jwtService signs the session token carried by the login cookie.
type jwtService struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.Session.Secret == "" {
		return nil, errors.New("session secret must be provided")
	}

	return &jwtService{
		secret: []byte(cfg.Session.Secret),
		ttl:    cfg.Session.TTL,
	}, nil
}

// Generate creates a signed session token for the given identity.
func (s *jwtService) Generate(userID uuid.UUID, role entity.Role) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  userID.String(),
		"role": role.String(),
		"iat":  now.Unix(),
		"exp":  now.Add(s.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign session token")
	}

	return signed, nil
}

// Validate parses and verifies a session token string.
func (s *jwtService) Validate(tokenString string) (*service.SessionClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse session token")
	}
	if !token.Valid {
		return nil, errors.New("invalid session token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("unexpected session claims type")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, errors.New("session token missing subject")
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, errors.Wrap(err, "invalid user id in session token")
	}

	roleStr, _ := claims["role"].(string)
	role := entity.Role(roleStr)
	if !role.IsValid() {
		return nil, errors.New("invalid role in session token")
	}

	return &service.SessionClaims{UserID: userID, Role: role}, nil
}

// TTL returns the configured session lifetime.
func (s *jwtService) TTL() time.Duration {
	return s.ttl
}
