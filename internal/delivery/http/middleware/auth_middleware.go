package middleware

import (
	"strings"

	"vidtube/internal/domain/entity"
	domainerrors "vidtube/internal/domain/errors"
	"vidtube/internal/domain/repository"
	"vidtube/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Context keys under which the auth guard publishes the caller's identity.
const (
	// ContextKeyUserID holds the authenticated user's uuid.UUID.
	ContextKeyUserID = "userID"
	// ContextKeyCurrentUser holds the authenticated *entity.User, sanitized.
	ContextKeyCurrentUser = "currentUser"

	// AccessTokenCookie is the cookie the access token travels in.
	AccessTokenCookie = "accessToken"
)

// AuthMiddleware validates access tokens and loads the caller's account.
// Every failure mode produces the same unauthorized error, so a probing
// client cannot tell a missing token from an expired or tampered one.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	userRepo repository.UserRepository
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, userRepo: userRepo}
}

// Authenticate is the core middleware function that validates the access token.
// The token is read from the accessToken cookie first, then from the
// Authorization header as a Bearer token.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := m.resolveUser(c)
		if err != nil {
			return errors.WithStack(domainerrors.ErrUnauthorized)
		}

		c.Set(ContextKeyUserID, user.ID)
		c.Set(ContextKeyCurrentUser, user)

		return next(c)
	}
}

// AuthenticateOptional resolves the caller when a valid token is present and
// continues anonymously otherwise. Used on public pages that personalize
// their response for logged-in viewers.
func (m *AuthMiddleware) AuthenticateOptional(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if user, err := m.resolveUser(c); err == nil {
			c.Set(ContextKeyUserID, user.ID)
			c.Set(ContextKeyCurrentUser, user)
		}

		return next(c)
	}
}

func (m *AuthMiddleware) resolveUser(c echo.Context) (*entity.User, error) {
	tokenString := extractToken(c)
	if tokenString == "" {
		return nil, errors.New("missing access token")
	}

	claims, err := m.tokenSvc.ParseAccessToken(tokenString)
	if err != nil {
		return nil, errors.Wrap(err, "failed to verify access token")
	}

	user, err := m.userRepo.FindByID(c.Request().Context(), claims.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load token subject")
	}

	return user.Sanitized(), nil
}

func extractToken(c echo.Context) string {
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := c.Request().Header.Get("Authorization")
	if token := strings.TrimPrefix(authHeader, "Bearer "); token != authHeader {
		return strings.TrimSpace(token)
	}

	return ""
}

// CurrentUserID returns the authenticated user's ID set by Authenticate.
func CurrentUserID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(ContextKeyUserID).(uuid.UUID)

	return id, ok
}

// CurrentUser returns the sanitized authenticated user set by Authenticate.
func CurrentUser(c echo.Context) (*entity.User, bool) {
	user, ok := c.Get(ContextKeyCurrentUser).(*entity.User)

	return user, ok
}
