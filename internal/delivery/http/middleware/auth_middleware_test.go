package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"vidtube/internal/domain/entity"
	domainerrors "vidtube/internal/domain/errors"
	"vidtube/internal/domain/repository"
	"vidtube/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubTokenService accepts exactly one known token.
type stubTokenService struct {
	validToken string
	userID     uuid.UUID
}

func (s *stubTokenService) IssueAccessToken(*entity.User) (string, error)  { return s.validToken, nil }
func (s *stubTokenService) IssueRefreshToken(*entity.User) (string, error) { return "", nil }

func (s *stubTokenService) ParseAccessToken(token string) (*service.AccessClaims, error) {
	if token != s.validToken {
		return nil, service.ErrTokenInvalid
	}

	return &service.AccessClaims{UserID: s.userID}, nil
}

func (s *stubTokenService) ParseRefreshToken(string) (*service.RefreshClaims, error) {
	return nil, service.ErrTokenInvalid
}

// stubUserRepo serves a single user by ID.
type stubUserRepo struct {
	user *entity.User
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if r.user == nil || r.user.ID != id {
		return nil, repository.ErrUserNotFound
	}
	clone := *r.user

	return &clone, nil
}

func (r *stubUserRepo) FindByUserName(context.Context, string) (*entity.User, error) {
	return nil, repository.ErrUserNotFound
}

func (r *stubUserRepo) FindByUserNameOrEmail(context.Context, string, string) (*entity.User, error) {
	return nil, repository.ErrUserNotFound
}

func (r *stubUserRepo) Create(context.Context, *entity.User) error { return nil }
func (r *stubUserRepo) Update(context.Context, *entity.User) error { return nil }

func (r *stubUserRepo) RotateRefreshToken(context.Context, uuid.UUID, string, string) error {
	return nil
}

func (r *stubUserRepo) ClearRefreshToken(context.Context, uuid.UUID) error { return nil }

func (r *stubUserRepo) UpdatePasswordHash(context.Context, uuid.UUID, string) error { return nil }

func newAuthFixture() (*AuthMiddleware, uuid.UUID) {
	userID := uuid.New()
	tokenSvc := &stubTokenService{validToken: "good-token", userID: userID}
	userRepo := &stubUserRepo{user: &entity.User{
		ID:           userID,
		UserName:     "chai",
		PasswordHash: "secret-hash",
		RefreshToken: "secret-refresh",
	}}

	return NewAuthMiddleware(tokenSvc, userRepo), userID
}

func runMiddleware(t *testing.T, mw echo.MiddlewareFunc, prepare func(*http.Request)) (echo.Context, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if prepare != nil {
		prepare(req)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	return c, handler(c)
}

func TestAuthMiddleware_BearerToken(t *testing.T) {
	t.Parallel()

	m, userID := newAuthFixture()

	c, err := runMiddleware(t, m.Authenticate, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer good-token")
	})
	require.NoError(t, err)

	id, ok := CurrentUserID(c)
	require.True(t, ok)
	assert.Equal(t, userID, id)

	user, ok := CurrentUser(c)
	require.True(t, ok)
	// The context user is sanitized.
	assert.Empty(t, user.PasswordHash)
	assert.Empty(t, user.RefreshToken)
}

func TestAuthMiddleware_CookieToken(t *testing.T) {
	t.Parallel()

	m, userID := newAuthFixture()

	c, err := runMiddleware(t, m.Authenticate, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "good-token"})
	})
	require.NoError(t, err)

	id, ok := CurrentUserID(c)
	require.True(t, ok)
	assert.Equal(t, userID, id)
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	t.Parallel()

	m, _ := newAuthFixture()

	_, err := runMiddleware(t, m.Authenticate, nil)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}

func TestAuthMiddleware_BadToken(t *testing.T) {
	t.Parallel()

	m, _ := newAuthFixture()

	_, err := runMiddleware(t, m.Authenticate, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer tampered")
	})
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}

func TestAuthMiddleware_DeletedSubject(t *testing.T) {
	t.Parallel()

	tokenSvc := &stubTokenService{validToken: "good-token", userID: uuid.New()}
	m := NewAuthMiddleware(tokenSvc, &stubUserRepo{})

	_, err := runMiddleware(t, m.Authenticate, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer good-token")
	})
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}

func TestAuthMiddleware_OptionalAnonymous(t *testing.T) {
	t.Parallel()

	m, _ := newAuthFixture()

	c, err := runMiddleware(t, m.AuthenticateOptional, nil)
	require.NoError(t, err)

	_, ok := CurrentUserID(c)
	assert.False(t, ok)
}

func TestAuthMiddleware_OptionalWithToken(t *testing.T) {
	t.Parallel()

	m, userID := newAuthFixture()

	c, err := runMiddleware(t, m.AuthenticateOptional, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer good-token")
	})
	require.NoError(t, err)

	id, ok := CurrentUserID(c)
	require.True(t, ok)
	assert.Equal(t, userID, id)
}
