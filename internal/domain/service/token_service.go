package service

import (
	"errors"
	"time"

	"vidtube/internal/domain/entity"

	"github.com/google/uuid"
)

// Token verification failure modes. Callers normalize both to an
// unauthorized response; the split exists so tests and logs can tell
// an expired token from a tampered one.
var (
	// ErrTokenExpired is returned when a token's signature is valid but its expiry has passed.
	ErrTokenExpired = errors.New("token has expired")
	// ErrTokenInvalid is returned when a token is malformed or its signature does not verify.
	ErrTokenInvalid = errors.New("token is invalid")
)

// AccessClaims are the verified contents of an access token. Profile fields
// are denormalized into the token so identity checks need no store lookup.
type AccessClaims struct {
	UserID    uuid.UUID
	Email     string
	UserName  string
	FullName  string
	ExpiresAt time.Time
}

// RefreshClaims are the verified contents of a refresh token, which carries
// only the subject.
type RefreshClaims struct {
	UserID    uuid.UUID
	ExpiresAt time.Time
}

// TokenService issues and verifies the two signed token kinds. Access and
// refresh tokens use distinct secrets and lifetimes so a leaked access token
// cannot mint new credentials.
type TokenService interface {
	// IssueAccessToken signs a short-lived token embedding the user's id,
	// email, userName and fullName.
	IssueAccessToken(user *entity.User) (string, error)

	// IssueRefreshToken signs a long-lived token embedding only the user's id.
	IssueRefreshToken(user *entity.User) (string, error)

	// ParseAccessToken verifies a token against the access secret.
	// Returns ErrTokenExpired or ErrTokenInvalid on failure.
	ParseAccessToken(token string) (*AccessClaims, error)

	// ParseRefreshToken verifies a token against the refresh secret.
	// Returns ErrTokenExpired or ErrTokenInvalid on failure.
	ParseRefreshToken(token string) (*RefreshClaims, error)
}
