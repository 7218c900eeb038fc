// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"vidtube/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for user persistence.
var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrRefreshTokenMismatch is returned by RotateRefreshToken when the stored
	// token no longer matches the expected previous value, meaning the token
	// was already rotated or cleared by a concurrent operation.
	ErrRefreshTokenMismatch = errors.New("stored refresh token does not match expected value")
)

// UserRepository defines the standard operations for user persistence.
// The application layer depends on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByUserName retrieves a single user by their unique handle (lowercased).
	FindByUserName(ctx context.Context, userName string) (*entity.User, error)

	// FindByUserNameOrEmail retrieves a user matching either identifier.
	// Both arguments are matched case-insensitively; empty strings never match.
	FindByUserNameOrEmail(ctx context.Context, userName, email string) (*entity.User, error)

	// Create persists a new user entity to the storage.
	Create(ctx context.Context, user *entity.User) error

	// Update modifies an existing user entity in the storage.
	Update(ctx context.Context, user *entity.User) error

	// RotateRefreshToken replaces the stored refresh token only when the
	// currently stored value still equals previous. Passing an empty previous
	// skips the guard (used by login, which overwrites unconditionally).
	// Returns ErrRefreshTokenMismatch when the guard fails.
	RotateRefreshToken(ctx context.Context, userID uuid.UUID, previous, next string) error

	// ClearRefreshToken unconditionally removes the stored refresh token,
	// ending the session. Clearing an absent token is not an error.
	ClearRefreshToken(ctx context.Context, userID uuid.UUID) error

	// UpdatePasswordHash replaces the stored password hash.
	UpdatePasswordHash(ctx context.Context, userID uuid.UUID, passwordHash string) error
}
