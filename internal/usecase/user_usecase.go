// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"io"

	"vidtube/internal/domain/entity"

	"github.com/google/uuid"
)

// FileUpload carries an uploaded file from the delivery layer into a use case.
// The content is streamed to media storage, never buffered into the entity.
type FileUpload struct {
	Name    string
	Content io.Reader
}

// --- Input DTOs ---

// RegisterInput defines the data required to register a new user.
// The avatar is mandatory; the cover image is optional.
type RegisterInput struct {
	UserName   string
	Email      string
	FullName   string
	Password   string
	Avatar     *FileUpload
	CoverImage *FileUpload
}

// LoginInput defines the data required for a user to log in.
// Either UserName or Email identifies the account.
type LoginInput struct {
	UserName string
	Email    string
	Password string
}

// ChangePasswordInput defines the data required to change a password.
type ChangePasswordInput struct {
	UserID      uuid.UUID
	OldPassword string
	NewPassword string
}

// --- Output DTOs ---

// RegisterOutput returns the newly created user's public information.
type RegisterOutput struct {
	User *entity.User
}

// LoginOutput returns the generated tokens after a successful login.
type LoginOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

// RefreshOutput returns the freshly rotated token pair.
type RefreshOutput struct {
	AccessToken  string
	RefreshToken string
}

// UserUsecase defines the interface for account lifecycle operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	// Register creates a new account with its avatar and optional cover image.
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)

	// Login verifies credentials and opens a session, storing the refresh token.
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// RefreshSession exchanges a valid refresh token for a new token pair,
	// rotating the stored token so the presented one cannot be replayed.
	RefreshSession(ctx context.Context, refreshToken string) (*RefreshOutput, error)

	// Logout clears the stored refresh token, ending the session.
	Logout(ctx context.Context, userID uuid.UUID) error

	// ChangePassword verifies the old password and stores a hash of the new one.
	// The current session stays valid.
	ChangePassword(ctx context.Context, input *ChangePasswordInput) error
}
