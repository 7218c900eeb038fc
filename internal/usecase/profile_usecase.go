package usecase

import (
	"context"

	"vidtube/internal/domain/entity"

	"github.com/google/uuid"
)

// UpdateAccountInput defines the editable account fields. Both are required;
// UserName is deliberately immutable after registration.
type UpdateAccountInput struct {
	UserID   uuid.UUID
	FullName string
	Email    string
}

// ProfileUsecase defines the interface for profile and channel read/update operations.
type ProfileUsecase interface {
	// CurrentUser returns the authenticated user's public profile.
	CurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error)

	// UpdateAccount changes the full name and email of the account.
	UpdateAccount(ctx context.Context, input *UpdateAccountInput) (*entity.User, error)

	// UpdateAvatar stores a new avatar image and updates the profile URL.
	UpdateAvatar(ctx context.Context, userID uuid.UUID, file *FileUpload) (*entity.User, error)

	// UpdateCoverImage stores a new cover image and updates the profile URL.
	UpdateCoverImage(ctx context.Context, userID uuid.UUID, file *FileUpload) (*entity.User, error)

	// ChannelProfile returns the public channel page for a username, with
	// subscriber aggregates. viewerID is uuid.Nil for anonymous viewers and
	// only affects the IsSubscribed flag.
	ChannelProfile(ctx context.Context, userName string, viewerID uuid.UUID) (*entity.ChannelProfile, error)

	// WatchHistory lists the videos the user has watched, most recent first.
	WatchHistory(ctx context.Context, userID uuid.UUID) ([]*entity.WatchEntry, error)
}
