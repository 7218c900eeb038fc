package impl

import (
	"context"
	"strings"
	"testing"
	"time"

	"vidtube/internal/domain/entity"
	domainerrors "vidtube/internal/domain/errors"
	"vidtube/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedProfile(f profileServiceFixtures) *entity.User {
	user := &entity.User{
		UserName:     "chai",
		Email:        "chai@example.com",
		FullName:     "Chai Aur Code",
		AvatarURL:    "https://cdn.test/avatar.png",
		PasswordHash: "hashed:Password123!",
		RefreshToken: "refresh-1",
	}
	f.userRepo.seed(user)

	return user
}

func TestProfileService_CurrentUser(t *testing.T) {
	t.Parallel()

	f := createTestProfileService()
	user := seedProfile(f)

	got, err := f.service.CurrentUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.UserName, got.UserName)
	assert.Empty(t, got.PasswordHash)
	assert.Empty(t, got.RefreshToken)
}

func TestProfileService_CurrentUser_NotFound(t *testing.T) {
	t.Parallel()

	f := createTestProfileService()

	_, err := f.service.CurrentUser(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestProfileService_UpdateAccount(t *testing.T) {
	t.Parallel()

	f := createTestProfileService()
	user := seedProfile(f)

	got, err := f.service.UpdateAccount(context.Background(), &usecase.UpdateAccountInput{
		UserID:   user.ID,
		FullName: "New Name",
		Email:    "New@Example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "New Name", got.FullName)
	assert.Equal(t, "new@example.com", got.Email)
	// The handle never changes through an account update.
	assert.Equal(t, "chai", got.UserName)

	stored := f.userRepo.stored(user.ID)
	assert.Equal(t, "new@example.com", stored.Email)
}

func TestProfileService_UpdateAccount_MissingField(t *testing.T) {
	t.Parallel()

	f := createTestProfileService()
	user := seedProfile(f)

	_, err := f.service.UpdateAccount(context.Background(), &usecase.UpdateAccountInput{
		UserID:   user.ID,
		FullName: "New Name",
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestProfileService_UpdateAvatar(t *testing.T) {
	t.Parallel()

	f := createTestProfileService()
	user := seedProfile(f)

	got, err := f.service.UpdateAvatar(context.Background(), user.ID, &usecase.FileUpload{
		Name:    "new-avatar.png",
		Content: strings.NewReader("png-bytes"),
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/new-avatar.png", got.AvatarURL)
	assert.Equal(t, "https://cdn.test/new-avatar.png", f.userRepo.stored(user.ID).AvatarURL)
}

func TestProfileService_UpdateCoverImage(t *testing.T) {
	t.Parallel()

	f := createTestProfileService()
	user := seedProfile(f)

	got, err := f.service.UpdateCoverImage(context.Background(), user.ID, &usecase.FileUpload{
		Name:    "cover.jpg",
		Content: strings.NewReader("jpg-bytes"),
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/cover.jpg", got.CoverImageURL)
	// The avatar is untouched by a cover update.
	assert.Equal(t, "https://cdn.test/avatar.png", got.AvatarURL)
}

func TestProfileService_UpdateImage_MissingFile(t *testing.T) {
	t.Parallel()

	f := createTestProfileService()
	user := seedProfile(f)

	_, err := f.service.UpdateAvatar(context.Background(), user.ID, nil)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestProfileService_UpdateImage_MediaFailure(t *testing.T) {
	t.Parallel()

	f := createTestProfileService()
	user := seedProfile(f)
	f.mediaStorage.failWith = assert.AnError

	_, err := f.service.UpdateAvatar(context.Background(), user.ID, &usecase.FileUpload{
		Name:    "new-avatar.png",
		Content: strings.NewReader("png-bytes"),
	})
	assert.ErrorIs(t, err, domainerrors.ErrDependencyFailure)
	// The stored URL keeps its old value.
	assert.Equal(t, "https://cdn.test/avatar.png", f.userRepo.stored(user.ID).AvatarURL)
}

func TestProfileService_ChannelProfile(t *testing.T) {
	t.Parallel()

	f := createTestProfileService()
	user := seedProfile(f)
	viewer := &entity.User{UserName: "viewer", Email: "viewer@example.com"}
	f.userRepo.seed(viewer)

	f.subscriptionRepo.subscribers[user.ID] = 42
	f.subscriptionRepo.subscriptions[user.ID] = 7
	f.subscriptionRepo.edges[subscriptionEdge(user.ID, viewer.ID)] = true

	profile, err := f.service.ChannelProfile(context.Background(), "Chai", viewer.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, profile.ID)
	assert.Equal(t, int64(42), profile.SubscriberCount)
	assert.Equal(t, int64(7), profile.SubscribedToCount)
	assert.True(t, profile.IsSubscribed)
}

func TestProfileService_ChannelProfile_AnonymousViewer(t *testing.T) {
	t.Parallel()

	f := createTestProfileService()
	user := seedProfile(f)
	f.subscriptionRepo.subscribers[user.ID] = 3

	profile, err := f.service.ChannelProfile(context.Background(), "chai", uuid.Nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), profile.SubscriberCount)
	assert.False(t, profile.IsSubscribed)
}

func TestProfileService_ChannelProfile_NotFound(t *testing.T) {
	t.Parallel()

	f := createTestProfileService()

	_, err := f.service.ChannelProfile(context.Background(), "missing", uuid.Nil)
	assert.ErrorIs(t, err, domainerrors.ErrChannelNotFound)
}

func TestProfileService_ChannelProfile_BlankUserName(t *testing.T) {
	t.Parallel()

	f := createTestProfileService()

	_, err := f.service.ChannelProfile(context.Background(), "  ", uuid.Nil)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestProfileService_WatchHistory(t *testing.T) {
	t.Parallel()

	f := createTestProfileService()
	user := seedProfile(f)

	f.watchHistoryRepo.entries[user.ID] = []*entity.WatchEntry{
		{VideoID: uuid.New(), Title: "newest", WatchedAt: time.Now()},
		{VideoID: uuid.New(), Title: "older", WatchedAt: time.Now().Add(-time.Hour)},
	}

	entries, err := f.service.WatchHistory(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "newest", entries[0].Title)
}

func TestProfileService_WatchHistory_Empty(t *testing.T) {
	t.Parallel()

	f := createTestProfileService()
	user := seedProfile(f)

	entries, err := f.service.WatchHistory(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
