package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "vidtube/internal/delivery/context"
	"vidtube/internal/domain/entity"
	domainerrors "vidtube/internal/domain/errors"
	"vidtube/internal/domain/repository"
	"vidtube/internal/domain/service"
	"vidtube/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// profileService implements the ProfileUsecase interface.
type profileService struct {
	txManager        repository.TransactionManager
	userRepo         repository.UserRepository
	subscriptionRepo repository.SubscriptionRepository
	watchHistoryRepo repository.WatchHistoryRepository
	mediaStorage     service.MediaStorage
	logger           *slog.Logger
}

// ProfileServiceParams holds dependencies for profileService, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	TxManager        repository.TransactionManager
	UserRepo         repository.UserRepository
	SubscriptionRepo repository.SubscriptionRepository
	WatchHistoryRepo repository.WatchHistoryRepository
	MediaStorage     service.MediaStorage
	Logger           *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(params ProfileServiceParams) usecase.ProfileUsecase {
	return &profileService{
		txManager:        params.TxManager,
		userRepo:         params.UserRepo,
		subscriptionRepo: params.SubscriptionRepo,
		watchHistoryRepo: params.WatchHistoryRepo,
		mediaStorage:     params.MediaStorage,
		logger:           params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *profileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CurrentUser returns the authenticated user's public profile.
func (srv *profileService) CurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.WithStack(domainerrors.ErrUserNotFound)
		}

		return nil, errors.Wrap(err, "failed to find current user")
	}

	return user.Sanitized(), nil
}

// UpdateAccount changes the full name and email of the account. Both fields
// are required; the username never changes after registration.
func (srv *profileService) UpdateAccount(ctx context.Context, input *usecase.UpdateAccountInput) (*entity.User, error) {
	fullName := strings.TrimSpace(input.FullName)
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if fullName == "" || email == "" {
		return nil, errors.WithStack(domainerrors.ErrValidationFailed)
	}

	user, err := srv.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.WithStack(domainerrors.ErrUserNotFound)
		}

		return nil, errors.Wrap(err, "failed to find user for account update")
	}

	user.FullName = fullName
	user.Email = email

	if err := srv.userRepo.Update(ctx, user); err != nil {
		// The unique index on email surfaces as ErrUserAlreadyExists.
		return nil, errors.Wrap(err, "failed to update account")
	}

	srv.log(ctx).Info("Account updated", slog.Any("userID", user.ID))

	return user.Sanitized(), nil
}

// UpdateAvatar stores a new avatar image and points the profile at it.
func (srv *profileService) UpdateAvatar(ctx context.Context, userID uuid.UUID, file *usecase.FileUpload) (*entity.User, error) {
	return srv.updateImage(ctx, userID, file, func(user *entity.User, url string) {
		user.AvatarURL = url
	})
}

// UpdateCoverImage stores a new cover image and points the profile at it.
func (srv *profileService) UpdateCoverImage(ctx context.Context, userID uuid.UUID, file *usecase.FileUpload) (*entity.User, error) {
	return srv.updateImage(ctx, userID, file, func(user *entity.User, url string) {
		user.CoverImageURL = url
	})
}

func (srv *profileService) updateImage(
	ctx context.Context,
	userID uuid.UUID,
	file *usecase.FileUpload,
	assign func(*entity.User, string),
) (*entity.User, error) {
	if file == nil || file.Content == nil {
		return nil, errors.WithStack(domainerrors.ErrValidationFailed.WrapMessage("image file is required"))
	}

	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.WithStack(domainerrors.ErrUserNotFound)
		}

		return nil, errors.Wrap(err, "failed to find user for image update")
	}

	url, err := srv.mediaStorage.Upload(ctx, file.Name, file.Content)
	if err != nil {
		srv.log(ctx).Error("Failed to upload profile image", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrDependencyFailure, "failed to store profile image")
	}

	assign(user, url)

	if err := srv.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to update profile image")
	}

	srv.log(ctx).Debug("Profile image updated", slog.Any("userID", userID))

	return user.Sanitized(), nil
}

// ChannelProfile builds the public channel page for a username, aggregating
// subscriber counts inside one transaction so the numbers are consistent.
func (srv *profileService) ChannelProfile(ctx context.Context, userName string, viewerID uuid.UUID) (*entity.ChannelProfile, error) {
	userName = strings.ToLower(strings.TrimSpace(userName))
	if userName == "" {
		return nil, errors.WithStack(domainerrors.ErrValidationFailed.WrapMessage("username is required"))
	}

	var profile *entity.ChannelProfile
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		user, err := repoFactory.UserRepo().FindByUserName(ctx, userName)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.WithStack(domainerrors.ErrChannelNotFound)
			}

			return errors.Wrap(err, "failed to find channel user")
		}

		subscriptionRepo := repoFactory.SubscriptionRepo()

		subscriberCount, err := subscriptionRepo.CountSubscribers(ctx, user.ID)
		if err != nil {
			return errors.Wrap(err, "failed to count channel subscribers")
		}

		subscribedToCount, err := subscriptionRepo.CountSubscriptions(ctx, user.ID)
		if err != nil {
			return errors.Wrap(err, "failed to count channel subscriptions")
		}

		isSubscribed := false
		if viewerID != uuid.Nil {
			isSubscribed, err = subscriptionRepo.IsSubscribed(ctx, user.ID, viewerID)
			if err != nil {
				return errors.Wrap(err, "failed to check viewer subscription")
			}
		}

		profile = &entity.ChannelProfile{
			ID:                user.ID,
			UserName:          user.UserName,
			FullName:          user.FullName,
			Email:             user.Email,
			AvatarURL:         user.AvatarURL,
			CoverImageURL:     user.CoverImageURL,
			SubscriberCount:   subscriberCount,
			SubscribedToCount: subscribedToCount,
			IsSubscribed:      isSubscribed,
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return profile, nil
}

// WatchHistory lists the videos the user has watched, most recent first.
func (srv *profileService) WatchHistory(ctx context.Context, userID uuid.UUID) ([]*entity.WatchEntry, error) {
	entries, err := srv.watchHistoryRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list watch history")
	}

	return entries, nil
}
