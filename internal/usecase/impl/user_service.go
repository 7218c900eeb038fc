// Package impl contains the implementation of the application's business logic.
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

// userService implements the UserUsecase interface.
type userService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	mediaStorage service.MediaStorage
	logger       *slog.Logger
}

// UserServiceParams holds dependencies for userService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	MediaStorage service.MediaStorage
	Logger       *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		mediaStorage: params.MediaStorage,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register orchestrates the complete registration process: field validation,
// conflict check, media uploads and user creation.
func (srv *userService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	userName := strings.ToLower(strings.TrimSpace(input.UserName))
	email := strings.ToLower(strings.TrimSpace(input.Email))
	fullName := strings.TrimSpace(input.FullName)

	if userName == "" || email == "" || fullName == "" || strings.TrimSpace(input.Password) == "" {
		return nil, errors.WithStack(domainerrors.ErrValidationFailed)
	}
	if input.Avatar == nil || input.Avatar.Content == nil {
		return nil, errors.WithStack(domainerrors.ErrAvatarRequired)
	}

	srv.log(ctx).Info("Starting registration", slog.String("userName", userName), slog.String("email", email))

	// Reject early so media uploads never run for a taken identity. The unique
	// indexes still catch a concurrent registration at create time.
	_, err := srv.userRepo.FindByUserNameOrEmail(ctx, userName, email)
	if err == nil {
		return nil, errors.WithStack(domainerrors.ErrUserAlreadyExists)
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to check existing user")
	}

	avatarURL, err := srv.mediaStorage.Upload(ctx, input.Avatar.Name, input.Avatar.Content)
	if err != nil {
		srv.log(ctx).Error("Failed to upload avatar during registration", slog.String("userName", userName), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrDependencyFailure, "failed to store avatar image")
	}

	var coverImageURL string
	if input.CoverImage != nil && input.CoverImage.Content != nil {
		coverImageURL, err = srv.mediaStorage.Upload(ctx, input.CoverImage.Name, input.CoverImage.Content)
		if err != nil {
			srv.log(ctx).Error("Failed to upload cover image during registration", slog.String("userName", userName), slog.Any("error", err))

			return nil, errors.Wrap(domainerrors.ErrDependencyFailure, "failed to store cover image")
		}
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrDependencyFailure, "failed to hash password")
	}

	newUser := &entity.User{
		UserName:      userName,
		Email:         email,
		FullName:      fullName,
		AvatarURL:     avatarURL,
		CoverImageURL: coverImageURL,
		PasswordHash:  hashedPassword,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.UserRepo().Create(ctx, newUser)
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute registration transaction", slog.String("userName", userName), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute user registration transaction")
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", newUser.ID))

	return &usecase.RegisterOutput{User: newUser.Sanitized()}, nil
}

// Login verifies credentials, issues a token pair and stores the refresh
// token as the session anchor.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	userName := strings.ToLower(strings.TrimSpace(input.UserName))
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if userName == "" && email == "" {
		return nil, errors.WithStack(domainerrors.ErrValidationFailed)
	}

	user, err := srv.userRepo.FindByUserNameOrEmail(ctx, userName, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Login attempt for unknown account", slog.String("userName", userName), slog.String("email", email))

			return nil, errors.WithStack(domainerrors.ErrUserNotFound)
		}

		return nil, errors.Wrap(err, "failed to find user for login")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Password mismatch during login", slog.Any("userID", user.ID))

		return nil, errors.WithStack(domainerrors.ErrInvalidCredentials)
	}

	accessToken, refreshToken, err := srv.issueTokenPair(user)
	if err != nil {
		return nil, err
	}

	// Login overwrites any previous session token unconditionally.
	if err := srv.userRepo.RotateRefreshToken(ctx, user.ID, "", refreshToken); err != nil {
		return nil, errors.Wrap(err, "failed to store refresh token during login")
	}

	srv.log(ctx).Debug("Login completed", slog.Any("userID", user.ID))

	return &usecase.LoginOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user.Sanitized(),
	}, nil
}

// RefreshSession exchanges a valid refresh token for a fresh pair. The stored
// token must still equal the presented one; rotation is guarded so a replayed
// token loses the race and fails.
func (srv *userService) RefreshSession(ctx context.Context, refreshToken string) (*usecase.RefreshOutput, error) {
	if refreshToken == "" {
		return nil, errors.WithStack(domainerrors.ErrUnauthorized)
	}

	claims, err := srv.tokenService.ParseRefreshToken(refreshToken)
	if err != nil {
		srv.log(ctx).Warn("Refresh token failed verification", slog.Any("error", err))

		return nil, errors.WithStack(domainerrors.ErrUnauthorized)
	}

	user, err := srv.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.WithStack(domainerrors.ErrUnauthorized)
		}

		return nil, errors.Wrap(err, "failed to find user for session refresh")
	}

	if user.RefreshToken != refreshToken {
		srv.log(ctx).Warn("Refresh token does not match stored session", slog.Any("userID", user.ID))

		return nil, errors.WithStack(domainerrors.ErrRefreshTokenInvalid)
	}

	accessToken, nextRefreshToken, err := srv.issueTokenPair(user)
	if err != nil {
		return nil, err
	}

	err = srv.userRepo.RotateRefreshToken(ctx, user.ID, refreshToken, nextRefreshToken)
	if err != nil {
		if errors.Is(err, repository.ErrRefreshTokenMismatch) || errors.Is(err, repository.ErrUserNotFound) {
			// A concurrent refresh won the rotation; this presentation is a replay.
			return nil, errors.WithStack(domainerrors.ErrRefreshTokenInvalid)
		}

		return nil, errors.Wrap(err, "failed to rotate refresh token")
	}

	srv.log(ctx).Debug("Session refreshed", slog.Any("userID", user.ID))

	return &usecase.RefreshOutput{
		AccessToken:  accessToken,
		RefreshToken: nextRefreshToken,
	}, nil
}

// Logout ends the session by clearing the stored refresh token. Already
// logged-out users succeed; access tokens stay valid until expiry.
func (srv *userService) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := srv.userRepo.ClearRefreshToken(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return errors.WithStack(domainerrors.ErrUnauthorized)
		}

		return errors.Wrap(err, "failed to clear refresh token during logout")
	}

	srv.log(ctx).Debug("Logout completed", slog.Any("userID", userID))

	return nil
}

// ChangePassword verifies the old password before storing a hash of the new
// one. The stored refresh token is left untouched, so the session survives.
func (srv *userService) ChangePassword(ctx context.Context, input *usecase.ChangePasswordInput) error {
	if strings.TrimSpace(input.OldPassword) == "" || strings.TrimSpace(input.NewPassword) == "" {
		return errors.WithStack(domainerrors.ErrValidationFailed)
	}

	user, err := srv.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return errors.WithStack(domainerrors.ErrUnauthorized)
		}

		return errors.Wrap(err, "failed to find user for password change")
	}

	if !srv.hasher.Check(input.OldPassword, user.PasswordHash) {
		srv.log(ctx).Warn("Old password mismatch during password change", slog.Any("userID", user.ID))

		return errors.WithStack(domainerrors.ErrInvalidCredentials)
	}

	hashedPassword, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		srv.log(ctx).Error("Failed to hash new password", slog.Any("error", err))

		return errors.Wrap(domainerrors.ErrDependencyFailure, "failed to hash new password")
	}

	if err := srv.userRepo.UpdatePasswordHash(ctx, user.ID, hashedPassword); err != nil {
		return errors.Wrap(err, "failed to update password hash")
	}

	srv.log(ctx).Info("Password changed", slog.Any("userID", user.ID))

	return nil
}

// issueTokenPair signs both token kinds for a user.
func (srv *userService) issueTokenPair(user *entity.User) (accessToken, refreshToken string, err error) {
	accessToken, err = srv.tokenService.IssueAccessToken(user)
	if err != nil {
		return "", "", errors.Wrap(err, "failed to issue access token")
	}

	refreshToken, err = srv.tokenService.IssueRefreshToken(user)
	if err != nil {
		return "", "", errors.Wrap(err, "failed to issue refresh token")
	}

	return accessToken, refreshToken, nil
}
