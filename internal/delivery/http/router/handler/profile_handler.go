package handler

import (
	"context"
	"log/slog"
	"net/http"

	"vidtube/internal/delivery/http/middleware"
	"vidtube/internal/delivery/http/response"
	"vidtube/internal/domain/entity"
	domainerrors "vidtube/internal/domain/errors"
	"vidtube/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProfileHandler holds dependencies for profile and channel handlers.
type ProfileHandler struct {
	uc     usecase.ProfileUsecase
	logger *slog.Logger
}

// NewProfileHandler is the constructor for ProfileHandler, injected by Fx.
func NewProfileHandler(uc usecase.ProfileUsecase, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		uc:     uc,
		logger: logger,
	}
}

// updateAccountRequest binds the editable account fields. Both are required.
type updateAccountRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
}

// CurrentUser returns the authenticated caller's profile.
func (h *ProfileHandler) CurrentUser(c echo.Context) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return errors.WithStack(domainerrors.ErrUnauthorized)
	}

	user, err := h.uc.CurrentUser(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toUserResponse(user), "Current user fetched successfully")
}

// UpdateAccount changes the caller's full name and email.
func (h *ProfileHandler) UpdateAccount(c echo.Context) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return errors.WithStack(domainerrors.ErrUnauthorized)
	}

	var req updateAccountRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid account update input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	user, err := h.uc.UpdateAccount(c.Request().Context(), &usecase.UpdateAccountInput{
		UserID:   userID,
		FullName: req.FullName,
		Email:    req.Email,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toUserResponse(user), "Account updated successfully")
}

// UpdateAvatar replaces the caller's avatar image.
func (h *ProfileHandler) UpdateAvatar(c echo.Context) error {
	return h.updateImage(c, "avatar", h.uc.UpdateAvatar, "Avatar updated successfully")
}

// UpdateCoverImage replaces the caller's cover image.
func (h *ProfileHandler) UpdateCoverImage(c echo.Context) error {
	return h.updateImage(c, "coverImage", h.uc.UpdateCoverImage, "Cover image updated successfully")
}

func (h *ProfileHandler) updateImage(
	c echo.Context,
	field string,
	update func(ctx context.Context, userID uuid.UUID, file *usecase.FileUpload) (*entity.User, error),
	message string,
) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return errors.WithStack(domainerrors.ErrUnauthorized)
	}

	file, closeFile, err := openFormFile(c, field)
	if err != nil {
		return errors.WithStack(domainerrors.ErrValidationFailed.WrapMessage(field + " file is required"))
	}
	defer closeFile()

	user, err := update(c.Request().Context(), userID, file)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toUserResponse(user), message)
}

// ChannelProfile returns the public channel page for a username. Logged-in
// viewers get their subscription status reflected in the response.
func (h *ProfileHandler) ChannelProfile(c echo.Context) error {
	userName := c.Param("userName")

	viewerID := uuid.Nil
	if id, ok := middleware.CurrentUserID(c); ok {
		viewerID = id
	}

	profile, err := h.uc.ChannelProfile(c.Request().Context(), userName, viewerID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toChannelResponse(profile), "Channel profile fetched successfully")
}

// WatchHistory lists the caller's watched videos, most recent first.
func (h *ProfileHandler) WatchHistory(c echo.Context) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return errors.WithStack(domainerrors.ErrUnauthorized)
	}

	entries, err := h.uc.WatchHistory(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toWatchHistoryResponse(entries), "Watch history fetched successfully")
}
