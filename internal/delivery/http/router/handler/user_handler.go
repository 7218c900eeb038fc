// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"vidtube/config"
	"vidtube/internal/delivery/http/middleware"
	"vidtube/internal/delivery/http/response"
	domainerrors "vidtube/internal/domain/errors"
	"vidtube/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// RefreshTokenCookie is the cookie the refresh token travels in.
const RefreshTokenCookie = "refreshToken"

// UserHandler holds dependencies for account lifecycle handlers.
type UserHandler struct {
	uc     usecase.UserUsecase
	cfg    *config.Config
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase, cfg *config.Config, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		uc:     uc,
		cfg:    cfg,
		logger: logger,
	}
}

// loginRequest binds the login payload. One of userName or email is required.
type loginRequest struct {
	UserName string `json:"userName"`
	Email    string `json:"email"`
	Password string `json:"password" validate:"required"`
}

// refreshRequest binds an explicit refresh token for clients not using cookies.
type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// changePasswordRequest binds the password change payload.
type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

// tokenPairResponse is the refresh endpoint's payload.
type tokenPairResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// loginResponse is the login endpoint's payload.
type loginResponse struct {
	User         *userResponse `json:"user"`
	AccessToken  string        `json:"accessToken"`
	RefreshToken string        `json:"refreshToken"`
}

// Register handles the multipart registration request. The avatar file is
// mandatory, the cover image optional.
func (h *UserHandler) Register(c echo.Context) error {
	input := &usecase.RegisterInput{
		UserName: c.FormValue("userName"),
		Email:    c.FormValue("email"),
		FullName: c.FormValue("fullName"),
		Password: c.FormValue("password"),
	}

	avatar, closeAvatar, err := openFormFile(c, "avatar")
	if err != nil {
		return errors.WithStack(domainerrors.ErrAvatarRequired)
	}
	defer closeAvatar()
	input.Avatar = avatar

	if cover, closeCover, err := openFormFile(c, "coverImage"); err == nil {
		defer closeCover()
		input.CoverImage = cover
	}

	output, err := h.uc.Register(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toUserResponse(output.User), "User registered successfully")
}

// Login handles the user login request and opens a cookie-based session.
func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{
		UserName: req.UserName,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	h.setSessionCookies(c, output.AccessToken, output.RefreshToken)

	return response.Success(c, http.StatusOK, &loginResponse{
		User:         toUserResponse(output.User),
		AccessToken:  output.AccessToken,
		RefreshToken: output.RefreshToken,
	}, "Login successful")
}

// RefreshToken exchanges a refresh token, taken from the cookie or the body,
// for a freshly rotated pair.
func (h *UserHandler) RefreshToken(c echo.Context) error {
	refreshToken := ""
	if cookie, err := c.Cookie(RefreshTokenCookie); err == nil {
		refreshToken = cookie.Value
	}
	if refreshToken == "" {
		var req refreshRequest
		if err := c.Bind(&req); err == nil {
			refreshToken = req.RefreshToken
		}
	}

	output, err := h.uc.RefreshSession(c.Request().Context(), refreshToken)
	if err != nil {
		return errors.WithStack(err)
	}

	h.setSessionCookies(c, output.AccessToken, output.RefreshToken)

	return response.Success(c, http.StatusOK, &tokenPairResponse{
		AccessToken:  output.AccessToken,
		RefreshToken: output.RefreshToken,
	}, "Token refreshed successfully")
}

// Logout ends the caller's session and expires both cookies.
func (h *UserHandler) Logout(c echo.Context) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return errors.WithStack(domainerrors.ErrUnauthorized)
	}

	if err := h.uc.Logout(c.Request().Context(), userID); err != nil {
		return errors.WithStack(err)
	}

	h.clearSessionCookies(c)

	return response.Success(c, http.StatusOK, nil, "Logout successful")
}

// ChangePassword verifies and replaces the caller's password. The session
// stays open.
func (h *UserHandler) ChangePassword(c echo.Context) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return errors.WithStack(domainerrors.ErrUnauthorized)
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid password change input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	err := h.uc.ChangePassword(c.Request().Context(), &usecase.ChangePasswordInput{
		UserID:      userID,
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Password changed successfully")
}

// setSessionCookies stores both tokens as httpOnly cookies scoped to the site.
func (h *UserHandler) setSessionCookies(c echo.Context, accessToken, refreshToken string) {
	setTokenCookie(c, middleware.AccessTokenCookie, accessToken, h.cfg.AccessTokenTTL())
	setTokenCookie(c, RefreshTokenCookie, refreshToken, h.cfg.RefreshTokenTTL())
}

// clearSessionCookies expires both token cookies.
func (h *UserHandler) clearSessionCookies(c echo.Context) {
	setTokenCookie(c, middleware.AccessTokenCookie, "", -time.Hour)
	setTokenCookie(c, RefreshTokenCookie, "", -time.Hour)
}

func setTokenCookie(c echo.Context, name, value string, ttl time.Duration) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}

// openFormFile opens a multipart file field as a FileUpload.
func openFormFile(c echo.Context, field string) (*usecase.FileUpload, func(), error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to read %s form file", field)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to open %s form file", field)
	}

	return &usecase.FileUpload{
		Name:    fileHeader.Filename,
		Content: file,
	}, func() { closeMultipartFile(file) }, nil
}

func closeMultipartFile(file multipart.File) {
	_ = file.Close()
}
