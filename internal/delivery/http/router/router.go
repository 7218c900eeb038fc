// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"vidtube/internal/delivery/http/middleware"
	"vidtube/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler         *handler.UserHandler
	ProfileHandler      *handler.ProfileHandler
	AuthMiddleware      *middleware.AuthMiddleware
	RequestIDMiddleware *middleware.RequestIDMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler         *handler.UserHandler
	profileHandler      *handler.ProfileHandler
	authMiddleware      *middleware.AuthMiddleware
	requestIDMiddleware *middleware.RequestIDMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:         params.UserHandler,
		profileHandler:      params.ProfileHandler,
		authMiddleware:      params.AuthMiddleware,
		requestIDMiddleware: params.RequestIDMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.Use(r.requestIDMiddleware.Process)

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	users := e.Group("/api/v1/users")
	{
		// Open endpoints
		users.POST("/register", r.userHandler.Register)
		users.POST("/login", r.userHandler.Login)
		users.POST("/refresh-token", r.userHandler.RefreshToken)

		// Session endpoints
		users.POST("/logout", r.userHandler.Logout, r.authMiddleware.Authenticate)
		users.POST("/change-password", r.userHandler.ChangePassword, r.authMiddleware.Authenticate)

		// Profile endpoints
		users.GET("/current-user", r.profileHandler.CurrentUser, r.authMiddleware.Authenticate)
		users.PATCH("/update-account", r.profileHandler.UpdateAccount, r.authMiddleware.Authenticate)
		users.PATCH("/avatar", r.profileHandler.UpdateAvatar, r.authMiddleware.Authenticate)
		users.PATCH("/cover-image", r.profileHandler.UpdateCoverImage, r.authMiddleware.Authenticate)

		// Channel pages personalize for logged-in viewers but stay public.
		users.GET("/c/:userName", r.profileHandler.ChannelProfile, r.authMiddleware.AuthenticateOptional)
		users.GET("/watch-history", r.profileHandler.WatchHistory, r.authMiddleware.Authenticate)
	}
}
