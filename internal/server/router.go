package server

import (
	"net/http"

	"log/slog"

	"github.com/medimart/medimart/internal/auth/token"
	"github.com/medimart/medimart/internal/models"
	"github.com/medimart/medimart/internal/server/handlers"
	"github.com/medimart/medimart/internal/server/middleware"
)

// NewRouter builds the route table. Role sets per route are the only
// parameter of the auth middleware; an empty set means any
// authenticated user.
func NewRouter(
	logger *slog.Logger,
	tokens *token.Service,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	healthHandler *handlers.HealthHandler,
) http.Handler {
	mux := http.NewServeMux()

	authed := middleware.AuthMiddleware(logger, tokens)
	adminOnly := middleware.AuthMiddleware(logger, tokens, models.RoleAdmin)

	// Auth. Login and refresh are unauthenticated entry points.
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/v1/auth/refresh-token", authHandler.Refresh)
	mux.Handle("POST /api/v1/auth/change-password", authed(http.HandlerFunc(authHandler.ChangePassword)))

	// Users
	mux.HandleFunc("POST /api/v1/user/create-user", userHandler.Create)
	mux.Handle("GET /api/v1/user/me", authed(http.HandlerFunc(userHandler.Me)))
	mux.Handle("GET /api/v1/user", adminOnly(http.HandlerFunc(userHandler.List)))
	mux.Handle("PUT /api/v1/user/update-role/{id}", adminOnly(http.HandlerFunc(userHandler.UpdateRole)))
	mux.Handle("PUT /api/v1/user/update-status/{id}", adminOnly(http.HandlerFunc(userHandler.UpdateStatus)))
	mux.Handle("PUT /api/v1/user/update-profile", authed(http.HandlerFunc(userHandler.UpdateProfile)))

	// Health
	mux.HandleFunc("GET /api/v1/health", healthHandler.Health)

	chain := middleware.RecoveryMiddleware(logger)(middleware.LoggingMiddleware(logger)(mux))
	return chain
}
