package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/medimart/medimart/internal/apierr"
	"github.com/medimart/medimart/internal/auth"
	"github.com/medimart/medimart/internal/auth/token"
	"github.com/medimart/medimart/pkg/api"
)

// refreshCookieMaxAge matches the refresh token's one-year lifetime.
const refreshCookieMaxAge = 365 * 24 * 60 * 60

// AuthHandler serves the authentication endpoints.
type AuthHandler struct {
	logger     *slog.Logger
	auth       *auth.Service
	production bool
}

// NewAuthHandler creates the auth handler. production controls the
// Secure attribute of the refresh cookie.
func NewAuthHandler(logger *slog.Logger, authService *auth.Service, production bool) *AuthHandler {
	return &AuthHandler{
		logger:     logger,
		auth:       authService,
		production: production,
	}
}

// Login handles POST /api/v1/auth/login.
// The refresh token is delivered only via an http-only cookie; the JSON
// body carries the access token and public user view.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode login request", slog.Any("error", err))
		WriteError(w, h.logger, apierr.BadRequest("invalid request body"))
		return
	}

	if req.Email == "" || req.Password == "" {
		WriteError(w, h.logger, apierr.BadRequest("email and password are required"))
		return
	}

	result, err := h.auth.Login(ctx, req.Email, req.Password, auth.ClientInfo{
		Device:    req.ClientInfo.Device,
		Browser:   req.ClientInfo.Browser,
		IPAddress: req.ClientInfo.IPAddress,
		PCName:    req.ClientInfo.PCName,
		OS:        req.ClientInfo.OS,
		UserAgent: req.ClientInfo.UserAgent,
	})
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "refreshToken",
		Value:    result.RefreshToken,
		Path:     "/",
		MaxAge:   refreshCookieMaxAge,
		HttpOnly: true,
		Secure:   h.production,
		SameSite: http.SameSiteNoneMode,
	})

	WriteSuccess(w, h.logger, http.StatusOK, "User logged in successfully!", api.LoginData{
		Token: result.AccessToken,
		User:  result.User,
	})
}

// Refresh handles POST /api/v1/auth/refresh-token.
// The refresh token is read from the Authorization header; the raw
// value is accepted, a Bearer prefix is tolerated.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	presented := tokenFromHeader(r)
	if presented == "" {
		WriteError(w, h.logger, apierr.Unauthorized("You are not authorized!"))
		return
	}

	accessToken, err := h.auth.Refresh(ctx, presented)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	WriteSuccess(w, h.logger, http.StatusOK, "User logged in successfully!", api.RefreshData{
		AccessToken: accessToken,
	})
}

// ChangePassword handles POST /api/v1/auth/change-password.
// The target user comes from the authenticated identity, never from the
// request body.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := token.ClaimsFromContext(ctx)
	if !ok {
		WriteError(w, h.logger, apierr.Unauthorized("You are not authorized!"))
		return
	}

	var req api.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode change-password request", slog.Any("error", err))
		WriteError(w, h.logger, apierr.BadRequest("invalid request body"))
		return
	}

	if req.OldPassword == "" || req.NewPassword == "" {
		WriteError(w, h.logger, apierr.BadRequest("oldPassword and newPassword are required"))
		return
	}

	if err := h.auth.ChangePassword(ctx, claims.UserID, req.OldPassword, req.NewPassword); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	WriteSuccess(w, h.logger, http.StatusOK, "Password changed successfully!", nil)
}

// tokenFromHeader extracts a bearer token from the Authorization
// header. Historical clients send the raw token without a scheme, so
// the Bearer prefix is optional.
func tokenFromHeader(r *http.Request) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if after, ok := strings.CutPrefix(raw, "Bearer "); ok {
		return strings.TrimSpace(after)
	}
	return raw
}
