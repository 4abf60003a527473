// Package api defines the request and response shapes of the HTTP API.
package api

import "github.com/medimart/medimart/internal/models"

// ClientInfo describes the device a login originates from.
type ClientInfo struct {
	Device    string `json:"device"`
	Browser   string `json:"browser"`
	IPAddress string `json:"ipAddress"`
	PCName    string `json:"pcName,omitempty"`
	OS        string `json:"os,omitempty"`
	UserAgent string `json:"userAgent,omitempty"`
}

// LoginRequest is the body of POST /api/v1/auth/login.
type LoginRequest struct {
	Email      string     `json:"email"`
	Password   string     `json:"password"`
	ClientInfo ClientInfo `json:"clientInfo"`
}

// LoginData is the data payload of a successful login. The refresh
// token travels in an http-only cookie, not here.
type LoginData struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

// RefreshData is the data payload of a successful token refresh.
type RefreshData struct {
	AccessToken string `json:"accessToken"`
}

// ChangePasswordRequest is the body of POST /api/v1/auth/change-password.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}
