// Package auth implements the login, token-refresh and password-change
// flows over the credential store and token service.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/medimart/medimart/internal/apierr"
	"github.com/medimart/medimart/internal/auth/token"
	"github.com/medimart/medimart/internal/crypto"
	"github.com/medimart/medimart/internal/models"
	"github.com/medimart/medimart/internal/server/storage"
)

// businessZone is the fixed offset used for last-login timestamps in
// token claims. This is a display convention of the platform (UTC+6),
// not a correctness requirement; storage stays in the driver's native
// representation.
var businessZone = time.FixedZone("UTC+6", 6*60*60)

// ClientInfo describes the device a login request originates from.
// It is logged for auditing and never persisted.
type ClientInfo struct {
	Device    string
	Browser   string
	IPAddress string
	PCName    string
	OS        string
	UserAgent string
}

// LoginResult carries both issued tokens plus the public user view.
// The refresh token is expected to travel back as an http-only cookie,
// not in the response body.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	User         models.PublicUser
}

// Service orchestrates the auth flows. Each flow is a short-lived
// per-request transaction; the service itself holds no mutable state.
type Service struct {
	logger *slog.Logger
	users  storage.UserStorage
	tokens *token.Service
	now    func() time.Time
}

// NewService creates the auth service.
func NewService(logger *slog.Logger, users storage.UserStorage, tokens *token.Service) *Service {
	return &Service{
		logger: logger,
		users:  users,
		tokens: tokens,
		now:    time.Now,
	}
}

// Login authenticates a user by email and password and issues an
// access/refresh token pair from the same claims snapshot. The refresh
// token reference and last-login timestamp are persisted atomically.
func (s *Service) Login(ctx context.Context, email, password string, client ClientInfo) (*LoginResult, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, apierr.NotFound("This user is not found!")
		}
		return nil, fmt.Errorf("failed to load user by email: %w", err)
	}

	if !user.IsActive {
		return nil, apierr.Forbidden("This user is not active!")
	}

	if err := crypto.CheckPassword(password, user.Password); err != nil {
		s.logger.WarnContext(ctx, "login failed: password mismatch",
			slog.String("user_id", user.ID),
			slog.String("ip", client.IPAddress))
		return nil, apierr.Forbidden("Password does not match")
	}

	loginAt := s.now().In(businessZone)
	claims := claimsFor(user, loginAt)

	accessToken, err := s.tokens.IssueAccess(claims)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	refreshToken, err := s.tokens.IssueRefresh(claims)
	if err != nil {
		return nil, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	if err := s.users.RecordLogin(ctx, user.ID, refreshToken, loginAt); err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}

	s.logger.InfoContext(ctx, "user logged in",
		slog.String("user_id", user.ID),
		slog.String("role", string(user.Role)),
		slog.String("device", client.Device),
		slog.String("ip", client.IPAddress))

	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user.Public(),
	}, nil
}

// Refresh exchanges a valid refresh token for a new access token. The
// user is re-loaded so role and status changes since issuance take
// effect here. Refresh tokens are not rotated.
func (s *Service) Refresh(ctx context.Context, presentedToken string) (string, error) {
	claims, err := s.tokens.VerifyRefresh(presentedToken)
	if err != nil {
		// The token is syntactically present but invalid, hence
		// Forbidden rather than Unauthorized.
		return "", apierr.Forbidden("Invalid Refresh Token")
	}

	user, err := s.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return "", apierr.NotFound("User does not exist")
		}
		return "", fmt.Errorf("failed to load user: %w", err)
	}

	if !user.IsActive {
		return "", apierr.BadRequest("User is not active")
	}

	lastLogin := user.CreatedAt
	if user.LastLogin != nil {
		lastLogin = *user.LastLogin
	}

	accessToken, err := s.tokens.IssueAccess(claimsFor(user, lastLogin.In(businessZone)))
	if err != nil {
		return "", fmt.Errorf("failed to issue access token: %w", err)
	}

	s.logger.InfoContext(ctx, "access token refreshed", slog.String("user_id", user.ID))

	return accessToken, nil
}

// ChangePassword verifies the old password and replaces the stored
// hash. The user is re-loaded by the authenticated identity's id, never
// a client-supplied one. Outstanding access tokens stay valid until
// natural expiry.
func (s *Service) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return apierr.NotFound("User not found")
		}
		return fmt.Errorf("failed to load user: %w", err)
	}

	if !user.IsActive {
		return apierr.Forbidden("User account is inactive")
	}

	if err := crypto.CheckPassword(oldPassword, user.Password); err != nil {
		return apierr.Forbidden("Incorrect old password")
	}

	hash, err := crypto.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.logger.InfoContext(ctx, "password changed", slog.String("user_id", user.ID))

	return nil
}

// claimsFor builds the issuance-time identity snapshot embedded in both
// token classes.
func claimsFor(user *models.User, lastLogin time.Time) token.Claims {
	return token.Claims{
		UserID:       user.ID,
		Name:         user.Name,
		Email:        user.Email,
		Role:         user.Role,
		IsActive:     user.IsActive,
		LastLogin:    lastLogin,
		ProfilePhoto: user.ProfilePhoto,
	}
}
