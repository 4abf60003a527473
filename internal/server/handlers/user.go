package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/medimart/medimart/internal/apierr"
	"github.com/medimart/medimart/internal/auth/token"
	"github.com/medimart/medimart/internal/crypto"
	"github.com/medimart/medimart/internal/models"
	"github.com/medimart/medimart/internal/server/storage"
	"github.com/medimart/medimart/pkg/api"
)

// UserHandler serves the user management endpoints.
type UserHandler struct {
	logger *slog.Logger
	users  storage.UserStorage
}

// NewUserHandler creates the user handler.
func NewUserHandler(logger *slog.Logger, users storage.UserStorage) *UserHandler {
	return &UserHandler{
		logger: logger,
		users:  users,
	}
}

// Create handles POST /api/v1/user/create-user.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode create-user request", slog.Any("error", err))
		WriteError(w, h.logger, apierr.BadRequest("invalid request body"))
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		WriteError(w, h.logger, apierr.BadRequest("name, email and password are required"))
		return
	}

	role, err := models.ParseRole(req.Role)
	if err != nil {
		WriteError(w, h.logger, apierr.BadRequest(err.Error()))
		return
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to hash password", slog.Any("error", err))
		WriteError(w, h.logger, err)
		return
	}

	now := time.Now()
	user := &models.User{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Email:     req.Email,
		Password:  hash,
		Role:      role,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			WriteError(w, h.logger, apierr.Conflict("A user with the provided email already exists."))
			return
		}
		h.logger.ErrorContext(ctx, "failed to create user", slog.Any("error", err))
		WriteError(w, h.logger, err)
		return
	}

	h.logger.InfoContext(ctx, "user created",
		slog.String("user_id", user.ID),
		slog.String("role", string(user.Role)))

	WriteSuccess(w, h.logger, http.StatusCreated, "User created successfully!", user.Public())
}

// Me handles GET /api/v1/user/me.
// Always re-loads the user so the response reflects current state, not
// the token snapshot.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := token.ClaimsFromContext(ctx)
	if !ok {
		WriteError(w, h.logger, apierr.Unauthorized("You are not authorized!"))
		return
	}

	user, err := h.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			WriteError(w, h.logger, apierr.NotFound("User not found"))
			return
		}
		h.logger.ErrorContext(ctx, "failed to load user", slog.Any("error", err))
		WriteError(w, h.logger, err)
		return
	}

	WriteSuccess(w, h.logger, http.StatusOK, "Profile retrieved successfully!", user.Public())
}

// List handles GET /api/v1/user (admin only).
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 10)

	users, err := h.users.ListUsers(ctx, page, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list users", slog.Any("error", err))
		WriteError(w, h.logger, err)
		return
	}

	public := make([]models.PublicUser, 0, len(users))
	for _, u := range users {
		public = append(public, u.Public())
	}

	WriteSuccess(w, h.logger, http.StatusOK, "Users retrieved successfully!", public)
}

// UpdateRole handles PUT /api/v1/user/update-role/{id} (admin only).
func (h *UserHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := r.PathValue("id")
	if userID == "" {
		WriteError(w, h.logger, apierr.BadRequest("user id is required"))
		return
	}

	var req api.UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, h.logger, apierr.BadRequest("invalid request body"))
		return
	}

	role, err := models.ParseRole(req.Role)
	if err != nil {
		WriteError(w, h.logger, apierr.BadRequest(err.Error()))
		return
	}

	user, err := h.users.UpdateRole(ctx, userID, role)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			WriteError(w, h.logger, apierr.NotFound("User not found"))
			return
		}
		h.logger.ErrorContext(ctx, "failed to update role", slog.Any("error", err))
		WriteError(w, h.logger, err)
		return
	}

	h.logger.InfoContext(ctx, "user role updated",
		slog.String("user_id", userID),
		slog.String("role", string(role)))

	WriteSuccess(w, h.logger, http.StatusOK, "User role updated successfully!", user.Public())
}

// UpdateStatus handles PUT /api/v1/user/update-status/{id} (admin only).
func (h *UserHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := r.PathValue("id")
	if userID == "" {
		WriteError(w, h.logger, apierr.BadRequest("user id is required"))
		return
	}

	var req api.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, h.logger, apierr.BadRequest("invalid request body"))
		return
	}

	user, err := h.users.UpdateStatus(ctx, userID, !req.IsSuspended)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			WriteError(w, h.logger, apierr.NotFound("User not found"))
			return
		}
		h.logger.ErrorContext(ctx, "failed to update status", slog.Any("error", err))
		WriteError(w, h.logger, err)
		return
	}

	h.logger.InfoContext(ctx, "user status updated",
		slog.String("user_id", userID),
		slog.Bool("is_active", user.IsActive))

	WriteSuccess(w, h.logger, http.StatusOK, "User status updated successfully!", user.Public())
}

// UpdateProfile handles PUT /api/v1/user/update-profile.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := token.ClaimsFromContext(ctx)
	if !ok {
		WriteError(w, h.logger, apierr.Unauthorized("You are not authorized!"))
		return
	}

	var req api.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, h.logger, apierr.BadRequest("invalid request body"))
		return
	}

	user, err := h.users.UpdateProfile(ctx, claims.UserID, req.Name, req.ProfilePhoto)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			WriteError(w, h.logger, apierr.NotFound("User not found"))
			return
		}
		h.logger.ErrorContext(ctx, "failed to update profile", slog.Any("error", err))
		WriteError(w, h.logger, err)
		return
	}

	WriteSuccess(w, h.logger, http.StatusOK, "Profile updated successfully!", user.Public())
}

func queryInt(r *http.Request, key string, def int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return n
}
