package storage

import (
	"context"
	"time"

	"github.com/medimart/medimart/internal/models"
)

// UserStorage defines the credential store interface. Users are created
// and mutated but never physically deleted by the auth core.
type UserStorage interface {
	// CreateUser creates a new user.
	// Returns ErrUserAlreadyExists if the email is taken.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email (case-sensitive as stored).
	// Returns ErrUserNotFound if the user doesn't exist.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID.
	// Returns ErrUserNotFound if the user doesn't exist.
	GetUserByID(ctx context.Context, userID string) (*models.User, error)

	// ListUsers returns users ordered by creation time, newest first.
	// page is 1-based; limit caps the page size.
	ListUsers(ctx context.Context, page, limit int) ([]*models.User, error)

	// RecordLogin persists the latest issued refresh token and the
	// last-login timestamp in a single transaction, so a crash cannot
	// leave a user referencing a token that was never returned.
	RecordLogin(ctx context.Context, userID, refreshToken string, lastLogin time.Time) error

	// UpdatePassword replaces the stored password hash.
	// Returns ErrUserNotFound if the user doesn't exist.
	UpdatePassword(ctx context.Context, userID, passwordHash string) error

	// UpdateRole changes the user's role and returns the updated record.
	UpdateRole(ctx context.Context, userID string, role models.Role) (*models.User, error)

	// UpdateStatus flips the active flag and returns the updated record.
	UpdateStatus(ctx context.Context, userID string, isActive bool) (*models.User, error)

	// UpdateProfile updates the mutable profile fields and returns the
	// updated record. Empty fields are left unchanged.
	UpdateProfile(ctx context.Context, userID, name, profilePhoto string) (*models.User, error)
}
