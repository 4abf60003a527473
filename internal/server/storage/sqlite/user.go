package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/medimart/medimart/internal/models"
	"github.com/medimart/medimart/internal/server/storage"
)

const userColumns = `id, name, email, password, role, is_active, profile_photo, refresh_token, last_login, created_at, updated_at`

// CreateUser creates a new user
func (s *Storage) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.Password,
		string(user.Role),
		user.IsActive,
		nullString(user.ProfilePhoto),
		nullString(user.RefreshToken),
		nullTime(user.LastLogin),
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: users.email") {
			return storage.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// GetUserByEmail retrieves a user by email
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`
	return s.scanUser(s.db.QueryRowContext(ctx, query, email))
}

// GetUserByID retrieves a user by ID
func (s *Storage) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return s.scanUser(s.db.QueryRowContext(ctx, query, userID))
}

// ListUsers returns users ordered by creation time, newest first
func (s *Storage) ListUsers(ctx context.Context, page, limit int) ([]*models.User, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	query := `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`

	rows, err := s.db.QueryContext(ctx, query, limit, (page-1)*limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var users []*models.User

	for rows.Next() {
		user, err := scanUserRow(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return users, nil
}

// RecordLogin persists the refresh token reference and last-login
// timestamp atomically
func (s *Storage) RecordLogin(ctx context.Context, userID, refreshToken string, lastLogin time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `UPDATE users SET refresh_token = ?, last_login = ?, updated_at = ? WHERE id = ?`

	result, err := tx.ExecContext(ctx, query, refreshToken, lastLogin, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("failed to record login: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return storage.ErrUserNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit login record: %w", err)
	}

	return nil
}

// UpdatePassword replaces the stored password hash
func (s *Storage) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	query := `UPDATE users SET password = ?, updated_at = ? WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, passwordHash, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return storage.ErrUserNotFound
	}

	return nil
}

// UpdateRole changes the user's role
func (s *Storage) UpdateRole(ctx context.Context, userID string, role models.Role) (*models.User, error) {
	query := `UPDATE users SET role = ?, updated_at = ? WHERE id = ?`

	if err := s.execOnUser(ctx, query, string(role), time.Now(), userID); err != nil {
		return nil, err
	}

	return s.GetUserByID(ctx, userID)
}

// UpdateStatus flips the active flag
func (s *Storage) UpdateStatus(ctx context.Context, userID string, isActive bool) (*models.User, error) {
	query := `UPDATE users SET is_active = ?, updated_at = ? WHERE id = ?`

	if err := s.execOnUser(ctx, query, isActive, time.Now(), userID); err != nil {
		return nil, err
	}

	return s.GetUserByID(ctx, userID)
}

// UpdateProfile updates name and profile photo; empty fields keep their
// current value
func (s *Storage) UpdateProfile(ctx context.Context, userID, name, profilePhoto string) (*models.User, error) {
	query := `
		UPDATE users
		SET name = COALESCE(NULLIF(?, ''), name),
		    profile_photo = COALESCE(NULLIF(?, ''), profile_photo),
		    updated_at = ?
		WHERE id = ?
	`

	if err := s.execOnUser(ctx, query, name, profilePhoto, time.Now(), userID); err != nil {
		return nil, err
	}

	return s.GetUserByID(ctx, userID)
}

// execOnUser runs an update that must affect exactly one user row.
func (s *Storage) execOnUser(ctx context.Context, query string, args ...any) error {
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return storage.ErrUserNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *Storage) scanUser(row *sql.Row) (*models.User, error) {
	user, err := scanUserRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func scanUserRow(row rowScanner) (*models.User, error) {
	user := &models.User{}
	var (
		role         string
		profilePhoto sql.NullString
		refreshToken sql.NullString
		lastLogin    sql.NullTime
	)

	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Password,
		&role,
		&user.IsActive,
		&profilePhoto,
		&refreshToken,
		&lastLogin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}

	parsed, err := models.ParseRole(role)
	if err != nil {
		return nil, fmt.Errorf("stored role is invalid: %w", err)
	}
	user.Role = parsed

	user.ProfilePhoto = profilePhoto.String
	user.RefreshToken = refreshToken.String
	if lastLogin.Valid {
		user.LastLogin = &lastLogin.Time
	}

	return user, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
