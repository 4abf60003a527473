// Package token signs and verifies the two bearer token classes used by
// the auth core. Access and refresh tokens carry identical claims but
// are signed with independent secrets and TTLs, so expiry or compromise
// of one class does not affect the other.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/medimart/medimart/internal/models"
)

// ErrInvalidToken is returned for any verification failure: bad
// signature, malformed token, wrong algorithm, or expiry. Verification
// is all-or-nothing; callers cannot distinguish an expired token from a
// forged one.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the identity snapshot embedded in both token classes.
// It reflects the user at issuance time and is not re-validated against
// current state except on the refresh path.
type Claims struct {
	UserID       string      `json:"userId"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	Role         models.Role `json:"role"`
	IsActive     bool        `json:"isActive"`
	LastLogin    time.Time   `json:"lastLogin"`
	ProfilePhoto string      `json:"profilePhoto,omitempty"`
	jwt.RegisteredClaims
}

// Config is one (secret, TTL) pair.
type Config struct {
	Secret []byte
	TTL    time.Duration
}

// Service issues and verifies access and refresh tokens.
type Service struct {
	access  Config
	refresh Config
	now     func() time.Time
}

// NewService creates a token service with independent access and
// refresh configurations.
func NewService(access, refresh Config) *Service {
	return &Service{
		access:  access,
		refresh: refresh,
		now:     time.Now,
	}
}

// IssueAccess signs a short-lived access token from the claims snapshot.
func (s *Service) IssueAccess(claims Claims) (string, error) {
	return s.issue(claims, s.access)
}

// IssueRefresh signs a long-lived refresh token from the claims snapshot.
func (s *Service) IssueRefresh(claims Claims) (string, error) {
	return s.issue(claims, s.refresh)
}

// VerifyAccess verifies a token against the access secret.
func (s *Service) VerifyAccess(tokenString string) (*Claims, error) {
	return s.verify(tokenString, s.access)
}

// VerifyRefresh verifies a token against the refresh secret.
func (s *Service) VerifyRefresh(tokenString string) (*Claims, error) {
	return s.verify(tokenString, s.refresh)
}

// AccessTTL reports the access token lifetime in seconds, for clients
// that schedule refreshes.
func (s *Service) AccessTTL() int64 {
	return int64(s.access.TTL.Seconds())
}

func (s *Service) issue(claims Claims, cfg Config) (string, error) {
	if len(cfg.Secret) == 0 {
		return "", fmt.Errorf("token signing secret is not configured")
	}

	issuedAt := s.now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(cfg.TTL)),
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		NotBefore: jwt.NewNumericDate(issuedAt),
		Issuer:    "medimart",
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(cfg.Secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

func (s *Service) verify(tokenString string, cfg Config) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return cfg.Secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
