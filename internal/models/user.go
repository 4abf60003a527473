package models

import (
	"fmt"
	"time"
)

// Role is the closed set of roles a user can hold.
// The set is owned by this package; external representations (database,
// request bodies, token claims) are a serialization boundary and must
// parse through ParseRole.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleCustomer Role = "CUSTOMER"
	RoleVendor   Role = "VENDOR"
)

// AllRoles lists every valid role.
func AllRoles() []Role {
	return []Role{RoleAdmin, RoleCustomer, RoleVendor}
}

// ParseRole validates a serialized role against the closed set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleCustomer, RoleVendor:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// User is a credential record. Password holds the bcrypt hash and must
// never cross the HTTP boundary; use Public() for responses.
type User struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Password     string     `json:"-"`
	Role         Role       `json:"role"`
	IsActive     bool       `json:"isActive"`
	ProfilePhoto string     `json:"profilePhoto,omitempty"`
	RefreshToken string     `json:"-"` // latest issued refresh token, if any
	LastLogin    *time.Time `json:"lastLogin,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// PublicUser is the user shape returned to clients.
type PublicUser struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	IsActive bool   `json:"isActive"`
}

// Public returns the client-visible view of the user.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Role:     u.Role,
		IsActive: u.IsActive,
	}
}
