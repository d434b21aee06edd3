// Package models defines the client-side data model of the ScapeGIS identity
// flow: users and roles, token pairs, wire DTOs, draft steps and routes.
package models

import (
	"errors"
	"fmt"
	"strings"
)

// Role is the closed set of account roles. It is always taken from the
// backend profile, never derived on the client.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleDeveloper Role = "developer"
)

var ErrUnknownRole = errors.New("unknown role")

// ParseRole accepts the two known roles case-insensitively.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleDeveloper:
		return RoleDeveloper, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleDeveloper
}

// DashboardRoute is the landing route for the role.
func (r Role) DashboardRoute() Route {
	if r == RoleAdmin {
		return RouteAdminDashboard
	}
	return RouteDeveloperDashboard
}

// AuthProvider records how the account authenticates.
type AuthProvider string

const (
	ProviderLocal          AuthProvider = "local"
	ProviderGoogle         AuthProvider = "google"
	ProviderAdminMagicLink AuthProvider = "admin_magic_link"
)

// User is the authenticated profile returned by GET /auth/me.
type User struct {
	ID           string       `json:"id"`
	Email        string       `json:"email"`
	Name         string       `json:"name"`
	Role         Role         `json:"role"`
	AvatarURL    *string      `json:"avatar_url,omitempty"`
	Birthday     string       `json:"birthday,omitempty"`
	IsVerified   bool         `json:"is_verified"`
	AuthProvider AuthProvider `json:"auth_provider"`
}

// Validate checks the invariants the client relies on after hydration.
func (u *User) Validate() error {
	if u == nil {
		return errors.New("nil user")
	}
	if u.ID == "" || u.Email == "" {
		return errors.New("user profile is missing id or email")
	}
	if !u.Role.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownRole, u.Role)
	}
	return nil
}
