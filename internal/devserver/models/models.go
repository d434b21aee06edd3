// Package models holds the records of the development backend's in-memory
// store.
package models

import "time"

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleDeveloper Role = "developer"
)

type Provider string

const (
	ProviderLocal          Provider = "local"
	ProviderGoogle         Provider = "google"
	ProviderAdminMagicLink Provider = "admin_magic_link"
)

type Account struct {
	ID           string
	Email        string
	Name         string
	Birthday     string
	AvatarURL    string
	Role         Role
	Provider     Provider
	PasswordHash string
	Verified     bool
	CreatedAt    time.Time
}

// PendingSignup is a signup that has a password but no profile yet.
type PendingSignup struct {
	Email         string
	PasswordHash  string
	TempTokenHash string
	TempExpires   time.Time
	CreatedAt     time.Time
}

// CodePurpose separates signup codes from login codes for the same email.
type CodePurpose string

const (
	PurposeSignup CodePurpose = "signup"
	PurposeLogin  CodePurpose = "login"
)

type OneTimeCode struct {
	Email   string
	Purpose CodePurpose
	Code    string
	Expires time.Time
	Used    bool
}

type MagicLink struct {
	TokenHash string
	Email     string
	Expires   time.Time
	Used      bool
}

type RefreshToken struct {
	TokenHash string
	UserID    string
	Expires   time.Time
	CreatedAt time.Time
}
