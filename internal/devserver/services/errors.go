package services

import "errors"

// Errors returned by AccountService. The HTTP layer owns their status codes
// and display text.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrAlreadyRegistered  = errors.New("email already registered")
	ErrAdminAccount       = errors.New("admin account")
	ErrNotAdmin           = errors.New("email is outside the admin domain")
	ErrRateLimited        = errors.New("too many requests")
	ErrCodeExpired        = errors.New("code expired")
	ErrCodeUsed           = errors.New("code already used")
	ErrInvalidCode        = errors.New("invalid code")
	ErrNoPendingSignup    = errors.New("no pending signup")
	ErrInvalidTempToken   = errors.New("invalid temp token")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrLinkExpired        = errors.New("magic link expired")
	ErrLinkUsed           = errors.New("magic link already used")
	ErrInvalidLink        = errors.New("unknown magic link")
	ErrTokenRequired      = errors.New("token required")
	ErrInvalidRefresh     = errors.New("invalid refresh token")
	ErrInvalidIDToken     = errors.New("invalid google id token")
)

// ValidationError is a request field that failed validation. Msg is shown
// to the user as is.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Msg
}

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Msg: msg}
}
