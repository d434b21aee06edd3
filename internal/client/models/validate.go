package models

import (
	"errors"
	"regexp"
	"strings"

	"github.com/scapegis/scapegis-cli/internal/common"
)

const MinPasswordLength = 8

var (
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrInvalidCode      = errors.New("code must be exactly 6 digits")
	ErrInvalidBirthday  = errors.New("birthday must be formatted as YYYY-MM-DD")
	ErrInvalidEmail     = errors.New("invalid email address")
)

var birthdayRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// ValidateCode accepts exactly six ASCII digits.
func ValidateCode(code string) error {
	if len(code) != common.VerificationCodeLength {
		return ErrInvalidCode
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return ErrInvalidCode
		}
	}
	return nil
}

// ValidateBirthday only checks the YYYY-MM-DD shape; the backend owns the
// calendar rules.
func ValidateBirthday(birthday string) error {
	if !birthdayRe.MatchString(birthday) {
		return ErrInvalidBirthday
	}
	return nil
}

func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	at := strings.Index(email, "@")
	if at <= 0 || at != strings.LastIndex(email, "@") || at == len(email)-1 {
		return ErrInvalidEmail
	}
	return nil
}
