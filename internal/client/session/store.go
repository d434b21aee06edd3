package session

import (
	"errors"
	"sync"

	"github.com/scapegis/scapegis-cli/internal/client/models"
)

// Transient keys.
const (
	KeySignupEmail     = "signup_email"
	KeySignupPassword  = "signup_password"
	KeySignupTempToken = "signup_temp_token"
	KeySignupCodeSent  = "signup_code_sent"
	KeyAuthEmail       = "auth_email"
	KeyAuthType        = "auth_type"
)

var ErrDraftMissing = errors.New("draft value missing")

// Store is a mutex-guarded map of draft values.
type Store struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewStore() *Store {
	return &Store{values: make(map[string]string)}
}

func (s *Store) Get(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key]
}

// Set stores value under key. An empty value removes the key.
func (s *Store) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if value == "" {
		delete(s.values, key)
		return
	}
	s.values[key] = value
}

func (s *Store) Delete(keys ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.values, k)
	}
}

// Require returns ErrDraftMissing naming the first absent key.
func (s *Store) Require(keys ...string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, k := range keys {
		if s.values[k] == "" {
			return &MissingError{Key: k}
		}
	}
	return nil
}

// Reset drops the whole draft.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = make(map[string]string)
}

// Len reports how many values are held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}

type MissingError struct {
	Key string
}

func (e *MissingError) Error() string {
	return ErrDraftMissing.Error() + ": " + e.Key
}

func (e *MissingError) Unwrap() error {
	return ErrDraftMissing
}

// Typed accessors.

func (s *Store) SignupEmail() string       { return s.Get(KeySignupEmail) }
func (s *Store) SetSignupEmail(v string)   { s.Set(KeySignupEmail, v) }
func (s *Store) Password() string          { return s.Get(KeySignupPassword) }
func (s *Store) SetPassword(v string)      { s.Set(KeySignupPassword, v) }
func (s *Store) ClearPassword()            { s.Delete(KeySignupPassword) }
func (s *Store) TempToken() string         { return s.Get(KeySignupTempToken) }
func (s *Store) SetTempToken(v string)     { s.Set(KeySignupTempToken, v) }
func (s *Store) AuthEmail() string         { return s.Get(KeyAuthEmail) }
func (s *Store) SetAuthEmail(v string)     { s.Set(KeyAuthEmail, v) }
func (s *Store) FlowType() models.FlowType { return models.FlowType(s.Get(KeyAuthType)) }

func (s *Store) SetFlowType(v models.FlowType) { s.Set(KeyAuthType, string(v)) }

// SignupCodeSent reports whether a signup code went out for the draft email.
func (s *Store) SignupCodeSent() bool { return s.Get(KeySignupCodeSent) != "" }
func (s *Store) MarkSignupCodeSent()  { s.Set(KeySignupCodeSent, "1") }

// Email is the address the code verification step talks about: the login
// email when set, otherwise the signup email.
func (s *Store) Email() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v := s.values[KeyAuthEmail]; v != "" {
		return v
	}
	return s.values[KeySignupEmail]
}
