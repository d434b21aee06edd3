// Package authstate holds who is signed in for the lifetime of the client
// process and answers route-guard questions about it.
//
// A State is created once at startup and passed to whatever needs it; there
// is no package-level instance.
package authstate

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/scapegis/scapegis-cli/internal/client/models"
	"github.com/scapegis/scapegis-cli/internal/logging"
)

// PermissionsTTL is how long a fetched permission list is reused.
const PermissionsTTL = 5 * time.Minute

// Backend is the part of the auth service the state needs.
type Backend interface {
	CurrentUser(ctx context.Context) (*models.User, error)
	Permissions(ctx context.Context) ([]string, error)
	HasSession(ctx context.Context) (bool, error)
	ClearTokens(ctx context.Context) error
}

// Snapshot is a consistent copy of the state for synchronous readers.
type Snapshot struct {
	User            *models.User
	IsAuthenticated bool
	IsInitialized   bool
}

type State struct {
	backend Backend
	log     logging.Logger
	now     func() time.Time

	mu            sync.RWMutex
	user          *models.User
	initialized   bool
	perms         []string
	permsUserID   string
	permsLoadedAt time.Time
}

func New(backend Backend, log logging.Logger) *State {
	if log == nil {
		log = logging.Nop()
	}
	return &State{backend: backend, log: log, now: time.Now}
}

func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{IsAuthenticated: s.user != nil, IsInitialized: s.initialized}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	return snap
}

// SetUser replaces the current user. nil signs the process out without
// touching stored tokens.
func (s *State) SetUser(u *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setUserLocked(u)
}

func (s *State) setUserLocked(u *models.User) {
	if s.user == nil || u == nil || s.user.ID != u.ID {
		s.perms, s.permsUserID, s.permsLoadedAt = nil, "", time.Time{}
	}
	if u != nil {
		cp := *u
		s.user = &cp
		return
	}
	s.user = nil
}

// Reset drops the user. It is the hook the API client calls after a failed
// token refresh has already cleared the stored pair.
func (s *State) Reset(ctx context.Context) {
	s.SetUser(nil)
	s.log.Info(ctx, "auth state reset")
}

// Logout clears the stored tokens and resets the state. The state is reset
// even if clearing fails.
func (s *State) Logout(ctx context.Context) error {
	err := s.backend.ClearTokens(ctx)
	s.SetUser(nil)
	return err
}

// InitializeAuth resolves the user from stored credentials once. Any failure
// leaves the process anonymous; it never returns an error.
func (s *State) InitializeAuth(ctx context.Context) {
	s.mu.RLock()
	done := s.initialized
	s.mu.RUnlock()
	if done {
		return
	}

	var user *models.User
	if ok, err := s.backend.HasSession(ctx); err != nil {
		s.log.Warn(ctx, "read stored session", "error", err)
	} else if ok {
		u, err := s.backend.CurrentUser(ctx)
		if err != nil {
			s.log.Info(ctx, "stored session not usable", "error", err)
		} else {
			user = u
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initialized {
		return
	}
	s.setUserLocked(user)
	s.initialized = true
}

// Hydrate fetches the current user after a token-issuing call and installs
// it.
func (s *State) Hydrate(ctx context.Context) (*models.User, error) {
	u, err := s.backend.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.setUserLocked(u)
	s.initialized = true
	s.mu.Unlock()
	return u, nil
}

// HasRole reports whether the signed-in user has one of roles.
func (s *State) HasRole(roles ...models.Role) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && slices.Contains(roles, s.user.Role)
}

// Permissions returns the signed-in user's permissions, fetching them at
// most once per PermissionsTTL.
func (s *State) Permissions(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	user := s.user
	cached := s.perms != nil && user != nil && s.permsUserID == user.ID && s.now().Sub(s.permsLoadedAt) < PermissionsTTL
	perms := s.perms
	s.mu.RUnlock()

	if user == nil {
		return nil, nil
	}
	if cached {
		return slices.Clone(perms), nil
	}

	fetched, err := s.backend.Permissions(ctx)
	if err != nil {
		return nil, err
	}
	if fetched == nil {
		fetched = []string{}
	}

	s.mu.Lock()
	if s.user != nil && s.user.ID == user.ID {
		s.perms = slices.Clone(fetched)
		s.permsUserID = user.ID
		s.permsLoadedAt = s.now()
	}
	s.mu.Unlock()
	return slices.Clone(fetched), nil
}

// HasPermission reports whether the user holds every one of perms.
func (s *State) HasPermission(ctx context.Context, perms ...string) (bool, error) {
	have, err := s.Permissions(ctx)
	if err != nil {
		return false, err
	}
	for _, p := range perms {
		if !slices.Contains(have, p) {
			return false, nil
		}
	}
	return true, nil
}

// HasAnyPermission reports whether the user holds at least one of perms.
func (s *State) HasAnyPermission(ctx context.Context, perms ...string) (bool, error) {
	have, err := s.Permissions(ctx)
	if err != nil {
		return false, err
	}
	for _, p := range perms {
		if slices.Contains(have, p) {
			return true, nil
		}
	}
	return false, nil
}
