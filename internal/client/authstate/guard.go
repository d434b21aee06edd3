package authstate

import (
	"slices"

	"github.com/scapegis/scapegis-cli/internal/client/models"
)

type Verdict int

const (
	// Loading means the state is not initialized yet; show a neutral screen.
	Loading Verdict = iota
	RedirectLogin
	RedirectDashboard
	Allow
)

func (v Verdict) String() string {
	switch v {
	case Loading:
		return "loading"
	case RedirectLogin:
		return "redirect-login"
	case RedirectDashboard:
		return "redirect-dashboard"
	case Allow:
		return "allow"
	}
	return "unknown"
}

type Decision struct {
	Verdict Verdict
	Route   models.Route
}

// Guard decides what a protected page does for the current state. With no
// roles given any signed-in user is allowed.
func (s *State) Guard(allowed ...models.Role) Decision {
	snap := s.Snapshot()
	switch {
	case !snap.IsInitialized:
		return Decision{Verdict: Loading}
	case !snap.IsAuthenticated:
		return Decision{Verdict: RedirectLogin, Route: models.RouteLogin}
	case len(allowed) > 0 && !slices.Contains(allowed, snap.User.Role):
		return Decision{Verdict: RedirectDashboard, Route: snap.User.Role.DashboardRoute()}
	}
	return Decision{Verdict: Allow}
}

// GuestOnly is the guard of the login and signup pages: signed-in users are
// sent to their dashboard.
func (s *State) GuestOnly() Decision {
	snap := s.Snapshot()
	switch {
	case !snap.IsInitialized:
		return Decision{Verdict: Loading}
	case snap.IsAuthenticated:
		return Decision{Verdict: RedirectDashboard, Route: snap.User.Role.DashboardRoute()}
	}
	return Decision{Verdict: Allow}
}
