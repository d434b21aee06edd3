package cli

import (
	"context"
	"fmt"

	"github.com/scapegis/scapegis-cli/internal/client/authstate"
	"github.com/scapegis/scapegis-cli/internal/client/models"
)

// guard reports whether a protected command may run for the current user.
func (a *App) guard(roles ...models.Role) bool {
	switch d := a.state.Guard(roles...); d.Verdict {
	case authstate.Allow:
		return true
	case authstate.Loading:
		printlnFn("Loading...")
	case authstate.RedirectLogin:
		printlnFn("Please sign in first (signup, login, google or admin).")
	case authstate.RedirectDashboard:
		printlnFn("Not available for your role. Your dashboard is", d.Route)
	}
	return false
}

func (a *App) Whoami(ctx context.Context) error {
	if !a.guard() {
		return nil
	}
	u := a.state.Snapshot().User

	printlnFn("ID:      ", u.ID)
	printlnFn("Email:   ", u.Email)
	printlnFn("Name:    ", u.Name)
	printlnFn("Role:    ", u.Role)
	printlnFn("Provider:", u.AuthProvider)
	printlnFn("Verified:", u.IsVerified)
	if u.Birthday != "" {
		printlnFn("Birthday:", u.Birthday)
	}
	return nil
}

// Menu prints the dashboard navigation. With a role given, only users of
// that role may see it.
func (a *App) Menu(ctx context.Context, role string) error {
	var roles []models.Role
	if role != "" {
		r, err := models.ParseRole(role)
		if err != nil {
			return err
		}
		roles = append(roles, r)
	}
	if !a.guard(roles...) {
		return nil
	}

	u := a.state.Snapshot().User
	for _, item := range u.Role.NavItems() {
		printlnFn(fmt.Sprintf("  %-16s %s", item.Label, item.Href))
	}
	return nil
}

func (a *App) Permissions(ctx context.Context) error {
	if !a.guard() {
		return nil
	}
	perms, err := a.state.Permissions(ctx)
	if err != nil {
		return err
	}
	if len(perms) == 0 {
		printlnFn("(no permissions)")
		return nil
	}
	for _, p := range perms {
		printlnFn(" -", p)
	}
	return nil
}

// Workspace shows the active workspace id, or sets it when id is given.
func (a *App) Workspace(ctx context.Context, id string) error {
	if !a.guard() {
		return nil
	}
	if id == "" {
		ws, err := a.authService.WorkspaceID(ctx)
		if err != nil {
			return err
		}
		if ws == "" {
			printlnFn("(no workspace selected)")
			return nil
		}
		printlnFn("Workspace:", ws)
		return nil
	}

	if err := a.authService.SetWorkspaceID(ctx, id); err != nil {
		return err
	}
	printlnFn("Workspace set to", id)
	return nil
}
