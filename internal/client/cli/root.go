package cli

import (
	"context"
	"fmt"
	"strings"
)

func (a *App) getStatus() string {
	var parts []string
	if snap := a.state.Snapshot(); snap.User != nil {
		parts = append(parts, snap.User.Email, string(snap.User.Role))
	}
	if m := a.mode(); m != "" {
		parts = append(parts, string(m))
	}
	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, " "))
}

// Root resolves any stored session, starts the connectivity watcher and
// blocks in the REPL until the user exits.
func (a *App) Root(ctx context.Context) {
	a.log.Info(ctx, "Welcome to ScapeGIS CLI (type 'help' for commands)")

	a.state.InitializeAuth(ctx)
	if snap := a.state.Snapshot(); snap.User != nil {
		printlnFn("Signed in as", snap.User.Email)
	}

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.StartOnlineStatusWatcher(watchCtx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}
