// Package cli provides the interactive ScapeGIS command-line client.
//
// It wires configuration, local storage, the identity API client, the auth
// state and the step-flow controller, and runs a REPL on top of them. On
// start the stored session (if any) is resolved, a background watcher keeps
// track of backend reachability, and the user signs up or signs in through
// the same email-first flow the web client offers.
//
// Key features:
//   - signup / otp: email-first resolution to password creation, login code or admin link
//   - login, google, admin, verify-link: the other ways in
//   - whoami, menu, permissions, workspace: guarded by the auth state
//   - logout
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
