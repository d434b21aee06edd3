package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Signup(ctx context.Context) error
	ResumeCode(ctx context.Context) error
	Login(ctx context.Context) error
	Google(ctx context.Context) error
	Admin(ctx context.Context) error
	VerifyLink(ctx context.Context, token string) error
	Whoami(ctx context.Context) error
	Menu(ctx context.Context, role string) error
	Permissions(ctx context.Context) error
	Workspace(ctx context.Context, id string) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the ScapeGIS CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF or when the user types "exit" or "quit".
// Interactive commands read their own prompts from the same reader.
//
// Prompt & Commands
//
//	Signed out:
//	  - signup | start     resolve an email and continue with the matching step
//	  - otp                continue entering a code sent earlier
//	  - login              sign in with email and password
//	  - google             sign in with Google
//	  - admin              request an admin magic link
//	  - verify-link <tok>  consume a magic link token
//	  - exit | quit
//
//	Signed in:
//	  - whoami             show the current profile
//	  - menu [role]        show the dashboard navigation
//	  - permissions        list granted permissions
//	  - workspace [id]     show or set the active workspace
//	  - logout
//	  - exit | quit
//
// Errors returned by command handlers are printed and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("scapegis %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, menu [role], permissions, workspace [id], logout, exit")
			} else {
				printlnFn("Available commands: signup, otp, login, google, admin, verify-link <token>, exit")
			}

		case "signup", "start":
			cmdErr = a.Signup(ctx)

		case "otp":
			cmdErr = a.ResumeCode(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "google":
			cmdErr = a.Google(ctx)

		case "admin":
			cmdErr = a.Admin(ctx)

		case "verify-link":
			if len(args) == 0 {
				printlnFn("Usage: verify-link <token>")
				continue
			}
			cmdErr = a.VerifyLink(ctx, args[0])

		case "whoami":
			cmdErr = a.Whoami(ctx)

		case "menu":
			role := ""
			if len(args) > 0 {
				role = args[0]
			}
			cmdErr = a.Menu(ctx, role)

		case "permissions":
			cmdErr = a.Permissions(ctx)

		case "workspace":
			id := ""
			if len(args) > 0 {
				id = args[0]
			}
			cmdErr = a.Workspace(ctx, id)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil && !errors.Is(cmdErr, errCancelled) {
			printlnFn("Error:", cmdErr)
		}
		if errors.Is(err, io.EOF) {
			return
		}
	}
}
