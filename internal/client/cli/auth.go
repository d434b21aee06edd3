package cli

import (
	"context"
	"errors"
	"time"

	"github.com/scapegis/scapegis-cli/internal/client/authstate"
	"github.com/scapegis/scapegis-cli/internal/client/flow"
	"github.com/scapegis/scapegis-cli/internal/client/models"
	"github.com/scapegis/scapegis-cli/internal/client/session"
	"github.com/scapegis/scapegis-cli/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// sleepFn waits out Outcome.RedirectAfter; tests replace it.
var sleepFn = func(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

var errCancelled = errors.New("cancelled")

// guestOnly reports whether a sign-in command may run.
func (a *App) guestOnly() bool {
	d := a.state.GuestOnly()
	if d.Verdict == authstate.RedirectDashboard {
		printlnFn("Already signed in. Your dashboard is", d.Route)
		return false
	}
	return true
}

// Signup asks for an email and walks the user through whatever the backend
// decides for it: password creation, a login code or an admin magic link.
func (a *App) Signup(ctx context.Context) error {
	if !a.guestOnly() {
		return nil
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	return a.follow(ctx, a.flow.SubmitEmail(ctx, email))
}

// ResumeCode goes back to the code step of a flow started earlier in this
// process.
func (a *App) ResumeCode(ctx context.Context) error {
	if !a.guestOnly() {
		return nil
	}
	draft := a.flow.Draft()
	if draft.Email() == "" {
		return a.follow(ctx, flow.Outcome{
			Step:  models.StepEmail,
			Route: models.RouteSignup,
			Err:   &session.MissingError{Key: session.KeySignupEmail},
		})
	}
	if draft.FlowType() == models.FlowSignup {
		switch {
		case draft.TempToken() != "":
			return a.follow(ctx, flow.Outcome{Step: models.StepProfile, Route: models.RouteSignupProfile})
		case !draft.SignupCodeSent():
			return a.follow(ctx, flow.Outcome{Step: models.StepPassword, Route: models.RouteSignupPassword})
		}
	}
	return a.follow(ctx, flow.Outcome{Step: models.StepOTP, Route: models.RouteSignupVerify})
}

// Login prompts for email and password.
func (a *App) Login(ctx context.Context) error {
	if !a.guestOnly() {
		return nil
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	out := a.flow.LoginWithPassword(ctx, email, string(password))
	if out.Step != models.StepDone {
		a.render(out)
		return nil
	}
	return a.follow(ctx, out)
}

// Admin requests a magic link for an admin email.
func (a *App) Admin(ctx context.Context) error {
	if !a.guestOnly() {
		return nil
	}
	email, err := getSimpleText(a.reader, "Enter admin email", a.out)
	if err != nil {
		return err
	}
	return a.follow(ctx, a.flow.RequestAdminLink(ctx, email))
}

// VerifyLink consumes the token of an admin magic link.
func (a *App) VerifyLink(ctx context.Context, token string) error {
	return a.follow(ctx, a.flow.VerifyAdminLink(ctx, token))
}

// Logout ends the session.
func (a *App) Logout(ctx context.Context) error {
	out := a.flow.Logout(ctx)
	a.render(out)
	if out.Err == nil {
		printlnFn("Signed out.")
	}
	return out.Err
}

// follow renders out and keeps prompting for whatever the next step needs
// until the flow stops at a screen that waits for something outside the
// terminal, or finishes.
func (a *App) follow(ctx context.Context, out flow.Outcome) error {
	for {
		a.render(out)

		switch out.Step {
		case models.StepPassword:
			next, err := a.createPassword(ctx)
			if err != nil {
				return err
			}
			out = next

		case models.StepOTP:
			next, err := a.enterCode(ctx)
			if err != nil {
				return err
			}
			out = next

		case models.StepProfile:
			next, err := a.completeProfile(ctx)
			if err != nil {
				return err
			}
			out = next

		case models.StepDone:
			if out.RedirectAfter > 0 {
				sleepFn(ctx, out.RedirectAfter)
			}
			if out.Route != models.RouteNone {
				printlnFn("->", out.Route)
			}
			return nil

		default:
			if errors.Is(out.Err, session.ErrDraftMissing) {
				printlnFn("Nothing in progress. Type 'signup' to start.")
			}
			return nil
		}
	}
}

func (a *App) createPassword(ctx context.Context) (flow.Outcome, error) {
	printlnFn("Create a password (at least 8 characters, empty to cancel)")
	password, err := getPassword(a.out)
	if err != nil {
		return flow.Outcome{}, err
	}
	defer common.WipeByteArray(password)
	if len(password) == 0 {
		return flow.Outcome{}, errCancelled
	}
	return a.flow.SubmitPassword(ctx, string(password)), nil
}

func (a *App) completeProfile(ctx context.Context) (flow.Outcome, error) {
	name, err := getSimpleText(a.reader, "Full name ('cancel' to stop)", a.out)
	if err != nil {
		return flow.Outcome{}, err
	}
	if name == "cancel" {
		return flow.Outcome{}, errCancelled
	}
	birthday, err := getSimpleText(a.reader, "Birthday (YYYY-MM-DD)", a.out)
	if err != nil {
		return flow.Outcome{}, err
	}
	return a.flow.CompleteProfile(ctx, name, birthday), nil
}

// render prints the user-facing part of an outcome.
func (a *App) render(out flow.Outcome) {
	if out.Ignored {
		if errors.Is(out.Err, flow.ErrThrottled) {
			printlnFn("Please wait a moment before trying again.")
		}
		return
	}
	if out.Info != "" {
		printlnFn(out.Info)
	}
	if out.Message != "" {
		printlnFn("Error:", out.Message)
	}
	if out.Step == models.StepDone && out.User != nil {
		printlnFn("Signed in as", out.User.Email, "("+string(out.User.Role)+")")
	}
}
