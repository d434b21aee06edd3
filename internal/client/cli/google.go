package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/scapegis/scapegis-cli/internal/client/config"
	"github.com/scapegis/scapegis-cli/internal/client/flow"
	"github.com/scapegis/scapegis-cli/internal/client/models"
	"golang.org/x/oauth2"
)

var googleEndpoint = oauth2.Endpoint{
	AuthURL:       "https://accounts.google.com/o/oauth2/auth",
	TokenURL:      "https://oauth2.googleapis.com/token",
	DeviceAuthURL: "https://oauth2.googleapis.com/device/code",
	AuthStyle:     oauth2.AuthStyleInParams,
}

var errGoogleNotConfigured = errors.New("google sign-in is not configured (set SCAPEGIS_GOOGLE_CLIENT_ID)")

// googleIDToken obtains a Google ID token; tests replace it.
var googleIDToken = deviceFlowIDToken

// deviceFlowIDToken runs the OAuth 2.0 device authorization grant: the user
// opens the verification URL in any browser while the CLI polls for the token.
func deviceFlowIDToken(ctx context.Context, cfg *config.Config, w io.Writer) (string, error) {
	oc := &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		Endpoint:     googleEndpoint,
		Scopes:       []string{"openid", "email", "profile"},
	}

	da, err := oc.DeviceAuth(ctx)
	if err != nil {
		return "", fmt.Errorf("device authorization: %w", err)
	}
	fmt.Fprintf(w, "Open %s and enter the code %s\n", da.VerificationURI, da.UserCode)

	tok, err := oc.DeviceAccessToken(ctx, da)
	if err != nil {
		return "", fmt.Errorf("device token: %w", err)
	}
	idToken, _ := tok.Extra("id_token").(string)
	if idToken == "" {
		return "", errors.New("google returned no id_token")
	}
	return idToken, nil
}

// Google signs in with a Google account.
func (a *App) Google(ctx context.Context) error {
	if !a.guestOnly() {
		return nil
	}
	if a.config.GoogleClientID == "" {
		return errGoogleNotConfigured
	}

	idToken, err := googleIDToken(ctx, a.config, a.out)
	if err != nil {
		a.log.Warn(ctx, "google device flow", "error", err)
		printlnFn("Error:", flow.MsgGoogleFailed)
		return nil
	}

	out := a.flow.LoginWithGoogle(ctx, idToken)
	if out.Step != models.StepDone {
		a.render(out)
		return nil
	}
	return a.follow(ctx, out)
}
