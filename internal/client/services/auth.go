// Package services contains application services for the ScapeGIS client.
// This file defines the authentication service: the identity backend calls
// plus the durable token bookkeeping that goes with them.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/scapegis/scapegis-cli/internal/client/api"
	"github.com/scapegis/scapegis-cli/internal/client/models"
	"github.com/scapegis/scapegis-cli/internal/client/repositories/tokens"
	"github.com/scapegis/scapegis-cli/internal/logging"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Token-issuing calls (SignupComplete, Login, VerifyOTP, GoogleOAuth,
//     AdminVerifyMagicLink) persist the issued pair as their last step and
//     fail if it cannot be stored.
//   - Logout always clears the stored pair, even when the backend call fails.
//   - Passwords and codes are passed through and never stored.
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	SignupInit(ctx context.Context, email string) (*models.SignupInitResponse, error)
	SignupPassword(ctx context.Context, email, password string) (*models.SignupPasswordResponse, error)
	SignupVerify(ctx context.Context, email, code string) (string, error)
	SignupComplete(ctx context.Context, email, tempToken, name, birthday string) error

	Login(ctx context.Context, email, password string) error
	RequestOTP(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, code string) error
	GoogleOAuth(ctx context.Context, idToken string) error

	AdminRequestMagicLink(ctx context.Context, email string) (string, error)
	AdminVerifyMagicLink(ctx context.Context, token string) error

	CurrentUser(ctx context.Context) (*models.User, error)
	Permissions(ctx context.Context) ([]string, error)
	HasSession(ctx context.Context) (bool, error)
	Logout(ctx context.Context) error
	ClearTokens(ctx context.Context) error

	WorkspaceID(ctx context.Context) (string, error)
	SetWorkspaceID(ctx context.Context, id string) error

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// authService is the concrete AuthService backed by a remote Client and the
// local token repository.
type authService struct {
	client api.Client
	tokens tokens.Repository
	log    logging.Logger
}

// NewAuthService constructs an AuthService bound to the given API client and
// token repository.
func NewAuthService(client api.Client, repo tokens.Repository, log logging.Logger) AuthService {
	if log == nil {
		log = logging.Nop()
	}
	return &authService{client: client, tokens: repo, log: log}
}

func (a *authService) SignupInit(ctx context.Context, email string) (*models.SignupInitResponse, error) {
	return a.client.SignupInit(ctx, email)
}

func (a *authService) SignupPassword(ctx context.Context, email, password string) (*models.SignupPasswordResponse, error) {
	return a.client.SignupPassword(ctx, email, password)
}

// SignupVerify returns the temp token that authorizes profile completion.
func (a *authService) SignupVerify(ctx context.Context, email, code string) (string, error) {
	resp, err := a.client.SignupVerify(ctx, email, code)
	if err != nil {
		return "", err
	}
	if resp.TempToken == "" {
		return "", errors.New("signup verify: response carries no temp token")
	}
	return resp.TempToken, nil
}

func (a *authService) SignupComplete(ctx context.Context, email, tempToken, name, birthday string) error {
	resp, err := a.client.SignupComplete(ctx, models.SignupCompleteRequest{
		Email:     email,
		TempToken: tempToken,
		Name:      name,
		Birthday:  birthday,
	})
	return a.store(ctx, "signup complete", resp, err)
}

func (a *authService) Login(ctx context.Context, email, password string) error {
	resp, err := a.client.Login(ctx, email, password)
	return a.store(ctx, "login", resp, err)
}

func (a *authService) RequestOTP(ctx context.Context, email string) error {
	_, err := a.client.RequestOTP(ctx, email)
	return err
}

func (a *authService) VerifyOTP(ctx context.Context, email, code string) error {
	resp, err := a.client.VerifyOTP(ctx, email, code)
	return a.store(ctx, "verify otp", resp, err)
}

func (a *authService) GoogleOAuth(ctx context.Context, idToken string) error {
	resp, err := a.client.GoogleOAuth(ctx, idToken)
	return a.store(ctx, "google oauth", resp, err)
}

// AdminRequestMagicLink returns the backend acknowledgement message.
func (a *authService) AdminRequestMagicLink(ctx context.Context, email string) (string, error) {
	resp, err := a.client.AdminRequestMagicLink(ctx, email)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (a *authService) AdminVerifyMagicLink(ctx context.Context, token string) error {
	resp, err := a.client.AdminVerifyMagicLink(ctx, token)
	return a.store(ctx, "admin verify", resp, err)
}

// store persists a freshly issued pair. The API error, if any, is returned
// unchanged so callers can still classify it.
func (a *authService) store(ctx context.Context, op string, resp *models.TokensResponse, err error) error {
	if err != nil {
		return err
	}
	if err := a.tokens.SaveTokens(ctx, resp.Token()); err != nil {
		return fmt.Errorf("%s: save tokens: %w", op, err)
	}
	a.log.Debug(ctx, "tokens stored", "op", op)
	return nil
}

func (a *authService) CurrentUser(ctx context.Context) (*models.User, error) {
	return a.client.CurrentUser(ctx)
}

func (a *authService) Permissions(ctx context.Context) ([]string, error) {
	return a.client.Permissions(ctx)
}

// HasSession reports whether an access token is stored.
func (a *authService) HasSession(ctx context.Context) (bool, error) {
	tok, err := a.tokens.Tokens(ctx)
	if err != nil {
		return false, err
	}
	return tok != nil, nil
}

// Logout invalidates the session server-side when possible and always clears
// the local pair.
func (a *authService) Logout(ctx context.Context) error {
	if err := a.client.Logout(ctx); err != nil {
		a.log.Warn(ctx, "backend logout failed", "error", err)
	}
	return a.ClearTokens(ctx)
}

func (a *authService) ClearTokens(ctx context.Context) error {
	if err := a.tokens.ClearTokens(ctx); err != nil {
		return fmt.Errorf("clear tokens: %w", err)
	}
	return nil
}

func (a *authService) WorkspaceID(ctx context.Context) (string, error) {
	return a.tokens.WorkspaceID(ctx)
}

func (a *authService) SetWorkspaceID(ctx context.Context, id string) error {
	return a.tokens.SetWorkspaceID(ctx, id)
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// Close releases resources held by the underlying client.
func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
