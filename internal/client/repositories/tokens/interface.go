package tokens

import (
	"context"

	"golang.org/x/oauth2"
)

// Durable storage keys.
const (
	KeyAccessToken        = "access_token"
	KeyRefreshToken       = "refresh_token"
	KeyCurrentWorkspaceID = "current_workspace_id"
)

// Repository is the durable, per-installation key/value store. It holds
// credentials and preferences only; draft values never reach it.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string]string, error)
	Clear(ctx context.Context) error

	// Tokens returns the stored pair, or nil when no access token is stored.
	Tokens(ctx context.Context) (*oauth2.Token, error)
	SaveTokens(ctx context.Context, tok *oauth2.Token) error
	ClearTokens(ctx context.Context) error

	WorkspaceID(ctx context.Context) (string, error)
	SetWorkspaceID(ctx context.Context, id string) error
}
