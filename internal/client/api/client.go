package api

//go:generate mockgen -destination=mocks/mock_client.go -package=mocks github.com/scapegis/scapegis-cli/internal/client/api Client

import (
	"context"

	"github.com/scapegis/scapegis-cli/internal/client/models"
	"golang.org/x/oauth2"
)

type Client interface {
	SignupInit(ctx context.Context, email string) (*models.SignupInitResponse, error)
	SignupPassword(ctx context.Context, email, password string) (*models.SignupPasswordResponse, error)
	SignupVerify(ctx context.Context, email, code string) (*models.SignupVerifyResponse, error)
	SignupComplete(ctx context.Context, req models.SignupCompleteRequest) (*models.TokensResponse, error)

	Login(ctx context.Context, email, password string) (*models.TokensResponse, error)
	RequestOTP(ctx context.Context, email string) (*models.MessageResponse, error)
	VerifyOTP(ctx context.Context, email, code string) (*models.TokensResponse, error)
	GoogleOAuth(ctx context.Context, idToken string) (*models.TokensResponse, error)

	AdminRequestMagicLink(ctx context.Context, email string) (*models.MessageResponse, error)
	AdminVerifyMagicLink(ctx context.Context, token string) (*models.TokensResponse, error)

	CurrentUser(ctx context.Context) (*models.User, error)
	Permissions(ctx context.Context) ([]string, error)
	Refresh(ctx context.Context, refreshToken string) (*models.RefreshResponse, error)
	Logout(ctx context.Context) error

	Ping(ctx context.Context) error
	Close() error
}

// TokenStore is the durable side of the token pair as the HTTP layer sees it.
type TokenStore interface {
	Tokens(ctx context.Context) (*oauth2.Token, error)
	SaveTokens(ctx context.Context, tok *oauth2.Token) error
	ClearTokens(ctx context.Context) error
}
