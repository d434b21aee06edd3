// Package repositories stores the development backend's accounts, pending
// signups, one-time codes, magic links and refresh tokens.
package repositories

import (
	"context"
	"errors"

	"github.com/scapegis/scapegis-cli/internal/devserver/models"
)

var ErrAlreadyExists = errors.New("already exists")

// Repository is the storage the account service needs. Lookups that find
// nothing return common.ErrorNotFound. Records are copied in and out.
type Repository interface {
	CreateAccount(ctx context.Context, a *models.Account) error
	AccountByEmail(ctx context.Context, email string) (*models.Account, error)
	AccountByID(ctx context.Context, id string) (*models.Account, error)

	SavePending(ctx context.Context, p *models.PendingSignup) error
	Pending(ctx context.Context, email string) (*models.PendingSignup, error)
	DeletePending(ctx context.Context, email string) error

	SaveCode(ctx context.Context, c *models.OneTimeCode) error
	Code(ctx context.Context, purpose models.CodePurpose, email string) (*models.OneTimeCode, error)

	SaveMagicLink(ctx context.Context, l *models.MagicLink) error
	MagicLink(ctx context.Context, tokenHash string) (*models.MagicLink, error)

	CreateRefreshToken(ctx context.Context, t *models.RefreshToken) error
	FindRefreshToken(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	DeleteRefreshToken(ctx context.Context, tokenHash string) error
	DeleteUserRefreshTokens(ctx context.Context, userID string) error
}
