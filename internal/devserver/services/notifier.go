package services

import (
	"context"

	"github.com/scapegis/scapegis-cli/internal/devserver/models"
	"github.com/scapegis/scapegis-cli/internal/logging"
)

// Notifier delivers verification codes and magic links to the account owner.
type Notifier interface {
	SendCode(ctx context.Context, email string, purpose models.CodePurpose, code string) error
	SendMagicLink(ctx context.Context, email, link string) error
}

// LogNotifier writes codes and links to the log instead of sending mail.
type LogNotifier struct {
	log logging.Logger
}

func NewLogNotifier(log logging.Logger) *LogNotifier {
	return &LogNotifier{log: log.With("component", "notifier")}
}

func (n *LogNotifier) SendCode(ctx context.Context, email string, purpose models.CodePurpose, code string) error {
	n.log.Info(ctx, "verification code issued", "email", email, "purpose", purpose, "code", code)
	return nil
}

func (n *LogNotifier) SendMagicLink(ctx context.Context, email, link string) error {
	n.log.Info(ctx, "magic link issued", "email", email, "link", link)
	return nil
}
