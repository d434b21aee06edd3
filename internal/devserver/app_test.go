package devserver

import (
	"context"
	"testing"
	"time"

	"github.com/scapegis/scapegis-cli/internal/devserver/config"
	"github.com/scapegis/scapegis-cli/internal/logging"
	"github.com/stretchr/testify/require"
)

func TestApp_RunStopsOnCancel(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.Addr = "127.0.0.1:0"

	app := NewApp(cfg, logging.Nop())
	require.NotNil(t, app.accounts)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	require.NoError(t, app.Run(ctx))
}
