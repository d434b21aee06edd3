package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/scapegis/scapegis-cli/internal/client/api"
	"github.com/scapegis/scapegis-cli/internal/client/authstate"
	"github.com/scapegis/scapegis-cli/internal/client/config"
	"github.com/scapegis/scapegis-cli/internal/client/flow"
	"github.com/scapegis/scapegis-cli/internal/client/services"
	"github.com/scapegis/scapegis-cli/internal/client/session"
	"github.com/scapegis/scapegis-cli/internal/client/storage"
	"github.com/scapegis/scapegis-cli/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config      *config.Config
	authService services.AuthService
	state       *authstate.State
	flow        *flow.Controller
	log         logging.Logger
	reader      *bufio.Reader
	out         io.Writer
	db          io.Closer

	mu   sync.Mutex
	Mode Mode
}

// NewApp opens the local database and wires the API client, auth service,
// auth state and flow controller together.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	st, err := storage.Open(ctx, c.DBPath)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	apiClient := api.NewHTTPClient(c.APIBaseURL, st.Tokens,
		api.WithTimeout(c.RequestTimeout),
		api.WithLogger(log.With("component", "api")),
	)

	as := services.NewAuthService(apiClient, st.Tokens, log)
	state := authstate.New(as, log)
	apiClient.SetOnUnauthenticated(state.Reset)

	fc := flow.NewController(as, session.NewStore(), state, log, flow.Config{
		VerifyThrottle: c.VerifyThrottle,
		RedirectDelay:  c.MagicLinkRedirectDelay,
	})

	app := newApp(c, as, state, fc, log, os.Stdin, os.Stdout)
	app.db = st
	return app, nil
}

func newApp(c *config.Config, as services.AuthService, state *authstate.State, fc *flow.Controller, log logging.Logger, in io.Reader, out io.Writer) *App {
	if log == nil {
		log = logging.Nop()
	}
	return &App{
		config:      c,
		authService: as,
		state:       state,
		flow:        fc,
		log:         log,
		reader:      bufio.NewReader(in),
		out:         out,
	}
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Mode != mode {
		a.Mode = mode
		a.log.Info(context.Background(), fmt.Sprintf("Switched to %s mode", mode))
	}
}

func (a *App) mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Mode
}

// Run resolves the stored session, starts the REPL and closes the auth
// service and the local database when the user leaves.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.authService.Close(ctx); err != nil {
			a.log.Warn(ctx, "close", "error", err)
		}
		if a.db == nil {
			return
		}
		if err := a.db.Close(); err != nil {
			a.log.Warn(ctx, "close database", "error", err)
		}
	}()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.state.Snapshot().IsAuthenticated
}

// StartOnlineStatusWatcher pings the backend every interval and switches the
// mode on each transition.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	err := a.authService.Ping(pingCtx)
	cancel()

	if err != nil {
		if a.mode() != ModeOffline {
			a.setMode(ModeOffline)
		}
		return
	}
	if a.mode() != ModeOnline {
		a.setMode(ModeOnline)
	}
}
