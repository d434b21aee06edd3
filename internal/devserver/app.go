// Package devserver assembles the development identity backend: an
// in-memory account store behind the REST contract the CLI speaks.
package devserver

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/scapegis/scapegis-cli/internal/devserver/config"
	"github.com/scapegis/scapegis-cli/internal/devserver/httpapi"
	"github.com/scapegis/scapegis-cli/internal/devserver/repositories"
	"github.com/scapegis/scapegis-cli/internal/devserver/services"
	"github.com/scapegis/scapegis-cli/internal/logging"
)

type App struct {
	config   *config.Config
	accounts *services.AccountService
	server   *httpapi.Server
	log      logging.Logger
}

func NewApp(cfg *config.Config, log logging.Logger) *App {
	accounts := services.NewAccountService(
		repositories.NewInMemoryRepository(),
		services.NewLogNotifier(log),
		services.OptionsFromConfig(cfg),
		log,
	)
	router := httpapi.NewRouter(httpapi.NewHandlers(accounts, log), httpapi.Options{
		Logger:   log,
		BasePath: cfg.BasePath,
	})
	return &App{
		config:   cfg,
		accounts: accounts,
		server:   httpapi.NewServer(cfg.Addr, router, log),
		log:      log,
	}
}

func (a *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case s := <-sigs:
			a.log.Info(ctx, "signal received", "signal", s.String())
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

// Run serves until ctx is cancelled or the process is signalled.
func (a *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()
	a.initSignalHandler(ctx, cancelFunc)

	a.log.Info(ctx, "starting devserver",
		"addr", a.config.Addr,
		"base_path", a.config.BasePath,
		"admin_domain", a.config.AdminDomain,
	)
	if a.config.JWTSecret == "secretKey" {
		a.log.Warn(ctx, "using the default JWT secret")
	}
	return a.server.Run(ctx)
}
