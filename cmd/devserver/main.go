package main

import (
	"context"
	"os"

	"github.com/scapegis/scapegis-cli/internal/buildinfo"
	"github.com/scapegis/scapegis-cli/internal/devserver"
	"github.com/scapegis/scapegis-cli/internal/devserver/config"
	"github.com/scapegis/scapegis-cli/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg := config.LoadConfig()
	logger := logging.New(cfg.Env, os.Stderr)

	app := devserver.NewApp(cfg, logger)
	if err := app.Run(context.Background()); err != nil {
		logger.Error(context.Background(), "devserver stopped", "error", err)
		os.Exit(1)
	}

}
