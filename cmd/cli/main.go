package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/scapegis/scapegis-cli/internal/buildinfo"
	"github.com/scapegis/scapegis-cli/internal/client/cli"
	"github.com/scapegis/scapegis-cli/internal/client/config"
	"github.com/scapegis/scapegis-cli/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.New(cfg.Env, os.Stderr)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
