package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/vilarbucks/vilarbucks/internal/buildinfo"
	"github.com/vilarbucks/vilarbucks/internal/client/cli"
	"github.com/vilarbucks/vilarbucks/internal/client/config"
	"github.com/vilarbucks/vilarbucks/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()

	logger, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
