package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gmubooktrade/booktrade/internal/buildinfo"
	"github.com/gmubooktrade/booktrade/internal/client/cli"
	"github.com/gmubooktrade/booktrade/internal/client/config"
	"github.com/gmubooktrade/booktrade/internal/logging"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Error(ctx, "loading configuration", "error", err)
		os.Exit(1)
	}

	app, err := cli.NewApp(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "initializing application", "error", err)
		os.Exit(1)
	}

	app.Run(ctx)
}
