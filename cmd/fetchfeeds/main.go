package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/all-man/site-feeds/internal/app"
	"github.com/all-man/site-feeds/internal/config"
	"github.com/all-man/site-feeds/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fetchfeeds failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	logger.InfoObj("fetchfeeds starting", "config", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	snapshotter, err := app.NewSnapshotter(ctx, cfg, log)
	if err != nil {
		logger.ErrorObj("failed to initialize snapshotter", "error", err)
		return err
	}

	return snapshotter.Run(ctx)
}
