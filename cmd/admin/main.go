package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/transellia/admin-console/internal/admin/cli"
	"github.com/transellia/admin-console/internal/admin/config"
	"github.com/transellia/admin-console/internal/buildinfo"
	"github.com/transellia/admin-console/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.LogBackend, cfg.LogLevel, os.Stderr)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "startup failed", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	app.Run(ctx)
}
