// Command ratingctl drives the rating API from a terminal.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/ratingdesk/internal/adapters/gateway"
	"github.com/okian/ratingdesk/internal/app"
	"github.com/okian/ratingdesk/internal/cli"
	"github.com/okian/ratingdesk/internal/config"
	"github.com/okian/ratingdesk/pkg/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return 1
	}

	// Results go to stdout; keep logs off it.
	if err := logger.Init(logger.WithWriter(os.Stderr), logger.WithFormat(cfg.LogFormat)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return 1
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		_ = logger.SetLevelString("info")
	}

	log := logger.Get()
	router := app.New(
		gateway.New(gateway.WithLogger(log.Named("gateway"))),
		app.WithLogger(log.Named("router")),
		app.WithDefaultBaseURL(cfg.APIBaseURL),
	)

	if err := cli.NewRootCommand(router).ExecuteContext(ctx); err != nil {
		os.Stderr.WriteString("ratingctl: " + err.Error() + "\n")
		return 1
	}
	return 0
}
