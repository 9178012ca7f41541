// Command httpd serves the comment-tagger HTTP API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	infralogger "github.com/euisuk-chung/gemini-hak-creator-hub/infrastructure/logger"
	"github.com/euisuk-chung/gemini-hak-creator-hub/infrastructure/profiling"
	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/analyzer"
	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/api"
	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/bootstrap"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return 1
	}

	logger, err := bootstrap.CreateLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	comps, err := bootstrap.NewComponents(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize service", infralogger.Error(err))
		return 1
	}
	defer comps.Close()

	if pprofServer := profiling.Start(cfg.Profiling, logger); pprofServer != nil {
		defer func() { _ = pprofServer.Close() }()
	}

	opts := api.ServerOptions{
		Metrics:     comps.Telemetry.Handler(),
		HTTPMetrics: comps.HTTPMetrics,
	}
	if comps.Redis != nil {
		opts.RedisPing = func() error { return comps.Redis.Ping(context.Background()).Err() }
	}
	if guarded, ok := comps.Analyzer.(*analyzer.Guarded); ok {
		opts.Breaker = guarded
	}

	server := api.NewServer(api.NewHandler(comps.Pipeline, logger), cfg, logger, opts)
	if err = server.Run(ctx); err != nil {
		logger.Error("Server error", infralogger.Error(err))
		return 1
	}
	return 0
}
