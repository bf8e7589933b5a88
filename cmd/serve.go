package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	httpadapter "adsync/internal/adapter/http"
	"adsync/internal/config"
	"adsync/internal/supervisor"
)

const cacheGCInterval = 10 * time.Minute

func serveCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the periodic sync scheduler",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serveRun(cmd.Context(), *cfg)
		},
	}
}

// serveRun starts the HTTP server and, when enabled, the scheduler under a
// supervisor tree and blocks until ctx is cancelled.
func serveRun(ctx context.Context, cfg config.Config) error {
	logger := newLogger(cfg)

	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	handler := httpadapter.NewHandler(a.sync, a.programs, cfg.HTTP, logger)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           handler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	tree := supervisor.NewTree(logger, cfg.HTTP.ShutdownTimeout)
	tree.AddAPIService(supervisor.NewHTTPService(srv, cfg.HTTP.ShutdownTimeout))
	if cfg.Scheduler.Enabled {
		tree.AddJob(supervisor.NewSyncScheduler(a.sync, cfg.Scheduler.Owners, cfg.Scheduler.Interval, logger))
	}
	if a.badger != nil {
		tree.AddJob(supervisor.NewPeriodic("cache-gc", cacheGCInterval, a.badger.RunGC))
	}

	logger.Info("server listening", slog.Int("port", int(cfg.HTTP.Port)))
	err = tree.Serve(ctx)
	if report, rerr := tree.UnstoppedServiceReport(); rerr == nil && len(report) > 0 {
		logger.Warn("services did not stop in time", slog.Int("count", len(report)))
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("server gracefully stopped")
	return nil
}
