package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"adsync/internal/config"
)

const programName = "adsync"

// main is the entry point of adsync. Every command loads configuration from
// environment variables first; the root command behaves like serve.
func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var cfg config.Config
	rootCmd := &cobra.Command{
		Use:           programName,
		Short:         "Mirror partner advertising programs into PostgreSQL",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cfg, err = config.Load()
			return err
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serveRun(cmd.Context(), cfg)
		},
	}

	rootCmd.AddCommand(serveCommand(&cfg))
	rootCmd.AddCommand(migrateCommand(&cfg))
	rootCmd.AddCommand(syncCommand(&cfg))

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		slog.Error("adsync failed", slog.Any("error", err))
		cancel()
		os.Exit(1)
	}
}

// newLogger initialises the structured logger based on configuration.
func newLogger(cfg config.Config) *slog.Logger {
	logger := slog.New(cfg.Log.Handler(os.Stdout)).With(slog.String("component", programName))
	slog.SetDefault(logger)
	return logger
}
