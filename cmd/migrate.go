package main

import (
	"github.com/spf13/cobra"

	"adsync/internal/config"
	"adsync/internal/db"
)

func migrateCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(_ *cobra.Command, _ []string) error {
			logger := newLogger(*cfg)
			if err := db.Migrate(cfg.Psql.Addr.String()); err != nil {
				return err
			}
			logger.Info("migrations applied successfully")
			return nil
		},
	}
}
