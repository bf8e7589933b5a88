package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"adsync/internal/adapter/cache"
	"adsync/internal/adapter/partner"
	"adsync/internal/adapter/postgres"
	"adsync/internal/adapter/usecase"
	"adsync/internal/config"
	"adsync/internal/core/port"
	"adsync/internal/db"
)

// app holds the wired use cases and the resources they depend on.
type app struct {
	pool     *pgxpool.Pool
	badger   *cache.Badger
	sync     *usecase.SyncService
	programs *usecase.ProgramService
}

func newApp(ctx context.Context, cfg config.Config, logger *slog.Logger) (*app, error) {
	if cfg.Psql.RunMigrations {
		if err := db.Migrate(cfg.Psql.Addr.String()); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
		logger.Info("migrations applied successfully")
	}

	pool, err := db.NewPostgresPool(ctx, cfg.Psql)
	if err != nil {
		return nil, fmt.Errorf("database connection: %w", err)
	}
	a := &app{pool: pool}

	var store port.Cache = cache.Unavailable{}
	if cfg.Cache.Enabled {
		a.badger, err = cache.OpenBadger(cfg.Cache.Path, logger)
		if err != nil {
			// The cache is advisory; run without it.
			logger.Warn("cache disabled", slog.Any("error", err))
		} else {
			store = a.badger
		}
	}

	programRepo := postgres.NewProgramRepository(pool)
	businessRepo := postgres.NewBusinessRepository(pool)

	linker := usecase.NewLinker(
		businessRepo,
		partner.NewBusinessClient(cfg.Business, logger),
		store,
		usecase.LinkerOptions{
			Concurrency:   cfg.Business.Concurrency,
			CacheTTL:      cfg.Cache.TTL,
			ProgressEvery: cfg.Partner.ProgressEvery,
		},
		logger,
	)
	a.sync = usecase.NewSyncService(
		programRepo,
		partner.NewProgramClient(cfg.Partner, logger),
		partner.NewStaticCredentials(cfg.Partner, cfg.Business),
		store,
		linker,
		usecase.SyncOptions{
			PageSize:      cfg.Partner.PageSize,
			Concurrency:   cfg.Partner.Concurrency,
			RetryAttempts: cfg.Partner.RetryAttempts,
			RetryDelay:    cfg.Partner.RetryDelay,
			ProgressEvery: cfg.Partner.ProgressEvery,
			IDCacheTTL:    cfg.Cache.TTL,
		},
		logger,
	)
	a.programs = usecase.NewProgramService(programRepo)
	return a, nil
}

func (a *app) Close() {
	if a.badger != nil {
		_ = a.badger.Close()
	}
	a.pool.Close()
}
