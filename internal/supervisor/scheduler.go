package supervisor

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"adsync/internal/core/domain"
	"adsync/internal/core/port"
)

// SyncScheduler periodically syncs a fixed list of owners. Owners are
// synced one after another so that a tick never puts more than one run's
// load on the partner API.
type SyncScheduler struct {
	sync     port.SyncUseCase
	owners   []string
	interval time.Duration
	logger   *slog.Logger
}

func NewSyncScheduler(sync port.SyncUseCase, owners []string, interval time.Duration, logger *slog.Logger) *SyncScheduler {
	return &SyncScheduler{
		sync:     sync,
		owners:   owners,
		interval: interval,
		logger:   logger.With(slog.String("service", "sync-scheduler")),
	}
}

// Serve implements suture.Service. The first tick runs immediately.
func (s *SyncScheduler) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		s.tick(ctx)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (s *SyncScheduler) tick(ctx context.Context) {
	for _, owner := range s.owners {
		if ctx.Err() != nil {
			return
		}
		report, err := s.sync.Sync(ctx, port.SyncRequest{Owner: owner}, func(domain.SyncEvent) {})
		switch {
		case errors.Is(err, domain.ErrSyncInProgress):
			s.logger.Debug("sync skipped, run in progress", slog.String("owner", owner))
		case err != nil:
			s.logger.Error("scheduled sync failed", slog.String("owner", owner), slog.Any("error", err))
		default:
			s.logger.Info("scheduled sync complete",
				slog.String("owner", owner),
				slog.String("run_id", report.RunID),
				slog.Int64("added", report.Added),
				slog.Int64("updated", report.Updated),
				slog.Int64("deleted", report.Deleted),
			)
		}
	}
}

func (s *SyncScheduler) String() string {
	return "sync-scheduler"
}
