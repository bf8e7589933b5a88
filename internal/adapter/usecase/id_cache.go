package usecase

import (
	"context"
	"log/slog"

	"github.com/goccy/go-json"

	"adsync/internal/core/domain"
	"adsync/internal/metrics"
)

const programIDsKeyPrefix = "programs:ids:"

func programIDsKey(owner string) string {
	return programIDsKeyPrefix + owner
}

// localIDs returns the program ids stored for owner, served from the cache
// when possible.
func (s *SyncService) localIDs(ctx context.Context, owner string) (domain.IDSet, error) {
	if s.cache.Available() {
		raw, ok, err := s.cache.Get(ctx, programIDsKey(owner))
		switch {
		case err != nil:
			metrics.CacheRequests.WithLabelValues("program_ids", "error").Inc()
			s.logger.Debug("id cache read failed", slog.String("owner", owner), slog.Any("error", err))
		case ok:
			var ids []string
			if err = json.Unmarshal(raw, &ids); err == nil {
				metrics.CacheRequests.WithLabelValues("program_ids", "hit").Inc()
				return domain.NewIDSet(ids...), nil
			}
			metrics.CacheRequests.WithLabelValues("program_ids", "error").Inc()
		default:
			metrics.CacheRequests.WithLabelValues("program_ids", "miss").Inc()
		}
	}

	ids, err := s.programs.ListProgramIDs(ctx, owner)
	if err != nil {
		return nil, err
	}
	return domain.NewIDSet(ids...), nil
}

// storeIDs overwrites the owner's id cache with the authoritative set.
func (s *SyncService) storeIDs(ctx context.Context, owner string, ids domain.IDSet) {
	if !s.cache.Available() {
		return
	}
	raw, err := json.Marshal(ids.Sorted())
	if err != nil {
		return
	}
	if err = s.cache.Set(ctx, programIDsKey(owner), raw, s.opts.IDCacheTTL); err != nil {
		s.logger.Warn("id cache write failed", slog.String("owner", owner), slog.Any("error", err))
	}
}

func (s *SyncService) invalidateIDs(ctx context.Context, owner string) {
	if !s.cache.Available() {
		return
	}
	if err := s.cache.Invalidate(ctx, programIDsKey(owner)); err != nil {
		s.logger.Warn("id cache invalidate failed", slog.String("owner", owner), slog.Any("error", err))
	}
}
