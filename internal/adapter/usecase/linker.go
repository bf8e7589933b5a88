package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"adsync/internal/core/domain"
	"adsync/internal/core/port"
	"adsync/internal/metrics"
)

const businessKeyPrefix = "business:"

func businessKey(id string) string {
	return businessKeyPrefix + id
}

// Linker resolves the businesses referenced by programs. Lookups go through
// the cache, then the store, then the business API; every fetch outcome is
// written back in a single upsert.
type Linker struct {
	repo    port.BusinessRepository
	fetcher port.BusinessFetcher
	cache   port.Cache
	opts    LinkerOptions
	logger  *slog.Logger
	now     func() time.Time

	flight singleflight.Group
}

// NewLinker wires a Linker.
func NewLinker(repo port.BusinessRepository, fetcher port.BusinessFetcher, cache port.Cache, opts LinkerOptions, logger *slog.Logger) *Linker {
	return &Linker{
		repo:    repo,
		fetcher: fetcher,
		cache:   cache,
		opts:    opts,
		logger:  logger,
		now:     time.Now,
	}
}

type businessOutcome struct {
	id   string
	info domain.BusinessInfo
	err  error
}

// Resolve returns the display attributes of every resolvable business among
// ids. Fetch failures never abort the pass; they are stored as failed rows
// and counted. Only store errors are returned.
func (l *Linker) Resolve(ctx context.Context, creds domain.Credentials, ids []string, progress func(completed, total int)) (map[string]domain.BusinessInfo, domain.BusinessSyncStats, error) {
	var stats domain.BusinessSyncStats
	resolved := make(map[string]domain.BusinessInfo)

	pending := uniqueIDs(ids)
	if len(pending) == 0 {
		return resolved, stats, nil
	}

	pending = l.fromCache(ctx, pending, resolved, &stats)
	if len(pending) == 0 {
		return resolved, stats, nil
	}

	stored, err := l.repo.FindCached(ctx, pending, l.opts.CacheTTL)
	if err != nil {
		return resolved, stats, &domain.PersistenceError{Op: "find businesses", Err: err}
	}
	missing := pending[:0:0]
	for _, id := range pending {
		b, ok := stored[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		info := b.Info()
		resolved[id] = info
		stats.Cached++
		metrics.BusinessFetches.WithLabelValues("cached").Inc()
		l.toCache(ctx, id, info)
	}
	if len(missing) == 0 {
		return resolved, stats, nil
	}

	rows := l.fetchMissing(ctx, creds, missing, resolved, &stats, progress)

	if err = l.repo.UpsertBusinesses(ctx, rows); err != nil {
		return resolved, stats, &domain.PersistenceError{Op: "upsert businesses", Err: err}
	}

	for _, row := range rows {
		if !row.FetchFailed {
			l.toCache(ctx, row.BusinessID, resolved[row.BusinessID])
		}
	}
	return resolved, stats, nil
}

func (l *Linker) fetchMissing(
	ctx context.Context,
	creds domain.Credentials,
	missing []string,
	resolved map[string]domain.BusinessInfo,
	stats *domain.BusinessSyncStats,
	progress func(completed, total int),
) []domain.Business {
	results := make(chan businessOutcome)
	go func() {
		defer close(results)

		var g errgroup.Group
		g.SetLimit(max(l.opts.Concurrency, 1))
		for _, id := range missing {
			g.Go(func() error {
				info, err := l.fetchOne(ctx, creds, id)
				results <- businessOutcome{id: id, info: info, err: err}
				return nil
			})
		}
		_ = g.Wait()
	}()

	now := l.now().UTC()
	every := max(l.opts.ProgressEvery, 1)
	rows := make([]domain.Business, 0, len(missing))
	completed := 0
	for out := range results {
		completed++
		row := domain.Business{BusinessID: out.id, CachedAt: now}

		switch {
		case out.err == nil:
			row.Name = &out.info.Name
			row.URL = optional(out.info.URL)
			row.Alias = optional(out.info.Alias)
			resolved[out.id] = out.info
			stats.Fetched++
			metrics.BusinessFetches.WithLabelValues("ok").Inc()
		case errors.Is(out.err, domain.ErrBusinessNotFound):
			row.FetchFailed = true
			stats.NotFound++
			metrics.BusinessFetches.WithLabelValues("not_found").Inc()
			l.logger.Debug("business not found", slog.String("business_id", out.id))
		default:
			row.FetchFailed = true
			stats.Failed++
			metrics.BusinessFetches.WithLabelValues("failed").Inc()
			l.logger.Warn("business fetch failed",
				slog.String("business_id", out.id),
				slog.Any("error", out.err))
		}
		rows = append(rows, row)

		if progress != nil && (completed%every == 0 || completed == len(missing)) {
			progress(completed, len(missing))
		}
	}
	return rows
}

// fetchOne collapses concurrent lookups of the same business across runs.
// The shared call is detached from the caller's cancellation, so a cancelled
// run never fails the lookup for the runs that joined it; the client
// timeout still bounds it. A cancelled caller stops waiting at once.
func (l *Linker) fetchOne(ctx context.Context, creds domain.Credentials, id string) (domain.BusinessInfo, error) {
	shared := context.WithoutCancel(ctx)
	ch := l.flight.DoChan(id, func() (any, error) {
		info, err := l.fetcher.FetchBusiness(shared, creds, id)
		if err != nil {
			return domain.BusinessInfo{}, err
		}
		if info.Name == "" {
			return domain.BusinessInfo{}, errors.New("business response carries no name")
		}
		return info, nil
	})

	select {
	case <-ctx.Done():
		return domain.BusinessInfo{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return domain.BusinessInfo{}, res.Err
		}
		return res.Val.(domain.BusinessInfo), nil
	}
}

func (l *Linker) fromCache(ctx context.Context, ids []string, resolved map[string]domain.BusinessInfo, stats *domain.BusinessSyncStats) []string {
	if !l.cache.Available() {
		return ids
	}

	rest := ids[:0:0]
	for _, id := range ids {
		raw, ok, err := l.cache.Get(ctx, businessKey(id))
		if err != nil {
			metrics.CacheRequests.WithLabelValues("business", "error").Inc()
			rest = append(rest, id)
			continue
		}
		var info domain.BusinessInfo
		if !ok || json.Unmarshal(raw, &info) != nil || info.Name == "" {
			metrics.CacheRequests.WithLabelValues("business", "miss").Inc()
			rest = append(rest, id)
			continue
		}
		metrics.CacheRequests.WithLabelValues("business", "hit").Inc()
		metrics.BusinessFetches.WithLabelValues("cached").Inc()
		resolved[id] = info
		stats.Cached++
	}
	return rest
}

func (l *Linker) toCache(ctx context.Context, id string, info domain.BusinessInfo) {
	if !l.cache.Available() {
		return
	}
	raw, err := json.Marshal(info)
	if err != nil {
		return
	}
	if err = l.cache.Set(ctx, businessKey(id), raw, l.opts.CacheTTL); err != nil {
		l.logger.Debug("cache business failed", slog.String("business_id", id), slog.Any("error", err))
	}
}

func uniqueIDs(ids []string) []string {
	set := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := set[id]; ok {
			continue
		}
		set[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
