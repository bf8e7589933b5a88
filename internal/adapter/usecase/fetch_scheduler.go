package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"adsync/internal/core/domain"
	"adsync/internal/core/port"
	"adsync/internal/metrics"
)

// PageCount returns the number of pages needed to cover total records.
func PageCount(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// fetchHooks are invoked from the collecting goroutine only, so callers may
// emit events from them without locking.
type fetchHooks struct {
	OnTotal    func(total, pages int)
	OnProgress func(completed, pages int)
}

// fetchResult is the accumulated outcome of a full remote scan.
type fetchResult struct {
	Programs    []domain.Program
	Total       int
	Pages       int
	PagesFailed int
	// Skipped lists the ids of records the partner returned but that could
	// not be read; see domain.Page.
	Skipped []string
}

// fetchScheduler pages through the partner collection with bounded
// concurrency.
type fetchScheduler struct {
	fetcher port.PageFetcher
	opts    SyncOptions
	logger  *slog.Logger
}

func newFetchScheduler(fetcher port.PageFetcher, opts SyncOptions, logger *slog.Logger) *fetchScheduler {
	return &fetchScheduler{fetcher: fetcher, opts: opts, logger: logger}
}

type pageOutcome struct {
	page     int
	programs []domain.Program
	skipped  []string
	err      error
}

// FetchAll reads page 0 to learn the total, then fetches the remaining
// pages concurrently. Records are accumulated in completion order. A failed
// page other than the first is logged and dropped.
func (s *fetchScheduler) FetchAll(ctx context.Context, creds domain.Credentials, status string, hooks fetchHooks) (fetchResult, error) {
	size := s.opts.PageSize

	first, err := s.fetchPage(ctx, creds, domain.PageRequest{Offset: 0, Limit: size, Status: status})
	if err != nil {
		return fetchResult{}, fmt.Errorf("fetch first page: %w", err)
	}
	if first.Total <= 0 {
		return fetchResult{}, domain.ErrEmptyUpstream
	}

	pages := PageCount(first.Total, size)
	res := fetchResult{
		Programs: make([]domain.Program, 0, first.Total),
		Total:    first.Total,
		Pages:    pages,
	}
	res.Programs = append(res.Programs, first.Programs...)
	res.Skipped = append(res.Skipped, first.Skipped...)

	if hooks.OnTotal != nil {
		hooks.OnTotal(first.Total, pages)
	}

	every := max(s.opts.ProgressEvery, 1)
	completed := 1
	report := func() {
		if hooks.OnProgress != nil && (completed%every == 0 || completed == pages) {
			hooks.OnProgress(completed, pages)
		}
	}
	report()

	if pages == 1 {
		return res, nil
	}

	results := make(chan pageOutcome)
	go func() {
		defer close(results)

		var g errgroup.Group
		g.SetLimit(max(s.opts.Concurrency, 1))
		for page := 1; page < pages; page++ {
			if ctx.Err() != nil {
				break
			}
			g.Go(func() error {
				p, err := s.fetchPage(ctx, creds, domain.PageRequest{
					Offset: page * size,
					Limit:  size,
					Status: status,
				})
				results <- pageOutcome{page: page, programs: p.Programs, skipped: p.Skipped, err: err}
				return nil
			})
		}
		_ = g.Wait()
	}()

	for out := range results {
		completed++
		if out.err != nil {
			res.PagesFailed++
			s.logger.Warn("page fetch failed, dropping records",
				slog.Int("page", out.page),
				slog.Int("offset", out.page*size),
				slog.Any("error", out.err))
		} else {
			res.Programs = append(res.Programs, out.programs...)
			res.Skipped = append(res.Skipped, out.skipped...)
		}
		report()
	}

	if err = ctx.Err(); err != nil {
		return res, err
	}
	return res, nil
}

func (s *fetchScheduler) fetchPage(ctx context.Context, creds domain.Credentials, req domain.PageRequest) (domain.Page, error) {
	var page domain.Page
	err := retryWithBackoff(ctx, s.logger, s.opts.RetryAttempts, s.opts.RetryDelay, func() error {
		var err error
		page, err = s.fetcher.FetchPage(ctx, creds, req)
		return err
	})
	if err != nil {
		metrics.PageFetches.WithLabelValues("error").Inc()
		return domain.Page{}, err
	}
	metrics.PageFetches.WithLabelValues("ok").Inc()
	return page, nil
}
