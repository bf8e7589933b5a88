package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"adsync/internal/core/domain"
	"adsync/internal/core/port"
	"adsync/internal/metrics"
	"adsync/internal/validation"
)

// statusAll requests the whole remote collection.
const statusAll = "ALL"

// SyncService reconciles the partner's programs of an owner into the store.
// It implements port.SyncUseCase. Runs for different owners proceed in
// parallel; a second run for a busy owner is rejected.
type SyncService struct {
	programs  port.ProgramRepository
	creds     port.CredentialProvider
	cache     port.Cache
	scheduler *fetchScheduler
	linker    *Linker
	opts      SyncOptions
	logger    *slog.Logger
	now       func() time.Time

	mu      sync.Mutex
	running map[string]struct{}
}

// NewSyncService wires the sync pipeline.
func NewSyncService(
	programs port.ProgramRepository,
	pages port.PageFetcher,
	creds port.CredentialProvider,
	cache port.Cache,
	linker *Linker,
	opts SyncOptions,
	logger *slog.Logger,
) *SyncService {
	return &SyncService{
		programs:  programs,
		creds:     creds,
		cache:     cache,
		scheduler: newFetchScheduler(pages, opts, logger),
		linker:    linker,
		opts:      opts,
		logger:    logger,
		now:       time.Now,
		running:   make(map[string]struct{}),
	}
}

// syncRun carries the ephemeral state of one run.
type syncRun struct {
	id     string
	owner  string
	emit   port.EmitFunc
	logger *slog.Logger
}

func (r *syncRun) send(ev domain.SyncEvent) {
	ev.RunID = r.id
	ev.Owner = r.owner
	r.emit(ev)
}

// Sync runs fetch, diff, apply and link for req.Owner, streaming progress
// events to emit. Events are emitted from the calling goroutine only.
func (s *SyncService) Sync(ctx context.Context, req port.SyncRequest, emit port.EmitFunc) (*domain.SyncReport, error) {
	if emit == nil {
		emit = func(domain.SyncEvent) {}
	}
	if err := validation.Struct(&req); err != nil {
		metrics.SyncRuns.WithLabelValues("invalid").Inc()
		return nil, err
	}
	if !s.acquire(req.Owner) {
		metrics.SyncRuns.WithLabelValues("busy").Inc()
		return nil, domain.ErrSyncInProgress
	}
	defer s.release(req.Owner)

	run := &syncRun{
		id:    uuid.NewString(),
		owner: req.Owner,
		emit:  emit,
	}
	run.logger = s.logger.With(slog.String("owner", run.owner), slog.String("run_id", run.id))

	report, err := s.run(ctx, req, run)
	if err != nil {
		metrics.SyncRuns.WithLabelValues("error").Inc()
		run.logger.Error("sync failed", slog.Any("error", err))
		run.send(domain.SyncEvent{Type: domain.EventError, Message: errorMessage(err)})
		return report, err
	}

	metrics.SyncRuns.WithLabelValues("success").Inc()
	run.logger.Info("sync completed",
		slog.Int("total", report.Total),
		slog.Int64("added", report.Added),
		slog.Int64("updated", report.Updated),
		slog.Int64("deleted", report.Deleted),
		slog.Int("pages_failed", report.PagesFailed),
		slog.Int("programs_skipped", report.ProgramsSkipped),
		slog.Int64("total_ms", report.Timings.TotalMS))
	run.send(domain.SyncEvent{Type: domain.EventComplete, Message: "sync completed", Report: report})
	return report, nil
}

func (s *SyncService) run(ctx context.Context, req port.SyncRequest, run *syncRun) (*domain.SyncReport, error) {
	started := s.now()
	report := &domain.SyncReport{RunID: run.id, Owner: run.owner, StartedAt: started.UTC()}

	run.send(domain.SyncEvent{Type: domain.EventStart, Message: "sync started"})

	creds, err := s.creds.Credentials(ctx, run.owner)
	if err != nil {
		return report, fmt.Errorf("resolve credentials: %w", err)
	}

	local, err := s.localIDs(ctx, run.owner)
	if err != nil {
		return report, &domain.PersistenceError{Op: "list program ids", Err: err}
	}

	status := req.Status
	if status == statusAll {
		status = ""
	}

	// fetch
	mark := s.now()
	fetched, err := s.scheduler.FetchAll(ctx, creds, status, fetchHooks{
		OnTotal: func(total, pages int) {
			run.send(domain.SyncEvent{
				Type: domain.EventInfo,
				Info: &domain.SyncInfo{Total: total, Pages: pages, Local: len(local)},
			})
		},
		OnProgress: func(completed, pages int) {
			run.send(domain.SyncEvent{
				Type:     domain.EventProgress,
				Progress: domain.NewProgress(domain.PhaseFetch, completed, pages),
			})
		},
	})
	report.Timings.FetchMS = s.elapsed(mark, "fetch")
	if err != nil {
		return report, fmt.Errorf("fetch programs: %w", err)
	}
	report.Total = fetched.Total
	report.PagesFailed = fetched.PagesFailed
	report.ProgramsSkipped = len(fetched.Skipped)

	// diff
	mark = s.now()
	remote := make(map[string]domain.Program, len(fetched.Programs))
	remoteIDs := make(domain.IDSet, len(fetched.Programs))
	for _, p := range fetched.Programs {
		p.Owner = run.owner
		remote[p.ProgramID] = p
		remoteIDs.Add(p.ProgramID)
	}
	part := domain.Diff(local, remoteIDs)

	// Skipped records still exist upstream; their local rows are kept
	// as they are.
	skipped, anonymous := skippedIDs(fetched.Skipped)
	kept := domain.NewIDSet()
	for id := range skipped {
		if part.Delete.Has(id) {
			delete(part.Delete, id)
			kept.Add(id)
		}
	}

	changes := domain.ChangeSet{
		Insert: pick(remote, part.Insert),
		Update: pick(remote, part.Update),
		Delete: part.Delete.Sorted(),
	}

	// A partial or filtered view of the remote collection cannot prove
	// that a local program is gone.
	finalIDs := remoteIDs.Union(kept)
	if fetched.PagesFailed > 0 || anonymous > 0 || status != "" {
		report.DeletesDeferred = len(changes.Delete)
		changes.Delete = nil
		finalIDs = local.Union(remoteIDs)
		if report.DeletesDeferred > 0 {
			run.logger.Warn("deletes deferred",
				slog.Int("count", report.DeletesDeferred),
				slog.Int("pages_failed", fetched.PagesFailed),
				slog.Int("skipped_without_id", anonymous),
				slog.String("status", status))
		}
	}
	report.Timings.DiffMS = s.elapsed(mark, "diff")

	// persist
	mark = s.now()
	counts, err := s.programs.ApplyChanges(ctx, run.owner, changes, started)
	report.Timings.PersistMS = s.elapsed(mark, "persist")
	if err != nil {
		s.invalidateIDs(ctx, run.owner)
		var perr *domain.PersistenceError
		if !errors.As(err, &perr) {
			err = &domain.PersistenceError{Op: "apply changes", Err: err}
		}
		return report, err
	}
	report.Added, report.Updated, report.Deleted = counts.Inserted, counts.Updated, counts.Deleted
	metrics.SyncRecords.WithLabelValues("insert").Add(float64(counts.Inserted))
	metrics.SyncRecords.WithLabelValues("update").Add(float64(counts.Updated))
	metrics.SyncRecords.WithLabelValues("delete").Add(float64(counts.Deleted))
	s.storeIDs(ctx, run.owner, finalIDs)

	// link, strictly after the programs are committed
	mark = s.now()
	refs := make([]string, 0, len(remote))
	for _, p := range remote {
		if p.BusinessRef != "" {
			refs = append(refs, p.BusinessRef)
		}
	}
	_, stats, err := s.linker.Resolve(ctx, creds, refs, func(completed, total int) {
		run.send(domain.SyncEvent{
			Type:     domain.EventProgress,
			Progress: domain.NewProgress(domain.PhaseLink, completed, total),
		})
	})
	if err != nil {
		report.Timings.LinkMS = s.elapsed(mark, "link")
		return report, err
	}
	report.BusinessesCached = stats.Cached
	report.BusinessesFetched = stats.Fetched
	report.BusinessesFailed = stats.NotFound + stats.Failed

	linked, err := s.programs.LinkBusinesses(ctx, run.owner)
	report.Timings.LinkMS = s.elapsed(mark, "link")
	if err != nil {
		return report, &domain.PersistenceError{Op: "link businesses", Err: err}
	}
	report.ProgramsLinked = linked

	finished := s.now()
	report.FinishedAt = finished.UTC()
	report.Timings.TotalMS = finished.Sub(started).Milliseconds()
	metrics.ObservePhase("total", finished.Sub(started))
	return report, nil
}

func (s *SyncService) elapsed(mark time.Time, phase string) int64 {
	d := s.now().Sub(mark)
	metrics.ObservePhase(phase, d)
	return d.Milliseconds()
}

func (s *SyncService) acquire(owner string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.running[owner]; busy {
		return false
	}
	s.running[owner] = struct{}{}
	return true
}

func (s *SyncService) release(owner string) {
	s.mu.Lock()
	delete(s.running, owner)
	s.mu.Unlock()
}

// skippedIDs splits the skipped records into known ids and a count of
// records without one.
func skippedIDs(skipped []string) (domain.IDSet, int) {
	ids := domain.NewIDSet()
	anonymous := 0
	for _, id := range skipped {
		if id == "" {
			anonymous++
			continue
		}
		ids.Add(id)
	}
	return ids, anonymous
}

// pick returns the programs of ids in ascending id order.
func pick(programs map[string]domain.Program, ids domain.IDSet) []domain.Program {
	out := make([]domain.Program, 0, len(ids))
	for _, id := range ids.Sorted() {
		out = append(out, programs[id])
	}
	return out
}

func errorMessage(err error) string {
	var upErr *domain.UpstreamError
	switch {
	case errors.Is(err, domain.ErrEmptyUpstream):
		return "partner API returned no programs; check the credentials or retry later"
	case errors.As(err, &upErr) && upErr.Unauthorized():
		return "partner API rejected the credentials"
	case errors.As(err, new(*domain.PersistenceError)):
		return "failed to save programs: " + err.Error()
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "sync cancelled"
	default:
		return err.Error()
	}
}
