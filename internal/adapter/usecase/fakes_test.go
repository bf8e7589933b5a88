package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"adsync/internal/core/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testSyncOptions() SyncOptions {
	opts := DefaultSyncOptions()
	opts.PageSize = 2
	opts.Concurrency = 4
	opts.RetryAttempts = 2
	opts.RetryDelay = time.Millisecond
	return opts
}

// memProgramRepo is an in-memory port.ProgramRepository.
type memProgramRepo struct {
	mu         sync.Mutex
	rows       map[string]map[string]domain.Program
	businesses *memBusinessRepo
	applyErr   error
	applies    int
	listCalls  int
}

func newMemProgramRepo(businesses *memBusinessRepo) *memProgramRepo {
	return &memProgramRepo{rows: map[string]map[string]domain.Program{}, businesses: businesses}
}

func (r *memProgramRepo) seed(owner string, ids ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.rows[owner] == nil {
		r.rows[owner] = map[string]domain.Program{}
	}
	for _, id := range ids {
		r.rows[owner][id] = domain.Program{Owner: owner, ProgramID: id}
	}
}

func (r *memProgramRepo) ids(owner string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.rows[owner]))
	for id := range r.rows[owner] {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (r *memProgramRepo) program(owner, id string) (domain.Program, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.rows[owner][id]
	return p, ok
}

func (r *memProgramRepo) ListProgramIDs(_ context.Context, owner string) ([]string, error) {
	r.mu.Lock()
	r.listCalls++
	r.mu.Unlock()
	return r.ids(owner), nil
}

func (r *memProgramRepo) ApplyChanges(_ context.Context, owner string, changes domain.ChangeSet, today time.Time) (domain.ApplyCounts, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.applies++
	if r.applyErr != nil {
		return domain.ApplyCounts{}, r.applyErr
	}
	if r.rows[owner] == nil {
		r.rows[owner] = map[string]domain.Program{}
	}
	rows := r.rows[owner]

	var counts domain.ApplyCounts
	for _, p := range changes.Insert {
		if _, ok := rows[p.ProgramID]; ok {
			continue
		}
		p.Status = p.DerivedStatus(today)
		rows[p.ProgramID] = p
		counts.Inserted++
	}
	// Like the store, an update writes and counts only rows whose content
	// changed; an absent row is written as well.
	for _, p := range changes.Update {
		p.Status = p.DerivedStatus(today)
		if cur, ok := rows[p.ProgramID]; ok {
			if sameContent(cur, p) {
				continue
			}
			if cur.BusinessRef == p.BusinessRef {
				p.BusinessName = cur.BusinessName
			}
		}
		rows[p.ProgramID] = p
		counts.Updated++
	}
	for _, id := range changes.Delete {
		if _, ok := rows[id]; ok {
			delete(rows, id)
			counts.Deleted++
		}
	}
	return counts, nil
}

// sameContent compares the columns the store compares before updating.
func sameContent(a, b domain.Program) bool {
	a.BusinessName, b.BusinessName = nil, nil
	a.SyncedAt, b.SyncedAt = time.Time{}, time.Time{}
	return reflect.DeepEqual(a, b)
}

func (r *memProgramRepo) LinkBusinesses(_ context.Context, owner string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var linked int64
	for id, p := range r.rows[owner] {
		if p.BusinessName != nil || p.BusinessRef == "" {
			continue
		}
		b, ok := r.businesses.get(p.BusinessRef)
		if !ok {
			continue
		}
		name := ""
		if b.Name != nil {
			name = *b.Name
		}
		p.BusinessName = &name
		r.rows[owner][id] = p
		linked++
	}
	return linked, nil
}

func (r *memProgramRepo) ListPrograms(_ context.Context, filter domain.ProgramFilter) ([]domain.Program, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Program
	for _, p := range r.rows[filter.Owner] {
		if filter.Status != "" && p.DerivedStatus(filter.Today) != filter.Status {
			continue
		}
		if filter.Search != "" && !strings.Contains(p.ProgramID, filter.Search) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProgramID < out[j].ProgramID })
	total := len(out)
	if filter.Offset >= len(out) {
		return nil, total, nil
	}
	out = out[filter.Offset:]
	if len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, total, nil
}

func (r *memProgramRepo) GetProgram(_ context.Context, owner, programID string) (*domain.Program, error) {
	p, ok := r.program(owner, programID)
	if !ok {
		return nil, domain.ErrProgramNotFound
	}
	return &p, nil
}

// memBusinessRepo is an in-memory port.BusinessRepository.
type memBusinessRepo struct {
	mu   sync.Mutex
	rows map[string]domain.Business
}

func newMemBusinessRepo() *memBusinessRepo {
	return &memBusinessRepo{rows: map[string]domain.Business{}}
}

func (r *memBusinessRepo) get(id string) (domain.Business, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.rows[id]
	return b, ok
}

func (r *memBusinessRepo) FindCached(_ context.Context, ids []string, maxAge time.Duration) (map[string]domain.Business, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := map[string]domain.Business{}
	for _, id := range ids {
		b, ok := r.rows[id]
		if ok && !b.FetchFailed && b.Name != nil && time.Since(b.CachedAt) < maxAge {
			out[id] = b
		}
	}
	return out, nil
}

func (r *memBusinessRepo) UpsertBusinesses(_ context.Context, businesses []domain.Business) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range businesses {
		if prev, ok := r.rows[b.BusinessID]; ok && b.Name == nil {
			b.Name = prev.Name
		}
		r.rows[b.BusinessID] = b
	}
	return nil
}

// memCache is a map-backed port.Cache without expiry.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}}
}

func (c *memCache) Available() bool { return true }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *memCache) Invalidate(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if prefix, ok := strings.CutSuffix(pattern, "*"); ok {
		for k := range c.data {
			if strings.HasPrefix(k, prefix) {
				delete(c.data, k)
			}
		}
		return nil
	}
	delete(c.data, pattern)
	return nil
}

type staticCreds struct{}

func (staticCreds) Credentials(context.Context, string) (domain.Credentials, error) {
	return domain.Credentials{Username: "u", Password: "p", BusinessToken: "t"}, nil
}

// fakePartner serves a fixed program collection and business directory.
type fakePartner struct {
	mu          sync.Mutex
	programs    []domain.Program
	failOffsets map[int]bool
	// skipped lists, per page offset, records reported as unreadable.
	skipped    map[int][]string
	businesses map[string]domain.BusinessInfo
	pageCalls  int
	bizCalls   int
}

func (f *fakePartner) FetchPage(_ context.Context, _ domain.Credentials, req domain.PageRequest) (domain.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pageCalls++
	if f.failOffsets[req.Offset] {
		return domain.Page{}, &domain.UpstreamError{Op: "fetch page", StatusCode: http.StatusBadRequest, Err: errors.New("bad page")}
	}
	end := min(req.Offset+req.Limit, len(f.programs))
	var page []domain.Program
	if req.Offset < end {
		page = append(page, f.programs[req.Offset:end]...)
	}
	return domain.Page{Programs: page, Total: len(f.programs), Skipped: f.skipped[req.Offset]}, nil
}

func (f *fakePartner) FetchBusiness(_ context.Context, _ domain.Credentials, id string) (domain.BusinessInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bizCalls++
	info, ok := f.businesses[id]
	if !ok {
		return domain.BusinessInfo{}, &domain.UpstreamError{Op: "fetch business", StatusCode: http.StatusNotFound, Err: domain.ErrBusinessNotFound}
	}
	return info, nil
}

func programsWithIDs(ids ...string) []domain.Program {
	out := make([]domain.Program, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.Program{ProgramID: id, Lifecycle: domain.LifecycleActive})
	}
	return out
}

func numberedPrograms(n int) []domain.Program {
	out := make([]domain.Program, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, domain.Program{ProgramID: fmt.Sprintf("p-%05d", i)})
	}
	return out
}

// eventLog records emitted events.
type eventLog struct {
	events []domain.SyncEvent
}

func (l *eventLog) emit(ev domain.SyncEvent) {
	l.events = append(l.events, ev)
}

func (l *eventLog) types() []domain.EventType {
	out := make([]domain.EventType, 0, len(l.events))
	for _, ev := range l.events {
		out = append(out, ev.Type)
	}
	return out
}
