package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"adsync/internal/core/domain"
	"adsync/internal/core/port/mocks"
)

func TestPageCount(t *testing.T) {
	tests := []struct {
		total, size, want int
	}{
		{0, 40, 0},
		{1, 40, 1},
		{40, 40, 1},
		{41, 40, 2},
		{1000, 40, 25},
		{1001, 40, 26},
		{5, 0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PageCount(tt.total, tt.size), "total=%d size=%d", tt.total, tt.size)
	}
}

// pagedFetcher answers every page with exactly min(limit, total-offset)
// records.
func pagedFetcher(t *testing.T, total int) (*mocks.MockPageFetcher, *atomic.Int32) {
	fetcher := mocks.NewMockPageFetcher(t)
	var inFlight, peak atomic.Int32
	fetcher.EXPECT().
		FetchPage(mock.Anything, mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, _ domain.Credentials, req domain.PageRequest) (domain.Page, error) {
			n := inFlight.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			defer inFlight.Add(-1)
			time.Sleep(time.Millisecond)

			count := min(req.Limit, total-req.Offset)
			programs := make([]domain.Program, 0, count)
			for i := 0; i < count; i++ {
				programs = append(programs, domain.Program{ProgramID: fmt.Sprintf("p-%d", req.Offset+i)})
			}
			return domain.Page{Programs: programs, Total: total}, nil
		})
	return fetcher, &peak
}

func TestFetchAllAccumulatesEveryRecord(t *testing.T) {
	for _, tc := range []struct{ total, size int }{{1, 40}, {40, 40}, {41, 40}, {1000, 40}, {999, 7}} {
		fetcher, peak := pagedFetcher(t, tc.total)
		opts := testSyncOptions()
		opts.PageSize = tc.size
		opts.Concurrency = 5

		s := newFetchScheduler(fetcher, opts, discardLogger())
		res, err := s.FetchAll(context.Background(), domain.Credentials{}, "", fetchHooks{})
		require.NoError(t, err)

		assert.Len(t, res.Programs, tc.total)
		assert.Equal(t, tc.total, res.Total)
		assert.Equal(t, PageCount(tc.total, tc.size), res.Pages)
		assert.Zero(t, res.PagesFailed)
		assert.LessOrEqual(t, peak.Load(), int32(5))
	}
}

func TestFetchAllReportsProgress(t *testing.T) {
	fetcher, _ := pagedFetcher(t, 1000)
	opts := testSyncOptions()
	opts.PageSize = 40
	s := newFetchScheduler(fetcher, opts, discardLogger())

	var totals [][2]int
	var progress []int
	_, err := s.FetchAll(context.Background(), domain.Credentials{}, "", fetchHooks{
		OnTotal: func(total, pages int) { totals = append(totals, [2]int{total, pages}) },
		OnProgress: func(completed, pages int) {
			assert.Equal(t, 25, pages)
			progress = append(progress, completed)
		},
	})
	require.NoError(t, err)

	assert.Equal(t, [][2]int{{1000, 25}}, totals)
	assert.Equal(t, []int{10, 20, 25}, progress)
}

func TestFetchAllEmptyUpstream(t *testing.T) {
	fetcher := mocks.NewMockPageFetcher(t)
	fetcher.EXPECT().
		FetchPage(mock.Anything, mock.Anything, domain.PageRequest{Offset: 0, Limit: 40}).
		Return(domain.Page{Total: 0}, nil).
		Once()

	opts := testSyncOptions()
	opts.PageSize = 40
	s := newFetchScheduler(fetcher, opts, discardLogger())

	_, err := s.FetchAll(context.Background(), domain.Credentials{}, "", fetchHooks{})
	assert.ErrorIs(t, err, domain.ErrEmptyUpstream)
}

func TestFetchAllFirstPageFailureIsTerminal(t *testing.T) {
	denied := &domain.UpstreamError{Op: "fetch page", StatusCode: http.StatusUnauthorized, Err: errors.New("denied")}
	fetcher := mocks.NewMockPageFetcher(t)
	fetcher.EXPECT().
		FetchPage(mock.Anything, mock.Anything, mock.Anything).
		Return(domain.Page{}, denied).
		Once()

	s := newFetchScheduler(fetcher, testSyncOptions(), discardLogger())
	_, err := s.FetchAll(context.Background(), domain.Credentials{}, "", fetchHooks{})

	var upErr *domain.UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.True(t, upErr.Unauthorized())
}

func TestFetchAllDropsFailedPages(t *testing.T) {
	partner := &fakePartner{
		programs:    numberedPrograms(10),
		failOffsets: map[int]bool{4: true, 8: true},
	}
	s := newFetchScheduler(partner, testSyncOptions(), discardLogger())

	var last int
	res, err := s.FetchAll(context.Background(), domain.Credentials{}, "", fetchHooks{
		OnProgress: func(completed, _ int) { last = completed },
	})
	require.NoError(t, err)

	assert.Equal(t, 5, res.Pages)
	assert.Equal(t, 2, res.PagesFailed)
	assert.Len(t, res.Programs, 6)
	assert.Equal(t, 5, last, "failed pages still count as completed")
}

func TestFetchAllRetriesTransientPageErrors(t *testing.T) {
	fetcher := mocks.NewMockPageFetcher(t)
	fetcher.EXPECT().
		FetchPage(mock.Anything, mock.Anything, mock.Anything).
		Return(domain.Page{}, &domain.UpstreamError{Op: "fetch page", StatusCode: http.StatusServiceUnavailable, Err: errors.New("busy")}).
		Once()
	fetcher.EXPECT().
		FetchPage(mock.Anything, mock.Anything, mock.Anything).
		Return(domain.Page{Programs: programsWithIDs("A"), Total: 1}, nil).
		Once()

	s := newFetchScheduler(fetcher, testSyncOptions(), discardLogger())
	res, err := s.FetchAll(context.Background(), domain.Credentials{}, "", fetchHooks{})
	require.NoError(t, err)
	assert.Len(t, res.Programs, 1)
}
