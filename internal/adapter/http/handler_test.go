package httpadapter

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"adsync/internal/config/configs"
	"adsync/internal/core/domain"
	"adsync/internal/core/port"
	"adsync/internal/core/port/mocks"
)

func newTestHandler(t *testing.T, cfg configs.HTTP) (*Handler, *mocks.MockSyncUseCase, *mocks.MockProgramUseCase) {
	t.Helper()
	syncUC := mocks.NewMockSyncUseCase(t)
	programUC := mocks.NewMockProgramUseCase(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(syncUC, programUC, cfg, logger), syncUC, programUC
}

func TestHandleSyncStreamsEvents(t *testing.T) {
	h, syncUC, _ := newTestHandler(t, configs.HTTP{})

	syncUC.EXPECT().
		Sync(mock.Anything, port.SyncRequest{Owner: "u1", Status: "CURRENT"}, mock.Anything).
		RunAndReturn(func(ctx context.Context, req port.SyncRequest, emit port.EmitFunc) (*domain.SyncReport, error) {
			assert.NotNil(t, ctx)
			emit(domain.SyncEvent{Type: domain.EventStart, RunID: "r1", Owner: req.Owner})
			emit(domain.SyncEvent{Type: domain.EventProgress, RunID: "r1", Owner: req.Owner,
				Progress: domain.NewProgress(domain.PhaseFetch, 1, 2)})
			report := &domain.SyncReport{RunID: "r1", Owner: req.Owner, Added: 3}
			emit(domain.SyncEvent{Type: domain.EventComplete, RunID: "r1", Owner: req.Owner, Report: report})
			return report, nil
		})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/owners/u1/sync?status=CURRENT", nil)
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.True(t, rec.Flushed)

	frames := strings.Split(strings.TrimSuffix(rec.Body.String(), "\n\n"), "\n\n")
	require.Len(t, frames, 3)
	assert.True(t, strings.HasPrefix(frames[0], "event: start\ndata: "))
	assert.True(t, strings.HasPrefix(frames[1], "event: progress\ndata: "))
	assert.True(t, strings.HasPrefix(frames[2], "event: complete\ndata: "))

	var last domain.SyncEvent
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(frames[2], "event: complete\ndata: ")), &last))
	require.NotNil(t, last.Report)
	assert.Equal(t, int64(3), last.Report.Added)
}

func TestHandleSyncRunSurvivesClientDisconnect(t *testing.T) {
	h, syncUC, _ := newTestHandler(t, configs.HTTP{})

	syncUC.EXPECT().
		Sync(mock.Anything, mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, req port.SyncRequest, emit port.EmitFunc) (*domain.SyncReport, error) {
			assert.NoError(t, ctx.Err())
			emit(domain.SyncEvent{Type: domain.EventStart, Owner: req.Owner})
			emit(domain.SyncEvent{Type: domain.EventComplete, Owner: req.Owner})
			return &domain.SyncReport{}, nil
		})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/owners/u1/sync", nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleSyncErrorsBeforeStart(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"validation", &domain.ValidationError{Fields: []domain.FieldError{{Field: "Status", Message: "Status is invalid"}}}, http.StatusBadRequest},
		{"in progress", domain.ErrSyncInProgress, http.StatusConflict},
		{"credentials", errors.New("no credentials"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, syncUC, _ := newTestHandler(t, configs.HTTP{})
			syncUC.EXPECT().Sync(mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := httptest.NewRecorder()
			h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/owners/u1/sync", nil))

			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestHandleSyncErrorAfterStartStaysInStream(t *testing.T) {
	h, syncUC, _ := newTestHandler(t, configs.HTTP{})
	syncUC.EXPECT().
		Sync(mock.Anything, mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, req port.SyncRequest, emit port.EmitFunc) (*domain.SyncReport, error) {
			emit(domain.SyncEvent{Type: domain.EventStart, Owner: req.Owner})
			emit(domain.SyncEvent{Type: domain.EventError, Owner: req.Owner, Message: "partner API reported zero programs"})
			return nil, domain.ErrEmptyUpstream
		})

	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/owners/u1/sync", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "event: error\n")
}

func TestHandleSyncRateLimited(t *testing.T) {
	h, syncUC, _ := newTestHandler(t, configs.HTTP{SyncRateLimit: 1, SyncRateWindow: time.Minute})
	syncUC.EXPECT().Sync(mock.Anything, mock.Anything, mock.Anything).Return(nil, domain.ErrSyncInProgress).Once()

	for i, want := range []int{http.StatusConflict, http.StatusTooManyRequests} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/owners/u1/sync", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		h.Router().ServeHTTP(rec, req)
		assert.Equal(t, want, rec.Code, "request %d", i)
	}
}

func TestHandleListPrograms(t *testing.T) {
	h, _, programUC := newTestHandler(t, configs.HTTP{})

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	name := "Pizza Place"
	programUC.EXPECT().
		ListPrograms(mock.Anything, port.ProgramQuery{
			Owner:     "u1",
			Status:    "CURRENT",
			Search:    "piz",
			MinBudget: "10.50",
			Limit:     5,
			Offset:    10,
		}).
		Return(&port.ProgramPage{
			Items: []domain.Program{{
				Owner:        "u1",
				ProgramID:    "P1",
				ProgramType:  "CPC",
				Status:       domain.StatusCurrent,
				StartDate:    &start,
				Budget:       domain.NewMoney(12345),
				Cost:         250,
				BusinessRef:  "E1",
				BusinessName: &name,
			}},
			Total:  11,
			Limit:  5,
			Offset: 10,
		}, nil)

	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/api/v1/owners/u1/programs?status=CURRENT&search=piz&min_budget=10.50&limit=5&offset=10", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var got programPageDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 11, got.Total)
	assert.Equal(t, 5, got.Limit)
	require.Len(t, got.Items, 1)

	item := got.Items[0]
	assert.Equal(t, "P1", item.ProgramID)
	assert.Equal(t, "CURRENT", item.Status)
	require.NotNil(t, item.StartDate)
	assert.Equal(t, "2024-01-01", *item.StartDate)
	assert.Nil(t, item.EndDate)
	require.NotNil(t, item.Budget)
	assert.InDelta(t, 123.45, *item.Budget, 1e-9)
	assert.InDelta(t, 2.5, item.Cost, 1e-9)
	assert.Equal(t, []string{}, item.ActiveFeatures)
	require.NotNil(t, item.Business)
	assert.Equal(t, "E1", item.Business.ID)
	assert.Equal(t, "Pizza Place", *item.Business.Name)
}

func TestHandleListProgramsBadParams(t *testing.T) {
	h, _, programUC := newTestHandler(t, configs.HTTP{})

	for _, query := range []string{"limit=ten", "offset=1.5"} {
		rec := httptest.NewRecorder()
		h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/owners/u1/programs?"+query, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, query)
	}

	programUC.EXPECT().ListPrograms(mock.Anything, mock.Anything).
		Return(nil, &domain.ValidationError{Fields: []domain.FieldError{{Field: "Status", Message: "Status must be one of PAUSED FUTURE PAST CURRENT INACTIVE"}}})

	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/owners/u1/programs?status=nope", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Fields, 1)
	assert.Equal(t, "Status", body.Fields[0].Field)
}

func TestHandleGetProgram(t *testing.T) {
	h, _, programUC := newTestHandler(t, configs.HTTP{})

	programUC.EXPECT().GetProgram(mock.Anything, "u1", "P1").
		Return(&domain.Program{Owner: "u1", ProgramID: "P1", Status: domain.StatusPaused, Paused: true}, nil)
	programUC.EXPECT().GetProgram(mock.Anything, "u1", "nope").
		Return(nil, domain.ErrProgramNotFound)

	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/owners/u1/programs/P1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var got programDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "PAUSED", got.Status)
	assert.Nil(t, got.Business)

	rec = httptest.NewRecorder()
	h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/owners/u1/programs/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	h, _, _ := newTestHandler(t, configs.HTTP{})
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
