package httpadapter

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"adsync/internal/config/configs"
	"adsync/internal/core/port"
)

// Handler contains dependencies and routes. It is an inbound adapter for HTTP.
// It holds the sync and program use cases and a logger for structured
// logging. Routes are registered on a chi.Router for convenient method
// handling.
type Handler struct {
	sync     port.SyncUseCase
	programs port.ProgramUseCase
	logger   *slog.Logger
	router   chi.Router
}

// NewHandler creates a handler with all routes configured. Sync requests are
// rate limited per client IP as configured in cfg.
func NewHandler(sync port.SyncUseCase, programs port.ProgramUseCase, cfg configs.HTTP, logger *slog.Logger) *Handler {
	h := &Handler{sync: sync, programs: programs, logger: logger}
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	r.Route("/api/v1/owners/{owner}", func(r chi.Router) {
		r.With(syncLimiter(cfg)).Post("/sync", h.handleSync)
		r.Get("/programs", h.handleListPrograms)
		r.Get("/programs/{programID}", h.handleGetProgram)
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}

func syncLimiter(cfg configs.HTTP) func(http.Handler) http.Handler {
	if cfg.SyncRateLimit <= 0 || cfg.SyncRateWindow <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.LimitByIP(cfg.SyncRateLimit, cfg.SyncRateWindow)
}
