package httpadapter

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"adsync/internal/core/domain"
	"adsync/internal/core/port"
)

// eventStream writes sync events as server-sent events. Headers are sent
// with the first event so that errors returned before a run starts can
// still be reported with a regular status code.
type eventStream struct {
	w       http.ResponseWriter
	flusher http.Flusher
	logger  *slog.Logger
	started bool
}

func (s *eventStream) send(ev domain.SyncEvent) {
	if !s.started {
		h := s.w.Header()
		h.Set("Content-Type", "text/event-stream")
		h.Set("Cache-Control", "no-cache")
		h.Set("Connection", "keep-alive")
		h.Set("X-Accel-Buffering", "no")
		s.w.WriteHeader(http.StatusOK)
		s.started = true
	}
	data, err := json.Marshal(ev)
	if err != nil {
		s.logger.Error("encode sync event", slog.Any("error", err))
		return
	}
	// A gone client does not stop the run.
	if _, err = fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", ev.Type, data); err != nil {
		return
	}
	s.flusher.Flush()
}

// handleSync starts a run for the {owner} path parameter and streams its
// progress. The optional status query parameter narrows the remote
// collection. The run is detached from the request context so that a
// disconnecting client never leaves the store half applied.
func (h *Handler) handleSync(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		h.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "streaming not supported"})
		return
	}

	req := port.SyncRequest{
		Owner:  chi.URLParam(r, "owner"),
		Status: r.URL.Query().Get("status"),
	}
	stream := &eventStream{w: w, flusher: flusher, logger: h.logger}

	_, err := h.sync.Sync(context.WithoutCancel(r.Context()), req, stream.send)
	if err != nil && !stream.started {
		h.writeError(w, err)
		return
	}
	if err != nil {
		h.logger.Warn("sync finished with error",
			slog.String("owner", req.Owner), slog.Any("error", err))
	}
}
