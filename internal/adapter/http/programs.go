package httpadapter

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"adsync/internal/core/domain"
	"adsync/internal/core/port"
)

type businessDTO struct {
	ID   string  `json:"id"`
	Name *string `json:"name"`
}

type programDTO struct {
	ProgramID         string       `json:"program_id"`
	ProgramType       string       `json:"program_type"`
	Status            string       `json:"status"`
	Lifecycle         string       `json:"program_status"`
	Paused            bool         `json:"paused"`
	StartDate         *string      `json:"start_date"`
	EndDate           *string      `json:"end_date"`
	Budget            *float64     `json:"budget"`
	Currency          string       `json:"currency,omitempty"`
	BidStrategy       string       `json:"bid_strategy,omitempty"`
	MaxBid            *float64     `json:"max_bid"`
	Impressions       int64        `json:"impressions"`
	Clicks            int64        `json:"clicks"`
	Cost              float64      `json:"cost"`
	ActiveFeatures    []string     `json:"active_features"`
	AvailableFeatures []string     `json:"available_features"`
	Business          *businessDTO `json:"business"`
	SyncedAt          time.Time    `json:"synced_at"`
}

type programPageDTO struct {
	Items  []programDTO `json:"items"`
	Total  int          `json:"total"`
	Limit  int          `json:"limit"`
	Offset int          `json:"offset"`
}

func toProgramDTO(p domain.Program) programDTO {
	dto := programDTO{
		ProgramID:         p.ProgramID,
		ProgramType:       p.ProgramType,
		Status:            string(p.Status),
		Lifecycle:         p.Lifecycle,
		Paused:            p.Paused,
		StartDate:         formatDate(p.StartDate),
		EndDate:           formatDate(p.EndDate),
		Budget:            major(p.Budget),
		Currency:          p.Currency,
		BidStrategy:       string(p.BidStrategy),
		MaxBid:            major(p.MaxBid),
		Impressions:       p.Impressions,
		Clicks:            p.Clicks,
		Cost:              p.Cost.Major(),
		ActiveFeatures:    nonNil(p.ActiveFeatures),
		AvailableFeatures: nonNil(p.AvailableFeatures),
		SyncedAt:          p.SyncedAt,
	}
	if p.BusinessRef != "" {
		dto.Business = &businessDTO{ID: p.BusinessRef, Name: p.BusinessName}
	}
	return dto
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.DateOnly)
	return &s
}

func major(m *domain.Money) *float64 {
	if m == nil {
		return nil
	}
	v := m.Major()
	return &v
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// handleListPrograms returns one page of the owner's programs. Filters are
// passed as query parameters; malformed integers result in HTTP 400 and the
// remaining checks are done by the use case.
func (h *Handler) handleListPrograms(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := port.ProgramQuery{
		Owner:       chi.URLParam(r, "owner"),
		Status:      q.Get("status"),
		ProgramType: q.Get("program_type"),
		BusinessID:  q.Get("business_id"),
		Search:      q.Get("search"),
		StartFrom:   q.Get("start_from"),
		EndTo:       q.Get("end_to"),
		MinBudget:   q.Get("min_budget"),
		MaxBudget:   q.Get("max_budget"),
	}

	var err error
	if query.Limit, err = intParam(q.Get("limit")); err != nil {
		h.writeError(w, badRequest("limit", "limit must be an integer"))
		return
	}
	if query.Offset, err = intParam(q.Get("offset")); err != nil {
		h.writeError(w, badRequest("offset", "offset must be an integer"))
		return
	}

	page, err := h.programs.ListPrograms(r.Context(), query)
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp := programPageDTO{
		Items:  make([]programDTO, 0, len(page.Items)),
		Total:  page.Total,
		Limit:  page.Limit,
		Offset: page.Offset,
	}
	for _, p := range page.Items {
		resp.Items = append(resp.Items, toProgramDTO(p))
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// handleGetProgram returns a single program or HTTP 404.
func (h *Handler) handleGetProgram(w http.ResponseWriter, r *http.Request) {
	p, err := h.programs.GetProgram(r.Context(), chi.URLParam(r, "owner"), chi.URLParam(r, "programID"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toProgramDTO(*p))
}

func intParam(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
