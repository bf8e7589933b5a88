package partner

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"adsync/internal/core/domain"
)

type programsResponse struct {
	Items []json.RawMessage `json:"items"`
	Total int               `json:"total"`
}

type programDTO struct {
	ProgramID          string             `json:"program_id"`
	ProgramType        string             `json:"program_type"`
	ProgramStatus      string             `json:"program_status"`
	ProgramPauseStatus string             `json:"program_pause_status"`
	StartDate          string             `json:"start_date"`
	EndDate            string             `json:"end_date"`
	Budget             *int64             `json:"budget"`
	Currency           string             `json:"currency"`
	IsAutobid          *bool              `json:"is_autobid"`
	MaxBid             *int64             `json:"max_bid"`
	Metrics            *programMetricsDTO `json:"program_metrics"`
	ActiveFeatures     []string           `json:"active_features"`
	AvailableFeatures  []string           `json:"available_features"`
	Businesses         json.RawMessage    `json:"businesses"`
}

type programMetricsDTO struct {
	Impressions int64 `json:"impressions"`
	Clicks      int64 `json:"clicks"`
	Cost        int64 `json:"cost"`
}

type businessRefDTO struct {
	EntityID string `json:"entity_id"`
}

type businessDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	URL   string `json:"url"`
	Alias string `json:"alias"`
}

const pauseStatusPaused = "PAUSED"

// normalizeProgram converts one upstream record into a domain.Program. It
// is the only place that knows about the partner's optional and
// inconsistent fields.
func normalizeProgram(raw []byte) (domain.Program, error) {
	var dto programDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return domain.Program{}, fmt.Errorf("decode program: %w", err)
	}
	if dto.ProgramID == "" {
		return domain.Program{}, errors.New("program without program_id")
	}

	p := domain.Program{
		ProgramID:   dto.ProgramID,
		ProgramType: dto.ProgramType,
		Lifecycle:   strings.ToUpper(dto.ProgramStatus),
		Paused:      strings.EqualFold(dto.ProgramPauseStatus, pauseStatusPaused),
		Currency:    strings.ToUpper(dto.Currency),
		Budget:      nonNegative(dto.Budget),
	}

	var err error
	if p.StartDate, err = parseDate(dto.StartDate); err != nil {
		return domain.Program{}, fmt.Errorf("program %s start_date: %w", dto.ProgramID, err)
	}
	if p.EndDate, err = parseDate(dto.EndDate); err != nil {
		return domain.Program{}, fmt.Errorf("program %s end_date: %w", dto.ProgramID, err)
	}
	if p.EndDate != nil && domain.IsOpenEnded(*p.EndDate) {
		p.EndDate = nil
	}

	manual := (dto.IsAutobid != nil && !*dto.IsAutobid) || (dto.IsAutobid == nil && dto.MaxBid != nil)
	if manual {
		p.BidStrategy = domain.BidManual
		p.MaxBid = nonNegative(dto.MaxBid)
	} else {
		p.BidStrategy = domain.BidAutomatic
	}

	if m := dto.Metrics; m != nil {
		p.Impressions = max(m.Impressions, 0)
		p.Clicks = max(m.Clicks, 0)
		p.Cost = domain.Money(max(m.Cost, 0))
	}

	p.ActiveFeatures = tagSet(dto.ActiveFeatures)
	p.AvailableFeatures = tagSet(dto.AvailableFeatures)

	if biz := bytes.TrimSpace(dto.Businesses); len(biz) > 0 && !bytes.Equal(biz, []byte("null")) {
		var refs []businessRefDTO
		if err = json.Unmarshal(biz, &refs); err != nil {
			return domain.Program{}, fmt.Errorf("program %s businesses: %w", dto.ProgramID, err)
		}
		if len(refs) > 0 {
			p.BusinessRef = refs[0].EntityID
		}
		p.Metadata = append([]byte(nil), biz...)
	}
	return p, nil
}

// rawProgramID reads only the id of a record that failed normalization.
// It returns "" when even that is unreadable.
func rawProgramID(raw []byte) string {
	var head struct {
		ProgramID string `json:"program_id"`
	}
	if json.Unmarshal(raw, &head) != nil {
		return ""
	}
	return head.ProgramID
}

// parseDate accepts YYYY-MM-DD or a timestamp starting with it.
func parseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if len(s) > len(time.DateOnly) {
		s = s[:len(time.DateOnly)]
	}
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func nonNegative(cents *int64) *domain.Money {
	if cents == nil || *cents < 0 {
		return nil
	}
	return domain.NewMoney(domain.Money(*cents))
}

// tagSet returns the sorted unique non-empty tags.
func tagSet(tags []string) []string {
	set := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := set[tag]; ok {
			continue
		}
		set[tag] = struct{}{}
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}
