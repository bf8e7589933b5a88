package partner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"adsync/internal/config/configs"
	"adsync/internal/core/domain"
)

const programsBreaker = "partner-programs"

// ProgramClient reads program pages from the partner programs API with basic
// auth. It implements port.PageFetcher.
type ProgramClient struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[domain.Page]
	logger  *slog.Logger
}

// NewProgramClient creates a client for cfg.BaseURL.
func NewProgramClient(cfg configs.Partner, logger *slog.Logger) *ProgramClient {
	return &ProgramClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    newHTTPClient(cfg.Timeout, cfg.ConnectTimeout, cfg.Concurrency),
		breaker: newBreaker[domain.Page](programsBreaker, logger),
		logger:  logger,
	}
}

// FetchPage fetches one page. Records that cannot be normalized are logged
// and skipped.
func (c *ProgramClient) FetchPage(ctx context.Context, creds domain.Credentials, req domain.PageRequest) (domain.Page, error) {
	op := fmt.Sprintf("fetch programs offset=%d", req.Offset)
	page, err := c.breaker.Execute(func() (domain.Page, error) {
		return c.fetchPage(ctx, op, creds, req)
	})
	if err != nil {
		return domain.Page{}, breakerError(op, err)
	}
	return page, nil
}

func (c *ProgramClient) fetchPage(ctx context.Context, op string, creds domain.Credentials, req domain.PageRequest) (domain.Page, error) {
	q := url.Values{}
	q.Set("offset", strconv.Itoa(req.Offset))
	q.Set("limit", strconv.Itoa(req.Limit))
	if req.Status != "" {
		q.Set("program_status", req.Status)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/programs?"+q.Encode(), nil)
	if err != nil {
		return domain.Page{}, &domain.UpstreamError{Op: op, StatusCode: http.StatusBadRequest, Err: err}
	}
	httpReq.SetBasicAuth(creds.Username, creds.Password)
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return domain.Page{}, &domain.UpstreamError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.Page{}, &domain.UpstreamError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Err:        errors.New(readBodyForError(resp.Body)),
		}
	}

	var body programsResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.Page{}, &domain.UpstreamError{Op: op, StatusCode: http.StatusBadGateway, Err: fmt.Errorf("decode response: %w", err)}
	}

	page := domain.Page{
		Programs: make([]domain.Program, 0, len(body.Items)),
		Total:    body.Total,
	}
	for _, raw := range body.Items {
		p, err := normalizeProgram(raw)
		if err != nil {
			id := rawProgramID(raw)
			c.logger.Warn("skipping malformed program",
				slog.Int("offset", req.Offset),
				slog.String("program_id", id),
				slog.Any("error", err))
			page.Skipped = append(page.Skipped, id)
			continue
		}
		page.Programs = append(page.Programs, p)
	}
	return page, nil
}
