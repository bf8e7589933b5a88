package partner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"adsync/internal/config/configs"
	"adsync/internal/core/domain"
)

const businessesBreaker = "partner-businesses"

// BusinessClient reads businesses from the partner business API with a
// bearer token. Requests are paced by a token bucket shared by all runs.
// It implements port.BusinessFetcher.
type BusinessClient struct {
	baseURL string
	token   string
	http    *http.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker[domain.BusinessInfo]
}

func NewBusinessClient(cfg configs.Business, logger *slog.Logger) *BusinessClient {
	return &BusinessClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		http:    newHTTPClient(cfg.Timeout, cfg.ConnectTimeout, cfg.Concurrency),
		limiter: rate.NewLimiter(rate.Limit(cfg.RatePerSecond), max(cfg.Burst, 1)),
		breaker: newBreaker[domain.BusinessInfo](businessesBreaker, logger),
	}
}

// FetchBusiness returns the business with id. A 404 yields an error wrapping
// domain.ErrBusinessNotFound; a 200 without a name is a transient failure.
func (c *BusinessClient) FetchBusiness(ctx context.Context, creds domain.Credentials, id string) (domain.BusinessInfo, error) {
	op := "fetch business " + id
	if err := c.limiter.Wait(ctx); err != nil {
		return domain.BusinessInfo{}, &domain.UpstreamError{Op: op, Err: err}
	}

	info, err := c.breaker.Execute(func() (domain.BusinessInfo, error) {
		return c.fetch(ctx, op, creds, id)
	})
	if err != nil {
		return domain.BusinessInfo{}, breakerError(op, err)
	}
	return info, nil
}

func (c *BusinessClient) fetch(ctx context.Context, op string, creds domain.Credentials, id string) (domain.BusinessInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/entities/"+url.PathEscape(id), nil)
	if err != nil {
		return domain.BusinessInfo{}, &domain.UpstreamError{Op: op, StatusCode: http.StatusBadRequest, Err: err}
	}
	token := creds.BusinessToken
	if token == "" {
		token = c.token
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.BusinessInfo{}, &domain.UpstreamError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.BusinessInfo{}, &domain.UpstreamError{Op: op, StatusCode: resp.StatusCode, Err: domain.ErrBusinessNotFound}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return domain.BusinessInfo{}, &domain.UpstreamError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Err:        errors.New(readBodyForError(resp.Body)),
		}
	}

	var body businessDTO
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.BusinessInfo{}, &domain.UpstreamError{Op: op, StatusCode: http.StatusBadGateway, Err: fmt.Errorf("decode response: %w", err)}
	}
	if strings.TrimSpace(body.Name) == "" {
		return domain.BusinessInfo{}, &domain.UpstreamError{Op: op, StatusCode: http.StatusBadGateway, Err: errors.New("business without name")}
	}
	return domain.BusinessInfo{Name: body.Name, URL: body.URL, Alias: body.Alias}, nil
}
