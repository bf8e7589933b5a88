package port

import (
	"context"
	"time"

	"adsync/internal/core/domain"
)

// BusinessRepository stores businesses shared by all owners.
type BusinessRepository interface {
	// FindCached returns the businesses among ids that were fetched
	// successfully within maxAge. Rows marked as failed are never returned
	// so that they are fetched again.
	FindCached(ctx context.Context, ids []string, maxAge time.Duration) (map[string]domain.Business, error)
	// UpsertBusinesses writes all businesses in one statement keyed by
	// business id.
	UpsertBusinesses(ctx context.Context, businesses []domain.Business) error
}
