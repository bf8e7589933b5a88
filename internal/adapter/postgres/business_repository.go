package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"adsync/internal/core/domain"
)

// BusinessRepository implements port.BusinessRepository. Businesses are
// shared by all owners and never deleted by a sync.
type BusinessRepository struct {
	pool *pgxpool.Pool
}

func NewBusinessRepository(pool *pgxpool.Pool) *BusinessRepository {
	return &BusinessRepository{pool: pool}
}

// FindCached returns successfully fetched businesses among ids cached within
// maxAge.
func (r *BusinessRepository) FindCached(ctx context.Context, ids []string, maxAge time.Duration) (map[string]domain.Business, error) {
	found := make(map[string]domain.Business, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT business_id, name, url, alias, fetch_failed, cached_at
FROM businesses
WHERE business_id = ANY($1)
  AND NOT fetch_failed
  AND name IS NOT NULL
  AND cached_at > now() - $2::interval`,
		ids, pgtype.Interval{Microseconds: maxAge.Microseconds(), Valid: true})
	if err != nil {
		return nil, err
	}
	businesses, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Business, error) {
		var b domain.Business
		err := row.Scan(&b.BusinessID, &b.Name, &b.URL, &b.Alias, &b.FetchFailed, &b.CachedAt)
		return b, err
	})
	if err != nil {
		return nil, err
	}
	for _, b := range businesses {
		found[b.BusinessID] = b
	}
	return found, nil
}

// UpsertBusinesses writes businesses in one statement. A failed fetch keeps
// previously known attributes but marks the row for refetching.
func (r *BusinessRepository) UpsertBusinesses(ctx context.Context, businesses []domain.Business) error {
	if len(businesses) == 0 {
		return nil
	}

	// ON CONFLICT cannot touch the same row twice in one statement.
	index := make(map[string]int, len(businesses))
	var (
		ids         []string
		names, urls []*string
		aliases     []*string
		failed      []bool
		cachedAt    []time.Time
	)
	for _, b := range businesses {
		if b.CachedAt.IsZero() {
			b.CachedAt = time.Now().UTC()
		}
		if i, ok := index[b.BusinessID]; ok {
			names[i], urls[i], aliases[i], failed[i], cachedAt[i] = b.Name, b.URL, b.Alias, b.FetchFailed, b.CachedAt
			continue
		}
		index[b.BusinessID] = len(ids)
		ids = append(ids, b.BusinessID)
		names = append(names, b.Name)
		urls = append(urls, b.URL)
		aliases = append(aliases, b.Alias)
		failed = append(failed, b.FetchFailed)
		cachedAt = append(cachedAt, b.CachedAt)
	}

	_, err := r.pool.Exec(ctx, `
INSERT INTO businesses (business_id, name, url, alias, fetch_failed, cached_at)
SELECT * FROM unnest($1::text[], $2::text[], $3::text[], $4::text[], $5::boolean[], $6::timestamptz[])
ON CONFLICT (business_id) DO UPDATE SET
    name         = COALESCE(EXCLUDED.name, businesses.name),
    url          = COALESCE(EXCLUDED.url, businesses.url),
    alias        = COALESCE(EXCLUDED.alias, businesses.alias),
    fetch_failed = EXCLUDED.fetch_failed,
    cached_at    = EXCLUDED.cached_at`,
		ids, names, urls, aliases, failed, cachedAt)
	return err
}
