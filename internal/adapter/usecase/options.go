package usecase

import "time"

// SyncOptions tunes the primary fetch and the owner id cache.
type SyncOptions struct {
	PageSize      int
	Concurrency   int
	RetryAttempts int
	RetryDelay    time.Duration
	ProgressEvery int
	IDCacheTTL    time.Duration
}

// DefaultSyncOptions mirrors the partner's limits: 40 records per page and
// 40 requests in flight.
func DefaultSyncOptions() SyncOptions {
	return SyncOptions{
		PageSize:      40,
		Concurrency:   40,
		RetryAttempts: 3,
		RetryDelay:    500 * time.Millisecond,
		ProgressEvery: 10,
		IDCacheTTL:    30 * time.Minute,
	}
}

// LinkerOptions tunes business resolution. Concurrency stays well below the
// primary fetch because the business API throttles at about 20 requests.
type LinkerOptions struct {
	Concurrency   int
	CacheTTL      time.Duration
	ProgressEvery int
}

func DefaultLinkerOptions() LinkerOptions {
	return LinkerOptions{
		Concurrency:   5,
		CacheTTL:      30 * time.Minute,
		ProgressEvery: 10,
	}
}
