package port

import (
	"context"
	"time"
)

// Cache is an advisory key-value store with per-entry TTL. Callers must check
// Available before use and fall back to the store or the partner API on any
// miss or error; a cache must never change results, only their latency.
type Cache interface {
	Available() bool
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Invalidate removes key. A pattern ending in '*' removes every key
	// with that prefix.
	Invalidate(ctx context.Context, pattern string) error
}
