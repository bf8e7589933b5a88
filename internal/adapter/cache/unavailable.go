package cache

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable is returned by Unavailable for every operation.
var ErrUnavailable = errors.New("cache unavailable")

// Unavailable is the cache used when caching is disabled. Consumers check
// Available and go straight to the store.
type Unavailable struct{}

func (Unavailable) Available() bool { return false }

func (Unavailable) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, ErrUnavailable
}

func (Unavailable) Set(context.Context, string, []byte, time.Duration) error {
	return ErrUnavailable
}

func (Unavailable) Invalidate(context.Context, string) error {
	return ErrUnavailable
}
