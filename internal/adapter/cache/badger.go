// Package cache implements port.Cache on top of BadgerDB.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Badger is a TTL cache backed by BadgerDB. It runs in memory when no path
// is configured, so cached values then only survive for the process
// lifetime.
type Badger struct {
	db     *badger.DB
	logger *slog.Logger
}

// OpenBadger opens the cache at path, or an in-memory instance when path is
// empty. The caller must Close it.
func OpenBadger(path string, logger *slog.Logger) (*Badger, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil
	opts.ValueLogFileSize = 16 << 20

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger cache: %w", err)
	}
	return &Badger{db: db, logger: logger}, nil
}

// Available reports whether the cache can serve requests.
func (b *Badger) Available() bool {
	return b != nil && b.db != nil && !b.db.IsClosed()
}

// Get returns the value of key. Expired and missing keys are misses.
func (b *Badger) Get(_ context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key. A non-positive ttl never expires.
func (b *Badger) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	return b.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(key), value)
		if ttl > 0 {
			entry = entry.WithTTL(ttl)
		}
		return txn.SetEntry(entry)
	})
}

// Invalidate removes key, or every key with the given prefix when pattern
// ends in '*'.
func (b *Badger) Invalidate(_ context.Context, pattern string) error {
	if prefix, ok := strings.CutSuffix(pattern, "*"); ok {
		if err := b.db.DropPrefix([]byte(prefix)); err != nil {
			return fmt.Errorf("cache drop prefix %s: %w", prefix, err)
		}
		return nil
	}
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(pattern))
	})
}

// RunGC reclaims value log space. It is a no-op in memory.
func (b *Badger) RunGC() {
	if !b.Available() || b.db.Opts().InMemory {
		return
	}
	for {
		if err := b.db.RunValueLogGC(0.5); err != nil {
			if !errors.Is(err, badger.ErrNoRewrite) {
				b.logger.Debug("cache gc stopped", slog.Any("error", err))
			}
			return
		}
	}
}

// Close releases the database.
func (b *Badger) Close() error {
	if !b.Available() {
		return nil
	}
	return b.db.Close()
}
