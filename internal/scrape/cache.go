package scrape

import (
	"encoding/json/v2"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Cache stores fetch results keyed by exact URL with a TTL, so
// re-saving a recently seen URL skips the network round trip. Degraded
// results are never cached; a flaky site gets retried on the next save.
type Cache struct {
	db     *badger.DB
	ttl    time.Duration
	logger *slog.Logger
}

// NewCache opens a badger-backed cache at path. An empty path keeps the
// cache fully in memory, which tests use.
func NewCache(path string, ttl time.Duration, logger *slog.Logger) (*Cache, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	if path == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open scrape cache: %w", err)
	}

	return &Cache{db: db, ttl: ttl, logger: logger}, nil
}

// Close releases the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Healthy reports whether the underlying database is still open.
func (c *Cache) Healthy() bool {
	return !c.db.IsClosed()
}

// Get returns the cached result for a URL, or false when absent or
// expired.
func (c *Cache) Get(url string) (*Result, bool) {
	var result Result
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(url))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &result)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("scrape cache read failed", "url", url, "error", err)
		return nil, false
	}
	return &result, true
}

// Set caches a fetch result. Degraded results are dropped silently.
func (c *Cache) Set(url string, result *Result) {
	if result == nil || result.Degraded() {
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		c.logger.Warn("scrape cache encode failed", "url", url, "error", err)
		return
	}

	err = c.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(url), data).WithTTL(c.ttl)
		return txn.SetEntry(entry)
	})
	if err != nil {
		c.logger.Warn("scrape cache write failed", "url", url, "error", err)
	}
}
