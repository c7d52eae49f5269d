// Package tipcache provides a bounded in-memory TTL cache for generated tips,
// keyed by the rounded metrics that produced them.
package tipcache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/emberwatch/emberwatch/internal/domain/risk"
)

// Defaults for the in-memory cache.
const (
	defaultTTL     = 5 * time.Minute
	defaultMaxSize = 1000
)

// Entry is one cached tip response.
type Entry struct {
	Tips      []string
	Model     string
	CreatedAt time.Time
}

// Cache stores tip responses for identical inputs to avoid duplicate
// upstream calls.
type Cache interface {
	// Get returns the entry for key if present and not expired.
	Get(ctx context.Context, key string) (Entry, bool)

	// Put stores an entry under key, evicting as needed.
	Put(ctx context.Context, key string, e Entry)

	// Stats returns the total and still-valid entry counts.
	Stats(ctx context.Context) (total, valid int)
}

// Key builds a deterministic cache key from the metrics and category.
// Inputs are rounded to one decimal so near-identical requests share a key.
func Key(sleep, work, screen float64, category risk.Category) string {
	return fmt.Sprintf("%.1f|%.1f|%.1f|%s", sleep, work, screen, category)
}

// inMemoryCache implements Cache with a mutex-guarded map and oldest-first
// eviction once the size bound is reached.
type inMemoryCache struct {
	mu      sync.RWMutex
	entries map[string]Entry
	ttl     time.Duration
	maxSize int
	now     func() time.Time
}

// Option applies a configuration option to the cache.
type Option func(*inMemoryCache)

// WithTTL sets how long entries stay valid.
func WithTTL(ttl time.Duration) Option {
	return func(c *inMemoryCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithMaxSize bounds the number of stored entries.
func WithMaxSize(size int) Option {
	return func(c *inMemoryCache) {
		if size > 0 {
			c.maxSize = size
		}
	}
}

// WithClock overrides the time source, used by tests to control expiry.
func WithClock(now func() time.Time) Option {
	return func(c *inMemoryCache) {
		if now != nil {
			c.now = now
		}
	}
}

// New creates an in-memory cache with configuration options.
func New(opts ...Option) Cache {
	c := &inMemoryCache{
		entries: make(map[string]Entry),
		ttl:     defaultTTL,
		maxSize: defaultMaxSize,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *inMemoryCache) Get(_ context.Context, key string) (Entry, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || c.expired(e) {
		return Entry{}, false
	}
	return e, true
}

func (c *inMemoryCache) Put(_ context.Context, key string, e Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e.CreatedAt.IsZero() {
		e.CreatedAt = c.now()
	}
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxSize {
		c.evict()
	}
	c.entries[key] = e
}

func (c *inMemoryCache) Stats(_ context.Context) (total, valid int) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total = len(c.entries)
	for _, e := range c.entries {
		if !c.expired(e) {
			valid++
		}
	}
	return total, valid
}

func (c *inMemoryCache) expired(e Entry) bool {
	return c.now().Sub(e.CreatedAt) >= c.ttl
}

// evict drops all expired entries, falling back to the oldest entry when
// nothing has expired yet. Called with the lock held.
func (c *inMemoryCache) evict() {
	var oldestKey string
	var oldestAt time.Time
	for k, e := range c.entries {
		if c.expired(e) {
			delete(c.entries, k)
			continue
		}
		if oldestKey == "" || e.CreatedAt.Before(oldestAt) {
			oldestKey, oldestAt = k, e.CreatedAt
		}
	}
	if len(c.entries) >= c.maxSize && oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}
