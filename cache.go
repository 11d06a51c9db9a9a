package pressroom

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/eringen/pressroom/meta"
)

// ErrNotFound is returned when a requested page does not exist.
var ErrNotFound = errors.New("page not found")

// Source supplies raw page records. content.Loader and Store implement it.
type Source interface {
	Pages(ctx context.Context) ([]meta.PageRecord, error)
}

// PageCache keeps the records of a Source in memory for a TTL. It caches the
// raw records only; listings and tag counts are derived on every request.
type PageCache struct {
	mu      sync.RWMutex
	pages   []meta.PageRecord
	fetched time.Time
	ttl     time.Duration
	source  Source
}

// NewPageCache creates a PageCache backed by src.
func NewPageCache(src Source, ttl time.Duration) *PageCache {
	return &PageCache{source: src, ttl: ttl}
}

func (c *PageCache) valid() bool {
	return c.pages != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *PageCache) Invalidate() {
	c.mu.Lock()
	c.pages = nil
	c.mu.Unlock()
}

// Pages returns the cached records, loading them when the cache is empty or
// stale. It tries a read lock first and only takes the write lock to reload.
func (c *PageCache) Pages(ctx context.Context) ([]meta.PageRecord, error) {
	c.mu.RLock()
	if c.valid() {
		pages := c.pages
		c.mu.RUnlock()
		return pages, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid() {
		return c.pages, nil
	}
	pages, err := c.source.Pages(ctx)
	if err != nil {
		return nil, err
	}
	if pages == nil {
		pages = []meta.PageRecord{}
	}
	c.pages = pages
	c.fetched = time.Now()
	return pages, nil
}

// Page returns the record published under route, drafts included.
func (c *PageCache) Page(ctx context.Context, route string) (meta.PageRecord, error) {
	pages, err := c.Pages(ctx)
	if err != nil {
		return meta.PageRecord{}, err
	}
	for _, p := range pages {
		if p.Route == route {
			return p, nil
		}
	}
	return meta.PageRecord{}, ErrNotFound
}
