package analytics

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/chrisdamba/menuprofit/internal/models"
)

// Versioner reports an opaque token that changes whenever catalog or order data changes.
type Versioner interface {
	DataVersion(ctx context.Context) (string, error)
}

type cacheEntry struct {
	value     models.AnalyticsResult
	expiresAt time.Time
}

// Cache memoizes results per (filter window, platform, data version). Cached results are shared;
// callers must not mutate them.
type Cache struct {
	mu         sync.Mutex
	entries    map[string]cacheEntry
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

func NewCache(ttl time.Duration, maxEntries int) *Cache {
	if maxEntries <= 0 {
		maxEntries = 500
	}
	return &Cache{
		entries:    make(map[string]cacheEntry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func cacheKey(filter models.Filter, version string) string {
	f := filter.Normalize()
	return strings.Join([]string{"menu_analytics", f.StartDate, f.EndDate, f.Platform, version}, "|")
}

func (c *Cache) Get(key string) (models.AnalyticsResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return models.AnalyticsResult{}, false
	}
	if c.now().After(entry.expiresAt) {
		delete(c.entries, key)
		return models.AnalyticsResult{}, false
	}
	return entry.value, true
}

func (c *Cache) Set(key string, value models.AnalyticsResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.maxEntries {
		c.entries = make(map[string]cacheEntry)
	}
	c.entries[key] = cacheEntry{value: value, expiresAt: c.now().Add(c.ttl)}
}

// Invalidate drops every entry, e.g. after a seed or import.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
