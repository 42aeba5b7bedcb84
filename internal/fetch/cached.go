package fetch

import (
	"strings"
	"sync"
	"time"
)

const (
	DefaultCacheTTL       = 24 * time.Hour
	DefaultFailureBackoff = 10 * time.Minute
)

type cacheEntry struct {
	posting   Posting
	fetchedAt time.Time
}

type failure struct {
	until  time.Time
	reason string
}

// Cache keeps fetched postings in memory for a TTL and remembers failed URLs for a
// backoff period. It is safe for concurrent use.
type Cache struct {
	mu       sync.Mutex
	ttl      time.Duration
	backoff  time.Duration
	entries  map[string]cacheEntry
	failures map[string]failure
	now      func() time.Time
}

// NewCache creates a cache. Non-positive durations select the defaults.
func NewCache(ttl, backoff time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if backoff <= 0 {
		backoff = DefaultFailureBackoff
	}
	return &Cache{
		ttl:      ttl,
		backoff:  backoff,
		entries:  make(map[string]cacheEntry),
		failures: make(map[string]failure),
		now:      time.Now,
	}
}

func cacheKey(url string) string {
	return strings.TrimRight(strings.TrimSpace(url), "/")
}

// Get returns a fresh posting for url. Expired entries are evicted.
func (c *Cache) Get(url string) (*Posting, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey(url)
	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.fetchedAt) >= c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	p := entry.posting
	return &p, true
}

// Put stores a posting and clears any recorded failure for its URL.
func (c *Cache) Put(url string, p *Posting) {
	if p == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey(url)
	c.entries[key] = cacheEntry{posting: *p, fetchedAt: c.now()}
	delete(c.failures, key)
}

// MarkFailed records that url could not be fetched.
func (c *Cache) MarkFailed(url, reason string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failures[cacheKey(url)] = failure{until: c.now().Add(c.backoff), reason: reason}
}

// ShouldSkip reports whether url failed recently, with the recorded reason.
func (c *Cache) ShouldSkip(url string) (bool, string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey(url)
	f, ok := c.failures[key]
	if !ok {
		return false, ""
	}
	if !c.now().Before(f.until) {
		delete(c.failures, key)
		return false, ""
	}
	return true, f.reason
}

// Len returns the number of cached postings, fresh or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
