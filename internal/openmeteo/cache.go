package openmeteo

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

const cacheDuration = 30 * time.Minute

type cacheEntry struct {
	body      []byte
	fetchedAt time.Time
}

// responseCache memoizes raw API bodies keyed by request URL so repeated
// fetches inside the TTL stay off the network.
type responseCache struct {
	clock   clockwork.Clock
	entries map[string]cacheEntry
	mu      sync.RWMutex
}

func newResponseCache(clock clockwork.Clock) *responseCache {
	return &responseCache{
		clock:   clock,
		entries: make(map[string]cacheEntry),
	}
}

func (c *responseCache) get(key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok || c.clock.Since(entry.fetchedAt) > cacheDuration {
		return nil, false
	}
	return entry.body, true
}

func (c *responseCache) put(key string, body []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{body: body, fetchedAt: c.clock.Now()}
}
