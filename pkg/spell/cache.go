package spell

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/bastiangx/spellserve/internal/utils"
)

// CacheStats reports the result cache's occupancy and hit counters. The
// counters let callers observe whether a check was answered from cache or
// re-evaluated against the dictionary.
type CacheStats struct {
	Size     int
	Capacity int
	Hits     uint64
	Misses   uint64
}

// ResultCache is a bounded LRU cache mapping (language, normalized word) to
// a correctness boolean. Safe for concurrent use.
type ResultCache struct {
	lru      *lru.Cache[string, bool]
	capacity int
	hits     atomic.Uint64
	misses   atomic.Uint64
}

// NewResultCache creates a cache with the given capacity.
func NewResultCache(capacity int) (*ResultCache, error) {
	c, err := lru.New[string, bool](capacity)
	if err != nil {
		return nil, err
	}
	return &ResultCache{lru: c, capacity: capacity}, nil
}

// Get returns the cached correctness for (lang, word) and whether it was
// present. Words are normalized before keying, so "Hello" and "hello"
// share a slot.
func (c *ResultCache) Get(lang, word string) (bool, bool) {
	v, ok := c.lru.Get(cacheKey(lang, word))
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return v, ok
}

// Put stores the correctness for (lang, word), evicting the least-recently
// used entry when past capacity.
func (c *ResultCache) Put(lang, word string, correct bool) {
	c.lru.Add(cacheKey(lang, word), correct)
}

// Contains reports presence without updating recency or counters.
func (c *ResultCache) Contains(lang, word string) bool {
	return c.lru.Contains(cacheKey(lang, word))
}

// Purge drops every entry. Counters are kept.
func (c *ResultCache) Purge() {
	c.lru.Purge()
}

// Stats returns a snapshot of occupancy and counters.
func (c *ResultCache) Stats() CacheStats {
	return CacheStats{
		Size:     c.lru.Len(),
		Capacity: c.capacity,
		Hits:     c.hits.Load(),
		Misses:   c.misses.Load(),
	}
}

func cacheKey(lang, word string) string {
	return lang + "\x00" + utils.NormalizeWord(word)
}
