package resolver

import (
	"context"
	"sync"

	"github.com/nar-resolver/internal/nar"
	"github.com/nar-resolver/internal/normalize"
)

// narrowCacheLimit bounds the narrow cache. Exceeding it clears the whole
// cache before the next insert; there is no partial eviction.
const narrowCacheLimit = 2000

// placeCache holds every distinct municipality name in the register alongside
// its simplified form, loaded once per process on first use and read-only
// afterwards. Concurrent load attempts serialize and converge on one content.
type placeCache struct {
	mu     sync.Mutex
	loaded bool
	names  []string
	simple []string
}

// load populates the cache from the store if it has not been populated yet.
func (c *placeCache) load(ctx context.Context, store Store) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded {
		return nil
	}

	names, err := store.DistinctPlaces(ctx)
	if err != nil {
		return err
	}

	c.names = names
	c.simple = make([]string, len(names))
	for i, name := range names {
		c.simple[i] = normalize.Simplify(name)
	}
	c.loaded = true
	return nil
}

// original maps a simplified place name back to its first original spelling.
func (c *placeCache) original(simple string) string {
	for i, s := range c.simple {
		if s == simple {
			return c.names[i]
		}
	}
	return ""
}

// narrowCache memoizes street-narrowing query results keyed by the predicate
// serialization. A full clear under the mutex keeps readers from observing a
// half-cleared cache.
type narrowCache struct {
	mu      sync.Mutex
	entries map[string][]nar.StreetTriple
}

func (c *narrowCache) get(key string) ([]nar.StreetTriple, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rows, ok := c.entries[key]
	return rows, ok
}

func (c *narrowCache) put(key string, rows []nar.StreetTriple) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) > narrowCacheLimit {
		c.entries = nil
	}
	if c.entries == nil {
		c.entries = make(map[string][]nar.StreetTriple)
	}
	c.entries[key] = rows
}

func (c *narrowCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
