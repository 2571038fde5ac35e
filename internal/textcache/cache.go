package textcache

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/usestring/roadmap-mcp/internal/feature"
)

// Cache is a thread-safe LRU of normalized (markup-stripped, case-folded)
// search text per feature. Entries are keyed by id plus the modified
// timestamp so edited features never serve stale text across snapshots.
type Cache struct {
	cache *lru.Cache[string, string]
}

// New creates a cache holding at most maxItems normalized texts.
func New(maxItems int) (*Cache, error) {
	c, err := lru.New[string, string](maxItems)
	if err != nil {
		return nil, err
	}
	return &Cache{cache: c}, nil
}

// SearchText returns the feature's title and description as one folded,
// markup-free string suitable for substring matching.
func (c *Cache) SearchText(f *feature.Feature) string {
	key := f.ID + "\x00" + f.Modified
	if text, ok := c.cache.Get(key); ok {
		return text
	}
	text := Fold(f.Title + " " + StripMarkup(f.Description))
	c.cache.Add(key, text)
	return text
}

// Len returns the current number of cached texts.
func (c *Cache) Len() int {
	return c.cache.Len()
}
