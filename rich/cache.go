package rich

import "sync"

type cacheKey struct {
	text *Text
	c    Constraints
}

// Cache memoizes Measure results by text identity and constraints,
// evicting the oldest entries beyond its limit. It is safe for concurrent
// use.
type Cache struct {
	lo    *Layouter
	limit int

	mu      sync.Mutex
	entries map[cacheKey]*Layout
	order   []cacheKey
}

// NewCache returns a cache in front of lo holding at most limit layouts.
func NewCache(lo *Layouter, limit int) *Cache {
	return &Cache{
		lo:      lo,
		limit:   max(limit, 1),
		entries: make(map[cacheKey]*Layout),
	}
}

// Measure returns the cached layout for (t, c), measuring on a miss.
func (c *Cache) Measure(t *Text, cons Constraints) *Layout {
	k := cacheKey{t, cons}
	c.mu.Lock()
	l, ok := c.entries[k]
	c.mu.Unlock()
	if ok {
		return l
	}
	l = c.lo.Measure(t, cons)

	c.mu.Lock()
	defer c.mu.Unlock()
	if prev, ok := c.entries[k]; ok {
		return prev
	}
	c.entries[k] = l
	c.order = append(c.order, k)
	for len(c.order) > c.limit {
		delete(c.entries, c.order[0])
		c.order = c.order[1:]
	}
	return l
}

// Len returns the number of cached layouts.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Invalidate drops every layout of t.
func (c *Cache) Invalidate(t *Text) {
	c.mu.Lock()
	defer c.mu.Unlock()
	kept := c.order[:0]
	for _, k := range c.order {
		if k.text == t {
			delete(c.entries, k)
			continue
		}
		kept = append(kept, k)
	}
	c.order = kept
}
