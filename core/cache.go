package core

import "sync"

// ResultCache holds the records of one audit run keyed by analysis name,
// such as "health:contacts" or "churn". A nil cache computes every time.
type ResultCache struct {
	mu      sync.Mutex
	records map[string]any
}

// NewResultCache creates an empty cache.
func NewResultCache() *ResultCache {
	return &ResultCache{records: make(map[string]any)}
}

// Get returns the record stored under name.
func (c *ResultCache) Get(name string) (any, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.records[name]
	return v, ok
}

// Set stores a record under name, replacing any previous one.
func (c *ResultCache) Set(name string, record any) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records[name] = record
}

// cached returns the record stored under name, computing and storing it on a miss.
// A stored value of another type is recomputed.
func cached[T any](c *ResultCache, name string, compute func() T) T {
	if v, ok := c.Get(name); ok {
		if rec, ok := v.(T); ok {
			return rec
		}
	}
	rec := compute()
	c.Set(name, rec)
	return rec
}
