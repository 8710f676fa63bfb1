package engine

import (
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/seitarof/gen-optics/internal/model"
	"github.com/seitarof/gen-optics/internal/shape"
)

// analysis is one cached descriptor-plus-shape pair. ok is false when the
// feed could not describe the type; the miss is cached too, so an unknown
// type referenced from many roots is probed once.
type analysis struct {
	desc  *model.TypeDescriptor
	shape shape.Shape
	ok    bool
}

// Cache is the run-scoped analysis cache, keyed by type identity. It is
// read-mostly and safe for concurrent derivations of independent roots:
// lookup-or-compute guarantees each type is analyzed at most once per run.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]analysis
	group   singleflight.Group
}

// NewCache builds an empty run-scoped cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]analysis)}
}

// lookupOrCompute returns the cached analysis for key, computing and storing
// it on first use. Concurrent callers for the same key share one compute.
func (c *Cache) lookupOrCompute(key string, compute func() analysis) analysis {
	c.mu.RLock()
	a, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return a
	}

	v, _, _ := c.group.Do(key, func() (any, error) {
		c.mu.RLock()
		a, ok := c.entries[key]
		c.mu.RUnlock()
		if ok {
			return a, nil
		}
		a = compute()
		c.mu.Lock()
		c.entries[key] = a
		c.mu.Unlock()
		return a, nil
	})
	return v.(analysis)
}

// Len reports how many types have been analyzed so far.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
