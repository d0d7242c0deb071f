package store

import (
	"sync"

	"github.com/defrec/defrec/internal/index"
)

// Cached wraps a Store and memoizes Load, so repeated queries in one
// process reuse the same in-memory index instead of re-reading storage.
//
// The cache is an explicit object owned by the caller, never hidden
// process-wide state. A process that builds and then queries in the
// same run must call Invalidate (Save does it automatically) or the
// pre-build load result, including a not-found error, would stick.
type Cached struct {
	inner Store

	mu     sync.Mutex
	loaded *index.Index
}

// NewCached wraps inner with load memoization.
func NewCached(inner Store) *Cached {
	return &Cached{inner: inner}
}

// Save delegates to the inner store and invalidates the cached load.
func (c *Cached) Save(idx *index.Index) error {
	if err := c.inner.Save(idx); err != nil {
		return err
	}
	c.Invalidate()
	return nil
}

// Load returns the memoized index, reading storage only on the first
// call after creation or invalidation. Load errors are not memoized.
func (c *Cached) Load() (*index.Index, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded != nil {
		return c.loaded, nil
	}

	idx, err := c.inner.Load()
	if err != nil {
		return nil, err
	}
	c.loaded = idx
	return idx, nil
}

// Invalidate drops the memoized index; the next Load re-reads storage.
func (c *Cached) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaded = nil
}

// Location returns the inner store's location.
func (c *Cached) Location() string {
	return c.inner.Location()
}
