package memory

import (
	"context"
	"sync"

	"github.com/aretw0/penrose/pkg/domain"
)

// Cache implements ports.SegmentCache in memory.
// Safe for concurrent use.
type Cache struct {
	data map[string]*domain.Result
	mu   sync.RWMutex
}

// NewCache creates a new in-memory cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string]*domain.Result),
	}
}

// Put stores a copy of res so later caller mutations do not leak in.
func (c *Cache) Put(ctx context.Context, key string, res *domain.Result) error {
	copied := res.Clone()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = copied
	return nil
}

// Get retrieves a copy of the cached result.
func (c *Cache) Get(ctx context.Context, key string) (*domain.Result, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	res, ok := c.data[key]
	if !ok {
		return nil, domain.ErrCacheMiss
	}
	return res.Clone(), nil
}

// Delete removes the entry.
func (c *Cache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

// Len returns the number of cached results.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}
