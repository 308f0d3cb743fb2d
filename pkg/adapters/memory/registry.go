package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/penrose/pkg/domain"
)

// Registry implements ports.TilingSource with an in-memory map.
type Registry struct {
	mu      sync.RWMutex
	tilings map[string]domain.Tiling
}

// NewRegistry creates a registry holding the given tilings.
func NewRegistry(tilings ...domain.Tiling) (*Registry, error) {
	r := &Registry{tilings: make(map[string]domain.Tiling)}
	for _, t := range tilings {
		if err := r.Register(t); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// NewDefaultRegistry returns a registry holding the built-in Penrose tiling.
func NewDefaultRegistry() *Registry {
	r, _ := NewRegistry(domain.PenroseTiling())
	return r
}

// Register validates and adds a tiling.
// If a tiling with the same name exists, it is overwritten.
func (r *Registry) Register(t domain.Tiling) error {
	if t.Name == "" {
		return fmt.Errorf("tiling missing name")
	}
	if err := t.Validate(); err != nil {
		return fmt.Errorf("tiling %s: %w", t.Name, err)
	}
	t.Seed = append(domain.Sequence(nil), t.Seed...)
	t.Rules = t.Rules.Clone()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.tilings[t.Name] = t
	return nil
}

// Get returns a copy of the named tiling.
func (r *Registry) Get(ctx context.Context, name string) (domain.Tiling, error) {
	r.mu.RLock()
	t, ok := r.tilings[name]
	r.mu.RUnlock()

	if !ok {
		return domain.Tiling{}, fmt.Errorf("%w: %s", domain.ErrTilingNotFound, name)
	}
	t.Seed = append(domain.Sequence(nil), t.Seed...)
	t.Rules = t.Rules.Clone()
	return t, nil
}

// List returns all tiling names in sorted order.
func (r *Registry) List(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tilings))
	for name := range r.tilings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
