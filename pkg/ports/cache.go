package ports

import (
	"context"

	"github.com/aretw0/penrose/pkg/domain"
)

// SegmentCache memoises generation results by request key.
// Generation is deterministic, so a cached result is always valid for its key.
type SegmentCache interface {
	// Get returns the cached result. Returns domain.ErrCacheMiss if absent.
	Get(ctx context.Context, key string) (*domain.Result, error)

	// Put stores the result under key.
	Put(ctx context.Context, key string, res *domain.Result) error

	// Delete removes the entry for key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
