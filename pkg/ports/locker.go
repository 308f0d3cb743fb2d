package ports

import (
	"context"
	"time"
)

// UnlockFunc is a function that releases a distributed lock.
type UnlockFunc func(ctx context.Context) error

// DistributedLocker coordinates generation of the same key across replicas,
// so an expensive depth is computed once and served from the cache afterwards.
type DistributedLocker interface {
	// Lock blocks until the lock for key is acquired or ctx is canceled.
	// Returns an UnlockFunc that MUST be called to release the lock.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
