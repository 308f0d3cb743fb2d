package memo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/penrose/internal/logging"
	"github.com/aretw0/penrose/pkg/domain"
	"github.com/aretw0/penrose/pkg/ports"
)

// DefaultLockTTL bounds how long a distributed generation lock is held.
const DefaultLockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Memo serves generation results from a cache, generating on a miss.
// It uses reference counting to garbage collect unused locks.
type Memo struct {
	gen   ports.Generator
	cache ports.SegmentCache

	mu    sync.Mutex
	locks map[string]*lockEntry

	locker  ports.DistributedLocker
	lockTTL time.Duration
	logger  *slog.Logger
}

// Option configures the Memo.
type Option func(*Memo)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Memo) {
		m.locker = locker
	}
}

// WithLockTTL overrides DefaultLockTTL.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Memo) {
		if ttl > 0 {
			m.lockTTL = ttl
		}
	}
}

// WithLogger configures a logger for the Memo.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Memo) {
		m.logger = logger
	}
}

// New creates a Memo generating with gen and storing into cache.
func New(gen ports.Generator, cache ports.SegmentCache, opts ...Option) *Memo {
	m := &Memo{
		gen:     gen,
		cache:   cache,
		locks:   make(map[string]*lockEntry),
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Key returns the cache key for req under the generator's tiling and pass mode.
func (m *Memo) Key(req domain.Request) string {
	return req.Key(m.gen.Tiling().Name, m.gen.Passes(req.Depth))
}

// Run returns the cached result for req, generating and storing it on a miss.
// The boolean reports whether the result came from the cache.
// Cache failures degrade to a direct generation.
func (m *Memo) Run(ctx context.Context, req domain.Request) (*domain.Result, bool, error) {
	key := m.Key(req)

	var (
		res *domain.Result
		hit bool
	)
	err := m.WithLock(ctx, key, func(ctx context.Context) error {
		cached, err := m.cache.Get(ctx, key)
		if err == nil {
			res, hit = cached, true
			return nil
		}
		if !errors.Is(err, domain.ErrCacheMiss) {
			m.logger.Warn("Cache read failed, generating directly", "key", key, "err", err)
		}

		res, err = m.gen.Run(req)
		if err != nil {
			return err
		}
		if err := m.cache.Put(ctx, key, res); err != nil {
			m.logger.Warn("Cache write failed", "key", key, "err", err)
		}
		return nil
	})
	return res, hit, err
}

// Forget drops the cached result for req.
func (m *Memo) Forget(ctx context.Context, req domain.Request) error {
	key := m.Key(req)
	return m.WithLock(ctx, key, func(ctx context.Context) error {
		return m.cache.Delete(ctx, key)
	})
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(key) after unlocking.
func (m *Memo) acquire(key string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[key]
	if !exists {
		entry = &lockEntry{}
		m.locks[key] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Memo) release(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[key]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, key)
	}
}

// WithLock executes fn while holding the lock for key.
func (m *Memo) WithLock(ctx context.Context, key string, fn func(context.Context) error) error {
	entry := m.acquire(key)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(key)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, key, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"key", key,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
