package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/penrose"
	"github.com/aretw0/penrose/internal/config"
	"github.com/aretw0/penrose/internal/logging"
	"github.com/aretw0/penrose/pkg/adapters/loam"
	"github.com/aretw0/penrose/pkg/adapters/memory"
	"github.com/aretw0/penrose/pkg/adapters/redis"
	"github.com/aretw0/penrose/pkg/domain"
	"github.com/aretw0/penrose/pkg/observability"
	"github.com/aretw0/penrose/pkg/ports"
	"github.com/aretw0/penrose/pkg/schema"
	"github.com/aretw0/penrose/pkg/tiling"
)

// CreateLogger configures the application logger. Outside debug mode only
// warnings reach stderr, so stdout stays clean for segment output.
func CreateLogger(debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.New(slog.LevelWarn)
}

// OpenSource returns the tiling catalog named by the config, or the built-in registry.
func OpenSource(cfg config.Config) (ports.TilingSource, error) {
	if cfg.Catalog == "" {
		return memory.NewDefaultRegistry(), nil
	}
	catalog, err := loam.Open(cfg.Catalog)
	if err != nil {
		return nil, err
	}
	return catalog, nil
}

// ResolveTiling loads the tiling selected by the config. A tiling file wins
// over a named tiling.
func ResolveTiling(ctx context.Context, cfg config.Config) (domain.Tiling, error) {
	if cfg.TilingFile != "" {
		t, err := tiling.LoadFile(cfg.TilingFile)
		if err != nil {
			return domain.Tiling{}, fmt.Errorf("error loading tiling file: %w", err)
		}
		return t, nil
	}

	src, err := OpenSource(cfg)
	if err != nil {
		return domain.Tiling{}, err
	}
	t, err := src.Get(ctx, cfg.Tiling)
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, domain.ErrTilingNotFound) {
		return domain.Tiling{}, err
	}
	names, listErr := src.List(ctx)
	if listErr != nil {
		return domain.Tiling{}, err
	}
	if best := schema.Suggest(cfg.Tiling, names); best != "" {
		return domain.Tiling{}, fmt.Errorf("%w, did you mean %q?", err, best)
	}
	return domain.Tiling{}, fmt.Errorf("%w (available: %v)", err, names)
}

// NewGenerator builds a generator for the configured tiling. Extra hooks are
// combined with the debug hooks installed in debug mode.
func NewGenerator(ctx context.Context, cfg config.Config, logger *slog.Logger, hooks ...domain.LifecycleHooks) (*penrose.Generator, error) {
	t, err := ResolveTiling(ctx, cfg)
	if err != nil {
		return nil, err
	}

	opts := []penrose.Option{
		penrose.WithTiling(t),
		penrose.WithLogger(logger),
		penrose.WithSegmentBudget(cfg.SegmentBudget),
	}
	if cfg.MaxDepth > 0 {
		opts = append(opts, penrose.WithMaxDepth(cfg.MaxDepth))
	}
	if cfg.ExactPasses {
		opts = append(opts, penrose.WithExactPasses())
	}
	if cfg.Debug {
		hooks = append(hooks, observability.LogHooks(logger))
	}
	if len(hooks) > 0 {
		opts = append(opts, penrose.WithLifecycleHooks(observability.Combine(hooks...)))
	}

	gen, err := penrose.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing generator: %w", err)
	}
	return gen, nil
}

// NewCache returns the result cache and locker for the config. With a Redis
// address both are shared through Redis; otherwise they live in memory.
// The returned close function releases the connection.
func NewCache(ctx context.Context, cfg config.Config) (ports.SegmentCache, ports.DistributedLocker, func() error, error) {
	if cfg.Redis.Addr == "" {
		return memory.NewCache(), memory.NewLocker(), func() error { return nil }, nil
	}

	opts := []redis.Option{redis.WithTTL(cfg.Redis.TTL)}
	if cfg.Redis.Compress {
		opts = append(opts, redis.WithCompression())
	}
	cache := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, opts...)
	if err := cache.Ping(ctx); err != nil {
		_ = cache.Client().Close()
		return nil, nil, nil, fmt.Errorf("redis %s unreachable: %w", cfg.Redis.Addr, err)
	}
	return cache, redis.NewLocker(cache.Client(), ""), cache.Client().Close, nil
}
