package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/penrose/pkg/domain"
	"github.com/klauspost/compress/zstd"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces cached results.
const DefaultPrefix = "penrose:result:"

// Cache implements ports.SegmentCache using Redis.
type Cache struct {
	client *backend.Client
	prefix string
	ttl    time.Duration

	enc *zstd.Encoder
	dec *zstd.Decoder
}

// Option configures the Cache.
type Option func(*Cache)

// WithTTL sets the expiration of cached results. Zero keeps them forever.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

// WithPrefix overrides DefaultPrefix.
func WithPrefix(prefix string) Option {
	return func(c *Cache) {
		c.prefix = prefix
	}
}

// WithCompression stores payloads zstd-compressed.
// Deep tilings produce megabytes of JSON that compress well.
func WithCompression() Option {
	return func(c *Cache) {
		c.enc, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		c.dec, _ = zstd.NewReader(nil)
	}
}

// New creates a Redis cache connected to addr.
func New(addr, password string, db int, opts ...Option) *Cache {
	client := backend.NewClient(&backend.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return NewFromClient(client, opts...)
}

// NewFromClient creates a Redis cache from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Cache {
	c := &Cache{
		client: client,
		prefix: DefaultPrefix,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Client exposes the underlying client, e.g. to share it with a Locker.
func (c *Cache) Client() *backend.Client {
	return c.client
}

// Ping checks connectivity.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *Cache) key(k string) string {
	return c.prefix + k
}

// Put serializes res and stores it under key.
func (c *Cache) Put(ctx context.Context, key string, res *domain.Result) error {
	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	if c.enc != nil {
		data = c.enc.EncodeAll(data, make([]byte, 0, len(data)/4))
	}

	if err := c.client.Set(ctx, c.key(key), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save result to redis: %w", err)
	}
	return nil
}

// Get retrieves and deserializes the result stored under key.
func (c *Cache) Get(ctx context.Context, key string) (*domain.Result, error) {
	data, err := c.client.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, backend.Nil) {
		return nil, domain.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load result from redis: %w", err)
	}

	if c.dec != nil {
		data, err = c.dec.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress result: %w", err)
		}
	}

	var res domain.Result
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result: %w", err)
	}
	return &res, nil
}

// Delete removes the entry.
func (c *Cache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.key(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete result from redis: %w", err)
	}
	return nil
}
