package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/penrose/pkg/domain"
	"github.com/aretw0/penrose/pkg/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSegmentCacheContract runs a suite of tests to verify that a SegmentCache
// implementation adheres to the defined interface contract.
func RunSegmentCacheContract(t *testing.T, cache SegmentCache) {
	ctx := context.Background()
	key := "contract-test-" + time.Now().Format("20060102150405")

	sample := &domain.Result{
		Tiling:  domain.PenroseName,
		Request: domain.Request{Depth: 2, StepLength: 1.5},
		Stats:   domain.GenerationStats{Passes: 1, Length: 113, Forwards: 2},
		Bounds:  geom.Bounds{Max: geom.Vec2{X: 1.5, Y: 0.25}},
		Segments: []geom.Segment{
			{Start: geom.Vec2{}, End: geom.Vec2{X: 1.5}},
			{Start: geom.Vec2{X: 1.5}, End: geom.Vec2{X: 0.1, Y: 0.25}},
		},
	}

	t.Run("Put and Get", func(t *testing.T) {
		err := cache.Put(ctx, key, sample)
		require.NoError(t, err, "Put should not return error")

		got, err := cache.Get(ctx, key)
		require.NoError(t, err, "Get should not return error")
		assert.Equal(t, sample, got)
	})

	t.Run("Get returns a copy", func(t *testing.T) {
		require.NoError(t, cache.Put(ctx, key, sample))

		got, err := cache.Get(ctx, key)
		require.NoError(t, err)
		got.Segments[0].End.X = 99

		again, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, 1.5, again.Segments[0].End.X)
	})

	t.Run("Get Missing", func(t *testing.T) {
		_, err := cache.Get(ctx, "missing-"+key)
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, cache.Put(ctx, key, sample))

		err := cache.Delete(ctx, key)
		require.NoError(t, err, "Delete should not return error")

		_, err = cache.Get(ctx, key)
		assert.ErrorIs(t, err, domain.ErrCacheMiss, "Get after Delete should return ErrCacheMiss")

		assert.NoError(t, cache.Delete(ctx, key), "Delete of a missing key should succeed")
	})
}

// RunTilingSourceContract verifies that a TilingSource resolves every listed
// name to a valid tiling and reports unknown names.
func RunTilingSourceContract(t *testing.T, src TilingSource, expected ...string) {
	ctx := context.Background()

	t.Run("List", func(t *testing.T) {
		names, err := src.List(ctx)
		require.NoError(t, err)
		for _, name := range expected {
			assert.Contains(t, names, name)
		}
	})

	t.Run("Get", func(t *testing.T) {
		for _, name := range expected {
			tiling, err := src.Get(ctx, name)
			require.NoError(t, err, name)
			assert.Equal(t, name, tiling.Name)
			assert.NoError(t, tiling.Validate(), name)
		}
	})

	t.Run("Get Missing", func(t *testing.T) {
		_, err := src.Get(ctx, "no-such-tiling")
		assert.ErrorIs(t, err, domain.ErrTilingNotFound)
	})
}
