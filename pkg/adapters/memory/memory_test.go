package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/penrose/pkg/adapters/memory"
	"github.com/aretw0/penrose/pkg/domain"
	"github.com/aretw0/penrose/pkg/geom"
	"github.com/aretw0/penrose/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_Contract(t *testing.T) {
	ports.RunSegmentCacheContract(t, memory.NewCache())
}

func TestCache_PutCopies(t *testing.T) {
	cache := memory.NewCache()
	ctx := context.Background()
	res := &domain.Result{Tiling: "x"}
	res.Segments = append(res.Segments, geom.Segment{End: geom.Vec2{}})

	require.NoError(t, cache.Put(ctx, "k", res))
	res.Segments[0].End.X = 42

	got, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.Zero(t, got.Segments[0].End.X)
	assert.Equal(t, 1, cache.Len())
}

func TestRegistry_Contract(t *testing.T) {
	ports.RunTilingSourceContract(t, memory.NewDefaultRegistry(), domain.PenroseName)
}

func TestRegistry_RejectsInvalid(t *testing.T) {
	bad := domain.PenroseTiling()
	bad.Name = "broken"
	delete(bad.Rules, domain.D)

	_, err := memory.NewRegistry(bad)
	assert.ErrorIs(t, err, domain.ErrMalformedRule)

	_, err = memory.NewRegistry(domain.Tiling{})
	assert.Error(t, err)
}

func TestRegistry_GetReturnsCopy(t *testing.T) {
	reg := memory.NewDefaultRegistry()
	ctx := context.Background()

	tiling, err := reg.Get(ctx, domain.PenroseName)
	require.NoError(t, err)
	delete(tiling.Rules, domain.A)

	again, err := reg.Get(ctx, domain.PenroseName)
	require.NoError(t, err)
	assert.Contains(t, again.Rules, domain.A)
}

func TestLocker_Exclusive(t *testing.T) {
	locker := memory.NewLocker()
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "k", time.Second)
	require.NoError(t, err)

	waitCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(waitCtx, "k", time.Second)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	_, err = locker.Lock(ctx, "other", time.Second)
	assert.NoError(t, err, "distinct keys do not contend")

	require.NoError(t, unlock(ctx))
	require.NoError(t, unlock(ctx), "unlock is idempotent")

	again, err := locker.Lock(ctx, "k", time.Second)
	require.NoError(t, err)
	assert.NoError(t, again(ctx))
}
