package penrose_test

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/aretw0/penrose"
	"github.com/aretw0/penrose/pkg/domain"
	"github.com/aretw0/penrose/pkg/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// goldenDepth2 is the frozen output of Generate(2, 1.0).
var goldenDepth2 = []geom.Segment{
	{Start: geom.Vec2{X: 0.0, Y: 0.0}, End: geom.Vec2{X: 0.8090169943749475, Y: 0.5877852522924731}},
	{Start: geom.Vec2{X: 0.8090169943749475, Y: 0.5877852522924731}, End: geom.Vec2{X: 1.618033988749895, Y: 0.0}},
	{Start: geom.Vec2{X: 1.618033988749895, Y: 0.0}, End: geom.Vec2{X: 0.8090169943749475, Y: -0.5877852522924731}},
	{Start: geom.Vec2{X: 0.8090169943749475, Y: -0.5877852522924731}, End: geom.Vec2{X: 0.0, Y: 0.0}},
	{Start: geom.Vec2{X: 0.0, Y: 0.0}, End: geom.Vec2{X: -0.3090169943749474, Y: 0.9510565162951536}},
	{Start: geom.Vec2{X: -0.3090169943749474, Y: 0.9510565162951536}, End: geom.Vec2{X: 0.5, Y: 1.5388417685876268}},
	{Start: geom.Vec2{X: 0.5, Y: 1.5388417685876268}, End: geom.Vec2{X: 0.8090169943749475, Y: 0.5877852522924731}},
	{Start: geom.Vec2{X: 0.8090169943749475, Y: 0.5877852522924731}, End: geom.Vec2{X: 0.0, Y: 0.0}},
	{Start: geom.Vec2{X: 0.0, Y: 0.0}, End: geom.Vec2{X: -1.0, Y: 0.0}},
	{Start: geom.Vec2{X: -1.0, Y: 0.0}, End: geom.Vec2{X: -1.3090169943749475, Y: 0.9510565162951536}},
	{Start: geom.Vec2{X: -1.3090169943749475, Y: 0.9510565162951536}, End: geom.Vec2{X: -0.30901699437494745, Y: 0.9510565162951536}},
	{Start: geom.Vec2{X: -0.30901699437494745, Y: 0.9510565162951536}, End: geom.Vec2{X: 0.0, Y: 0.0}},
	{Start: geom.Vec2{X: 0.0, Y: 0.0}, End: geom.Vec2{X: -0.30901699437494745, Y: -0.9510565162951536}},
	{Start: geom.Vec2{X: -0.30901699437494745, Y: -0.9510565162951536}, End: geom.Vec2{X: -1.3090169943749475, Y: -0.9510565162951536}},
	{Start: geom.Vec2{X: -1.3090169943749475, Y: -0.9510565162951536}, End: geom.Vec2{X: -1.0, Y: 0.0}},
	{Start: geom.Vec2{X: -1.0, Y: 0.0}, End: geom.Vec2{X: 0.0, Y: 0.0}},
	{Start: geom.Vec2{X: 0.0, Y: 0.0}, End: geom.Vec2{X: 0.8090169943749475, Y: -0.5877852522924731}},
	{Start: geom.Vec2{X: 0.8090169943749475, Y: -0.5877852522924731}, End: geom.Vec2{X: 0.5, Y: -1.5388417685876268}},
	{Start: geom.Vec2{X: 0.5, Y: -1.5388417685876268}, End: geom.Vec2{X: -0.30901699437494745, Y: -0.9510565162951536}},
	{Start: geom.Vec2{X: -0.30901699437494745, Y: -0.9510565162951536}, End: geom.Vec2{X: -5.551115123125783e-17, Y: 0.0}},
}

func assertSegmentsNear(t *testing.T, want, got []geom.Segment) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.True(t, want[i].Start.ApproxEqual(got[i].Start, 1e-9), "segment %d start: want %+v, got %+v", i, want[i].Start, got[i].Start)
		assert.True(t, want[i].End.ApproxEqual(got[i].End, 1e-9), "segment %d end: want %+v, got %+v", i, want[i].End, got[i].End)
	}
}

func TestGenerate_GoldenDepth2(t *testing.T) {
	segs, err := penrose.Generate(2, 1.0)
	require.NoError(t, err)
	assertSegmentsNear(t, goldenDepth2, segs)
}

func TestGenerate_Depth5Step10(t *testing.T) {
	base, err := penrose.Generate(2, 1.0)
	require.NoError(t, err)

	segs, err := penrose.Generate(5, 10.0)
	require.NoError(t, err)
	assert.Len(t, segs, 1780)

	// Three extra passes, each multiplying the segment count by 4..5.
	perPass := math.Cbrt(float64(len(segs)) / float64(len(base)))
	assert.Greater(t, perPass, 4.0)
	assert.Less(t, perPass, 5.0)

	for i, s := range segs {
		require.True(t, s.IsFinite(), "segment %d is not finite: %+v", i, s)
		assert.InDelta(t, 10.0, s.Length(), 1e-9)
	}
}

func TestGenerate_LeftoverNonTerminalsDrawNothing(t *testing.T) {
	for depth, want := range map[int]int{2: 20, 3: 90, 5: 1780} {
		segs, err := penrose.Generate(depth, 1.0)
		require.NoError(t, err, "depth %d", depth)
		assert.Len(t, segs, want, "depth %d", depth)
	}

	gen, err := penrose.New()
	require.NoError(t, err)
	raw, err := gen.Expanded(3)
	require.NoError(t, err)
	seq, err := gen.Instructions(3)
	require.NoError(t, err)

	assert.Equal(t, 90, raw.Count(domain.A)+raw.Count(domain.B)+raw.Count(domain.C)+raw.Count(domain.D))
	for _, s := range seq {
		assert.False(t, s.IsNonTerminal(), "instructions still hold %s", s.Name())
	}
	assert.Equal(t, raw.Count(domain.Forward), seq.Count(domain.Forward))
}

func TestGenerator_RunStatsDescribeInstructions(t *testing.T) {
	gen, err := penrose.New()
	require.NoError(t, err)

	res, err := gen.Run(domain.Request{Depth: 4, StepLength: 1})
	require.NoError(t, err)
	seq, err := gen.Instructions(4)
	require.NoError(t, err)

	assert.Equal(t, len(seq), res.Stats.Length)
	assert.Equal(t, 2283-400, res.Stats.Length)
	assert.Zero(t, res.Stats.Pending)
	assert.Equal(t, 400, res.Stats.Forwards)
	assert.Equal(t, 3, res.Stats.Passes)
}

func TestGenerate_Deterministic(t *testing.T) {
	a, err := penrose.Generate(4, 3.5)
	require.NoError(t, err)
	b, err := penrose.Generate(4, 3.5)
	require.NoError(t, err)
	// Bit-identical, not just approximately equal.
	assert.Equal(t, a, b)
}

func TestGenerate_SegmentCountMatchesForwards(t *testing.T) {
	gen, err := penrose.New()
	require.NoError(t, err)

	for depth := 2; depth <= 5; depth++ {
		seq, err := gen.Instructions(depth)
		require.NoError(t, err)
		segs, err := gen.Generate(depth, 1)
		require.NoError(t, err)
		assert.Equal(t, seq.Count(domain.Forward), len(segs), "depth %d", depth)
		assert.Equal(t, seq.Count(domain.Push), seq.Count(domain.Pop), "depth %d", depth)

		cost, err := gen.EstimateCost(depth)
		require.NoError(t, err)
		assert.Equal(t, len(seq), cost.Length-cost.Pending)
		assert.Equal(t, len(segs), cost.Forwards)
	}
}

func TestGenerate_ZeroStepLength(t *testing.T) {
	segs, err := penrose.Generate(3, 0)
	require.NoError(t, err)
	require.NotEmpty(t, segs)
	for _, s := range segs {
		assert.True(t, s.IsDegenerate())
	}
}

func TestGenerate_InvalidDepth(t *testing.T) {
	var interpreted bool
	gen, err := penrose.New(penrose.WithLifecycleHooks(domain.LifecycleHooks{
		OnPass: func(*domain.PassEvent) { interpreted = true },
	}))
	require.NoError(t, err)

	for _, depth := range []int{1, 0, -3} {
		_, err := gen.Generate(depth, 1)
		assert.ErrorIs(t, err, domain.ErrInvalidDepth, "depth %d", depth)
	}
	assert.False(t, interpreted, "expansion must not start for an invalid depth")
}

func TestGenerate_InvalidStepLength(t *testing.T) {
	for _, step := range []float64{-0.5, math.NaN(), math.Inf(1)} {
		_, err := penrose.Generate(2, step)
		assert.ErrorIs(t, err, domain.ErrInvalidStepLength)
	}
}

func TestGenerator_ExactPasses(t *testing.T) {
	gen, err := penrose.New(penrose.WithExactPasses())
	require.NoError(t, err)

	segs, err := gen.Generate(2, 1)
	require.NoError(t, err)
	assert.Len(t, segs, 90)
	assert.Equal(t, 2, gen.Passes(2))
}

func TestGenerator_SegmentBudget(t *testing.T) {
	gen, err := penrose.New(penrose.WithSegmentBudget(100))
	require.NoError(t, err)

	_, err = gen.Generate(3, 1)
	require.NoError(t, err)

	_, err = gen.Generate(4, 1)
	assert.ErrorIs(t, err, domain.ErrBudgetExceeded)
}

func TestGenerator_MalformedTableUnderflows(t *testing.T) {
	tiling := domain.Tiling{
		Name:  "unbalanced",
		Seed:  domain.MustParseSequence("6"),
		Rules: domain.ProductionTable{domain.A: domain.MustParseSequence("1]1")},
	}
	gen, err := penrose.New(penrose.WithTiling(tiling))
	require.NoError(t, err)

	_, err = gen.Generate(2, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStackUnderflow)

	var symErr *domain.SymbolError
	require.True(t, errors.As(err, &symErr))
	assert.Equal(t, 1, symErr.Pos)
	assert.Equal(t, "interpret: symbol Pop at 1: stack underflow", err.Error())
}

func TestGenerator_MissingRuleRejected(t *testing.T) {
	rules := domain.PenroseRules()
	delete(rules, domain.D)
	_, err := penrose.New(penrose.WithTiling(domain.Tiling{Name: "broken", Seed: domain.PenroseSeed(), Rules: rules}))
	assert.ErrorIs(t, err, domain.ErrMalformedRule)
}

func TestGenerator_TilingIsCopied(t *testing.T) {
	tiling := domain.PenroseTiling()
	gen, err := penrose.New(penrose.WithTiling(tiling))
	require.NoError(t, err)

	tiling.Rules[domain.B] = domain.MustParseSequence("]")
	segs, err := gen.Generate(2, 1)
	require.NoError(t, err)
	assert.Len(t, segs, 20)
}

func TestGenerator_Hooks(t *testing.T) {
	var passes []int
	var complete *domain.CompleteEvent
	gen, err := penrose.New(penrose.WithLifecycleHooks(domain.LifecycleHooks{
		OnPass:     func(e *domain.PassEvent) { passes = append(passes, e.Length) },
		OnComplete: func(e *domain.CompleteEvent) { complete = e },
	}))
	require.NoError(t, err)

	_, err = gen.Generate(4, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{113, 513, 2283}, passes)
	require.NotNil(t, complete)
	assert.Equal(t, 400, complete.Segments)
	assert.Equal(t, 3, complete.Passes)
	assert.NoError(t, complete.Err)
	assert.Equal(t, domain.PenroseName, complete.Tiling)
}

func TestGenerator_RunReportsBounds(t *testing.T) {
	gen, err := penrose.New()
	require.NoError(t, err)

	res, err := gen.Run(domain.Request{Depth: 2, StepLength: 1})
	require.NoError(t, err)
	assert.Equal(t, domain.PenroseName, res.Tiling)
	assert.Equal(t, 20, res.Stats.Forwards)
	assert.InDelta(t, 1.618033988749895, res.Bounds.Max.X, 1e-9)
	assert.InDelta(t, -1.3090169943749475, res.Bounds.Min.X, 1e-9)
}

func TestGenerator_ConcurrentCalls(t *testing.T) {
	gen, err := penrose.New()
	require.NoError(t, err)
	want, err := gen.Generate(4, 2)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([][]geom.Segment, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = gen.Generate(4, 2)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}
