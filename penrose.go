package penrose

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/aretw0/penrose/internal/lsystem"
	"github.com/aretw0/penrose/internal/turtle"
	"github.com/aretw0/penrose/pkg/domain"
	"github.com/aretw0/penrose/pkg/geom"
	"github.com/aretw0/penrose/pkg/ports"
)

// DefaultMaxDepth is the depth above which a generation logs a warning.
const DefaultMaxDepth = 5

// Generator is the high-level entry point for the library.
// It is immutable after New and safe for concurrent use.
type Generator struct {
	tiling        domain.Tiling
	hooks         domain.LifecycleHooks
	logger        *slog.Logger
	maxDepth      int
	segmentBudget int
	exactPasses   bool
	renormalize   bool
}

var _ ports.Generator = (*Generator)(nil)

// Option defines a functional option for configuring the Generator.
type Option func(*Generator)

// WithTiling substitutes the seed, rule table and turn angle.
func WithTiling(t domain.Tiling) Option {
	return func(g *Generator) {
		g.tiling = t
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(g *Generator) {
		g.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the generator.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// WithMaxDepth sets the soft depth limit. Deeper requests still run but log a warning.
func WithMaxDepth(depth int) Option {
	return func(g *Generator) {
		g.maxDepth = depth
	}
}

// WithSegmentBudget rejects requests that would emit more than n segments.
// Zero disables the check.
func WithSegmentBudget(n int) Option {
	return func(g *Generator) {
		g.segmentBudget = n
	}
}

// WithExactPasses makes depth equal the number of rewrite passes instead of depth-1.
func WithExactPasses() Option {
	return func(g *Generator) {
		g.exactPasses = true
	}
}

// WithRenormalize rescales the turtle heading after every turn.
func WithRenormalize() Option {
	return func(g *Generator) {
		g.renormalize = true
	}
}

// New initializes a Generator. Without options it uses the built-in Penrose tiling.
func New(opts ...Option) (*Generator, error) {
	g := &Generator{
		tiling:   domain.PenroseTiling(),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(g)
	}

	if g.tiling.Angle == 0 {
		g.tiling.Angle = domain.PenroseAngle
	}
	if err := g.tiling.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tiling: %w", err)
	}
	// Take a private copy so later caller mutations cannot leak in.
	g.tiling.Seed = append(domain.Sequence(nil), g.tiling.Seed...)
	g.tiling.Rules = g.tiling.Rules.Clone()

	if g.logger == nil {
		g.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if g.tiling.Name != "" {
		g.logger = g.logger.With("tiling", g.tiling.Name)
	}
	return g, nil
}

var defaultGenerator, _ = New()

// Generate runs the built-in Penrose tiling. depth must be at least 2; the
// expander performs depth-1 passes.
func Generate(depth int, stepLength float64) ([]geom.Segment, error) {
	return defaultGenerator.Generate(depth, stepLength)
}

// Tiling returns the tiling the generator was built with.
func (g *Generator) Tiling() domain.Tiling {
	t := g.tiling
	t.Seed = append(domain.Sequence(nil), t.Seed...)
	t.Rules = t.Rules.Clone()
	return t
}

// Passes maps a public depth to the number of rewrite passes.
func (g *Generator) Passes(depth int) int {
	if g.exactPasses {
		return depth
	}
	return depth - 1
}

// Generate returns the line segments for (depth, stepLength).
func (g *Generator) Generate(depth int, stepLength float64) ([]geom.Segment, error) {
	res, err := g.Run(domain.Request{Depth: depth, StepLength: stepLength})
	if err != nil {
		return nil, err
	}
	return res.Segments, nil
}

// MaxDepth returns the depth above which generations log a warning.
func (g *Generator) MaxDepth() int {
	return g.maxDepth
}

// SegmentBudget returns the hard cap on emitted segments, 0 when disabled.
func (g *Generator) SegmentBudget() int {
	return g.segmentBudget
}

// Validate checks a request against the boundary preconditions without generating.
func (g *Generator) Validate(req domain.Request) error {
	if req.Depth < domain.MinDepth {
		return fmt.Errorf("%w: depth %d is below the minimum of %d", domain.ErrInvalidDepth, req.Depth, domain.MinDepth)
	}
	if req.StepLength < 0 || math.IsNaN(req.StepLength) || math.IsInf(req.StepLength, 0) {
		return fmt.Errorf("%w: step length %v must be a finite number >= 0", domain.ErrInvalidStepLength, req.StepLength)
	}
	return nil
}

// EstimateCost returns the size of the instruction string for depth without expanding it.
func (g *Generator) EstimateCost(depth int) (domain.GenerationStats, error) {
	if err := g.Validate(domain.Request{Depth: depth}); err != nil {
		return domain.GenerationStats{}, err
	}
	stats, err := lsystem.Growth(g.tiling.Seed, g.Passes(depth), g.tiling.Rules)
	if err != nil {
		return domain.GenerationStats{}, err
	}
	return stats[len(stats)-1], nil
}

// Growth returns per-pass statistics for every pass up to depth.
func (g *Generator) Growth(depth int) ([]domain.GenerationStats, error) {
	if err := g.Validate(domain.Request{Depth: depth}); err != nil {
		return nil, err
	}
	return lsystem.Growth(g.tiling.Seed, g.Passes(depth), g.tiling.Rules)
}

// Expanded returns the rewrite output for depth, remaining non-terminals included.
func (g *Generator) Expanded(depth int) (domain.Sequence, error) {
	if err := g.Validate(domain.Request{Depth: depth}); err != nil {
		return nil, err
	}
	return g.rewrite(depth)
}

// Instructions returns the instruction string the turtle reads for depth:
// the fully expanded string with its remaining non-terminals erased.
func (g *Generator) Instructions(depth int) (domain.Sequence, error) {
	if err := g.Validate(domain.Request{Depth: depth}); err != nil {
		return nil, err
	}
	return g.expand(depth)
}

// Run executes a full generation and returns segments with statistics.
func (g *Generator) Run(req domain.Request) (res *domain.Result, err error) {
	start := time.Now()
	passes := g.Passes(req.Depth)
	defer func() {
		ev := &domain.CompleteEvent{
			Tiling:   g.tiling.Name,
			Depth:    req.Depth,
			Passes:   passes,
			Duration: time.Since(start),
			Err:      err,
		}
		if res != nil {
			ev.Segments = len(res.Segments)
		}
		if g.hooks.OnComplete != nil {
			g.hooks.OnComplete(ev)
		}
	}()

	if err := g.Validate(req); err != nil {
		return nil, err
	}
	if req.Depth > g.maxDepth {
		g.logger.Warn("depth above recommended maximum", "depth", req.Depth, "max_depth", g.maxDepth)
	}

	cost, err := g.EstimateCost(req.Depth)
	if err != nil {
		return nil, err
	}
	if g.segmentBudget > 0 && cost.Forwards > g.segmentBudget {
		return nil, fmt.Errorf("%w: depth %d emits %d segments, budget is %d", domain.ErrBudgetExceeded, req.Depth, cost.Forwards, g.segmentBudget)
	}

	instructions, err := g.expand(req.Depth)
	if err != nil {
		return nil, err
	}

	opts := []turtle.Option{
		turtle.WithAngle(g.tiling.Angle),
		turtle.WithCapacity(cost.Forwards),
	}
	if g.renormalize {
		opts = append(opts, turtle.WithRenormalize())
	}
	segments, err := turtle.Interpret(instructions, req.StepLength, opts...)
	if err != nil {
		return nil, err
	}

	g.logger.Debug("generated",
		"depth", req.Depth,
		"passes", passes,
		"instructions", len(instructions),
		"segments", len(segments),
		"duration", time.Since(start),
	)

	return &domain.Result{
		Tiling:   g.tiling.Name,
		Request:  req,
		Stats:    lsystem.Erased(cost),
		Bounds:   geom.BoundsOf(segments),
		Segments: segments,
	}, nil
}

func (g *Generator) expand(depth int) (domain.Sequence, error) {
	seq, err := g.rewrite(depth)
	if err != nil {
		return nil, err
	}
	return lsystem.EraseNonTerminals(seq), nil
}

func (g *Generator) rewrite(depth int) (domain.Sequence, error) {
	var observers []lsystem.PassFunc
	if g.hooks.OnPass != nil {
		observers = append(observers, func(pass int, out domain.Sequence) {
			g.hooks.OnPass(&domain.PassEvent{Tiling: g.tiling.Name, Pass: pass, Length: len(out)})
		})
	}
	return lsystem.Expand(g.tiling.Seed, g.Passes(depth), g.tiling.Rules, observers...)
}
