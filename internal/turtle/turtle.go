// Package turtle walks an expanded instruction string and records line segments.
package turtle

import (
	"fmt"
	"math"

	"github.com/aretw0/penrose/pkg/domain"
	"github.com/aretw0/penrose/pkg/geom"
)

// State is the turtle cursor.
type State struct {
	Position geom.Vec2
	Heading  geom.Vec2
}

// Initial returns the cursor at the origin facing +X.
func Initial() State {
	return State{Heading: geom.UnitX}
}

type config struct {
	angle       float64 // degrees
	renormalize bool
	capacity    int
}

// Option configures Interpret.
type Option func(*config)

// WithAngle overrides the turn angle in degrees (default 36).
func WithAngle(deg float64) Option {
	return func(c *config) {
		c.angle = deg
	}
}

// WithRenormalize rescales the heading to unit length after every turn.
func WithRenormalize() Option {
	return func(c *config) {
		c.renormalize = true
	}
}

// WithCapacity preallocates the output for n segments.
func WithCapacity(n int) Option {
	return func(c *config) {
		c.capacity = n
	}
}

// Interpret executes instructions once, left to right, and returns the
// segments in traversal order. Any failure aborts the call without a partial result.
func Interpret(instructions domain.Sequence, stepLength float64, opts ...Option) ([]geom.Segment, error) {
	if stepLength < 0 || math.IsNaN(stepLength) || math.IsInf(stepLength, 0) {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidStepLength, stepLength)
	}

	cfg := config{angle: domain.PenroseAngle}
	for _, opt := range opts {
		opt(&cfg)
	}
	left := geom.Radians(cfg.angle)

	cur := Initial()
	var stack []State
	segments := make([]geom.Segment, 0, cfg.capacity)

	for i, s := range instructions {
		switch s {
		case domain.TurnLeft:
			cur.Heading = turn(cur.Heading, left, cfg.renormalize)
		case domain.TurnRight:
			cur.Heading = turn(cur.Heading, -left, cfg.renormalize)
		case domain.Forward:
			next := cur.Position.Add(cur.Heading.Scale(stepLength))
			segments = append(segments, geom.Segment{Start: cur.Position, End: next})
			cur.Position = next
		case domain.Push:
			stack = append(stack, cur)
		case domain.Pop:
			if len(stack) == 0 {
				return nil, &domain.SymbolError{Op: "interpret", Symbol: s, Pos: i, Err: domain.ErrStackUnderflow}
			}
			cur = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
		default:
			if s.IsNonTerminal() {
				return nil, &domain.SymbolError{Op: "interpret", Symbol: s, Pos: i, Err: domain.ErrUnexpandedSymbol}
			}
			return nil, &domain.SymbolError{Op: "interpret", Symbol: s, Pos: i, Err: domain.ErrMalformedRule}
		}
	}
	return segments, nil
}

func turn(h geom.Vec2, rad float64, renormalize bool) geom.Vec2 {
	h = h.Rotate(rad)
	if renormalize {
		h = h.Normalize()
	}
	return h
}
