package ports

import "github.com/aretw0/penrose/pkg/domain"

// Generator is the facade consumed by adapters. *penrose.Generator implements it.
type Generator interface {
	// Run executes one generation.
	Run(req domain.Request) (*domain.Result, error)

	// Growth returns per-pass statistics up to depth without generating.
	Growth(depth int) ([]domain.GenerationStats, error)

	// EstimateCost returns the final-pass statistics for depth without generating.
	EstimateCost(depth int) (domain.GenerationStats, error)

	// Tiling returns a copy of the tiling in use.
	Tiling() domain.Tiling

	// Passes maps a public depth to the number of rewrite passes.
	Passes(depth int) int

	// MaxDepth returns the soft depth warning threshold.
	MaxDepth() int

	// SegmentBudget returns the hard segment cap, 0 when disabled.
	SegmentBudget() int
}
