package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidDepth is returned when the requested depth is below the minimum bound.
var ErrInvalidDepth = errors.New("invalid depth")

// ErrInvalidStepLength is returned when the step length is negative or not finite.
var ErrInvalidStepLength = errors.New("invalid step length")

// ErrMalformedRule is returned when a non-terminal has no production rule
// or a rule contains a symbol outside the alphabet.
var ErrMalformedRule = errors.New("malformed rule")

// ErrUnexpandedSymbol is returned when a non-terminal reaches the interpreter.
var ErrUnexpandedSymbol = errors.New("unexpanded symbol")

// ErrStackUnderflow is returned when Pop is applied to an empty state stack.
var ErrStackUnderflow = errors.New("stack underflow")

// ErrBudgetExceeded is returned when a generation would emit more segments than allowed.
var ErrBudgetExceeded = errors.New("segment budget exceeded")

// ErrTilingNotFound is returned when a named tiling cannot be resolved.
var ErrTilingNotFound = errors.New("tiling not found")

// SymbolError pinpoints the symbol and position that broke a pipeline stage.
type SymbolError struct {
	Op     string // "parse", "rules", "seed", "expand", "interpret"
	Symbol Symbol
	Pos    int // -1 when the position is not meaningful
	Err    error
}

func (e *SymbolError) Error() string {
	if e.Pos < 0 {
		return fmt.Sprintf("%s: symbol %s: %v", e.Op, e.Symbol.Name(), e.Err)
	}
	return fmt.Sprintf("%s: symbol %s at %d: %v", e.Op, e.Symbol.Name(), e.Pos, e.Err)
}

func (e *SymbolError) Unwrap() error {
	return e.Err
}

// ErrCacheMiss is returned by segment caches when a key is absent.
var ErrCacheMiss = errors.New("cache miss")
