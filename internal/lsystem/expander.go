// Package lsystem implements pass-based rewriting of instruction strings.
package lsystem

import (
	"fmt"

	"github.com/aretw0/penrose/pkg/domain"
)

// PassFunc observes the output of each pass. pass is 1-based.
type PassFunc func(pass int, out domain.Sequence)

// Expand rewrites seed through rules exactly passes times.
//
// Symbols with a rule are replaced by their body, turn and stack operators are
// copied through, and Forward without a rule is copied through. A non-terminal
// without a rule, or any symbol outside the alphabet, fails the whole call with
// domain.ErrMalformedRule.
func Expand(seed domain.Sequence, passes int, rules domain.ProductionTable, observers ...PassFunc) (domain.Sequence, error) {
	if passes < 1 {
		return nil, fmt.Errorf("%w: %d passes requested, need at least 1", domain.ErrInvalidDepth, passes)
	}

	hints := capacityHints(seed, passes, rules)

	current := seed
	for pass := 1; pass <= passes; pass++ {
		next := make(domain.Sequence, 0, hints[pass])
		for i, s := range current {
			if body, ok := rules[s]; ok {
				next = append(next, body...)
				continue
			}
			switch {
			case s.IsOperator(), s == domain.Forward:
				next = append(next, s)
			default:
				return nil, &domain.SymbolError{Op: "expand", Symbol: s, Pos: i, Err: domain.ErrMalformedRule}
			}
		}
		for _, obs := range observers {
			obs(pass, next)
		}
		current = next
	}
	return current, nil
}

// maxCapacityHint bounds preallocation; longer strings grow by append.
const maxCapacityHint = 1 << 24

// capacityHints returns the expected length after each pass, index 0 being the
// seed. Malformed tables yield zero hints so Expand reports the exact position.
func capacityHints(seed domain.Sequence, passes int, rules domain.ProductionTable) []int {
	hints := make([]int, passes+1)
	stats, err := Growth(seed, passes, rules)
	if err != nil {
		return hints
	}
	for i, st := range stats {
		hints[i] = min(st.Length, maxCapacityHint)
	}
	return hints
}

// EraseNonTerminals returns seq without its non-terminals. Non-terminals left
// after the last pass draw nothing, so the result is what the turtle reads.
func EraseNonTerminals(seq domain.Sequence) domain.Sequence {
	out := make(domain.Sequence, 0, len(seq))
	for _, s := range seq {
		if !s.IsNonTerminal() {
			out = append(out, s)
		}
	}
	return out
}
