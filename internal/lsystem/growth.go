package lsystem

import (
	"fmt"
	"math"

	"github.com/aretw0/penrose/pkg/domain"
)

// Growth computes the symbol statistics after every pass without building the
// strings: the histogram of pass k+1 is the histogram of pass k pushed through
// the rule table. The returned slice has passes+1 entries, entry 0 describing
// the seed. Cost is O(passes × |alphabet|²) regardless of output size.
func Growth(seed domain.Sequence, passes int, rules domain.ProductionTable) ([]domain.GenerationStats, error) {
	if passes < 0 {
		return nil, fmt.Errorf("%w: %d passes", domain.ErrInvalidDepth, passes)
	}

	produces := make(map[domain.Symbol]map[domain.Symbol]int, len(rules))
	for k, body := range rules {
		produces[k] = body.Histogram()
	}

	hist := seed.Histogram()
	for s := range hist {
		if !s.IsKnown() {
			return nil, &domain.SymbolError{Op: "expand", Symbol: s, Pos: -1, Err: domain.ErrMalformedRule}
		}
	}

	out := make([]domain.GenerationStats, 0, passes+1)
	out = append(out, statsOf(0, hist))
	for pass := 1; pass <= passes; pass++ {
		next := make(map[domain.Symbol]int, len(hist))
		for s, n := range hist {
			if n == 0 {
				continue
			}
			if prod, ok := produces[s]; ok {
				for t, m := range prod {
					next[t] = addChecked(next[t], mulChecked(n, m))
				}
				continue
			}
			if s.IsNonTerminal() || !s.IsKnown() {
				return nil, &domain.SymbolError{Op: "expand", Symbol: s, Pos: -1, Err: domain.ErrMalformedRule}
			}
			next[s] = addChecked(next[s], n)
		}
		hist = next
		out = append(out, statsOf(pass, hist))
	}
	return out, nil
}

// GrowthFactor estimates the asymptotic per-pass length ratio from the last
// two entries of stats. It returns 0 when fewer than two entries are given.
func GrowthFactor(stats []domain.GenerationStats) float64 {
	if len(stats) < 2 {
		return 0
	}
	prev, last := stats[len(stats)-2], stats[len(stats)-1]
	if prev.Length == 0 {
		return 0
	}
	return float64(last.Length) / float64(prev.Length)
}

func statsOf(pass int, hist map[domain.Symbol]int) domain.GenerationStats {
	st := domain.GenerationStats{Passes: pass}
	for s, n := range hist {
		st.Length = addChecked(st.Length, n)
		switch {
		case s == domain.Forward:
			st.Forwards = n
		case s == domain.Push:
			st.Pushes = n
		case s == domain.Pop:
			st.Pops = n
		case s.IsNonTerminal():
			st.Pending += n
		}
	}
	return st
}

// Counts saturate instead of wrapping so cost estimates stay monotonic at absurd depths.
func addChecked(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

func mulChecked(a, b int) int {
	if a != 0 && b > math.MaxInt/a {
		return math.MaxInt
	}
	return a * b
}

// Erased describes st after EraseNonTerminals.
func Erased(st domain.GenerationStats) domain.GenerationStats {
	st.Length -= st.Pending
	st.Pending = 0
	return st
}
