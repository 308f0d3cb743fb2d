package domain

import (
	"fmt"
	"sort"
)

// ProductionTable maps a symbol to its replacement sequence.
// Symbols without an entry are handled by the expander's policy.
type ProductionTable map[Symbol]Sequence

// Clone returns a deep copy of the table.
func (t ProductionTable) Clone() ProductionTable {
	out := make(ProductionTable, len(t))
	for k, v := range t {
		out[k] = append(Sequence(nil), v...)
	}
	return out
}

// Symbols returns the table keys in ascending byte order.
func (t ProductionTable) Symbols() []Symbol {
	keys := make([]Symbol, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Validate checks that every non-terminal reachable from seed has a rule
// and that rules only rewrite non-terminals or Forward.
func (t ProductionTable) Validate(seed Sequence) error {
	for _, k := range t.Symbols() {
		if !k.IsNonTerminal() && k != Forward {
			return &SymbolError{Op: "rules", Symbol: k, Pos: -1, Err: fmt.Errorf("%w: operators cannot be rewritten", ErrMalformedRule)}
		}
		for i, s := range t[k] {
			if !s.IsKnown() {
				return &SymbolError{Op: "rules", Symbol: s, Pos: i, Err: ErrMalformedRule}
			}
		}
	}

	seen := make(map[Symbol]bool)
	queue := append(Sequence(nil), seed...)
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		if !s.IsNonTerminal() || seen[s] {
			continue
		}
		seen[s] = true
		body, ok := t[s]
		if !ok {
			return &SymbolError{Op: "rules", Symbol: s, Pos: -1, Err: ErrMalformedRule}
		}
		queue = append(queue, body...)
	}
	return nil
}

const (
	// PenroseName is the identifier of the built-in tiling.
	PenroseName = "penrose-p3"

	// PenroseAngle is the turn angle of the built-in tiling, in degrees.
	PenroseAngle = 36.0

	penroseSeed = "[7]++[7]++[7]++[7]++[7]"
	penroseRuleA = "81++91----71[-81----61]++"
	penroseRuleB = "+81--91[---61--71]+"
	penroseRuleC = "-61++71[+++81++91]-"
	penroseRuleD = "--81++++61[+91++++71]--71"
)

// PenroseSeed returns the fixed axiom of the built-in tiling.
func PenroseSeed() Sequence {
	return MustParseSequence(penroseSeed)
}

// PenroseRules returns the fixed rhombus substitution table.
// Forward moves are erased on every pass; each generation's edges are
// emitted by the next generation's rule bodies.
func PenroseRules() ProductionTable {
	return ProductionTable{
		A:       MustParseSequence(penroseRuleA),
		B:       MustParseSequence(penroseRuleB),
		C:       MustParseSequence(penroseRuleC),
		D:       MustParseSequence(penroseRuleD),
		Forward: Sequence{},
	}
}

// Tiling is a named seed, rule table and turn angle.
type Tiling struct {
	Name  string
	Seed  Sequence
	Rules ProductionTable
	Angle float64 // degrees
}

// PenroseTiling returns the built-in P3 tiling.
func PenroseTiling() Tiling {
	return Tiling{
		Name:  PenroseName,
		Seed:  PenroseSeed(),
		Rules: PenroseRules(),
		Angle: PenroseAngle,
	}
}

// Validate checks the tiling for structural consistency.
func (t Tiling) Validate() error {
	if len(t.Seed) == 0 {
		return fmt.Errorf("tiling %q: %w: empty seed", t.Name, ErrMalformedRule)
	}
	for i, s := range t.Seed {
		if !s.IsKnown() {
			return &SymbolError{Op: "seed", Symbol: s, Pos: i, Err: ErrMalformedRule}
		}
	}
	if err := t.Rules.Validate(t.Seed); err != nil {
		return fmt.Errorf("tiling %q: %w", t.Name, err)
	}
	return nil
}
