package domain

import (
	"fmt"
	"strings"
)

// Symbol is one instruction of the L-system alphabet.
// The byte values match the textual notation used by rule tables.
type Symbol byte

const (
	A Symbol = '6' // non-terminal (P3 "W")
	B Symbol = '7' // non-terminal (P3 "X"), the seed symbol
	C Symbol = '8' // non-terminal (P3 "Y")
	D Symbol = '9' // non-terminal (P3 "Z")

	Forward   Symbol = '1'
	TurnLeft  Symbol = '+'
	TurnRight Symbol = '-'
	Push      Symbol = '['
	Pop       Symbol = ']'
)

// Alphabet lists every known symbol in a stable order.
var Alphabet = []Symbol{A, B, C, D, Forward, TurnLeft, TurnRight, Push, Pop}

// NonTerminals lists the symbols that must be resolved by the expander.
var NonTerminals = []Symbol{A, B, C, D}

// IsNonTerminal reports whether s is subject to expansion.
func (s Symbol) IsNonTerminal() bool {
	switch s {
	case A, B, C, D:
		return true
	}
	return false
}

// IsOperator reports whether s is a turn or stack operator.
func (s Symbol) IsOperator() bool {
	switch s {
	case TurnLeft, TurnRight, Push, Pop:
		return true
	}
	return false
}

// IsKnown reports whether s belongs to the alphabet.
func (s Symbol) IsKnown() bool {
	return s.IsNonTerminal() || s.IsOperator() || s == Forward
}

func (s Symbol) String() string {
	return string(rune(s))
}

// Name returns a readable label for diagnostics.
func (s Symbol) Name() string {
	switch s {
	case A:
		return "A"
	case B:
		return "B"
	case C:
		return "C"
	case D:
		return "D"
	case Forward:
		return "Forward"
	case TurnLeft:
		return "TurnLeft"
	case TurnRight:
		return "TurnRight"
	case Push:
		return "Push"
	case Pop:
		return "Pop"
	}
	return fmt.Sprintf("Unknown(%q)", rune(s))
}

// ParseSymbol accepts either the symbol's character ("6") or its name ("A", case-insensitive).
func ParseSymbol(text string) (Symbol, error) {
	if len(text) == 1 && Symbol(text[0]).IsKnown() {
		return Symbol(text[0]), nil
	}
	for _, s := range Alphabet {
		if strings.EqualFold(text, s.Name()) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown symbol %q", ErrMalformedRule, text)
}

// Sequence is an ordered instruction string.
type Sequence []Symbol

// ParseSequence converts the textual notation into a Sequence.
// Characters outside the alphabet are rejected with ErrMalformedRule.
func ParseSequence(text string) (Sequence, error) {
	seq := make(Sequence, 0, len(text))
	for i := 0; i < len(text); i++ {
		s := Symbol(text[i])
		if !s.IsKnown() {
			return nil, &SymbolError{Op: "parse", Symbol: s, Pos: i, Err: ErrMalformedRule}
		}
		seq = append(seq, s)
	}
	return seq, nil
}

// MustParseSequence is like ParseSequence but panics on error.
// Intended for package-level constants.
func MustParseSequence(text string) Sequence {
	seq, err := ParseSequence(text)
	if err != nil {
		panic(err)
	}
	return seq
}

func (q Sequence) String() string {
	var sb strings.Builder
	sb.Grow(len(q))
	for _, s := range q {
		sb.WriteByte(byte(s))
	}
	return sb.String()
}

// Count returns how many times s occurs in the sequence.
func (q Sequence) Count(s Symbol) int {
	n := 0
	for _, x := range q {
		if x == s {
			n++
		}
	}
	return n
}

// Histogram counts every symbol in the sequence.
func (q Sequence) Histogram() map[Symbol]int {
	h := make(map[Symbol]int)
	for _, x := range q {
		h[x]++
	}
	return h
}
