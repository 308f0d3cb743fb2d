package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/penrose/pkg/domain"
)

// GraphOverlay annotates symbols with their occurrence counts in an expanded string.
type GraphOverlay struct {
	Counts map[domain.Symbol]int
}

// GenerateMermaid produces a Mermaid flowchart of the tiling's rule dependencies.
// It applies semantic styling:
// - Seed: ((Circle))
// - Forward: [[Subroutine]]
// - Non-terminal: [Rectangle]
// Solid edges rewrite into non-terminals, dotted edges emit Forward moves.
// Edge labels carry the multiplicity of the target in the rule body.
func GenerateMermaid(t domain.Tiling, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	if t.Name != "" {
		sb.WriteString(fmt.Sprintf("    %%%% tiling: %s, angle: %g\n", t.Name, t.Angle))
	}

	sb.WriteString("    seed((\"seed\"))\n")
	for _, sym := range nodes(t) {
		safeID := sanitizeMermaidID(sym.Name())
		opener, closer := "[", "]"
		if sym == domain.Forward {
			opener, closer = "[[", "]]"
		}

		text := fmt.Sprintf("%s %s", sym.Name(), sym)
		if body, ok := t.Rules[sym]; ok && len(body) == 0 {
			text += " <br/> erased"
		}
		if overlay != nil {
			if n, ok := overlay.Counts[sym]; ok {
				text += fmt.Sprintf(" <br/> %d", n)
			}
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, text, closer))
	}

	writeEdges(&sb, "seed", t.Seed)
	for _, sym := range t.Rules.Symbols() {
		writeEdges(&sb, sanitizeMermaidID(sym.Name()), t.Rules[sym])
	}

	if overlay != nil {
		if hot, ok := hottest(overlay.Counts); ok {
			sb.WriteString("\n    %% Overlay Styles\n")
			sb.WriteString("    classDef hot fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
			sb.WriteString(fmt.Sprintf("    class %s hot;\n", sanitizeMermaidID(hot.Name())))
		}
	}

	return sb.String()
}

// nodes returns every non-terminal and Forward symbol that appears in the
// seed, a rule key or a rule body, in alphabet order.
func nodes(t domain.Tiling) []domain.Symbol {
	seen := make(map[domain.Symbol]bool)
	mark := func(q domain.Sequence) {
		for _, s := range q {
			if s.IsNonTerminal() || s == domain.Forward {
				seen[s] = true
			}
		}
	}
	mark(t.Seed)
	for sym, body := range t.Rules {
		seen[sym] = true
		mark(body)
	}

	out := make([]domain.Symbol, 0, len(seen))
	for _, s := range domain.Alphabet {
		if seen[s] {
			out = append(out, s)
		}
	}
	return out
}

func writeEdges(sb *strings.Builder, from string, body domain.Sequence) {
	counts := body.Histogram()
	targets := make([]domain.Symbol, 0, len(counts))
	for s := range counts {
		if s.IsNonTerminal() || s == domain.Forward {
			targets = append(targets, s)
		}
	}
	sort.Slice(targets, func(i, j int) bool { return targets[i] < targets[j] })

	for _, to := range targets {
		label := fmt.Sprintf("x%d", counts[to])
		arrow := fmt.Sprintf("-- \"%s\" -->", label)
		if to == domain.Forward {
			arrow = fmt.Sprintf("-. \"%s\" .->", label)
		}
		sb.WriteString(fmt.Sprintf("    %s %s %s\n", from, arrow, sanitizeMermaidID(to.Name())))
	}
}

func hottest(counts map[domain.Symbol]int) (domain.Symbol, bool) {
	var (
		best  domain.Symbol
		max   int
		found bool
	)
	for _, s := range domain.Alphabet {
		if !s.IsNonTerminal() {
			continue
		}
		if n := counts[s]; n > max {
			best, max, found = s, n, true
		}
	}
	return best, found
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}
