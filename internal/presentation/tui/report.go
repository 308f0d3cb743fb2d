package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/penrose/pkg/domain"
)

// GrowthMarkdown renders per-pass statistics as a Markdown table.
func GrowthMarkdown(tiling string, depth int, stats []domain.GenerationStats) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Growth of %s at depth %d\n\n", tiling, depth)
	sb.WriteString("| Pass | Length | Segments | Push | Pop | Pending | Factor |\n")
	sb.WriteString("|-----:|-------:|---------:|-----:|----:|--------:|-------:|\n")
	for i, s := range stats {
		factor := "-"
		if i > 0 && stats[i-1].Length > 0 {
			factor = fmt.Sprintf("%.3f", float64(s.Length)/float64(stats[i-1].Length))
		}
		fmt.Fprintf(&sb, "| %d | %d | %d | %d | %d | %d | %s |\n",
			s.Passes, s.Length, s.Forwards, s.Pushes, s.Pops, s.Pending, factor)
	}
	return sb.String()
}

// RulesMarkdown renders the seed and production table of a tiling.
func RulesMarkdown(t domain.Tiling) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", t.Name)
	fmt.Fprintf(&sb, "- **Angle**: %g°\n", t.Angle)
	fmt.Fprintf(&sb, "- **Seed**: `%s`\n\n", t.Seed)
	sb.WriteString("| Symbol | Rule |\n")
	sb.WriteString("|--------|------|\n")
	for _, sym := range t.Rules.Symbols() {
		body := t.Rules[sym].String()
		if body == "" {
			body = "(erased)"
		} else {
			body = "`" + body + "`"
		}
		fmt.Fprintf(&sb, "| %s `%s` | %s |\n", sym.Name(), sym, body)
	}
	return sb.String()
}
