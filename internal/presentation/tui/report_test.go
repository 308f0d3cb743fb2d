package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aretw0/penrose/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestGrowthMarkdown(t *testing.T) {
	stats := []domain.GenerationStats{
		{Passes: 0, Length: 23, Pushes: 5, Pops: 5, Pending: 5},
		{Passes: 1, Length: 113, Forwards: 20, Pushes: 10, Pops: 10, Pending: 20},
	}

	out := GrowthMarkdown(domain.PenroseName, 2, stats)

	assert.Contains(t, out, "# Growth of penrose-p3 at depth 2")
	assert.Contains(t, out, "| 0 | 23 | 0 | 5 | 5 | 5 | - |")
	assert.Contains(t, out, "| 1 | 113 | 20 | 10 | 10 | 20 | 4.913 |")
}

func TestRulesMarkdown(t *testing.T) {
	out := RulesMarkdown(domain.PenroseTiling())

	assert.Contains(t, out, "# penrose-p3")
	assert.Contains(t, out, "- **Angle**: 36°")
	assert.Contains(t, out, "`[7]++[7]++[7]++[7]++[7]`")
	assert.Contains(t, out, "| A `6` | `81++91----71[-81----61]++` |")
	assert.Contains(t, out, "| Forward `1` | (erased) |")
	assert.Less(t, strings.Index(out, "| A `6`"), strings.Index(out, "| D `9`"))
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "1.2.3")

	assert.Contains(t, buf.String(), "v1.2.3")
	assert.Contains(t, buf.String(), "|_|")
}
