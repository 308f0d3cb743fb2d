package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/penrose/internal/presentation/graph"
	"github.com/aretw0/penrose/pkg/domain"
)

func TestGenerateMermaid(t *testing.T) {
	spiral := domain.Tiling{
		Name:  "square-spiral",
		Angle: 90,
		Seed:  domain.MustParseSequence("6"),
		Rules: domain.ProductionTable{domain.A: domain.MustParseSequence("1+1+1+6")},
	}

	tests := []struct {
		name     string
		tiling   domain.Tiling
		overlay  *graph.GraphOverlay
		contains []string
		excludes []string
	}{
		{
			name:   "Penrose Shapes",
			tiling: domain.PenroseTiling(),
			contains: []string{
				"graph TD\n",
				"%% tiling: penrose-p3, angle: 36",
				"seed((\"seed\"))",
				"A[\"A 6\"]",
				"Forward[[\"Forward 1 <br/> erased\"]]",
			},
		},
		{
			name:   "Penrose Edges",
			tiling: domain.PenroseTiling(),
			contains: []string{
				"seed -- \"x5\" --> B",
				"A -- \"x2\" --> C",
				"A -- \"x1\" --> D",
				"A -. \"x5\" .-> Forward",
				"D -- \"x2\" --> B",
			},
			excludes: []string{
				"seed -. ",
				"classDef",
			},
		},
		{
			name:   "Self Reference",
			tiling: spiral,
			contains: []string{
				"A -- \"x1\" --> A",
				"A -. \"x3\" .-> Forward",
				"Forward[[\"Forward 1\"]]",
			},
			excludes: []string{"erased", "B["},
		},
		{
			name:    "Overlay Counts",
			tiling:  domain.PenroseTiling(),
			overlay: &graph.GraphOverlay{Counts: map[domain.Symbol]int{domain.A: 10, domain.C: 40, domain.Forward: 90}},
			contains: []string{
				"A[\"A 6 <br/> 10\"]",
				"classDef hot",
				"class C hot;",
			},
			excludes: []string{"class Forward hot;"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(tt.tiling, tt.overlay)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("expected output to contain %q\nGot:\n%s", want, got)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(got, unwanted) {
					t.Errorf("expected output NOT to contain %q\nGot:\n%s", unwanted, got)
				}
			}
		})
	}
}

func TestGenerateMermaid_Deterministic(t *testing.T) {
	first := graph.GenerateMermaid(domain.PenroseTiling(), nil)
	for i := 0; i < 10; i++ {
		if got := graph.GenerateMermaid(domain.PenroseTiling(), nil); got != first {
			t.Fatalf("output changed between runs:\n%s\n---\n%s", first, got)
		}
	}
}
