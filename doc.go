/*
Package penrose is a deterministic generator of Penrose rhombus (P3) line work.

It implements a two-stage pipeline: an L-system grammar expander rewrites a seed
instruction string through a fixed production table, and a turtle interpreter
walks the result once, emitting 2D line segments. The pipeline is a pure
function of (depth, step length): identical inputs always yield bit-identical
output, and nothing is shared between calls, so callers may run generations
concurrently.

# Concept

Every integration surface (CLI, HTTP server, MCP tool) is a thin adapter around
this package: it validates input, calls the generator, and maps the typed errors
of package domain to its own diagnostics.

# Growth

Instruction length grows geometrically with depth. For the built-in table each
pass multiplies the length by roughly 4.45, so depth 5 already emits 1780
segments and depth 10 several million. Use Generator.EstimateCost to bound work
before generating.

# Usage

	segments, err := penrose.Generate(3, 10.0)
	if err != nil {
		log.Fatal(err)
	}
	for _, s := range segments {
		fmt.Println(s.Start, s.End)
	}

Callers needing a different substitution table pass their own tiling:

	gen, err := penrose.New(penrose.WithTiling(myTiling), penrose.WithLogger(logger))
*/
package penrose
