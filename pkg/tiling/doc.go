/*
Package tiling reads tiling definitions (seed, production table, turn angle) from files.

A definition is written in YAML, TOML or JSON:

	name: square-spiral
	angle: 90
	seed: "6"
	rules:
	  A: "1+1+1+6"
	  Forward: "1"

Rule keys are either the symbol character ("6") or its name ("A"). Every document is
first decoded into a generic map, validated against an embedded JSON Schema, then
decoded into a Definition and compiled into a domain.Tiling.
*/
package tiling
