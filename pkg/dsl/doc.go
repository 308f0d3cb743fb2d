/*
Package dsl provides a fluent builder for constructing tilings in Go code.

It is an alternative to tiling files when the rule table is generated or
tweaked programmatically, e.g. in tests. Symbols are written in the same
digit encoding used by tiling files and the built-in table.

Example usage:

	spiral, err := dsl.New("square-spiral").
		Angle(90).
		Seed("6").
		Rule(domain.A, "1+1+1+6").
		Keep(domain.Forward).
		Build()
	if err != nil {
		return err
	}

	gen, err := penrose.New(penrose.WithTiling(spiral))
*/
package dsl
