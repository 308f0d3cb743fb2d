/*
Package domain contains the core domain models of the Penrose generator.

It defines the symbol alphabet shared by the grammar expander and the turtle
interpreter, production-rule tables, tilings, requests and results. This package
is kept pure and free of external dependencies like I/O or persistence, following
Hexagonal Architecture principles.

# Key Entities

  - Symbol / Sequence: the instruction alphabet and instruction strings.
  - ProductionTable: maps non-terminals to their replacement sequences.
  - Tiling: a named (seed, rules, turn angle) triple.
  - Request / Result: the input and output of one generation.
*/
package domain
