package domain

import (
	"fmt"
	"strconv"

	"github.com/aretw0/penrose/pkg/geom"
)

// MinDepth is the smallest depth accepted at the public boundary.
const MinDepth = 2

// Request describes one generation.
type Request struct {
	Depth      int     `json:"depth" yaml:"depth" mapstructure:"depth"`
	StepLength float64 `json:"step_length" yaml:"step_length" mapstructure:"step_length"`
}

// Key identifies the request's output for a tiling expanded with the given
// number of rewrite passes, e.g. "penrose-p3/d4/p3/s10".
func (r Request) Key(tiling string, passes int) string {
	return fmt.Sprintf("%s/d%d/p%d/s%s", tiling, r.Depth, passes, strconv.FormatFloat(r.StepLength, 'g', -1, 64))
}

// GenerationStats describes the instruction string after a number of passes.
type GenerationStats struct {
	Passes   int `json:"passes" yaml:"passes"`
	Length   int `json:"length" yaml:"length"`
	Forwards int `json:"forwards" yaml:"forwards"`
	Pushes   int `json:"pushes" yaml:"pushes"`
	Pops     int `json:"pops" yaml:"pops"`
	Pending  int `json:"pending" yaml:"pending"` // unexpanded non-terminals
}

// Result is the output of one generation.
type Result struct {
	Tiling   string          `json:"tiling" yaml:"tiling"`
	Request  Request         `json:"request" yaml:"request"`
	Stats    GenerationStats `json:"stats" yaml:"stats"`
	Bounds   geom.Bounds     `json:"bounds" yaml:"bounds"`
	Segments []geom.Segment  `json:"segments" yaml:"segments"`
}

// Clone returns a copy that shares no segment storage with r.
func (r *Result) Clone() *Result {
	if r == nil {
		return nil
	}
	out := *r
	if r.Segments != nil {
		out.Segments = make([]geom.Segment, len(r.Segments))
		copy(out.Segments, r.Segments)
	}
	return &out
}
