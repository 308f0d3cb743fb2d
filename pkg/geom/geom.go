// Package geom provides the 2D vector primitives used by the turtle interpreter.
package geom

import "math"

// Vec2 is a point or direction in the plane.
type Vec2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// UnitX is the initial turtle heading.
var UnitX = Vec2{X: 1}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec2) Scale(k float64) Vec2 { return Vec2{v.X * k, v.Y * k} }

func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Rotate turns v counter-clockwise by rad radians about the origin.
func (v Vec2) Rotate(rad float64) Vec2 {
	sin, cos := math.Sincos(rad)
	return Vec2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// Normalize returns v scaled to unit length. The zero vector is returned unchanged.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// IsFinite reports whether both components are neither NaN nor infinite.
func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// ApproxEqual compares component-wise within tol.
func (v Vec2) ApproxEqual(o Vec2, tol float64) bool {
	return math.Abs(v.X-o.X) <= tol && math.Abs(v.Y-o.Y) <= tol
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * (math.Pi / 180)
}

// Segment is one Forward move.
type Segment struct {
	Start Vec2 `json:"start" yaml:"start"`
	End   Vec2 `json:"end" yaml:"end"`
}

func (s Segment) Length() float64 { return s.End.Sub(s.Start).Len() }

// IsDegenerate reports whether start and end coincide exactly.
func (s Segment) IsDegenerate() bool { return s.Start == s.End }

func (s Segment) IsFinite() bool { return s.Start.IsFinite() && s.End.IsFinite() }

// Bounds is the axis-aligned extent of a set of segments.
type Bounds struct {
	Min Vec2 `json:"min" yaml:"min"`
	Max Vec2 `json:"max" yaml:"max"`
}

// BoundsOf computes the extent of segs. An empty input yields the zero Bounds.
func BoundsOf(segs []Segment) Bounds {
	if len(segs) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: segs[0].Start, Max: segs[0].Start}
	for _, s := range segs {
		b.extend(s.Start)
		b.extend(s.End)
	}
	return b
}

func (b *Bounds) extend(p Vec2) {
	b.Min.X = math.Min(b.Min.X, p.X)
	b.Min.Y = math.Min(b.Min.Y, p.Y)
	b.Max.X = math.Max(b.Max.X, p.X)
	b.Max.Y = math.Max(b.Max.Y, p.Y)
}

// Width returns the horizontal extent.
func (b Bounds) Width() float64 { return b.Max.X - b.Min.X }

// Height returns the vertical extent.
func (b Bounds) Height() float64 { return b.Max.Y - b.Min.Y }
