package draw

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Point is a position in surface coordinates (y grows downward).
type Point struct {
	X, Y float64
}

func (p Point) Add(o Point) Point { return Point{X: p.X + o.X, Y: p.Y + o.Y} }

func (p Point) Sub(o Point) Point { return Point{X: p.X - o.X, Y: p.Y - o.Y} }

// Rotate rotates p around the origin by theta radians.
func (p Point) Rotate(theta float64) Point {
	sin, cos := math.Sincos(theta)
	return Point{X: p.X*cos - p.Y*sin, Y: p.X*sin + p.Y*cos}
}

func (p Point) IsValid() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// Size is the drawable area of a surface.
type Size struct {
	W, H float64
}

// Empty reports whether the surface has no drawable area yet.
func (s Size) Empty() bool { return !(s.W > 0 && s.H > 0) }

func (s Size) Min() float64 { return math.Min(s.W, s.H) }

// Stop is a gradient colour stop. Offset is in [0, 1]; Alpha is straight
// (not premultiplied).
type Stop struct {
	Offset float64
	Color  colorful.Color
	Alpha  float64
}

// Radial is a radial gradient with inner radius zero. Offsets beyond the
// last stop take the last stop's colour.
type Radial struct {
	Center Point
	Radius float64
	Stops  []Stop
}

// At samples the gradient at p.
func (g Radial) At(p Point) (colorful.Color, float64) {
	if g.Radius <= 0 || len(g.Stops) == 0 {
		return colorful.Color{}, 0
	}
	d := p.Sub(g.Center)
	return g.Sample(math.Hypot(d.X, d.Y) / g.Radius)
}

// Sample returns the colour and alpha at a normalised offset.
func (g Radial) Sample(offset float64) (colorful.Color, float64) {
	if len(g.Stops) == 0 {
		return colorful.Color{}, 0
	}
	first := g.Stops[0]
	if offset <= first.Offset {
		return first.Color, first.Alpha
	}
	for i := 1; i < len(g.Stops); i++ {
		a, b := g.Stops[i-1], g.Stops[i]
		if offset > b.Offset {
			continue
		}
		span := b.Offset - a.Offset
		if span <= 0 {
			return b.Color, b.Alpha
		}
		f := (offset - a.Offset) / span
		return a.Color.BlendRgb(b.Color, f), a.Alpha + (b.Alpha-a.Alpha)*f
	}
	last := g.Stops[len(g.Stops)-1]
	return last.Color, last.Alpha
}

// Surface is the output a frame is drawn onto. Implementations composite
// source-over onto a transparent backing.
type Surface interface {
	Clear()
	FillCircle(c Circle)
	FillRect(r Rect)
}

// Circle is a filled disc. Fill is expressed in the disc's local frame:
// translated to Center, then rotated by Rotation.
type Circle struct {
	Center   Point
	Radius   float64
	Rotation float64
	Fill     Radial
}

// Local maps a surface point into the circle's local frame.
func (c Circle) Local(p Point) Point {
	return p.Sub(c.Center).Rotate(-c.Rotation)
}

// Rect is a filled axis-aligned rectangle; Fill is in surface coordinates.
type Rect struct {
	Min  Point
	Size Size
	Fill Radial
}
