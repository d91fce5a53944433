package geom

import (
	"math"
	"strconv"
)

// Rect is an axis-aligned rectangle given by its origin (top-left corner)
// and its size.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Valid reports whether the rectangle has finite components and a positive size.
func (r Rect) Valid() bool {
	for _, v := range [...]float64{r.X, r.Y, r.W, r.H, r.X + r.W, r.Y + r.H} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return r.W > 0 && r.H > 0
}

func (r Rect) Area() float64 {
	return r.W * r.H
}

func (r Rect) Box() Box {
	return Box{MinX: r.X, MinY: r.Y, MaxX: r.X + r.W, MaxY: r.Y + r.H}
}

func (r Rect) Contains(p Point) bool {
	return r.Box().Contains(p)
}

// Within reports whether r lies completely inside outer.
func (r Rect) Within(outer Rect) bool {
	return r.X >= outer.X && r.Y >= outer.Y && r.X+r.W <= outer.X+outer.W && r.Y+r.H <= outer.Y+outer.H
}

// Intersection returns the overlapping part of r and r1, or the zero Rect
// when they do not overlap.
func (r Rect) Intersection(r1 Rect) Rect {
	x0, y0 := math.Max(r.X, r1.X), math.Max(r.Y, r1.Y)
	x1, y1 := math.Min(r.X+r.W, r1.X+r1.W), math.Min(r.Y+r.H, r1.Y+r1.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

func (r Rect) String() string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	return "(" + f(r.X) + "," + f(r.Y) + "," + f(r.W) + "," + f(r.H) + ")"
}

// Box is the edge form of a rectangle. Containment is half-open: the min
// edges belong to the box, the max edges do not.
type Box struct {
	MinX, MinY, MaxX, MaxY float64
}

func (b Box) Contains(p Point) bool {
	return b.ContainsXY(p.X, p.Y)
}

// ContainsXY is a conjunction of positive comparisons so NaN is never contained.
func (b Box) ContainsXY(x, y float64) bool {
	return x >= b.MinX && x < b.MaxX && y >= b.MinY && y < b.MaxY
}

// Quadrants splits b at its midpoints into top-left, top-right, bottom-left
// and bottom-right. Neighbouring quadrants share the exact same midpoint
// value, so every point of b falls into exactly one of them.
func (b Box) Quadrants() [4]Box {
	mx := b.MinX + (b.MaxX-b.MinX)/2
	my := b.MinY + (b.MaxY-b.MinY)/2
	return [4]Box{
		{MinX: b.MinX, MinY: b.MinY, MaxX: mx, MaxY: my},
		{MinX: mx, MinY: b.MinY, MaxX: b.MaxX, MaxY: my},
		{MinX: b.MinX, MinY: my, MaxX: mx, MaxY: b.MaxY},
		{MinX: mx, MinY: my, MaxX: b.MaxX, MaxY: b.MaxY},
	}
}

// Splittable reports whether halving b still produces quadrants of non-zero size.
func (b Box) Splittable() bool {
	mx := b.MinX + (b.MaxX-b.MinX)/2
	my := b.MinY + (b.MaxY-b.MinY)/2
	return mx > b.MinX && mx < b.MaxX && my > b.MinY && my < b.MaxY
}

func (b Box) Rect() Rect {
	return Rect{X: b.MinX, Y: b.MinY, W: b.MaxX - b.MinX, H: b.MaxY - b.MinY}
}
