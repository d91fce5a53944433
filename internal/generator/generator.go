// Package generator produces uniformly distributed random points.
package generator

import (
	"time"

	"github.com/valyala/fastrand"

	"github.com/go-sod/quadtree/internal/geom"
)

const maxUint32 = 1 << 32

type Generator struct {
	rng fastrand.RNG
}

// New returns a generator seeded with seed, or with the current time when
// seed is zero.
func New(seed uint32) *Generator {
	if seed == 0 {
		seed = uint32(time.Now().UnixNano())
	}
	g := &Generator{}
	g.rng.Seed(seed)
	return g
}

// Float64 returns a value in [0, 1).
func (g *Generator) Float64() float64 {
	return float64(g.rng.Uint32()) / maxUint32
}

// Point returns a point inside r using the half-open convention of geom.Rect.
func (g *Generator) Point(r geom.Rect) geom.Point {
	p := geom.NewPoint(r.X+g.Float64()*r.W, r.Y+g.Float64()*r.H)
	// rounding can push the sum onto the max edge
	b := r.Box()
	if p.X >= b.MaxX {
		p.X = r.X
	}
	if p.Y >= b.MaxY {
		p.Y = r.Y
	}
	return p
}

func (g *Generator) Points(r geom.Rect, n int) []geom.Point {
	points := make([]geom.Point, n)
	for i := range points {
		points[i] = g.Point(r)
	}
	return points
}
