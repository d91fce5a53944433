package generator

import (
	"testing"

	"github.com/go-sod/quadtree/internal/geom"
)

func TestGenerator_Points(t *testing.T) {
	tests := []struct {
		name   string
		bounds geom.Rect
		n      int
	}{
		{name: "screen", bounds: geom.NewRect(0, 0, 800, 600), n: 1000},
		{name: "negative_origin", bounds: geom.NewRect(-10, -20, 0.5, 3), n: 1000},
		{name: "empty", bounds: geom.NewRect(0, 0, 1, 1), n: 0},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			points := New(42).Points(test.bounds, test.n)
			if len(points) != test.n {
				t.Fatalf("generated points, got: %d, expected: %d", len(points), test.n)
			}
			for _, p := range points {
				if !test.bounds.Contains(p) {
					t.Errorf("point %v is outside %v", p, test.bounds)
				}
			}
		})
	}
}

func TestGenerator_Seed(t *testing.T) {
	bounds := geom.NewRect(0, 0, 100, 100)
	a, b := New(7).Points(bounds, 20), New(7).Points(bounds, 20)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("point %d of equally seeded generators, got: %v, expected: %v", i, b[i], a[i])
		}
	}
	if c := New(8).Points(bounds, 20); c[0] == a[0] && c[1] == a[1] {
		t.Errorf("differently seeded generators produced the same points")
	}
}

func TestGenerator_Float64(t *testing.T) {
	g := New(1)
	for i := 0; i < 10000; i++ {
		if v := g.Float64(); v < 0 || v >= 1 {
			t.Fatalf("value %v is outside [0, 1)", v)
		}
	}
}

func TestNew_SeedsState(t *testing.T) {
	// first xorshift32 step from state 1
	const expected = 270369.0 / maxUint32
	if got := New(1).Float64(); got != expected {
		t.Errorf("first value of a generator seeded with 1, got: %v, expected: %v", got, expected)
	}
}
