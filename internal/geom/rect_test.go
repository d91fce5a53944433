package geom

import (
	"math"
	"testing"
)

func TestRect_Valid(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		r        Rect
		expected bool
	}{
		{name: "positive", r: NewRect(0, 0, 100, 100), expected: true},
		{name: "positive_negative_origin", r: NewRect(-10, -5, 0.5, 0.25), expected: true},
		{name: "zero_width", r: NewRect(0, 0, 0, 1), expected: false},
		{name: "negative_height", r: NewRect(0, 0, 1, -1), expected: false},
		{name: "nan", r: NewRect(0, math.NaN(), 1, 1), expected: false},
		{name: "overflow", r: NewRect(math.MaxFloat64, 0, math.MaxFloat64, 1), expected: false},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			if got := test.r.Valid(); got != test.expected {
				t.Errorf("validating %v, got: %v, expected: %v", test.r, got, test.expected)
			}
		})
	}
}

func TestRect_Contains(t *testing.T) {
	t.Parallel()
	r := NewRect(10, 20, 30, 40)
	tests := []struct {
		name     string
		p        Point
		expected bool
	}{
		{name: "inside", p: Point{15, 25}, expected: true},
		{name: "min_corner", p: Point{10, 20}, expected: true},
		{name: "max_x", p: Point{40, 25}, expected: false},
		{name: "max_y", p: Point{15, 60}, expected: false},
		{name: "below_min", p: Point{9.999, 25}, expected: false},
		{name: "nan", p: Point{math.NaN(), math.NaN()}, expected: false},
	}
	for _, test := range tests {
		if got := r.Contains(test.p); got != test.expected {
			t.Errorf("%s: %v contains %v, got: %v, expected: %v", test.name, r, test.p, got, test.expected)
		}
	}
}

func TestBox_Quadrants(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		r        Rect
		expected [4]Rect
	}{
		{
			name: "square",
			r:    NewRect(0, 0, 100, 100),
			expected: [4]Rect{
				NewRect(0, 0, 50, 50),
				NewRect(50, 0, 50, 50),
				NewRect(0, 50, 50, 50),
				NewRect(50, 50, 50, 50),
			},
		},
		{
			name: "odd",
			r:    NewRect(-3, 1, 5, 3),
			expected: [4]Rect{
				NewRect(-3, 1, 2.5, 1.5),
				NewRect(-0.5, 1, 2.5, 1.5),
				NewRect(-3, 2.5, 2.5, 1.5),
				NewRect(-0.5, 2.5, 2.5, 1.5),
			},
		},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			quadrants := test.r.Box().Quadrants()
			var area float64
			for i, q := range quadrants {
				if q.Rect() != test.expected[i] {
					t.Errorf("quadrant %d, got: %v, expected: %v", i, q.Rect(), test.expected[i])
				}
				area += q.Rect().Area()
				for j := i + 1; j < len(quadrants); j++ {
					if overlap := q.Rect().Intersection(quadrants[j].Rect()).Area(); overlap != 0 {
						t.Errorf("quadrants %d and %d overlap by %v", i, j, overlap)
					}
				}
			}
			if area != test.r.Area() {
				t.Errorf("quadrant area, got: %v, expected: %v", area, test.r.Area())
			}
		})
	}
}

// The quadrants share their dividing coordinates, so no point of the parent
// can fall between them even when the size does not halve exactly.
func TestBox_QuadrantsPartition(t *testing.T) {
	t.Parallel()
	b := NewRect(0.1, 0.3, 0.7, 1.9).Box()
	quadrants := b.Quadrants()
	probes := []Point{
		{quadrants[1].MinX, quadrants[2].MinY},
		{math.Nextafter(quadrants[1].MinX, 0), 0.3},
		{b.MinX, b.MinY},
		{math.Nextafter(b.MaxX, 0), math.Nextafter(b.MaxY, 0)},
	}
	for _, p := range probes {
		matches := 0
		for _, q := range quadrants {
			if q.Contains(p) {
				matches++
			}
		}
		if matches != 1 {
			t.Errorf("point %v is in %d quadrants, expected exactly one", p, matches)
		}
	}
}

func TestBox_Splittable(t *testing.T) {
	t.Parallel()
	if !NewRect(0, 0, 1, 1).Box().Splittable() {
		t.Errorf("unit box must be splittable")
	}
	tiny := Box{MinX: 1, MinY: 1, MaxX: math.Nextafter(1, 2), MaxY: 2}
	if tiny.Splittable() {
		t.Errorf("box one ulp wide must not be splittable")
	}
}
