package geom

import (
	"math"
	"testing"
)

func TestPoint_Equal(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		p        Point
		p1       Point
		expected bool
	}{
		{name: "positive", p: Point{10, 10}, p1: Point{10, 10}, expected: true},
		{name: "negative", p: Point{10, 10}, p1: Point{11, 10}, expected: false},
		{name: "negative_one_ulp", p: Point{math.Nextafter(0.3, 1), 1}, p1: Point{0.3, 1}, expected: false},
		{name: "negative_nan", p: Point{math.NaN(), 1}, p1: Point{math.NaN(), 1}, expected: false},
	}
	for _, test := range tests {
		if test.p.Equal(test.p1) != test.expected {
			t.Errorf("the comparison of points %s, got: %v, expected: %v", test.name, test.p.Equal(test.p1), test.expected)
		}
	}
}

func TestPoint_Finite(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		p        Point
		expected bool
	}{
		{name: "positive", p: NewPoint(1, -2), expected: true},
		{name: "nan", p: NewPoint(math.NaN(), 0), expected: false},
		{name: "inf", p: NewPoint(0, math.Inf(-1)), expected: false},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			if got := test.p.Finite(); got != test.expected {
				t.Errorf("finite check of %v, got: %v, expected: %v", test.p, got, test.expected)
			}
		})
	}
}

func TestPoint_String(t *testing.T) {
	t.Parallel()
	if got := NewPoint(1.5, -2).String(); got != "[1.5,-2]" {
		t.Errorf("point string, got: %s, expected: [1.5,-2]", got)
	}
}
