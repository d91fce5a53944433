package main

import (
	"testing"

	"github.com/go-sod/quadtree/internal/geom"
)

func TestParsePoints(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []geom.Point
		wantErr  bool
	}{
		{name: "one", args: []string{"1", "2.5"}, expected: []geom.Point{{X: 1, Y: 2.5}}},
		{name: "two", args: []string{"-1", "0", "1e2", "3"}, expected: []geom.Point{{X: -1, Y: 0}, {X: 100, Y: 3}}},
		{name: "empty", wantErr: true},
		{name: "odd", args: []string{"1", "2", "3"}, wantErr: true},
		{name: "not_a_number", args: []string{"1", "y"}, wantErr: true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := parsePoints(test.args)
			if (err != nil) != test.wantErr {
				t.Fatalf("parsePoints() error, got: %v, expected error: %v", err, test.wantErr)
			}
			if len(got) != len(test.expected) {
				t.Fatalf("points, got: %v, expected: %v", got, test.expected)
			}
			for i := range got {
				if got[i] != test.expected[i] {
					t.Errorf("point %d, got: %v, expected: %v", i, got[i], test.expected[i])
				}
			}
		})
	}
}
