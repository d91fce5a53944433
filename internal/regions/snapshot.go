// Package regions exposes the structure of the index as a flat list of
// regions, encoded as JSON or XDR.
package regions

import (
	"fmt"
	"io"

	xdr "github.com/davecgh/go-xdr/xdr2"

	"github.com/go-sod/quadtree/internal/geom"
	"github.com/go-sod/quadtree/pkg/container/quadtree"
)

const (
	ContentTypeJSON = "application/json"
	ContentTypeXDR  = "application/xdr"
)

// Walker is satisfied by *index.Index and *quadtree.Tree.
type Walker interface {
	Walk(fn func(quadtree.Region) bool)
}

// Record describes one node. Fixed-size integers keep the XDR form stable.
type Record struct {
	X      float64      `json:"x"`
	Y      float64      `json:"y"`
	W      float64      `json:"w"`
	H      float64      `json:"h"`
	Depth  int32        `json:"depth"`
	Leaf   bool         `json:"leaf"`
	Points []geom.Point `json:"points"`
}

func (r Record) Rect() geom.Rect {
	return geom.NewRect(r.X, r.Y, r.W, r.H)
}

type Snapshot struct {
	Regions []Record `json:"regions"`
}

type Filter struct {
	// MaxDepth stops the traversal below this depth; negative means unlimited.
	MaxDepth int
	// LeavesOnly drops internal nodes from the result.
	LeavesOnly bool
	// OmitPoints leaves Record.Points empty.
	OmitPoints bool
}

func Build(w Walker, f Filter) Snapshot {
	s := Snapshot{Regions: []Record{}}
	w.Walk(func(r quadtree.Region) bool {
		atLimit := f.MaxDepth >= 0 && r.Depth >= f.MaxDepth
		if !f.LeavesOnly || r.Leaf || atLimit {
			rec := Record{
				X:      r.Bounds.X,
				Y:      r.Bounds.Y,
				W:      r.Bounds.W,
				H:      r.Bounds.H,
				Depth:  int32(r.Depth),
				Leaf:   r.Leaf,
				Points: []geom.Point{},
			}
			if !f.OmitPoints && len(r.Points) > 0 {
				rec.Points = r.Points
			}
			s.Regions = append(s.Regions, rec)
		}
		return !atLimit
	})
	return s
}

func EncodeXDR(w io.Writer, s Snapshot) error {
	if _, err := xdr.Marshal(w, s); err != nil {
		return fmt.Errorf("xdr encode snapshot: %w", err)
	}
	return nil
}

func DecodeXDR(r io.Reader) (Snapshot, error) {
	var s Snapshot
	if _, err := xdr.Unmarshal(r, &s); err != nil {
		return Snapshot{}, fmt.Errorf("xdr decode snapshot: %w", err)
	}
	return s, nil
}

// Area sums the area of the leaves; it equals the root's area.
func (s Snapshot) Area() float64 {
	var sum float64
	for _, r := range s.Regions {
		if r.Leaf {
			sum += r.W * r.H
		}
	}
	return sum
}

func (s Snapshot) Depth() int {
	var depth int32
	for _, r := range s.Regions {
		if r.Depth > depth {
			depth = r.Depth
		}
	}
	return int(depth)
}
