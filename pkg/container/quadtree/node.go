package quadtree

import (
	"github.com/go-sod/quadtree/internal/geom"
)

type kind uint8

const (
	leafKind kind = iota
	internalKind
)

// Quadrant order used for creating children and for offering points to them.
const (
	TopLeft = iota
	TopRight
	BottomLeft
	BottomRight
)

type node struct {
	kind   kind
	bounds geom.Box
	// bounds in origin/size form, as reported to callers
	rect  geom.Rect
	depth int
	// leafKind only
	points []geom.Point
	// internalKind only
	children [4]*node
}

func newLeaf(rect geom.Rect, bounds geom.Box, depth, capacity int) *node {
	return &node{
		kind:   leafKind,
		bounds: bounds,
		rect:   rect,
		depth:  depth,
		points: make([]geom.Point, 0, capacity),
	}
}

func (n *node) insert(t *Tree, p geom.Point) bool {
	if !n.bounds.Contains(p) {
		return false
	}

	if n.kind == leafKind {
		if len(n.points) < t.opts.capacity || !n.divisible(t) {
			n.points = append(n.points, p)
			return true
		}
		n.divide(t)
	}
	return n.offer(t, p)
}

// divisible reports whether a full leaf may still turn into an internal node.
// Leaves at the maximum depth, or too small to halve, keep every point they get.
func (n *node) divisible(t *Tree) bool {
	return n.depth < t.opts.maxDepth && n.bounds.Splittable()
}

// offer hands p to the children in quadrant order until one accepts it.
func (n *node) offer(t *Tree, p geom.Point) bool {
	for _, child := range n.children {
		if child.insert(t, p) {
			return true
		}
	}
	return false
}

// divide turns a leaf into an internal node. The held points are moved to the
// new children; nothing is left behind in n. Calling divide on an internal
// node does nothing.
func (n *node) divide(t *Tree) {
	if n.kind == internalKind {
		return
	}

	for i, b := range n.bounds.Quadrants() {
		n.children[i] = newLeaf(b.Rect(), b, n.depth+1, t.opts.capacity)
	}
	t.nodes += 4
	if n.depth+1 > t.depth {
		t.depth = n.depth + 1
	}

	held := n.points
	n.points = nil
	n.kind = internalKind
	for _, p := range held {
		if !n.offer(t, p) {
			panic("quadtree: point " + p.String() + " is outside every quadrant of " + n.rect.String())
		}
	}
	if t.opts.onDivide != nil {
		t.opts.onDivide(Region{Bounds: n.rect, Depth: n.depth})
	}
}

func (n *node) contains(p geom.Point) bool {
	if !n.bounds.Contains(p) {
		return false
	}

	switch n.kind {
	case leafKind:
		for _, q := range n.points {
			if q.Equal(p) {
				return true
			}
		}
	case internalKind:
		for _, child := range n.children {
			if child.contains(p) {
				return true
			}
		}
	}
	return false
}

// locate returns the deepest node whose bounds hold (x, y). The quadrants of
// an internal node partition it exactly, so at most one child can match.
func (n *node) locate(x, y float64) *node {
	if !n.bounds.ContainsXY(x, y) {
		return nil
	}
	if n.kind == internalKind {
		for _, child := range n.children {
			if found := child.locate(x, y); found != nil {
				return found
			}
		}
	}
	return n
}

func (n *node) walk(fn func(Region) bool) {
	region := Region{
		Bounds: n.rect,
		Depth:  n.depth,
		Leaf:   n.kind == leafKind,
	}
	if region.Leaf {
		region.Points = append([]geom.Point(nil), n.points...)
	}
	if !fn(region) || n.kind == leafKind {
		return
	}
	for _, child := range n.children {
		child.walk(fn)
	}
}
