package quadtree

import (
	"errors"
	"fmt"

	"github.com/go-sod/quadtree/internal/geom"
)

const (
	// DefaultCapacity is the number of points a leaf holds before it is divided.
	DefaultCapacity = 4
	// DefaultMaxDepth bounds the division of leaves holding coincident points.
	DefaultMaxDepth = 48
)

var ErrInvalidBounds = errors.New("bounds must be finite with positive width and height")

type Option func(*Tree)

func WithCapacity(n int) Option {
	return func(t *Tree) {
		t.opts.capacity = n
	}
}

func WithMaxDepth(n int) Option {
	return func(t *Tree) {
		t.opts.maxDepth = n
	}
}

// WithDivideHook registers fn to be called each time a leaf becomes an
// internal node, after its points have been moved to the new children.
func WithDivideHook(fn func(Region)) Option {
	return func(t *Tree) {
		t.opts.onDivide = fn
	}
}

type Options struct {
	capacity int
	maxDepth int
	onDivide func(Region)
}

// Region is a read-only view of one node handed out by Walk.
type Region struct {
	Bounds geom.Rect
	Depth  int
	Leaf   bool
	// Points held by a leaf; always empty for internal nodes.
	Points []geom.Point
}

// Tree indexes points inside a fixed rectangle by recursive subdivision.
// A Tree is not safe for concurrent use.
type Tree struct {
	opts  Options
	root  *node
	len   int
	nodes int
	depth int
}

func New(bounds geom.Rect, opts ...Option) (*Tree, error) {
	if !bounds.Valid() {
		return nil, fmt.Errorf("quadtree %s: %w", bounds, ErrInvalidBounds)
	}
	t := &Tree{
		opts: Options{
			capacity: DefaultCapacity,
			maxDepth: DefaultMaxDepth,
		},
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.opts.capacity < 1 {
		return nil, fmt.Errorf("quadtree capacity %d: must be at least 1", t.opts.capacity)
	}
	if t.opts.maxDepth < 0 {
		return nil, fmt.Errorf("quadtree max depth %d: must not be negative", t.opts.maxDepth)
	}
	t.root = newLeaf(bounds, bounds.Box(), 0, t.opts.capacity)
	t.nodes = 1
	return t, nil
}

// Insert places p in the leaf whose half-open bounds contain it, dividing
// full leaves on the way. It returns false, without touching the tree, when
// p lies outside the tree's bounds.
func (t *Tree) Insert(p geom.Point) bool {
	if !t.root.insert(t, p) {
		return false
	}
	t.len += 1
	return true
}

// Divide turns the root into an internal node; see Insert for when this
// happens on its own.
func (t *Tree) Divide() {
	if t.root.kind == leafKind && t.root.bounds.Splittable() {
		t.root.divide(t)
	}
}

// Contains reports whether a point with exactly p's coordinates was inserted.
func (t *Tree) Contains(p geom.Point) bool {
	return t.root.contains(p)
}

// Locate returns the bounds of the smallest region containing (x, y). The
// second result is false when (x, y) is outside the tree's bounds.
func (t *Tree) Locate(x, y float64) (geom.Rect, bool) {
	found := t.root.locate(x, y)
	if found == nil {
		return geom.Rect{}, false
	}
	return found.rect, true
}

// Walk visits every node in pre-order, children in quadrant order. When fn
// returns false the children of the visited node are skipped.
func (t *Tree) Walk(fn func(Region) bool) {
	t.root.walk(fn)
}

// Points returns all stored points in traversal order.
func (t *Tree) Points() []geom.Point {
	points := make([]geom.Point, 0, t.len)
	t.Walk(func(r Region) bool {
		points = append(points, r.Points...)
		return true
	})
	return points
}

func (t *Tree) Bounds() geom.Rect {
	return t.root.rect
}

func (t *Tree) Capacity() int {
	return t.opts.capacity
}

// Len returns the number of stored points.
func (t *Tree) Len() int {
	return t.len
}

// Nodes returns the number of leaf and internal nodes.
func (t *Tree) Nodes() int {
	return t.nodes
}

// Depth returns the depth of the deepest node, the root being at depth 0.
func (t *Tree) Depth() int {
	return t.depth
}
