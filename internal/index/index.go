package index

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-sod/quadtree/internal/geom"
	"github.com/go-sod/quadtree/internal/logging"
	"github.com/go-sod/quadtree/internal/metrics"
	"github.com/go-sod/quadtree/pkg/container/quadtree"
)

// Split is emitted when a region of the index is divided into quadrants.
type Split struct {
	Region    geom.Rect `json:"region"`
	Depth     int       `json:"depth"`
	Nodes     int       `json:"nodes"`
	CreatedAt time.Time `json:"createdAt"`
}

type Notifier interface {
	Notify(splits ...Split)
}

// Inserter is the write side of the index used by the drivers.
type Inserter interface {
	Insert(ctx context.Context, source string, p geom.Point) bool
}

// Querier is the read side of the index.
type Querier interface {
	Contains(p geom.Point) bool
	Locate(x, y float64) (geom.Rect, bool)
}

type Stats struct {
	Bounds   geom.Rect `json:"bounds"`
	Points   int       `json:"points"`
	Nodes    int       `json:"nodes"`
	Depth    int       `json:"depth"`
	Capacity int       `json:"capacity"`
}

type Option func(*Index)

type ProvideFn = func(Notifier) (*Index, error)

func WithNotifier(n Notifier) Option {
	return func(i *Index) {
		i.notifier = n
	}
}

// Index guards a quadtree with a read-write lock: inserts are exclusive,
// queries and traversals share the lock.
type Index struct {
	mtx      sync.RWMutex
	tree     *quadtree.Tree
	notifier Notifier
	// splits produced by the insert currently holding the write lock
	pending []Split
}

func New(cfg *Config, opts ...Option) (*Index, error) {
	i := &Index{}
	for _, opt := range opts {
		opt(i)
	}
	tree, err := quadtree.New(
		cfg.Bounds(),
		quadtree.WithCapacity(cfg.Capacity),
		quadtree.WithMaxDepth(cfg.MaxDepth),
		quadtree.WithDivideHook(i.onDivide),
	)
	if err != nil {
		return nil, fmt.Errorf("unable create index: %w", err)
	}
	i.tree = tree
	return i, nil
}

func (i *Index) onDivide(r quadtree.Region) {
	i.pending = append(i.pending, Split{Region: r.Bounds, Depth: r.Depth, CreatedAt: time.Now()})
}

func (i *Index) insert(p geom.Point) (accepted bool, splits []Split, nodes, depth int) {
	i.mtx.Lock()
	defer i.mtx.Unlock()
	defer func() {
		i.pending = nil
	}()

	accepted = i.tree.Insert(p)
	return accepted, i.pending, i.tree.Nodes(), i.tree.Depth()
}

// Insert adds p to the index. A false result means p is outside the indexed
// region; it is counted but is not an error.
func (i *Index) Insert(ctx context.Context, source string, p geom.Point) bool {
	logger := logging.FromContext(ctx)

	accepted, splits, nodes, depth := i.insert(p)

	if err := metrics.RecordInsert(ctx, metrics.Insert{
		Source:   source,
		Accepted: accepted,
		Splits:   len(splits),
		Nodes:    nodes,
		Depth:    depth,
	}); err != nil {
		logger.Debugf("unable record insert metrics: %v", err)
	}

	if !accepted {
		logger.Debugf("point %s is outside the index bounds", p)
		return false
	}
	if len(splits) > 0 {
		for k := range splits {
			splits[k].Nodes = nodes
		}
		logger.Debugf("point %s divided %d region(s), nodes: %d, depth: %d", p, len(splits), nodes, depth)
		if i.notifier != nil {
			i.notifier.Notify(splits...)
		}
	}
	return true
}

func (i *Index) Contains(p geom.Point) bool {
	i.mtx.RLock()
	defer i.mtx.RUnlock()
	return i.tree.Contains(p)
}

func (i *Index) Locate(x, y float64) (geom.Rect, bool) {
	i.mtx.RLock()
	defer i.mtx.RUnlock()
	return i.tree.Locate(x, y)
}

// ContainsAll checks every point under a single read lock.
func (i *Index) ContainsAll(points []geom.Point) []bool {
	i.mtx.RLock()
	defer i.mtx.RUnlock()
	found := make([]bool, len(points))
	for k := range points {
		found[k] = i.tree.Contains(points[k])
	}
	return found
}

// Walk traverses the tree under the read lock; fn must not call back into the index.
func (i *Index) Walk(fn func(quadtree.Region) bool) {
	i.mtx.RLock()
	defer i.mtx.RUnlock()
	i.tree.Walk(fn)
}

func (i *Index) Stats() Stats {
	i.mtx.RLock()
	defer i.mtx.RUnlock()
	return Stats{
		Bounds:   i.tree.Bounds(),
		Points:   i.tree.Len(),
		Nodes:    i.tree.Nodes(),
		Depth:    i.tree.Depth(),
		Capacity: i.tree.Capacity(),
	}
}
