// Package metrics defines the opencensus measures recorded by the index and
// its drivers, and exposes them in the Prometheus format.
package metrics

import (
	"context"
	"fmt"

	"contrib.go.opencensus.io/exporter/prometheus"
	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
)

const Namespace = "quadtree"

const (
	SourceHTTP   = "http"
	SourceFeeder = "feeder"
	SourceScrape = "scrape"
)

var SourceKey = tag.MustNewKey("source")

var (
	PointsInserted = stats.Int64("quadtree/points_inserted", "Points accepted by the index", stats.UnitDimensionless)
	PointsRejected = stats.Int64("quadtree/points_rejected", "Points outside the indexed region", stats.UnitDimensionless)
	Subdivisions   = stats.Int64("quadtree/subdivisions", "Leaves turned into internal nodes", stats.UnitDimensionless)
	TreeNodes      = stats.Int64("quadtree/tree_nodes", "Number of nodes in the tree", stats.UnitDimensionless)
	TreeDepth      = stats.Int64("quadtree/tree_depth", "Depth of the deepest node", stats.UnitDimensionless)
	Coverage       = stats.Float64("quadtree/coverage_ratio", "Share of the point set already indexed", stats.UnitDimensionless)
)

var (
	PointsInsertedView = &view.View{
		Name:        "quadtree/points_inserted_total",
		Measure:     PointsInserted,
		Description: PointsInserted.Description(),
		TagKeys:     []tag.Key{SourceKey},
		Aggregation: view.Sum(),
	}
	PointsRejectedView = &view.View{
		Name:        "quadtree/points_rejected_total",
		Measure:     PointsRejected,
		Description: PointsRejected.Description(),
		TagKeys:     []tag.Key{SourceKey},
		Aggregation: view.Sum(),
	}
	SubdivisionsView = &view.View{
		Name:        "quadtree/subdivisions_total",
		Measure:     Subdivisions,
		Description: Subdivisions.Description(),
		Aggregation: view.Sum(),
	}
	TreeNodesView = &view.View{
		Name:        "quadtree/tree_nodes",
		Measure:     TreeNodes,
		Description: TreeNodes.Description(),
		Aggregation: view.LastValue(),
	}
	TreeDepthView = &view.View{
		Name:        "quadtree/tree_depth",
		Measure:     TreeDepth,
		Description: TreeDepth.Description(),
		Aggregation: view.LastValue(),
	}
	CoverageView = &view.View{
		Name:        "quadtree/coverage_ratio",
		Measure:     Coverage,
		Description: Coverage.Description(),
		Aggregation: view.LastValue(),
	}
)

func Views() []*view.View {
	return []*view.View{
		PointsInsertedView,
		PointsRejectedView,
		SubdivisionsView,
		TreeNodesView,
		TreeDepthView,
		CoverageView,
	}
}

func Register() error {
	if err := view.Register(Views()...); err != nil {
		return fmt.Errorf("registering views: %w", err)
	}
	return nil
}

// NewExporter registers the views and returns a Prometheus exporter that
// doubles as the /metrics handler.
func NewExporter() (*prometheus.Exporter, error) {
	if err := Register(); err != nil {
		return nil, err
	}
	pe, err := prometheus.NewExporter(prometheus.Options{Namespace: Namespace})
	if err != nil {
		return nil, fmt.Errorf("creating prometheus exporter: %w", err)
	}
	view.RegisterExporter(pe)
	return pe, nil
}

// Insert describes the outcome of one insert for RecordInsert.
type Insert struct {
	Source   string
	Accepted bool
	Splits   int
	Nodes    int
	Depth    int
}

func RecordInsert(ctx context.Context, in Insert) error {
	measurements := []stats.Measurement{
		TreeNodes.M(int64(in.Nodes)),
		TreeDepth.M(int64(in.Depth)),
	}
	if in.Accepted {
		measurements = append(measurements, PointsInserted.M(1))
	} else {
		measurements = append(measurements, PointsRejected.M(1))
	}
	if in.Splits > 0 {
		measurements = append(measurements, Subdivisions.M(int64(in.Splits)))
	}
	return stats.RecordWithTags(ctx, []tag.Mutator{tag.Upsert(SourceKey, in.Source)}, measurements...)
}

func RecordCoverage(ctx context.Context, ratio float64) {
	stats.Record(ctx, Coverage.M(ratio))
}
