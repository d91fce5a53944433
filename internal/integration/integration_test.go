package integration

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/go-sod/quadtree/internal/config"
	"github.com/go-sod/quadtree/internal/geom"
	"github.com/go-sod/quadtree/internal/index"
	"github.com/go-sod/quadtree/internal/pointset"
	"github.com/go-sod/quadtree/internal/routes"
)

func newServer(t *testing.T, ctx context.Context, set *pointset.Set) (*Client, func()) {
	cfg := config.Config{}
	cfg.Index = index.Config{Width: 100, Height: 100, Capacity: 4, MaxDepth: 48}
	cfg.Collect.RequestTimeout = 10 * time.Second
	cfg.Collect.MaxDataItemsLen = 100
	cfg.Query.RequestTimeout = 10 * time.Second
	cfg.Query.MaxDataItemsLen = 100
	cfg.Query.Workers = 4
	cfg.Regions.RequestTimeout = 10 * time.Second
	cfg.Stats.RequestTimeout = 10 * time.Second

	idx, err := index.New(&cfg.Index)
	require.NoError(t, err)
	mux, err := routes.New(ctx, &cfg, idx, set, nil)
	require.NoError(t, err)

	srv := httptest.NewServer(mux)
	return NewClient(strings.TrimPrefix(srv.URL, "http://")), srv.Close
}

func TestService(t *testing.T) {
	ctx := context.Background()
	set := pointset.New(geom.NewPoint(1, 1), geom.NewPoint(99, 99))
	client, stop := newServer(t, ctx, set)
	defer stop()

	require.NoError(t, client.Health(ctx))

	// four points fill the root leaf
	collected, err := client.Collect(ctx, geom.NewPoint(1, 1), geom.NewPoint(2, 2), geom.NewPoint(3, 3), geom.NewPoint(4, 4))
	require.NoError(t, err)
	require.Equal(t, 4, collected.Accepted)

	located, err := client.Locate(ctx, geom.NewPoint(50, 50))
	require.NoError(t, err)
	require.True(t, located.Data[0].Found)
	require.Equal(t, geom.NewRect(0, 0, 100, 100), *located.Data[0].Region)

	// the fifth point divides the root
	collected, err = client.Collect(ctx, geom.NewPoint(60, 60), geom.NewPoint(100, 100))
	require.NoError(t, err)
	require.Equal(t, 1, collected.Accepted)
	require.Equal(t, 1, collected.Rejected)
	require.False(t, collected.Data[1].Accepted)

	located, err = client.Locate(ctx, geom.NewPoint(75, 75), geom.NewPoint(1, 1), geom.NewPoint(100, 50))
	require.NoError(t, err)
	require.Equal(t, geom.NewRect(50, 50, 50, 50), *located.Data[0].Region)
	require.Equal(t, geom.NewRect(0, 0, 50, 50), *located.Data[1].Region)
	require.False(t, located.Data[2].Found)

	contains, err := client.Contains(ctx, geom.NewPoint(60, 60), geom.NewPoint(100, 100), geom.NewPoint(4, 4))
	require.NoError(t, err)
	require.True(t, contains.Data[0].Contains)
	require.False(t, contains.Data[1].Contains)
	require.True(t, contains.Data[2].Contains)

	snapshot, err := client.Regions(ctx, "")
	require.NoError(t, err)
	require.Len(t, snapshot.Regions, 5)
	require.Equal(t, float64(100*100), snapshot.Area())

	leaves, err := client.Regions(ctx, "leaves=true&points=false")
	require.NoError(t, err)
	require.Len(t, leaves.Regions, 4)

	stats, err := client.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, 5, stats.Points)
	require.Equal(t, 5, stats.Nodes)
	require.Equal(t, 1, stats.Depth)
	require.NotNil(t, stats.Coverage)
	require.Equal(t, 1, stats.Coverage.Indexed)
	require.Equal(t, 2, stats.Coverage.Total)
}

func TestClient_Errors(t *testing.T) {
	ctx := context.Background()
	client, stop := newServer(t, ctx, nil)
	defer stop()

	_, err := client.Regions(ctx, "depth=x")
	require.Error(t, err)
	require.Contains(t, err.Error(), "400")

	stats, err := client.Stats(ctx)
	require.NoError(t, err)
	require.Nil(t, stats.Coverage)

	points := make([]geom.Point, 101)
	_, err = client.Collect(ctx, points...)
	require.Error(t, err)
}
