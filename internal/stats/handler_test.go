package stats

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/go-sod/quadtree/internal/geom"
	"github.com/go-sod/quadtree/internal/index"
	"github.com/go-sod/quadtree/internal/metrics"
	"github.com/go-sod/quadtree/internal/pointset"
)

func TestHandler(t *testing.T) {
	idx, err := index.New(&index.Config{Width: 100, Height: 100, Capacity: 4, MaxDepth: 48})
	require.NoError(t, err)

	points := []geom.Point{{X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 3}, {X: 4, Y: 4}, {X: 60, Y: 60}, {X: 500, Y: 1}}
	set := pointset.New(points...)
	for i := 0; i < 5; i++ {
		e, ok := set.Next()
		require.True(t, ok)
		require.True(t, idx.Insert(context.Background(), metrics.SourceFeeder, e.Point))
	}
	e, ok := set.Next()
	require.True(t, ok)
	require.False(t, idx.Insert(context.Background(), metrics.SourceFeeder, e.Point))

	tests := []struct {
		name     string
		set      *pointset.Set
		coverage *pointset.Coverage
	}{
		{name: "with_point_set", set: set, coverage: &pointset.Coverage{Total: 6, Fed: 6, Indexed: 5, Percent: 500.0 / 6}},
		{name: "without_point_set"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			h, err := NewHandler(&Config{RequestTimeout: time.Second}, idx, test.set)
			require.NoError(t, err)

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))
			require.Equal(t, http.StatusOK, rec.Code)

			var resp response
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			require.Equal(t, index.Stats{
				Bounds:   geom.NewRect(0, 0, 100, 100),
				Points:   5,
				Nodes:    5,
				Depth:    1,
				Capacity: 4,
			}, resp.Stats)
			if test.coverage == nil {
				require.Nil(t, resp.Coverage)
				return
			}
			require.NotNil(t, resp.Coverage)
			require.Equal(t, test.coverage.Indexed, resp.Coverage.Indexed)
			require.Equal(t, test.coverage.Total, resp.Coverage.Total)
			require.InDelta(t, test.coverage.Percent, resp.Coverage.Percent, 1e-9)
		})
	}

	h, err := NewHandler(&Config{RequestTimeout: time.Second}, idx, set)
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/stats", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
