// Package routes assembles the HTTP API of the service.
package routes

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-sod/quadtree/internal/collect"
	"github.com/go-sod/quadtree/internal/config"
	"github.com/go-sod/quadtree/internal/index"
	"github.com/go-sod/quadtree/internal/pointset"
	"github.com/go-sod/quadtree/internal/query"
	"github.com/go-sod/quadtree/internal/regions"
	"github.com/go-sod/quadtree/internal/server"
	"github.com/go-sod/quadtree/internal/stats"
)

// New registers every endpoint on a fresh mux. set and metrics may be nil.
func New(ctx context.Context, cfg *config.Config, idx *index.Index, set *pointset.Set, metrics http.Handler) (*http.ServeMux, error) {
	mux := http.NewServeMux()

	collectHandler, err := collect.NewHandler(&cfg.Collect, idx)
	if err != nil {
		return nil, fmt.Errorf("collect.NewHandler: %w", err)
	}
	containsHandler, err := query.NewContainsHandler(&cfg.Query, idx)
	if err != nil {
		return nil, fmt.Errorf("query.NewContainsHandler: %w", err)
	}
	locateHandler, err := query.NewLocateHandler(&cfg.Query, idx)
	if err != nil {
		return nil, fmt.Errorf("query.NewLocateHandler: %w", err)
	}
	regionsHandler, err := regions.NewHandler(&cfg.Regions, idx)
	if err != nil {
		return nil, fmt.Errorf("regions.NewHandler: %w", err)
	}
	statsHandler, err := stats.NewHandler(&cfg.Stats, idx, set)
	if err != nil {
		return nil, fmt.Errorf("stats.NewHandler: %w", err)
	}

	mux.Handle("/collect", collectHandler)
	mux.Handle("/contains", containsHandler)
	mux.Handle("/locate", locateHandler)
	mux.Handle("/regions", regionsHandler)
	mux.Handle("/stats", statsHandler)
	mux.Handle("/health", server.HandleHealth(ctx))
	if metrics != nil {
		mux.Handle("/metrics", metrics)
	}
	return mux, nil
}
