// Package stats reports the shape of the index and how much of the point set
// it already holds.
package stats

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-sod/quadtree/internal/httputil"
	"github.com/go-sod/quadtree/internal/index"
	"github.com/go-sod/quadtree/internal/logging"
	"github.com/go-sod/quadtree/internal/metrics"
	"github.com/go-sod/quadtree/internal/pointset"
)

type Source interface {
	Stats() index.Stats
	pointset.Checker
}

type response struct {
	index.Stats
	Coverage *pointset.Coverage `json:"coverage,omitempty"`
}

func NewHandler(cfg *Config, src Source, set *pointset.Set) (http.Handler, error) {
	if src == nil {
		return nil, fmt.Errorf("index instance is not defined")
	}
	return &handler{cfg: cfg, src: src, set: set}, nil
}

type handler struct {
	cfg *Config
	src Source
	set *pointset.Set
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.RequestTimeout)
	defer cancel()
	logger := logging.FromContext(ctx)

	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		logger.Debug(fmt.Sprintf(`{"error": "method %v is not allowed"}`, r.Method))
		_, _ = fmt.Fprintf(w, `{"error": "method %v is not allowed"}`, r.Method)
		return
	}

	resp := response{Stats: h.src.Stats()}
	if h.set != nil {
		cov := h.set.Coverage(h.src)
		resp.Coverage = &cov
		metrics.RecordCoverage(ctx, cov.Percent/100)
	}
	httputil.RespJSON(ctx, w, http.StatusOK, resp)
}
