// Package query serves batched contains and locate lookups against the index.
package query

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/go-sod/quadtree/internal/geom"
	"github.com/go-sod/quadtree/internal/httputil"
	"github.com/go-sod/quadtree/internal/index"
	"github.com/go-sod/quadtree/internal/logging"
)

const maxBodyBytes = 8 * 1024 * 1024

type request struct {
	Points []geom.Point `json:"points"`
}

type containsResult struct {
	geom.Point
	Contains bool `json:"contains"`
}

type locateResult struct {
	geom.Point
	Found  bool       `json:"found"`
	Region *geom.Rect `json:"region,omitempty"`
}

type response struct {
	Data interface{} `json:"data"`
}

// answerFn evaluates points[from:to] and stores the results itself.
type answerFn func(q index.Querier, points []geom.Point, from, to int)

func NewContainsHandler(cfg *Config, q index.Querier) (http.Handler, error) {
	if q == nil {
		return nil, fmt.Errorf("index instance is not defined")
	}
	return &handler{cfg: cfg, q: q, name: "contains", answer: func(n int) (interface{}, answerFn) {
		results := make([]containsResult, n)
		return results, func(q index.Querier, points []geom.Point, from, to int) {
			for i := from; i < to; i++ {
				results[i] = containsResult{Point: points[i], Contains: q.Contains(points[i])}
			}
		}
	}}, nil
}

func NewLocateHandler(cfg *Config, q index.Querier) (http.Handler, error) {
	if q == nil {
		return nil, fmt.Errorf("index instance is not defined")
	}
	return &handler{cfg: cfg, q: q, name: "locate", answer: func(n int) (interface{}, answerFn) {
		results := make([]locateResult, n)
		return results, func(q index.Querier, points []geom.Point, from, to int) {
			for i := from; i < to; i++ {
				results[i] = locateResult{Point: points[i]}
				if r, ok := q.Locate(points[i].X, points[i].Y); ok {
					region := r
					results[i].Found = true
					results[i].Region = &region
				}
			}
		}
	}}, nil
}

type handler struct {
	cfg    *Config
	q      index.Querier
	name   string
	answer func(n int) (interface{}, answerFn)
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req request
	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.RequestTimeout)
	defer cancel()
	logger := logging.FromContext(ctx)

	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		logger.Debug(fmt.Sprintf(`{"error": "method %v is not allowed"}`, r.Method))
		_, _ = fmt.Fprintf(w, `{"error": "method %v is not allowed"}`, r.Method)
		return
	}

	if t := r.Header.Get("content-type"); len(t) < 16 || t[:16] != "application/json" {
		w.WriteHeader(http.StatusUnsupportedMediaType)
		logger.Debug(fmt.Sprintf(`{"error": "%v"}`, "content-type is not application/json"))
		_, _ = fmt.Fprintf(w, `{"error": "%v"}`, "content-type is not application/json")
		return
	}

	defer r.Body.Close()

	if err := httputil.DecodeJSON(w, r, maxBodyBytes, &req); err != nil {
		httputil.DecodeErr(ctx, w, err)
		return
	}

	if len(req.Points) > h.cfg.MaxDataItemsLen {
		httputil.RespBadRequest(ctx, w, `{"error": "data items is too large, max allowed len is %d"}`, h.cfg.MaxDataItemsLen)
		return
	}

	results, fn := h.answer(len(req.Points))
	errGrp, gctx := errgroup.WithContext(ctx)
	for _, c := range chunks(len(req.Points), h.cfg.Workers) {
		from, to := c[0], c[1]
		errGrp.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fn(h.q, req.Points, from, to)
			return nil
		})
	}
	if err := errGrp.Wait(); err != nil {
		httputil.RespInternalError(ctx, w, `{"error": "%s processing error, %v"}`, h.name, err)
		return
	}
	httputil.RespJSON(ctx, w, http.StatusOK, response{Data: results})
}

// chunks splits [0, n) into at most workers contiguous ranges.
func chunks(n, workers int) [][2]int {
	if workers < 1 {
		workers = 1
	}
	if n == 0 {
		return nil
	}
	size := (n + workers - 1) / workers
	out := make([][2]int, 0, workers)
	for from := 0; from < n; from += size {
		to := from + size
		if to > n {
			to = n
		}
		out = append(out, [2]int{from, to})
	}
	return out
}
