package collect

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-sod/quadtree/internal/geom"
	"github.com/go-sod/quadtree/internal/httputil"
	"github.com/go-sod/quadtree/internal/index"
	"github.com/go-sod/quadtree/internal/logging"
	"github.com/go-sod/quadtree/internal/metrics"
)

const maxBodyBytes = 8 * 1024 * 1024

type request struct {
	Points []geom.Point `json:"points"`
}

type result struct {
	geom.Point
	Accepted bool `json:"accepted"`
}

type response struct {
	Accepted int      `json:"accepted"`
	Rejected int      `json:"rejected"`
	Data     []result `json:"data"`
}

func NewHandler(cfg *Config, idx index.Inserter) (http.Handler, error) {
	if idx == nil {
		return nil, fmt.Errorf("index instance is not defined")
	}
	return &handler{
		idx: idx,
		cfg: cfg,
	}, nil
}

type handler struct {
	idx index.Inserter
	cfg *Config
}

// ServeHTTP inserts the posted points in order. Points outside the index are
// reported as not accepted; they do not fail the request.
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

	resp := response{Data: make([]result, len(req.Points))}
	for i, p := range req.Points {
		if ctx.Err() != nil {
			httputil.RespInternalError(ctx, w, `{"error": "collect interrupted after %d points: %v"}`, i, ctx.Err())
			return
		}
		accepted := h.idx.Insert(ctx, metrics.SourceHTTP, p)
		resp.Data[i] = result{Point: p, Accepted: accepted}
		if accepted {
			resp.Accepted += 1
		} else {
			resp.Rejected += 1
		}
	}
	logger.Infof("Collected %d points, %d rejected", resp.Accepted, resp.Rejected)
	httputil.RespJSON(ctx, w, http.StatusOK, resp)
}
