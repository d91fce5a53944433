package regions

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-sod/quadtree/internal/byteutil"
	"github.com/go-sod/quadtree/internal/httputil"
	"github.com/go-sod/quadtree/internal/logging"
)

func NewHandler(cfg *Config, w Walker) (http.Handler, error) {
	if w == nil {
		return nil, fmt.Errorf("walker instance is not defined")
	}
	return &handler{cfg: cfg, walker: w}, nil
}

type handler struct {
	cfg    *Config
	walker Walker
}

// ServeHTTP answers GET /regions?depth=N&leaves=true&points=false.
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

	filter, err := parseFilter(r)
	if err != nil {
		httputil.RespBadRequest(ctx, w, `{"error": "%v"}`, err)
		return
	}
	snapshot := Build(h.walker, filter)

	buf := byteutil.GetBytesBuf()
	defer byteutil.PutBytesBuf(buf)
	contentType := ContentTypeJSON
	if strings.Contains(r.Header.Get("Accept"), ContentTypeXDR) {
		contentType = ContentTypeXDR
		err = EncodeXDR(buf, snapshot)
	} else {
		err = json.NewEncoder(buf).Encode(snapshot)
	}
	if err != nil {
		httputil.RespInternalError(ctx, w, `{"error": "failed to encode snapshot %v"}`, err)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func parseFilter(r *http.Request) (Filter, error) {
	q := r.URL.Query()
	f := Filter{MaxDepth: -1}
	if v := q.Get("depth"); v != "" {
		depth, err := strconv.Atoi(v)
		if err != nil || depth < 0 {
			return f, fmt.Errorf("depth must be a non-negative integer")
		}
		f.MaxDepth = depth
	}
	if v := q.Get("leaves"); v != "" {
		leaves, err := strconv.ParseBool(v)
		if err != nil {
			return f, fmt.Errorf("leaves must be a boolean")
		}
		f.LeavesOnly = leaves
	}
	if v := q.Get("points"); v != "" {
		points, err := strconv.ParseBool(v)
		if err != nil {
			return f, fmt.Errorf("points must be a boolean")
		}
		f.OmitPoints = !points
	}
	return f, nil
}
