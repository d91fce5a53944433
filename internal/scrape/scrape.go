// Package scrape periodically pulls points from remote HTTP endpoints and
// inserts them into the index. A target answers GET with
// {"points": [{"x": 1, "y": 2}]}.
package scrape

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/go-sod/quadtree/internal/geom"
	"github.com/go-sod/quadtree/internal/httputil"
	"github.com/go-sod/quadtree/internal/index"
	"github.com/go-sod/quadtree/internal/logging"
	"github.com/go-sod/quadtree/internal/metrics"
	"github.com/go-sod/quadtree/pkg/rworker"
)

const maxBodyBytes = 8 * 1024 * 1024

type response struct {
	Points []geom.Point `json:"points"`
}

type Manager interface {
	Run(context.Context) error
	Stop()
}

type ProvideFn = func(index.Inserter, chan<- error) (Manager, error)

type Options struct {
	maxConcurrentRequest int
	requestTimeout       time.Duration
	scrapeInterval       time.Duration
}

type Option func(*manager)

func WithMaxConcurrentRequest(n int) Option {
	return func(o *manager) {
		o.opts.maxConcurrentRequest = n
	}
}

func WithInterval(t time.Duration) Option {
	return func(o *manager) {
		o.opts.scrapeInterval = t
	}
}

func WithRequestTimeout(t time.Duration) Option {
	return func(o *manager) {
		o.opts.requestTimeout = t
	}
}

func WithTargets(ts Targets) Option {
	return func(o *manager) {
		o.targets = ts
	}
}

type source struct {
	url    string
	client *http.Client
}

func New(idx index.Inserter, shutdownCh chan<- error, opts ...Option) (*manager, error) {
	if idx == nil {
		return nil, fmt.Errorf("index instance is not defined")
	}
	m := &manager{
		opts: Options{
			maxConcurrentRequest: 16,
			requestTimeout:       5 * time.Second,
			scrapeInterval:       time.Second,
		},
		idx:        idx,
		shutdownCh: shutdownCh,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.opts.scrapeInterval <= 0 {
		return nil, fmt.Errorf("scrape interval must be positive, got %v", m.opts.scrapeInterval)
	}
	for _, target := range m.targets {
		link, err := url.Parse(target.Url)
		if err != nil {
			return nil, fmt.Errorf("url parsing error: %w", err)
		}
		client, err := httputil.NewClientFromConfig(target.HTTPConfig, m.opts.requestTimeout)
		if err != nil {
			return nil, fmt.Errorf("unable create client for %s: %w", target.Url, err)
		}
		m.sources = append(m.sources, source{url: link.String(), client: client})
	}
	return m, nil
}

type manager struct {
	mtx        sync.Mutex
	opts       Options
	targets    Targets
	sources    []source
	idx        index.Inserter
	shutdownCh chan<- error
	cancel     func()
}

func (s *manager) Stop() {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
}

func (s *manager) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	s.mtx.Lock()
	s.cancel = cancel
	s.mtx.Unlock()
	go func() {
		defer func() {
			s.shutdownCh <- nil
		}()
		ticker := time.NewTicker(s.opts.scrapeInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.scrapping(ctx)
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}

func (s *manager) scrape(ctx context.Context, src source) (response, error) {
	var response response
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.url, nil)
	if err != nil {
		return response, fmt.Errorf("creating request error: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip")
	resp, err := src.client.Do(req)
	if err != nil {
		return response, fmt.Errorf("sending request error: %w", err)
	}
	defer resp.Body.Close()

	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return response, fmt.Errorf("unable create gzip.NewReader: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	body, err := ioutil.ReadAll(io.LimitReader(reader, maxBodyBytes))
	if err != nil {
		return response, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return response, fmt.Errorf("response was not 200 OK: %s", body)
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return response, fmt.Errorf("decoding response error: %w", err)
	}
	return response, nil
}

func (s *manager) scrapping(ctx context.Context) {
	logger := logging.FromContext(ctx)
	errCh := make(chan error, len(s.sources))
	g := rworker.New(s.opts.maxConcurrentRequest, errCh)
	for _, src := range s.sources {
		src := src
		g.Go(func() error {
			resp, err := s.scrape(ctx, src)
			if err != nil {
				return fmt.Errorf("scrape %s: %w", src.url, err)
			}
			rejected := 0
			for _, p := range resp.Points {
				if !s.idx.Insert(ctx, metrics.SourceScrape, p) {
					rejected += 1
				}
			}
			logger.Debugf("scraped %d points from %s, %d rejected", len(resp.Points), src.url, rejected)
			return nil
		})
	}
	g.Wait()
	close(errCh)
	for err := range errCh {
		logger.Errorf("scrape manager error: %v", err)
	}
}
