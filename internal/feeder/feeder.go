// Package feeder periodically moves points from a point set into the index.
package feeder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-sod/quadtree/internal/index"
	"github.com/go-sod/quadtree/internal/logging"
	"github.com/go-sod/quadtree/internal/metrics"
	"github.com/go-sod/quadtree/internal/pointset"
)

type Source interface {
	Next() (pointset.Entry, bool)
}

type Manager interface {
	Run(context.Context) error
	Stop()
}

type ProvideFn = func(index.Inserter, Source, chan<- error) (Manager, error)

type Options struct {
	interval     time.Duration
	batchSize    int
	stopWhenDone bool
}

type Option func(*manager)

func WithInterval(t time.Duration) Option {
	return func(m *manager) {
		m.opts.interval = t
	}
}

func WithBatchSize(n int) Option {
	return func(m *manager) {
		m.opts.batchSize = n
	}
}

// WithStopWhenDone makes the manager exit once the source is exhausted.
func WithStopWhenDone(b bool) Option {
	return func(m *manager) {
		m.opts.stopWhenDone = b
	}
}

func New(idx index.Inserter, source Source, shutdownCh chan<- error, opts ...Option) (*manager, error) {
	if idx == nil {
		return nil, fmt.Errorf("index instance is not defined")
	}
	if source == nil {
		return nil, fmt.Errorf("point source is not defined")
	}
	m := &manager{
		opts: Options{
			interval:  500 * time.Millisecond,
			batchSize: 1,
		},
		idx:        idx,
		source:     source,
		shutdownCh: shutdownCh,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.opts.interval <= 0 {
		return nil, fmt.Errorf("feed interval must be positive, got %v", m.opts.interval)
	}
	if m.opts.batchSize < 1 {
		m.opts.batchSize = 1
	}
	return m, nil
}

type manager struct {
	mtx        sync.Mutex
	opts       Options
	idx        index.Inserter
	source     Source
	shutdownCh chan<- error
	cancel     func()
}

func (m *manager) Stop() {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	if m.cancel != nil {
		m.cancel()
	}
}

func (m *manager) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	m.mtx.Lock()
	m.cancel = cancel
	m.mtx.Unlock()
	go func() {
		defer func() {
			cancel()
			m.shutdownCh <- nil
		}()
		logger := logging.FromContext(ctx)
		ticker := time.NewTicker(m.opts.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if done := m.feed(ctx); done && m.opts.stopWhenDone {
					logger.Info("point set exhausted, feeder stopped")
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}

// feed inserts up to batchSize points and reports whether the source is
// exhausted.
func (m *manager) feed(ctx context.Context) bool {
	logger := logging.FromContext(ctx)
	for i := 0; i < m.opts.batchSize; i++ {
		entry, ok := m.source.Next()
		if !ok {
			return true
		}
		if !m.idx.Insert(ctx, metrics.SourceFeeder, entry.Point) {
			logger.Infof("point %s (%s) was not inserted", entry.Point, entry.ID)
		}
	}
	return false
}
