// Package notify batches split events of the index and delivers them to a
// redis channel and to HTTP webhooks.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/go-sod/quadtree/internal/httputil"
	"github.com/go-sod/quadtree/internal/index"
	"github.com/go-sod/quadtree/internal/logging"
	"github.com/go-sod/quadtree/pkg/rworker"
)

type Manager interface {
	index.Notifier
	Run(context.Context) error
	Stop()
}

type ProvideFn = func(context.Context, chan<- error) (Manager, error)

type Options struct {
	maxConcurrentRequest int
	requestTimeout       time.Duration
	interval             time.Duration
}

type Option func(*manager)

func WithMaxConcurrentRequest(n int) Option {
	return func(m *manager) {
		m.opts.maxConcurrentRequest = n
	}
}

func WithInterval(t time.Duration) Option {
	return func(m *manager) {
		m.opts.interval = t
	}
}

func WithRequestTimeout(t time.Duration) Option {
	return func(m *manager) {
		m.opts.requestTimeout = t
	}
}

func WithTargets(ts Targets) Option {
	return func(m *manager) {
		m.targets = ts
	}
}

func WithPublisher(p Publisher) Option {
	return func(m *manager) {
		m.publisher = p
	}
}

// message is the body of every delivery.
type message struct {
	Splits []index.Split `json:"splits"`
}

type webhook struct {
	url    string
	client *http.Client
}

func New(shutdownCh chan<- error, opts ...Option) (*manager, error) {
	m := &manager{
		opts: Options{
			maxConcurrentRequest: 16,
			requestTimeout:       5 * time.Second,
			interval:             time.Second,
		},
		shutdownCh: shutdownCh,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.opts.interval <= 0 {
		return nil, fmt.Errorf("notify interval must be positive, got %v", m.opts.interval)
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
		m.webhooks = append(m.webhooks, webhook{url: link.String(), client: client})
	}
	return m, nil
}

type manager struct {
	mtx        sync.Mutex
	opts       Options
	targets    Targets
	webhooks   []webhook
	publisher  Publisher
	pending    []index.Split
	shutdownCh chan<- error
	cancel     func()
}

func (m *manager) Notify(splits ...index.Split) {
	if len(splits) == 0 {
		return
	}
	m.mtx.Lock()
	m.pending = append(m.pending, splits...)
	m.mtx.Unlock()
}

func (m *manager) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	m.mtx.Lock()
	m.cancel = cancel
	m.mtx.Unlock()
	go m.notifier(ctx)
	return nil
}

func (m *manager) Stop() {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	if m.cancel != nil {
		m.cancel()
	}
}

func (m *manager) notifier(ctx context.Context) {
	logger := logging.FromContext(ctx)
	errCh := make(chan error, 1)
	defer close(errCh)
	go func() {
		for err := range errCh {
			logger.Errorf("notify error: %v", err)
		}
	}()
	ticker := time.NewTicker(m.opts.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			m.flush(ctx, errCh)
		case <-ctx.Done():
			// deliver what is left with a fresh deadline
			c, cancel := context.WithTimeout(logging.WithLogger(context.Background(), logger), m.opts.requestTimeout)
			m.flush(c, errCh)
			cancel()
			var err error
			if m.publisher != nil {
				err = m.publisher.Close()
			}
			m.shutdownCh <- err
			return
		}
	}
}

func (m *manager) flush(ctx context.Context, errCh chan<- error) {
	m.mtx.Lock()
	splits := m.pending
	m.pending = nil
	m.mtx.Unlock()
	if len(splits) == 0 {
		return
	}

	body, err := json.Marshal(message{Splits: splits})
	if err != nil {
		errCh <- fmt.Errorf("unable encode json data: %w", err)
		return
	}

	g := rworker.New(m.opts.maxConcurrentRequest, errCh)
	if m.publisher != nil {
		g.Go(func() error {
			return m.publisher.Publish(ctx, body)
		})
	}
	for _, hook := range m.webhooks {
		hook := hook
		g.Go(func() error {
			if err := m.do(ctx, hook, body); err != nil {
				return fmt.Errorf("webhook %s: %w", hook.url, err)
			}
			return nil
		})
	}
	g.Wait()
	logging.FromContext(ctx).Debugf("delivered %d split(s)", len(splits))
}

func (m *manager) do(ctx context.Context, hook webhook, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, hook.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request error: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := hook.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending request error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := ioutil.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("response was not 2xx: %d %s", resp.StatusCode, b)
	}
	_, err = io.Copy(ioutil.Discard, resp.Body)
	return err
}
