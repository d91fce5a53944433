package scrape

import (
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/go-sod/quadtree/internal/geom"
	"github.com/go-sod/quadtree/internal/httputil"
	"github.com/go-sod/quadtree/internal/index/mocks"
	"github.com/go-sod/quadtree/internal/metrics"
)

func TestTargets_Decode(t *testing.T) {
	var ts Targets
	require.NoError(t, ts.Decode(`[{"url": "http://a/points"}, {"url": "http://b/points", "httpConfig": {"basicAuth": {"username": "u"}}}]`))
	require.Len(t, ts, 2)
	require.Equal(t, "u", ts[1].HTTPConfig.BasicAuth.Username)
	require.Error(t, ts.Decode(`nope`))
}

func TestManager_Scrapping(t *testing.T) {
	plain := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"points": [{"x": 1, "y": 2}, {"x": 1000, "y": 2}]}`))
	}))
	defer plain.Close()

	gzipped := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		_, _ = gz.Write([]byte(`{"points": [{"x": 3, "y": 4}]}`))
		_ = gz.Close()
	}))
	defer gzipped.Close()

	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer failing.Close()

	idx := &mocks.Inserter{}
	idx.On("Insert", mock.Anything, metrics.SourceScrape, geom.NewPoint(1, 2)).Return(true).Once()
	idx.On("Insert", mock.Anything, metrics.SourceScrape, geom.NewPoint(1000, 2)).Return(false).Once()
	idx.On("Insert", mock.Anything, metrics.SourceScrape, geom.NewPoint(3, 4)).Return(true).Once()

	m, err := New(idx, make(chan error, 1), WithTargets(Targets{
		{Url: plain.URL, HTTPConfig: httputil.HTTPClientConfig{BearerToken: "token"}},
		{Url: gzipped.URL},
		{Url: failing.URL},
	}))
	require.NoError(t, err)

	m.scrapping(context.Background())
	idx.AssertExpectations(t)
}

func TestManager_RunStop(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"points": [{"x": 5, "y": 5}]}`))
	}))
	defer srv.Close()

	called := make(chan struct{}, 1)
	idx := &mocks.Inserter{}
	idx.On("Insert", mock.Anything, metrics.SourceScrape, geom.NewPoint(5, 5)).Return(true).Run(func(mock.Arguments) {
		select {
		case called <- struct{}{}:
		default:
		}
	})

	shutdownCh := make(chan error, 1)
	m, err := New(idx, shutdownCh, WithInterval(time.Millisecond), WithTargets(Targets{{Url: srv.URL}}))
	require.NoError(t, err)
	require.NoError(t, m.Run(context.Background()))

	select {
	case <-called:
	case <-time.After(5 * time.Second):
		t.Fatal("target was not scraped")
	}
	m.Stop()
	select {
	case err := <-shutdownCh:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("scrape manager did not report shutdown")
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		opts    []Option
		wantErr bool
	}{
		{name: "no_targets"},
		{name: "zero_interval", opts: []Option{WithInterval(0)}, wantErr: true},
		{name: "bad_url", opts: []Option{WithTargets(Targets{{Url: "http://[::1"}})}, wantErr: true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := New(&mocks.Inserter{}, make(chan error, 1), test.opts...)
			if (err != nil) != test.wantErr {
				t.Errorf("New() error, got: %v, expected error: %v", err, test.wantErr)
			}
		})
	}
}

func TestManager_StopDuringRun(t *testing.T) {
	shutdownCh := make(chan error, 1)
	m, err := New(&mocks.Inserter{}, shutdownCh, WithInterval(time.Hour))
	require.NoError(t, err)

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		m.Stop()
	}()
	require.NoError(t, m.Run(context.Background()))
	<-stopped
	m.Stop()

	select {
	case err := <-shutdownCh:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("scrape manager did not report shutdown")
	}
}
