// Package integration is a small client of the service's HTTP API, used by
// the command line tool and by end to end tests.
package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"

	"github.com/go-sod/quadtree/internal/geom"
	"github.com/go-sod/quadtree/internal/regions"
)

type prefixRoundTripper struct {
	addr string
	rt   http.RoundTripper
}

func (p *prefixRoundTripper) RoundTrip(r *http.Request) (*http.Response, error) {
	u := r.URL
	if u.Scheme == "" {
		u.Scheme = "http"
	}
	if u.Host == "" {
		u.Host = p.addr
	}

	return p.rt.RoundTrip(r)
}

// NewClient returns a client sending relative requests to addr (host:port).
func NewClient(addr string) *Client {
	return NewClientWithTransport(addr, http.DefaultTransport)
}

func NewClientWithTransport(addr string, rt http.RoundTripper) *Client {
	return &Client{client: &http.Client{Transport: &prefixRoundTripper{addr: addr, rt: rt}}}
}

type Client struct {
	client *http.Client
}

func (c *Client) Collect(ctx context.Context, points ...geom.Point) (CollectResponse, error) {
	var resp CollectResponse
	err := c.post(ctx, "/collect", PointsRequest{Points: points}, &resp)
	return resp, err
}

func (c *Client) Contains(ctx context.Context, points ...geom.Point) (ContainsResponse, error) {
	var resp ContainsResponse
	err := c.post(ctx, "/contains", PointsRequest{Points: points}, &resp)
	return resp, err
}

func (c *Client) Locate(ctx context.Context, points ...geom.Point) (LocateResponse, error) {
	var resp LocateResponse
	err := c.post(ctx, "/locate", PointsRequest{Points: points}, &resp)
	return resp, err
}

func (c *Client) Stats(ctx context.Context) (StatsResponse, error) {
	var resp StatsResponse
	body, err := c.get(ctx, "/stats", "application/json")
	if err != nil {
		return resp, err
	}
	defer body.Close()
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		return resp, fmt.Errorf("decoding stats: %w", err)
	}
	return resp, nil
}

// Regions fetches the region snapshot in XDR form; query is passed as is,
// e.g. "leaves=true&depth=3".
func (c *Client) Regions(ctx context.Context, query string) (regions.Snapshot, error) {
	path := "/regions"
	if query != "" {
		path += "?" + query
	}
	body, err := c.get(ctx, path, regions.ContentTypeXDR)
	if err != nil {
		return regions.Snapshot{}, err
	}
	defer body.Close()
	return regions.DecodeXDR(body)
}

func (c *Client) Health(ctx context.Context) error {
	body, err := c.get(ctx, "/health", "application/json")
	if err != nil {
		return err
	}
	return body.Close()
}

func (c *Client) post(ctx context.Context, path string, in, out interface{}) error {
	b, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("unable marshal %s request: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, path, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("create new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := c.do(req)
	if err != nil {
		return err
	}
	defer body.Close()
	if err := json.NewDecoder(body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path, accept string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, fmt.Errorf("create new request: %w", err)
	}
	req.Header.Set("Accept", accept)
	return c.do(req)
}

func (c *Client) do(req *http.Request) (io.ReadCloser, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error with sending request: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		msg, _ := ioutil.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%s %s: %s: %s", req.Method, req.URL.Path, resp.Status, bytes.TrimSpace(msg))
	}
	return resp.Body, nil
}
