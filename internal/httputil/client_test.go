package httputil

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewClientFromConfig(t *testing.T) {
	tests := []struct {
		name     string
		cfg      HTTPClientConfig
		header   string
		expected string
		wantErr  bool
	}{
		{name: "anonymous", header: "Authorization", expected: ""},
		{name: "bearer", cfg: HTTPClientConfig{BearerToken: "secret"}, header: "Authorization", expected: "Bearer secret"},
		{
			name:     "basic",
			cfg:      HTTPClientConfig{BasicAuth: &BasicAuth{Username: "user", Password: "pass "}},
			header:   "Authorization",
			expected: "Basic dXNlcjpwYXNz",
		},
		{name: "user_agent", header: "User-Agent", expected: UserAgent},
		{
			name:    "both",
			cfg:     HTTPClientConfig{BearerToken: "secret", BasicAuth: &BasicAuth{Username: "user"}},
			wantErr: true,
		},
		{name: "basic_without_username", cfg: HTTPClientConfig{BasicAuth: &BasicAuth{}}, wantErr: true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var got string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.Header.Get(test.header)
			}))
			defer srv.Close()

			client, err := NewClientFromConfig(test.cfg, time.Second)
			if (err != nil) != test.wantErr {
				t.Fatalf("NewClientFromConfig() error, got: %v, expected error: %v", err, test.wantErr)
			}
			if test.wantErr {
				return
			}
			req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
			if err != nil {
				t.Fatal(err)
			}
			resp, err := client.Do(req)
			if err != nil {
				t.Fatalf("request error: %v", err)
			}
			resp.Body.Close()
			if got != test.expected {
				t.Errorf("header %s, got: %q, expected: %q", test.header, got, test.expected)
			}
			if req.Header.Get("Authorization") != "" {
				t.Errorf("caller's request was modified")
			}
		})
	}
}
