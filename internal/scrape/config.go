package scrape

import (
	"encoding/json"
	"time"

	"github.com/go-sod/quadtree/internal/httputil"
)

type Config struct {
	Targets              Targets       `envconfig:"QT_SCRAPE_TARGETS"`
	MaxConcurrentRequest int           `envconfig:"QT_SCRAPE_MAX_CONCURRENT_REQUEST" default:"16"`
	Interval             time.Duration `envconfig:"QT_SCRAPE_INTERVAL" default:"1s"`
	RequestTimeout       time.Duration `envconfig:"QT_SCRAPE_REQUEST_TIMEOUT" default:"5s"`
}

type Targets []Target

func (ts *Targets) Decode(value string) error {
	targets := []Target{}
	if err := json.Unmarshal([]byte(value), &targets); err != nil {
		return err
	}
	*ts = targets
	return nil
}

type Target struct {
	Url        string                    `json:"url"`
	HTTPConfig httputil.HTTPClientConfig `json:"httpConfig"`
}
