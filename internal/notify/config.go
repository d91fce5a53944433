package notify

import (
	"encoding/json"
	"time"

	"github.com/go-sod/quadtree/internal/httputil"
)

type Config struct {
	Interval             time.Duration `envconfig:"QT_NOTIFY_INTERVAL" default:"1s"`
	RedisAddr            string        `envconfig:"QT_NOTIFY_REDIS_ADDR"`
	RedisPassword        string        `envconfig:"QT_NOTIFY_REDIS_PASSWORD"`
	RedisDB              int           `envconfig:"QT_NOTIFY_REDIS_DB" default:"0"`
	RedisChannel         string        `envconfig:"QT_NOTIFY_REDIS_CHANNEL" default:"quadtree.splits"`
	Targets              Targets       `envconfig:"QT_NOTIFY_TARGETS"`
	MaxConcurrentRequest int           `envconfig:"QT_NOTIFY_MAX_CONCURRENT_REQUEST" default:"16"`
	RequestTimeout       time.Duration `envconfig:"QT_NOTIFY_REQUEST_TIMEOUT" default:"5s"`
}

// Targets is decoded from a JSON array, e.g.
// [{"url": "http://hook/splits", "httpConfig": {"bearerToken": "..."}}]
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
