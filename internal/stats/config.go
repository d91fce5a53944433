package stats

import "time"

type Config struct {
	RequestTimeout time.Duration `envconfig:"QT_STATS_REQUEST_TIMEOUT" default:"10s"`
}
