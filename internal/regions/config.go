package regions

import "time"

type Config struct {
	RequestTimeout time.Duration `envconfig:"QT_REGIONS_REQUEST_TIMEOUT" default:"30s"`
}
