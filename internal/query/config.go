package query

import "time"

type Config struct {
	RequestTimeout  time.Duration `envconfig:"QT_QUERY_REQUEST_TIMEOUT" default:"30s"`
	MaxDataItemsLen int           `envconfig:"QT_QUERY_MAX_DATA_ITEMS_LEN" default:"1000"`
	Workers         int           `envconfig:"QT_QUERY_WORKERS" default:"4"`
}
