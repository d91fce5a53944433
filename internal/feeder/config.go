package feeder

import "time"

type Config struct {
	Enabled      bool          `envconfig:"QT_FEEDER_ENABLED" default:"true"`
	Interval     time.Duration `envconfig:"QT_FEEDER_INTERVAL" default:"500ms"`
	BatchSize    int           `envconfig:"QT_FEEDER_BATCH_SIZE" default:"1"`
	StopWhenDone bool          `envconfig:"QT_FEEDER_STOP_WHEN_DONE" default:"false"`
}
