package config

import (
	"github.com/go-sod/quadtree/internal/collect"
	"github.com/go-sod/quadtree/internal/feeder"
	"github.com/go-sod/quadtree/internal/generator"
	"github.com/go-sod/quadtree/internal/index"
	"github.com/go-sod/quadtree/internal/notify"
	"github.com/go-sod/quadtree/internal/query"
	"github.com/go-sod/quadtree/internal/regions"
	"github.com/go-sod/quadtree/internal/scrape"
	"github.com/go-sod/quadtree/internal/seed"
	"github.com/go-sod/quadtree/internal/setup"
	"github.com/go-sod/quadtree/internal/stats"
)

var (
	_ setup.IndexConfigProvider    = (*Config)(nil)
	_ setup.NotifierConfigProvider = (*Config)(nil)
	_ setup.FeederConfigProvider   = (*Config)(nil)
	_ setup.PointSetConfigProvider = (*Config)(nil)
	_ setup.ScrapeConfigProvider   = (*Config)(nil)
)

type Config struct {
	SrvAddr        string `envconfig:"QT_ADDR" default:":8787"`
	GRPCAddr       string `envconfig:"QT_GRPC_ADDR" default:":8788"`
	DebugAddr      string `envconfig:"QT_DEBUG_ADDR"`
	MaxConnections int    `envconfig:"QT_MAX_CONNECTIONS" default:"1024"`
	Index          index.Config
	Generator      generator.Config
	Seed           seed.Config
	Feeder         feeder.Config
	Notify         notify.Config
	Scrape         scrape.Config
	Collect        collect.Config
	Query          query.Config
	Regions        regions.Config
	Stats          stats.Config
}

func (c *Config) IndexConfig() *index.Config {
	return &c.Index
}

func (c *Config) NotifyConfig() *notify.Config {
	return &c.Notify
}

func (c *Config) FeederConfig() *feeder.Config {
	return &c.Feeder
}

func (c *Config) GeneratorConfig() *generator.Config {
	return &c.Generator
}

func (c *Config) SeedConfig() *seed.Config {
	return &c.Seed
}

func (c *Config) ScrapeConfig() *scrape.Config {
	return &c.Scrape
}
