package setup

import (
	"context"
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"github.com/go-sod/quadtree/internal/feeder"
	"github.com/go-sod/quadtree/internal/generator"
	"github.com/go-sod/quadtree/internal/index"
	"github.com/go-sod/quadtree/internal/logging"
	"github.com/go-sod/quadtree/internal/notify"
	"github.com/go-sod/quadtree/internal/pointset"
	"github.com/go-sod/quadtree/internal/scrape"
	"github.com/go-sod/quadtree/internal/seed"
	"github.com/go-sod/quadtree/internal/srvenv"
)

type IndexConfigProvider interface {
	IndexConfig() *index.Config
}

type NotifierConfigProvider interface {
	NotifyConfig() *notify.Config
}

type FeederConfigProvider interface {
	FeederConfig() *feeder.Config
}

type ScrapeConfigProvider interface {
	ScrapeConfig() *scrape.Config
}

type PointSetConfigProvider interface {
	GeneratorConfig() *generator.Config
	SeedConfig() *seed.Config
}

func Setup(ctx context.Context, config interface{}) (*srvenv.SrvEnv, error) {
	logger := logging.FromContext(ctx)
	var serverEnvOpts []srvenv.Option
	if err := envconfig.Process("", config); err != nil {
		return nil, fmt.Errorf("error loading environment variables: %w", err)
	}

	indexConfigProvider, ok := config.(IndexConfigProvider)
	if !ok {
		return nil, fmt.Errorf("unable read index config")
	}
	logger.Info("Configuring index")
	indexProvideFn, err := ProvideIndexFor(indexConfigProvider)
	if err != nil {
		return nil, fmt.Errorf("unable create index provide function: %w", err)
	}
	serverEnvOpts = append(serverEnvOpts, srvenv.WithIndex(indexProvideFn))

	if notifyConfigProvider, ok := config.(NotifierConfigProvider); ok {
		logger.Info("Configuring notifier")
		serverEnvOpts = append(serverEnvOpts, srvenv.WithNotifier(ProvideNotifierFor(notifyConfigProvider)))
	}

	if pointSetConfigProvider, ok := config.(PointSetConfigProvider); ok {
		logger.Info("Configuring point set")
		set, err := PointSetFor(ctx, pointSetConfigProvider, indexConfigProvider.IndexConfig())
		if err != nil {
			return nil, fmt.Errorf("unable create point set: %w", err)
		}
		serverEnvOpts = append(serverEnvOpts, srvenv.WithPointSet(set))

		if feederConfigProvider, ok := config.(FeederConfigProvider); ok && feederConfigProvider.FeederConfig().Enabled {
			logger.Info("Configuring feeder")
			serverEnvOpts = append(serverEnvOpts, srvenv.WithFeeder(ProvideFeederFor(feederConfigProvider)))
		}
	}

	if scrapeConfigProvider, ok := config.(ScrapeConfigProvider); ok && len(scrapeConfigProvider.ScrapeConfig().Targets) > 0 {
		logger.Infof("Configuring scrapper for %d target(s)", len(scrapeConfigProvider.ScrapeConfig().Targets))
		serverEnvOpts = append(serverEnvOpts, srvenv.WithScrapper(ProvideScrapperFor(scrapeConfigProvider)))
	}
	return srvenv.New(serverEnvOpts...), nil
}

func ProvideScrapperFor(provider ScrapeConfigProvider) scrape.ProvideFn {
	cfg := provider.ScrapeConfig()
	return func(idx index.Inserter, shutdownCh chan<- error) (scrape.Manager, error) {
		return scrape.New(
			idx,
			shutdownCh,
			scrape.WithInterval(cfg.Interval),
			scrape.WithMaxConcurrentRequest(cfg.MaxConcurrentRequest),
			scrape.WithRequestTimeout(cfg.RequestTimeout),
			scrape.WithTargets(cfg.Targets),
		)
	}
}

func ProvideIndexFor(provider IndexConfigProvider) (index.ProvideFn, error) {
	cfg := provider.IndexConfig()
	if !cfg.Bounds().Valid() {
		return nil, fmt.Errorf("index bounds %s are not valid", cfg.Bounds())
	}
	return func(notifier index.Notifier) (*index.Index, error) {
		var opts []index.Option
		if notifier != nil {
			opts = append(opts, index.WithNotifier(notifier))
		}
		return index.New(cfg, opts...)
	}, nil
}

func ProvideNotifierFor(provider NotifierConfigProvider) notify.ProvideFn {
	cfg := provider.NotifyConfig()
	return func(ctx context.Context, shutdownCh chan<- error) (notify.Manager, error) {
		opts := []notify.Option{
			notify.WithInterval(cfg.Interval),
			notify.WithMaxConcurrentRequest(cfg.MaxConcurrentRequest),
			notify.WithRequestTimeout(cfg.RequestTimeout),
			notify.WithTargets(cfg.Targets),
		}
		if cfg.RedisAddr != "" {
			publisher, err := notify.NewRedisPublisher(ctx, cfg)
			if err != nil {
				return nil, err
			}
			opts = append(opts, notify.WithPublisher(publisher))
		}
		return notify.New(shutdownCh, opts...)
	}
}

func ProvideFeederFor(provider FeederConfigProvider) feeder.ProvideFn {
	cfg := provider.FeederConfig()
	return func(idx index.Inserter, source feeder.Source, shutdownCh chan<- error) (feeder.Manager, error) {
		return feeder.New(
			idx,
			source,
			shutdownCh,
			feeder.WithInterval(cfg.Interval),
			feeder.WithBatchSize(cfg.BatchSize),
			feeder.WithStopWhenDone(cfg.StopWhenDone),
		)
	}
}

// PointSetFor loads the seed file, if any, and appends the generated points.
func PointSetFor(ctx context.Context, provider PointSetConfigProvider, indexCfg *index.Config) (*pointset.Set, error) {
	logger := logging.FromContext(ctx)
	set := pointset.New()
	if path := provider.SeedConfig().File; path != "" {
		points, err := seed.Load(path)
		if err != nil {
			return nil, err
		}
		logger.Infof("Loaded %d seed points from %s", len(points), path)
		set.Append(points...)
	}
	cfg := provider.GeneratorConfig()
	if cfg.Points < 0 {
		return nil, fmt.Errorf("number of generated points must not be negative, got %d", cfg.Points)
	}
	set.Append(generator.New(cfg.Seed).Points(indexCfg.Bounds(), cfg.Points)...)
	return set, nil
}
