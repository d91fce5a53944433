package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/go-sod/quadtree/internal/buildinfo"
	"github.com/go-sod/quadtree/internal/config"
	"github.com/go-sod/quadtree/internal/logging"
	"github.com/go-sod/quadtree/internal/metrics"
	"github.com/go-sod/quadtree/internal/routes"
	"github.com/go-sod/quadtree/internal/server"
	"github.com/go-sod/quadtree/internal/setup"
	"github.com/go-sod/quadtree/internal/shutdown"
)

func main() {
	_, _ = fmt.Fprint(os.Stdout, buildinfo.Graffiti)
	_, _ = fmt.Fprintf(os.Stdout, "%s: %s\n", buildinfo.Info.Name(), buildinfo.Info)

	ctx, done := shutdown.New()
	ctx = logging.WithLogger(ctx, logging.NewLoggerFromEnv())
	logger := logging.FromContext(ctx)
	if err := run(ctx, done); err != nil {
		done()
		logger.Fatal(err)
	}

	defer done()
}

func run(ctx context.Context, cancel func()) error {
	logger := logging.FromContext(ctx)
	var (
		shutdownCh    chan error
		shutdownCount = 1
	)
	cfg := config.Config{}
	env, err := setup.Setup(ctx, &cfg)
	if err != nil {
		return fmt.Errorf("setup.Setup: %w", err)
	}
	if env.ProvideFeeder() != nil {
		shutdownCount++
	}
	if env.ProvideScrapper() != nil {
		shutdownCount++
	}
	shutdownCh = make(chan error, shutdownCount)

	exporter, err := metrics.NewExporter()
	if err != nil {
		return fmt.Errorf("metrics.NewExporter: %w", err)
	}

	notifier, err := env.ProvideNotifier()(ctx, shutdownCh)
	if err != nil {
		return fmt.Errorf("notifier provider function error: %w", err)
	}
	if err := notifier.Run(ctx); err != nil {
		return fmt.Errorf("notifier.Run: %w", err)
	}

	idx, err := env.ProvideIndex()(notifier)
	if err != nil {
		return fmt.Errorf("index provider function error: %w", err)
	}

	if provideFeeder := env.ProvideFeeder(); provideFeeder != nil {
		f, err := provideFeeder(idx, env.PointSet(), shutdownCh)
		if err != nil {
			return fmt.Errorf("feeder provider function error: %w", err)
		}
		if err := f.Run(ctx); err != nil {
			return fmt.Errorf("feeder.Run: %w", err)
		}
	}

	if provideScrapper := env.ProvideScrapper(); provideScrapper != nil {
		scrapper, err := provideScrapper(idx, shutdownCh)
		if err != nil {
			return fmt.Errorf("scrapper provider function error: %w", err)
		}
		if err := scrapper.Run(ctx); err != nil {
			return fmt.Errorf("scrapper.Run: %w", err)
		}
	}

	mux, err := routes.New(ctx, &cfg, idx, env.PointSet(), exporter)
	if err != nil {
		return fmt.Errorf("routes.New: %w", err)
	}

	srv, err := server.New(cfg.SrvAddr, server.WithMaxConnections(cfg.MaxConnections))
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}
	grpcSrv, err := server.New(cfg.GRPCAddr)
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}

	go func() {
		if err := srv.ServeHTTPHandler(ctx, mux); err != nil {
			logger.Errorf("http server: %v", err)
			cancel()
		}
	}()

	go func() {
		if err := grpcSrv.ServeGRPC(ctx, server.NewHealthServer(ctx)); err != nil {
			logger.Errorf("grpc server: %v", err)
			cancel()
		}
	}()

	if cfg.DebugAddr != "" {
		go func() {
			if err := http.ListenAndServe(cfg.DebugAddr, nil); err != nil {
				logger.Errorf("debug server: %v", err)
			}
		}()
	}

	logger.Infof("Serving http on %s, grpc health on %s", srv.Addr(), grpcSrv.Addr())
	<-ctx.Done()

	var result error
	for i := 0; i < shutdownCount; i++ {
		if err := <-shutdownCh; err != nil {
			logger.Errorf("shutdown: %v", err)
			result = err
		}
	}
	return result
}
