package srvenv

import (
	"github.com/go-sod/quadtree/internal/feeder"
	"github.com/go-sod/quadtree/internal/index"
	"github.com/go-sod/quadtree/internal/notify"
	"github.com/go-sod/quadtree/internal/pointset"
	"github.com/go-sod/quadtree/internal/scrape"
)

type Option func(*SrvEnv) *SrvEnv

func New(opts ...Option) *SrvEnv {
	env := &SrvEnv{}
	for _, f := range opts {
		env = f(env)
	}

	return env
}

type SrvEnv struct {
	index    index.ProvideFn
	notifier notify.ProvideFn
	feeder   feeder.ProvideFn
	scrapper scrape.ProvideFn
	points   *pointset.Set
}

func (s *SrvEnv) ProvideIndex() index.ProvideFn {
	return s.index
}

func (s *SrvEnv) ProvideNotifier() notify.ProvideFn {
	return s.notifier
}

func (s *SrvEnv) ProvideFeeder() feeder.ProvideFn {
	return s.feeder
}

func (s *SrvEnv) ProvideScrapper() scrape.ProvideFn {
	return s.scrapper
}

func (s *SrvEnv) PointSet() *pointset.Set {
	return s.points
}

func WithIndex(fn index.ProvideFn) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.index = fn
		return s
	}
}

func WithNotifier(fn notify.ProvideFn) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.notifier = fn
		return s
	}
}

func WithFeeder(fn feeder.ProvideFn) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.feeder = fn
		return s
	}
}

func WithPointSet(set *pointset.Set) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.points = set
		return s
	}
}

func WithScrapper(fn scrape.ProvideFn) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.scrapper = fn
		return s
	}
}
