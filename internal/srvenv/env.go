package srvenv

import (
	"context"
	"net/http"

	archivedb "github.com/go-sod/medknn/internal/archive/database"
	"github.com/go-sod/medknn/internal/cache"
	"github.com/go-sod/medknn/internal/database"
	"github.com/go-sod/medknn/internal/logging"
	"github.com/go-sod/medknn/internal/predictor"
)

type Option func(*SrvEnv) *SrvEnv

func New(opts ...Option) *SrvEnv {
	env := &SrvEnv{}
	for _, f := range opts {
		env = f(env)
	}

	return env
}

// SrvEnv holds the resources shared by the entry points. Optional parts are
// nil when disabled.
type SrvEnv struct {
	database  *database.DB
	archive   *archivedb.DB
	predictor predictor.ProvideFn
	cache     cache.Cache
	metrics   http.Handler
}

func (s *SrvEnv) ProvidePredictor() predictor.ProvideFn {
	return s.predictor
}

func (s *SrvEnv) Database() *database.DB {
	return s.database
}

func (s *SrvEnv) Archive() *archivedb.DB {
	return s.archive
}

// Cache never returns nil; a disabled cache is a cache.Nop.
func (s *SrvEnv) Cache() cache.Cache {
	if s.cache == nil {
		return cache.Nop{}
	}
	return s.cache
}

func (s *SrvEnv) MetricsHandler() http.Handler {
	return s.metrics
}

func WithPredictor(fn predictor.ProvideFn) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.predictor = fn
		return s
	}
}

func WithDatabase(db *database.DB) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.database = db
		s.archive = archivedb.New(db)
		return s
	}
}

func WithCache(c cache.Cache) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.cache = c
		return s
	}
}

func WithMetricsHandler(h http.Handler) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.metrics = h
		return s
	}
}

func (s *SrvEnv) Close(ctx context.Context) error {
	if s == nil {
		return nil
	}

	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			logging.FromContext(ctx).Warnf("closing cache: %v", err)
		}
	}
	if s.database != nil {
		return s.database.Close(ctx)
	}
	return nil
}
