package setup

import (
	"context"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/davecgh/go-spew/spew"
	"github.com/go-sod/medknn/internal/cache"
	"github.com/go-sod/medknn/internal/database"
	"github.com/go-sod/medknn/internal/geom"
	"github.com/go-sod/medknn/internal/logging"
	"github.com/go-sod/medknn/internal/metrics"
	"github.com/go-sod/medknn/internal/predictor"
	"github.com/go-sod/medknn/internal/predictor/knn/brute"
	"github.com/go-sod/medknn/internal/predictor/knn/kd"
	"github.com/go-sod/medknn/internal/srvenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"
)

type ConfigFileProvider interface {
	ConfigFilePath() string
}

type PredictorConfigProvider interface {
	PredictConfig() *predictor.Config
	PredictType() predictor.AlgType
}

type DatabaseConfigProvider interface {
	DatabaseConfig() *database.Config
}

type CacheConfigProvider interface {
	CacheConfig() *cache.Config
}

type MetricsConfigProvider interface {
	MetricsConfig() *metrics.Config
}

// Load fills config from the environment and then from a TOML file. The file
// is configFile, or the one named by the config itself when configFile is
// empty. Keys present in the file override the environment.
func Load(ctx context.Context, config interface{}, configFile string) error {
	logger := logging.FromContext(ctx)
	if err := envconfig.Process("", config); err != nil {
		return fmt.Errorf("%w: error loading environment variables: %v", predictor.ErrConfiguration, err)
	}

	if configFile == "" {
		if provider, ok := config.(ConfigFileProvider); ok {
			configFile = provider.ConfigFilePath()
		}
	}
	if configFile != "" {
		logger.Infof("reading config file %s", configFile)
		md, err := toml.DecodeFile(configFile, config)
		if err != nil {
			return fmt.Errorf("%w: error decoding %s: %v", predictor.ErrConfiguration, configFile, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			logger.Warnf("config file %s: unknown keys %v", configFile, undecoded)
		}
	}

	if logger.Desugar().Core().Enabled(zapcore.DebugLevel) {
		logger.Debugf("effective config: %s", spew.Sdump(config))
	}
	return nil
}

// Setup builds the service environment from an already loaded config.
func Setup(ctx context.Context, config interface{}) (env *srvenv.SrvEnv, err error) {
	logger := logging.FromContext(ctx)
	var serverEnvOpts []srvenv.Option
	defer func() {
		if err != nil {
			if closeErr := srvenv.New(serverEnvOpts...).Close(ctx); closeErr != nil {
				logger.Errorf("releasing resources: %v", closeErr)
			}
		}
	}()

	if predictConfigProvider, ok := config.(PredictorConfigProvider); ok {
		logger.Infof("configuring %s classifier", predictConfigProvider.PredictType())
		provideFn, err := ProvideClassifierFor(predictConfigProvider.PredictConfig())
		if err != nil {
			return nil, fmt.Errorf("unable create classifier provide function: %w", err)
		}
		serverEnvOpts = append(serverEnvOpts, srvenv.WithPredictor(provideFn))
	}

	if dbConfigProvider, ok := config.(DatabaseConfigProvider); ok && dbConfigProvider.DatabaseConfig().Enabled() {
		logger.Info("configuring run archive")
		db, err := database.NewFromEnv(ctx, dbConfigProvider.DatabaseConfig())
		if err != nil {
			return nil, fmt.Errorf("unable to open run archive: %w", err)
		}
		serverEnvOpts = append(serverEnvOpts, srvenv.WithDatabase(db))
	}

	if cacheConfigProvider, ok := config.(CacheConfigProvider); ok && cacheConfigProvider.CacheConfig().Enabled() {
		logger.Info("configuring prediction cache")
		c, err := cache.New(ctx, cacheConfigProvider.CacheConfig())
		if err != nil {
			return nil, fmt.Errorf("unable to connect to cache: %w", err)
		}
		serverEnvOpts = append(serverEnvOpts, srvenv.WithCache(c))
	}

	if metricsConfigProvider, ok := config.(MetricsConfigProvider); ok && metricsConfigProvider.MetricsConfig().Enabled {
		logger.Info("configuring metrics")
		handler, err := metrics.NewHandler(metricsConfigProvider.MetricsConfig())
		if err != nil {
			return nil, fmt.Errorf("unable to create metrics handler: %w", err)
		}
		serverEnvOpts = append(serverEnvOpts, srvenv.WithMetricsHandler(handler))
	}

	return srvenv.New(serverEnvOpts...), nil
}

func ProvideClassifierFor(cfg *predictor.Config) (predictor.ProvideFn, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var newAlg func() predictor.KNNAlg
	switch cfg.PredictorType() {
	case predictor.AlgTypeBrute:
		newAlg = func() predictor.KNNAlg {
			return brute.NewBruteAlg(geom.EuclideanDistance)
		}
	case predictor.AlgTypeKDTree:
		newAlg = func() predictor.KNNAlg {
			return kd.NewKDAlg(geom.EuclideanDistance)
		}
	default:
		return nil, fmt.Errorf("%w: unknown predictor type: %s", predictor.ErrConfiguration, cfg.PredictorType())
	}

	return func(data ...predictor.DataPoint) (*predictor.Classifier, error) {
		alg := newAlg()
		alg.Build(data...)
		c, err := predictor.New(
			alg,
			predictor.WithK(cfg.K),
			predictor.WithTieBreak(cfg.TieBreak),
			predictor.WithWorkers(cfg.Workers),
		)
		if err != nil {
			return nil, fmt.Errorf("unable create classifier: %w", err)
		}
		return c, nil
	}, nil
}
