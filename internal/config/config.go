package config

import (
	"github.com/go-sod/medknn/internal/cache"
	"github.com/go-sod/medknn/internal/database"
	"github.com/go-sod/medknn/internal/dataset"
	"github.com/go-sod/medknn/internal/metrics"
	"github.com/go-sod/medknn/internal/output"
	"github.com/go-sod/medknn/internal/predict"
	"github.com/go-sod/medknn/internal/predictor"
	"github.com/go-sod/medknn/internal/setup"
)

var (
	_ setup.ConfigFileProvider      = (*Config)(nil)
	_ setup.PredictorConfigProvider = (*Config)(nil)
	_ setup.DatabaseConfigProvider  = (*Config)(nil)
	_ setup.CacheConfigProvider     = (*Config)(nil)
	_ setup.MetricsConfigProvider   = (*Config)(nil)
)

// Config is the whole configuration of both the batch tool and the server.
// Durations are set through the environment only.
type Config struct {
	ConfigFile     string `envconfig:"KNN_CONFIG_FILE" toml:"-"`
	SrvAddr        string `envconfig:"KNN_ADDR" default:":8787" toml:"addr"`
	GRPCAddr       string `envconfig:"KNN_GRPC_ADDR" toml:"grpc_addr"`
	MaxConnections int    `envconfig:"KNN_MAX_CONNECTIONS" default:"1024" toml:"max_connections"`

	Dataset   dataset.Config   `toml:"dataset"`
	Predictor predictor.Config `toml:"predictor"`
	Output    output.Config    `toml:"output"`
	Database  database.Config  `toml:"archive"`
	Cache     cache.Config     `toml:"cache"`
	Metrics   metrics.Config   `toml:"metrics"`
	Predict   predict.Config   `toml:"predict"`
}

func (c *Config) ConfigFilePath() string {
	return c.ConfigFile
}

func (c *Config) DatabaseConfig() *database.Config {
	return &c.Database
}

func (c *Config) CacheConfig() *cache.Config {
	return &c.Cache
}

func (c *Config) MetricsConfig() *metrics.Config {
	return &c.Metrics
}

func (c *Config) PredictType() predictor.AlgType {
	return c.Predictor.Type
}

func (c *Config) PredictConfig() *predictor.Config {
	return &c.Predictor
}
