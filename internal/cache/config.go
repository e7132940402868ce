package cache

import "time"

type Config struct {
	// empty disables the cache
	Addr     string        `envconfig:"KNN_CACHE_ADDR" toml:"addr"`
	Password string        `envconfig:"KNN_CACHE_PASSWORD" toml:"password"`
	DB       int           `envconfig:"KNN_CACHE_DB" default:"0" toml:"db"`
	TTL      time.Duration `envconfig:"KNN_CACHE_TTL" default:"1h" toml:"-"`
}

func (c *Config) Enabled() bool {
	return c.Addr != ""
}
