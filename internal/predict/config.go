package predict

import "time"

type Config struct {
	RequestTimeout time.Duration `envconfig:"KNN_PREDICT_REQUEST_TIMEOUT" default:"30s" toml:"-"`
	MaxRecords     int           `envconfig:"KNN_PREDICT_MAX_RECORDS" default:"1000" toml:"max_records"`
}
