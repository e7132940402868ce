// Package metrics records classification statistics with OpenCensus and
// exposes them in the Prometheus text format.
package metrics

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"contrib.go.opencensus.io/exporter/prometheus"
	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
)

var (
	MClassifications = stats.Int64("knn/classifications", "Number of classified records", stats.UnitDimensionless)
	MClassifyLatency = stats.Float64("knn/classify_latency", "Latency of a single classification", stats.UnitMilliseconds)
	MTrainingSize    = stats.Int64("knn/training_size", "Unique vectors in the loaded training set", stats.UnitDimensionless)
)

var Views = []*view.View{
	{
		Name:        "knn/classifications",
		Description: "Number of classified records",
		Measure:     MClassifications,
		Aggregation: view.Sum(),
	},
	{
		Name:        "knn/classify_latency",
		Description: "Distribution of classification latency in milliseconds",
		Measure:     MClassifyLatency,
		Aggregation: view.Distribution(0.01, 0.05, 0.1, 0.5, 1, 5, 10, 50, 100, 500),
	},
	{
		Name:        "knn/training_size",
		Description: "Unique vectors in the loaded training set",
		Measure:     MTrainingSize,
		Aggregation: view.LastValue(),
	},
}

type Config struct {
	Enabled   bool   `envconfig:"KNN_METRICS_ENABLED" toml:"enabled"`
	Namespace string `envconfig:"KNN_METRICS_NAMESPACE" default:"knn" toml:"namespace"`
}

var (
	registerOnce sync.Once
	registerErr  error
)

func Register() error {
	registerOnce.Do(func() {
		registerErr = view.Register(Views...)
	})
	return registerErr
}

// NewHandler registers the views and returns a Prometheus scrape handler.
func NewHandler(cfg *Config) (http.Handler, error) {
	if err := Register(); err != nil {
		return nil, fmt.Errorf("unable register views: %w", err)
	}
	exporter, err := prometheus.NewExporter(prometheus.Options{Namespace: cfg.Namespace})
	if err != nil {
		return nil, fmt.Errorf("unable create prometheus exporter: %w", err)
	}
	return exporter, nil
}

func RecordClassification(ctx context.Context, latency time.Duration) {
	stats.Record(ctx,
		MClassifications.M(1),
		MClassifyLatency.M(float64(latency)/float64(time.Millisecond)),
	)
}

func RecordTrainingSize(ctx context.Context, n int) {
	stats.Record(ctx, MTrainingSize.M(int64(n)))
}
