// Package batch runs one classification of a test file against a training
// file and writes the predicted labels.
package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/go-sod/medknn/internal/archive/model"
	"github.com/go-sod/medknn/internal/config"
	"github.com/go-sod/medknn/internal/dataset"
	"github.com/go-sod/medknn/internal/logging"
	"github.com/go-sod/medknn/internal/metrics"
	"github.com/go-sod/medknn/internal/output"
	"github.com/go-sod/medknn/internal/predictor"
	"github.com/go-sod/medknn/internal/srvenv"
)

// Run loads both files, classifies every query and writes the labels to the
// output file. Any failure before the write leaves no output file behind. A
// failure to archive the run is logged and does not fail it.
func Run(ctx context.Context, cfg *config.Config, env *srvenv.SrvEnv) error {
	logger := logging.FromContext(ctx)

	if err := validate(cfg); err != nil {
		return err
	}
	delimiter, err := cfg.Dataset.DelimiterRune()
	if err != nil {
		return fmt.Errorf("%w: %v", predictor.ErrConfiguration, err)
	}
	provideFn := env.ProvidePredictor()
	if provideFn == nil {
		return fmt.Errorf("%w: classifier is not configured", predictor.ErrConfiguration)
	}

	set, err := dataset.LoadTrainingSet(ctx, cfg.Dataset.TrainFile, dataset.WithDelimiter(delimiter))
	if err != nil {
		return fmt.Errorf("load training set: %w", err)
	}
	queries, err := dataset.LoadQueries(ctx, cfg.Dataset.TestFile, dataset.WithDelimiter(delimiter))
	if err != nil {
		return fmt.Errorf("load queries: %w", err)
	}
	metrics.RecordTrainingSize(ctx, set.Len())

	classifier, err := provideFn(set.Samples()...)
	if err != nil {
		return fmt.Errorf("build classifier: %w", err)
	}

	vectors := make([]predictor.Vector, len(queries))
	for i := range queries {
		vectors[i] = queries[i]
	}
	start := time.Now()
	labels, err := classifier.ClassifyAll(ctx, vectors)
	if err != nil {
		return fmt.Errorf("classify: %w", err)
	}
	logger.Infof("classified %d queries with k=%d in %s", len(labels), classifier.K(), time.Since(start))

	if err := output.WriteFile(ctx, cfg.Output.OutFile, labels); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	if archive := env.Archive(); archive != nil {
		fingerprint, err := set.Fingerprint()
		if err != nil {
			logger.Errorf("unable to archive run: %v", err)
			return nil
		}
		run := model.NewRun(
			string(cfg.Predictor.PredictorType()),
			classifier.K(),
			string(classifier.TieBreak()),
			fingerprint,
			set.Len(),
			time.Now().UTC(),
		)
		for i, q := range queries {
			run.AddPrediction(q.Points(), labels[i])
		}
		if err := archive.Store(ctx, run); err != nil {
			logger.Errorf("unable to archive run: %v", err)
			return nil
		}
		logger.Infof("archived run %s", run.ID)
	}
	return nil
}

func validate(cfg *config.Config) error {
	switch {
	case cfg.Dataset.TrainFile == "":
		return fmt.Errorf("%w: training file is not set", predictor.ErrConfiguration)
	case cfg.Dataset.TestFile == "":
		return fmt.Errorf("%w: test file is not set", predictor.ErrConfiguration)
	case cfg.Output.OutFile == "":
		return fmt.Errorf("%w: output file is not set", predictor.ErrConfiguration)
	}
	return nil
}
