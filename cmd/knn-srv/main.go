package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/go-sod/medknn/internal/buildinfo"
	"github.com/go-sod/medknn/internal/config"
	"github.com/go-sod/medknn/internal/dataset"
	"github.com/go-sod/medknn/internal/logging"
	"github.com/go-sod/medknn/internal/metrics"
	"github.com/go-sod/medknn/internal/predict"
	"github.com/go-sod/medknn/internal/predictor"
	"github.com/go-sod/medknn/internal/server"
	"github.com/go-sod/medknn/internal/setup"
	"github.com/go-sod/medknn/internal/shutdown"
	"golang.org/x/sync/errgroup"
)

func main() {
	_, _ = fmt.Fprint(os.Stdout, buildinfo.Graffiti)
	_, _ = fmt.Fprintln(os.Stdout, buildinfo.Info.String())

	ctx, done := shutdown.New()
	logger := logging.NewLoggerFromEnv()
	ctx = logging.WithLogger(ctx, logger)

	if err := run(ctx); err != nil {
		done()
		logger.Fatal(err)
	}
	done()
}

func run(ctx context.Context) error {
	logger := logging.FromContext(ctx)

	cfg := config.Config{}
	if err := setup.Load(ctx, &cfg, ""); err != nil {
		return fmt.Errorf("setup.Load: %w", err)
	}
	env, err := setup.Setup(ctx, &cfg)
	if err != nil {
		return fmt.Errorf("setup.Setup: %w", err)
	}
	defer env.Close(ctx)

	if cfg.Dataset.TrainFile == "" {
		return fmt.Errorf("%w: training file is not set", predictor.ErrConfiguration)
	}
	delimiter, err := cfg.Dataset.DelimiterRune()
	if err != nil {
		return fmt.Errorf("%w: %v", predictor.ErrConfiguration, err)
	}
	set, err := dataset.LoadTrainingSet(ctx, cfg.Dataset.TrainFile, dataset.WithDelimiter(delimiter))
	if err != nil {
		return fmt.Errorf("dataset.LoadTrainingSet: %w", err)
	}
	if set.Len() == 0 {
		return fmt.Errorf("%w: training set %s is empty", predictor.ErrConfiguration, cfg.Dataset.TrainFile)
	}
	metrics.RecordTrainingSize(ctx, set.Len())
	fingerprint, err := set.Fingerprint()
	if err != nil {
		return fmt.Errorf("fingerprint: %w", err)
	}
	classifier, err := env.ProvidePredictor()(set.Samples()...)
	if err != nil {
		return fmt.Errorf("classifier provider function error: %w", err)
	}

	mux := http.NewServeMux()
	predictHandler, err := predict.NewHandler(&cfg.Predict, classifier, env.Cache(), fingerprint)
	if err != nil {
		return fmt.Errorf("predict.NewHandler: %w", err)
	}
	mux.Handle("/predict", predictHandler)
	mux.Handle("/health", server.HandleHealth(ctx))
	if h := env.MetricsHandler(); h != nil {
		mux.Handle("/metrics", h)
	}

	srv, err := server.New(cfg.SrvAddr, cfg.MaxConnections)
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}
	var grpcSrv *server.Server
	if cfg.GRPCAddr != "" {
		if grpcSrv, err = server.New(cfg.GRPCAddr, cfg.MaxConnections); err != nil {
			return fmt.Errorf("server.New: %w", err)
		}
	}
	logger.Infof("serving %d training vectors on %s", set.Len(), srv.Addr())

	grp, ctx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		return srv.ServeHTTPHandler(ctx, mux)
	})
	if grpcSrv != nil {
		logger.Infof("serving grpc health on %s", grpcSrv.Addr())
		grp.Go(func() error {
			return grpcSrv.ServeGRPC(ctx, server.NewGRPCHealthServer(ctx, buildinfo.Info.Name()))
		})
	}
	return grp.Wait()
}
