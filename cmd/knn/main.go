package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/go-sod/medknn/internal/batch"
	"github.com/go-sod/medknn/internal/buildinfo"
	"github.com/go-sod/medknn/internal/config"
	"github.com/go-sod/medknn/internal/logging"
	"github.com/go-sod/medknn/internal/predictor"
	"github.com/go-sod/medknn/internal/setup"
	"github.com/go-sod/medknn/internal/shutdown"
)

func main() {
	_, _ = fmt.Fprintln(os.Stderr, buildinfo.Info.String())

	ctx, done := shutdown.New()
	logger := logging.NewLoggerFromEnv()
	ctx = logging.WithLogger(ctx, logger)

	if err := run(ctx, os.Args[1:]); err != nil {
		done()
		logger.Fatal(err)
	}
	done()
}

func run(ctx context.Context, args []string) error {
	var (
		trainFile  string
		testFile   string
		outFile    string
		configFile string
		k          int
	)
	fs := flag.NewFlagSet(buildinfo.Info.Name(), flag.ContinueOnError)
	fs.StringVar(&trainFile, "train", "", "training file, a header line then 13 features and a label per line")
	fs.StringVar(&testFile, "test", "", "test file, a header line then 13 features per line")
	fs.StringVar(&outFile, "out", "", "file receiving the predicted labels")
	fs.StringVar(&configFile, "config", "", "TOML config file")
	fs.IntVar(&k, "k", 0, "number of neighbors")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", predictor.ErrConfiguration, err)
	}

	cfg := config.Config{}
	if err := setup.Load(ctx, &cfg, configFile); err != nil {
		return fmt.Errorf("setup.Load: %w", err)
	}
	// only flags given on the command line override the loaded config
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "train":
			cfg.Dataset.TrainFile = trainFile
		case "test":
			cfg.Dataset.TestFile = testFile
		case "out":
			cfg.Output.OutFile = outFile
		case "k":
			cfg.Predictor.K = k
		}
	})

	env, err := setup.Setup(ctx, &cfg)
	if err != nil {
		return fmt.Errorf("setup.Setup: %w", err)
	}
	defer env.Close(ctx)

	if err := batch.Run(ctx, &cfg, env); err != nil {
		return fmt.Errorf("batch.Run: %w", err)
	}
	return nil
}
