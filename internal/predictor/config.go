package predictor

import "fmt"

type AlgType string

const (
	AlgTypeBrute  AlgType = "BRUTE"
	AlgTypeKDTree AlgType = "KD_TREE"
)

type Config struct {
	Type AlgType `envconfig:"KNN_ALG_TYPE" default:"BRUTE" toml:"alg_type"`
	// number of neighbors taking part in the vote
	K int `envconfig:"KNN_K" default:"5" toml:"k"`
	// RANDOM or LOWEST, see MajorityVote
	TieBreak TieBreak `envconfig:"KNN_TIE_BREAK" default:"RANDOM" toml:"tie_break"`
	// 0 means GOMAXPROCS
	Workers int `envconfig:"KNN_WORKERS" toml:"workers"`
}

func (c Config) PredictorType() AlgType {
	return c.Type
}

func (c Config) Validate() error {
	if c.K <= 0 {
		return fmt.Errorf("%w: k must be positive, got %d", ErrConfiguration, c.K)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrConfiguration, c.Workers)
	}
	switch c.Type {
	case AlgTypeBrute, AlgTypeKDTree:
	default:
		return fmt.Errorf("%w: unknown algorithm type %q", ErrConfiguration, c.Type)
	}
	if !c.TieBreak.Valid() {
		return fmt.Errorf("%w: unknown tie break policy %q", ErrConfiguration, c.TieBreak)
	}
	return nil
}
