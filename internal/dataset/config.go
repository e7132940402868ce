package dataset

import (
	"fmt"
	"unicode/utf8"
)

type Config struct {
	TrainFile string `envconfig:"KNN_TRAIN_FILE" toml:"train_file"`
	TestFile  string `envconfig:"KNN_TEST_FILE" toml:"test_file"`
	// single character separating fields of a record
	Delimiter string `envconfig:"KNN_DELIMITER" default:"," toml:"delimiter"`
}

func (c Config) DelimiterRune() (rune, error) {
	r, size := utf8.DecodeRuneInString(c.Delimiter)
	if r == utf8.RuneError || size != len(c.Delimiter) {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", c.Delimiter)
	}
	if r == '\n' || r == '\r' {
		return 0, fmt.Errorf("delimiter must not be a line break")
	}
	return r, nil
}
