package dataset

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/go-sod/medknn/internal/logging"
	"github.com/go-sod/medknn/internal/record"
)

type Option func(*options)

type options struct {
	delimiter rune
}

func WithDelimiter(r rune) Option {
	return func(o *options) {
		o.delimiter = r
	}
}

func newOptions(opts []Option) options {
	o := options{delimiter: ','}
	for _, f := range opts {
		f(&o)
	}
	return o
}

// LoadTrainingSet reads a training file: a header line, then one record of 13
// features and an integer label per line.
func LoadTrainingSet(ctx context.Context, path string, opts ...Option) (*TrainingSet, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadTrainingSet(ctx, path, f, opts...)
}

// LoadQueries reads a test file: a header line, then 13 features per line.
func LoadQueries(ctx context.Context, path string, opts ...Option) ([]record.FeatureVector, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadQueries(ctx, path, f, opts...)
}

func ReadTrainingSet(ctx context.Context, name string, r io.Reader, opts ...Option) (*TrainingSet, error) {
	logger := logging.FromContext(ctx)
	set := NewTrainingSet()
	err := scanRecords(name, r, newOptions(opts), func(line int, fields []string) error {
		if len(fields) != record.Dimensions+1 {
			return &ParseError{
				Resource: name,
				Line:     line,
				Err:      fmt.Errorf("%w: got %d, expected %d", ErrFieldCount, len(fields), record.Dimensions+1),
			}
		}
		vec, err := parseFeatures(name, line, fields[:record.Dimensions])
		if err != nil {
			return err
		}
		label, err := strconv.Atoi(fields[record.Dimensions])
		if err != nil {
			return &ParseError{Resource: name, Line: line, Field: "label", Err: err}
		}
		set.Put(vec, label)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Infof("loaded training set %s: %d unique vectors", name, set.Len())
	if set.Duplicates() > 0 {
		logger.Warnf(
			"training set %s: %d duplicate vectors collapsed, %d of them with a different label; the last label wins",
			name, set.Duplicates(), set.Conflicts(),
		)
	}
	return set, nil
}

func ReadQueries(ctx context.Context, name string, r io.Reader, opts ...Option) ([]record.FeatureVector, error) {
	var queries []record.FeatureVector
	err := scanRecords(name, r, newOptions(opts), func(line int, fields []string) error {
		if len(fields) != record.Dimensions {
			return &ParseError{
				Resource: name,
				Line:     line,
				Err:      fmt.Errorf("%w: got %d, expected %d", ErrFieldCount, len(fields), record.Dimensions),
			}
		}
		vec, err := parseFeatures(name, line, fields)
		if err != nil {
			return err
		}
		queries = append(queries, vec)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Infof("loaded %d queries from %s", len(queries), name)
	return queries, nil
}

func open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrResourceNotFound, path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %s: %v", ErrResourceNotFound, path, err)
	}
	if info.IsDir() {
		f.Close()
		return nil, fmt.Errorf("%w: %s is a directory", ErrResourceNotFound, path)
	}
	return f, nil
}

// scanRecords skips the header line and blank lines and hands every other
// line, split on the delimiter and trimmed, to fn.
func scanRecords(name string, r io.Reader, o options, fn func(line int, fields []string) error) error {
	scanner := bufio.NewScanner(r)
	sep := string(o.delimiter)
	line := 0
	for scanner.Scan() {
		line++
		if line == 1 {
			continue
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		fields := strings.Split(text, sep)
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		if err := fn(line, fields); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrResourceNotFound, name, err)
	}
	return nil
}

func parseFeatures(name string, line int, fields []string) (record.FeatureVector, error) {
	var vec record.FeatureVector
	for i, attr := range record.Attributes() {
		value, err := parseValue(attr, fields[i])
		if err != nil {
			return vec, &ParseError{Resource: name, Line: line, Field: attr.String(), Err: err}
		}
		vec[i] = value
	}
	return vec, nil
}

func parseValue(attr record.Attribute, field string) (float64, error) {
	if attr.Integer() {
		n, err := strconv.Atoi(field)
		if err != nil {
			return 0, err
		}
		return float64(n), nil
	}
	value, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, record.ErrNotFinite
	}
	return value, nil
}
