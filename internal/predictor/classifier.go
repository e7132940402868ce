package predictor

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/go-sod/medknn/internal/metrics"
	"golang.org/x/sync/errgroup"
)

type Option func(*Classifier)

func WithK(k int) Option {
	return func(c *Classifier) {
		c.k = k
	}
}

func WithTieBreak(tb TieBreak) Option {
	return func(c *Classifier) {
		c.tieBreak = tb
	}
}

func WithWorkers(n int) Option {
	return func(c *Classifier) {
		c.workers = n
	}
}

// New wraps an already built KNNAlg. The algorithm must not be modified while
// the classifier is in use.
func New(alg KNNAlg, opts ...Option) (*Classifier, error) {
	if alg == nil {
		return nil, fmt.Errorf("%w: knn algorithm is not defined", ErrConfiguration)
	}
	c := &Classifier{
		alg:      alg,
		k:        5,
		tieBreak: TieBreakRandom,
	}
	for _, f := range opts {
		f(c)
	}
	if c.k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive, got %d", ErrConfiguration, c.k)
	}
	if !c.tieBreak.Valid() {
		return nil, fmt.Errorf("%w: unknown tie break policy %q", ErrConfiguration, c.tieBreak)
	}
	if c.workers <= 0 {
		c.workers = runtime.GOMAXPROCS(0)
	}
	return c, nil
}

type Classifier struct {
	alg      KNNAlg
	k        int
	tieBreak TieBreak
	workers  int
}

func (c *Classifier) K() int {
	return c.k
}

func (c *Classifier) TieBreak() TieBreak {
	return c.tieBreak
}

func (c *Classifier) Len() int {
	return c.alg.Len()
}

// Neighbors returns the k nearest training points, or all of them when the
// training set is smaller than k.
func (c *Classifier) Neighbors(vec Vector) ([]Neighbor, error) {
	if c.alg.Len() == 0 {
		return nil, fmt.Errorf("%w: training set is empty", ErrConfiguration)
	}
	nn, err := c.alg.KNN(vec, c.k)
	if err != nil {
		return nil, fmt.Errorf("unable compute KNN: %w", err)
	}
	return nn, nil
}

func (c *Classifier) Classify(ctx context.Context, vec Vector) (int, error) {
	start := time.Now()
	nn, err := c.Neighbors(vec)
	if err != nil {
		return 0, err
	}
	label, err := MajorityVote(nn, c.tieBreak)
	if err != nil {
		return 0, fmt.Errorf("unable to vote: %w", err)
	}
	metrics.RecordClassification(ctx, time.Since(start))
	return label, nil
}

// ClassifyAll labels every vector. Vectors are split into contiguous chunks,
// one goroutine per chunk, and the result keeps the input order.
func (c *Classifier) ClassifyAll(ctx context.Context, vectors []Vector) ([]int, error) {
	labels := make([]int, len(vectors))
	if len(vectors) == 0 {
		return labels, nil
	}
	if c.alg.Len() == 0 {
		return nil, fmt.Errorf("%w: training set is empty while %d queries exist", ErrConfiguration, len(vectors))
	}

	workers := c.workers
	if workers > len(vectors) {
		workers = len(vectors)
	}
	chunk := (len(vectors) + workers - 1) / workers

	grp, ctx := errgroup.WithContext(ctx)
	for start := 0; start < len(vectors); start += chunk {
		start, end := start, start+chunk
		if end > len(vectors) {
			end = len(vectors)
		}
		grp.Go(func() error {
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				label, err := c.Classify(ctx, vectors[i])
				if err != nil {
					return fmt.Errorf("query %d: %w", i, err)
				}
				labels[i] = label
			}
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}
	return labels, nil
}
