package dataset

import (
	"encoding/hex"
	"fmt"

	"github.com/go-sod/medknn/internal/predictor"
	"github.com/go-sod/medknn/internal/record"
	"github.com/go-sod/medknn/internal/util"
)

// TrainingSet maps unique feature vectors to labels. Putting a vector that is
// already present overwrites its label but keeps its original position, so
// iteration follows first-insertion order.
type TrainingSet struct {
	labels     map[record.FeatureVector]int
	order      []record.FeatureVector
	duplicates int
	conflicts  int
}

func NewTrainingSet() *TrainingSet {
	return &TrainingSet{labels: map[record.FeatureVector]int{}}
}

func (t *TrainingSet) Put(vec record.FeatureVector, label int) {
	prev, ok := t.labels[vec]
	if !ok {
		t.order = append(t.order, vec)
	} else {
		t.duplicates++
		if prev != label {
			t.conflicts++
		}
	}
	t.labels[vec] = label
}

func (t *TrainingSet) Label(vec record.FeatureVector) (int, bool) {
	label, ok := t.labels[vec]
	return label, ok
}

func (t *TrainingSet) Len() int {
	return len(t.order)
}

// Duplicates is the number of records that repeated an earlier vector.
func (t *TrainingSet) Duplicates() int {
	return t.duplicates
}

// Conflicts is the number of duplicate records whose label differed from the
// label stored at that moment.
func (t *TrainingSet) Conflicts() int {
	return t.conflicts
}

func (t *TrainingSet) Vectors() []record.FeatureVector {
	vectors := make([]record.FeatureVector, len(t.order))
	copy(vectors, t.order)
	return vectors
}

// Samples returns the labeled points in first-insertion order.
func (t *TrainingSet) Samples() []predictor.DataPoint {
	points := make([]predictor.DataPoint, len(t.order))
	for i, vec := range t.order {
		points[i] = record.Sample{Features: vec, Class: t.labels[vec]}
	}
	return points
}

// Fingerprint identifies the content of the training set, labels included.
func (t *TrainingSet) Fingerprint() (string, error) {
	items := make([]util.LabeledVector, len(t.order))
	for i, vec := range t.order {
		items[i] = util.LabeledVector{Vec: vec.Points(), Label: int32(t.labels[vec])}
	}
	sum, err := util.HashLabeledVectors(items)
	if err != nil {
		return "", fmt.Errorf("unable to hash training set: %w", err)
	}
	return hex.EncodeToString(sum[:]), nil
}
