package model

import (
	"time"

	"github.com/google/uuid"
)

// Prediction is the label assigned to the query at Index of a batch.
type Prediction struct {
	Index  int       `json:"index"`
	Vector []float64 `json:"vector"`
	Label  int       `json:"label"`
}

// Run records one batch classification. Only the predictions are kept; the
// training set is identified by its fingerprint.
type Run struct {
	ID           uuid.UUID    `json:"id"`
	CreatedAt    time.Time    `json:"createdAt"`
	Algorithm    string       `json:"algorithm"`
	K            int          `json:"k"`
	TieBreak     string       `json:"tieBreak"`
	Fingerprint  string       `json:"fingerprint"`
	TrainingSize int          `json:"trainingSize"`
	Predictions  []Prediction `json:"predictions"`
}

func NewRun(algorithm string, k int, tieBreak, fingerprint string, trainingSize int, createdAt time.Time) Run {
	return Run{
		ID:           uuid.New(),
		CreatedAt:    createdAt,
		Algorithm:    algorithm,
		K:            k,
		TieBreak:     tieBreak,
		Fingerprint:  fingerprint,
		TrainingSize: trainingSize,
	}
}

func (r *Run) AddPrediction(vec []float64, label int) {
	r.Predictions = append(r.Predictions, Prediction{Index: len(r.Predictions), Vector: vec, Label: label})
}

func (r Run) Labels() []int {
	labels := make([]int, len(r.Predictions))
	for i, p := range r.Predictions {
		labels[i] = p.Label
	}
	return labels
}
