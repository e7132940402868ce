package predictor

import (
	"errors"
)

// ErrConfiguration marks a run that cannot classify anything with the given
// settings: non-positive k, an empty training set, an unknown algorithm.
var ErrConfiguration = errors.New("configuration error")

type ProvideFn func(data ...DataPoint) (*Classifier, error)

type PointsDistanceFn func(vec, vec1 []float64) (float64, error)

type Vector interface {
	Dim(idx int) float64
	Dimensions() int
	Points() []float64
}

// DataPoint is a labeled training vector.
type DataPoint interface {
	Vector() Vector
	Label() int
}

// KNNAlg finds the nearest training points for a query. Implementations are
// safe for concurrent KNN calls once Build has returned.
type KNNAlg interface {
	Reset()
	Len() int
	Build(data ...DataPoint)
	// KNN returns min(k, Len()) distinct points, closest first.
	KNN(vec Vector, k int) ([]Neighbor, error)
}

type Neighbor struct {
	Point    DataPoint
	Distance float64
}

func (n Neighbor) Label() int {
	return n.Point.Label()
}
