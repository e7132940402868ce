package predictor

import (
	"github.com/go-sod/medknn/internal/geom"
)

type testPoint struct {
	vec   geom.Point
	label int
}

func (p testPoint) Vector() Vector { return p.vec }

func (p testPoint) Label() int { return p.label }

func neighborsWithLabels(labels ...int) []Neighbor {
	nn := make([]Neighbor, len(labels))
	for i, label := range labels {
		nn[i] = Neighbor{Point: testPoint{vec: geom.Point{float64(i)}, label: label}, Distance: float64(i)}
	}
	return nn
}

// scanAlg is a minimal KNNAlg: it returns the first k points in Build order.
type scanAlg struct {
	data []DataPoint
}

func (s *scanAlg) Reset() { s.data = nil }

func (s *scanAlg) Len() int { return len(s.data) }

func (s *scanAlg) Build(data ...DataPoint) { s.data = data }

func (s *scanAlg) KNN(vec Vector, k int) ([]Neighbor, error) {
	if k > len(s.data) {
		k = len(s.data)
	}
	nn := make([]Neighbor, k)
	for i := 0; i < k; i++ {
		d, err := geom.EuclideanDistance(vec.Points(), s.data[i].Vector().Points())
		if err != nil {
			return nil, err
		}
		nn[i] = Neighbor{Point: s.data[i], Distance: d}
	}
	return nn, nil
}

// echoAlg answers every query with a single neighbor labeled by the query's
// first coordinate.
type echoAlg struct {
	scanAlg
}

func (e *echoAlg) KNN(vec Vector, k int) ([]Neighbor, error) {
	return []Neighbor{{Point: testPoint{vec: geom.Point{vec.Dim(0)}, label: int(vec.Dim(0))}}}, nil
}
