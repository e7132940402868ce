package kd

import (
	"fmt"
	"sync"

	"github.com/go-sod/medknn/internal/predictor"
	"github.com/go-sod/medknn/pkg/container/kdtree"
)

var _ predictor.KNNAlg = (*kd)(nil)

// item lets a labeled data point live in the kd tree.
type item struct {
	predictor.DataPoint
	vec predictor.Vector
}

func (i item) Dim(idx int) float64 { return i.vec.Dim(idx) }

func (i item) Dimensions() int { return i.vec.Dimensions() }

func (i item) Points() []float64 { return i.vec.Points() }

func NewKDAlg(distFn predictor.PointsDistanceFn) *kd {
	return &kd{
		distFn:   distFn,
		dataTree: kdtree.New(distFn),
	}
}

type kd struct {
	mtx      sync.RWMutex
	dataTree *kdtree.Tree
	distFn   predictor.PointsDistanceFn
}

func (b *kd) Build(data ...predictor.DataPoint) {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	items := make([]kdtree.Point, len(data))
	for i := range data {
		items[i] = item{DataPoint: data[i], vec: data[i].Vector()}
	}
	b.dataTree = kdtree.New(b.distFn)
	b.dataTree.Build(items...)
}

func (b *kd) Reset() {
	b.mtx.Lock()
	b.dataTree = kdtree.New(b.distFn)
	b.mtx.Unlock()
}

func (b *kd) KNN(vec predictor.Vector, n int) ([]predictor.Neighbor, error) {
	b.mtx.RLock()
	kdNeighbors, err := b.dataTree.KNN(vec, n)
	b.mtx.RUnlock()
	if err != nil {
		return nil, fmt.Errorf("kd tree knn: %w", err)
	}
	output := make([]predictor.Neighbor, len(kdNeighbors))
	for i, neighbor := range kdNeighbors {
		output[i] = predictor.Neighbor{
			Point:    neighbor.Point.(item).DataPoint,
			Distance: neighbor.Distance,
		}
	}
	return output, nil
}

func (b *kd) Len() int {
	b.mtx.RLock()
	defer b.mtx.RUnlock()
	return b.dataTree.Len()
}
