package brute

import (
	"fmt"
	"sync"

	"github.com/go-sod/medknn/internal/predictor"
	"github.com/go-sod/medknn/pkg/pqueue"
)

var _ predictor.KNNAlg = (*brute)(nil)

func NewBruteAlg(distFn predictor.PointsDistanceFn) *brute {
	return &brute{distFunc: distFn}
}

// brute scans every training point, keeping the k best in a bounded max-heap.
// Points are scanned in Build order, and a point at the same distance as the
// current k-th neighbor does not replace it.
type brute struct {
	mtx      sync.RWMutex
	data     []predictor.DataPoint
	distFunc predictor.PointsDistanceFn
}

func (b *brute) Reset() {
	b.mtx.Lock()
	b.data = nil
	b.mtx.Unlock()
}

func (b *brute) KNN(vec predictor.Vector, k int) ([]predictor.Neighbor, error) {
	return b.knn(vec, k)
}

func (b *brute) Len() int {
	b.mtx.RLock()
	defer b.mtx.RUnlock()
	return len(b.data)
}

func (b *brute) Build(data ...predictor.DataPoint) {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	b.data = make([]predictor.DataPoint, len(data))
	copy(b.data, data)
}

func (b *brute) knn(vec predictor.Vector, n int) ([]predictor.Neighbor, error) {
	if n <= 0 {
		return nil, fmt.Errorf("k must be positive, got %d", n)
	}
	b.mtx.RLock()
	list := b.data
	b.mtx.RUnlock()

	pq := pqueue.New(pqueue.WithCap(uint(n)))
	query := vec.Points()
	for _, item := range list {
		distance, err := b.distFunc(query, item.Vector().Points())
		if err != nil {
			return nil, fmt.Errorf(
				"unable to compute distance between %v and %v: %w",
				query, item.Vector().Points(),
				err,
			)
		}
		pq.Push(predictor.Neighbor{Point: item, Distance: distance}, distance)
	}

	pulled := pq.PopAll()
	knn := make([]predictor.Neighbor, len(pulled))
	for i := range pulled {
		knn[i] = pulled[i].(predictor.Neighbor)
	}
	return knn, nil
}
