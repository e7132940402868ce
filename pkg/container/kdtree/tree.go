/*
 * Copyright 2020 Dennis Kuhnert
 * Copyright 2020 Ivanov Nikita
 *
 *    Licensed under the Apache License, Version 2.0 (the "License");
 *    you may not use this file except in compliance with the License.
 *    You may obtain a copy of the License at
 *
 *        http://www.apache.org/licenses/LICENSE-2.0
 *
 *    Unless required by applicable law or agreed to in writing, software
 *    distributed under the License is distributed on an "AS IS" BASIS,
 *    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *    See the License for the specific language governing permissions and
 *    limitations under the License.
 */
package kdtree

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/go-sod/medknn/pkg/pqueue"
)

var ErrInvalidK = errors.New("k must be positive")

type Point interface {
	Dim(idx int) float64
	Dimensions() int
	Points() []float64
}

// Neighbor is a tree point together with its distance to the query.
type Neighbor struct {
	Point    Point
	Distance float64
}

func New(distFn func(vec, vec1 []float64) (float64, error)) *Tree {
	return &Tree{
		root:   nil,
		len:    0,
		distFn: distFn,
	}
}

type Tree struct {
	root   *node
	len    int
	distFn func(vec, vec1 []float64) (float64, error)
}

// Build replaces the tree content with a balanced tree over points. The input
// slice is reordered.
func (t *Tree) Build(points ...Point) {
	t.len = len(points)
	t.root = buildTreeRecursive(points, 0)
}

func (t *Tree) Len() int {
	return t.len
}

func (t *Tree) Points() []Point {
	if t.root == nil {
		return []Point{}
	}
	return t.root.Points()
}

// KNN returns up to k points nearest to p, closest first. An empty tree yields
// an empty result.
func (t *Tree) KNN(p Point, k int) ([]Neighbor, error) {
	if k <= 0 {
		return nil, ErrInvalidK
	}
	if t.root == nil {
		return []Neighbor{}, nil
	}
	if p.Dimensions() != t.root.Key.Dimensions() {
		return nil, fmt.Errorf("query has %d dimensions, tree has %d", p.Dimensions(), t.root.Key.Dimensions())
	}

	queue := pqueue.New(pqueue.WithCap(uint(k)))
	if err := t.knn(p, t.root, 0, queue); err != nil {
		return nil, err
	}

	pulled := queue.PopAll()
	neighbors := make([]Neighbor, len(pulled))
	for i := range pulled {
		neighbors[i] = pulled[i].(Neighbor)
	}
	return neighbors, nil
}

func (t *Tree) knn(p Point, current *node, dim int, queue *pqueue.Queue) error {
	if current == nil {
		return nil
	}

	distance, err := t.distFn(p.Points(), current.Key.Points())
	if err != nil {
		return fmt.Errorf("compute knn error: %w", err)
	}
	queue.Push(Neighbor{Point: current.Key, Distance: distance}, distance)

	diff := p.Dim(dim) - current.Key.Dim(dim)
	near, far := current.Left, current.Right
	if diff >= 0 {
		near, far = current.Right, current.Left
	}
	next := (dim + 1) % p.Dimensions()
	if err := t.knn(p, near, next, queue); err != nil {
		return err
	}

	// points beyond the splitting plane are at least |diff| away
	if queue.Full() {
		if _, worst, _ := queue.Worst(); math.Abs(diff) >= worst {
			return nil
		}
	}
	return t.knn(p, far, next, queue)
}

type sortPoints struct {
	dim    int
	points []Point
}

func (b *sortPoints) Len() int {
	return len(b.points)
}

func (b *sortPoints) Less(i, j int) bool {
	return b.points[i].Dim(b.dim) < b.points[j].Dim(b.dim)
}

func (b *sortPoints) Swap(i, j int) {
	b.points[i], b.points[j] = b.points[j], b.points[i]
}

func buildTreeRecursive(points []Point, dim int) *node {
	if len(points) == 0 {
		return nil
	}
	if len(points) == 1 {
		return &node{Key: points[0]}
	}

	sort.Sort(&sortPoints{dim: dim, points: points})
	mid := len(points) / 2
	root := points[mid]
	nextDim := (dim + 1) % root.Dimensions()
	return &node{
		Key:   root,
		Left:  buildTreeRecursive(points[:mid], nextDim),
		Right: buildTreeRecursive(points[mid+1:], nextDim),
	}
}
