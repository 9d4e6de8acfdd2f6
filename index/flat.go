package index

import (
	"cmp"
	"fmt"
	"math"
	"slices"
)

// NoNeighbor is the label of an unfilled result slot.
const NoNeighbor int64 = -1

// Neighbor is one k-nearest-neighbor result slot.
type Neighbor struct {
	Label    int64   // corpus row index, or NoNeighbor
	Distance float32 // squared Euclidean distance
}

// Flat is an exhaustive nearest-neighbor index over fixed-dimension vectors.
// Vectors are labeled by insertion order starting at 0.
// A Flat is not safe for concurrent Add; Search is safe once building is done.
type Flat struct {
	dim  int
	data []float32
}

// NewFlat creates an empty index for vectors of dimension dim.
func NewFlat(dim int) (*Flat, error) {
	if dim <= 0 {
		return nil, ErrInvalidDimension
	}
	return &Flat{dim: dim}, nil
}

// Dim returns the vector dimension.
func (f *Flat) Dim() int {
	return f.dim
}

// Len returns the number of indexed vectors.
func (f *Flat) Len() int {
	return len(f.data) / f.dim
}

// Add appends vectors, labeling them Len(), Len()+1, ...
// Nothing is added if any vector has the wrong dimension.
func (f *Flat) Add(vectors ...[]float32) error {
	for i, v := range vectors {
		if len(v) != f.dim {
			return fmt.Errorf("%w: vector %d has %d components, index has %d", ErrDimensionMismatch, i, len(v), f.dim)
		}
	}
	for _, v := range vectors {
		f.data = append(f.data, v...)
	}
	return nil
}

// Vector returns a copy of the vector with label i.
func (f *Flat) Vector(i int) ([]float32, bool) {
	if i < 0 || i >= f.Len() {
		return nil, false
	}
	return slices.Clone(f.data[i*f.dim : (i+1)*f.dim]), true
}

// Search returns exactly k slots ordered by ascending distance to query.
// Equal distances are ordered by label. When fewer than k vectors are
// indexed, trailing slots carry NoNeighbor and an infinite distance.
func (f *Flat) Search(query []float32, k int) ([]Neighbor, error) {
	if len(query) != f.dim {
		return nil, fmt.Errorf("%w: query has %d components, index has %d", ErrDimensionMismatch, len(query), f.dim)
	}
	if k <= 0 {
		return []Neighbor{}, nil
	}

	n := f.Len()
	candidates := make([]Neighbor, n)
	for i := 0; i < n; i++ {
		candidates[i] = Neighbor{
			Label:    int64(i),
			Distance: squaredL2(query, f.data[i*f.dim:(i+1)*f.dim]),
		}
	}
	slices.SortFunc(candidates, func(a, b Neighbor) int {
		if c := cmp.Compare(a.Distance, b.Distance); c != 0 {
			return c
		}
		return cmp.Compare(a.Label, b.Label)
	})

	results := make([]Neighbor, k)
	for i := range results {
		if i < n {
			results[i] = candidates[i]
		} else {
			results[i] = Neighbor{Label: NoNeighbor, Distance: float32(math.Inf(1))}
		}
	}
	return results, nil
}

func squaredL2(a, b []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
