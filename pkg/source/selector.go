package source

import (
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Selector picks a source with probability proportional to its weight
type Selector struct {
	sources    []Source
	cumulative []float64
}

// NewSelector builds the cumulative weight table
func NewSelector(sources []Source) (*Selector, error) {
	if len(sources) == 0 {
		return nil, ErrNoSources
	}
	weights := make([]float64, len(sources))
	for i, s := range sources {
		if s.Weight() < 0 {
			return nil, ErrNegativeWeight
		}
		weights[i] = s.Weight()
	}
	return &Selector{
		sources:    append([]Source(nil), sources...),
		cumulative: floats.CumSum(make([]float64, len(weights)), weights),
	}, nil
}

// Len returns the number of sources
func (s *Selector) Len() int { return len(s.sources) }

// Index returns the position of the first cumulative weight not below
// u·total, clamped to the last source
func (s *Selector) Index(u float64) int {
	total := s.cumulative[len(s.cumulative)-1]
	i := sort.SearchFloat64s(s.cumulative, u*total)
	if i >= len(s.sources) {
		i = len(s.sources) - 1
	}
	return i
}

// Pick draws a source
func (s *Selector) Pick(random *rand.Rand) Source {
	return s.sources[s.Index(random.Float64())]
}
