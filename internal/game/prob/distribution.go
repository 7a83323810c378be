package prob

import (
	"errors"
	"fmt"
	"math"
)

// Tolerance is how far the weights of a user-supplied distribution may
// stray from 1.
const Tolerance = 0.01

// epsilon absorbs float64 rounding at the tolerance boundary.
const epsilon = 1e-9

// WithinTolerance reports whether sum lies in [1-Tolerance, 1+Tolerance].
func WithinTolerance(sum float64) bool {
	return math.Abs(sum-1) <= Tolerance+epsilon
}

// Errors for distribution construction
var (
	ErrInvalidDistribution = errors.New("invalid probability distribution")
)

// Weighted pairs an outcome with its probability weight.
type Weighted[T any] struct {
	Outcome T
	Weight  float64
}

// Distribution is a normalized weighted choice over a finite, ordered set of
// outcomes. The zero value has no outcomes and must not be sampled.
type Distribution[T any] struct {
	entries []Weighted[T]
}

// New validates entries and builds a Distribution. Weights must be
// non-negative and sum to 1 within Tolerance.
func New[T any](entries ...Weighted[T]) (Distribution[T], error) {
	if len(entries) == 0 {
		return Distribution[T]{}, fmt.Errorf("%w: no outcomes", ErrInvalidDistribution)
	}
	var sum float64
	for i, e := range entries {
		if e.Weight < 0 || math.IsNaN(e.Weight) || math.IsInf(e.Weight, 0) {
			return Distribution[T]{}, fmt.Errorf("%w: weight %d is %v", ErrInvalidDistribution, i, e.Weight)
		}
		sum += e.Weight
	}
	if !WithinTolerance(sum) {
		return Distribution[T]{}, fmt.Errorf("%w: weights sum to %.4f", ErrInvalidDistribution, sum)
	}
	return Trusted(entries...), nil
}

// Trusted builds a Distribution from internal tables without validation.
func Trusted[T any](entries ...Weighted[T]) Distribution[T] {
	cp := make([]Weighted[T], len(entries))
	copy(cp, entries)
	return Distribution[T]{entries: cp}
}

// Uniform gives every outcome the same weight.
func Uniform[T any](outcomes ...T) Distribution[T] {
	entries := make([]Weighted[T], len(outcomes))
	for i, o := range outcomes {
		entries[i] = Weighted[T]{Outcome: o, Weight: 1 / float64(len(outcomes))}
	}
	return Distribution[T]{entries: entries}
}

// Sample draws one outcome. It walks the cumulative weights and returns the
// first outcome whose cumulative weight reaches r; if rounding leaves r
// uncovered the last positive-weight outcome is returned. Zero-weight
// outcomes are never drawn.
func (d Distribution[T]) Sample(src Source) T {
	r := src.Float64()
	var cum float64
	last := -1
	for i, e := range d.entries {
		if e.Weight <= 0 {
			continue
		}
		cum += e.Weight
		last = i
		if cum >= r {
			return e.Outcome
		}
	}
	if last < 0 {
		// All weights zero; only reachable through Trusted.
		last = len(d.entries) - 1
	}
	return d.entries[last].Outcome
}

// Entries returns a copy of the weighted outcomes in order.
func (d Distribution[T]) Entries() []Weighted[T] {
	cp := make([]Weighted[T], len(d.entries))
	copy(cp, d.entries)
	return cp
}

// Len returns the number of outcomes.
func (d Distribution[T]) Len() int {
	return len(d.entries)
}

// Empty reports whether the distribution has no outcomes.
func (d Distribution[T]) Empty() bool {
	return len(d.entries) == 0
}
