// Package prob provides weighted probability distributions and the random
// sources they draw from.
package prob

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// Source is the entropy used by every random decision in the game.
// Tests inject a deterministic Source instead of relying on global state.
type Source interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// IntN returns a value in [0, n). It panics if n <= 0.
	IntN(n int) int
}

// NewSource returns a reproducible Source seeded with seed.
func NewSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewRandomSource returns a Source seeded from crypto/rand.
func NewRandomSource() Source {
	var b [16]byte
	if _, err := crand.Read(b[:]); err != nil {
		panic("prob: crypto/rand failure: " + err.Error())
	}
	return rand.New(rand.NewPCG(binary.LittleEndian.Uint64(b[:8]), binary.LittleEndian.Uint64(b[8:])))
}

// Sequence replays a fixed list of values, cycling when exhausted.
// Float64 returns the values as-is; IntN maps them onto [0, n).
type Sequence struct {
	Values []float64
	next   int
}

// NewSequence creates a Sequence over values.
func NewSequence(values ...float64) *Sequence {
	return &Sequence{Values: values}
}

// Float64 returns the next value in the sequence.
func (s *Sequence) Float64() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	v := s.Values[s.next%len(s.Values)]
	s.next++
	return v
}

// IntN returns int(next * n), clamped to [0, n).
func (s *Sequence) IntN(n int) int {
	if n <= 0 {
		panic("prob: IntN called with n <= 0")
	}
	i := int(s.Float64() * float64(n))
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
