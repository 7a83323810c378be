// Package dice implements the weighted dice rolled on the sugoroku board.
package dice

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"

	"sugoroku/internal/game/prob"
)

// Errors for dice
var (
	ErrInvalidFace = errors.New("dice face must be an integer")
)

// modifier is a temporary distribution laid over the base of a Dice.
type modifier struct {
	name      string
	dist      prob.Distribution[int]
	remaining int
}

// Dice is a named probability distribution over step counts.
//
// A Dice has a base distribution and at most one temporary modifier. While
// the modifier has uses remaining it is rolled instead of the base; when the
// last use is consumed the Dice reverts to its base. A Dice created with
// NewLimited has no base to revert to and reports Spent once its uses run out.
type Dice struct {
	name    string
	base    prob.Distribution[int]
	mod     *modifier
	limited bool
	uses    int
}

// New creates a permanent Dice.
func New(name string, dist prob.Distribution[int]) *Dice {
	return &Dice{name: name, base: dist}
}

// NewLimited creates a Dice that is good for uses rolls.
func NewLimited(name string, dist prob.Distribution[int], uses int) *Dice {
	return &Dice{name: name, base: dist, limited: true, uses: uses}
}

// Name returns the name of the distribution currently in effect.
func (d *Dice) Name() string {
	if d.mod != nil {
		return d.mod.name
	}
	return d.name
}

// Distribution returns the distribution the next roll will use.
func (d *Dice) Distribution() prob.Distribution[int] {
	if d.mod != nil {
		return d.mod.dist
	}
	return d.base
}

// Remaining returns the rolls left on the active modifier or limited die,
// or 0 when the current distribution is permanent.
func (d *Dice) Remaining() int {
	switch {
	case d.mod != nil:
		return d.mod.remaining
	case d.limited:
		return d.uses
	default:
		return 0
	}
}

// Spent reports whether a limited Dice has used all of its rolls.
func (d *Dice) Spent() bool {
	return d.limited && d.uses <= 0
}

// Roll samples a face and consumes one use of any temporary state.
func (d *Dice) Roll(src prob.Source) int {
	face := d.Distribution().Sample(src)
	switch {
	case d.mod != nil:
		d.mod.remaining--
		if d.mod.remaining <= 0 {
			d.mod = nil
		}
	case d.limited:
		d.uses--
	}
	return face
}

// Override swaps in dist. With uses > 0 the swap is temporary and the
// current base returns after that many rolls; otherwise dist becomes the new
// base and any modifier is discarded. Internal distributions are trusted.
func (d *Dice) Override(name string, dist prob.Distribution[int], uses int) {
	if uses > 0 {
		d.mod = &modifier{name: name, dist: dist, remaining: uses}
		return
	}
	d.name = name
	d.base = dist
	d.mod = nil
}

// Replace validates externally supplied weights and makes them the new base.
func (d *Dice) Replace(name string, weights map[int]float64) error {
	dist, err := FromWeights(weights)
	if err != nil {
		return err
	}
	d.Override(name, dist, 0)
	return nil
}

// Clone returns an independent copy of d.
func (d *Dice) Clone() *Dice {
	cp := *d
	if d.mod != nil {
		m := *d.mod
		cp.mod = &m
	}
	return &cp
}

// Probabilities returns the current distribution as face -> weight.
func (d *Dice) Probabilities() map[int]float64 {
	return Weights(d.Distribution())
}

// FromWeights builds a validated distribution ordered by ascending face.
func FromWeights(weights map[int]float64) (prob.Distribution[int], error) {
	entries := make([]prob.Weighted[int], 0, len(weights))
	for _, face := range slices.Sorted(maps.Keys(weights)) {
		entries = append(entries, prob.Weighted[int]{Outcome: face, Weight: weights[face]})
	}
	return prob.New(entries...)
}

// ParseWeights converts JSON-style string keys ("1": 0.2) into faces.
func ParseWeights(raw map[string]float64) (map[int]float64, error) {
	out := make(map[int]float64, len(raw))
	for k, w := range raw {
		face, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidFace, k)
		}
		out[face] = w
	}
	return out, nil
}

// Weights flattens a distribution into face -> weight.
func Weights(dist prob.Distribution[int]) map[int]float64 {
	out := make(map[int]float64, dist.Len())
	for _, e := range dist.Entries() {
		out[e.Outcome] += e.Weight
	}
	return out
}
