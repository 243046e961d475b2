// Package random implements the Gaussian velocity model of the effect.
package random

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/goudreinette/vary-velocity/internal/params"
	"github.com/goudreinette/vary-velocity/sdk/contracts"
)

// ErrInvalidSigma is returned when the effective standard deviation is
// non-positive or non-finite. The parameter store's clamp makes this
// unreachable in a correctly wired instance; seeing it means the
// configuration contract was violated and the cycle must abort.
var ErrInvalidSigma = errors.New("invalid standard deviation for velocity distribution")

// maxVelocity is the upper bound of the MIDI velocity range.
const maxVelocity = 127.0

// Randomizer draws a replacement velocity for one note event at a time from
// Normal(inbound velocity, sigma), clamped to [floor, 127]. Each draw is
// independent; no state is carried between events.
type Randomizer struct {
	store *params.Store
	src   rand.Source
}

// NewRandomizer creates a randomizer over the given parameter store. A nil
// src falls back to the process-wide random source; tests inject a seeded
// source for deterministic draws.
func NewRandomizer(store *params.Store, src rand.Source) *Randomizer {
	return &Randomizer{store: store, src: src}
}

// Transform returns a copy of the inbound event with a recomputed velocity.
// Status, note number, and timing metadata are preserved byte-for-byte.
func (r *Randomizer) Transform(e contracts.NoteEvent) (contracts.NoteEvent, error) {
	sigma := r.store.Sigma()
	if sigma <= 0 || math.IsNaN(sigma) || math.IsInf(sigma, 0) {
		return contracts.NoteEvent{}, fmt.Errorf("%w: sigma=%v", ErrInvalidSigma, sigma)
	}

	dist := distuv.Normal{
		Mu:    float64(e.Velocity),
		Sigma: sigma,
		Src:   r.src,
	}

	v := dist.Rand()
	if floor := r.store.Floor(); v < floor {
		v = floor
	}
	if v > maxVelocity {
		v = maxVelocity
	}

	// v is non-negative here, so the conversion truncates toward zero like floor().
	e.Velocity = byte(v)
	return e, nil
}
