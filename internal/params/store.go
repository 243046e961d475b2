package params

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/goudreinette/vary-velocity/sdk/contracts"
)

// Parameter slot indices exposed to the host automation layer.
const (
	// IndexVariance is the velocity-variance control, present in every variant.
	IndexVariance = 0
	// IndexMinimum is the minimum-velocity floor, present only when the
	// variant declares a floor parameter.
	IndexMinimum = 1
)

// varianceEpsilon keeps the stored variance strictly positive so the Gaussian
// model never degenerates to a zero-width distribution.
const varianceEpsilon = 1e-10

// atomicFloat is a lock-free float64 cell shared between the audio thread and
// the host UI thread. Neither side may block, so the value is stored as raw
// IEEE-754 bits in a single atomic word.
type atomicFloat struct {
	bits atomic.Uint64
}

func (f *atomicFloat) load() float64 {
	return math.Float64frombits(f.bits.Load())
}

func (f *atomicFloat) store(v float64) {
	f.bits.Store(math.Float64bits(v))
}

// Store holds the normalized control values of one plugin instance. The audio
// thread reads it every cycle while the host UI writes concurrently; a cloned
// handle is handed to the host's control surface and both share this storage.
//
// Values are kept normalized in [0,1] and scaled only at the point of use
// (sigma computation, display text), for both variants.
type Store struct {
	variant  contracts.VariantSpec
	variance atomicFloat
	minimum  atomicFloat
}

// NewStore creates a parameter store for the given variant. All controls
// start at zero, with the variance slot already clamped to its epsilon.
func NewStore(variant contracts.VariantSpec) *Store {
	s := &Store{variant: variant}
	s.variance.store(varianceEpsilon)
	return s
}

// Count returns the number of parameters the variant exposes.
func (s *Store) Count() int {
	return s.variant.Info.Parameters
}

// Get returns the normalized value of the parameter, or 0.0 for an unknown index.
func (s *Store) Get(index int) float64 {
	switch index {
	case IndexVariance:
		return s.variance.load()
	case IndexMinimum:
		if s.variant.HasMinimumFloor {
			return s.minimum.load()
		}
	}
	return 0.0
}

// Set stores a normalized value. The variance slot is clamped to stay strictly
// positive; the minimum slot stores the raw value. Unknown indices are a no-op.
func (s *Store) Set(index int, value float64) {
	switch index {
	case IndexVariance:
		s.variance.store(math.Max(value, varianceEpsilon))
	case IndexMinimum:
		if s.variant.HasMinimumFloor {
			s.minimum.store(value)
		}
	}
}

// Text renders the effective (scaled) control value for display under the
// host's knob. Variance uses one decimal place.
func (s *Store) Text(index int) string {
	switch index {
	case IndexVariance:
		return fmt.Sprintf("%.1f", s.variance.load()*s.variant.MaxVariance)
	case IndexMinimum:
		if s.variant.HasMinimumFloor {
			return fmt.Sprintf("%.0f", s.minimum.load()*s.variant.MaxMinimum)
		}
	}
	return ""
}

// Name returns the fixed display label of the parameter.
func (s *Store) Name(index int) string {
	switch index {
	case IndexVariance:
		return "Velocity variance"
	case IndexMinimum:
		if s.variant.HasMinimumFloor {
			return "Minimum velocity"
		}
	}
	return ""
}

// Sigma returns the effective standard deviation in velocity units: the
// normalized variance scaled by the variant's constants. The store's clamp
// guarantees the result is strictly positive.
func (s *Store) Sigma() float64 {
	return s.variance.load() * s.variant.MaxVariance * s.variant.SigmaScale
}

// Floor returns the minimum outbound velocity in velocity units. Variants
// without a floor parameter always return 0.
func (s *Store) Floor() float64 {
	if !s.variant.HasMinimumFloor {
		return 0
	}
	return s.minimum.load() * s.variant.MaxMinimum
}
