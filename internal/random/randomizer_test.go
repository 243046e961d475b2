package random

import (
	"errors"
	"math"
	"testing"

	"golang.org/x/exp/rand"

	"github.com/goudreinette/vary-velocity/internal/params"
	"github.com/goudreinette/vary-velocity/sdk/contracts"
)

func fullVariant() contracts.VariantSpec {
	return contracts.VariantSpec{
		Info:            contracts.Info{Parameters: 2},
		MaxVariance:     25.0,
		SigmaScale:      1.0,
		MaxMinimum:      127.0,
		HasMinimumFloor: true,
	}
}

func newTestRandomizer(t *testing.T) (*Randomizer, *params.Store) {
	t.Helper()
	store := params.NewStore(fullVariant())
	return NewRandomizer(store, rand.NewSource(1)), store
}

func TestTransformPreservesEventFields(t *testing.T) {
	r, store := newTestRandomizer(t)
	store.Set(params.IndexVariance, 1.0)

	in := contracts.NoteEvent{
		Timestamp:   42,
		DeltaFrames: 17,
		Status:      0x93, // Note On, channel 4
		Note:        60,
		Velocity:    100,
	}

	for i := 0; i < 1000; i++ {
		out, err := r.Transform(in)
		if err != nil {
			t.Fatalf("Transform: %v", err)
		}
		if out.Status != in.Status || out.Note != in.Note ||
			out.Timestamp != in.Timestamp || out.DeltaFrames != in.DeltaFrames {
			t.Fatalf("Transform altered non-velocity fields: in=%+v out=%+v", in, out)
		}
	}
}

func TestTransformStaysInRange(t *testing.T) {
	r, store := newTestRandomizer(t)
	store.Set(params.IndexVariance, 1.0) // sigma = 25

	t.Run("NoFloor", func(t *testing.T) {
		in := contracts.NoteEvent{Status: 0x90, Note: 60, Velocity: 100}
		for i := 0; i < 10000; i++ {
			out, err := r.Transform(in)
			if err != nil {
				t.Fatalf("Transform: %v", err)
			}
			if out.Velocity > 127 {
				t.Fatalf("velocity %d out of range", out.Velocity)
			}
		}
	})

	t.Run("WithFloor", func(t *testing.T) {
		store.Set(params.IndexMinimum, 0.5) // floor = 63.5
		defer store.Set(params.IndexMinimum, 0)

		in := contracts.NoteEvent{Status: 0x90, Note: 60, Velocity: 64}
		for i := 0; i < 10000; i++ {
			out, err := r.Transform(in)
			if err != nil {
				t.Fatalf("Transform: %v", err)
			}
			if out.Velocity < 63 || out.Velocity > 127 {
				t.Fatalf("velocity %d outside [63,127]", out.Velocity)
			}
		}
	})
}

// With the inbound velocity well clear of both clamp bounds (2.5 sigma), the
// sample mean over 10000 draws must land within a couple of velocity units of
// the inbound value.
func TestTransformMeanTracksInput(t *testing.T) {
	r, store := newTestRandomizer(t)
	store.Set(params.IndexVariance, 1.0) // sigma = 25

	in := contracts.NoteEvent{Status: 0x90, Note: 60, Velocity: 64}
	const trials = 10000

	var sum float64
	for i := 0; i < trials; i++ {
		out, err := r.Transform(in)
		if err != nil {
			t.Fatalf("Transform: %v", err)
		}
		sum += float64(out.Velocity)
	}

	mean := sum / trials
	if math.Abs(mean-64) > 2 {
		t.Errorf("sample mean = %v, want within 64 +/- 2", mean)
	}
}

func TestTinyVarianceKeepsVelocityTight(t *testing.T) {
	r, store := newTestRandomizer(t)
	store.Set(params.IndexVariance, 0) // clamped to epsilon, sigma ~ 2.5e-9

	in := contracts.NoteEvent{Status: 0x90, Note: 60, Velocity: 100}
	for i := 0; i < 1000; i++ {
		out, err := r.Transform(in)
		if err != nil {
			t.Fatalf("Transform: %v", err)
		}
		// Draws hug 100.0; truncation toward zero maps them to 99 or 100.
		if out.Velocity != 99 && out.Velocity != 100 {
			t.Fatalf("velocity = %d, want 99 or 100", out.Velocity)
		}
	}
}

func TestInvalidSigmaIsFatal(t *testing.T) {
	// A variant with a zero scale constant defeats the store's epsilon clamp
	// and must surface the configuration violation instead of emitting garbage.
	store := params.NewStore(contracts.VariantSpec{
		Info: contracts.Info{Parameters: 1},
	})
	r := NewRandomizer(store, rand.NewSource(1))

	_, err := r.Transform(contracts.NoteEvent{Status: 0x90, Note: 60, Velocity: 100})
	if !errors.Is(err, ErrInvalidSigma) {
		t.Fatalf("err = %v, want ErrInvalidSigma", err)
	}
}
