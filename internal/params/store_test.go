package params

import (
	"sync"
	"testing"

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

func liteVariant() contracts.VariantSpec {
	return contracts.VariantSpec{
		Info:        contracts.Info{Parameters: 1},
		MaxVariance: 5.0,
		SigmaScale:  3.0,
	}
}

func TestVarianceNeverStoredAsZero(t *testing.T) {
	s := NewStore(fullVariant())

	s.Set(IndexVariance, 0)
	got := s.Get(IndexVariance)
	if got <= 0 {
		t.Fatalf("variance after Set(0) = %v, want strictly positive", got)
	}
	if got > 1e-9 {
		t.Errorf("variance after Set(0) = %v, want epsilon-sized", got)
	}

	// A fresh store must already satisfy the invariant.
	if v := NewStore(fullVariant()).Get(IndexVariance); v <= 0 {
		t.Errorf("initial variance = %v, want strictly positive", v)
	}
}

func TestMinimumStoredRaw(t *testing.T) {
	s := NewStore(fullVariant())
	s.Set(IndexMinimum, 0)
	if got := s.Get(IndexMinimum); got != 0 {
		t.Errorf("minimum after Set(0) = %v, want exactly 0", got)
	}
	s.Set(IndexMinimum, 0.5)
	if got := s.Get(IndexMinimum); got != 0.5 {
		t.Errorf("minimum after Set(0.5) = %v, want 0.5", got)
	}
}

func TestUnknownParameterIndex(t *testing.T) {
	s := NewStore(fullVariant())
	s.Set(IndexVariance, 0.4)

	s.Set(5, 0.9) // must be a no-op
	if got := s.Get(5); got != 0.0 {
		t.Errorf("Get(5) = %v, want 0.0", got)
	}
	if got := s.Name(5); got != "" {
		t.Errorf("Name(5) = %q, want empty", got)
	}
	if got := s.Text(5); got != "" {
		t.Errorf("Text(5) = %q, want empty", got)
	}
	if got := s.Get(IndexVariance); got != 0.4 {
		t.Errorf("variance disturbed by unknown-index write: %v", got)
	}
}

func TestMinimumAbsentInLiteVariant(t *testing.T) {
	s := NewStore(liteVariant())

	s.Set(IndexMinimum, 0.7)
	if got := s.Get(IndexMinimum); got != 0.0 {
		t.Errorf("Get(minimum) on lite variant = %v, want 0.0", got)
	}
	if got := s.Name(IndexMinimum); got != "" {
		t.Errorf("Name(minimum) on lite variant = %q, want empty", got)
	}
	if got := s.Floor(); got != 0 {
		t.Errorf("Floor() on lite variant = %v, want 0", got)
	}
	if got := s.Count(); got != 1 {
		t.Errorf("Count() = %d, want 1", got)
	}
}

func TestDisplayText(t *testing.T) {
	s := NewStore(fullVariant())
	s.Set(IndexVariance, 0.5)
	s.Set(IndexMinimum, 0.5)

	if got := s.Text(IndexVariance); got != "12.5" {
		t.Errorf("variance text = %q, want %q", got, "12.5")
	}
	if got := s.Text(IndexMinimum); got != "64" {
		t.Errorf("minimum text = %q, want %q", got, "64")
	}

	// Rendering is a pure read; repeated calls must not drift the value.
	for i := 0; i < 10; i++ {
		if got := s.Text(IndexVariance); got != "12.5" {
			t.Fatalf("variance text drifted to %q after %d reads", got, i+1)
		}
	}

	if got := s.Name(IndexVariance); got != "Velocity variance" {
		t.Errorf("variance name = %q", got)
	}
	if got := s.Name(IndexMinimum); got != "Minimum velocity" {
		t.Errorf("minimum name = %q", got)
	}
}

func TestLiteTextScalesByMaxVarianceOnly(t *testing.T) {
	s := NewStore(liteVariant())
	s.Set(IndexVariance, 1.0)
	// Display shows the control value (max 5.0); the sampling factor of 3 is
	// applied only when computing sigma.
	if got := s.Text(IndexVariance); got != "5.0" {
		t.Errorf("lite variance text = %q, want %q", got, "5.0")
	}
	if got := s.Sigma(); got != 15.0 {
		t.Errorf("lite sigma = %v, want 15.0", got)
	}
}

func TestSigmaAndFloorScaling(t *testing.T) {
	s := NewStore(fullVariant())
	s.Set(IndexVariance, 1.0)
	s.Set(IndexMinimum, 0.5)

	if got := s.Sigma(); got != 25.0 {
		t.Errorf("Sigma() = %v, want 25.0", got)
	}
	if got := s.Floor(); got != 63.5 {
		t.Errorf("Floor() = %v, want 63.5", got)
	}
}

func TestConcurrentReadWrite(t *testing.T) {
	s := NewStore(fullVariant())

	var wg sync.WaitGroup
	stop := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; ; i++ {
			select {
			case <-stop:
				return
			default:
			}
			s.Set(IndexVariance, float64(i%100)/100)
			s.Set(IndexMinimum, float64(i%100)/100)
		}
	}()

	for i := 0; i < 10000; i++ {
		if v := s.Get(IndexVariance); v < 0 || v > 1 {
			t.Errorf("torn read: variance = %v", v)
			break
		}
		_ = s.Sigma()
		_ = s.Floor()
		_ = s.Text(IndexVariance)
	}

	close(stop)
	wg.Wait()
}
