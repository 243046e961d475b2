package varyvelocity

import (
	"testing"

	"github.com/goudreinette/vary-velocity/sdk/contracts"
)

func TestFullVariant(t *testing.T) {
	v := Full()

	if v.Info.Name != "VaryVelocity" {
		t.Errorf("name = %q", v.Info.Name)
	}
	if v.Info.UniqueID != 127844320 {
		t.Errorf("unique ID = %d, want 127844320", v.Info.UniqueID)
	}
	if v.Info.Parameters != 2 {
		t.Errorf("parameters = %d, want 2", v.Info.Parameters)
	}
	if v.Info.Inputs != 2 || v.Info.Outputs != 2 {
		t.Errorf("channels = %d/%d, want 2/2", v.Info.Inputs, v.Info.Outputs)
	}
	if v.Info.Category != contracts.CategoryEffect {
		t.Errorf("category = %v, want CategoryEffect", v.Info.Category)
	}
	if v.MaxVariance != 25.0 || v.SigmaScale != 1.0 || v.MaxMinimum != 127.0 {
		t.Errorf("scaling constants = %v/%v/%v", v.MaxVariance, v.SigmaScale, v.MaxMinimum)
	}
	if !v.HasMinimumFloor {
		t.Error("full variant must expose the minimum-velocity floor")
	}
}

func TestLiteVariant(t *testing.T) {
	v := Lite()

	if v.Info.Parameters != 1 {
		t.Errorf("parameters = %d, want 1", v.Info.Parameters)
	}
	if v.MaxVariance != 5.0 || v.SigmaScale != 3.0 {
		t.Errorf("scaling constants = %v/%v, want 5/3", v.MaxVariance, v.SigmaScale)
	}
	if v.HasMinimumFloor {
		t.Error("lite variant must not expose a minimum-velocity floor")
	}
	if v.Info.UniqueID == Full().Info.UniqueID {
		t.Error("variants must not share a unique ID")
	}
}
