package varyvelocity

import (
	"testing"

	"github.com/goudreinette/vary-velocity/internal/logger"
	"github.com/goudreinette/vary-velocity/sdk/contracts"
)

func TestNewPluginDefaults(t *testing.T) {
	p := NewPlugin(Full(), contracts.WithLogger(logger.NewNopLogger()))

	if p == nil {
		t.Fatal("NewPlugin returned nil")
	}
	if got := p.Parameters().Count(); got != 2 {
		t.Errorf("parameter count = %d, want 2", got)
	}
	if got := p.Info().Name; got != "VaryVelocity" {
		t.Errorf("name = %q", got)
	}

	// With the default discard sink a full cycle must run cleanly.
	if err := p.ProcessEvents([]contracts.NoteEvent{{Status: 0x90, Note: 60, Velocity: 100}}); err != nil {
		t.Fatalf("ProcessEvents: %v", err)
	}
	if err := p.ProcessAudio(nil, nil); err != nil {
		t.Fatalf("ProcessAudio: %v", err)
	}
}

func TestNewPluginLite(t *testing.T) {
	p := NewPlugin(Lite(), contracts.WithLogger(logger.NewNopLogger()))

	if got := p.Parameters().Count(); got != 1 {
		t.Errorf("parameter count = %d, want 1", got)
	}
	if got := p.Parameters().Name(1); got != "" {
		t.Errorf("Name(1) = %q, want empty", got)
	}
}
