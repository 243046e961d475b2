// Package engine implements the per-cycle controller of the effect: event
// intake, identity audio copy, and the single end-of-cycle event flush.
package engine

import (
	"fmt"

	"github.com/goudreinette/vary-velocity/internal/params"
	"github.com/goudreinette/vary-velocity/internal/random"
	"github.com/goudreinette/vary-velocity/sdk/contracts"
)

// Engine is one plugin instance. The host drives it once per audio cycle:
// ProcessEvents with the cycle's inbound batch, then ProcessAudio, which
// copies audio through unchanged and flushes the transformed events.
//
// All processing methods run to completion on the host's audio thread and
// never block, perform I/O, or allocate once the pending queue has reached
// its working capacity. Only the parameter store is shared with other threads.
type Engine struct {
	logger     contracts.Logger
	variant    contracts.VariantSpec
	store      *params.Store
	randomizer *random.Randomizer
	sink       contracts.EventSink
	pending    []contracts.NoteEvent
	sampleRate float64
}

// New creates a plugin instance for the given variant. The options must
// already have defaults applied; sink and logger are assumed non-nil.
func New(variant contracts.VariantSpec, opts *contracts.PluginOptions) *Engine {
	store := params.NewStore(variant)
	return &Engine{
		logger:     opts.Logger,
		variant:    variant,
		store:      store,
		randomizer: random.NewRandomizer(store, opts.Random),
		sink:       opts.Sink,
		pending:    make([]contracts.NoteEvent, 0, opts.QueueCapacity),
	}
}

// Info returns the host-facing identity descriptor of this variant.
func (e *Engine) Info() contracts.Info {
	return e.variant.Info
}

// CanDo answers the host's capability queries. The effect sends and receives
// events and MIDI events; everything else is unsupported.
func (e *Engine) CanDo(capability contracts.Capability) contracts.Supported {
	switch capability {
	case contracts.SendEvents, contracts.SendMIDIEvent,
		contracts.ReceiveEvents, contracts.ReceiveMIDIEvent:
		return contracts.Yes
	default:
		return contracts.No
	}
}

// SetSampleRate caches the host sample rate. Called at most once before
// steady-state processing begins; the processing path treats it as read-only.
func (e *Engine) SetSampleRate(rate float64) {
	e.sampleRate = rate
	e.logger.Info("sample rate set", e.logger.Field().Float64("rate", rate))
}

// SampleRate returns the cached host sample rate.
func (e *Engine) SampleRate() float64 {
	return e.sampleRate
}

// ProcessEvents transforms the cycle's inbound note events in arrival order
// and appends them to the pending queue. Non-note events are dropped from the
// outbound stream. A transform error is a fatal configuration violation and
// aborts the cycle.
func (e *Engine) ProcessEvents(events []contracts.NoteEvent) error {
	for _, ev := range events {
		if !ev.IsNote() {
			continue
		}
		out, err := e.randomizer.Transform(ev)
		if err != nil {
			e.logger.Error("velocity transform failed", e.logger.Field().Error("error", err))
			return fmt.Errorf("processing inbound events: %w", err)
		}
		e.pending = append(e.pending, out)
	}
	return nil
}

// ProcessAudio copies every input sample to the corresponding output sample
// unchanged, then flushes the pending events to the host in one call. Channel
// and frame counts are dictated by the host and must match between in and out.
func (e *Engine) ProcessAudio(in, out [][]float32) error {
	for ch := range in {
		copy(out[ch], in[ch])
	}
	e.flush()
	return nil
}

// flush hands the whole pending queue to the host sink, then clears it. The
// flush happens every cycle, empty queue included; the backing array is kept.
func (e *Engine) flush() {
	e.sink.SendEvents(e.pending)
	e.pending = e.pending[:0]
}

// Parameters returns the shared parameter handle. The host's control surface
// holds this concurrently with the audio thread.
func (e *Engine) Parameters() contracts.ParameterProvider {
	return e.store
}
