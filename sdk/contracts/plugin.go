package contracts

// Category classifies the plugin for the host's browser.
type Category int

const (
	// CategoryUnknown is the zero value; hosts treat it as uncategorized.
	CategoryUnknown Category = iota
	// CategoryEffect marks the plugin as an audio/MIDI effect.
	CategoryEffect
)

// Capability enumerates the host capability queries the plugin answers.
type Capability int

const (
	// SendEvents asks whether the plugin emits events to the host.
	SendEvents Capability = iota
	// SendMIDIEvent asks whether the plugin emits MIDI events specifically.
	SendMIDIEvent
	// ReceiveEvents asks whether the plugin accepts inbound events.
	ReceiveEvents
	// ReceiveMIDIEvent asks whether the plugin accepts inbound MIDI events.
	ReceiveMIDIEvent
	// Offline asks whether the plugin supports offline rendering.
	Offline
)

// Supported is the plugin's answer to a capability query.
type Supported int

const (
	// No indicates the capability is not supported.
	No Supported = iota
	// Yes indicates the capability is supported.
	Yes
	// Maybe indicates support cannot be determined statically.
	Maybe
)

// Info is the identity and capability descriptor the host reads once at load time.
type Info struct {
	Name       string   // Plugin display name.
	Vendor     string   // Vendor display name.
	UniqueID   int32    // Host-unique plugin identity.
	Version    int32    // Plugin version number.
	Inputs     int      // Number of audio input channels.
	Outputs    int      // Number of audio output channels.
	Parameters int      // Number of automatable parameters.
	Category   Category // Host browser category.
}

// VariantSpec is the construction-time configuration that distinguishes the
// shipped plugin variants. The engine itself is variant-agnostic; everything
// that differs between variants lives here.
type VariantSpec struct {
	Info            Info    // Host-facing descriptor for this variant.
	MaxVariance     float64 // Scale constant mapping normalized variance to velocity units.
	SigmaScale      float64 // Extra factor applied to the scaled variance before sampling.
	MaxMinimum      float64 // Scale constant mapping the normalized floor to velocity units.
	HasMinimumFloor bool    // Whether the variant exposes the minimum-velocity parameter.
}

// Plugin is the processing surface the host shell drives once per cycle.
// ProcessEvents runs first with the cycle's inbound batch, then ProcessAudio
// copies audio and flushes the transformed events to the configured sink.
type Plugin interface {
	// Info returns the host-facing identity descriptor.
	Info() Info
	// CanDo answers a host capability query.
	CanDo(capability Capability) Supported
	// SetSampleRate caches the host sample rate. Called at most once before
	// steady-state processing begins.
	SetSampleRate(rate float64)
	// ProcessEvents transforms the cycle's inbound note events and buffers the
	// results until the flush at the end of ProcessAudio.
	ProcessEvents(events []NoteEvent) error
	// ProcessAudio copies input to output unchanged and flushes the buffered
	// events to the host exactly once.
	ProcessAudio(in, out [][]float32) error
	// Parameters returns the shared parameter handle exposed to the host's
	// control surface. Safe for concurrent use with the processing thread.
	Parameters() ParameterProvider
}
