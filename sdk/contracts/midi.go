package contracts

// MIDICommand represents the command nibble of a MIDI status byte.
type MIDICommand byte

const (
	// NoteOn is the MIDI command for a Note On event (0x90).
	NoteOn MIDICommand = 0x90
	// NoteOff is the MIDI command for a Note Off event (0x80).
	NoteOff MIDICommand = 0x80
)

// NoteEvent represents one MIDI note event inside a processing cycle.
// Everything except Velocity passes through the effect unchanged.
type NoteEvent struct {
	Timestamp   uint64 // Timestamp indicates the time the event occurred, in nanoseconds.
	DeltaFrames int32  // DeltaFrames is the event offset in samples from the start of the cycle.
	Status      byte   // Status holds the command and channel nibbles (e.g., 0x93 = Note On, channel 4).
	Note        byte   // Note represents the MIDI note number (0-127).
	Velocity    byte   // Velocity indicates the strength of the note being played (0-127).
}

// Command returns the command nibble of the event's status byte.
func (e NoteEvent) Command() MIDICommand {
	return MIDICommand(e.Status & 0xF0)
}

// Channel returns the zero-based MIDI channel of the event.
func (e NoteEvent) Channel() byte {
	return e.Status & 0x0F
}

// IsNote reports whether the event is a Note On or Note Off message.
// Only note events are re-emitted by the effect; everything else is dropped
// from the outbound MIDI stream.
func (e NoteEvent) IsNote() bool {
	cmd := e.Command()
	return cmd == NoteOn || cmd == NoteOff
}

// EventSource defines an interface for components that capture inbound MIDI events.
type EventSource interface {
	Stop() error                              // Stops the source and releases resources.
	ListDevices() ([]DeviceInfo, error)       // Lists all available MIDI input devices.
	SelectDevice(deviceID int) error          // Selects a MIDI device by its ID for capture.
	StartCapture(eventChannel chan NoteEvent) // Starts capturing MIDI events into the specified channel.
}

// EventSink receives the batch of transformed events flushed at the end of a
// processing cycle. The host implementation must preserve ordering within the batch.
type EventSink interface {
	SendEvents(events []NoteEvent)
}
