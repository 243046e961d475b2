package contracts

// MIDIEventFilter specifies which MIDI commands an event source captures.
// The filter matches on the command nibble of the status byte.
type MIDIEventFilter struct {
	Commands []MIDICommand // List of MIDI commands to let through.
}

// Allows reports whether the given status byte passes the filter.
func (f *MIDIEventFilter) Allows(status byte) bool {
	for _, command := range f.Commands {
		if MIDICommand(status&0xF0) == command {
			return true
		}
	}
	return false
}

// CaptureOptions defines the configuration options for an event source.
type CaptureOptions struct {
	Logger     Logger           // Logger for capture events and errors.
	LogLevel   LogLevel         // Level of logging to use.
	Filter     *MIDIEventFilter // Optional filter for MIDI events to capture.
	ClientName string           // Name the source registers with the OS MIDI service.
}

// CaptureOption is a function that modifies CaptureOptions.
type CaptureOption func(*CaptureOptions)

// WithCaptureLogger sets the logger for the event source.
func WithCaptureLogger(l Logger) CaptureOption {
	return func(opts *CaptureOptions) {
		opts.Logger = l
	}
}

// WithCaptureLogLevel sets the logging level for the event source.
func WithCaptureLogLevel(level LogLevel) CaptureOption {
	return func(opts *CaptureOptions) {
		opts.LogLevel = level
	}
}

// WithEventFilter sets the MIDI event filter for the event source.
func WithEventFilter(filter MIDIEventFilter) CaptureOption {
	return func(opts *CaptureOptions) {
		opts.Filter = &filter
	}
}

// WithClientName sets the name the source registers with the OS MIDI service.
func WithClientName(name string) CaptureOption {
	return func(opts *CaptureOptions) {
		opts.ClientName = name
	}
}
