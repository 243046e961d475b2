// Package capture creates platform MIDI event sources for driving the effect
// outside a plugin host, such as the live preview runner.
package capture

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/goudreinette/vary-velocity/internal/capture/capturedarwin"
	"github.com/goudreinette/vary-velocity/internal/capture/capturewindows"
	"github.com/goudreinette/vary-velocity/internal/logger"
	"github.com/goudreinette/vary-velocity/sdk/contracts"
)

// ErrUnsupportedOS is returned when the operating system has no MIDI capture backend.
var ErrUnsupportedOS = errors.New("unsupported operating system")

// sourceInitializers maps OS names to corresponding event source initializers.
var sourceInitializers = map[string]func(*contracts.CaptureOptions) (contracts.EventSource, error){
	"darwin":  capturedarwin.NewEventSource,  // macOS (Darwin) CoreMIDI backend.
	"windows": capturewindows.NewEventSource, // Windows winmm backend.
}

// NewEventSource creates a MIDI event source for the current operating system.
// It supports macOS (Darwin) and Windows, returning ErrUnsupportedOS otherwise.
//
// opts ...contracts.CaptureOption: A variadic list of option functions to customize the source.
//
// Returns:
//   - contracts.EventSource: An instance of the platform event source.
//   - error: An error if the operating system is unsupported or if initialization fails.
func NewEventSource(opts ...contracts.CaptureOption) (contracts.EventSource, error) {
	options := applyDefaultOptions(opts...)

	if initializer, exists := sourceInitializers[runtime.GOOS]; exists {
		return initializer(&options)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedOS, runtime.GOOS)
}

// applyDefaultOptions sets default values for CaptureOptions if not explicitly provided.
func applyDefaultOptions(opts ...contracts.CaptureOption) contracts.CaptureOptions {
	options := &contracts.CaptureOptions{}
	for _, opt := range opts {
		opt(options)
	}

	if options.Logger == nil {
		options.Logger = logger.NewZapLogger()
	}
	if options.LogLevel == 0 {
		options.LogLevel = contracts.InfoLevel
	}
	if options.ClientName == "" {
		options.ClientName = "VaryVelocity Preview"
	}

	options.Logger.SetLevel(options.LogLevel)
	return *options
}
