package varyvelocity

import (
	"github.com/goudreinette/vary-velocity/internal/logger"
	"github.com/goudreinette/vary-velocity/sdk/contracts"
)

// defaultQueueCapacity is the pre-sized pending queue length. Enough for any
// realistic per-cycle note burst; the queue still grows if a host exceeds it.
const defaultQueueCapacity = 256

// discardSink drops flushed events. Used when no sink is configured, so a
// plugin can be exercised before its host wiring exists.
type discardSink struct{}

func (discardSink) SendEvents([]contracts.NoteEvent) {}

// applyDefaultOptions sets default values for PluginOptions if not explicitly provided.
//
// opts ...contracts.Option: A variadic list of option functions that can modify PluginOptions.
//
// Returns:
//   - contracts.PluginOptions: A structure containing the finalized options with defaults applied.
func applyDefaultOptions(opts ...contracts.Option) contracts.PluginOptions {
	options := &contracts.PluginOptions{}
	for _, opt := range opts {
		opt(options)
	}

	// Set defaults if options are not provided
	if options.Logger == nil {
		options.Logger = logger.NewZapLogger()
	}
	if options.LogLevel == 0 {
		options.LogLevel = contracts.InfoLevel
	}
	if options.Sink == nil {
		options.Sink = discardSink{}
	}
	if options.QueueCapacity <= 0 {
		options.QueueCapacity = defaultQueueCapacity
	}

	options.Logger.SetLevel(options.LogLevel)
	return *options
}
