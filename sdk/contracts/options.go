package contracts

import "golang.org/x/exp/rand"

// PluginOptions defines the configuration options for a plugin instance.
type PluginOptions struct {
	Logger        Logger      // Logger for lifecycle events and errors.
	LogLevel      LogLevel    // Level of logging to use.
	Random        rand.Source // Random source for the velocity model; nil uses the process-wide source.
	Sink          EventSink   // Destination for the per-cycle event flush.
	QueueCapacity int         // Pre-sized capacity of the pending event queue.
}

// Option is a function that modifies PluginOptions.
type Option func(*PluginOptions)

// WithLogger sets the logger for the plugin instance.
func WithLogger(l Logger) Option {
	return func(opts *PluginOptions) {
		opts.Logger = l
	}
}

// WithLogLevel sets the logging level for the plugin instance.
func WithLogLevel(level LogLevel) Option {
	return func(opts *PluginOptions) {
		opts.LogLevel = level
	}
}

// WithRandomSource sets the random source used for velocity sampling.
// Tests substitute a seeded source here to make draws deterministic.
func WithRandomSource(src rand.Source) Option {
	return func(opts *PluginOptions) {
		opts.Random = src
	}
}

// WithEventSink sets the destination for the per-cycle event flush.
func WithEventSink(sink EventSink) Option {
	return func(opts *PluginOptions) {
		opts.Sink = sink
	}
}

// WithQueueCapacity sets the pre-sized capacity of the pending event queue.
// The queue backing storage is reused across cycles.
func WithQueueCapacity(n int) Option {
	return func(opts *PluginOptions) {
		opts.QueueCapacity = n
	}
}
