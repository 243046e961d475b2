// Package varyvelocity assembles plugin instances of the velocity-randomizing
// effect for embedding in an audio host shell.
package varyvelocity

import (
	"github.com/goudreinette/vary-velocity/internal/engine"
	"github.com/goudreinette/vary-velocity/sdk/contracts"
)

// NewPlugin creates a plugin instance of the given variant with the specified options.
// It applies default options and initializes the processing engine.
//
// variant contracts.VariantSpec: The variant configuration, typically Full() or Lite().
// opts ...contracts.Option: A variadic list of option functions to customize the instance.
//
// Returns:
//   - contracts.Plugin: The plugin instance, ready to be driven by a host cycle.
func NewPlugin(variant contracts.VariantSpec, opts ...contracts.Option) contracts.Plugin {
	options := applyDefaultOptions(opts...)

	options.Logger.Info("plugin instance created",
		options.Logger.Field().String("name", variant.Info.Name),
		options.Logger.Field().Int("parameters", variant.Info.Parameters),
	)

	return engine.New(variant, &options)
}
