package contracts

// ParameterProvider is the host automation surface over the plugin's parameters.
// Indices run 0..Count()-1 with index 0 always the variance control. All methods
// are safe to call from a UI/automation thread while the audio thread reads the
// same values; none of them block.
//
// Unknown indices follow the permissive host-polling contract: Get returns 0.0,
// Set is a no-op, Text and Name return empty strings.
type ParameterProvider interface {
	// Count returns the number of exposed parameters.
	Count() int
	// Get returns the normalized value of the parameter in [0,1].
	Get(index int) float64
	// Set stores a normalized value. The variance slot is clamped to stay
	// strictly positive so the Gaussian model never degenerates.
	Set(index int, value float64)
	// Text returns a short human-readable rendering of the effective (scaled)
	// control value.
	Text(index int) string
	// Name returns the fixed display label of the parameter.
	Name(index int) string
}
