package varyvelocity

import "github.com/goudreinette/vary-velocity/sdk/contracts"

// Full returns the two-parameter variant: variance scaling up to a standard
// deviation of 25 velocity units plus a minimum-velocity floor.
func Full() contracts.VariantSpec {
	return contracts.VariantSpec{
		Info: contracts.Info{
			Name:       "VaryVelocity",
			Vendor:     "Rein van der Woerd",
			UniqueID:   127844320,
			Version:    1,
			Inputs:     2,
			Outputs:    2,
			Parameters: 2,
			Category:   contracts.CategoryEffect,
		},
		MaxVariance:     25.0,
		SigmaScale:      1.0,
		MaxMinimum:      127.0,
		HasMinimumFloor: true,
	}
}

// Lite returns the single-parameter variant: variance only, scaling up to 5
// velocity units with an extra factor of 3 applied before sampling, and a
// fixed floor of 0.
func Lite() contracts.VariantSpec {
	return contracts.VariantSpec{
		Info: contracts.Info{
			Name:       "VaryVelocity Lite",
			Vendor:     "Rein van der Woerd",
			UniqueID:   127844321,
			Version:    1,
			Inputs:     2,
			Outputs:    2,
			Parameters: 1,
			Category:   contracts.CategoryEffect,
		},
		MaxVariance: 5.0,
		SigmaScale:  3.0,
		MaxMinimum:  0,
	}
}
