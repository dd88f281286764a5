package trace

import "github.com/df07/go-spectral-raytracer/pkg/material"

// Options bounds and tunes a trace
type Options struct {
	// Frames deeper than MaxLevel die
	MaxLevel int
	// Frames with amplitude below MinAmplitude die
	MinAmplitude float64
	// Level-0 diffuse and metal branches are split into this many rays
	FirstLevelSplit int
	// Width of the metal reflection lobe
	MetalRoughness float64
	// Record enables recorders and detectors. Image passes leave it off.
	Record bool
}

// DefaultOptions returns the kernel defaults
func DefaultOptions() Options {
	return Options{
		MaxLevel:        100,
		MinAmplitude:    1e-6,
		FirstLevelSplit: 1,
		MetalRoughness:  0.15,
	}
}

func (o Options) scatter() material.ScatterOptions {
	return material.ScatterOptions{
		FirstLevelSplit: o.FirstLevelSplit,
		MetalRoughness:  o.MetalRoughness,
	}
}
