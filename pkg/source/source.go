package source

import (
	"fmt"
	"math/rand/v2"

	"github.com/df07/go-spectral-raytracer/pkg/core"
)

// Source generates independent rays. Weight is its relative share of a
// campaign's emissions.
type Source interface {
	Generate(random *rand.Rand) core.Ray
	Weight() float64
}

// Composite combines a position sampler, a direction sampler and a
// spectrum. Rays start with amplitude 1 and a random polarization. When a
// sampler cannot produce a sample the ray carries zero amplitude.
type Composite struct {
	weight    float64
	spectrum  Spectrum
	position  PositionSampler
	direction DirectionSampler
}

// NewComposite validates and assembles a source
func NewComposite(weight float64, spectrum Spectrum, position PositionSampler, direction DirectionSampler) (*Composite, error) {
	if spectrum == nil || position == nil || direction == nil {
		return nil, ErrMissingSampler
	}
	if weight < 0 {
		return nil, fmt.Errorf("composite source weight %g: %w", weight, ErrNegativeWeight)
	}
	return &Composite{weight: weight, spectrum: spectrum, position: position, direction: direction}, nil
}

func (c *Composite) Weight() float64 { return c.weight }

func (c *Composite) Generate(random *rand.Rand) core.Ray {
	o, n, ok := c.position.Sample(random)
	var d core.Vec3
	if ok {
		d, ok = c.direction.Sample(random, o, n)
	}
	if !ok {
		d = n
	}
	ray := core.Ray{
		Origin:       o,
		Direction:    d,
		Polarization: core.RandomNormal(random, d),
		Amplitude:    1,
		Wavelength:   c.spectrum.Sample(random),
	}
	if !ok {
		ray.Amplitude = 0
	}
	return ray
}

// SingleRay emits the same ray every time
type SingleRay struct {
	Ray   core.Ray
	Share float64
}

func (s SingleRay) Generate(*rand.Rand) core.Ray { return s.Ray }

func (s SingleRay) Weight() float64 {
	if s.Share == 0 {
		return 1
	}
	return s.Share
}
