package source

import (
	"math"
	"math/rand/v2"

	"github.com/df07/go-spectral-raytracer/pkg/core"
)

// DirectionSampler draws emission directions at a point with surface
// normal n. Accept is the matching rejection test, used when another
// sampler proposes the direction.
type DirectionSampler interface {
	Sample(random *rand.Rand, origin, normal core.Vec3) (core.Vec3, bool)
	Accept(random *rand.Rand, origin, normal, d core.Vec3) bool
}

// UniformDirection is uniform in solid angle within HalfAngle of the
// normal. A half angle of π covers the sphere.
type UniformDirection struct {
	HalfAngle float64
}

// NewUniformDirection returns a full-sphere sampler
func NewUniformDirection() UniformDirection {
	return UniformDirection{HalfAngle: math.Pi}
}

func (u UniformDirection) Sample(random *rand.Rand, _, n core.Vec3) (core.Vec3, bool) {
	return core.SampleUniformCone(random, n, u.HalfAngle), true
}

func (u UniformDirection) Accept(_ *rand.Rand, _, n, d core.Vec3) bool {
	switch {
	case u.HalfAngle >= math.Pi:
		return true
	case u.HalfAngle == math.Pi/2:
		return d.Dot(n) > 0
	}
	return core.CosAngle(d, n) >= math.Cos(u.HalfAngle)
}

// CosineDirection is Lambertian: density ∝ cos θ within HalfAngle.
// Accept is double sided unless SingleSided is set.
type CosineDirection struct {
	HalfAngle   float64
	SingleSided bool
}

// NewCosineDirection returns a hemisphere Lambertian sampler
func NewCosineDirection() CosineDirection {
	return CosineDirection{HalfAngle: math.Pi / 2}
}

func (c CosineDirection) Sample(random *rand.Rand, _, n core.Vec3) (core.Vec3, bool) {
	return core.SampleDiffuseCone(random, n, c.HalfAngle), true
}

func (c CosineDirection) Accept(random *rand.Rand, _, n, d core.Vec3) bool {
	cos := core.CosAngle(d, n)
	if !c.SingleSided {
		return random.Float64() < math.Abs(cos)
	}
	if cos < 0 || cos < math.Cos(c.HalfAngle) {
		return false
	}
	return random.Float64() <= cos
}

// StopDirection aims at an aperture stop: it proposes directions toward
// points sampled on Stop by solid angle and keeps those that Inner
// accepts. A nil Inner accepts everything.
type StopDirection struct {
	Stop  Stop
	Inner DirectionSampler
}

func (s StopDirection) Sample(random *rand.Rand, o, n core.Vec3) (core.Vec3, bool) {
	for i := 0; i < maxRejections; i++ {
		p, ok := s.Stop.SampleFrom(random, o)
		if !ok {
			return core.Vec3{}, false
		}
		d := p.Subtract(o).Normalize()
		if s.Inner == nil || s.Inner.Accept(random, o, n, d) {
			return d, true
		}
	}
	return core.Vec3{}, false
}

func (s StopDirection) Accept(random *rand.Rand, o, n, d core.Vec3) bool {
	return s.Stop.Accept(o, d) && (s.Inner == nil || s.Inner.Accept(random, o, n, d))
}
