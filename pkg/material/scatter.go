package material

import (
	"math/rand/v2"

	"github.com/df07/go-spectral-raytracer/pkg/core"
)

// ScatterOptions tunes variance reduction of the scattering laws
type ScatterOptions struct {
	// FirstLevelSplit subdivides level-0 diffuse and metal branches into
	// this many rays, each carrying 1/FirstLevelSplit of the branch ratio.
	FirstLevelSplit int
	// MetalRoughness is the width parameter of the metal lobe
	MetalRoughness float64
}

// DefaultScatterOptions returns a split of 1 and roughness 0.15
func DefaultScatterOptions() ScatterOptions {
	return ScatterOptions{FirstLevelSplit: 1, MetalRoughness: 0.15}
}

// Child is a ray produced by a scattering event
type Child struct {
	Ray       core.Ray
	Refracted bool
}

// Scatter applies the scattering law of side to the incoming ray at point.
// normal must be the unit normal facing the incident side. Children are
// appended to dst and the extended slice is returned.
//
// At level 0 every enabled branch is emitted with its ratio as amplitude
// factor. Deeper levels keep each branch with probability equal to its
// ratio and factor 1, so the expected energy is unchanged while the tree
// branches at most once per branch type.
func Scatter(dst []Child, in core.Ray, point, normal core.Vec3, side Interface,
	level int, opts ScatterOptions, random *rand.Rand) []Child {

	s := scatterer{dst: dst, in: in, point: point, n: normal, side: side, opts: opts, random: random}
	if s.opts.FirstLevelSplit < 1 {
		s.opts.FirstLevelSplit = 1
	}

	switch side.Scatter {
	case Optical:
		s.optical(level)
	case Mirror:
		s.branch(level, side.Reflect, 1, s.mirrorReflect)
		s.branch(level, side.Transmit, 1, s.mirrorTransmit)
	case Diffuse:
		s.branch(level, side.Reflect, s.opts.FirstLevelSplit, s.diffuseReflect)
		s.branch(level, side.Transmit, s.opts.FirstLevelSplit, s.diffuseTransmit)
	case Metal:
		s.branch(level, side.Reflect, s.opts.FirstLevelSplit, s.metalReflect)
		s.branch(level, side.Transmit, s.opts.FirstLevelSplit, s.metalTransmit)
	case Rayleigh:
		if side.Reflect > 0 && random.Float64() < side.Reflect {
			s.rayleigh(1)
		}
	}
	return s.dst
}

type scatterer struct {
	dst    []Child
	in     core.Ray
	point  core.Vec3
	n      core.Vec3
	side   Interface
	opts   ScatterOptions
	random *rand.Rand
}

func (s *scatterer) branch(level int, ratio float64, split int, emit func(factor float64)) {
	if ratio <= 0 {
		return
	}
	if level < 1 {
		for i := 0; i < split; i++ {
			emit(ratio / float64(split))
		}
		return
	}
	if s.random.Float64() < ratio {
		emit(1)
	}
}

func (s *scatterer) add(d core.Vec3, factor float64, pol core.Vec3, refracted bool) {
	s.dst = append(s.dst, Child{
		Ray:       s.in.Child(s.point, d, factor, pol),
		Refracted: refracted,
	})
}

func (s *scatterer) mirrorReflect(factor float64) {
	d := core.Reflect(s.n, s.in.Direction)
	s.add(d, factor, core.RandomNormal(s.random, d), false)
}

func (s *scatterer) mirrorTransmit(factor float64) {
	if d, ok := RefractDirection(s.n, s.in.Direction, s.side.FromIndex, s.side.ToIndex); ok {
		s.add(d, factor, core.RandomNormal(s.random, d), true)
	}
}

func (s *scatterer) diffuseReflect(factor float64) {
	d := core.SampleDiffuse(s.random, s.n)
	s.add(d, factor, core.RandomNormal(s.random, d), false)
}

func (s *scatterer) diffuseTransmit(factor float64) {
	d := core.SampleDiffuse(s.random, s.n.Negate())
	s.add(d, factor, core.RandomNormal(s.random, d), true)
}

func (s *scatterer) metalReflect(factor float64) {
	d := core.SampleMetal(s.random, s.in.Direction, s.n, s.opts.MetalRoughness)
	s.add(d, factor, core.RandomNormal(s.random, d), false)
}

func (s *scatterer) metalTransmit(factor float64) {
	t, ok := RefractDirection(s.n, s.in.Direction, s.side.FromIndex, s.side.ToIndex)
	if !ok {
		return
	}
	d := core.SampleLobe(s.random, t, s.n.Negate(), s.opts.MetalRoughness)
	s.add(d, factor, core.RandomNormal(s.random, d), true)
}

func (s *scatterer) rayleigh(factor float64) {
	d := core.SampleRayleigh(s.random, s.in.Direction)
	s.add(d, factor, core.RandomNormal(s.random, d), false)
}

func (s *scatterer) optical(level int) {
	f := Fresnel(s.in.Direction, s.n, s.in.Polarization, s.side.FromIndex, s.side.ToIndex)
	s.branch(level, f.R, 1, func(factor float64) {
		s.add(f.Reflected, factor, f.ReflectedPol, false)
	})
	if !f.TotalInternal {
		s.branch(level, f.T, 1, func(factor float64) {
			s.add(f.Transmitted, factor, f.TransmitPol, true)
		})
	}
}
