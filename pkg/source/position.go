package source

import (
	"math/rand/v2"

	"github.com/df07/go-spectral-raytracer/pkg/core"
	"github.com/df07/go-spectral-raytracer/pkg/geometry"
)

// maxRejections caps every rejection loop in this package. A sampler whose
// acceptance region is empty or vanishingly small reports failure instead
// of spinning forever.
const maxRejections = 1 << 16

// PositionSampler draws emission points with the unit normal of the
// emitting surface at that point. The density is uniform in area.
type PositionSampler interface {
	Sample(random *rand.Rand) (point, normal core.Vec3, ok bool)
}

// PointPosition emits from a fixed point. The normal orients direction
// samplers.
type PointPosition struct {
	origin core.Vec3
	normal core.Vec3
}

// NewPointPosition returns a point emitter facing normal
func NewPointPosition(origin, normal core.Vec3) (*PointPosition, error) {
	if normal.IsZero() {
		return nil, ErrZeroNormal
	}
	return &PointPosition{origin: origin, normal: normal.Normalize()}, nil
}

func (p *PointPosition) Sample(*rand.Rand) (core.Vec3, core.Vec3, bool) {
	return p.origin, p.normal, true
}

// PlanePositionConfig is a parallelogram Origin + N1·[N1Min,N1Max] +
// N2·[N2Min,N2Max], optionally cut by Bound. N1 and N2 are expected to be
// orthogonal; the emitting normal is N1×N2.
type PlanePositionConfig struct {
	Origin       core.Vec3
	N1, N2       core.Vec3
	N1Min, N1Max float64
	N2Min, N2Max float64
	Bound        geometry.Bound
}

// DefaultPlanePositionConfig is the unit square [-1,1]² in the xy plane
// emitting towards +z
func DefaultPlanePositionConfig() PlanePositionConfig {
	return PlanePositionConfig{
		N1: core.NewVec3(1, 0, 0), N2: core.NewVec3(0, 1, 0),
		N1Min: -1, N1Max: 1, N2Min: -1, N2Max: 1,
	}
}

// PlanePosition samples uniformly over a bounded parallelogram
type PlanePosition struct {
	cfg    PlanePositionConfig
	normal core.Vec3
}

// NewPlanePosition validates cfg
func NewPlanePosition(cfg PlanePositionConfig) (*PlanePosition, error) {
	n := cfg.N1.Cross(cfg.N2)
	if n.IsZero() {
		return nil, ErrZeroNormal
	}
	if cfg.N1Max < cfg.N1Min || cfg.N2Max < cfg.N2Min {
		return nil, ErrInvalidRange
	}
	cfg.N1 = cfg.N1.Normalize()
	cfg.N2 = cfg.N2.Normalize()
	return &PlanePosition{cfg: cfg, normal: cfg.N1.Cross(cfg.N2).Normalize()}, nil
}

func (p *PlanePosition) Sample(random *rand.Rand) (core.Vec3, core.Vec3, bool) {
	c := &p.cfg
	for i := 0; i < maxRejections; i++ {
		v := c.Origin.
			Add(c.N1.Multiply(core.Uniform(random, c.N1Min, c.N1Max))).
			Add(c.N2.Multiply(core.Uniform(random, c.N2Min, c.N2Max)))
		if geometry.InBound(c.Bound, v) {
			return v, p.normal, true
		}
	}
	return core.Vec3{}, p.normal, false
}

// LinePosition samples uniformly along the segment From→To
type LinePosition struct {
	from, to core.Vec3
	normal   core.Vec3
}

// NewLinePosition returns a segment emitter facing normal
func NewLinePosition(from, to, normal core.Vec3) (*LinePosition, error) {
	if normal.IsZero() {
		return nil, ErrZeroNormal
	}
	return &LinePosition{from: from, to: to, normal: normal.Normalize()}, nil
}

func (l *LinePosition) Sample(random *rand.Rand) (core.Vec3, core.Vec3, bool) {
	t := random.Float64()
	return l.from.Add(l.to.Subtract(l.from).Multiply(t)), l.normal, true
}
