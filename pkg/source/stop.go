package source

import (
	"math"
	"math/rand/v2"

	"github.com/df07/go-spectral-raytracer/pkg/core"
	"github.com/df07/go-spectral-raytracer/pkg/geometry"
)

// Stop is an aperture that emitted rays must pass through
type Stop interface {
	// Sample draws a point uniformly in area
	Sample(random *rand.Rand) (core.Vec3, bool)
	// SampleFrom draws a point uniformly in solid angle as seen from ref
	SampleFrom(random *rand.Rand, ref core.Vec3) (core.Vec3, bool)
	// Accept reports whether the ray ref + k·d, k > 0, passes the stop
	Accept(ref, d core.Vec3) bool
	// SolidAngle subtended by the unbounded stop rectangle at ref
	SolidAngle(ref core.Vec3) float64
}

// edgeTolerance absorbs rounding when a sampled point lies on the rectangle
// edge
const edgeTolerance = 1e-9

// PlaneStopConfig describes the stop rectangle the same way a plane
// emitter is described
type PlaneStopConfig = PlanePositionConfig

// PlaneStop is a rectangular stop, optionally cut by a bound. Solid-angle
// sampling covers the whole rectangle and rejects points outside the bound.
type PlaneStop struct {
	cfg    PlaneStopConfig
	normal core.Vec3
}

// NewPlaneStop validates cfg
func NewPlaneStop(cfg PlaneStopConfig) (*PlaneStop, error) {
	if cfg.N1.Cross(cfg.N2).IsZero() {
		return nil, ErrZeroNormal
	}
	if cfg.N1Max <= cfg.N1Min || cfg.N2Max <= cfg.N2Min {
		return nil, ErrInvalidRange
	}
	cfg.N1 = cfg.N1.Normalize()
	cfg.N2 = cfg.N2.Normalize()
	return &PlaneStop{cfg: cfg, normal: cfg.N1.Cross(cfg.N2)}, nil
}

func (p *PlaneStop) Sample(random *rand.Rand) (core.Vec3, bool) {
	c := &p.cfg
	for i := 0; i < maxRejections; i++ {
		v := c.Origin.
			Add(c.N1.Multiply(core.Uniform(random, c.N1Min, c.N1Max))).
			Add(c.N2.Multiply(core.Uniform(random, c.N2Min, c.N2Max)))
		if geometry.InBound(c.Bound, v) {
			return v, true
		}
	}
	return core.Vec3{}, false
}

func (p *PlaneStop) Accept(ref, d core.Vec3) bool {
	sd := d.Dot(p.normal)
	if sd == 0 {
		return false
	}
	k := (p.cfg.Origin.Dot(p.normal) - ref.Dot(p.normal)) / sd
	if k <= 0 {
		return false
	}
	hit := ref.Add(d.Multiply(k))
	if !geometry.InBound(p.cfg.Bound, hit) {
		return false
	}
	local := hit.Subtract(p.cfg.Origin)
	a, b := local.Dot(p.cfg.N1), local.Dot(p.cfg.N2)
	return a >= p.cfg.N1Min-edgeTolerance && a <= p.cfg.N1Max+edgeTolerance &&
		b >= p.cfg.N2Min-edgeTolerance && b <= p.cfg.N2Max+edgeTolerance
}

func (p *PlaneStop) SolidAngle(ref core.Vec3) float64 {
	q := p.sphericalRect(ref)
	return q.s
}

func (p *PlaneStop) SampleFrom(random *rand.Rand, ref core.Vec3) (core.Vec3, bool) {
	q := p.sphericalRect(ref)
	if !(q.s > 0) {
		return core.Vec3{}, false
	}
	for i := 0; i < maxRejections; i++ {
		v := q.sample(random.Float64(), random.Float64())
		if geometry.InBound(p.cfg.Bound, v) {
			return v, true
		}
	}
	return core.Vec3{}, false
}

func (p *PlaneStop) sphericalRect(ref core.Vec3) sphQuad {
	c := &p.cfg
	corner := c.Origin.Add(c.N1.Multiply(c.N1Min)).Add(c.N2.Multiply(c.N2Min))
	return newSphQuad(corner, c.N1.Multiply(c.N1Max-c.N1Min), c.N2.Multiply(c.N2Max-c.N2Min), ref)
}

// sphQuad is the rectangle s + [0,1]·ex + [0,1]·ey seen from o, prepared for
// sampling by solid angle (Ureña, Fajardo, King: An Area-Preserving
// Parametrization for Spherical Rectangles, EGSR 2013).
type sphQuad struct {
	o, x, y, z   core.Vec3
	x0, y0, z0   float64
	x1, y1       float64
	b0, b0sq, b1 float64
	k            float64
	s            float64
}

func newSphQuad(s, ex, ey, o core.Vec3) sphQuad {
	var q sphQuad
	q.o = o
	exl, eyl := ex.Length(), ey.Length()
	q.x = ex.Multiply(1 / exl)
	q.y = ey.Multiply(1 / eyl)
	q.z = q.x.Cross(q.y)

	d := s.Subtract(o)
	q.z0 = d.Dot(q.z)
	if q.z0 > 0 {
		q.z = q.z.Negate()
		q.z0 = -q.z0
	}
	q.x0 = d.Dot(q.x)
	q.y0 = d.Dot(q.y)
	q.x1 = q.x0 + exl
	q.y1 = q.y0 + eyl

	v00 := core.NewVec3(q.x0, q.y0, q.z0)
	v01 := core.NewVec3(q.x0, q.y1, q.z0)
	v10 := core.NewVec3(q.x1, q.y0, q.z0)
	v11 := core.NewVec3(q.x1, q.y1, q.z0)
	n0 := v00.Cross(v10).Normalize()
	n1 := v10.Cross(v11).Normalize()
	n2 := v11.Cross(v01).Normalize()
	n3 := v01.Cross(v00).Normalize()

	g0 := math.Acos(clamp(-n0.Dot(n1), -1, 1))
	g1 := math.Acos(clamp(-n1.Dot(n2), -1, 1))
	g2 := math.Acos(clamp(-n2.Dot(n3), -1, 1))
	g3 := math.Acos(clamp(-n3.Dot(n0), -1, 1))

	q.b0 = n0.Z
	q.b1 = n2.Z
	q.b0sq = q.b0 * q.b0
	q.k = 2*math.Pi - g2 - g3
	q.s = g0 + g1 - q.k
	return q
}

func (q *sphQuad) sample(u, v float64) core.Vec3 {
	au := u*q.s + q.k
	fu := (math.Cos(au)*q.b0 - q.b1) / math.Sin(au)
	cu := 1 / math.Sqrt(fu*fu+q.b0sq)
	if fu <= 0 {
		cu = -cu
	}
	cu = clamp(cu, -1, 1)

	xu := -(cu * q.z0) / math.Sqrt(1-cu*cu)
	xu = clamp(xu, q.x0, q.x1)

	d := math.Sqrt(xu*xu + q.z0*q.z0)
	h0 := q.y0 / math.Sqrt(d*d+q.y0*q.y0)
	h1 := q.y1 / math.Sqrt(d*d+q.y1*q.y1)
	hv := h0 + v*(h1-h0)
	hv2 := hv * hv
	yv := q.y1
	if hv2 < 1-1e-6 {
		yv = (hv * d) / math.Sqrt(1-hv2)
	}

	return q.o.Add(q.x.Multiply(xu)).Add(q.y.Multiply(yv)).Add(q.z.Multiply(q.z0))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
