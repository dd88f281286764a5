package geometry

import (
	"math"

	"github.com/df07/go-spectral-raytracer/pkg/core"
)

// SymMatrix3 is a symmetric 3x3 matrix
type SymMatrix3 struct {
	XX, XY, XZ float64
	YY, YZ     float64
	ZZ         float64
}

// Identity3 is the identity matrix
var Identity3 = SymMatrix3{XX: 1, YY: 1, ZZ: 1}

// MulVec returns M·v
func (m SymMatrix3) MulVec(v core.Vec3) core.Vec3 {
	return core.Vec3{
		X: m.XX*v.X + m.XY*v.Y + m.XZ*v.Z,
		Y: m.XY*v.X + m.YY*v.Y + m.YZ*v.Z,
		Z: m.XZ*v.X + m.YZ*v.Y + m.ZZ*v.Z,
	}
}

// identityPlusOuter returns I + k·ddᵀ
func identityPlusOuter(k float64, d core.Vec3) SymMatrix3 {
	return SymMatrix3{
		XX: 1 + k*d.X*d.X, XY: k * d.X * d.Y, XZ: k * d.X * d.Z,
		YY: 1 + k*d.Y*d.Y, YZ: k * d.Y * d.Z,
		ZZ: 1 + k*d.Z*d.Z,
	}
}

// Quadric is the implicit field f(x) = xᵀQx + P·x + R
type Quadric struct {
	Q SymMatrix3
	P core.Vec3
	R float64
}

// Eval returns f(p)
func (q Quadric) Eval(p core.Vec3) float64 {
	return q.Q.MulVec(p).Dot(p) + q.P.Dot(p) + q.R
}

// Inner reports whether f(p) < 0
func (q Quadric) Inner(p core.Vec3) bool {
	return q.Eval(p) < 0
}

// Gradient returns ∇f(p) = P + 2Qp, which points to the outer side
func (q Quadric) Gradient(p core.Vec3) core.Vec3 {
	return q.P.Add(q.Q.MulVec(p).Multiply(2))
}

// Shift translates the field by r, so the result at x equals q at x-r
func (q Quadric) Shift(r core.Vec3) Quadric {
	qr := q.Q.MulVec(r)
	return Quadric{
		Q: q.Q,
		P: q.P.Subtract(qr.Multiply(2)),
		R: q.R + qr.Dot(r) - q.P.Dot(r),
	}
}

// Solve returns both roots s1 <= s2 of a·s² + 2b·s + c = 0 along the ray,
// or false when the discriminant is not positive. When |ac| is small
// compared to b² the root that would suffer cancellation is obtained from
// Vieta's relation s1·s2 = c/a instead. A vanishing a yields an infinite
// root.
func (q Quadric) Solve(ray core.Ray) (s1, s2 float64, ok bool) {
	o, d := ray.Origin, ray.Direction
	qo := q.Q.MulVec(o)
	c := qo.Dot(o) + q.P.Dot(o) + q.R
	b := qo.Add(q.P.Multiply(0.5)).Dot(d)
	a := q.Q.MulVec(d).Dot(d)

	delta := b*b - a*c
	if delta <= 0 {
		return 0, 0, false
	}
	sqrtD := math.Sqrt(delta)
	alpha1 := -b - sqrtD
	alpha2 := -b + sqrtD

	if math.Abs(a*c) < 0.1*b*b {
		if b > 0 {
			s1 = divOrInf(alpha1, a)
			s2 = c / alpha1
		} else {
			s2 = divOrInf(alpha2, a)
			s1 = c / alpha2
		}
	} else {
		s1 = alpha1 / a
		s2 = alpha2 / a
	}
	if s2 < s1 {
		s1, s2 = s2, s1
	}
	return s1, s2, true
}

func divOrInf(x, a float64) float64 {
	if a == 0 {
		return core.Infinity
	}
	return x / a
}

// ShapeType names a quadric family
type ShapeType int

const (
	ShapeSphere ShapeType = iota
	ShapeConic
	ShapeParabola
	ShapeTube
	ShapeCone
	ShapeSpheroid
	ShapeGeneral
)

func (s ShapeType) String() string {
	switch s {
	case ShapeSphere:
		return "sphere"
	case ShapeConic:
		return "conic"
	case ShapeParabola:
		return "parabola"
	case ShapeTube:
		return "tube"
	case ShapeCone:
		return "cone"
	case ShapeSpheroid:
		return "spheroid"
	case ShapeGeneral:
		return "general"
	}
	return "unknown"
}

// QuadricConfig describes one quadric shape. Which fields are required
// depends on Shape:
//
//	Sphere:   Origin, Radius
//	Conic:    Origin, Direction, Radius (vertex curvature radius), K (conic constant)
//	Parabola: Origin, Direction, Radius
//	Tube:     Origin, Direction, Radius
//	Cone:     Origin, Direction, Radius (bottom), Height, TopRadius
//	Spheroid: Origin, Direction, SemiAxisA (along Direction), SemiAxisB
//	General:  Field
type QuadricConfig struct {
	Shape     ShapeType
	Origin    core.Vec3
	Direction core.Vec3
	Radius    float64
	K         float64
	Height    float64
	TopRadius float64
	SemiAxisA float64
	SemiAxisB float64
	Field     Quadric
}

// NewQuadric builds the implicit field for cfg
func NewQuadric(cfg QuadricConfig) (Quadric, error) {
	needsDirection := cfg.Shape != ShapeSphere && cfg.Shape != ShapeGeneral
	if needsDirection && cfg.Direction.IsZero() {
		return Quadric{}, ErrMissingDirection
	}
	d := cfg.Direction.Normalize()

	switch cfg.Shape {
	case ShapeSphere:
		if cfg.Radius <= 0 {
			return Quadric{}, ErrMissingRadius
		}
		return Quadric{
			Q: Identity3,
			P: cfg.Origin.Multiply(-2),
			R: cfg.Origin.LengthSquared() - cfg.Radius*cfg.Radius,
		}, nil

	case ShapeConic, ShapeParabola:
		if cfg.Radius <= 0 {
			return Quadric{}, ErrMissingRadius
		}
		k := cfg.K
		if cfg.Shape == ShapeParabola {
			k = -1
		}
		q := Quadric{
			Q: identityPlusOuter(k, d),
			P: d.Multiply(-2 * cfg.Radius),
		}
		return q.Shift(cfg.Origin), nil

	case ShapeTube:
		if cfg.Radius <= 0 {
			return Quadric{}, ErrMissingRadius
		}
		q := Quadric{
			Q: identityPlusOuter(-1, d),
			R: -cfg.Radius * cfg.Radius,
		}
		return q.Shift(cfg.Origin), nil

	case ShapeCone:
		if cfg.Height <= 0 {
			return Quadric{}, ErrMissingHeight
		}
		if cfg.Radius < 0 || cfg.TopRadius < 0 || (cfg.Radius == 0 && cfg.TopRadius == 0) {
			return Quadric{}, ErrMissingRadius
		}
		h := (cfg.TopRadius - cfg.Radius) / cfg.Height
		q := Quadric{
			Q: identityPlusOuter(-(1 + h*h), d),
			P: d.Multiply(-2 * cfg.Radius * h),
			R: -cfg.Radius * cfg.Radius,
		}
		return q.Shift(cfg.Origin), nil

	case ShapeSpheroid:
		if cfg.SemiAxisA <= 0 || cfg.SemiAxisB <= 0 {
			return Quadric{}, ErrMissingSemiAxis
		}
		r2 := (cfg.SemiAxisB / cfg.SemiAxisA) * (cfg.SemiAxisB / cfg.SemiAxisA)
		q := Quadric{
			Q: identityPlusOuter(r2-1, d),
			R: -cfg.SemiAxisB * cfg.SemiAxisB,
		}
		return q.Shift(cfg.Origin), nil

	case ShapeGeneral:
		return cfg.Field, nil
	}
	return Quadric{}, ErrUnknownShape
}
