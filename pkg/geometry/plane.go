package geometry

import "github.com/df07/go-spectral-raytracer/pkg/core"

// Plane is the implicit half-space field f(x) = P·x + R with unit P.
// The inner side is where f < 0, so P points outward.
type Plane struct {
	P core.Vec3
	R float64
}

// NewPlane creates a plane through origin with outward normal n
func NewPlane(origin, n core.Vec3) (Plane, error) {
	if n.IsZero() {
		return Plane{}, ErrZeroNormal
	}
	n = n.Normalize()
	return Plane{P: n, R: -n.Dot(origin)}, nil
}

// Eval returns f(p)
func (pl Plane) Eval(p core.Vec3) float64 {
	return pl.P.Dot(p) + pl.R
}

// Inner reports whether p lies strictly on the inner side
func (pl Plane) Inner(p core.Vec3) bool {
	return pl.Eval(p) < 0
}

// Solve returns the positive root of P·(O+sD) + R = 0 and whether the ray
// starts on the inner side. Rays moving away from the plane, parallel to it,
// or whose root is not beyond SMin miss.
func (pl Plane) Solve(ray core.Ray) (s float64, fromInner bool, ok bool) {
	b := pl.P.Dot(ray.Origin) + pl.R
	a := pl.P.Dot(ray.Direction)
	if a == 0 || a*b > 0 {
		return 0, false, false
	}
	s = -b / a
	if s <= core.SMin {
		return 0, false, false
	}
	return s, b < 0, true
}
