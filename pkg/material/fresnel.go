package material

import (
	"math"

	"github.com/df07/go-spectral-raytracer/pkg/core"
)

// CanRefract reports whether a ray with direction d can leave a medium of
// index from into one of index to across a surface with unit normal n.
func CanRefract(n, d core.Vec3, from, to float64) bool {
	if from > to {
		s2 := n.Cross(d).LengthSquared()
		if s2*from*from >= to*to {
			return false
		}
	}
	return true
}

// RefractDirection solves Snell's law in vector form. The orientation of n
// does not matter. It returns false on total internal reflection.
func RefractDirection(n, d core.Vec3, from, to float64) (core.Vec3, bool) {
	if from == to {
		return d, true
	}
	b := from / to
	if n.Dot(d) < 0 {
		n = n.Negate()
	}
	sinFrom := n.Cross(d).Length()
	sinTo := sinFrom * b
	delta := 1 - sinTo*sinTo
	if delta <= 0 {
		return core.Vec3{}, false
	}
	cosFrom := n.Dot(d)
	a := -b*cosFrom + math.Sqrt(delta)
	return n.Multiply(a).Add(d.Multiply(b)), true
}

// FresnelResult holds reflectance, transmittance and the outgoing polarization
// reference vectors of both children.
type FresnelResult struct {
	R, T          float64
	Reflected     core.Vec3 // reflected direction
	Transmitted   core.Vec3 // transmitted direction, zero on total internal reflection
	ReflectedPol  core.Vec3
	TransmitPol   core.Vec3
	TotalInternal bool
}

// Fresnel evaluates the Fresnel equations for a ray with direction d and
// polarization pol striking a surface whose unit normal n faces the incident
// side, going from index n1 to n2.
func Fresnel(d, n, pol core.Vec3, n1, n2 float64) FresnelResult {
	ns := d.Cross(n).Normalize()
	if ns.IsZero() {
		// normal incidence: any axis perpendicular to d spans the plane
		ns = core.Perpendicular(d)
	}
	np := ns.Cross(d).Normalize()
	as := ns.Dot(pol)
	ap := np.Dot(pol)
	if norm := math.Hypot(as, ap); norm > 1e-12 {
		as, ap = as/norm, ap/norm
	} else {
		// unpolarized or unset reference vector
		as, ap = math.Sqrt2/2, math.Sqrt2/2
	}

	res := FresnelResult{Reflected: core.Reflect(n, d)}
	if !CanRefract(n, d, n1, n2) {
		res.R = 1
		res.TotalInternal = true
		res.ReflectedPol = ns.Multiply(as).Add(ns.Cross(res.Reflected).Multiply(ap)).Normalize()
		return res
	}

	cos1 := -d.Dot(n)
	sin1 := math.Sqrt(math.Max(0, 1-cos1*cos1))
	sin2 := sin1 * n1 / n2
	cos2 := math.Sqrt(math.Max(0, 1-sin2*sin2))

	rs := (n1*cos1 - n2*cos2) / (n1*cos1 + n2*cos2)
	ts := rs + 1
	rp := (n2*cos1 - n1*cos2) / (n2*cos1 + n1*cos2)
	tp := (rp + 1) * n1 / n2

	res.R = sq(as*rs) + sq(ap*rp)
	res.T = n2 * cos2 / (n1 * cos1) * (sq(as*ts) + sq(ap*tp))

	res.Transmitted, _ = RefractDirection(n, d, n1, n2)
	res.ReflectedPol = ns.Multiply(as * rs).Add(ns.Cross(res.Reflected).Multiply(ap * rp)).Normalize()
	res.TransmitPol = ns.Multiply(as * ts).Add(ns.Cross(res.Transmitted).Multiply(ap * tp)).Normalize()
	return res
}

func sq(x float64) float64 { return x * x }
