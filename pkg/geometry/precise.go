package geometry

import (
	"math/big"

	"github.com/golang/geo/r3"

	"github.com/df07/go-spectral-raytracer/pkg/core"
)

// precision of the square root step; the products before it are exact
const precisePrec = 256

// PreciseDistance returns the nearest root of the quadric beyond SMin,
// evaluated in arbitrary precision. Bounds are ignored. It is a reference
// for checking Solve on ill-conditioned rays.
func PreciseDistance(q Quadric, ray core.Ray) (float64, bool) {
	o := precise(ray.Origin)
	d := precise(ray.Direction)
	p := precise(q.P)

	rows := [3]r3.PreciseVector{
		r3.NewPreciseVector(q.Q.XX, q.Q.XY, q.Q.XZ),
		r3.NewPreciseVector(q.Q.XY, q.Q.YY, q.Q.YZ),
		r3.NewPreciseVector(q.Q.XZ, q.Q.YZ, q.Q.ZZ),
	}
	mul := func(v r3.PreciseVector) r3.PreciseVector {
		return r3.PreciseVector{X: rows[0].Dot(v), Y: rows[1].Dot(v), Z: rows[2].Dot(v)}
	}

	qo := mul(o)
	c := round(qo.Dot(o))
	c.Add(c, round(p.Dot(o)))
	c.Add(c, newPrecise(q.R))
	b := round(qo.Add(p.MulByFloat64(0.5)).Dot(d))
	a := round(mul(d).Dot(d))

	if a.Sign() == 0 {
		// linear: 2b·s + c = 0
		if b.Sign() == 0 {
			return 0, false
		}
		s := newPrecise(0).Quo(c, b)
		s.Quo(s, newPrecise(-2))
		v, _ := s.Float64()
		return v, v > core.SMin
	}

	delta := newPrecise(0).Mul(b, b)
	delta.Sub(delta, newPrecise(0).Mul(a, c))
	if delta.Sign() <= 0 {
		return 0, false
	}
	sq := newPrecise(0).Sqrt(delta)
	negB := newPrecise(0).Neg(b)

	r1 := newPrecise(0).Sub(negB, sq)
	r1.Quo(r1, a)
	r2 := newPrecise(0).Add(negB, sq)
	r2.Quo(r2, a)
	if r1.Cmp(r2) > 0 {
		r1, r2 = r2, r1
	}

	smin := newPrecise(core.SMin)
	if r1.Cmp(smin) > 0 {
		v, _ := r1.Float64()
		return v, true
	}
	if r2.Cmp(smin) > 0 {
		v, _ := r2.Float64()
		return v, true
	}
	return 0, false
}

func precise(v core.Vec3) r3.PreciseVector {
	return r3.NewPreciseVector(v.X, v.Y, v.Z)
}

func newPrecise(x float64) *big.Float {
	return new(big.Float).SetPrec(precisePrec).SetFloat64(x)
}

func round(x *big.Float) *big.Float {
	return new(big.Float).SetPrec(precisePrec).Set(x)
}
