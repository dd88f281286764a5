package core

import (
	"math"
	"math/rand/v2"
)

// NewRandom creates a seeded generator. Every sampler takes its generator
// explicitly so each worker owns one and results are reproducible per seed.
func NewRandom(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewRandomStream creates the generator of one of many independent streams
// sharing a seed, such as the rows of an image.
func NewRandomStream(seed, stream uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, stream*0x9e3779b97f4a7c15+1))
}

// Uniform returns a uniform value in [a, b)
func Uniform(random *rand.Rand, a, b float64) float64 {
	return a + random.Float64()*(b-a)
}

// RandomSinCos returns the sine and cosine of a uniformly distributed angle.
// A point is drawn from the unit disk and the double-angle formulas are
// applied, which avoids calling sin and cos.
func RandomSinCos(random *rand.Rand) (sin, cos float64) {
	for {
		x := 2*random.Float64() - 1
		y := 2*random.Float64() - 1
		r2 := x*x + y*y
		if r2 <= 1 && r2 > 0 {
			inv := 1 / r2
			return 2 * x * y * inv, (x*x - y*y) * inv
		}
	}
}

// RandomNormal returns a uniformly oriented unit vector perpendicular to the unit vector d
func RandomNormal(random *rand.Rand, d Vec3) Vec3 {
	sin, cos := RandomSinCos(random)
	n1 := Perpendicular(d)
	n2 := n1.Cross(d)
	return n1.Multiply(sin).Add(n2.Multiply(cos))
}

// SampleUniformCone samples a direction uniformly in solid angle within
// halfAngle of axis. A half angle of π covers the whole sphere.
func SampleUniformCone(random *rand.Rand, axis Vec3, halfAngle float64) Vec3 {
	s := math.Sin(0.5 * halfAngle)
	t := random.Float64() * s * s
	cs := 1 - 2*t
	ss := 2 * math.Sqrt(t*(1-t))
	return RandomNormal(random, axis).Multiply(ss).Add(axis.Multiply(cs)).Normalize()
}

// SampleDiffuse samples a cosine-weighted direction in the hemisphere around n
func SampleDiffuse(random *rand.Rand, n Vec3) Vec3 {
	cdf := random.Float64()
	return RandomNormal(random, n).Multiply(math.Sqrt(cdf)).Add(n.Multiply(math.Sqrt(1 - cdf)))
}

// SampleDiffuseCone samples a cosine-weighted direction restricted to halfAngle around n
func SampleDiffuseCone(random *rand.Rand, n Vec3, halfAngle float64) Vec3 {
	s := math.Sin(halfAngle)
	cdf := random.Float64() * s * s
	return RandomNormal(random, n).Multiply(math.Sqrt(cdf)).Add(n.Multiply(math.Sqrt(1 - cdf)))
}

// SampleLobe samples a glossy lobe around axis with pdf(cosθ) ∝ 1/(1+a-cosθ)²,
// a = roughness². Directions not on the positive side of side are redrawn.
func SampleLobe(random *rand.Rand, axis, side Vec3, roughness float64) Vec3 {
	a := roughness * roughness
	n1 := Perpendicular(axis)
	n2 := axis.Cross(n1)
	lo, hi := 1/a, 1/(2+a)
	for range 1000 {
		u := 1 / (lo + random.Float64()*(hi-lo))
		cosTheta := 1 + a - u
		if cosTheta > 1 {
			cosTheta = 1
		} else if cosTheta < -1 {
			cosTheta = -1
		}
		sinTheta := math.Sqrt(1 - cosTheta*cosTheta)
		sin, cos := RandomSinCos(random)
		d := axis.Multiply(cosTheta).
			Add(n1.Multiply(sinTheta * sin)).
			Add(n2.Multiply(sinTheta * cos))
		if d.Dot(side) > 0 {
			return d
		}
	}
	return axis
}

// SampleMetal samples a metal-like reflection around the mirror direction of d at n.
// n must face the incident side.
func SampleMetal(random *rand.Rand, d, n Vec3, roughness float64) Vec3 {
	return SampleLobe(random, Reflect(n, d), n, roughness)
}

// SampleRayleigh samples a direction from the Rayleigh phase function
// pdf(x) = 3/8 (1+x²), x = cosθ to axis. The cdf cubic x³ + 3x = 2A,
// A = 4(cdf-1/2), is inverted with Cardano's formula.
func SampleRayleigh(random *rand.Rand, axis Vec3) Vec3 {
	a := 4 * (random.Float64() - 0.5)
	t := math.Cbrt(math.Sqrt(a*a+1) + a)
	x := t - 1/t
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}
	return axis.Multiply(x).Add(RandomNormal(random, axis).Multiply(math.Sqrt(1 - x*x)))
}

// SampleDisk returns a uniform point in the unit disk
func SampleDisk(random *rand.Rand) (x, y float64) {
	rho := math.Sqrt(random.Float64())
	sin, cos := RandomSinCos(random)
	return rho * cos, rho * sin
}
