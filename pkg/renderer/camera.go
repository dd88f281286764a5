package renderer

import (
	"math"
	"math/rand/v2"

	"github.com/df07/go-spectral-raytracer/pkg/core"
)

// PreviewWavelength is the wavelength of preview rays in nm
const PreviewWavelength = 500

// Camera generates rays for a picture
type Camera struct {
	origin   core.Vec3
	n1, n2   core.Vec3
	forward  core.Vec3
	scaler   Scaler
	aperture float64
	invFocus float64
}

// NewCamera builds the camera described by opts
func NewCamera(opts PictureOptions) *Camera {
	n1 := opts.N1.Normalize()
	n2 := opts.N2.Normalize()
	invFocus := 0.0
	if opts.FocalDistance > 0 && !math.IsInf(opts.FocalDistance, 1) {
		invFocus = 1 / opts.FocalDistance
	}
	return &Camera{
		origin:   opts.Origin,
		n1:       n1,
		n2:       n2,
		forward:  n1.Cross(n2).Normalize().Negate(),
		scaler:   opts.Scaler(),
		aperture: opts.ApertureDiameter,
		invFocus: invFocus,
	}
}

// Forward returns the viewing direction
func (c *Camera) Forward() core.Vec3 { return c.forward }

// Ray returns a transport ray through a random point of pixel (i, j) with
// a uniformly sampled visible wavelength. Column i counts from the left and
// row j from the top.
func (c *Camera) Ray(random *rand.Rand, i, j int) core.Ray {
	x := c.scaler.PixelToWorldX(float64(i) + random.Float64())
	y := c.scaler.PixelToWorldY(float64(j) + random.Float64())

	var lensX, lensY float64
	if c.aperture > 0 {
		rho := math.Sqrt(random.Float64()) * c.aperture / 2
		sin, cos := core.RandomSinCos(random)
		lensX, lensY = rho*cos, rho*sin
	}
	ray := c.rayThrough(x, y, lensX, lensY)
	ray.Polarization = core.RandomNormal(random, ray.Direction)
	ray.Wavelength = core.Uniform(random, core.WavelengthMin, core.WavelengthMax)
	return ray
}

// rayThrough returns the ray leaving lens point (lensX, lensY) towards
// window point (x, y). Rays for the same window point meet on the focal
// plane.
func (c *Camera) rayThrough(x, y, lensX, lensY float64) core.Ray {
	offset := c.n1.Multiply(lensX).Add(c.n2.Multiply(lensY))
	d := c.n1.Multiply(x).Add(c.n2.Multiply(y)).Add(c.forward).
		Subtract(offset.Multiply(c.invFocus))
	return core.NewRay(c.origin.Add(offset), d.Normalize())
}

// PreviewRay returns the deterministic ray of sub-sample (ii, jj) of an
// n by n grid inside pixel (i, j)
func (c *Camera) PreviewRay(i, j, ii, jj, n int) core.Ray {
	if n < 1 {
		n = 1
	}
	off := func(k int) float64 { return 0.5 + (float64(k)-0.5*float64(n-1))/float64(n) }
	x := c.scaler.PixelToWorldX(float64(i) + off(ii))
	y := c.scaler.PixelToWorldY(float64(j) + off(jj))
	ray := c.rayThrough(x, y, 0, 0)
	ray.Wavelength = PreviewWavelength
	return ray
}
