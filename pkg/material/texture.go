package material

import (
	"math"

	"github.com/df07/go-spectral-raytracer/pkg/core"
)

// Reference wavelengths in nm for spectral textures
const (
	WavelengthRed    = 620.0
	WavelengthYellow = 560.0
	WavelengthGreen  = 520.0
	WavelengthBlue   = 460.0
)

// Texture provides a reflect or transmit ratio that may vary with position and wavelength
type Texture interface {
	// Ratio returns the ratio at point p for the given wavelength in nm
	Ratio(p core.Vec3, wavelength float64) float64
}

// Constant is a homogeneous ratio
type Constant float64

// Ratio returns the constant regardless of position or wavelength
func (c Constant) Ratio(p core.Vec3, wavelength float64) float64 {
	return float64(c)
}

// TextureFunc adapts a plain function to a Texture
type TextureFunc func(p core.Vec3, wavelength float64) float64

// Ratio calls f
func (f TextureFunc) Ratio(p core.Vec3, wavelength float64) float64 {
	return f(p, wavelength)
}

// GaussianSpectrum is a ratio peaked around one wavelength, used to give
// diffuse surfaces a colour.
type GaussianSpectrum struct {
	Peak   float64 // ratio at Center
	Center float64 // nm
	Sigma  float64 // nm
}

// NewGaussianSpectrum creates a spectral texture. A non-positive sigma uses 25 nm.
func NewGaussianSpectrum(peak, center, sigma float64) *GaussianSpectrum {
	if sigma <= 0 {
		sigma = 25
	}
	return &GaussianSpectrum{Peak: peak, Center: center, Sigma: sigma}
}

// Ratio evaluates the gaussian at the given wavelength
func (g *GaussianSpectrum) Ratio(p core.Vec3, wavelength float64) float64 {
	d := wavelength - g.Center
	return g.Peak * math.Exp(-0.5*d*d/(g.Sigma*g.Sigma))
}

// Grid is a checkerboard on the plane perpendicular to a normal.
// Dark cells have ratio 0.5, light cells 1.
type Grid struct {
	n1, n2 core.Vec3
	width  float64
}

// NewGrid creates a checker texture with square cells of the given width
func NewGrid(normal core.Vec3, width float64) *Grid {
	n := normal.Normalize()
	n1 := core.Perpendicular(n)
	return &Grid{n1: n1, n2: n.Cross(n1), width: width}
}

// Ratio returns 0.5 or 1 depending on the cell containing p
func (g *Grid) Ratio(p core.Vec3, wavelength float64) float64 {
	a1 := int64(math.Floor(p.Dot(g.n1) / g.width))
	a2 := int64(math.Floor(p.Dot(g.n2) / g.width))
	if (a1&1)^(a2&1) == 1 {
		return 0.5
	}
	return 1
}
