package bitmap

import (
	"math"

	"github.com/df07/go-spectral-raytracer/pkg/core"
)

// lobe is one piecewise Gaussian term of the colour matching fit
type lobe struct {
	weight, mean, sigmaLow, sigmaHigh float64
}

func (l lobe) eval(wavelength float64) float64 {
	sigma := l.sigmaHigh
	if wavelength < l.mean {
		sigma = l.sigmaLow
	}
	t := (wavelength - l.mean) / sigma
	return l.weight * math.Exp(-0.5*t*t)
}

// CIE 1931 2° observer, multi-lobe fit by Wyman, Sloan and Shirley
var (
	lobesX = []lobe{{1.056, 599.8, 37.9, 31.0}, {0.362, 442.0, 16.0, 26.7}, {-0.065, 501.1, 20.4, 26.2}}
	lobesY = []lobe{{0.821, 568.8, 46.9, 40.5}, {0.286, 530.9, 16.3, 31.1}}
	lobesZ = []lobe{{1.217, 437.0, 11.8, 36.0}, {0.681, 459.0, 26.0, 13.8}}
)

func sumLobes(lobes []lobe, wavelength float64) float64 {
	s := 0.0
	for _, l := range lobes {
		s += l.eval(wavelength)
	}
	return s
}

// WavelengthToXYZ returns the CIE colour matching functions at wavelength (nm)
func WavelengthToXYZ(wavelength float64) (x, y, z float64) {
	return sumLobes(lobesX, wavelength), sumLobes(lobesY, wavelength), sumLobes(lobesZ, wavelength)
}

// XYZToRGB converts to linear sRGB primaries. Out of gamut channels are
// clamped to zero.
func XYZToRGB(x, y, z float64) (r, g, b float64) {
	r = 3.2406*x - 1.5372*y - 0.4986*z
	g = -0.9689*x + 1.8758*y + 0.0415*z
	b = 0.0557*x - 0.2040*y + 1.0570*z
	return math.Max(r, 0), math.Max(g, 0), math.Max(b, 0)
}

// WavelengthToRGB returns the opaque linear colour of monochromatic light.
// Wavelengths outside the visible band are black.
func WavelengthToRGB(wavelength float64) core.Color {
	if wavelength < core.WavelengthMin || wavelength > core.WavelengthMax {
		return core.Black
	}
	r, g, b := XYZToRGB(WavelengthToXYZ(wavelength))
	return core.NewColor(r, g, b, 1)
}
