package core

import "math"

const (
	// SMin is the smallest accepted intersection distance. It keeps a ray
	// from re-hitting the surface it starts on and doubles as the tie
	// tolerance between coincident surfaces.
	SMin = 1e-8

	// WavelengthMin and WavelengthMax bound the visible band in nm.
	WavelengthMin = 380.0
	WavelengthMax = 780.0
)

// Infinity is +Inf, used for missing hits and unbounded extents.
var Infinity = math.Inf(1)

// Ray is an immutable spectral light ray
type Ray struct {
	Origin       Vec3
	Direction    Vec3    // unit length
	Polarization Vec3    // unit length, orthogonal to Direction
	Amplitude    float64 // non-increasing along a path
	Wavelength   float64 // nm
	ID           int64   // stable per top-level emission
}

// NewRay creates a unit-amplitude ray with no polarization or wavelength
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction, Amplitude: 1}
}

// At returns the point at parameter s along the ray
func (r Ray) At(s float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(s))
}

// Child derives a new ray that inherits wavelength and identity.
// The amplitude factor is clamped to [0,1] so children never gain energy.
func (r Ray) Child(origin, direction Vec3, factor float64, polarization Vec3) Ray {
	if factor > 1 {
		factor = 1
	} else if factor < 0 {
		factor = 0
	}
	return Ray{
		Origin:       origin,
		Direction:    direction,
		Polarization: polarization,
		Amplitude:    r.Amplitude * factor,
		Wavelength:   r.Wavelength,
		ID:           r.ID,
	}
}
