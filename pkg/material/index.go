package material

import "math"

// RefractiveIndex returns the index of a medium at a wavelength in nm
type RefractiveIndex interface {
	Index(wavelength float64) float64
}

// ConstantIndex is a non-dispersive medium
type ConstantIndex float64

// Index returns the constant
func (c ConstantIndex) Index(wavelength float64) float64 {
	return float64(c)
}

// Sellmeier3 is the three-term Sellmeier dispersion formula
// n² = 1 + Σ Bᵢλ²/(λ² - Cᵢ) with λ in micrometres.
type Sellmeier3 struct {
	B1, B2, B3 float64
	C1, C2, C3 float64 // µm²
}

// Index evaluates the dispersion formula
func (s Sellmeier3) Index(wavelength float64) float64 {
	l := 1e-3 * wavelength
	l2 := l * l
	n2 := 1 +
		s.B1*l2/(l2-s.C1) +
		s.B2*l2/(l2-s.C2) +
		s.B3*l2/(l2-s.C3)
	return math.Sqrt(n2)
}

// BK7 is Schott N-BK7 borosilicate crown glass
var BK7 = Sellmeier3{
	B1: 1.03961212, B2: 0.231792344, B3: 1.01046945,
	C1: 6.00069867e-3, C2: 2.00179144e-2, C3: 103.560653,
}
