package source

import (
	"math"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// distSource feeds a caller-owned generator to gonum distributions
type distSource struct {
	random *rand.Rand
}

func (s distSource) Uint64() uint64 { return s.random.Uint64() }
func (s distSource) Seed(uint64)    {}

// Spectrum draws wavelengths in nm
type Spectrum interface {
	Sample(random *rand.Rand) float64
	// PDF is the relative spectral density at wavelength. Delta spectra
	// report 0.
	PDF(wavelength float64) float64
}

// Mono is a single spectral line
type Mono float64

func (m Mono) Sample(*rand.Rand) float64 { return float64(m) }
func (m Mono) PDF(float64) float64       { return 0 }

const (
	// hc/k_B in nm·K
	hcOverK = 14.387770e6
	// x = hc/(λ k T) at the peak of the Planck curve in wavelength
	planckPeakX = 4.96511
	// Σ 1/j⁴ for j ≥ 1
	zeta4 = math.Pi * math.Pi * math.Pi * math.Pi / 90
)

// Planck is black-body radiation at temperature T (kelvin)
type Planck struct {
	T float64
}

// NewPlanck returns a black-body spectrum
func NewPlanck(t float64) (*Planck, error) {
	if t <= 0 {
		return nil, ErrBadTemperature
	}
	return &Planck{T: t}, nil
}

// Sample draws x = hc/(λkT) from x³/(eˣ-1) as a mixture of Gamma(4, L)
// variates, where term L is chosen with weight 1/L⁴.
func (p *Planck) Sample(random *rand.Rand) float64 {
	target := random.Float64() * zeta4
	sum, l := 0.0, 0
	for sum < target && l < 10000 {
		l++
		lf := float64(l)
		sum += 1 / (lf * lf * lf * lf)
	}
	if l == 0 {
		l = 1
	}
	x := distuv.Gamma{Alpha: 4, Beta: float64(l), Src: distSource{random}}.Rand()
	return hcOverK / x / p.T
}

// PeakWavelength is Wien's displacement maximum in nm
func (p *Planck) PeakWavelength() float64 {
	return hcOverK / planckPeakX / p.T
}

// PDF is the Planck curve scaled so that it is near 1 at the peak
func (p *Planck) PDF(wavelength float64) float64 {
	alpha := hcOverK / wavelength / p.T
	r := p.PeakWavelength() / wavelength
	return (r * r * r * r * r) / math.Expm1(alpha) * math.Expm1(planckPeakX)
}

// Gaussian is a normal line shape; non-positive draws are resampled
type Gaussian struct {
	Mean, Sigma float64
}

func (g Gaussian) Sample(random *rand.Rand) float64 {
	d := distuv.Normal{Mu: g.Mean, Sigma: g.Sigma, Src: distSource{random}}
	for {
		if l := d.Rand(); l > 0 {
			return l
		}
	}
}

func (g Gaussian) PDF(wavelength float64) float64 {
	return distuv.Normal{Mu: g.Mean, Sigma: g.Sigma}.Prob(wavelength)
}

// UniformSpectrum is flat over [Min, Max]
type UniformSpectrum struct {
	Min, Max float64
}

// Visible is flat over the visible band
var Visible = UniformSpectrum{Min: 380, Max: 780}

func (u UniformSpectrum) Sample(random *rand.Rand) float64 {
	return distuv.Uniform{Min: u.Min, Max: u.Max, Src: distSource{random}}.Rand()
}

func (u UniformSpectrum) PDF(wavelength float64) float64 {
	return distuv.Uniform{Min: u.Min, Max: u.Max}.Prob(wavelength)
}

// Tabulated is a piecewise-constant density. Edges has one more entry than
// Weights; bin i spans [Edges[i], Edges[i+1]) with density Weights[i].
type Tabulated struct {
	edges   []float64
	weights []float64
	cdf     []float64
}

// NewTabulated validates the table and builds its CDF
func NewTabulated(edges, weights []float64) (*Tabulated, error) {
	if len(weights) == 0 {
		return nil, ErrEmptySpectrum
	}
	if len(edges) != len(weights)+1 {
		return nil, ErrMismatchedTable
	}
	mass := make([]float64, len(weights))
	for i, w := range weights {
		width := edges[i+1] - edges[i]
		if w < 0 || width <= 0 {
			return nil, ErrInvalidRange
		}
		mass[i] = w * width
	}
	cdf := floats.CumSum(make([]float64, len(mass)), mass)
	if cdf[len(cdf)-1] <= 0 {
		return nil, ErrEmptySpectrum
	}
	return &Tabulated{
		edges:   append([]float64(nil), edges...),
		weights: append([]float64(nil), weights...),
		cdf:     cdf,
	}, nil
}

func (t *Tabulated) Sample(random *rand.Rand) float64 {
	total := t.cdf[len(t.cdf)-1]
	i := sort.SearchFloat64s(t.cdf, random.Float64()*total)
	if i >= len(t.weights) {
		i = len(t.weights) - 1
	}
	// skip empty bins that share a cumulative value with their successor
	for t.weights[i] == 0 && i+1 < len(t.weights) {
		i++
	}
	return t.edges[i] + random.Float64()*(t.edges[i+1]-t.edges[i])
}

// PDF is normalized so the density integrates to 1
func (t *Tabulated) PDF(wavelength float64) float64 {
	if wavelength < t.edges[0] || wavelength >= t.edges[len(t.edges)-1] {
		return 0
	}
	i := sort.SearchFloat64s(t.edges, wavelength)
	if i == len(t.edges) || t.edges[i] > wavelength {
		i--
	}
	return t.weights[i] / t.cdf[len(t.cdf)-1]
}
