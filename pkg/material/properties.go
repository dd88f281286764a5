package material

import (
	"errors"
	"fmt"

	"github.com/df07/go-spectral-raytracer/pkg/core"
)

var (
	ErrMissingTexture = errors.New("material: missing texture")
	ErrMissingIndex   = errors.New("material: missing refractive index")
	ErrNegativeValue  = errors.New("material: negative brightness")
)

// ScatterType selects the scattering law applied at a surface side
type ScatterType int

const (
	// Diffuse, Metal and Mirror use the configured reflect and transmit ratios
	Diffuse ScatterType = iota
	Metal
	Mirror
	// Optical derives the ratios from the refractive indices (Fresnel)
	Optical
	// Rayleigh scatters the reflect share by the Rayleigh phase function
	Rayleigh
)

func (s ScatterType) String() string {
	switch s {
	case Diffuse:
		return "diffuse"
	case Metal:
		return "metal"
	case Mirror:
		return "mirror"
	case Optical:
		return "optical"
	case Rayleigh:
		return "rayleigh"
	default:
		return fmt.Sprintf("ScatterType(%d)", int(s))
	}
}

// Properties is the optical material of one surface. The four ratios are
// keyed by crossing direction: InToOut applies to rays arriving from the
// inner side, OutToIn to rays arriving from the outer side.
type Properties struct {
	InToOutReflect  Texture
	OutToInReflect  Texture
	InToOutTransmit Texture
	OutToInTransmit Texture

	InnerScatter ScatterType
	OuterScatter ScatterType

	InnerIndex RefractiveIndex
	OuterIndex RefractiveIndex

	// Brightness is the self-emission picked up by rays terminating here
	Brightness float64

	// Preview colours; not used by transport
	InnerColor core.Color
	OuterColor core.Color
}

// DefaultProperties returns an opaque white diffuse reflector in vacuum
func DefaultProperties() *Properties {
	return &Properties{
		InToOutReflect:  Constant(1),
		OutToInReflect:  Constant(1),
		InToOutTransmit: Constant(0),
		OutToInTransmit: Constant(0),
		InnerScatter:    Diffuse,
		OuterScatter:    Diffuse,
		InnerIndex:      ConstantIndex(1),
		OuterIndex:      ConstantIndex(1),
		InnerColor:      core.White,
		OuterColor:      core.White,
	}
}

// Validate checks that every slot is populated
func (p *Properties) Validate() error {
	if p.InToOutReflect == nil || p.OutToInReflect == nil ||
		p.InToOutTransmit == nil || p.OutToInTransmit == nil {
		return ErrMissingTexture
	}
	if p.InnerIndex == nil || p.OuterIndex == nil {
		return ErrMissingIndex
	}
	if p.Brightness < 0 {
		return ErrNegativeValue
	}
	return nil
}

// Clone returns a shallow copy; textures and indices are shared
func (p *Properties) Clone() *Properties {
	c := *p
	return &c
}

// SetScatter sets the scattering law on both sides
func (p *Properties) SetScatter(s ScatterType) *Properties {
	p.InnerScatter = s
	p.OuterScatter = s
	return p
}

// SetReflect sets the reflect ratio for both crossing directions
func (p *Properties) SetReflect(t Texture) *Properties {
	p.InToOutReflect = t
	p.OutToInReflect = t
	return p
}

// SetTransmit sets the transmit ratio for both crossing directions
func (p *Properties) SetTransmit(t Texture) *Properties {
	p.InToOutTransmit = t
	p.OutToInTransmit = t
	return p
}

// SetColor sets both preview colours
func (p *Properties) SetColor(c core.Color) *Properties {
	p.InnerColor = c
	p.OuterColor = c
	return p
}

// SetInnerIndex sets the refractive index of the inner medium
func (p *Properties) SetInnerIndex(n RefractiveIndex) *Properties {
	p.InnerIndex = n
	return p
}

// SetBrightness sets the self-emission
func (p *Properties) SetBrightness(b float64) *Properties {
	p.Brightness = b
	return p
}

// Interface is the material as seen by a ray arriving from one side
type Interface struct {
	Scatter   ScatterType
	Reflect   float64
	Transmit  float64
	FromIndex float64
	ToIndex   float64
}

// Side resolves the material for a ray arriving from the inner side (inner
// true) or the outer side at point p. Ratios are not evaluated for Optical
// surfaces, whose ratios come from the Fresnel equations.
func (p *Properties) Side(inner bool, point core.Vec3, wavelength float64) Interface {
	var in Interface
	if inner {
		in.Scatter = p.InnerScatter
		in.FromIndex = p.InnerIndex.Index(wavelength)
		in.ToIndex = p.OuterIndex.Index(wavelength)
		if in.Scatter != Optical {
			in.Reflect = p.InToOutReflect.Ratio(point, wavelength)
			in.Transmit = p.InToOutTransmit.Ratio(point, wavelength)
		}
	} else {
		in.Scatter = p.OuterScatter
		in.FromIndex = p.OuterIndex.Index(wavelength)
		in.ToIndex = p.InnerIndex.Index(wavelength)
		if in.Scatter != Optical {
			in.Reflect = p.OutToInReflect.Ratio(point, wavelength)
			in.Transmit = p.OutToInTransmit.Ratio(point, wavelength)
		}
	}
	return in
}
