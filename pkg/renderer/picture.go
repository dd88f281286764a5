package renderer

import (
	"errors"
	"math"

	"github.com/df07/go-spectral-raytracer/pkg/core"
)

var ErrBadPicture = errors.New("renderer: picture needs a positive size and non-empty window")

// PictureOptions describes an image of the scene. The camera sits at
// Origin and looks along -(N1 x N2); N1 and N2 span the image plane at unit
// distance, so the window extents are tangents of the half field of view.
type PictureOptions struct {
	Width  int
	Height int

	Origin core.Vec3
	N1     core.Vec3
	N2     core.Vec3

	N1Min, N1Max float64
	N2Min, N2Max float64

	// FocalDistance is the distance of the sharp plane; +Inf focuses at
	// infinity
	FocalDistance    float64
	ApertureDiameter float64

	// AntiAliasLevel 0 shoots one preview ray per pixel, n shoots (n+1)^2
	AntiAliasLevel  int
	SamplesPerPixel int

	// LightOrigin is the point light of the preview shading. Infinite
	// components make it a directional light.
	LightOrigin core.Vec3

	// Workers is the number of render goroutines; 0 uses every CPU
	Workers  int
	Parallel bool
	// Shadows enables light transmission tests in the preview
	Shadows bool
}

// DefaultPictureOptions returns a 500x500 view down the -z axis
func DefaultPictureOptions() PictureOptions {
	return PictureOptions{
		Width:           500,
		Height:          500,
		N1:              core.NewVec3(1, 0, 0),
		N2:              core.NewVec3(0, 1, 0),
		N1Min:           -1,
		N1Max:           1,
		N2Min:           -1,
		N2Max:           1,
		FocalDistance:   math.Inf(1),
		SamplesPerPixel: 100,
		LightOrigin:     core.NewVec3(0, 0, math.Inf(1)),
	}
}

// Validate checks the image size and window
func (o PictureOptions) Validate() error {
	if o.Width <= 0 || o.Height <= 0 || o.N1Max <= o.N1Min || o.N2Max <= o.N2Min {
		return ErrBadPicture
	}
	return nil
}

// LookAt orients the image plane towards target and focuses on it. N2 is
// kept as close to +z as possible.
func (o *PictureOptions) LookAt(target core.Vec3) {
	r := target.Subtract(o.Origin).Normalize()
	z := core.NewVec3(0, 0, 1)
	n2 := z.Subtract(r.Multiply(z.Dot(r)))
	if n2.LengthSquared() == 0 {
		if r.Z < 0 {
			n2 = core.NewVec3(0, 1, 0)
		} else {
			n2 = core.NewVec3(0, -1, 0)
		}
	} else {
		n2 = n2.Normalize()
	}
	o.N1 = r.Cross(n2)
	o.N2 = n2
	o.FocalDistance = target.Subtract(o.Origin).Length()
}

// SetFieldOfView sets both window extents to [-s/2, s/2]
func (o *PictureOptions) SetFieldOfView(s float64) {
	o.SetFieldOfView1(s)
	o.SetFieldOfView2(s)
}

func (o *PictureOptions) SetFieldOfView1(s float64) { o.N1Min, o.N1Max = -s/2, s/2 }
func (o *PictureOptions) SetFieldOfView2(s float64) { o.N2Min, o.N2Max = -s/2, s/2 }

// Scaler returns the pixel to window mapping of the picture
func (o PictureOptions) Scaler() Scaler {
	return Scaler{
		XMin: o.N1Min, XMax: o.N1Max,
		YMin: o.N2Min, YMax: o.N2Max,
		W: float64(o.Width), H: float64(o.Height),
	}
}
