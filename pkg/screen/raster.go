package screen

import (
	"math"

	"github.com/df07/go-spectral-raytracer/pkg/bitmap"
	"github.com/df07/go-spectral-raytracer/pkg/core"
	"github.com/df07/go-spectral-raytracer/pkg/renderer"
)

// RasterOptions places a pixel grid on the screen. Hit points are
// projected onto N1 and N2 relative to Origin.
type RasterOptions struct {
	Width  int
	Height int

	Origin core.Vec3
	N1     core.Vec3
	N2     core.Vec3

	N1Min, N1Max float64
	N2Min, N2Max float64

	// Gray counts rays in white instead of their wavelength colour
	Gray bool
}

// DefaultRasterOptions returns a 500x500 grid over [-1,1]² of the xy plane
func DefaultRasterOptions() RasterOptions {
	return RasterOptions{
		Width:  500,
		Height: 500,
		N1:     core.NewVec3(1, 0, 0),
		N2:     core.NewVec3(0, 1, 0),
		N1Min:  -1,
		N1Max:  1,
		N2Min:  -1,
		N2Max:  1,
	}
}

// SetScreenSize centres a square window of side s on Origin
func (o *RasterOptions) SetScreenSize(s float64) {
	o.N1Min, o.N1Max = -s/2, s/2
	o.N2Min, o.N2Max = -s/2, s/2
}

func (o RasterOptions) scaler() renderer.Scaler {
	return renderer.Scaler{
		XMin: o.N1Min, XMax: o.N1Max,
		YMin: o.N2Min, YMax: o.N2Max,
		W: float64(o.Width), H: float64(o.Height),
	}
}

// Raster accumulates rays into an opaque bitmap. Colour channels are
// normalised by the brightest channel of the image.
func Raster(rays []core.Ray, opts RasterOptions) *bitmap.Bitmap {
	bmp := bitmap.New(opts.Width, opts.Height)
	s := opts.scaler()
	for _, r := range rays {
		p := r.Origin.Subtract(opts.Origin)
		x := math.Floor(s.WorldToPixelX(p.Dot(opts.N1)))
		y := math.Floor(s.WorldToPixelY(p.Dot(opts.N2)))
		if x < 0 || y < 0 || x >= float64(opts.Width) || y >= float64(opts.Height) {
			continue
		}
		c := core.White
		if !opts.Gray {
			c = bitmap.WavelengthToRGB(r.Wavelength)
		}
		bmp.Add(int(x), int(y), c.Scale(r.Amplitude).WithAlpha(0))
	}
	bmp.NormalizeColor()
	bmp.SetAlpha(1)
	return bmp
}

// Raster renders the recorded rays
func (s *Screen) Raster(opts RasterOptions) *bitmap.Bitmap {
	return Raster(s.Rays(), opts)
}

// WriteRaster renders the recorded rays to an image file
func (s *Screen) WriteRaster(path string, opts RasterOptions) error {
	return s.Raster(opts).Write(path)
}
