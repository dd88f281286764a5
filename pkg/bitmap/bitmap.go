package bitmap

import (
	"image"

	"github.com/df07/go-spectral-raytracer/pkg/core"
	"gonum.org/v1/gonum/floats"
)

// Bitmap is a grid of linear RGBA colours stored row by row. Row 0 is the
// top of the image.
type Bitmap struct {
	Width  int
	Height int
	Pix    []core.Color
}

// New creates a transparent black bitmap
func New(width, height int) *Bitmap {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Bitmap{Width: width, Height: height, Pix: make([]core.Color, width*height)}
}

// At returns the colour at column x of row y
func (b *Bitmap) At(x, y int) core.Color { return b.Pix[y*b.Width+x] }

// Set stores c at column x of row y
func (b *Bitmap) Set(x, y int, c core.Color) { b.Pix[y*b.Width+x] = c }

// Add accumulates c into the pixel at column x of row y
func (b *Bitmap) Add(x, y int, c core.Color) {
	i := y*b.Width + x
	b.Pix[i] = b.Pix[i].Add(c)
}

// Fill sets every pixel to c
func (b *Bitmap) Fill(c core.Color) {
	for i := range b.Pix {
		b.Pix[i] = c
	}
}

// SetAlpha sets the alpha of every pixel
func (b *Bitmap) SetAlpha(a float64) {
	for i := range b.Pix {
		b.Pix[i].A = a
	}
}

// MaxColor returns the largest colour channel in the bitmap
func (b *Bitmap) MaxColor() float64 {
	if len(b.Pix) == 0 {
		return 0
	}
	channels := make([]float64, len(b.Pix))
	for i, c := range b.Pix {
		channels[i] = c.MaxChannel()
	}
	return floats.Max(channels)
}

// NormalizeColor divides the colour channels by the largest one. An all
// black bitmap stays black.
func (b *Bitmap) NormalizeColor() {
	m := b.MaxColor()
	if m <= 0 {
		for i := range b.Pix {
			b.Pix[i] = core.Color{A: b.Pix[i].A}
		}
		return
	}
	for i := range b.Pix {
		b.Pix[i] = b.Pix[i].Scale(1 / m)
	}
}

// Gamma raises every colour channel to the power g
func (b *Bitmap) Gamma(g float64) {
	for i, c := range b.Pix {
		b.Pix[i] = core.Color{R: pow(c.R, g), G: pow(c.G, g), B: pow(c.B, g), A: c.A}
	}
}

// Clip clamps every channel to [0,1]
func (b *Bitmap) Clip() {
	for i, c := range b.Pix {
		b.Pix[i] = core.Color{R: clip(c.R), G: clip(c.G), B: clip(c.B), A: clip(c.A)}
	}
}

// Over composites every pixel over the opaque background colour
func (b *Bitmap) Over(background core.Color) {
	for i, c := range b.Pix {
		b.Pix[i] = c.Premultiply().Over(background)
	}
}

// Draw scales src into the rectangle r of b with nearest-neighbour
// sampling. Pixels falling outside b are dropped.
func (b *Bitmap) Draw(src *Bitmap, r image.Rectangle) {
	r = r.Canon()
	if r.Empty() || src.Width == 0 || src.Height == 0 {
		return
	}
	clipped := r.Intersect(image.Rect(0, 0, b.Width, b.Height))
	for y := clipped.Min.Y; y < clipped.Max.Y; y++ {
		sy := (y - r.Min.Y) * src.Height / r.Dy()
		for x := clipped.Min.X; x < clipped.Max.X; x++ {
			sx := (x - r.Min.X) * src.Width / r.Dx()
			b.Set(x, y, src.At(sx, sy))
		}
	}
}
