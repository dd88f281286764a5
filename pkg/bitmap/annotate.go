package bitmap

import (
	"fmt"
	"image"

	"github.com/df07/go-spectral-raytracer/pkg/core"
	"github.com/fogleman/gg"
)

// Label is a line of text drawn onto a bitmap. X and Y are pixel
// coordinates; AnchorX and AnchorY place the text relative to them
// (0,0 is top left, 0.5,0.5 is centred).
type Label struct {
	Text    string
	X, Y    float64
	Color   core.Color
	AnchorX float64
	AnchorY float64
	// Font is an optional TrueType file; the built-in bitmap face is used
	// when empty
	Font     string
	FontSize float64
}

// Annotate returns a copy of b with the labels composited over it
func Annotate(b *Bitmap, labels []Label) (*Bitmap, error) {
	dc := gg.NewContext(b.Width, b.Height)
	for _, l := range labels {
		if l.Font != "" {
			size := l.FontSize
			if size <= 0 {
				size = 14
			}
			if err := dc.LoadFontFace(l.Font, size); err != nil {
				return nil, fmt.Errorf("label %q: %w", l.Text, err)
			}
		}
		c := l.Color
		dc.SetRGBA(encodeSRGB(clip(c.R)), encodeSRGB(clip(c.G)), encodeSRGB(clip(c.B)), clip(c.A))
		dc.DrawStringAnchored(l.Text, l.X, l.Y, l.AnchorX, l.AnchorY)
	}

	out := &Bitmap{Width: b.Width, Height: b.Height, Pix: make([]core.Color, len(b.Pix))}
	copy(out.Pix, b.Pix)
	mask, ok := dc.Image().(*image.RGBA)
	if !ok {
		return out, nil
	}
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			px := mask.RGBAAt(x, y)
			if px.A == 0 {
				continue
			}
			// the mask is premultiplied sRGB
			a := float64(px.A) / 255
			text := core.Color{
				R: decodeSRGB(float64(px.R)/255/a) * a,
				G: decodeSRGB(float64(px.G)/255/a) * a,
				B: decodeSRGB(float64(px.B)/255/a) * a,
				A: a,
			}
			under := out.At(x, y)
			out.Set(x, y, unpremultiply(text.Over(under.Premultiply())))
		}
	}
	return out, nil
}

func unpremultiply(c core.Color) core.Color {
	if c.A <= 0 {
		return core.Color{}
	}
	return core.Color{R: c.R / c.A, G: c.G / c.A, B: c.B / c.A, A: c.A}
}
