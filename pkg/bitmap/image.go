package bitmap

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // JPEG decoder
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-spectral-raytracer/pkg/core"
)

// Format is an image file format
type Format string

const (
	PNG Format = "png"
	PPM Format = "ppm"
)

// FormatFromPath infers the format from the file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return PNG, nil
	case ".ppm":
		return PPM, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, path)
}

// Image converts the bitmap to 8-bit sRGB. Channels are clipped to [0,1]
// first.
func (b *Bitmap) Image() image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			c := b.At(x, y)
			img.SetNRGBA(x, y, color.NRGBA{
				R: to8(encodeSRGB(clip(c.R))),
				G: to8(encodeSRGB(clip(c.G))),
				B: to8(encodeSRGB(clip(c.B))),
				A: to8(clip(c.A)),
			})
		}
	}
	return img
}

// Encode writes the bitmap to w in the given format
func (b *Bitmap) Encode(w io.Writer, format Format) error {
	switch format {
	case PNG:
		return png.Encode(w, b.Image())
	case PPM:
		return b.encodePPM(w)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// encodePPM writes a binary P6 file. Alpha is dropped.
func (b *Bitmap) encodePPM(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n255\n", b.Width, b.Height); err != nil {
		return err
	}
	row := make([]byte, 3*b.Width)
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			c := b.At(x, y)
			row[3*x] = to8(encodeSRGB(clip(c.R)))
			row[3*x+1] = to8(encodeSRGB(clip(c.G)))
			row[3*x+2] = to8(encodeSRGB(clip(c.B)))
		}
		if _, err := bw.Write(row); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Write saves the bitmap, choosing the format from the file extension
func (b *Bitmap) Write(path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}
	if err := b.Encode(file, format); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return file.Close()
}

// Read loads a PNG or JPEG image into a linear bitmap
func Read(path string) (*Bitmap, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return FromImage(img), nil
}

// FromImage converts an sRGB image into a linear bitmap
func FromImage(img image.Image) *Bitmap {
	bounds := img.Bounds()
	b := New(bounds.Dx(), bounds.Dy())
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			n := color.NRGBAModel.Convert(img.At(x+bounds.Min.X, y+bounds.Min.Y)).(color.NRGBA)
			b.Set(x, y, core.Color{
				R: decodeSRGB(float64(n.R) / 255),
				G: decodeSRGB(float64(n.G) / 255),
				B: decodeSRGB(float64(n.B) / 255),
				A: float64(n.A) / 255,
			})
		}
	}
	return b
}

func encodeSRGB(c float64) float64 {
	if c <= 0.0031308 {
		return 12.92 * c
	}
	return 1.055*math.Pow(c, 1/2.4) - 0.055
}

func decodeSRGB(c float64) float64 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

func to8(c float64) uint8 { return uint8(math.Round(c * 255)) }

func clip(c float64) float64 {
	if c < 0 || math.IsNaN(c) {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}

func pow(c, g float64) float64 {
	if c <= 0 {
		return 0
	}
	return math.Pow(c, g)
}
