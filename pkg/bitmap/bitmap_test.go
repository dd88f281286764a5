package bitmap

import (
	"bytes"
	"errors"
	"image"
	"math"
	"path/filepath"
	"testing"

	"github.com/df07/go-spectral-raytracer/pkg/core"
)

func TestBitmap_NormalizeColor(t *testing.T) {
	b := New(2, 1)
	b.Set(0, 0, core.NewColor(2, 1, 0, 1))
	b.Set(1, 0, core.NewColor(0, 4, 1, 0.5))
	b.NormalizeColor()

	if got := b.At(1, 0); got.G != 1 || got.B != 0.25 || got.A != 0.5 {
		t.Errorf("brightest pixel = %+v, want G=1 B=0.25 A=0.5", got)
	}
	if got := b.At(0, 0); got.R != 0.5 || got.G != 0.25 {
		t.Errorf("other pixel = %+v, want R=0.5 G=0.25", got)
	}

	black := New(3, 3)
	black.SetAlpha(1)
	black.NormalizeColor()
	for _, c := range black.Pix {
		if c != core.Black {
			t.Fatalf("black bitmap should stay black, got %+v", c)
		}
	}
}

func TestBitmap_ClipAndGamma(t *testing.T) {
	b := New(1, 1)
	b.Set(0, 0, core.NewColor(-1, 0.25, 3, 2))
	b.Gamma(0.5)
	b.Clip()
	want := core.NewColor(0, 0.5, 1, 1)
	if got := b.At(0, 0); got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestWavelengthToRGB(t *testing.T) {
	tests := []struct {
		name       string
		wavelength float64
		dominant   string
	}{
		{"blue", 450, "b"},
		{"green", 550, "g"},
		{"red", 650, "r"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := WavelengthToRGB(tt.wavelength)
			if c.R < 0 || c.G < 0 || c.B < 0 {
				t.Fatalf("negative channel in %+v", c)
			}
			var got string
			switch c.MaxChannel() {
			case c.R:
				got = "r"
			case c.G:
				got = "g"
			default:
				got = "b"
			}
			if got != tt.dominant {
				t.Errorf("dominant channel of %gnm = %s, want %s (%+v)", tt.wavelength, got, tt.dominant, c)
			}
		})
	}

	for _, w := range []float64{200, 379, 781, 1500} {
		if c := WavelengthToRGB(w); c.MaxChannel() != 0 {
			t.Errorf("%gnm should be black, got %+v", w, c)
		}
	}
}

func TestEncode_PPM(t *testing.T) {
	b := New(3, 2)
	b.Fill(core.White)
	var buf bytes.Buffer
	if err := b.Encode(&buf, PPM); err != nil {
		t.Fatal(err)
	}
	header := "P6\n3 2\n255\n"
	if !bytes.HasPrefix(buf.Bytes(), []byte(header)) {
		t.Fatalf("bad header %q", buf.String()[:len(header)])
	}
	if got := buf.Len() - len(header); got != 3*3*2 {
		t.Errorf("payload = %d bytes, want 18", got)
	}
	for _, v := range buf.Bytes()[len(header):] {
		if v != 255 {
			t.Fatalf("white pixel byte = %d", v)
		}
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	b := New(1, 1)
	err := b.Write(filepath.Join(t.TempDir(), "out.tiff"))
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
	if err := b.Encode(&bytes.Buffer{}, Format("gif")); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestWriteRead_PNG(t *testing.T) {
	b := New(4, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			b.Set(x, y, core.NewColor(float64(x)/3, float64(y)/3, 0.5, 1))
		}
	}
	path := filepath.Join(t.TempDir(), "out.png")
	if err := b.Write(path); err != nil {
		t.Fatal(err)
	}
	got, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Width != 4 || got.Height != 4 {
		t.Fatalf("size = %dx%d", got.Width, got.Height)
	}
	for i := range b.Pix {
		w, g := b.Pix[i], got.Pix[i]
		if math.Abs(w.R-g.R) > 0.01 || math.Abs(w.G-g.G) > 0.01 || math.Abs(w.B-g.B) > 0.01 {
			t.Fatalf("pixel %d = %+v, want %+v", i, g, w)
		}
	}
}

func TestAnnotate(t *testing.T) {
	b := New(64, 32)
	b.Fill(core.Black)
	out, err := Annotate(b, []Label{{Text: "Hello", X: 4, Y: 4, Color: core.White}})
	if err != nil {
		t.Fatal(err)
	}
	lit := 0
	for _, c := range out.Pix {
		if c.R > 0.5 {
			lit++
		}
	}
	if lit == 0 {
		t.Error("label drew no pixels")
	}
	for _, c := range b.Pix {
		if c != core.Black {
			t.Fatal("Annotate must not modify its input")
		}
	}

	_, err = Annotate(b, []Label{{Text: "x", Font: filepath.Join(t.TempDir(), "missing.ttf")}})
	if err == nil {
		t.Error("expected an error for a missing font")
	}
}

func TestBitmap_Draw(t *testing.T) {
	src := New(2, 2)
	src.Set(0, 0, core.Red)
	src.Set(1, 0, core.Green)
	src.Set(0, 1, core.Blue)
	src.Set(1, 1, core.White)

	tests := []struct {
		name string
		x, y int
		want core.Color
	}{
		{"top left quadrant", 1, 1, core.Red},
		{"top right quadrant", 4, 2, core.Green},
		{"bottom left quadrant", 2, 4, core.Blue},
		{"bottom right quadrant", 5, 5, core.White},
		{"outside the inset", 7, 7, core.Black},
	}
	dst := New(8, 8)
	dst.Fill(core.Black)
	dst.Draw(src, image.Rect(0, 0, 6, 6))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dst.At(tt.x, tt.y); got != tt.want {
				t.Errorf("At(%d,%d) = %+v, want %+v", tt.x, tt.y, got, tt.want)
			}
		})
	}

	// insets hanging off the edge are clipped
	edge := New(4, 4)
	edge.Draw(src, image.Rect(2, 2, 6, 6))
	if edge.At(3, 3) != core.Red || edge.At(0, 0) != (core.Color{}) {
		t.Errorf("clipped inset: %+v %+v", edge.At(3, 3), edge.At(0, 0))
	}
}
