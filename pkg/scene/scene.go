package scene

import (
	"fmt"
	"strings"

	"github.com/df07/go-spectral-raytracer/pkg/bitmap"
	"github.com/df07/go-spectral-raytracer/pkg/core"
	"github.com/df07/go-spectral-raytracer/pkg/engine"
	"github.com/df07/go-spectral-raytracer/pkg/geometry"
	"github.com/df07/go-spectral-raytracer/pkg/material"
	"github.com/df07/go-spectral-raytracer/pkg/recorder"
	"github.com/df07/go-spectral-raytracer/pkg/renderer"
	"github.com/df07/go-spectral-raytracer/pkg/screen"
)

// Quality scales picture sizes, samples per pixel and campaign sizes
type Quality int

const (
	Fast Quality = iota
	Good
	Best
)

func (q Quality) String() string {
	switch q {
	case Fast:
		return "fast"
	case Good:
		return "good"
	case Best:
		return "best"
	}
	return fmt.Sprintf("Quality(%d)", int(q))
}

// ParseQuality accepts fast, good or best
func ParseQuality(s string) (Quality, error) {
	switch strings.ToLower(s) {
	case "fast", "":
		return Fast, nil
	case "good":
		return Good, nil
	case "best":
		return Best, nil
	}
	return Fast, fmt.Errorf("%w: %q", ErrUnknownQuality, s)
}

// size scales a nominal full-quality picture dimension
func (q Quality) size(n int) int {
	switch q {
	case Fast:
		n /= 10
	case Good:
		n /= 2
	}
	if n < 1 {
		n = 1
	}
	return n
}

func (q Quality) samples() int {
	switch q {
	case Fast:
		return 50
	case Good:
		return 500
	}
	return 5000
}

// rays scales a nominal full-quality campaign size
func (q Quality) rays(n int) int {
	switch q {
	case Fast:
		n /= 100
	case Good:
		n /= 10
	}
	if n < 1 {
		n = 1
	}
	return n
}

// View is a screen together with the raster that displays it
type View struct {
	Label  string
	Screen *screen.Screen
	Raster screen.RasterOptions
	// Gamma is applied to the normalised raster when positive
	Gamma float64
}

// Image rasterises the rays the screen has recorded so far
func (v View) Image() *bitmap.Bitmap {
	bmp := v.Screen.Raster(v.Raster)
	if v.Gamma > 0 {
		bmp.Gamma(v.Gamma)
	}
	return bmp
}

// Scene is a fully assembled engine plus the pictures worth taking of it
type Scene struct {
	Name        string
	Description string
	Engine      *engine.Engine
	// Picture frames both the devices picture and the eye render
	Picture renderer.PictureOptions
	Views   []View
	// Rays is the default campaign size; zero means the scene has no sources
	Rays     int
	Tracking *recorder.Tracking
}

func newScene(info Info, q Quality) *Scene {
	pic := renderer.DefaultPictureOptions()
	pic.SamplesPerPixel = q.samples()
	return &Scene{
		Name:        info.ID,
		Description: info.Description,
		Engine:      engine.New(engine.DefaultOptions()),
		Picture:     pic,
	}
}

// frame points the picture from origin at target
func (s *Scene) frame(q Quality, width, height int, origin, target, light core.Vec3, fov float64) {
	s.Picture.Width, s.Picture.Height = q.size(width), q.size(height)
	s.Picture.Origin = origin
	s.Picture.LookAt(target)
	s.Picture.SetFieldOfView(fov)
	s.Picture.LightOrigin = light
	s.Picture.AntiAliasLevel = int(q) + 1
}

// Screen returns the view labelled name
func (s *Scene) Screen(label string) (View, bool) {
	for _, v := range s.Views {
		if v.Label == label {
			return v, true
		}
	}
	return View{}, false
}

// box returns a box bound limited on x, y and z; use ±Inf to leave an axis open
func box(x0, x1, y0, y1, z0, z1 float64) geometry.Box {
	return geometry.Box{X0: x0, X1: x1, Y0: y0, Y1: y1, Z0: z0, Z1: z1}
}

func opaque(scatter material.ScatterType, reflect float64) *material.Properties {
	return material.DefaultProperties().
		SetScatter(scatter).
		SetReflect(material.Constant(reflect))
}

// glass is a lossless refracting interface with the given inner index
func glass(index material.RefractiveIndex, scatter material.ScatterType) *material.Properties {
	return material.DefaultProperties().
		SetScatter(scatter).
		SetReflect(material.Constant(0)).
		SetTransmit(material.Constant(1)).
		SetInnerIndex(index)
}
