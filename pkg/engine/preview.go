package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/df07/go-spectral-raytracer/pkg/bitmap"
	"github.com/df07/go-spectral-raytracer/pkg/core"
	"github.com/df07/go-spectral-raytracer/pkg/geometry"
	"github.com/df07/go-spectral-raytracer/pkg/material"
	"github.com/df07/go-spectral-raytracer/pkg/renderer"
	"github.com/df07/go-spectral-raytracer/pkg/trace"
)

// maxLayers bounds how many surfaces a preview ray looks through
const maxLayers = 999

// Previewer draws the devices of a scene without light transport
type Previewer interface {
	Preview(devices []geometry.Device, opts renderer.PictureOptions) *bitmap.Bitmap
}

// DevicesPicture draws the scene's geometry with its preview colours
func (e *Engine) DevicesPicture(opts renderer.PictureOptions) (*bitmap.Bitmap, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("preview: %w", err)
	}
	start := time.Now()
	bmp := e.previewer.Preview(e.devices, opts)
	n := opts.AntiAliasLevel + 1
	renderer.RenderStats{
		Kind:     "preview",
		Width:    opts.Width,
		Height:   opts.Height,
		Samples:  n * n,
		Rays:     int64(opts.Width) * int64(opts.Height) * int64(n*n),
		Duration: time.Since(start),
		Workers:  newPool(opts).NumWorkers(),
	}.Log()
	return bmp, nil
}

// DirectPreview shades every surface a camera ray passes through with its
// preview colour lit by opts.LightOrigin, and composites the layers front
// to back over black.
type DirectPreview struct{}

// Preview implements Previewer
func (DirectPreview) Preview(devices []geometry.Device, opts renderer.PictureOptions) *bitmap.Bitmap {
	cam := renderer.NewCamera(opts)
	bmp := bitmap.New(opts.Width, opts.Height)
	n := opts.AntiAliasLevel + 1

	newPool(opts).Run(opts.Height, func(_, row int) {
		for i := 0; i < opts.Width; i++ {
			var sum core.Color
			for ii := 0; ii < n; ii++ {
				for jj := 0; jj < n; jj++ {
					ray := cam.PreviewRay(i, row, ii, jj, n)
					sum = sum.Add(pictureColor(devices, ray, opts))
				}
			}
			bmp.Set(i, row, sum.ScaleAll(1/float64(n*n)))
		}
	})
	return bmp
}

func pictureColor(devices []geometry.Device, ray core.Ray, opts renderer.PictureOptions) core.Color {
	var color core.Color
	for layer := 0; layer < maxLayers; layer++ {
		idx, _, ok := trace.Nearest(devices, ray)
		if !ok {
			break
		}
		hit, ok := devices[idx].Intersect(ray, geometry.TracingMode)
		if !ok {
			break
		}
		front, back := sideColors(hit)
		n := hit.Normal
		if hit.Exiting {
			n = n.Negate()
		}

		var c core.Color
		if opts.Shadows {
			c = shadeTransmitting(ray.Direction, opts.LightOrigin, hit.Point, n, front, back.A)
			c = c.Scale(lighting(devices, hit.Point, opts.LightOrigin))
		} else {
			c = shade(ray.Direction, opts.LightOrigin, hit.Point, n, front)
		}

		color = color.Over(c.Premultiply())
		if color.A >= 0.99999 {
			break
		}
		ray.Origin = hit.Point
	}
	return color.Over(core.Black)
}

// sideColors returns the colour of the side a ray sees and of the other one
func sideColors(hit geometry.Hit) (front, back core.Color) {
	m := hit.Material
	if m == nil {
		m = material.DefaultProperties()
	}
	if hit.Exiting {
		return m.InnerColor, m.OuterColor
	}
	return m.OuterColor, m.InnerColor
}

// thickness converts a layer's alpha at normal incidence to its alpha when
// crossed at the angle between d and n
func thickness(d, n core.Vec3, alpha float64) float64 {
	cos := math.Abs(n.Dot(d))
	ratio := (1 + 1e-6) / (cos + 1e-6)
	return 1 - math.Pow(1-alpha, ratio)
}

// shade lights a surface with a wrapped cosine: fully lit facing the light,
// a quarter lit edge-on and black facing away
func shade(d, light, p, n core.Vec3, color core.Color) core.Color {
	l := (cosToLight(light, p, n) + 1) / 2
	l *= l
	alpha := 1.0
	if color.A != 1 {
		alpha = thickness(d, n, color.A)
	}
	return core.Color{R: color.R * l, G: color.G * l, B: color.B * l, A: alpha}
}

// shadeTransmitting lights a surface with a plain cosine. Light from
// behind passes through in proportion to the far side's transparency.
func shadeTransmitting(d, light, p, n core.Vec3, color core.Color, backAlpha float64) core.Color {
	l := cosToLight(light, p, n)
	if l < 0 {
		l = -l * (1 - backAlpha)
	}
	return core.Color{R: color.R * l, G: color.G * l, B: color.B * l, A: thickness(d, n, color.A)}
}

// toLight returns the unit direction from p to the light and its distance.
// A light with one infinite coordinate lies at infinity along that axis.
func toLight(light, p core.Vec3) (core.Vec3, float64) {
	if light.IsInf() {
		var d core.Vec3
		switch {
		case math.IsInf(light.X, 0) && !math.IsInf(light.Y, 0) && !math.IsInf(light.Z, 0):
			d = core.NewVec3(math.Copysign(1, light.X), 0, 0)
		case !math.IsInf(light.X, 0) && math.IsInf(light.Y, 0) && !math.IsInf(light.Z, 0):
			d = core.NewVec3(0, math.Copysign(1, light.Y), 0)
		case !math.IsInf(light.X, 0) && !math.IsInf(light.Y, 0) && math.IsInf(light.Z, 0):
			d = core.NewVec3(0, 0, math.Copysign(1, light.Z))
		default:
			d = core.NewVec3(0, 0, 1)
		}
		return d, math.Inf(1)
	}
	v := light.Subtract(p)
	return v.Normalize(), v.Length()
}

func cosToLight(light, p, n core.Vec3) float64 {
	d, _ := toLight(light, p)
	return d.Dot(n.Normalize())
}

// lighting returns the fraction of light reaching p through the
// translucent surfaces between p and the light
func lighting(devices []geometry.Device, p, light core.Vec3) float64 {
	d, dist := toLight(light, p)
	ray := core.NewRay(p, d)
	trans := 1.0
	for layer := 0; layer < maxLayers && trans > 0; layer++ {
		idx, near, ok := trace.Nearest(devices, ray)
		if !ok || near.Distance >= dist {
			break
		}
		hit, ok := devices[idx].Intersect(ray, geometry.TracingMode)
		if !ok {
			break
		}
		// the light crosses the medium behind the surface
		_, back := sideColors(hit)
		trans *= 1 - thickness(d, hit.Normal, back.A)
		dist -= hit.Distance
		ray.Origin = hit.Point
	}
	return trans
}
