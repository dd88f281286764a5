package engine

import (
	"fmt"
	"time"

	"github.com/df07/go-spectral-raytracer/pkg/bitmap"
	"github.com/df07/go-spectral-raytracer/pkg/core"
	"github.com/df07/go-spectral-raytracer/pkg/renderer"
	"github.com/df07/go-spectral-raytracer/pkg/trace"
)

// Eye renders what a camera sees by tracing rays backwards from it. Each
// sample carries one wavelength, and the light it gathers from emissive
// surfaces is added in that wavelength's colour. Recorders are not called.
// Rows draw from their own random streams, so the image depends on the
// seed only.
func (e *Engine) Eye(opts renderer.PictureOptions) (*bitmap.Bitmap, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("eye: %w", err)
	}
	cam := renderer.NewCamera(opts)
	bmp := bitmap.New(opts.Width, opts.Height)
	pool := newPool(opts)

	traceOpts := e.opts
	traceOpts.Record = false
	rowStats := make([]trace.Stats, opts.Height)

	start := time.Now()
	pool.Run(opts.Height, func(_, row int) {
		random := core.NewRandomStream(e.seed, uint64(row))
		t := e.tracer(traceOpts, random)
		id := int64(row) * int64(opts.Width) * int64(max(opts.SamplesPerPixel, 1))
		for i := 0; i < opts.Width; i++ {
			var total core.Color
			for k := 0; k < opts.SamplesPerPixel; k++ {
				ray := cam.Ray(random, i, row)
				ray.ID = id
				id++
				amp := t.Trace(ray)
				total = total.Add(bitmap.WavelengthToRGB(ray.Wavelength).Scale(amp))
			}
			if opts.SamplesPerPixel > 0 {
				total = total.Scale(1 / float64(opts.SamplesPerPixel))
			}
			bmp.Set(i, row, total.WithAlpha(1))
		}
		rowStats[row] = t.Stats()
	})

	var s trace.Stats
	for _, rs := range rowStats {
		s.Add(rs)
	}
	e.addStats(s)
	renderer.RenderStats{
		Kind:     "eye",
		Width:    opts.Width,
		Height:   opts.Height,
		Samples:  opts.SamplesPerPixel,
		Rays:     s.Rays,
		Duration: time.Since(start),
		Workers:  pool.NumWorkers(),
	}.Log()
	return bmp, nil
}

func newPool(opts renderer.PictureOptions) *renderer.RowPool {
	if !opts.Parallel {
		return renderer.NewRowPool(1)
	}
	return renderer.NewRowPool(opts.Workers)
}
