package scene

import (
	"math"

	"github.com/df07/go-spectral-raytracer/pkg/core"
	"github.com/df07/go-spectral-raytracer/pkg/geometry"
	"github.com/df07/go-spectral-raytracer/pkg/material"
	"github.com/df07/go-spectral-raytracer/pkg/screen"
	"github.com/df07/go-spectral-raytracer/pkg/source"
)

const prismScreenDistance = 20

// newPrism builds a triangular BK7 prism along x. A thin line of 5000K
// light enters one face and the spectrum lands on a screen at y = 20.
func newPrism(info Info, q Quality) (*Scene, error) {
	s := newScene(info, q)

	faces := []struct {
		origin, normal core.Vec3
		color          core.Color
	}{
		{core.NewVec3(0, 0, 1), core.NewVec3(0, 1, 0.1), core.NewColor(1, 1, 1, 0.1)},
		{core.NewVec3(0, 0, 1), core.NewVec3(0, -1, 0.1), core.NewColor(1, 1, 1, 0.1)},
		{core.NewVec3(0, 0, -1), core.NewVec3(0, 0, -1), core.NewColor(1, 1, 1, 0.1)},
		{core.NewVec3(1, 0, 0), core.NewVec3(1, 0, 0), core.NewColor(1, 0, 0, 0.9)},
		{core.NewVec3(-1, 0, 0), core.NewVec3(-1, 0, 0), core.NewColor(1, 0, 0, 0.9)},
	}
	members := make([]geometry.Surface, 0, len(faces))
	for _, f := range faces {
		p, err := geometry.NewPlaneSurface(geometry.PlaneConfig{
			Name:     "prism",
			Origin:   f.origin,
			Normal:   f.normal.Normalize(),
			Material: glass(material.BK7, material.Mirror).SetColor(f.color),
		})
		if err != nil {
			return nil, err
		}
		members = append(members, p)
	}
	prism, err := geometry.NewConvex("prism", members...)
	if err != nil {
		return nil, err
	}
	s.Engine.AddDevice(prism)

	inf := math.Inf(1)
	scn, err := screen.NewPlane(geometry.PlaneConfig{
		Name:   "screen",
		Origin: core.NewVec3(0, prismScreenDistance, 0),
		Normal: core.NewVec3(0, 1, 0),
		Bound:  box(-1, 1, -inf, inf, -1, 1),
	})
	if err != nil {
		return nil, err
	}
	s.Engine.AddDevice(scn)

	planck, err := source.NewPlanck(5000)
	if err != nil {
		return nil, err
	}
	line, err := source.NewLinePosition(core.NewVec3(-0.01, -4, 0), core.NewVec3(0.01, -4, 0), core.NewVec3(0, 1, 0.06))
	if err != nil {
		return nil, err
	}
	src, err := source.NewComposite(1, planck, line, source.UniformDirection{HalfAngle: 0})
	if err != nil {
		return nil, err
	}
	s.Engine.AddSource(src)
	s.Rays = q.rays(1000000)

	raster := screen.DefaultRasterOptions()
	raster.Width, raster.Height = 200, 200
	raster.N1, raster.N2 = core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 1)
	raster.N1Min, raster.N1Max = -0.02, 0.02
	raster.N2Min, raster.N2Max = -0.7, -0.6
	s.Views = []View{{Label: "screen", Screen: scn, Raster: raster}}

	s.frame(q, 2000, 400,
		core.NewVec3(40, prismScreenDistance/2, 0.5),
		core.NewVec3(0, prismScreenDistance/2, 0),
		core.NewVec3(5, prismScreenDistance/2, 5), 1)
	s.Picture.SetFieldOfView2(0.2)
	return s, nil
}
