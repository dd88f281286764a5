package scene

import (
	"github.com/df07/go-spectral-raytracer/pkg/core"
	"github.com/df07/go-spectral-raytracer/pkg/geometry"
	"github.com/df07/go-spectral-raytracer/pkg/material"
	"github.com/df07/go-spectral-raytracer/pkg/screen"
	"github.com/df07/go-spectral-raytracer/pkg/source"
)

// Lens geometry: a point source at the origin, the front half of a unit
// sphere of index 2 centred at z = 3 and a screen at z = 6. For a ball of
// index n the paraxial focus is 1/u + n/v = (n-1)/R behind the surface.
const (
	lensCenter = 3.0
	lensIndex  = 2.0
	lensScreen = 6.0
)

func newLens(info Info, q Quality) (*Scene, error) {
	s := newScene(info, q)

	front, err := geometry.NewPlane(core.NewVec3(0, 0, lensCenter), core.NewVec3(0, 0, 1))
	if err != nil {
		return nil, err
	}
	lens, err := geometry.NewQuadricSurface(geometry.QuadricSurfaceConfig{
		Name: "lens",
		Shape: geometry.QuadricConfig{
			Shape:  geometry.ShapeSphere,
			Origin: core.NewVec3(0, 0, lensCenter),
			Radius: 1,
		},
		Bound: geometry.PlaneBound{Plane: front},
		Material: glass(material.ConstantIndex(lensIndex), material.Mirror).
			SetColor(core.NewColor(0.6, 0.8, 1, 0.4)),
	})
	if err != nil {
		return nil, err
	}
	s.Engine.AddDevice(lens)

	scn, err := screen.NewPlane(geometry.PlaneConfig{
		Name:   "screen",
		Origin: core.NewVec3(0, 0, lensScreen),
		Normal: core.NewVec3(0, 0, 1),
	})
	if err != nil {
		return nil, err
	}
	s.Engine.AddDevice(scn)

	point, err := source.NewPointPosition(core.Vec3{}, core.NewVec3(0, 0, 1))
	if err != nil {
		return nil, err
	}
	src, err := source.NewComposite(1, source.Mono(material.WavelengthGreen), point, source.CosineDirection{HalfAngle: 0.1})
	if err != nil {
		return nil, err
	}
	s.Engine.AddSource(src)
	s.Rays = q.rays(1000000)

	raster := screen.DefaultRasterOptions()
	raster.Gray = true
	raster.Origin = core.NewVec3(0, 0, lensScreen)
	raster.SetScreenSize(0.1)
	s.Views = []View{{Label: "screen", Screen: scn, Raster: raster, Gamma: 0.5}}

	s.frame(q, 1000, 1000, core.NewVec3(8, 4, 5), core.NewVec3(0, 0, lensCenter), core.NewVec3(3, 3, 8), 1.2)
	return s, nil
}
