package scene

import (
	"math"

	"github.com/df07/go-spectral-raytracer/pkg/core"
	"github.com/df07/go-spectral-raytracer/pkg/geometry"
	"github.com/df07/go-spectral-raytracer/pkg/material"
)

// newCube returns a unit cube resting on z = 0.5 as the convex hull of
// its six faces
func newCube(name string, color core.Color) (*geometry.Convex, error) {
	var faces []geometry.Surface
	for _, n := range []core.Vec3{
		core.NewVec3(1, 0, 0), core.NewVec3(-1, 0, 0),
		core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0),
		core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1),
	} {
		face, err := geometry.NewPlaneSurface(geometry.PlaneConfig{
			Name:     name,
			Origin:   core.NewVec3(0, 0, 1).Add(n.Multiply(0.5)),
			Normal:   n,
			Material: material.DefaultProperties().SetColor(color),
		})
		if err != nil {
			return nil, err
		}
		faces = append(faces, face)
	}
	return geometry.NewConvex(name, faces...)
}

// newBoxHole shows bound algebra: a sphere split by a box bound into an
// opaque cap and a faint remainder, and a floor cut by a box minus a box
func newBoxHole(info Info, q Quality) (*Scene, error) {
	s := newScene(info, q)
	inf := math.Inf(1)

	cube, err := newCube("cube", core.NewColor(0.9, 0.9, 0.9, 1))
	if err != nil {
		return nil, err
	}

	cut := box(-0.5, 0.5, -0.5, 0.5, 0.5, 1.5)
	unit := geometry.QuadricConfig{Shape: geometry.ShapeSphere, Radius: 1}
	inside, err := geometry.NewQuadricSurface(geometry.QuadricSurfaceConfig{
		Name:     "cap",
		Shape:    unit,
		Bound:    cut,
		Material: material.DefaultProperties().SetColor(core.Red),
	})
	if err != nil {
		return nil, err
	}
	outside, err := geometry.NewQuadricSurface(geometry.QuadricSurfaceConfig{
		Name:     "shell",
		Shape:    unit,
		Bound:    geometry.Inverse{Bound: cut},
		Material: material.DefaultProperties().SetColor(core.Red.WithAlpha(0.2)),
	})
	if err != nil {
		return nil, err
	}

	floor, err := geometry.NewPlaneSurface(geometry.PlaneConfig{
		Name:   "floor",
		Origin: core.NewVec3(0, 0, -1),
		Normal: core.NewVec3(0, 0, 1),
		Bound: geometry.All{
			box(-3, 3, -3, 3, -inf, inf),
			geometry.Inverse{Bound: box(-1, 1, -1, 1, -inf, inf)},
		},
		Material: material.DefaultProperties().SetColor(core.NewColor(0.5, 0.6, 0.9, 1)),
	})
	if err != nil {
		return nil, err
	}

	for _, d := range []geometry.Device{cube, inside, outside, floor} {
		s.Engine.AddDevice(d)
	}

	s.frame(q, 1000, 1000, core.NewVec3(3, 1, 3), core.Vec3{}, core.NewVec3(0, 0, 4), 1)
	return s, nil
}
