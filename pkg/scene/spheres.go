package scene

import (
	"github.com/df07/go-spectral-raytracer/pkg/core"
	"github.com/df07/go-spectral-raytracer/pkg/geometry"
	"github.com/df07/go-spectral-raytracer/pkg/material"
)

// newSpheres lines up one sphere per scattering law along y
func newSpheres(info Info, q Quality) (*Scene, error) {
	s := newScene(info, q)
	if err := addRoom(s.Engine); err != nil {
		return nil, err
	}

	red := material.DefaultProperties().
		SetScatter(material.Diffuse).
		SetColor(core.Red)
	red.OutToInReflect = material.NewGaussianSpectrum(1, material.WavelengthRed, 25)

	spheres := []struct {
		name string
		y    float64
		m    *material.Properties
	}{
		{"diffuse", -3.6, red},
		{"mirror", -1.2, opaque(material.Mirror, 1).SetColor(core.NewColor(0.8, 0.8, 0.9, 1))},
		{"glass", 1.2, glass(material.ConstantIndex(1.5), material.Optical).SetColor(core.NewColor(0.6, 0.8, 1, 0.3))},
		{"metal", 3.6, opaque(material.Metal, 1).SetColor(core.NewColor(0.9, 0.7, 0.3, 1))},
	}
	for _, sp := range spheres {
		d, err := geometry.NewQuadricSurface(geometry.QuadricSurfaceConfig{
			Name: sp.name,
			Shape: geometry.QuadricConfig{
				Shape:  geometry.ShapeSphere,
				Origin: core.NewVec3(0, sp.y, 1),
				Radius: 1,
			},
			Material: sp.m,
		})
		if err != nil {
			return nil, err
		}
		s.Engine.AddDevice(d)
	}

	s.frame(q, 1000, 1000, core.NewVec3(10, 0, 2.5), core.NewVec3(0, 0, 0), core.NewVec3(3, 3, 3), 1.2)
	return s, nil
}
