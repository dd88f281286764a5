package scene

import (
	"math"

	"github.com/df07/go-spectral-raytracer/pkg/core"
	"github.com/df07/go-spectral-raytracer/pkg/engine"
	"github.com/df07/go-spectral-raytracer/pkg/geometry"
	"github.com/df07/go-spectral-raytracer/pkg/material"
)

// addRoom adds a 4x10x5 room with gridded diffuse walls, open towards +x,
// and a 6x6 lamp just under the roof
func addRoom(en *engine.Engine) error {
	walls := []struct {
		name           string
		origin, normal core.Vec3
	}{
		{"back", core.NewVec3(-2, 0, 0), core.NewVec3(-1, 0, 0)},
		{"left", core.NewVec3(0, -5, 0), core.NewVec3(0, -1, 0)},
		{"right", core.NewVec3(0, 5, 0), core.NewVec3(0, 1, 0)},
		{"roof", core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1)},
		{"floor", core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1)},
	}
	for _, w := range walls {
		m := material.DefaultProperties().
			SetScatter(material.Diffuse).
			SetReflect(material.NewGrid(w.normal, 1)).
			SetTransmit(material.Constant(0))
		wall, err := geometry.NewPlaneSurface(geometry.PlaneConfig{
			Name: w.name, Origin: w.origin, Normal: w.normal, Material: m,
		})
		if err != nil {
			return err
		}
		en.AddDevice(wall)
	}

	inf := math.Inf(1)
	lamp, err := geometry.NewPlaneSurface(geometry.PlaneConfig{
		Name:   "light",
		Origin: core.NewVec3(0, 0, 5-1e-4),
		Normal: core.NewVec3(0, 0, 1),
		Bound:  box(-3, 3, -3, 3, -inf, inf),
		Material: material.DefaultProperties().
			SetScatter(material.Mirror).
			SetReflect(material.Constant(0)).
			SetBrightness(1).
			SetColor(core.NewColor(1, 1, 0.8, 1)),
	})
	if err != nil {
		return err
	}
	en.AddDevice(lamp)
	return nil
}
