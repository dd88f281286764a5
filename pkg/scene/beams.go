package scene

import (
	"github.com/df07/go-spectral-raytracer/pkg/core"
	"github.com/df07/go-spectral-raytracer/pkg/geometry"
	"github.com/df07/go-spectral-raytracer/pkg/material"
	"github.com/df07/go-spectral-raytracer/pkg/recorder"
)

const beamRadius = 0.01

// newBeams puts a capped glass cylinder in the room, traces one beam into
// it and adds the recorded path forest as a visible device
func newBeams(info Info, q Quality) (*Scene, error) {
	s := newScene(info, q)

	barrel, err := geometry.NewQuadricSurface(geometry.QuadricSurfaceConfig{
		Name: "barrel",
		Shape: geometry.QuadricConfig{
			Shape:     geometry.ShapeTube,
			Direction: core.NewVec3(0, 0, 1),
			Radius:    1,
		},
		Material: glass(material.ConstantIndex(1.5), material.Optical).SetColor(core.Red.WithAlpha(0.5)),
	})
	if err != nil {
		return nil, err
	}
	caps := make([]geometry.Surface, 0, 2)
	for _, c := range []struct {
		name           string
		origin, normal core.Vec3
	}{
		{"top", core.NewVec3(0, 0, 1.5), core.NewVec3(0, 0, 1)},
		{"bottom", core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)},
	} {
		p, err := geometry.NewPlaneSurface(geometry.PlaneConfig{
			Name:     c.name,
			Origin:   c.origin,
			Normal:   c.normal,
			Material: glass(material.ConstantIndex(1.5), material.Optical).SetColor(core.Blue.WithAlpha(0.5)),
		})
		if err != nil {
			return nil, err
		}
		caps = append(caps, p)
	}
	cylinder, err := geometry.NewConvex("cylinder", caps[0], caps[1], barrel)
	if err != nil {
		return nil, err
	}
	s.Engine.AddDevice(cylinder)

	if err := addRoom(s.Engine); err != nil {
		return nil, err
	}

	s.Tracking = recorder.NewTracking(beamRadius)
	s.Engine.AddRecorder(s.Tracking)

	d := core.NewVec3(-1, 0.04, -0.1).Normalize()
	beam := core.NewRay(core.NewVec3(10, 0, 1), d)
	beam.Polarization = core.Perpendicular(d)
	beam.Wavelength = material.WavelengthYellow
	s.Engine.EmitRay(beam)
	s.Engine.AddDevice(s.Tracking.Forest())

	s.frame(q, 1000, 1000, core.NewVec3(10, 0, 3), core.NewVec3(0, 0, 2), core.NewVec3(3, 3, 3), 1.2)
	s.Picture.AntiAliasLevel = 3
	return s, nil
}
