package scene

import (
	"math"

	"github.com/df07/go-spectral-raytracer/pkg/core"
	"github.com/df07/go-spectral-raytracer/pkg/engine"
	"github.com/df07/go-spectral-raytracer/pkg/geometry"
	"github.com/df07/go-spectral-raytracer/pkg/material"
	"github.com/df07/go-spectral-raytracer/pkg/screen"
	"github.com/df07/go-spectral-raytracer/pkg/source"
)

const (
	mirrorRadius = 1.5 // vertex curvature radius of the primary
	tubeRadius   = 0.2
	tubeLength   = 1.0
	holeZ        = 0.5 // height of the eyepiece hole and the secondary

	objectZ     = 1e7
	objectWidth = 100.0
)

// addTelescope adds a Newtonian telescope looking up the z axis: a
// parabolic primary at the bottom of a tube, a 45° flat secondary and a
// small screen in the focal plane behind a hole in the tube wall
func addTelescope(en *engine.Engine) (*screen.Screen, error) {
	inf := math.Inf(1)
	hole := box(0, 1, -0.05, 0.05, holeZ-0.05, holeZ+0.05)
	tube, err := geometry.NewQuadricSurface(geometry.QuadricSurfaceConfig{
		Name: "tube",
		Shape: geometry.QuadricConfig{
			Shape:     geometry.ShapeTube,
			Direction: core.NewVec3(0, 0, 1),
			Radius:    tubeRadius,
		},
		Bound: geometry.All{
			box(-inf, inf, -inf, inf, 0, tubeLength),
			geometry.Inverse{Bound: hole},
		},
		Material: opaque(material.Diffuse, 0.5).SetColor(core.NewColor(1, 1, 1, 0.5)),
	})
	if err != nil {
		return nil, err
	}

	// lift the primary so its rim meets the bottom of the tube
	zOff := tubeRadius * tubeRadius / (2 * mirrorRadius)
	below, err := geometry.NewPlane(core.Vec3{}, core.NewVec3(0, 0, 1))
	if err != nil {
		return nil, err
	}
	primaryMaterial := material.DefaultProperties()
	primaryMaterial.InnerScatter = material.Mirror
	primaryMaterial.OuterScatter = material.Diffuse
	primaryMaterial.InnerColor = core.Red
	primaryMaterial.OuterColor = core.Green
	primary, err := geometry.NewQuadricSurface(geometry.QuadricSurfaceConfig{
		Name: "primary",
		Shape: geometry.QuadricConfig{
			Shape:     geometry.ShapeParabola,
			Origin:    core.NewVec3(0, 0, -zOff),
			Direction: core.NewVec3(0, 0, 1),
			Radius:    mirrorRadius,
		},
		Bound:    geometry.PlaneBound{Plane: below},
		Material: primaryMaterial,
	})
	if err != nil {
		return nil, err
	}

	secondaryMaterial := material.DefaultProperties()
	secondaryMaterial.InnerScatter = material.Diffuse
	secondaryMaterial.InToOutReflect = material.Constant(0)
	secondaryMaterial.OuterScatter = material.Mirror
	secondaryMaterial.OuterColor = core.Green
	secondaryMaterial.InnerColor = core.Green.WithAlpha(0)
	secondary, err := geometry.NewPlaneSurface(geometry.PlaneConfig{
		Name:     "secondary",
		Origin:   core.NewVec3(0, 0, holeZ),
		Normal:   core.NewVec3(1, 0, -1),
		Bound:    box(-0.05, 0.05, -0.05, 0.05, -inf, inf),
		Material: secondaryMaterial,
	})
	if err != nil {
		return nil, err
	}

	floor, err := geometry.NewPlaneSurface(geometry.PlaneConfig{
		Name:     "floor",
		Origin:   core.NewVec3(0, 0, -1),
		Normal:   core.NewVec3(0, 0, 1),
		Material: opaque(material.Diffuse, 0.5),
	})
	if err != nil {
		return nil, err
	}

	focus := mirrorRadius/2 - zOff - holeZ
	scn, err := screen.NewPlane(geometry.PlaneConfig{
		Name:     "screen",
		Origin:   core.NewVec3(focus, 0, holeZ),
		Normal:   core.NewVec3(-1, 0, 0),
		Bound:    box(-inf, inf, -0.03, 0.03, holeZ-0.03, holeZ+0.03),
		Material: screen.Material().SetColor(core.Green),
	})
	if err != nil {
		return nil, err
	}

	for _, d := range []geometry.Device{tube, floor, primary, secondary, scn} {
		en.AddDevice(d)
	}
	return scn, nil
}

// triangleBound is the prism over an equilateral triangle of circumradius
// w/√3 centred on the z axis, as the intersection of three plane bounds
func triangleBound(w float64) (geometry.Bound, error) {
	z := core.NewVec3(0, 0, 1)
	corners := []core.Vec3{
		core.NewVec3(1/math.Sqrt(3), 0, 0).Multiply(w),
		core.NewVec3(-0.5/math.Sqrt(3), -0.5, 0).Multiply(w),
		core.NewVec3(-0.5/math.Sqrt(3), 0.5, 0).Multiply(w),
	}
	var all geometry.All
	for i, a := range corners {
		b := corners[(i+1)%len(corners)]
		pl, err := geometry.NewPlane(a, z.Cross(b.Subtract(a)))
		if err != nil {
			return nil, err
		}
		all = append(all, geometry.PlaneBound{Plane: pl})
	}
	return all, nil
}

func newTelescope(info Info, q Quality) (*Scene, error) {
	s := newScene(info, q)
	scn, err := addTelescope(s.Engine)
	if err != nil {
		return nil, err
	}

	aperture, err := geometry.NewQuadric(geometry.QuadricConfig{
		Shape:     geometry.ShapeTube,
		Direction: core.NewVec3(0, 0, 1),
		Radius:    tubeRadius,
	})
	if err != nil {
		return nil, err
	}
	stop, err := source.NewPlaneStop(source.PlaneStopConfig{
		Origin: core.NewVec3(0, 0, tubeLength),
		N1:     core.NewVec3(1, 0, 0),
		N2:     core.NewVec3(0, 1, 0),
		N1Min:  -tubeRadius,
		N1Max:  tubeRadius,
		N2Min:  -tubeRadius,
		N2Max:  tubeRadius,
		Bound:  geometry.QuadricBound{Quadric: aperture},
	})
	if err != nil {
		return nil, err
	}

	tri, err := triangleBound(objectWidth)
	if err != nil {
		return nil, err
	}
	// the triangle's planes are vertical, so the bound holds at any height
	object, err := source.NewPlanePosition(source.PlanePositionConfig{
		Origin: core.NewVec3(0, 0, objectZ),
		N1:     core.NewVec3(1, 0, 0),
		N2:     core.NewVec3(0, 1, 0),
		N1Min:  -objectWidth / math.Sqrt(3) / 2,
		N1Max:  objectWidth / math.Sqrt(3),
		N2Min:  -objectWidth / 2,
		N2Max:  objectWidth / 2,
		Bound:  tri,
	})
	if err != nil {
		return nil, err
	}
	src, err := source.NewComposite(1, source.Mono(material.WavelengthGreen), object,
		source.StopDirection{Stop: stop, Inner: source.NewCosineDirection()})
	if err != nil {
		return nil, err
	}
	s.Engine.AddSource(src)
	s.Rays = q.rays(1000000)

	// a pass-through screen just in front of the object records what left it
	objectScreen, err := screen.NewPlane(geometry.PlaneConfig{
		Name:   "object",
		Origin: core.NewVec3(0, 0, objectZ-0.1),
		Normal: core.NewVec3(0, 0, 1),
		Material: material.DefaultProperties().
			SetScatter(material.Mirror).
			SetReflect(material.Constant(0)).
			SetTransmit(material.Constant(1)),
	})
	if err != nil {
		return nil, err
	}
	objectScreen.RecordInToOut = false
	s.Engine.AddDevice(objectScreen)

	image := screen.DefaultRasterOptions()
	image.Width, image.Height = 200, 200
	image.Gray = true
	image.N1, image.N2 = core.NewVec3(0, 1, 0), core.NewVec3(0, 0, 1)
	image.Origin = core.NewVec3(0, 0, holeZ)
	image.SetScreenSize(objectWidth / objectZ)

	sky := screen.DefaultRasterOptions()
	sky.Width, sky.Height = 200, 200
	sky.Gray = true
	sky.N1, sky.N2 = core.NewVec3(0, 1, 0), core.NewVec3(-1, 0, 0)
	sky.Origin = core.NewVec3(0, 0, objectZ)
	sky.SetScreenSize(2 * objectWidth)

	s.Views = []View{
		{Label: "screen", Screen: scn, Raster: image},
		{Label: "source", Screen: objectScreen, Raster: sky},
	}

	s.frame(q, 1000, 1000, core.NewVec3(3, 1, 2), core.NewVec3(0, 0, holeZ), core.NewVec3(2, 2, 5), 0.7)
	return s, nil
}
