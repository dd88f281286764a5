package trace

import (
	"math"
	"sync"
	"testing"

	"github.com/df07/go-spectral-raytracer/pkg/core"
	"github.com/df07/go-spectral-raytracer/pkg/geometry"
	"github.com/df07/go-spectral-raytracer/pkg/material"
	"github.com/df07/go-spectral-raytracer/pkg/source"
)

// eventLog collects events for inspection
type eventLog struct {
	mu     sync.Mutex
	events []Event
}

func (l *eventLog) Record(e Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
}

func (l *eventLog) kinds(k EventKind) []Event {
	var out []Event
	for _, e := range l.events {
		if e.Kind == k {
			out = append(out, e)
		}
	}
	return out
}

func mirror() *material.Properties {
	return material.DefaultProperties().SetScatter(material.Mirror)
}

func diffuse(reflect float64) *material.Properties {
	return material.DefaultProperties().SetReflect(material.Constant(reflect))
}

func plane(t *testing.T, origin, normal core.Vec3, m *material.Properties) geometry.Device {
	t.Helper()
	p, err := geometry.NewPlaneSurface(geometry.PlaneConfig{Name: "plane", Origin: origin, Normal: normal, Material: m})
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func sphere(t *testing.T, origin core.Vec3, radius float64, m *material.Properties) geometry.Device {
	t.Helper()
	s, err := geometry.NewQuadricSurface(geometry.QuadricSurfaceConfig{
		Name:     "sphere",
		Shape:    geometry.QuadricConfig{Shape: geometry.ShapeSphere, Origin: origin, Radius: radius},
		Material: m,
	})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func recordingOptions() Options {
	opts := DefaultOptions()
	opts.Record = true
	return opts
}

func TestTracer_MirrorSphere(t *testing.T) {
	log := &eventLog{}
	devices := []geometry.Device{sphere(t, core.Vec3{}, 1, mirror())}
	tracer := NewTracer(devices, []Recorder{log}, recordingOptions(), core.NewRandom(1))

	tracer.Trace(core.NewRay(core.NewVec3(5, 0, 0), core.NewVec3(-1, 0, 0)))

	reflects := log.kinds(Reflect)
	if len(reflects) != 1 {
		t.Fatalf("Expected one reflected child, got %d", len(reflects))
	}
	child := reflects[0].Ray
	if child.Direction.Subtract(core.NewVec3(1, 0, 0)).Length() > 1e-12 {
		t.Errorf("Expected child along +x, got %v", child.Direction)
	}
	if child.Origin.Subtract(core.NewVec3(1, 0, 0)).Length() > 1e-12 {
		t.Errorf("Expected child from (1,0,0), got %v", child.Origin)
	}
	if escapes := log.kinds(Escape); len(escapes) != 1 || escapes[0].Level != 2 {
		t.Errorf("Expected the child to escape at level 2, got %+v", escapes)
	}
	if log.events[0].Kind != Generate || log.events[len(log.events)-1].Kind != End {
		t.Error("Trace must open with Generate and close with End")
	}
}

func TestTracer_Termination(t *testing.T) {
	// Two facing mirrors trap the ray forever without a budget
	devices := []geometry.Device{
		plane(t, core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1), mirror()),
		plane(t, core.NewVec3(0, 0, 1), core.NewVec3(0, 0, 1), mirror()),
	}
	ray := core.NewRay(core.NewVec3(0, 0, 0.5), core.NewVec3(0, 0.1, 1).Normalize())

	t.Run("max level 1", func(t *testing.T) {
		log := &eventLog{}
		opts := recordingOptions()
		opts.MaxLevel = 1
		tracer := NewTracer(devices, []Recorder{log}, opts, core.NewRandom(1))
		tracer.Trace(ray)

		for _, e := range log.events {
			if (e.Kind == Reflect || e.Kind == Refract) && e.Level > 2 {
				t.Errorf("Frame at level %d produced children", e.Level-1)
			}
		}
		dies := log.kinds(Die)
		if len(dies) != 1 || dies[0].Reason != MaxLevel || dies[0].Level != 2 {
			t.Errorf("Expected one max-level death at level 2, got %+v", dies)
		}
		if frames := tracer.Stats().Frames; frames != 3 {
			t.Errorf("Expected 3 frames (levels 0, 1, 2), got %d", frames)
		}
	})

	t.Run("min amplitude", func(t *testing.T) {
		lossy := material.DefaultProperties().SetScatter(material.Mirror).SetReflect(material.Constant(0.5))
		lossyDevices := []geometry.Device{
			plane(t, core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1), lossy),
			plane(t, core.NewVec3(0, 0, 1), core.NewVec3(0, 0, 1), lossy),
		}
		log := &eventLog{}
		opts := recordingOptions()
		opts.MaxLevel = 1 << 30
		opts.MinAmplitude = 0.01
		tracer := NewTracer(lossyDevices, []Recorder{log}, opts, core.NewRandom(1))
		tracer.Trace(ray)
		dies := log.kinds(Die)
		// Level 0 passes 0.5 deterministically, deeper levels keep it or die
		if len(dies) != 1 {
			t.Fatalf("Expected one death, got %d", len(dies))
		}
		if dies[0].Reason != Absorbed && dies[0].Reason != MinAmplitude {
			t.Errorf("Unexpected death reason %v", dies[0].Reason)
		}
	})
}

func TestTracer_AmplitudeMonotonic(t *testing.T) {
	optical := material.DefaultProperties().SetScatter(material.Optical).SetInnerIndex(material.BK7)
	metal := material.DefaultProperties().SetScatter(material.Metal).SetReflect(material.Constant(0.8))
	frosted := material.DefaultProperties().SetReflect(material.Constant(0.3)).SetTransmit(material.Constant(0.6))
	devices := []geometry.Device{
		sphere(t, core.NewVec3(0, 0, 0), 1, optical),
		sphere(t, core.NewVec3(2.5, 0, 0), 1, metal),
		sphere(t, core.NewVec3(-2.5, 0, 0), 1, frosted),
		plane(t, core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0), diffuse(0.7)),
	}
	opts := recordingOptions()
	opts.FirstLevelSplit = 3

	amps := map[int]float64{}
	violations := 0
	check := RecorderFunc(func(e Event) {
		switch e.Kind {
		case Generate:
			clear(amps)
			amps[e.Node] = e.Ray.Amplitude
		case Reflect, Refract:
			if parent, ok := amps[e.Parent]; !ok || e.Ray.Amplitude > parent+1e-12 {
				violations++
			}
			amps[e.Node] = e.Ray.Amplitude
		}
	})

	random := core.NewRandom(99)
	tracer := NewTracer(devices, []Recorder{check}, opts, random)
	for i := 0; i < 2000; i++ {
		dir := core.SampleUniformCone(random, core.NewVec3(0, -1, 0), math.Pi/3)
		r := core.NewRay(core.NewVec3(core.Uniform(random, -3, 3), 5, 0), dir)
		r.Polarization = core.RandomNormal(random, dir)
		r.Wavelength = core.Uniform(random, 400, 700)
		tracer.Trace(r)
	}
	if violations > 0 {
		t.Errorf("%d child rays gained amplitude", violations)
	}
	if tracer.Stats().Faults != 0 {
		t.Errorf("Unexpected faults: %d", tracer.Stats().Faults)
	}
}

func TestTracer_LambertianEnergy(t *testing.T) {
	devices := []geometry.Device{plane(t, core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), diffuse(0.5))}
	pos, err := source.NewPointPosition(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))
	if err != nil {
		t.Fatal(err)
	}
	src, err := source.NewComposite(1, source.Mono(550), pos, source.NewCosineDirection())
	if err != nil {
		t.Fatal(err)
	}

	escaped := 0.0
	collect := RecorderFunc(func(e Event) {
		if e.Kind == Escape {
			escaped += e.Ray.Amplitude
		}
	})
	random := core.NewRandom(2024)
	tracer := NewTracer(devices, []Recorder{collect}, recordingOptions(), random)
	const n = 100000
	for i := 0; i < n; i++ {
		tracer.Trace(src.Generate(random))
	}
	if mean := escaped / n; math.Abs(mean-0.5) > 0.01 {
		t.Errorf("Expected mean terminal amplitude 0.5 ± 2%%, got %.4f", mean)
	}
}

func TestTracer_BernoulliBranch(t *testing.T) {
	// The mirror hit at level 0 passes the ray on with factor 1. The diffuse
	// floor hit at level 1 keeps its branch with probability 0.5 and factor 1.
	devices := []geometry.Device{
		plane(t, core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), diffuse(0.5)),
		plane(t, core.NewVec3(0, 0, 10), core.NewVec3(0, 0, -1), mirror()),
	}
	leaving := 0.0
	collect := RecorderFunc(func(e Event) {
		if e.Kind == Reflect && e.Level == 2 {
			if e.Ray.Amplitude != 1 {
				t.Errorf("Expected factor 1 beyond level 0, got %g", e.Ray.Amplitude)
			}
			leaving += e.Ray.Amplitude
		}
	})
	opts := recordingOptions()
	opts.MaxLevel = 1
	random := core.NewRandom(77)
	tracer := NewTracer(devices, []Recorder{collect}, opts, random)
	const n = 100000
	for i := 0; i < n; i++ {
		tracer.Trace(core.NewRay(core.NewVec3(0, 0, 5), core.SampleDiffuse(random, core.NewVec3(0, 0, 1))))
	}
	if mean := leaving / n; math.Abs(mean-0.5) > 0.01 {
		t.Errorf("Expected mean amplitude leaving the floor 0.5 ± 2%%, got %.4f", mean)
	}
}

func TestTracer_Brightness(t *testing.T) {
	lamp := material.DefaultProperties().SetReflect(material.Constant(0)).SetBrightness(2)
	devices := []geometry.Device{sphere(t, core.Vec3{}, 1, lamp)}
	tracer := NewTracer(devices, nil, DefaultOptions(), core.NewRandom(1))

	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))
	ray.Amplitude = 0.25
	if got := tracer.Trace(ray); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("Expected pixel amplitude 0.5, got %g", got)
	}
	if got := tracer.Trace(core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 1))); got != 0 {
		t.Errorf("Escaping ray should gather nothing, got %g", got)
	}
}

type panicDevice struct{}

func (panicDevice) Intersect(core.Ray, geometry.Mode) (geometry.Hit, bool) { panic("broken device") }
func (panicDevice) Name() string                                           { return "panic" }

func TestTracer_FaultIsolated(t *testing.T) {
	log := &eventLog{}
	tracer := NewTracer([]geometry.Device{panicDevice{}}, []Recorder{log}, recordingOptions(), core.NewRandom(1))
	tracer.Trace(core.NewRay(core.Vec3{}, core.NewVec3(1, 0, 0)))
	tracer.Trace(core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0)))

	if tracer.Stats().Faults != 2 {
		t.Errorf("Expected 2 faults, got %d", tracer.Stats().Faults)
	}
	dies := log.kinds(Die)
	if len(dies) != 2 || dies[0].Reason != Fault {
		t.Errorf("Expected fault deaths, got %+v", dies)
	}
	if len(log.kinds(End)) != 2 {
		t.Error("Faulted traces must still end")
	}
}

type countingDetector struct {
	geometry.Device
	count int
}

func (c *countingDetector) Intersect(r core.Ray, m geometry.Mode) (geometry.Hit, bool) {
	h, ok := c.Device.Intersect(r, m)
	if ok && m == geometry.TracingMode {
		h.Device = c
	}
	return h, ok
}

func (c *countingDetector) Detect(core.Ray, geometry.Hit) { c.count++ }

func TestTracer_DetectorOnlyWhenRecording(t *testing.T) {
	absorber := material.DefaultProperties().SetReflect(material.Constant(0))
	det := &countingDetector{Device: plane(t, core.Vec3{}, core.NewVec3(0, 0, 1), absorber)}
	ray := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))

	NewTracer([]geometry.Device{det}, nil, DefaultOptions(), core.NewRandom(1)).Trace(ray)
	if det.count != 0 {
		t.Errorf("Detector called without recording")
	}
	NewTracer([]geometry.Device{det}, nil, recordingOptions(), core.NewRandom(1)).Trace(ray)
	if det.count != 1 {
		t.Errorf("Expected one detection, got %d", det.count)
	}
}
