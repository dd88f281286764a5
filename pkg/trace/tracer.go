package trace

import (
	"math/rand/v2"

	"github.com/df07/go-spectral-raytracer/pkg/core"
	"github.com/df07/go-spectral-raytracer/pkg/geometry"
	"github.com/df07/go-spectral-raytracer/pkg/material"
)

// Stats counts what a tracer has done
type Stats struct {
	Rays    int64 // top-level rays
	Frames  int64 // frames popped, including those that died
	Hits    int64
	Escapes int64
	Deaths  int64
	Faults  int64
}

// Add accumulates o into s
func (s *Stats) Add(o Stats) {
	s.Rays += o.Rays
	s.Frames += o.Frames
	s.Hits += o.Hits
	s.Escapes += o.Escapes
	s.Deaths += o.Deaths
	s.Faults += o.Faults
}

type frame struct {
	ray    core.Ray
	level  int
	node   int
	parent int
}

// Tracer turns one ray into a tree of child rays and returns the light
// gathered from emissive surfaces along it. A Tracer owns its RNG and
// scratch buffers and must not be shared between goroutines; the devices
// and recorders may be.
type Tracer struct {
	devices   []geometry.Device
	recorders []Recorder
	opts      Options
	random    *rand.Rand

	stack    []frame
	children []material.Child
	nodes    int
	stats    Stats
}

// NewTracer creates a tracer over a fixed device set
func NewTracer(devices []geometry.Device, recorders []Recorder, opts Options, random *rand.Rand) *Tracer {
	return &Tracer{
		devices:   devices,
		recorders: recorders,
		opts:      opts,
		random:    random,
	}
}

// Options returns the tracer's options
func (t *Tracer) Options() Options { return t.opts }

// Stats returns the counters accumulated so far
func (t *Tracer) Stats() Stats { return t.stats }

// Random returns the tracer's generator
func (t *Tracer) Random() *rand.Rand { return t.random }

// Trace follows ray and its descendants until every branch escapes or
// dies. Frames are processed depth first from an explicit stack.
func (t *Tracer) Trace(ray core.Ray) float64 {
	t.stats.Rays++
	t.nodes = 1
	t.emit(Event{Kind: Generate, Ray: ray, Node: 0, Parent: -1})

	pixel := 0.0
	t.stack = append(t.stack[:0], frame{ray: ray, node: 0, parent: -1})
	for len(t.stack) > 0 {
		f := t.stack[len(t.stack)-1]
		t.stack = t.stack[:len(t.stack)-1]
		t.stats.Frames++

		if f.level > t.opts.MaxLevel {
			t.die(f, nil, MaxLevel)
			continue
		}
		if f.ray.Amplitude < t.opts.MinAmplitude {
			t.die(f, nil, MinAmplitude)
			continue
		}
		gathered, faulted := t.step(f)
		if faulted {
			t.stats.Faults++
			t.die(f, nil, Fault)
			continue
		}
		pixel += gathered
	}

	t.emit(Event{Kind: End, Ray: ray, Node: 0, Parent: -1})
	return pixel
}

// step processes one frame. A panic in device or material code is
// reported as a fault so the remaining frames still run.
func (t *Tracer) step(f frame) (gathered float64, faulted bool) {
	depth := len(t.stack)
	defer func() {
		if r := recover(); r != nil {
			t.stack = t.stack[:depth]
			gathered, faulted = 0, true
		}
	}()

	idx, _, ok := Nearest(t.devices, f.ray)
	if !ok {
		t.stats.Escapes++
		t.emit(Event{Kind: Escape, Ray: f.ray, Level: f.level + 1, Node: f.node, Parent: f.parent})
		return 0, false
	}
	hit, ok := t.devices[idx].Intersect(f.ray, geometry.TracingMode)
	if !ok {
		// the distance pass found a hit the tracing pass cannot reproduce
		t.stats.Escapes++
		t.emit(Event{Kind: Escape, Ray: f.ray, Level: f.level + 1, Node: f.node, Parent: f.parent})
		return 0, false
	}
	t.stats.Hits++

	if t.opts.Record {
		if d, ok := hit.Device.(Detector); ok {
			d.Detect(f.ray, hit)
		}
	}

	mat := hit.Material
	if mat == nil {
		t.die(f, &hit, Absorbed)
		return 0, false
	}
	gathered = mat.Brightness * f.ray.Amplitude

	inner := hit.Exiting
	normal := hit.Normal
	if inner {
		normal = normal.Negate()
	}
	side := mat.Side(inner, hit.Point, f.ray.Wavelength)
	t.children = material.Scatter(t.children[:0], f.ray, hit.Point, normal, side, f.level, t.opts.scatter(), t.random)
	if len(t.children) == 0 {
		t.die(f, &hit, Absorbed)
		return gathered, false
	}

	for _, c := range t.children {
		node := t.nodes
		t.nodes++
		kind := Reflect
		if c.Refracted {
			kind = Refract
		}
		t.emit(Event{Kind: kind, Ray: c.Ray, Level: f.level + 1, Hit: &hit, Node: node, Parent: f.node})
		t.stack = append(t.stack, frame{ray: c.Ray, level: f.level + 1, node: node, parent: f.node})
	}
	return gathered, false
}

func (t *Tracer) die(f frame, hit *geometry.Hit, reason DieReason) {
	t.stats.Deaths++
	t.emit(Event{Kind: Die, Ray: f.ray, Level: f.level, Hit: hit, Node: f.node, Parent: f.parent, Reason: reason})
}

func (t *Tracer) emit(e Event) {
	if !t.opts.Record {
		return
	}
	for _, r := range t.recorders {
		r.Record(e)
	}
}
