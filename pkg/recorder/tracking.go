package recorder

import (
	"math"
	"sync"

	"github.com/df07/go-spectral-raytracer/pkg/core"
	"github.com/df07/go-spectral-raytracer/pkg/geometry"
	"github.com/df07/go-spectral-raytracer/pkg/material"
	"github.com/df07/go-spectral-raytracer/pkg/trace"
)

// Segment is one edge of a traced path. Escaped rays have infinite length.
type Segment struct {
	From      core.Vec3
	Direction core.Vec3 // unit length
	Length    float64
	Kind      trace.EventKind
}

type path struct {
	points   map[int]core.Vec3
	segments []Segment
}

// Tracking records the path tree of every ray traced in a campaign
type Tracking struct {
	Radius float64

	mu     sync.Mutex
	open   map[int64]*path
	closed []Segment
	paths  int
}

// NewTracking creates a recorder whose forest draws segments as tubes of
// the given radius
func NewTracking(radius float64) *Tracking {
	return &Tracking{Radius: radius, open: make(map[int64]*path)}
}

// Record implements trace.Recorder. Events are grouped by ray id, so
// concurrent tracers may share one Tracking.
func (t *Tracking) Record(e trace.Event) {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := e.Ray.ID
	if e.Kind == trace.Generate {
		t.open[id] = &path{points: map[int]core.Vec3{e.Node: e.Ray.Origin}}
		return
	}
	p := t.open[id]
	if p == nil {
		return
	}
	switch e.Kind {
	case trace.Reflect, trace.Refract:
		from, ok := p.points[e.Parent]
		if !ok {
			return
		}
		p.points[e.Node] = e.Ray.Origin
		p.add(from, e.Ray.Origin, e.Kind)
	case trace.Escape:
		from, ok := p.points[e.Node]
		if !ok {
			return
		}
		p.segments = append(p.segments, Segment{From: from, Direction: e.Ray.Direction, Length: math.Inf(1), Kind: e.Kind})
	case trace.Die:
		// rays out of budget never reached a surface
		if e.Hit == nil {
			return
		}
		if from, ok := p.points[e.Node]; ok {
			p.add(from, e.Hit.Point, e.Kind)
		}
	case trace.End:
		t.closed = append(t.closed, p.segments...)
		t.paths++
		delete(t.open, id)
	}
}

func (p *path) add(from, to core.Vec3, kind trace.EventKind) {
	d := to.Subtract(from)
	l := d.Length()
	if l == 0 {
		return
	}
	p.segments = append(p.segments, Segment{From: from, Direction: d.Multiply(1 / l), Length: l, Kind: kind})
}

// Paths returns the number of completed paths
func (t *Tracking) Paths() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.paths
}

// Reset drops every recorded path
func (t *Tracking) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.open = make(map[int64]*path)
	t.closed = nil
	t.paths = 0
}

// Forest returns a snapshot of the completed paths as a device
func (t *Tracking) Forest() *Forest {
	t.mu.Lock()
	defer t.mu.Unlock()
	segs := make([]Segment, len(t.closed))
	copy(segs, t.closed)
	return &Forest{Radius: t.Radius, Segments: segs, material: trackingMaterial()}
}

func trackingMaterial() *material.Properties {
	return material.DefaultProperties().
		SetReflect(material.Constant(0)).
		SetBrightness(1).
		SetColor(core.NewColor(1, 0.85, 0.2, 1))
}

// Forest renders recorded segments as thin tubes. It is never entered, so
// every hit is reported from the outer side.
type Forest struct {
	Radius   float64
	Segments []Segment
	material *material.Properties
}

func (f *Forest) Name() string { return "tracking" }

// Intersect implements geometry.Device
func (f *Forest) Intersect(ray core.Ray, mode geometry.Mode) (geometry.Hit, bool) {
	best := math.Inf(1)
	var normal core.Vec3
	for _, seg := range f.Segments {
		if s, n, ok := f.distance(seg, ray); ok && s < best {
			best, normal = s, n
		}
	}
	if math.IsInf(best, 1) {
		return geometry.Hit{}, false
	}
	hit := geometry.Hit{Mode: mode, Distance: best}
	if mode == geometry.TracingMode {
		hit.Point = ray.At(best)
		hit.Normal = normal
		hit.Material = f.material
		hit.Device = f
	}
	return hit, true
}

// distance returns the ray parameter of the closest approach to seg when
// it passes within Radius of the segment's extent.
func (f *Forest) distance(seg Segment, ray core.Ray) (float64, core.Vec3, bool) {
	d := seg.Direction
	perp := ray.Direction.Subtract(d.Multiply(ray.Direction.Dot(d)))
	perpLen2 := perp.LengthSquared()
	if perpLen2 == 0 {
		return 0, core.Vec3{}, false
	}
	d12 := perp.Multiply(1 / math.Sqrt(perpLen2))

	o := seg.From.Subtract(ray.Origin)
	o12 := o.Subtract(d.Multiply(o.Dot(d)))
	l := o12.Dot(d12)
	if l <= 0 {
		return 0, core.Vec3{}, false
	}
	minD2 := o12.LengthSquared() - l*l
	r2 := f.Radius * f.Radius
	if minD2 > r2 {
		return 0, core.Vec3{}, false
	}
	s := l / math.Sqrt(perpLen2)
	along := ray.Direction.Multiply(s).Subtract(o).Dot(d)
	if along <= 0 || along > seg.Length || s < core.SMin {
		return 0, core.Vec3{}, false
	}
	delta := math.Sqrt(r2 - minD2)
	n := d12.Multiply(l - delta).Subtract(o12).Normalize()
	return s, n, true
}
