package trace

import (
	"fmt"

	"github.com/df07/go-spectral-raytracer/pkg/core"
	"github.com/df07/go-spectral-raytracer/pkg/geometry"
)

// EventKind identifies a step of a trace
type EventKind int

const (
	// Generate opens the trace of a top-level ray
	Generate EventKind = iota
	// Reflect and Refract announce a child ray leaving a hit point
	Reflect
	Refract
	// Escape is a ray that hit nothing
	Escape
	// Die is a ray that ended at a surface or ran out of budget
	Die
	// End closes the trace of a top-level ray
	End
)

func (k EventKind) String() string {
	switch k {
	case Generate:
		return "generate"
	case Reflect:
		return "reflect"
	case Refract:
		return "refract"
	case Escape:
		return "escape"
	case Die:
		return "die"
	case End:
		return "end"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// DieReason says why a ray died
type DieReason int

const (
	Alive DieReason = iota
	// Absorbed rays hit a surface that produced no children
	Absorbed
	MaxLevel
	MinAmplitude
	// Fault marks a ray whose processing panicked
	Fault
)

func (r DieReason) String() string {
	switch r {
	case Alive:
		return "alive"
	case Absorbed:
		return "absorbed"
	case MaxLevel:
		return "max-level"
	case MinAmplitude:
		return "min-amplitude"
	case Fault:
		return "fault"
	}
	return fmt.Sprintf("DieReason(%d)", int(r))
}

// Event is what recorders observe. Node and Parent number the rays of one
// trace tree: the root is 0 and its parent is -1. Hit is set for Reflect,
// Refract and absorbed Die events and points at the hit that produced them.
type Event struct {
	Kind   EventKind
	Ray    core.Ray
	Level  int
	Hit    *geometry.Hit
	Node   int
	Parent int
	Reason DieReason
}

// Recorder observes trace events. Recorders shared between tracers must
// be safe for concurrent use.
type Recorder interface {
	Record(e Event)
}

// RecorderFunc adapts a function to Recorder
type RecorderFunc func(Event)

func (f RecorderFunc) Record(e Event) { f(e) }

// Detector is a device that wants to see every ray striking it while a
// campaign is being recorded.
type Detector interface {
	Detect(ray core.Ray, hit geometry.Hit)
}
