package geometry

import (
	"github.com/df07/go-spectral-raytracer/pkg/core"
	"github.com/df07/go-spectral-raytracer/pkg/material"
)

// Mode selects how much work Intersect does
type Mode int

const (
	// DistanceMode reports only the nearest distance and exit flag
	DistanceMode Mode = iota
	// TracingMode reports the full hit record
	TracingMode
)

func (m Mode) String() string {
	if m == TracingMode {
		return "tracing"
	}
	return "distance"
}

// Hit is the result of a successful intersection. Distance and Exiting are
// always set. Point, Normal, Material and Device are set in TracingMode only.
// Both modes select the same intersection for the same ray.
type Hit struct {
	Mode     Mode
	Distance float64
	// Exiting is true when the ray arrives from the inner side (inner→outer)
	Exiting  bool
	Point    core.Vec3
	Normal   core.Vec3 // outward unit normal
	Material *material.Properties
	Device   Device // the responding device
}

// Device is anything a ray can be intersected with
type Device interface {
	Intersect(ray core.Ray, mode Mode) (Hit, bool)
	Name() string
}

// Surface is a device with an implicit field partitioning space into an
// inner (f < 0) and an outer half.
type Surface interface {
	Device
	Inner(p core.Vec3) bool
	Properties() *material.Properties
}
