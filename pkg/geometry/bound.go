package geometry

import (
	"math"

	"github.com/df07/go-spectral-raytracer/pkg/core"
)

// Bound is a point-membership predicate restricting where a surface is active
type Bound interface {
	Contains(p core.Vec3) bool
}

// InBound reports whether p satisfies b. A nil bound admits every point.
func InBound(b Bound, p core.Vec3) bool {
	return b == nil || b.Contains(p)
}

// All is the conjunction of its bounds
type All []Bound

// Contains reports whether every bound admits p
func (a All) Contains(p core.Vec3) bool {
	for _, b := range a {
		if !InBound(b, p) {
			return false
		}
	}
	return true
}

// Any is the disjunction of its bounds
type Any []Bound

// Contains reports whether some bound admits p
func (a Any) Contains(p core.Vec3) bool {
	for _, b := range a {
		if InBound(b, p) {
			return true
		}
	}
	return false
}

// Inverse negates a bound
type Inverse struct {
	Bound Bound
}

// Contains reports whether the wrapped bound rejects p
func (i Inverse) Contains(p core.Vec3) bool {
	return !InBound(i.Bound, p)
}

// Box is an open axis-aligned box. Use UnboundedBox and narrow the axes
// that matter; the others stay infinite.
type Box struct {
	X0, X1 float64
	Y0, Y1 float64
	Z0, Z1 float64
}

// UnboundedBox returns a box spanning all of space
func UnboundedBox() Box {
	inf := math.Inf(1)
	return Box{-inf, inf, -inf, inf, -inf, inf}
}

// NewBox returns a box with the given extents
func NewBox(min, max core.Vec3) Box {
	return Box{min.X, max.X, min.Y, max.Y, min.Z, max.Z}
}

// Contains reports whether p is strictly inside the box
func (b Box) Contains(p core.Vec3) bool {
	return p.X > b.X0 && p.X < b.X1 &&
		p.Y > b.Y0 && p.Y < b.Y1 &&
		p.Z > b.Z0 && p.Z < b.Z1
}

// QuadricBound admits the inner side of a quadric field
type QuadricBound struct {
	Quadric Quadric
}

// Contains reports whether p is on the inner side
func (q QuadricBound) Contains(p core.Vec3) bool {
	return q.Quadric.Inner(p)
}

// PlaneBound admits the inner side of a plane
type PlaneBound struct {
	Plane Plane
}

// Contains reports whether p is on the inner side
func (pb PlaneBound) Contains(p core.Vec3) bool {
	return pb.Plane.Inner(p)
}

// SurfaceBound delegates to another surface's inner test
type SurfaceBound struct {
	Surface Surface
}

// Contains reports whether p is inside the surface
func (s SurfaceBound) Contains(p core.Vec3) bool {
	return s.Surface.Inner(p)
}
