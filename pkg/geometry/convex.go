package geometry

import (
	"github.com/df07/go-spectral-raytracer/pkg/core"
	"github.com/df07/go-spectral-raytracer/pkg/material"
)

// Convex is the intersection of the inner sides of its member surfaces.
// It has no material of its own; hits report the member that was struck.
type Convex struct {
	name    string
	members []Surface
}

// NewConvex builds a convex solid from at least one member surface
func NewConvex(name string, members ...Surface) (*Convex, error) {
	if len(members) == 0 {
		return nil, ErrNoMembers
	}
	return &Convex{name: name, members: append([]Surface(nil), members...)}, nil
}

func (c *Convex) Name() string { return c.name }

// Members returns the member surfaces
func (c *Convex) Members() []Surface { return c.members }

// Properties is nil for a convex
func (c *Convex) Properties() *material.Properties { return nil }

// Inner reports whether p is inside every member
func (c *Convex) Inner(p core.Vec3) bool {
	for _, m := range c.members {
		if !m.Inner(p) {
			return false
		}
	}
	return true
}

func (c *Convex) innerExcept(skip int, p core.Vec3) bool {
	for i, m := range c.members {
		if i != skip && !m.Inner(p) {
			return false
		}
	}
	return true
}

// Intersect picks the nearest member hit whose point lies inside all the
// other members, then lets that member answer in the requested mode.
func (c *Convex) Intersect(ray core.Ray, mode Mode) (Hit, bool) {
	best := -1
	var bestHit Hit
	for i, m := range c.members {
		h, ok := m.Intersect(ray, DistanceMode)
		if !ok || (best >= 0 && h.Distance >= bestHit.Distance) {
			continue
		}
		if c.innerExcept(i, ray.At(h.Distance)) {
			best, bestHit = i, h
		}
	}
	if best < 0 {
		return Hit{}, false
	}
	if mode == DistanceMode {
		return bestHit, true
	}
	return c.members[best].Intersect(ray, TracingMode)
}
