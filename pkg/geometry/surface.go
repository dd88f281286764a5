package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-spectral-raytracer/pkg/core"
	"github.com/df07/go-spectral-raytracer/pkg/material"
)

// PlaneConfig describes a bounded plane surface. Normal points to the
// outer side.
type PlaneConfig struct {
	Name     string
	Origin   core.Vec3
	Normal   core.Vec3
	Bound    Bound
	Material *material.Properties
}

// PlaneSurface is a plane restricted by an optional bound
type PlaneSurface struct {
	name     string
	plane    Plane
	bound    Bound
	material *material.Properties
}

// NewPlaneSurface validates cfg and builds the surface. A nil material
// becomes the default white diffuse reflector.
func NewPlaneSurface(cfg PlaneConfig) (*PlaneSurface, error) {
	pl, err := NewPlane(cfg.Origin, cfg.Normal)
	if err != nil {
		return nil, fmt.Errorf("plane %q: %w", cfg.Name, err)
	}
	mat, err := resolveMaterial(cfg.Material)
	if err != nil {
		return nil, fmt.Errorf("plane %q: %w", cfg.Name, err)
	}
	return &PlaneSurface{name: cfg.Name, plane: pl, bound: cfg.Bound, material: mat}, nil
}

func (s *PlaneSurface) Name() string                     { return s.name }
func (s *PlaneSurface) Properties() *material.Properties { return s.material }
func (s *PlaneSurface) Plane() Plane                     { return s.plane }
func (s *PlaneSurface) Inner(p core.Vec3) bool           { return s.plane.Inner(p) }

// Intersect implements Device
func (s *PlaneSurface) Intersect(ray core.Ray, mode Mode) (Hit, bool) {
	t, fromInner, ok := s.plane.Solve(ray)
	if !ok {
		return Hit{}, false
	}
	p := ray.At(t)
	if !InBound(s.bound, p) {
		return Hit{}, false
	}
	hit := Hit{Mode: mode, Distance: t, Exiting: fromInner}
	if mode == TracingMode {
		hit.Point = p
		hit.Normal = s.plane.P
		hit.Material = s.material
		hit.Device = s
	}
	return hit, true
}

// QuadricSurfaceConfig describes a bounded quadric surface
type QuadricSurfaceConfig struct {
	Name     string
	Shape    QuadricConfig
	Bound    Bound
	Material *material.Properties
}

// QuadricSurface is a quadric restricted by an optional bound
type QuadricSurface struct {
	name     string
	quadric  Quadric
	bound    Bound
	material *material.Properties
}

// NewQuadricSurface validates cfg and builds the surface
func NewQuadricSurface(cfg QuadricSurfaceConfig) (*QuadricSurface, error) {
	q, err := NewQuadric(cfg.Shape)
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", cfg.Shape.Shape, cfg.Name, err)
	}
	mat, err := resolveMaterial(cfg.Material)
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", cfg.Shape.Shape, cfg.Name, err)
	}
	return &QuadricSurface{name: cfg.Name, quadric: q, bound: cfg.Bound, material: mat}, nil
}

func (s *QuadricSurface) Name() string                     { return s.name }
func (s *QuadricSurface) Properties() *material.Properties { return s.material }
func (s *QuadricSurface) Quadric() Quadric                 { return s.quadric }
func (s *QuadricSurface) Inner(p core.Vec3) bool           { return s.quadric.Inner(p) }

// Intersect implements Device. The nearer root beyond SMin wins unless the
// bound rejects it, in which case the farther root is tried.
func (s *QuadricSurface) Intersect(ray core.Ray, mode Mode) (Hit, bool) {
	s1, s2, ok := s.quadric.Solve(ray)
	if !ok || s2 <= core.SMin {
		return Hit{}, false
	}

	t, found := 0.0, false
	for _, cand := range [2]float64{s1, s2} {
		if cand <= core.SMin || math.IsInf(cand, 0) || math.IsNaN(cand) {
			continue
		}
		if InBound(s.bound, ray.At(cand)) {
			t, found = cand, true
			break
		}
	}
	if !found {
		return Hit{}, false
	}

	p := ray.At(t)
	n := s.quadric.Gradient(p).Normalize()
	hit := Hit{Mode: mode, Distance: t, Exiting: n.Dot(ray.Direction) > 0}
	if mode == TracingMode {
		hit.Point = p
		hit.Normal = n
		hit.Material = s.material
		hit.Device = s
	}
	return hit, true
}

// ShiftSurface presents a surface translated by Offset
type ShiftSurface struct {
	Surface Surface
	Offset  core.Vec3
}

// NewShiftSurface wraps s translated by offset
func NewShiftSurface(s Surface, offset core.Vec3) *ShiftSurface {
	return &ShiftSurface{Surface: s, Offset: offset}
}

func (s *ShiftSurface) Name() string                     { return s.Surface.Name() }
func (s *ShiftSurface) Properties() *material.Properties { return s.Surface.Properties() }

// Inner tests p against the untranslated surface
func (s *ShiftSurface) Inner(p core.Vec3) bool {
	return s.Surface.Inner(p.Subtract(s.Offset))
}

// Intersect moves the ray into the wrapped surface's frame and the hit
// point back out of it.
func (s *ShiftSurface) Intersect(ray core.Ray, mode Mode) (Hit, bool) {
	local := ray
	local.Origin = ray.Origin.Subtract(s.Offset)
	hit, ok := s.Surface.Intersect(local, mode)
	if !ok {
		return Hit{}, false
	}
	if mode == TracingMode {
		hit.Point = hit.Point.Add(s.Offset)
		hit.Device = s
	}
	return hit, true
}

func resolveMaterial(m *material.Properties) (*material.Properties, error) {
	if m == nil {
		return material.DefaultProperties(), nil
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}
