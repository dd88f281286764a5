package screen

import (
	"sync"

	"github.com/df07/go-spectral-raytracer/pkg/core"
	"github.com/df07/go-spectral-raytracer/pkg/geometry"
	"github.com/df07/go-spectral-raytracer/pkg/material"
	"github.com/df07/go-spectral-raytracer/pkg/recorder"
)

// Material returns the default screen material: it neither reflects nor
// transmits, so every ray striking a screen ends there.
func Material() *material.Properties {
	return material.DefaultProperties().
		SetReflect(material.Constant(0)).
		SetTransmit(material.Constant(0)).
		SetColor(core.NewColor(0.9, 0.9, 0.9, 1))
}

// Screen records the rays crossing a surface while a campaign is traced
type Screen struct {
	geometry.Surface

	RecordOutToIn bool
	RecordInToOut bool

	mu     sync.Mutex
	rays   []core.Ray
	logger *recorder.Logger
}

// New wraps surface; both crossing directions are recorded
func New(surface geometry.Surface) *Screen {
	return &Screen{Surface: surface, RecordOutToIn: true, RecordInToOut: true}
}

// NewPlane builds a plane screen. A nil material is replaced by the
// absorbing screen material.
func NewPlane(cfg geometry.PlaneConfig) (*Screen, error) {
	if cfg.Material == nil {
		cfg.Material = Material()
	}
	s, err := geometry.NewPlaneSurface(cfg)
	if err != nil {
		return nil, err
	}
	return New(s), nil
}

// NewQuadric builds a quadric screen with the same material default
func NewQuadric(cfg geometry.QuadricSurfaceConfig) (*Screen, error) {
	if cfg.Material == nil {
		cfg.Material = Material()
	}
	s, err := geometry.NewQuadricSurface(cfg)
	if err != nil {
		return nil, err
	}
	return New(s), nil
}

// SetLogger reports every recorded ray through l
func (s *Screen) SetLogger(l *recorder.Logger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger = l
}

// Intersect answers for the wrapped surface but claims the hit, so the
// tracer hands recorded rays to the screen.
func (s *Screen) Intersect(ray core.Ray, mode geometry.Mode) (geometry.Hit, bool) {
	hit, ok := s.Surface.Intersect(ray, mode)
	if ok && mode == geometry.TracingMode {
		hit.Device = s
	}
	return hit, ok
}

// Detect implements trace.Detector
func (s *Screen) Detect(ray core.Ray, hit geometry.Hit) {
	cos := ray.Direction.Dot(hit.Normal)
	if !(s.RecordOutToIn && cos < 0) && !(s.RecordInToOut && cos > 0) {
		return
	}
	r := ray
	r.Origin = hit.Point

	s.mu.Lock()
	s.rays = append(s.rays, r)
	l := s.logger
	s.mu.Unlock()

	if l != nil {
		l.ScreenHit(s.Name(), ray, hit.Point)
	}
}

// Rays returns a copy of the recorded rays. Each ray starts at its hit
// point and keeps the direction, amplitude and wavelength it arrived with.
func (s *Screen) Rays() []core.Ray {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Ray, len(s.rays))
	copy(out, s.rays)
	return out
}

// Len returns the number of recorded rays
func (s *Screen) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rays)
}

// Reset drops the recorded rays
func (s *Screen) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rays = nil
}
