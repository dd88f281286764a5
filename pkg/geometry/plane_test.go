package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-spectral-raytracer/pkg/core"
)

func newTestPlane(t *testing.T, origin, normal core.Vec3, bound Bound) *PlaneSurface {
	t.Helper()
	s, err := NewPlaneSurface(PlaneConfig{Name: "plane", Origin: origin, Normal: normal, Bound: bound})
	if err != nil {
		t.Fatalf("NewPlaneSurface: %v", err)
	}
	return s
}

func TestPlane_Intersect_BasicIntersection(t *testing.T) {
	// Horizontal plane at y=0, outer side up
	plane := newTestPlane(t, core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), nil)

	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))
	hit, ok := plane.Intersect(ray, TracingMode)
	if !ok {
		t.Fatal("Expected hit, but got miss")
	}
	if math.Abs(hit.Distance-1) > 1e-12 {
		t.Errorf("Expected distance 1, got %f", hit.Distance)
	}
	if hit.Point.Length() > 1e-12 {
		t.Errorf("Expected hit at origin, got %v", hit.Point)
	}
	if hit.Exiting {
		t.Error("Ray from the outer side must not be exiting")
	}
	if hit.Normal != core.NewVec3(0, 1, 0) {
		t.Errorf("Expected outward normal (0,1,0), got %v", hit.Normal)
	}
	if hit.Device != plane {
		t.Error("Expected the plane as responding device")
	}
}

func TestPlane_Intersect_Misses(t *testing.T) {
	plane := newTestPlane(t, core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), nil)

	tests := []struct {
		name string
		ray  core.Ray
	}{
		{"parallel", core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(1, 0, 0))},
		{"moving away", core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0))},
		{"on the plane", core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, -1, 0))},
		{"within SMin", core.NewRay(core.NewVec3(0, 1e-9, 0), core.NewVec3(0, -1, 0))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if hit, ok := plane.Intersect(tt.ray, DistanceMode); ok {
				t.Errorf("Expected miss, got hit at %g", hit.Distance)
			}
		})
	}
}

func TestPlane_Intersect_FromInner(t *testing.T) {
	plane := newTestPlane(t, core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), nil)
	ray := core.NewRay(core.NewVec3(0, -2, 0), core.NewVec3(0, 1, 0))
	hit, ok := plane.Intersect(ray, DistanceMode)
	if !ok || !hit.Exiting {
		t.Fatalf("Expected exiting hit, got %+v ok=%v", hit, ok)
	}
	if !plane.Inner(ray.Origin) {
		t.Error("Origin below the plane should be inner")
	}
}

func TestPlane_ZeroNormal(t *testing.T) {
	_, err := NewPlaneSurface(PlaneConfig{Name: "bad"})
	if !errors.Is(err, ErrZeroNormal) {
		t.Errorf("Expected ErrZeroNormal, got %v", err)
	}
}

func TestPlane_CSGHole(t *testing.T) {
	// Plane z=0 limited to the 4x4 square minus a 1x1 hole at the centre
	outer := UnboundedBox()
	outer.X0, outer.X1, outer.Y0, outer.Y1 = -2, 2, -2, 2
	hole := UnboundedBox()
	hole.X0, hole.X1, hole.Y0, hole.Y1 = -0.5, 0.5, -0.5, 0.5

	plane := newTestPlane(t, core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), All{outer, Inverse{hole}})

	tests := []struct {
		name string
		x, y float64
		hit  bool
	}{
		{"centre of hole", 0, 0, false},
		{"inside hole", 0.3, -0.2, false},
		{"frame", 1, 1, true},
		{"frame edge", -1.9, 0, true},
		{"outside square", 3, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(core.NewVec3(tt.x, tt.y, 5), core.NewVec3(0, 0, -1))
			dist, okD := plane.Intersect(ray, DistanceMode)
			trace, okT := plane.Intersect(ray, TracingMode)
			if okD != tt.hit || okT != tt.hit {
				t.Fatalf("Expected hit=%v, got distance=%v tracing=%v", tt.hit, okD, okT)
			}
			if tt.hit && math.Abs(dist.Distance-5) > 1e-12 {
				t.Errorf("Expected distance 5, got %g", dist.Distance)
			}
			if tt.hit && trace.Distance != dist.Distance {
				t.Errorf("Modes disagree: %g vs %g", trace.Distance, dist.Distance)
			}
		})
	}
}
