package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-spectral-raytracer/pkg/core"
)

// newTestCube builds the unit cube centred at the origin from six planes
func newTestCube(t *testing.T) *Convex {
	t.Helper()
	normals := []core.Vec3{
		{X: 1}, {X: -1}, {Y: 1}, {Y: -1}, {Z: 1}, {Z: -1},
	}
	var faces []Surface
	for _, n := range normals {
		faces = append(faces, newTestPlane(t, n.Multiply(0.5), n, nil))
	}
	cube, err := NewConvex("cube", faces...)
	if err != nil {
		t.Fatal(err)
	}
	return cube
}

func TestConvex_CubeCrossings(t *testing.T) {
	cube := newTestCube(t)

	tests := []struct {
		name   string
		origin core.Vec3
	}{
		{"along x", core.NewVec3(-3, 0, 0)},
		{"along -z", core.NewVec3(0, 0, 4)},
		{"diagonal", core.NewVec3(2, 2.5, -3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.origin, tt.origin.Negate().Normalize())
			var crossings []Hit
			for i := 0; i < 10; i++ {
				hit, ok := cube.Intersect(ray, TracingMode)
				if !ok {
					break
				}
				crossings = append(crossings, hit)
				ray = core.NewRay(hit.Point, ray.Direction)
			}
			if len(crossings) != 2 {
				t.Fatalf("Expected 2 crossings, got %d", len(crossings))
			}
			if crossings[0].Exiting || !crossings[1].Exiting {
				t.Errorf("Expected entry then exit, got exiting=%v,%v", crossings[0].Exiting, crossings[1].Exiting)
			}
			for _, h := range crossings {
				if h.Device == Device(cube) {
					t.Error("Hit device should be the member face, not the convex")
				}
			}
		})
	}
}

func TestConvex_Inner(t *testing.T) {
	cube := newTestCube(t)
	random := core.NewRandom(3)
	for i := 0; i < 5000; i++ {
		p := core.NewVec3(core.Uniform(random, -0.499, 0.499), core.Uniform(random, -0.499, 0.499), core.Uniform(random, -0.499, 0.499))
		if !cube.Inner(p) {
			t.Fatalf("Point %v inside the cube reported outer", p)
		}
	}
	if cube.Inner(core.NewVec3(0.6, 0, 0)) {
		t.Error("Point outside the cube reported inner")
	}
}

func TestConvex_LensOfTwoSpheres(t *testing.T) {
	// Intersection of two overlapping spheres: a biconvex lens around the origin
	a := newTestQuadric(t, QuadricConfig{Shape: ShapeSphere, Origin: core.NewVec3(0, 0, 1.5), Radius: 2}, nil)
	b := newTestQuadric(t, QuadricConfig{Shape: ShapeSphere, Origin: core.NewVec3(0, 0, -1.5), Radius: 2}, nil)
	lens, err := NewConvex("lens", a, b)
	if err != nil {
		t.Fatal(err)
	}

	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))
	hit, ok := lens.Intersect(ray, TracingMode)
	if !ok {
		t.Fatal("Expected hit on lens")
	}
	// Front surface is sphere b at z = 0.5
	if math.Abs(hit.Distance-4.5) > 1e-12 || hit.Device != Device(b) {
		t.Errorf("Expected hit at 4.5 on the lower sphere, got %g on %v", hit.Distance, hit.Device)
	}

	if _, ok := lens.Intersect(core.NewRay(core.NewVec3(1.9, 0, 5), core.NewVec3(0, 0, -1)), DistanceMode); ok {
		t.Error("Ray outside the lens rim should miss")
	}
}

func TestConvex_NoMembers(t *testing.T) {
	if _, err := NewConvex("empty"); err != ErrNoMembers {
		t.Errorf("Expected ErrNoMembers, got %v", err)
	}
}
