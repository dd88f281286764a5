package core

import (
	"math"
	"testing"
)

func TestRandomNormalIsPerpendicular(t *testing.T) {
	random := NewRandom(42)
	axes := []Vec3{
		NewVec3(1, 0, 0),
		NewVec3(0, 1, 0),
		NewVec3(0, 0, -1),
		NewVec3(1, 2, 3).Normalize(),
	}

	for _, d := range axes {
		for i := 0; i < 100; i++ {
			n := RandomNormal(random, d)
			if math.Abs(n.Dot(d)) > 1e-12 {
				t.Fatalf("RandomNormal(%v) not perpendicular: dot=%g", d, n.Dot(d))
			}
			if math.Abs(n.Length()-1) > 1e-12 {
				t.Fatalf("RandomNormal(%v) not unit: len=%g", d, n.Length())
			}
		}
	}
}

func TestRandomSinCosOnUnitCircle(t *testing.T) {
	random := NewRandom(7)
	for i := 0; i < 1000; i++ {
		s, c := RandomSinCos(random)
		if math.Abs(s*s+c*c-1) > 1e-9 {
			t.Fatalf("sin²+cos² = %g", s*s+c*c)
		}
	}
}

func TestSampleDiffuseMeanCosine(t *testing.T) {
	// For a cosine-weighted hemisphere E[cosθ] = 2/3
	random := NewRandom(1)
	n := NewVec3(0, 0, 1)
	const samples = 200000

	sum := 0.0
	for i := 0; i < samples; i++ {
		d := SampleDiffuse(random, n)
		if d.Dot(n) < 0 {
			t.Fatalf("diffuse sample below the surface: %v", d)
		}
		sum += d.Dot(n)
	}
	mean := sum / samples
	if math.Abs(mean-2.0/3.0) > 0.005 {
		t.Errorf("mean cosine = %f, expected 2/3", mean)
	}
}

func TestSampleUniformCone(t *testing.T) {
	tests := []struct {
		name      string
		halfAngle float64
	}{
		{"narrow", 0.1},
		{"hemisphere", math.Pi / 2},
		{"sphere", math.Pi},
	}

	random := NewRandom(3)
	axis := NewVec3(0, 1, 0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			minCos := math.Cos(tt.halfAngle)
			for i := 0; i < 5000; i++ {
				d := SampleUniformCone(random, axis, tt.halfAngle)
				if d.Dot(axis) < minCos-1e-9 {
					t.Fatalf("sample outside cone: cos=%f < %f", d.Dot(axis), minCos)
				}
			}
		})
	}
}

func TestSampleMetalStaysAboveSurface(t *testing.T) {
	random := NewRandom(11)
	n := NewVec3(0, 0, 1)
	d := NewVec3(1, 0, -1).Normalize()
	mirror := Reflect(n, d)

	sum := 0.0
	for i := 0; i < 10000; i++ {
		out := SampleMetal(random, d, n, 0.15)
		if out.Dot(n) <= 0 {
			t.Fatalf("metal sample below surface: %v", out)
		}
		sum += out.Dot(mirror)
	}
	if sum/10000 < 0.8 {
		t.Errorf("metal lobe not concentrated around mirror direction: mean cos %f", sum/10000)
	}
}

func TestSampleRayleighSymmetric(t *testing.T) {
	// The phase function is symmetric, E[x]=0, and E[x²] = 2/5
	random := NewRandom(5)
	axis := NewVec3(0, 0, 1)
	const samples = 200000

	sum, sumSq := 0.0, 0.0
	for i := 0; i < samples; i++ {
		x := SampleRayleigh(random, axis).Dot(axis)
		sum += x
		sumSq += x * x
	}
	if math.Abs(sum/samples) > 0.01 {
		t.Errorf("E[cosθ] = %f, expected 0", sum/samples)
	}
	if math.Abs(sumSq/samples-0.4) > 0.01 {
		t.Errorf("E[cos²θ] = %f, expected 0.4", sumSq/samples)
	}
}

func TestSampleDiskInside(t *testing.T) {
	random := NewRandom(9)
	for i := 0; i < 1000; i++ {
		x, y := SampleDisk(random)
		if x*x+y*y > 1+1e-12 {
			t.Fatalf("point (%f,%f) outside unit disk", x, y)
		}
	}
}
