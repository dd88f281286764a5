package material

import (
	"math"
	"testing"

	"github.com/df07/go-spectral-raytracer/pkg/core"
)

func incoming(d core.Vec3) core.Ray {
	d = d.Normalize()
	return core.Ray{
		Origin:       core.NewVec3(0, 0, 1),
		Direction:    d,
		Polarization: core.Perpendicular(d),
		Amplitude:    0.8,
		Wavelength:   550,
		ID:           7,
	}
}

func TestScatterLevelZeroEmitsAllBranches(t *testing.T) {
	tests := []struct {
		name      string
		scatter   ScatterType
		split     int
		wantCount int
	}{
		{"mirror", Mirror, 4, 2},
		{"diffuse split", Diffuse, 3, 6},
		{"metal split", Metal, 2, 4},
	}

	random := core.NewRandom(1)
	n := core.NewVec3(0, 0, 1)
	in := incoming(core.NewVec3(0.2, 0, -1))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			side := Interface{Scatter: tt.scatter, Reflect: 0.3, Transmit: 0.6, FromIndex: 1, ToIndex: 1.5}
			opts := ScatterOptions{FirstLevelSplit: tt.split, MetalRoughness: 0.15}
			children := Scatter(nil, in, core.Vec3{}, n, side, 0, opts, random)
			if len(children) != tt.wantCount {
				t.Fatalf("got %d children, expected %d", len(children), tt.wantCount)
			}
			total := 0.0
			for _, c := range children {
				if c.Ray.Amplitude > in.Amplitude {
					t.Errorf("child amplitude %f exceeds parent %f", c.Ray.Amplitude, in.Amplitude)
				}
				if c.Ray.ID != in.ID || c.Ray.Wavelength != in.Wavelength {
					t.Errorf("child lost identity: %+v", c.Ray)
				}
				total += c.Ray.Amplitude
			}
			if math.Abs(total-0.9*in.Amplitude) > 1e-12 {
				t.Errorf("total level-0 amplitude = %f, expected %f", total, 0.9*in.Amplitude)
			}
		})
	}
}

func TestScatterDeepLevelIsBernoulli(t *testing.T) {
	random := core.NewRandom(2)
	n := core.NewVec3(0, 0, 1)
	in := incoming(core.NewVec3(0, 0, -1))
	side := Interface{Scatter: Diffuse, Reflect: 0.25}

	const trials = 100000
	kept := 0
	var buf []Child
	for i := 0; i < trials; i++ {
		buf = Scatter(buf[:0], in, core.Vec3{}, n, side, 3, DefaultScatterOptions(), random)
		for _, c := range buf {
			if c.Ray.Amplitude != in.Amplitude {
				t.Fatalf("deep child should carry parent amplitude, got %f", c.Ray.Amplitude)
			}
			kept++
		}
	}
	frac := float64(kept) / trials
	if math.Abs(frac-0.25) > 0.01 {
		t.Errorf("kept fraction %f, expected 0.25", frac)
	}
}

func TestScatterMirrorDirection(t *testing.T) {
	random := core.NewRandom(3)
	n := core.NewVec3(1, 0, 0)
	in := incoming(core.NewVec3(-1, 0, 0))
	side := Interface{Scatter: Mirror, Reflect: 1, Transmit: 0, FromIndex: 1, ToIndex: 1}

	children := Scatter(nil, in, core.NewVec3(1, 0, 0), n, side, 0, DefaultScatterOptions(), random)
	if len(children) != 1 {
		t.Fatalf("expected one child, got %d", len(children))
	}
	if children[0].Ray.Direction.Subtract(core.NewVec3(1, 0, 0)).Length() > 1e-12 {
		t.Errorf("mirror child direction %v, expected +x", children[0].Ray.Direction)
	}
	if children[0].Refracted {
		t.Error("mirror reflection flagged as refraction")
	}
}

func TestScatterTotalInternalReflectionSuppressesTransmit(t *testing.T) {
	random := core.NewRandom(4)
	n := core.NewVec3(0, 0, 1)
	theta := 70 * math.Pi / 180
	in := incoming(core.NewVec3(math.Sin(theta), 0, -math.Cos(theta)))
	side := Interface{Scatter: Mirror, Reflect: 0, Transmit: 1, FromIndex: 1.5, ToIndex: 1}

	children := Scatter(nil, in, core.Vec3{}, n, side, 0, DefaultScatterOptions(), random)
	if len(children) != 0 {
		t.Errorf("expected no transmitted child under total internal reflection, got %d", len(children))
	}
}

func TestScatterOpticalLevelZeroSplitsByFresnel(t *testing.T) {
	random := core.NewRandom(5)
	n := core.NewVec3(0, 0, 1)
	in := incoming(core.NewVec3(0.5, 0, -1))
	side := Interface{Scatter: Optical, FromIndex: 1, ToIndex: 1.5}

	children := Scatter(nil, in, core.Vec3{}, n, side, 0, DefaultScatterOptions(), random)
	if len(children) != 2 {
		t.Fatalf("expected reflect and transmit children, got %d", len(children))
	}
	sum := children[0].Ray.Amplitude + children[1].Ray.Amplitude
	if math.Abs(sum-in.Amplitude) > 1e-9 {
		t.Errorf("optical children carry %f, parent %f", sum, in.Amplitude)
	}
	for _, c := range children {
		if math.Abs(c.Ray.Polarization.Dot(c.Ray.Direction)) > 1e-9 {
			t.Errorf("polarization not orthogonal to direction: %v", c.Ray)
		}
	}
}

func TestGridTexture(t *testing.T) {
	g := NewGrid(core.NewVec3(0, 0, 1), 1)
	a := g.Ratio(core.NewVec3(0.5, 0.5, 0), 550)
	b := g.Ratio(g.n1.Multiply(1.5).Add(g.n2.Multiply(0.5)), 550)
	if a == b {
		t.Errorf("neighbouring cells should differ: %f %f", a, b)
	}
	if (a != 0.5 && a != 1) || (b != 0.5 && b != 1) {
		t.Errorf("grid ratios must be 0.5 or 1, got %f %f", a, b)
	}
}

func TestPropertiesSide(t *testing.T) {
	p := DefaultProperties().
		SetScatter(Mirror).
		SetInnerIndex(ConstantIndex(1.5))
	p.InToOutReflect = Constant(0.1)
	p.OutToInReflect = Constant(0.9)

	inner := p.Side(true, core.Vec3{}, 550)
	if inner.FromIndex != 1.5 || inner.ToIndex != 1 || inner.Reflect != 0.1 {
		t.Errorf("inner side resolved to %+v", inner)
	}
	outer := p.Side(false, core.Vec3{}, 550)
	if outer.FromIndex != 1 || outer.ToIndex != 1.5 || outer.Reflect != 0.9 {
		t.Errorf("outer side resolved to %+v", outer)
	}
	if err := p.Validate(); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}
}
