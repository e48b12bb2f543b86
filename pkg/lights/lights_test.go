package lights

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-pbrt-renderer/pkg/core"
	"github.com/df07/go-pbrt-renderer/pkg/geometry"
	"github.com/df07/go-pbrt-renderer/pkg/interaction"
	"github.com/df07/go-pbrt-renderer/pkg/material"
	"github.com/df07/go-pbrt-renderer/pkg/transform"
)

const tolerance = 1e-9

func surfaceRef(p, n core.Vec3) *interaction.Interaction {
	it := interaction.NewInteraction(p, 0)
	it.N = n
	return &it
}

func TestLightTypeIsDelta(t *testing.T) {
	tests := []struct {
		typ  Type
		want bool
	}{
		{DeltaPosition, true},
		{DeltaDirection, true},
		{Area, false},
		{Infinite, false},
		{Area | DeltaPosition, true},
	}
	for _, tt := range tests {
		if got := tt.typ.IsDelta(); got != tt.want {
			t.Errorf("Type(%d).IsDelta() = %v, want %v", tt.typ, got, tt.want)
		}
	}
}

func TestPointLight_SampleLi(t *testing.T) {
	light := NewPointLight(transform.Translate(core.NewVec3(0, 2, 0)), core.NewSpectrum(4))
	ref := surfaceRef(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))

	sample, vis, ok := light.SampleLi(ref, core.NewVec2(0.3, 0.7))
	if !ok {
		t.Fatal("SampleLi failed")
	}
	if !sample.Wi.Subtract(core.NewVec3(0, 1, 0)).IsZero() {
		t.Errorf("Wi = %v, want (0,1,0)", sample.Wi)
	}
	if math.Abs(sample.Li.R-1) > tolerance {
		t.Errorf("Li = %v, want I/d^2 = 1", sample.Li)
	}
	if sample.Pdf != 1 {
		t.Errorf("Pdf = %v, want 1", sample.Pdf)
	}
	if !vis.P1.P.Subtract(light.Position()).IsZero() {
		t.Errorf("visibility endpoint = %v, want light position", vis.P1.P)
	}
	if light.PdfLi(ref, sample.Wi) != 0 {
		t.Error("PdfLi of a delta light should be 0")
	}
	if !light.Type().IsDelta() {
		t.Error("point light should be delta")
	}

	wantPower := 4 * 4 * math.Pi
	if math.Abs(light.Power().G-wantPower) > tolerance {
		t.Errorf("Power = %v, want %v", light.Power().G, wantPower)
	}

	// A reference point at the light itself has no direction
	if _, _, ok := light.SampleLi(surfaceRef(light.Position(), core.NewVec3(0, 1, 0)), core.NewVec2(0.5, 0.5)); ok {
		t.Error("expected failure when sampling from the light position")
	}
}

func TestSpotLight_Falloff(t *testing.T) {
	light := NewSpotLight(core.NewVec3(0, 2, 0), core.NewVec3(0, 0, 0), core.NewSpectrum(4), 30, 10)

	edge := func(deg float64) float64 {
		d := (math.Cos(core.Radians(deg)) - math.Cos(core.Radians(30))) /
			(math.Cos(core.Radians(20)) - math.Cos(core.Radians(30)))
		return d * d * d * d
	}
	tests := []struct {
		name  string
		angle float64 // degrees off the spot axis
		want  float64 // falloff factor
	}{
		{"on axis", 0, 1},
		{"inside inner cone", 15, 1},
		{"in falloff band", 25, edge(25)},
		{"outside cone", 40, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := 2 * math.Tan(core.Radians(tt.angle))
			ref := surfaceRef(core.NewVec3(x, 0, 0), core.NewVec3(0, 1, 0))
			sample, _, ok := light.SampleLi(ref, core.NewVec2(0.5, 0.5))
			if !ok {
				t.Fatal("SampleLi failed")
			}
			want := 4 * tt.want / (4 + x*x)
			if math.Abs(sample.Li.G-want) > 1e-9 {
				t.Errorf("Li = %v, want %v", sample.Li.G, want)
			}
		})
	}

	if !light.Type().IsDelta() {
		t.Error("spot light should be a delta light")
	}
	wantPower := 4 * 2 * math.Pi * (1 - 0.5*(math.Cos(core.Radians(20))+math.Cos(core.Radians(30))))
	if p := light.Power(); math.Abs(p.B-wantPower) > 1e-9 {
		t.Errorf("Power = %v, want %v", p.B, wantPower)
	}
}

func TestDiffuseAreaLight_SampleMatchesPdf(t *testing.T) {
	tests := []struct {
		name  string
		shape geometry.Shape
	}{
		{"sphere", geometry.NewSphere(transform.Translate(core.NewVec3(0, 4, 0)), false, 1)},
		{"disc", geometry.NewDisc(transform.Translate(core.NewVec3(0, 3, 0)).Mul(transform.RotateX(90)), false, 0, 1, 0, 360)},
	}

	ref := surfaceRef(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))
	rng := rand.New(rand.NewSource(3))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			light := NewDiffuseAreaLight(core.NewSpectrum(2), 1, tt.shape, true)
			for i := 0; i < 50; i++ {
				u := core.NewVec2(rng.Float64(), rng.Float64())
				sample, _, ok := light.SampleLi(ref, u)
				if !ok {
					continue
				}
				pdf := light.PdfLi(ref, sample.Wi)
				if math.Abs(pdf-sample.Pdf) > 1e-4*sample.Pdf {
					t.Fatalf("sample %d: SampleLi pdf %v, PdfLi %v", i, sample.Pdf, pdf)
				}
			}
		})
	}
}

func TestDiffuseAreaLight_OneSided(t *testing.T) {
	// Disc at z=0 facing +z
	disc := geometry.NewDisc(transform.Identity(), false, 0, 1, 0, 360)
	oneSided := NewDiffuseAreaLight(core.NewSpectrum(1), 1, disc, false)
	twoSided := NewDiffuseAreaLight(core.NewSpectrum(1), 1, disc, true)

	front := surfaceRef(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))
	back := surfaceRef(core.NewVec3(0, 0, -2), core.NewVec3(0, 0, 1))
	u := core.NewVec2(0.25, 0.6)

	if s, _, ok := oneSided.SampleLi(front, u); !ok || s.Li.IsBlack() {
		t.Error("front side of one-sided light should emit")
	}
	if s, _, ok := oneSided.SampleLi(back, u); ok && !s.Li.IsBlack() {
		t.Error("back side of one-sided light should be black")
	}
	if s, _, ok := twoSided.SampleLi(back, u); !ok || s.Li.IsBlack() {
		t.Error("back side of two-sided light should emit")
	}

	wantOne := math.Pi * math.Pi // L * area(pi) * pi
	if math.Abs(oneSided.Power().R-wantOne) > tolerance {
		t.Errorf("one-sided power = %v, want %v", oneSided.Power().R, wantOne)
	}
	if math.Abs(twoSided.Power().R-2*wantOne) > tolerance {
		t.Errorf("two-sided power = %v, want %v", twoSided.Power().R, 2*wantOne)
	}
}

func TestInfiniteLight_Preprocess(t *testing.T) {
	light := NewUniformInfiniteLight(core.NewSpectrum(0.5), 1)
	light.Preprocess(core.NewBounds3(core.NewVec3(-1, -1, -1), core.NewVec3(1, 1, 1)))

	ref := surfaceRef(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))
	sample, vis, ok := light.SampleLi(ref, core.NewVec2(0.4, 0.1))
	if !ok {
		t.Fatal("SampleLi failed")
	}
	// The visibility endpoint lies outside the scene's bounding sphere
	if d := vis.P1.P.Distance(ref.P); math.Abs(d-2*math.Sqrt(3)) > 1e-9 {
		t.Errorf("visibility distance = %v, want %v", d, 2*math.Sqrt(3))
	}
	if sample.Li.R != 0.5 {
		t.Errorf("Li = %v, want 0.5", sample.Li)
	}

	wantPower := math.Pi * 3 * 0.5
	if math.Abs(light.Power().R-wantPower) > 1e-9 {
		t.Errorf("Power = %v, want %v", light.Power().R, wantPower)
	}
}

func TestInfiniteLight_Pdf(t *testing.T) {
	light := NewUniformInfiniteLight(core.NewSpectrum(1), 1)
	light.Preprocess(core.NewBounds3(core.NewVec3(-1, -1, -1), core.NewVec3(1, 1, 1)))

	surface := surfaceRef(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 100; i++ {
		sample, _, ok := light.SampleLi(surface, core.NewVec2(rng.Float64(), rng.Float64()))
		if !ok {
			continue
		}
		if sample.Wi.Y < 0 {
			t.Fatalf("sampled direction %v below the surface", sample.Wi)
		}
		if pdf := light.PdfLi(surface, sample.Wi); math.Abs(pdf-sample.Pdf) > 1e-9 {
			t.Fatalf("SampleLi pdf %v, PdfLi %v", sample.Pdf, pdf)
		}
	}

	if pdf := light.PdfLi(surface, core.NewVec3(0, -1, 0)); pdf != 0 {
		t.Errorf("pdf below surface = %v, want 0", pdf)
	}

	medium := interaction.NewInteraction(core.NewVec3(0, 0, 0), 0)
	if pdf := light.PdfLi(&medium, core.NewVec3(0, -1, 0)); math.Abs(pdf-1/(4*math.Pi)) > 1e-12 {
		t.Errorf("pdf without normal = %v, want 1/4pi", pdf)
	}
}

func TestGradientInfiniteLight_Le(t *testing.T) {
	top := core.NewRGB(0.5, 0.7, 1.0)
	bottom := core.NewRGB(1, 1, 1)
	light := NewGradientInfiniteLight(top, bottom, 1)

	tests := []struct {
		name string
		dir  core.Vec3
		want core.Spectrum
	}{
		{"up", core.NewVec3(0, 3, 0), top},
		{"down", core.NewVec3(0, -1, 0), bottom},
		{"horizon", core.NewVec3(1, 0, 0), bottom.Lerp(0.5, top)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRayDifferential(core.NewRay(core.NewVec3(0, 0, 0), tt.dir))
			got := light.Le(&ray)
			if math.Abs(got.R-tt.want.R) > 1e-9 || math.Abs(got.G-tt.want.G) > 1e-9 || math.Abs(got.B-tt.want.B) > 1e-9 {
				t.Errorf("Le(%v) = %v, want %v", tt.dir, got, tt.want)
			}
		})
	}
}

func TestVisibilityTester(t *testing.T) {
	gray := material.NewLambertian(core.NewSpectrum(0.5))
	// A sphere without a material only marks a boundary
	boundary := geometry.NewGeometricPrimitive(geometry.NewSphere(transform.Identity(), false, 1), nil, nil)
	blocker := geometry.NewGeometricPrimitive(geometry.NewSphere(transform.Translate(core.NewVec3(5, 0, 0)), false, 0.5), gray, nil)
	bvh := geometry.NewBVHAccel([]geometry.Primitive{boundary, blocker}, 1, geometry.SplitSAH)

	tests := []struct {
		name       string
		p0, p1     core.Vec3
		unoccluded bool
		tr         float64
	}{
		{"clear", core.NewVec3(0, 3, -3), core.NewVec3(0, 3, 3), true, 1},
		{"through boundary", core.NewVec3(0, 0, -3), core.NewVec3(0, 0, 3), false, 1},
		{"blocked", core.NewVec3(5, 0, -3), core.NewVec3(5, 0, 3), false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vis := VisibilityTester{
				P0: interaction.NewInteraction(tt.p0, 0),
				P1: interaction.NewInteraction(tt.p1, 0),
			}
			if got := vis.Unoccluded(bvh); got != tt.unoccluded {
				t.Errorf("Unoccluded = %v, want %v", got, tt.unoccluded)
			}
			if got := vis.Tr(bvh, nil); got.G != tt.tr {
				t.Errorf("Tr = %v, want %v", got, tt.tr)
			}
		})
	}
}
