package integrator

import (
	"math"
	"testing"

	"github.com/df07/go-pbrt-renderer/pkg/bxdf"
	"github.com/df07/go-pbrt-renderer/pkg/camera"
	"github.com/df07/go-pbrt-renderer/pkg/core"
	"github.com/df07/go-pbrt-renderer/pkg/geometry"
	"github.com/df07/go-pbrt-renderer/pkg/lights"
	"github.com/df07/go-pbrt-renderer/pkg/material"
	"github.com/df07/go-pbrt-renderer/pkg/sampler"
	"github.com/df07/go-pbrt-renderer/pkg/scene"
	"github.com/df07/go-pbrt-renderer/pkg/transform"
)

// groundScene is a gray disc at y=0 facing up, plus whatever the caller adds
func groundScene(mat material.Material, extra func(b *scene.Builder)) *scene.Scene {
	b := scene.NewBuilder("test", camera.DefaultCameraConfig())
	b.AddGround(0, 10, mat)
	if extra != nil {
		extra(b)
	}
	return b.Build(geometry.DefaultBVHConfig())
}

// towardOrigin is a camera ray from (0,1,1) aimed at the origin
func towardOrigin() core.RayDifferential {
	return core.NewRayDifferential(core.NewRay(core.NewVec3(0, 1, 1), core.NewVec3(0, -1, -1).Normalize()))
}

// average runs every sample of one pixel through Li and returns the mean
func average(in Integrator, s *scene.Scene, smp sampler.Sampler, makeRay func() core.RayDifferential) core.Spectrum {
	in.Preprocess(s, smp)
	smp.StartPixel(core.NewPoint2i(0, 0))
	sum := core.Black
	n := 0
	for {
		ray := makeRay()
		sum = sum.Add(in.Li(&ray, s, smp, 0))
		n++
		if !smp.StartNextSample() {
			break
		}
	}
	return sum.Scale(1 / float64(n))
}

func near(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestNew(t *testing.T) {
	for _, name := range Names {
		if _, err := New(name, 5); err != nil {
			t.Errorf("New(%q) failed: %v", name, err)
		}
	}
	if _, err := New("bdpt", 5); err == nil {
		t.Error("expected error for unknown integrator")
	}
	if _, err := New("whitted", 0); err == nil {
		t.Error("expected error for zero max depth")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr bool
	}{
		{"whitted default", DefaultWhittedConfig().Validate(), false},
		{"whitted zero depth", WhittedConfig{}.Validate(), true},
		{"direct default", DefaultDirectLightingConfig().Validate(), false},
		{"direct bad strategy", DirectLightingConfig{Strategy: 7, MaxDepth: 1}.Validate(), true},
		{"path default", DefaultPathConfig().Validate(), false},
		{"path negative threshold", PathConfig{MaxDepth: 1, RRThreshold: -1}.Validate(), true},
	}
	for _, tt := range tests {
		if (tt.err != nil) != tt.wantErr {
			t.Errorf("%s: err = %v, wantErr %v", tt.name, tt.err, tt.wantErr)
		}
	}
}

func TestNormalIntegrator(t *testing.T) {
	b := scene.NewBuilder("normal", camera.DefaultCameraConfig())
	b.AddShape(geometry.NewSphere(transform.Identity(), false, 1), material.NewLambertian(core.NewSpectrum(0.5)))
	s := b.Build(geometry.DefaultBVHConfig())
	in := NewNormalIntegrator()
	smp := sampler.NewRandomSampler(1, 1)

	hit := core.NewRayDifferential(core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1)))
	got := in.Li(&hit, s, smp, 0)
	if !near(got.R, 0.5, 1e-9) || !near(got.G, 0.5, 1e-9) || !near(got.B, 1, 1e-9) {
		t.Errorf("normal color = %v, want (0.5, 0.5, 1)", got)
	}

	miss := core.NewRayDifferential(core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 1)))
	if got := in.Li(&miss, s, smp, 0); got != core.NewSpectrum(1) {
		t.Errorf("miss color = %v, want white", got)
	}
}

// With albedo 0.5 and a point light of intensity 8pi two units above the
// hit point, the reflected radiance is (0.5/pi) * (8pi/4) = 1
func pointLitScene(occluded bool) *scene.Scene {
	return groundScene(material.NewLambertian(core.NewSpectrum(0.5)), func(b *scene.Builder) {
		b.AddPointLight(core.NewVec3(0, 2, 0), core.NewSpectrum(8*math.Pi))
		if occluded {
			b.AddShape(geometry.NewSphere(transform.Translate(core.NewVec3(0, 1, 0)), false, 0.2),
				material.NewLambertian(core.NewSpectrum(0.5)))
		}
	})
}

func TestPointLightDirect(t *testing.T) {
	// The path tracer also picks up light bounced off the occluder, so
	// only the direct estimators must be exactly black in shadow
	integrators := []struct {
		name       string
		in         Integrator
		directOnly bool
	}{
		{"whitted", NewWhittedIntegrator(DefaultWhittedConfig()), true},
		{"direct all", NewDirectLightingIntegrator(DefaultDirectLightingConfig()), true},
		{"direct one", NewDirectLightingIntegrator(DirectLightingConfig{Strategy: SampleOneLight, MaxDepth: 5}), true},
		{"path", NewPathIntegrator(DefaultPathConfig()), false},
	}

	for _, tt := range integrators {
		t.Run(tt.name, func(t *testing.T) {
			lit := average(tt.in, pointLitScene(false), sampler.NewStratifiedSampler(sampler.DefaultStratifiedConfig(), 1), towardOrigin)
			if !near(lit.G, 1, 1e-6) {
				t.Errorf("lit radiance = %v, want 1", lit.G)
			}
			if !tt.directOnly {
				return
			}
			shadowed := average(tt.in, pointLitScene(true), sampler.NewStratifiedSampler(sampler.DefaultStratifiedConfig(), 1), towardOrigin)
			if !shadowed.IsBlack() {
				t.Errorf("shadowed radiance = %v, want black", shadowed)
			}
		})
	}
}

// A sphere light of radius r at height h over a diffuse point subtends a
// cone with sin^2(thetaMax) = r^2/h^2, so the reflected radiance is
// albedo * Le * r^2/h^2. Here 0.5 * 9 * 1/9 = 0.5.
func TestAreaLightMatchesAnalytic(t *testing.T) {
	build := func() *scene.Scene {
		return groundScene(material.NewLambertian(core.NewSpectrum(0.5)), func(b *scene.Builder) {
			b.AddSphereLight(core.NewVec3(0, 3, 0), 1, core.NewSpectrum(9), 4)
		})
	}

	integrators := []struct {
		name string
		in   Integrator
	}{
		{"direct all", NewDirectLightingIntegrator(DefaultDirectLightingConfig())},
		{"direct one", NewDirectLightingIntegrator(DirectLightingConfig{Strategy: SampleOneLight, MaxDepth: 5})},
		{"path", NewPathIntegrator(DefaultPathConfig())},
	}
	for _, tt := range integrators {
		t.Run(tt.name, func(t *testing.T) {
			got := average(tt.in, build(), sampler.NewRandomSampler(4096, 5), towardOrigin)
			if !near(got.G, 0.5, 0.015) {
				t.Errorf("radiance = %v, want 0.5", got.G)
			}
		})
	}
}

func TestEstimateDirect_WeightsSumToOne(t *testing.T) {
	// Light sampling alone and BSDF sampling alone both estimate the same
	// integral; the MIS combination must agree with the analytic value
	// when the surface also sees an environment light
	s := groundScene(material.NewLambertian(core.NewSpectrum(0.5)), func(b *scene.Builder) {
		b.AddLight(lights.NewUniformInfiniteLight(core.NewSpectrum(0.2), 1))
	})
	in := NewDirectLightingIntegrator(DefaultDirectLightingConfig())

	// Uniform sky of 0.2 over the upper hemisphere reflects 0.5 * 0.2
	got := average(in, s, sampler.NewRandomSampler(4096, 9), towardOrigin)
	if !near(got.G, 0.1, 0.003) {
		t.Errorf("radiance under uniform sky = %v, want 0.1", got.G)
	}
}

func TestMirrorReflectsEnvironment(t *testing.T) {
	build := func() *scene.Scene {
		return groundScene(material.NewMirror(core.NewSpectrum(1)), func(b *scene.Builder) {
			b.AddLight(lights.NewUniformInfiniteLight(core.NewSpectrum(0.3), 1))
		})
	}
	tests := []struct {
		name     string
		maxDepth int
		want     float64
	}{
		{"reflects", 5, 0.3},
		{"depth limited", 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, in := range []Integrator{
				NewWhittedIntegrator(WhittedConfig{MaxDepth: tt.maxDepth}),
				NewDirectLightingIntegrator(DirectLightingConfig{Strategy: SampleAllLights, MaxDepth: tt.maxDepth}),
			} {
				got := average(in, build(), sampler.NewRandomSampler(4, 2), towardOrigin)
				if !near(got.G, tt.want, 1e-9) {
					t.Errorf("%T: radiance = %v, want %v", in, got.G, tt.want)
				}
			}
		})
	}
}

func TestGlassSphereTransmits(t *testing.T) {
	b := scene.NewBuilder("glass", camera.DefaultCameraConfig())
	b.AddShape(geometry.NewSphere(transform.Identity(), false, 1), material.NewDielectric(1.5))
	b.AddLight(lights.NewUniformInfiniteLight(core.NewSpectrum(1), 1))
	s := b.Build(geometry.DefaultBVHConfig())

	in := NewWhittedIntegrator(WhittedConfig{MaxDepth: 10})
	center := func() core.RayDifferential {
		return core.NewRayDifferential(core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1)))
	}
	got := average(in, s, sampler.NewRandomSampler(1, 3), center)
	// Fresnel reflection plus two refractions lose only what stays trapped
	// inside past the depth limit
	if got.G < 0.9 || got.G > 1.01 {
		t.Errorf("radiance through glass = %v, want about 1", got.G)
	}
}

func TestSpecularReflectDifferentials(t *testing.T) {
	s := groundScene(material.NewMirror(core.NewSpectrum(1)), nil)
	ray := towardOrigin()
	ray.HasDifferentials = true
	ray.RxOrigin = ray.Origin.Add(core.NewVec3(0.01, 0, 0))
	ray.RyOrigin = ray.Origin.Add(core.NewVec3(0, 0.01, 0))
	ray.RxDirection = ray.Direction
	ray.RyDirection = ray.Direction

	isect, found := s.Intersect(&ray.Ray)
	if !found {
		t.Fatal("ray missed the ground")
	}
	isect.ComputeScatteringFunctions(&ray, bxdf.Radiance, false)

	rec := &recorder{}
	smp := sampler.NewRandomSampler(1, 1)
	smp.StartPixel(core.NewPoint2i(0, 0))
	SpecularReflect(rec, &ray, isect, s, smp, 0)

	if !rec.got.HasDifferentials {
		t.Fatal("reflected ray lost its differentials")
	}
	// A flat mirror keeps parallel offset rays parallel after reflection
	if !near(rec.got.RxDirection.Distance(rec.got.Direction), 0, 1e-9) {
		t.Errorf("rx direction %v differs from %v", rec.got.RxDirection, rec.got.Direction)
	}
	want := core.NewVec3(0, 1, -1).Normalize()
	if !near(rec.got.Direction.Distance(want), 0, 1e-9) {
		t.Errorf("reflected direction = %v, want %v", rec.got.Direction, want)
	}
	if rec.depth != 1 {
		t.Errorf("recursion depth = %d, want 1", rec.depth)
	}
}

// recorder captures the ray a specular helper recurses with
type recorder struct {
	got   core.RayDifferential
	depth int
}

func (r *recorder) Preprocess(s *scene.Scene, smp sampler.Sampler) {}

func (r *recorder) Li(ray *core.RayDifferential, s *scene.Scene, smp sampler.Sampler, depth int) core.Spectrum {
	r.got = *ray
	r.depth = depth
	return core.NewSpectrum(1)
}
