package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-pbrt-renderer/pkg/core"
	"github.com/df07/go-pbrt-renderer/pkg/interaction"
	"github.com/df07/go-pbrt-renderer/pkg/transform"
)

func approxEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

func vecApproxEqual(a, b core.Vec3, tolerance float64) bool {
	return a.Subtract(b).Length() <= tolerance
}

func TestSphere_HitFromOutside(t *testing.T) {
	sphere := NewSphere(transform.Identity(), false, 1)
	ray := core.NewRay(core.NewVec3(0, 0, 3), core.NewVec3(0, 0, -1))

	tHit, si, ok := sphere.Intersect(&ray, false)
	if !ok {
		t.Fatal("Expected hit, but got miss")
	}
	if !approxEqual(tHit, 2, 1e-5) {
		t.Errorf("Expected t=2, got t=%f", tHit)
	}
	if !vecApproxEqual(si.P, core.NewVec3(0, 0, 1), 1e-5) {
		t.Errorf("Expected point (0,0,1), got %v", si.P)
	}
	if !vecApproxEqual(si.N, core.NewVec3(0, 0, 1), 1e-5) {
		t.Errorf("Expected normal (0,0,1), got %v", si.N)
	}
	if ray.TMax != math.Inf(1) {
		t.Errorf("shape Intersect must not modify the ray, TMax=%v", ray.TMax)
	}
}

func TestSphere_Cases(t *testing.T) {
	tests := []struct {
		name      string
		sphere    *Sphere
		origin    core.Vec3
		direction core.Vec3
		tMax      float64
		wantHit   bool
		wantT     float64
	}{
		{
			name:      "miss",
			sphere:    NewSphere(transform.Identity(), false, 1),
			origin:    core.NewVec3(2, 0, 0),
			direction: core.NewVec3(0, 1, 0),
			tMax:      math.Inf(1),
		},
		{
			name:      "inside hits far side",
			sphere:    NewSphere(transform.Identity(), false, 1),
			origin:    core.NewVec3(0, 0, 0),
			direction: core.NewVec3(1, 0, 0),
			tMax:      math.Inf(1),
			wantHit:   true,
			wantT:     1,
		},
		{
			name:      "beyond tMax",
			sphere:    NewSphere(transform.Identity(), false, 1),
			origin:    core.NewVec3(0, 0, 3),
			direction: core.NewVec3(0, 0, -1),
			tMax:      1.5,
		},
		{
			name:      "translated",
			sphere:    NewSphere(transform.Translate(core.NewVec3(5, 0, 0)), false, 2),
			origin:    core.NewVec3(0, 0, 0),
			direction: core.NewVec3(1, 0, 0),
			tMax:      math.Inf(1),
			wantHit:   true,
			wantT:     3,
		},
		{
			name:      "z clip falls through to far root",
			sphere:    NewPartialSphere(transform.Identity(), false, 1, -1, 0.5, 360),
			origin:    core.NewVec3(0, 0, 3),
			direction: core.NewVec3(0, 0, -1),
			tMax:      math.Inf(1),
			wantHit:   true,
			wantT:     4,
		},
		{
			name:      "phi clip",
			sphere:    NewPartialSphere(transform.Identity(), false, 1, -1, 1, 90),
			origin:    core.NewVec3(-3, -0.1, 0),
			direction: core.NewVec3(1, 0, 0),
			tMax:      math.Inf(1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.origin, tt.direction)
			ray.TMax = tt.tMax
			tHit, _, ok := tt.sphere.Intersect(&ray, false)
			if ok != tt.wantHit {
				t.Fatalf("hit = %v, want %v", ok, tt.wantHit)
			}
			if ok && !approxEqual(tHit, tt.wantT, 1e-5) {
				t.Errorf("t = %f, want %f", tHit, tt.wantT)
			}
			if p := tt.sphere.IntersectP(&ray, false); p != tt.wantHit {
				t.Errorf("IntersectP = %v, want %v", p, tt.wantHit)
			}
		})
	}
}

func TestSphere_ErrorBoundContainsSurface(t *testing.T) {
	sphere := NewSphere(transform.Translate(core.NewVec3(0.3, -0.2, 0.1)), false, 0.7)
	for i := 0; i < 50; i++ {
		dir := core.UniformSampleSphere(core.NewVec2(float64(i)/50, float64(i*7%50)/50))
		ray := core.NewRay(dir.Multiply(-5), dir)
		_, si, ok := sphere.Intersect(&ray, false)
		if !ok {
			continue
		}
		// The offset origin must leave the surface on the normal's side
		spawn := si.SpawnRay(si.N)
		if sphere.IntersectP(&core.Ray{Origin: spawn.Origin, Direction: si.N, TMax: 1e-3}, false) {
			t.Errorf("spawned ray re-hit the sphere at %v", si.P)
		}
	}
}

func TestSphere_ReverseOrientation(t *testing.T) {
	sphere := NewSphere(transform.Identity(), true, 1)
	ray := core.NewRay(core.NewVec3(0, 0, 3), core.NewVec3(0, 0, -1))
	_, si, ok := sphere.Intersect(&ray, false)
	if !ok {
		t.Fatal("Expected hit")
	}
	if si.N.Z > -0.99 {
		t.Errorf("reversed normal = %v, want -z", si.N)
	}
}

func TestSphere_AreaAndSample(t *testing.T) {
	sphere := NewSphere(transform.Translate(core.NewVec3(1, 2, 3)), false, 2)
	if !approxEqual(sphere.Area(), 4*math.Pi*4, 1e-9) {
		t.Errorf("area = %v, want %v", sphere.Area(), 16*math.Pi)
	}

	it, pdf := sphere.Sample(core.NewVec2(0.3, 0.8))
	if !approxEqual(it.P.Distance(core.NewVec3(1, 2, 3)), 2, 1e-9) {
		t.Errorf("sample %v not on sphere", it.P)
	}
	if !approxEqual(pdf, 1/sphere.Area(), 1e-12) {
		t.Errorf("pdf = %v", pdf)
	}
}

func TestSphere_SampleRefMatchesPdf(t *testing.T) {
	sphere := NewSphere(transform.Identity(), false, 1)
	ref := &interaction.Interaction{P: core.NewVec3(0, 0, 4), N: core.NewVec3(0, 0, -1)}

	it, pdf := sphere.SampleRef(ref, core.NewVec2(0.4, 0.6))
	if !approxEqual(it.P.Length(), 1, 1e-9) {
		t.Errorf("cone sample %v not on sphere", it.P)
	}
	wi := it.P.Subtract(ref.P).Normalize()
	if got := sphere.Pdf(ref, wi); !approxEqual(got, pdf, 1e-9) {
		t.Errorf("Pdf = %v, SampleRef pdf = %v", got, pdf)
	}
	cosThetaMax := math.Sqrt(1 - 1.0/16)
	if !approxEqual(pdf, 1/(2*math.Pi*(1-cosThetaMax)), 1e-9) {
		t.Errorf("cone pdf = %v", pdf)
	}
}

func TestCylinder_Hit(t *testing.T) {
	cyl := NewCylinder(transform.Identity(), false, 1, -1, 1, 360)

	tests := []struct {
		name      string
		origin    core.Vec3
		direction core.Vec3
		wantHit   bool
		wantT     float64
		wantN     core.Vec3
	}{
		{"side", core.NewVec3(3, 0, 0), core.NewVec3(-1, 0, 0), true, 2, core.NewVec3(1, 0, 0)},
		{"above", core.NewVec3(3, 0, 2), core.NewVec3(-1, 0, 0), false, 0, core.Vec3{}},
		{"along axis", core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1), false, 0, core.Vec3{}},
		{"inside", core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), true, 1, core.NewVec3(0, 1, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.origin, tt.direction)
			tHit, si, ok := cyl.Intersect(&ray, false)
			if ok != tt.wantHit {
				t.Fatalf("hit = %v, want %v", ok, tt.wantHit)
			}
			if !ok {
				return
			}
			if !approxEqual(tHit, tt.wantT, 1e-6) {
				t.Errorf("t = %v, want %v", tHit, tt.wantT)
			}
			if !vecApproxEqual(si.N, tt.wantN, 1e-6) {
				t.Errorf("n = %v, want %v", si.N, tt.wantN)
			}
		})
	}
}

func TestCylinder_Area(t *testing.T) {
	cyl := NewCylinder(transform.Identity(), false, 0.5, 0, 2, 180)
	if !approxEqual(cyl.Area(), 2*0.5*math.Pi, 1e-12) {
		t.Errorf("area = %v", cyl.Area())
	}
	it, _ := cyl.Sample(core.NewVec2(0.5, 0.5))
	if r := math.Hypot(it.P.X, it.P.Y); !approxEqual(r, 0.5, 1e-9) {
		t.Errorf("sample radius = %v", r)
	}
}

func TestDisc_Hit(t *testing.T) {
	disc := NewDisc(transform.Identity(), false, 0, 2, 0.5, 360)

	ray := core.NewRay(core.NewVec3(1, 0, 2), core.NewVec3(0, 0, -1))
	tHit, si, ok := disc.Intersect(&ray, false)
	if !ok {
		t.Fatal("Expected hit")
	}
	if !approxEqual(tHit, 2, 1e-12) || si.P.Z != 0 {
		t.Errorf("t = %v, p = %v", tHit, si.P)
	}

	hole := core.NewRay(core.NewVec3(0.1, 0, 2), core.NewVec3(0, 0, -1))
	if disc.IntersectP(&hole, false) {
		t.Error("ray through the inner hole should miss")
	}
	if !approxEqual(disc.Area(), math.Pi*(4-0.25), 1e-12) {
		t.Errorf("area = %v", disc.Area())
	}
}

// unitQuad is the 2x2 square in the z=0 plane facing +z
func unitQuad() []Shape {
	return NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0))
}

func TestTriangle_Hit(t *testing.T) {
	tri := unitQuad()[0] // (0,0) (2,0) (2,2)

	ray := core.NewRay(core.NewVec3(1.5, 0.5, 3), core.NewVec3(0, 0, -1))
	tHit, si, ok := tri.Intersect(&ray, false)
	if !ok {
		t.Fatal("Expected hit")
	}
	if !approxEqual(tHit, 3, 1e-12) {
		t.Errorf("t = %v, want 3", tHit)
	}
	if !vecApproxEqual(si.P, core.NewVec3(1.5, 0.5, 0), 1e-12) {
		t.Errorf("p = %v", si.P)
	}
	if !approxEqual(si.UV.X, 0.75, 1e-12) || !approxEqual(si.UV.Y, 0.25, 1e-12) {
		t.Errorf("uv = %v, want (0.75, 0.25)", si.UV)
	}
	if !vecApproxEqual(si.N, core.NewVec3(0, 0, 1), 1e-12) {
		t.Errorf("n = %v, want +z", si.N)
	}
	if !tri.IntersectP(&ray, false) {
		t.Error("IntersectP disagrees with Intersect")
	}

	tests := []struct {
		name   string
		origin core.Vec3
		dir    core.Vec3
		tMax   float64
	}{
		{"other half", core.NewVec3(0.5, 1.5, 3), core.NewVec3(0, 0, -1), math.Inf(1)},
		{"outside", core.NewVec3(3, 0.5, 3), core.NewVec3(0, 0, -1), math.Inf(1)},
		{"parallel", core.NewVec3(1.5, 0.5, 1), core.NewVec3(1, 0, 0), math.Inf(1)},
		{"behind origin", core.NewVec3(1.5, 0.5, -1), core.NewVec3(0, 0, -1), math.Inf(1)},
		{"beyond tMax", core.NewVec3(1.5, 0.5, 3), core.NewVec3(0, 0, -1), 2.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := core.NewRay(tt.origin, tt.dir)
			r.TMax = tt.tMax
			if _, _, ok := tri.Intersect(&r, false); ok {
				t.Error("Expected miss")
			}
			if tri.IntersectP(&r, false) {
				t.Error("IntersectP expected miss")
			}
		})
	}
}

func TestTriangle_SharedEdgeIsWatertight(t *testing.T) {
	quad := unitQuad()
	for i := 1; i < 100; i++ {
		d := 0.02 * float64(i)
		// Tilted rays that land exactly on the shared diagonal at (d, d, 0)
		ray := core.NewRay(core.NewVec3(d-0.03, d+0.06, 3), core.NewVec3(0.01, -0.02, -1))
		hits := 0
		for _, tri := range quad {
			if tri.IntersectP(&ray, false) {
				hits++
			}
		}
		if hits == 0 {
			t.Errorf("ray at d=%v slipped between the two triangles", d)
		}
	}
}

func TestTriangle_Orientation(t *testing.T) {
	points := []core.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}}
	tests := []struct {
		name    string
		reverse bool
		wantN   core.Vec3
	}{
		{"winding", false, core.NewVec3(0, 0, 1)},
		{"reversed", true, core.NewVec3(0, 0, -1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tri := NewTriangleMesh(transform.Translate(core.NewVec3(0, 0, 5)), tt.reverse, []int{0, 1, 2}, points)[0]
			ray := core.NewRay(core.NewVec3(0.25, 0.25, 10), core.NewVec3(0, 0, -1))
			tHit, si, ok := tri.Intersect(&ray, false)
			if !ok {
				t.Fatal("Expected hit")
			}
			if !approxEqual(tHit, 5, 1e-12) {
				t.Errorf("t = %v, want 5", tHit)
			}
			if !vecApproxEqual(si.N, tt.wantN, 1e-12) {
				t.Errorf("n = %v, want %v", si.N, tt.wantN)
			}
			it, _ := tri.Sample(core.NewVec2(0.3, 0.6))
			if !vecApproxEqual(it.N, tt.wantN, 1e-12) {
				t.Errorf("sampled n = %v, want %v", it.N, tt.wantN)
			}
		})
	}
}

func TestTriangle_AreaAndSample(t *testing.T) {
	tri := unitQuad()[1] // (0,0) (2,2) (0,2)
	if !approxEqual(tri.Area(), 2, 1e-12) {
		t.Errorf("area = %v, want 2", tri.Area())
	}
	for _, u := range []core.Vec2{core.NewVec2(0, 0), core.NewVec2(0.5, 0.5), core.NewVec2(0.99, 0.01), core.NewVec2(0.2, 0.9)} {
		it, pdf := tri.Sample(u)
		if it.P.Z != 0 || it.P.X < -1e-12 || it.P.Y > 2+1e-12 || it.P.X > it.P.Y+1e-12 {
			t.Errorf("sample %v outside triangle", it.P)
		}
		if !approxEqual(pdf, 0.5, 1e-12) {
			t.Errorf("pdf = %v, want 0.5", pdf)
		}
	}

	ref := &interaction.Interaction{P: core.NewVec3(0.5, 1.5, 2), N: core.NewVec3(0, 0, -1)}
	it, pdf := tri.SampleRef(ref, core.NewVec2(0.4, 0.3))
	wi := it.P.Subtract(ref.P).Normalize()
	if got := tri.Pdf(ref, wi); !approxEqual(got, pdf, 1e-9*pdf) {
		t.Errorf("Pdf = %v, SampleRef pdf = %v", got, pdf)
	}
}
