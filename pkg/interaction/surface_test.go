package interaction

import (
	"math"
	"testing"

	"github.com/df07/go-pbrt-renderer/pkg/bxdf"
	"github.com/df07/go-pbrt-renderer/pkg/core"
)

// planeHit is a hit on the z=0 plane with uv equal to xy
func planeHit(flip bool) *SurfaceInteraction {
	return NewSurfaceInteraction(
		core.NewVec3(0, 0, 0), core.Vec3{}, core.NewVec2(0, 0), core.NewVec3(0, 0, 1),
		core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), core.Vec3{}, core.Vec3{}, 0, flip)
}

func TestNewSurfaceInteractionNormal(t *testing.T) {
	si := planeHit(false)
	if si.N != core.NewVec3(0, 0, 1) {
		t.Errorf("n = %v, want +z", si.N)
	}
	if si.Shading.N != si.N {
		t.Errorf("shading n = %v, want %v", si.Shading.N, si.N)
	}

	flipped := planeHit(true)
	if flipped.N != core.NewVec3(0, 0, -1) {
		t.Errorf("flipped n = %v, want -z", flipped.N)
	}
}

func TestSetShadingGeometry(t *testing.T) {
	si := planeHit(false)
	// Shading frame that points the other way
	si.SetShadingGeometry(core.NewVec3(0, 1, 0), core.NewVec3(1, 0, 0), core.Vec3{}, core.Vec3{}, false)
	if si.Shading.N != core.NewVec3(0, 0, 1) {
		t.Errorf("shading n = %v, want flipped toward geometric +z", si.Shading.N)
	}

	si = planeHit(false)
	si.SetShadingGeometry(core.NewVec3(0, 1, 0), core.NewVec3(1, 0, 0), core.Vec3{}, core.Vec3{}, true)
	if si.N != core.NewVec3(0, 0, -1) {
		t.Errorf("geometric n = %v, want flipped toward shading -z", si.N)
	}
}

func TestComputeDifferentials(t *testing.T) {
	si := planeHit(false)
	ray := core.RayDifferential{
		Ray:              core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1)),
		HasDifferentials: true,
		RxOrigin:         core.NewVec3(0.5, 0, 1),
		RxDirection:      core.NewVec3(0, 0, -1),
		RyOrigin:         core.NewVec3(0, 0.25, 1),
		RyDirection:      core.NewVec3(0, 0, -1),
	}
	si.ComputeDifferentials(&ray)

	if math.Abs(si.Dudx-0.5) > 1e-12 || math.Abs(si.Dvdx) > 1e-12 {
		t.Errorf("du/dx, dv/dx = %v, %v, want 0.5, 0", si.Dudx, si.Dvdx)
	}
	if math.Abs(si.Dudy) > 1e-12 || math.Abs(si.Dvdy-0.25) > 1e-12 {
		t.Errorf("du/dy, dv/dy = %v, %v, want 0, 0.25", si.Dudy, si.Dvdy)
	}
	if si.Dpdx != core.NewVec3(0.5, 0, 0) {
		t.Errorf("dp/dx = %v", si.Dpdx)
	}
}

func TestComputeDifferentialsWithoutOffsets(t *testing.T) {
	si := planeHit(false)
	si.Dudx = 3
	ray := core.NewRayDifferential(core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1)))
	si.ComputeDifferentials(&ray)
	if si.Dudx != 0 || si.Dpdx != (core.Vec3{}) {
		t.Errorf("differentials not cleared: du/dx=%v dp/dx=%v", si.Dudx, si.Dpdx)
	}
}

type emitter struct{ l core.Spectrum }

func (e emitter) L(it *Interaction, w core.Vec3) core.Spectrum {
	if it.N.Dot(w) > 0 {
		return e.l
	}
	return core.Black
}

type stubPrimitive struct {
	light AreaLight
	calls int
}

func (p *stubPrimitive) AreaLight() AreaLight { return p.light }

func (p *stubPrimitive) ComputeScatteringFunctions(si *SurfaceInteraction, mode bxdf.TransportMode, allowMultipleLobes bool) {
	p.calls++
	si.BSDF = bxdf.NewBSDF(si.Shading.N, si.N, si.Shading.Dpdu, 1)
}

func TestLe(t *testing.T) {
	si := planeHit(false)
	if le := si.Le(core.NewVec3(0, 0, 1)); !le.IsBlack() {
		t.Errorf("Le without primitive = %v, want black", le)
	}

	si.Primitive = &stubPrimitive{}
	if le := si.Le(core.NewVec3(0, 0, 1)); !le.IsBlack() {
		t.Errorf("Le without area light = %v, want black", le)
	}

	si.Primitive = &stubPrimitive{light: emitter{core.NewSpectrum(2)}}
	if le := si.Le(core.NewVec3(0, 0, 1)); le != core.NewSpectrum(2) {
		t.Errorf("Le front = %v, want 2", le)
	}
	if le := si.Le(core.NewVec3(0, 0, -1)); !le.IsBlack() {
		t.Errorf("Le back = %v, want black", le)
	}
}

func TestComputeScatteringFunctions(t *testing.T) {
	si := planeHit(false)
	prim := &stubPrimitive{}
	si.Primitive = prim
	ray := core.NewRayDifferential(core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1)))
	si.ComputeScatteringFunctions(&ray, bxdf.Radiance, false)
	if prim.calls != 1 || si.BSDF == nil {
		t.Errorf("material not applied: calls=%d bsdf=%v", prim.calls, si.BSDF)
	}
}

func TestSpawnRayTo(t *testing.T) {
	it := Interaction{P: core.NewVec3(0, 0, 0), N: core.NewVec3(0, 0, 1)}
	target := core.NewVec3(0, 0, 5)
	r := it.SpawnRayTo(target)
	end := r.At(1)
	if end.Subtract(target).Length() > 1e-9 {
		t.Errorf("ray end = %v, want %v", end, target)
	}
	if r.TMax >= 1 {
		t.Errorf("TMax = %v, want < 1", r.TMax)
	}
}
