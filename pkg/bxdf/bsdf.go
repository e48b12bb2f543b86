package bxdf

import (
	"math"

	"github.com/df07/go-pbrt-renderer/pkg/core"
)

// MaxBxDFs bounds the number of lobes a single BSDF may hold
const MaxBxDFs = 8

// BSDF is a collection of lobes sharing one shading frame at a surface point.
// Directions passed in and returned are in world space.
type BSDF struct {
	Eta float64 // relative index of refraction across the boundary

	ns, ng core.Vec3
	ss, ts core.Vec3
	bxdfs  []BxDF
}

// NewBSDF builds the shading frame from the shading normal ns and the
// shading dp/du; ng is the geometric normal.
func NewBSDF(ns, ng, dpdus core.Vec3, eta float64) *BSDF {
	ss := dpdus.Normalize()
	return &BSDF{
		Eta: eta,
		ns:  ns,
		ng:  ng,
		ss:  ss,
		ts:  ns.Cross(ss),
	}
}

// Add appends a lobe; it panics when the BSDF is full
func (b *BSDF) Add(x BxDF) {
	if len(b.bxdfs) >= MaxBxDFs {
		panic("bxdf: too many lobes in BSDF")
	}
	b.bxdfs = append(b.bxdfs, x)
}

// NumComponents counts lobes matching flags
func (b *BSDF) NumComponents(flags Type) int {
	n := 0
	for _, x := range b.bxdfs {
		if MatchesFlags(x, flags) {
			n++
		}
	}
	return n
}

// WorldToLocal expresses v in the shading frame
func (b *BSDF) WorldToLocal(v core.Vec3) core.Vec3 {
	return core.NewVec3(v.Dot(b.ss), v.Dot(b.ts), v.Dot(b.ns))
}

// LocalToWorld maps a shading frame vector back to world space
func (b *BSDF) LocalToWorld(v core.Vec3) core.Vec3 {
	return core.NewVec3(
		b.ss.X*v.X+b.ts.X*v.Y+b.ns.X*v.Z,
		b.ss.Y*v.X+b.ts.Y*v.Y+b.ns.Y*v.Z,
		b.ss.Z*v.X+b.ts.Z*v.Y+b.ns.Z*v.Z,
	)
}

// F evaluates the BSDF for a pair of world directions. The geometric
// normal decides whether reflection or transmission lobes contribute.
func (b *BSDF) F(woW, wiW core.Vec3, flags Type) core.Spectrum {
	wo := b.WorldToLocal(woW)
	if wo.Z == 0 {
		return core.Black
	}
	wi := b.WorldToLocal(wiW)
	return b.sumF(wo, wi, woW, wiW, flags)
}

func (b *BSDF) sumF(wo, wi, woW, wiW core.Vec3, flags Type) core.Spectrum {
	reflect := wiW.Dot(b.ng)*woW.Dot(b.ng) > 0
	f := core.Black
	for _, x := range b.bxdfs {
		if !MatchesFlags(x, flags) {
			continue
		}
		t := x.Type()
		if (reflect && t&Reflection != 0) || (!reflect && t&Transmission != 0) {
			f = f.Add(x.F(wo, wi))
		}
	}
	return f
}

// SampleF picks one matching lobe with u.X, samples it with the remapped
// sample and returns the combined value and density over all matching lobes.
func (b *BSDF) SampleF(woW core.Vec3, u core.Vec2, flags Type) (Sample, bool) {
	matching := b.NumComponents(flags)
	if matching == 0 {
		return Sample{}, false
	}
	comp := min(int(math.Floor(u.X*float64(matching))), matching-1)

	var chosen BxDF
	count := comp
	for _, x := range b.bxdfs {
		if MatchesFlags(x, flags) {
			if count == 0 {
				chosen = x
				break
			}
			count--
		}
	}

	uRemapped := core.NewVec2(math.Min(u.X*float64(matching)-float64(comp), core.OneMinusEpsilon), u.Y)

	wo := b.WorldToLocal(woW)
	if wo.Z == 0 {
		return Sample{}, false
	}
	s, ok := chosen.SampleF(wo, uRemapped)
	if !ok || s.Pdf == 0 {
		return Sample{}, false
	}
	wi := s.Wi
	wiW := b.LocalToWorld(wi)
	s.Wi = wiW
	s.SampledType = chosen.Type()

	specular := chosen.Type()&Specular != 0
	if !specular && matching > 1 {
		for _, x := range b.bxdfs {
			if x != chosen && MatchesFlags(x, flags) {
				s.Pdf += x.Pdf(wo, wi)
			}
		}
	}
	if matching > 1 {
		s.Pdf /= float64(matching)
	}

	if !specular {
		s.F = b.sumF(wo, wi, woW, wiW, flags)
	}
	return s, true
}

// Pdf returns the average density of the matching lobes
func (b *BSDF) Pdf(woW, wiW core.Vec3, flags Type) float64 {
	if len(b.bxdfs) == 0 {
		return 0
	}
	wo := b.WorldToLocal(woW)
	if wo.Z == 0 {
		return 0
	}
	wi := b.WorldToLocal(wiW)
	pdf := 0.0
	matching := 0
	for _, x := range b.bxdfs {
		if MatchesFlags(x, flags) {
			matching++
			pdf += x.Pdf(wo, wi)
		}
	}
	if matching == 0 {
		return 0
	}
	return pdf / float64(matching)
}
