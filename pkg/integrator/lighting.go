package integrator

import (
	"github.com/df07/go-pbrt-renderer/pkg/bxdf"
	"github.com/df07/go-pbrt-renderer/pkg/core"
	"github.com/df07/go-pbrt-renderer/pkg/interaction"
	"github.com/df07/go-pbrt-renderer/pkg/lights"
	"github.com/df07/go-pbrt-renderer/pkg/material"
	"github.com/df07/go-pbrt-renderer/pkg/sampler"
	"github.com/df07/go-pbrt-renderer/pkg/scene"
)

// UniformSampleAllLights estimates direct lighting at it by taking
// nLightSamples[i] samples from every light i. It uses the sample arrays
// requested in Preprocess and falls back to single samples once they run out.
func UniformSampleAllLights(it *interaction.SurfaceInteraction, s *scene.Scene, smp sampler.Sampler, nLightSamples []int, handleMedia bool) core.Spectrum {
	L := core.Black
	for j, light := range s.Lights {
		n := 1
		if j < len(nLightSamples) {
			n = nLightSamples[j]
		}
		uLightArray := smp.Get2DArray(n)
		uScatteringArray := smp.Get2DArray(n)
		if uLightArray == nil || uScatteringArray == nil {
			uLight := smp.Get2D()
			uScattering := smp.Get2D()
			L = L.Add(EstimateDirect(it, uScattering, light, uLight, s, smp, handleMedia, false))
			continue
		}

		Ld := core.Black
		for k := 0; k < n; k++ {
			Ld = Ld.Add(EstimateDirect(it, uScatteringArray[k], light, uLightArray[k], s, smp, handleMedia, false))
		}
		L = L.Add(Ld.Scale(1 / float64(n)))
	}
	return L
}

// UniformSampleOneLight estimates direct lighting from a single light chosen
// uniformly at random, scaled by the number of lights
func UniformSampleOneLight(it *interaction.SurfaceInteraction, s *scene.Scene, smp sampler.Sampler, handleMedia bool) core.Spectrum {
	nLights := len(s.Lights)
	if nLights == 0 {
		return core.Black
	}
	lightNum := min(int(smp.Get1D()*float64(nLights)), nLights-1)
	light := s.Lights[lightNum]

	uLight := smp.Get2D()
	uScattering := smp.Get2D()
	return EstimateDirect(it, uScattering, light, uLight, s, smp, handleMedia, false).Scale(float64(nLights))
}

// EstimateDirect computes the direct lighting from one light with multiple
// importance sampling. A light sample and a BSDF sample are each weighted
// with the power heuristic. Delta lights are only reachable by light
// sampling and take no weight. A specular BSDF sample takes weight one.
func EstimateDirect(it *interaction.SurfaceInteraction, uScattering core.Vec2, light lights.Light, uLight core.Vec2,
	s *scene.Scene, smp sampler.Sampler, handleMedia, specular bool) core.Spectrum {
	bsdfFlags := bxdf.All
	if !specular {
		bsdfFlags = bxdf.All &^ bxdf.Specular
	}
	Ld := core.Black
	isDelta := light.Type().IsDelta()

	ls, vis, ok := light.SampleLi(&it.Interaction, uLight)
	if ok && ls.Pdf > 0 && !ls.Li.IsBlack() {
		f := it.BSDF.F(it.Wo, ls.Wi, bsdfFlags).Scale(ls.Wi.AbsDot(it.Shading.N))
		scatteringPdf := it.BSDF.Pdf(it.Wo, ls.Wi, bsdfFlags)

		if !f.IsBlack() {
			Li := ls.Li
			if handleMedia {
				Li = Li.Mul(vis.Tr(s, smp))
			} else if !vis.Unoccluded(s) {
				Li = core.Black
			}

			if !Li.IsBlack() {
				if isDelta {
					Ld = Ld.Add(f.Mul(Li).Scale(1 / ls.Pdf))
				} else {
					weight := core.PowerHeuristic(1, ls.Pdf, 1, scatteringPdf)
					Ld = Ld.Add(f.Mul(Li).Scale(weight / ls.Pdf))
				}
			}
		}
	}

	if isDelta {
		return Ld
	}

	bs, ok := it.BSDF.SampleF(it.Wo, uScattering, bsdfFlags)
	if !ok || bs.Pdf == 0 {
		return Ld
	}
	f := bs.F.Scale(bs.Wi.AbsDot(it.Shading.N))
	if f.IsBlack() {
		return Ld
	}

	weight := 1.0
	if bs.SampledType&bxdf.Specular == 0 {
		lightPdf := light.PdfLi(&it.Interaction, bs.Wi)
		if lightPdf == 0 {
			return Ld
		}
		weight = core.PowerHeuristic(1, bs.Pdf, 1, lightPdf)
	}

	// The BSDF sample only counts if it reaches this same light
	ray := it.SpawnRay(bs.Wi)
	Li := core.Black
	var hit *interaction.SurfaceInteraction
	var found bool
	if handleMedia {
		hit, found = intersectTr(s, ray)
	} else {
		hit, found = s.Intersect(&ray)
	}
	if found {
		if area, isArea := light.(interaction.AreaLight); isArea && hit.Primitive != nil && hit.Primitive.AreaLight() == area {
			Li = hit.Le(bs.Wi.Negate())
		}
	} else {
		rd := core.NewRayDifferential(ray)
		Li = light.Le(&rd)
	}
	if !Li.IsBlack() {
		Ld = Ld.Add(f.Mul(Li).Scale(weight / bs.Pdf))
	}
	return Ld
}

// intersectTr finds the first surface along ray that has a material,
// passing through boundaries that have none. Media are not modeled, so the
// transmittance of every passthrough leg is one.
func intersectTr(s *scene.Scene, ray core.Ray) (*interaction.SurfaceInteraction, bool) {
	for {
		hit, found := s.Intersect(&ray)
		if !found {
			return nil, false
		}
		if m, ok := hit.Primitive.(interface{ Material() material.Material }); !ok || m.Material() != nil {
			return hit, true
		}
		ray = hit.SpawnRay(ray.Direction)
	}
}

// SpecularReflect follows the perfect mirror lobe of the BSDF at it and
// returns the radiance it carries back. Ray differentials are propagated
// through the reflection when the incoming ray has them.
func SpecularReflect(in Integrator, ray *core.RayDifferential, it *interaction.SurfaceInteraction,
	s *scene.Scene, smp sampler.Sampler, depth int) core.Spectrum {
	wo := it.Wo
	bs, ok := it.BSDF.SampleF(wo, smp.Get2D(), bxdf.Reflection|bxdf.Specular)
	ns := it.Shading.N
	if !ok || bs.Pdf == 0 || bs.F.IsBlack() || bs.Wi.AbsDot(ns) == 0 {
		return core.Black
	}
	wi := bs.Wi

	rd := core.NewRayDifferential(it.SpawnRay(wi))
	if ray.HasDifferentials {
		rd.HasDifferentials = true
		rd.RxOrigin = it.P.Add(it.Dpdx)
		rd.RyOrigin = it.P.Add(it.Dpdy)

		dndx := it.Shading.Dndu.Multiply(it.Dudx).Add(it.Shading.Dndv.Multiply(it.Dvdx))
		dndy := it.Shading.Dndu.Multiply(it.Dudy).Add(it.Shading.Dndv.Multiply(it.Dvdy))
		dwodx := ray.RxDirection.Negate().Subtract(wo)
		dwody := ray.RyDirection.Negate().Subtract(wo)
		dDNdx := dwodx.Dot(ns) + wo.Dot(dndx)
		dDNdy := dwody.Dot(ns) + wo.Dot(dndy)

		rd.RxDirection = wi.Subtract(dwodx).Add(dndx.Multiply(wo.Dot(ns)).Add(ns.Multiply(dDNdx)).Multiply(2))
		rd.RyDirection = wi.Subtract(dwody).Add(dndy.Multiply(wo.Dot(ns)).Add(ns.Multiply(dDNdy)).Multiply(2))
	}
	return bs.F.Mul(in.Li(&rd, s, smp, depth+1)).Scale(wi.AbsDot(ns) / bs.Pdf)
}

// SpecularTransmit follows the perfect refraction lobe of the BSDF at it
func SpecularTransmit(in Integrator, ray *core.RayDifferential, it *interaction.SurfaceInteraction,
	s *scene.Scene, smp sampler.Sampler, depth int) core.Spectrum {
	wo := it.Wo
	bs, ok := it.BSDF.SampleF(wo, smp.Get2D(), bxdf.Transmission|bxdf.Specular)
	ns := it.Shading.N
	if !ok || bs.Pdf == 0 || bs.F.IsBlack() || bs.Wi.AbsDot(ns) == 0 {
		return core.Black
	}
	wi := bs.Wi

	rd := core.NewRayDifferential(it.SpawnRay(wi))
	if ray.HasDifferentials {
		rd.HasDifferentials = true
		rd.RxOrigin = it.P.Add(it.Dpdx)
		rd.RyOrigin = it.P.Add(it.Dpdy)

		dndx := it.Shading.Dndu.Multiply(it.Dudx).Add(it.Shading.Dndv.Multiply(it.Dvdx))
		dndy := it.Shading.Dndu.Multiply(it.Dudy).Add(it.Shading.Dndv.Multiply(it.Dvdy))

		// eta is the ratio of indices on the incident side over the
		// transmitted side, flipped when wo is inside the surface
		eta := 1 / it.BSDF.Eta
		if wo.Dot(ns) < 0 {
			eta = 1 / eta
			ns = ns.Negate()
			dndx = dndx.Negate()
			dndy = dndy.Negate()
		}

		dwodx := ray.RxDirection.Negate().Subtract(wo)
		dwody := ray.RyDirection.Negate().Subtract(wo)
		dDNdx := dwodx.Dot(ns) + wo.Dot(dndx)
		dDNdy := dwody.Dot(ns) + wo.Dot(dndy)

		mu := eta*wo.Dot(ns) - wi.AbsDot(ns)
		dmudx := (eta - eta*eta*wo.Dot(ns)/wi.AbsDot(ns)) * dDNdx
		dmudy := (eta - eta*eta*wo.Dot(ns)/wi.AbsDot(ns)) * dDNdy

		rd.RxDirection = wi.Subtract(dwodx.Multiply(eta)).Add(dndx.Multiply(mu).Add(ns.Multiply(dmudx)))
		rd.RyDirection = wi.Subtract(dwody.Multiply(eta)).Add(dndy.Multiply(mu).Add(ns.Multiply(dmudy)))
	}
	return bs.F.Mul(in.Li(&rd, s, smp, depth+1)).Scale(wi.AbsDot(ns) / bs.Pdf)
}
