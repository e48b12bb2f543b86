package integrator

import (
	"fmt"
	"math"

	"github.com/df07/go-pbrt-renderer/pkg/bxdf"
	"github.com/df07/go-pbrt-renderer/pkg/core"
	"github.com/df07/go-pbrt-renderer/pkg/sampler"
	"github.com/df07/go-pbrt-renderer/pkg/scene"
)

// PathConfig configures the path tracer
type PathConfig struct {
	MaxDepth int
	// RRThreshold is the throughput below which Russian roulette may end a
	// path once RRMinBounces bounces have been taken
	RRThreshold  float64
	RRMinBounces int
}

// DefaultPathConfig returns depth 5 with roulette after three bounces
func DefaultPathConfig() PathConfig {
	return PathConfig{MaxDepth: 5, RRThreshold: 1, RRMinBounces: 3}
}

func (c PathConfig) Validate() error {
	if c.MaxDepth < 1 {
		return fmt.Errorf("max depth must be at least 1, got %d", c.MaxDepth)
	}
	if c.RRThreshold < 0 {
		return fmt.Errorf("russian roulette threshold must be non-negative, got %v", c.RRThreshold)
	}
	return nil
}

// PathIntegrator traces unidirectional paths, sampling one light at each
// non-specular vertex and continuing by sampling the BSDF
type PathIntegrator struct {
	config PathConfig
}

func NewPathIntegrator(config PathConfig) *PathIntegrator {
	return &PathIntegrator{config: config}
}

func (p *PathIntegrator) Preprocess(s *scene.Scene, smp sampler.Sampler) {}

func (p *PathIntegrator) Li(r *core.RayDifferential, s *scene.Scene, smp sampler.Sampler, depth int) core.Spectrum {
	L := core.Black
	beta := core.NewSpectrum(1)
	ray := *r
	specularBounce := false
	// etaScale undoes the radiance scaling of refraction for roulette
	etaScale := 1.0

	for bounces := 0; ; bounces++ {
		isect, found := s.Intersect(&ray.Ray)

		// Emission at this vertex was already counted by light sampling at
		// the previous one, except after the camera ray or a specular bounce
		if bounces == 0 || specularBounce {
			if found {
				L = L.Add(beta.Mul(isect.Le(ray.Direction.Negate())))
			} else {
				L = L.Add(beta.Mul(escaped(&ray, s)))
			}
		}
		if !found || bounces >= p.config.MaxDepth {
			break
		}

		isect.ComputeScatteringFunctions(&ray, bxdf.Radiance, true)
		if isect.BSDF == nil {
			ray = core.NewRayDifferential(isect.SpawnRay(ray.Direction))
			bounces--
			continue
		}

		if isect.BSDF.NumComponents(bxdf.All&^bxdf.Specular) > 0 {
			L = L.Add(beta.Mul(UniformSampleOneLight(isect, s, smp, false)))
		}

		wo := ray.Direction.Negate()
		bs, ok := isect.BSDF.SampleF(wo, smp.Get2D(), bxdf.All)
		if !ok || bs.F.IsBlack() || bs.Pdf == 0 {
			break
		}
		beta = beta.Mul(bs.F).Scale(bs.Wi.AbsDot(isect.Shading.N) / bs.Pdf)
		specularBounce = bs.SampledType&bxdf.Specular != 0
		if specularBounce && bs.SampledType&bxdf.Transmission != 0 {
			eta := isect.BSDF.Eta
			if wo.Dot(isect.N) > 0 {
				etaScale *= eta * eta
			} else {
				etaScale *= 1 / (eta * eta)
			}
		}
		ray = core.NewRayDifferential(isect.SpawnRay(bs.Wi))

		rrBeta := beta.Scale(etaScale)
		if rrBeta.MaxComponent() < p.config.RRThreshold && bounces > p.config.RRMinBounces {
			q := math.Max(0.05, 1-rrBeta.MaxComponent())
			if smp.Get1D() < q {
				break
			}
			beta = beta.Scale(1 / (1 - q))
		}
	}
	return L
}
