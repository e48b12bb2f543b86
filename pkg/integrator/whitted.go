package integrator

import (
	"fmt"

	"github.com/df07/go-pbrt-renderer/pkg/bxdf"
	"github.com/df07/go-pbrt-renderer/pkg/core"
	"github.com/df07/go-pbrt-renderer/pkg/sampler"
	"github.com/df07/go-pbrt-renderer/pkg/scene"
)

// WhittedConfig holds the recursion limit for specular bounces
type WhittedConfig struct {
	MaxDepth int
}

// DefaultWhittedConfig allows five specular bounces
func DefaultWhittedConfig() WhittedConfig {
	return WhittedConfig{MaxDepth: 5}
}

func (c WhittedConfig) Validate() error {
	if c.MaxDepth < 1 {
		return fmt.Errorf("max depth must be at least 1, got %d", c.MaxDepth)
	}
	return nil
}

// WhittedIntegrator gathers emission and unshadowed direct light from every
// light at each hit, and recurses only along perfect specular reflection
// and transmission. Indirect diffuse light is never sampled.
type WhittedIntegrator struct {
	config WhittedConfig
}

func NewWhittedIntegrator(config WhittedConfig) *WhittedIntegrator {
	return &WhittedIntegrator{config: config}
}

func (w *WhittedIntegrator) Preprocess(s *scene.Scene, smp sampler.Sampler) {}

func (w *WhittedIntegrator) Li(ray *core.RayDifferential, s *scene.Scene, smp sampler.Sampler, depth int) core.Spectrum {
	isect, found := s.Intersect(&ray.Ray)
	if !found {
		return escaped(ray, s)
	}

	isect.ComputeScatteringFunctions(ray, bxdf.Radiance, false)
	if isect.BSDF == nil {
		next := core.NewRayDifferential(isect.SpawnRay(ray.Direction))
		return w.Li(&next, s, smp, depth)
	}
	n := isect.Shading.N
	wo := isect.Wo

	L := isect.Le(wo)
	for _, light := range s.Lights {
		ls, vis, ok := light.SampleLi(&isect.Interaction, smp.Get2D())
		if !ok || ls.Li.IsBlack() || ls.Pdf == 0 {
			continue
		}
		f := isect.BSDF.F(wo, ls.Wi, bxdf.All)
		if !f.IsBlack() && vis.Unoccluded(s) {
			L = L.Add(f.Mul(ls.Li).Scale(ls.Wi.AbsDot(n) / ls.Pdf))
		}
	}

	if depth+1 < w.config.MaxDepth {
		L = L.Add(SpecularReflect(w, ray, isect, s, smp, depth))
		L = L.Add(SpecularTransmit(w, ray, isect, s, smp, depth))
	}
	return L
}
