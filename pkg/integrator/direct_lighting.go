package integrator

import (
	"fmt"

	"github.com/df07/go-pbrt-renderer/pkg/bxdf"
	"github.com/df07/go-pbrt-renderer/pkg/core"
	"github.com/df07/go-pbrt-renderer/pkg/sampler"
	"github.com/df07/go-pbrt-renderer/pkg/scene"
)

// LightStrategy selects how direct lighting visits the scene's lights
type LightStrategy int

const (
	// SampleAllLights takes every light's NSamples at each hit
	SampleAllLights LightStrategy = iota
	// SampleOneLight picks one light uniformly at each hit
	SampleOneLight
)

func (l LightStrategy) String() string {
	switch l {
	case SampleAllLights:
		return "all"
	case SampleOneLight:
		return "one"
	}
	return fmt.Sprintf("LightStrategy(%d)", int(l))
}

// DirectLightingConfig configures the direct lighting integrator
type DirectLightingConfig struct {
	Strategy LightStrategy
	MaxDepth int
}

// DefaultDirectLightingConfig samples every light and allows five specular bounces
func DefaultDirectLightingConfig() DirectLightingConfig {
	return DirectLightingConfig{Strategy: SampleAllLights, MaxDepth: 5}
}

func (c DirectLightingConfig) Validate() error {
	if c.MaxDepth < 1 {
		return fmt.Errorf("max depth must be at least 1, got %d", c.MaxDepth)
	}
	if c.Strategy != SampleAllLights && c.Strategy != SampleOneLight {
		return fmt.Errorf("unknown light strategy %v", c.Strategy)
	}
	return nil
}

// DirectLightingIntegrator adds emission and multiple importance sampled
// direct lighting at each hit, and follows specular bounces like Whitted
type DirectLightingIntegrator struct {
	config        DirectLightingConfig
	nLightSamples []int
}

func NewDirectLightingIntegrator(config DirectLightingConfig) *DirectLightingIntegrator {
	return &DirectLightingIntegrator{config: config}
}

// Preprocess rounds each light's sample count for the sampler and requests
// a light and a scattering array per light for every depth
func (d *DirectLightingIntegrator) Preprocess(s *scene.Scene, smp sampler.Sampler) {
	if d.config.Strategy != SampleAllLights {
		return
	}
	d.nLightSamples = make([]int, len(s.Lights))
	for i, light := range s.Lights {
		d.nLightSamples[i] = smp.RoundCount(light.NSamples())
	}
	for i := 0; i < d.config.MaxDepth; i++ {
		for _, n := range d.nLightSamples {
			smp.Request2DArray(n)
			smp.Request2DArray(n)
		}
	}
	logger.Debugf("direct lighting requested arrays for %d lights over %d depths: %v", len(s.Lights), d.config.MaxDepth, d.nLightSamples)
}

func (d *DirectLightingIntegrator) Li(ray *core.RayDifferential, s *scene.Scene, smp sampler.Sampler, depth int) core.Spectrum {
	isect, found := s.Intersect(&ray.Ray)
	if !found {
		return escaped(ray, s)
	}

	isect.ComputeScatteringFunctions(ray, bxdf.Radiance, false)
	if isect.BSDF == nil {
		next := core.NewRayDifferential(isect.SpawnRay(ray.Direction))
		return d.Li(&next, s, smp, depth)
	}

	L := isect.Le(isect.Wo)
	if len(s.Lights) > 0 {
		if d.config.Strategy == SampleAllLights {
			L = L.Add(UniformSampleAllLights(isect, s, smp, d.nLightSamples, false))
		} else {
			L = L.Add(UniformSampleOneLight(isect, s, smp, false))
		}
	}

	if depth+1 < d.config.MaxDepth {
		L = L.Add(SpecularReflect(d, ray, isect, s, smp, depth))
		L = L.Add(SpecularTransmit(d, ray, isect, s, smp, depth))
	}
	return L
}
