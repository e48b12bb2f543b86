package integrator

import (
	"fmt"

	"github.com/df07/go-pbrt-renderer/pkg/core"
	"github.com/df07/go-pbrt-renderer/pkg/log"
	"github.com/df07/go-pbrt-renderer/pkg/sampler"
	"github.com/df07/go-pbrt-renderer/pkg/scene"
)

var logger = log.New("integrator")

// Integrator estimates the radiance arriving along camera rays. The render
// loop calls Preprocess once with the prototype sampler, before any clones
// are made, then calls Li concurrently with one sampler per worker.
type Integrator interface {
	// Preprocess lets the integrator inspect the scene and request sample
	// arrays from the sampler
	Preprocess(s *scene.Scene, smp sampler.Sampler)

	// Li returns the incident radiance along ray. depth counts the
	// specular bounces taken to reach ray.
	Li(ray *core.RayDifferential, s *scene.Scene, smp sampler.Sampler, depth int) core.Spectrum
}

// Names lists the integrators New accepts
var Names = []string{"normal", "whitted", "directlighting", "path"}

// New creates an integrator by name with the given maximum depth
func New(name string, maxDepth int) (Integrator, error) {
	if maxDepth < 1 {
		return nil, fmt.Errorf("max depth must be at least 1, got %d", maxDepth)
	}
	switch name {
	case "normal":
		return NewNormalIntegrator(), nil
	case "whitted":
		return NewWhittedIntegrator(WhittedConfig{MaxDepth: maxDepth}), nil
	case "directlighting":
		config := DefaultDirectLightingConfig()
		config.MaxDepth = maxDepth
		return NewDirectLightingIntegrator(config), nil
	case "path":
		config := DefaultPathConfig()
		config.MaxDepth = maxDepth
		return NewPathIntegrator(config), nil
	}
	return nil, fmt.Errorf("unknown integrator %q", name)
}

// escaped sums the environment radiance of every infinite light for a ray
// that left the scene
func escaped(ray *core.RayDifferential, s *scene.Scene) core.Spectrum {
	L := core.Black
	for _, light := range s.InfiniteLights {
		L = L.Add(light.Le(ray))
	}
	return L
}
