package integrator

import (
	"github.com/df07/go-pbrt-renderer/pkg/core"
	"github.com/df07/go-pbrt-renderer/pkg/sampler"
	"github.com/df07/go-pbrt-renderer/pkg/scene"
)

// NormalIntegrator shows the geometric normal of the first hit, mapped from
// [-1,1] to [0,1] per component. Rays that miss are white.
type NormalIntegrator struct{}

func NewNormalIntegrator() *NormalIntegrator {
	return &NormalIntegrator{}
}

func (n *NormalIntegrator) Preprocess(s *scene.Scene, smp sampler.Sampler) {}

func (n *NormalIntegrator) Li(ray *core.RayDifferential, s *scene.Scene, smp sampler.Sampler, depth int) core.Spectrum {
	isect, found := s.Intersect(&ray.Ray)
	if !found {
		return core.NewSpectrum(1)
	}
	nn := isect.N
	return core.NewRGB(0.5*(nn.X+1), 0.5*(nn.Y+1), 0.5*(nn.Z+1))
}
