package lights

import (
	"github.com/df07/go-pbrt-renderer/pkg/core"
	"github.com/df07/go-pbrt-renderer/pkg/interaction"
	"github.com/df07/go-pbrt-renderer/pkg/material"
	"github.com/df07/go-pbrt-renderer/pkg/sampler"
)

// Intersector is the part of a scene a visibility query needs
type Intersector interface {
	Intersect(ray *core.Ray) (*interaction.SurfaceInteraction, bool)
	IntersectP(ray *core.Ray) bool
}

// materialed is implemented by primitives that carry a material
type materialed interface {
	Material() material.Material
}

// VisibilityTester connects a reference point with a sampled light point
type VisibilityTester struct {
	P0, P1 interaction.Interaction
}

// Unoccluded reports whether nothing blocks the segment between the two points
func (v VisibilityTester) Unoccluded(scene Intersector) bool {
	ray := v.P0.SpawnRayToInteraction(&v.P1)
	return !scene.IntersectP(&ray)
}

// Tr walks the segment surface by surface and returns its transmittance.
// Any surface with a material blocks the segment; surfaces without one
// only mark a boundary and the walk continues past them. Participating
// media are not modeled, so each passthrough leg transmits fully.
func (v VisibilityTester) Tr(scene Intersector, s sampler.Sampler) core.Spectrum {
	ray := v.P0.SpawnRayToInteraction(&v.P1)
	tr := core.NewSpectrum(1)
	for {
		si, hit := scene.Intersect(&ray)
		if !hit {
			return tr
		}
		if m, ok := si.Primitive.(materialed); ok && m.Material() != nil {
			return core.Black
		}
		ray = si.SpawnRayToInteraction(&v.P1)
	}
}
