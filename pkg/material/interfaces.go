package material

import (
	"github.com/df07/go-pbrt-renderer/pkg/bxdf"
	"github.com/df07/go-pbrt-renderer/pkg/interaction"
)

// Material turns a surface hit into a BSDF
type Material interface {
	// ComputeScatteringFunctions sets si.BSDF. When allowMultipleLobes is
	// false the material must not use combined lobes such as FresnelSpecular,
	// because the integrator samples reflection and transmission separately.
	ComputeScatteringFunctions(si *interaction.SurfaceInteraction, mode bxdf.TransportMode, allowMultipleLobes bool)
}

// newBSDF builds an empty BSDF in the hit's shading frame
func newBSDF(si *interaction.SurfaceInteraction, eta float64) *bxdf.BSDF {
	return bxdf.NewBSDF(si.Shading.N, si.N, si.Shading.Dpdu, eta)
}
