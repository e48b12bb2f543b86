package material

import (
	"github.com/df07/go-pbrt-renderer/pkg/bxdf"
	"github.com/df07/go-pbrt-renderer/pkg/core"
	"github.com/df07/go-pbrt-renderer/pkg/interaction"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo ColorSource // Base color/reflectance (can be solid or textured)
}

// NewLambertian creates a new lambertian material with solid color
func NewLambertian(albedo core.Spectrum) *Lambertian {
	return &Lambertian{Albedo: NewSolidColor(albedo)}
}

// NewTexturedLambertian creates a new lambertian material with texture
func NewTexturedLambertian(albedoTexture ColorSource) *Lambertian {
	return &Lambertian{Albedo: albedoTexture}
}

// ComputeScatteringFunctions attaches a single diffuse lobe. Black albedo
// leaves the BSDF empty so the surface only absorbs.
func (l *Lambertian) ComputeScatteringFunctions(si *interaction.SurfaceInteraction, mode bxdf.TransportMode, allowMultipleLobes bool) {
	si.BSDF = newBSDF(si, 1)
	r := l.Albedo.Evaluate(si.UV, si.P).Clamp(0, 1)
	if !r.IsBlack() {
		si.BSDF.Add(bxdf.NewLambertianReflection(r))
	}
}
