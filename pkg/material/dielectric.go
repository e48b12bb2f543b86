package material

import (
	"github.com/df07/go-pbrt-renderer/pkg/bxdf"
	"github.com/df07/go-pbrt-renderer/pkg/core"
	"github.com/df07/go-pbrt-renderer/pkg/interaction"
)

// Dielectric represents a transparent material like glass that can both reflect and refract
type Dielectric struct {
	RefractiveIndex float64     // Index of refraction (e.g., 1.5 for glass)
	Reflectance     ColorSource // Tint of the reflected part
	Transmittance   ColorSource // Tint of the refracted part
}

// NewDielectric creates a new clear dielectric material
func NewDielectric(refractiveIndex float64) *Dielectric {
	white := NewSolidColor(core.NewSpectrum(1))
	return &Dielectric{RefractiveIndex: refractiveIndex, Reflectance: white, Transmittance: white}
}

// ComputeScatteringFunctions attaches either one combined Fresnel lobe or
// separate reflection and transmission lobes.
func (d *Dielectric) ComputeScatteringFunctions(si *interaction.SurfaceInteraction, mode bxdf.TransportMode, allowMultipleLobes bool) {
	si.BSDF = newBSDF(si, d.RefractiveIndex)

	r := d.Reflectance.Evaluate(si.UV, si.P).Clamp(0, 1)
	t := d.Transmittance.Evaluate(si.UV, si.P).Clamp(0, 1)
	if r.IsBlack() && t.IsBlack() {
		return
	}

	if allowMultipleLobes {
		si.BSDF.Add(bxdf.NewFresnelSpecular(r, t, 1, d.RefractiveIndex, mode))
		return
	}
	if !r.IsBlack() {
		fresnel := bxdf.FresnelDielectric{EtaI: 1, EtaT: d.RefractiveIndex}
		si.BSDF.Add(bxdf.NewSpecularReflection(r, fresnel))
	}
	if !t.IsBlack() {
		si.BSDF.Add(bxdf.NewSpecularTransmission(t, 1, d.RefractiveIndex, mode))
	}
}
