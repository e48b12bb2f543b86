package material

import (
	"github.com/df07/go-pbrt-renderer/pkg/bxdf"
	"github.com/df07/go-pbrt-renderer/pkg/core"
	"github.com/df07/go-pbrt-renderer/pkg/interaction"
)

// Translucent is a thin diffuse sheet that both reflects and transmits,
// like paper or a lampshade
type Translucent struct {
	Reflectance   ColorSource
	Transmittance ColorSource
}

// NewTranslucent creates a translucent material. r+t should not exceed 1.
func NewTranslucent(r, t core.Spectrum) *Translucent {
	return &Translucent{Reflectance: NewSolidColor(r), Transmittance: NewSolidColor(t)}
}

func (m *Translucent) ComputeScatteringFunctions(si *interaction.SurfaceInteraction, mode bxdf.TransportMode, allowMultipleLobes bool) {
	si.BSDF = newBSDF(si, 1)
	r := m.Reflectance.Evaluate(si.UV, si.P).Clamp(0, 1)
	t := m.Transmittance.Evaluate(si.UV, si.P).Clamp(0, 1)
	if !r.IsBlack() {
		si.BSDF.Add(bxdf.NewLambertianReflection(r))
	}
	if !t.IsBlack() {
		si.BSDF.Add(bxdf.NewLambertianTransmission(t))
	}
}
