package material

import (
	"github.com/df07/go-pbrt-renderer/pkg/bxdf"
	"github.com/df07/go-pbrt-renderer/pkg/core"
	"github.com/df07/go-pbrt-renderer/pkg/interaction"
)

// Mirror is a perfect specular reflector
type Mirror struct {
	Reflectance ColorSource
}

// NewMirror creates a mirror with the given reflectance
func NewMirror(r core.Spectrum) *Mirror {
	return &Mirror{Reflectance: NewSolidColor(r)}
}

// ComputeScatteringFunctions attaches a mirror lobe with no Fresnel falloff
func (m *Mirror) ComputeScatteringFunctions(si *interaction.SurfaceInteraction, mode bxdf.TransportMode, allowMultipleLobes bool) {
	si.BSDF = newBSDF(si, 1)
	r := m.Reflectance.Evaluate(si.UV, si.P).Clamp(0, 1)
	if !r.IsBlack() {
		si.BSDF.Add(bxdf.NewSpecularReflection(r, bxdf.FresnelNoOp{}))
	}
}

// Metal is a polished conductor whose reflectance follows the conductor
// Fresnel equations for the given index of refraction and absorption.
type Metal struct {
	Eta core.Spectrum // Index of refraction per channel
	K   core.Spectrum // Absorption coefficient per channel
}

// NewMetal creates a new metal material
func NewMetal(eta, k core.Spectrum) *Metal {
	return &Metal{Eta: eta, K: k}
}

// NewCopper returns approximate RGB conductor constants for copper
func NewCopper() *Metal {
	return NewMetal(core.NewRGB(0.2, 0.92, 1.1), core.NewRGB(3.9, 2.45, 2.14))
}

// NewGold returns approximate RGB conductor constants for gold
func NewGold() *Metal {
	return NewMetal(core.NewRGB(0.143, 0.374, 1.442), core.NewRGB(3.983, 2.385, 1.603))
}

// ComputeScatteringFunctions attaches a specular conductor lobe
func (m *Metal) ComputeScatteringFunctions(si *interaction.SurfaceInteraction, mode bxdf.TransportMode, allowMultipleLobes bool) {
	si.BSDF = newBSDF(si, 1)
	fresnel := bxdf.FresnelConductor{EtaI: core.NewSpectrum(1), EtaT: m.Eta, K: m.K}
	si.BSDF.Add(bxdf.NewSpecularReflection(core.NewSpectrum(1), fresnel))
}
