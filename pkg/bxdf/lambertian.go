package bxdf

import (
	"github.com/df07/go-pbrt-renderer/pkg/core"
)

// LambertianReflection scatters equally in all directions of the outgoing hemisphere
type LambertianReflection struct {
	R core.Spectrum
}

// NewLambertianReflection creates a diffuse reflection lobe with albedo r
func NewLambertianReflection(r core.Spectrum) *LambertianReflection {
	return &LambertianReflection{R: r}
}

func (l *LambertianReflection) Type() Type { return Reflection | Diffuse }

func (l *LambertianReflection) F(wo, wi core.Vec3) core.Spectrum {
	return l.R.Scale(core.InvPi)
}

func (l *LambertianReflection) SampleF(wo core.Vec3, u core.Vec2) (Sample, bool) {
	return cosineSampleF(l, wo, u)
}

func (l *LambertianReflection) Pdf(wo, wi core.Vec3) float64 {
	return cosinePdf(wo, wi)
}

// LambertianTransmission scatters equally into the opposite hemisphere
type LambertianTransmission struct {
	T core.Spectrum
}

// NewLambertianTransmission creates a diffuse transmission lobe
func NewLambertianTransmission(t core.Spectrum) *LambertianTransmission {
	return &LambertianTransmission{T: t}
}

func (l *LambertianTransmission) Type() Type { return Transmission | Diffuse }

func (l *LambertianTransmission) F(wo, wi core.Vec3) core.Spectrum {
	return l.T.Scale(core.InvPi)
}

func (l *LambertianTransmission) SampleF(wo core.Vec3, u core.Vec2) (Sample, bool) {
	wi := core.CosineSampleHemisphere(u)
	if wo.Z > 0 {
		wi.Z *= -1
	}
	pdf := l.Pdf(wo, wi)
	if pdf == 0 {
		return Sample{}, false
	}
	return Sample{F: l.F(wo, wi), Wi: wi, Pdf: pdf, SampledType: l.Type()}, true
}

func (l *LambertianTransmission) Pdf(wo, wi core.Vec3) float64 {
	if SameHemisphere(wo, wi) {
		return 0
	}
	return AbsCosTheta(wi) * core.InvPi
}
