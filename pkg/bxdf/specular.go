package bxdf

import (
	"github.com/df07/go-pbrt-renderer/pkg/core"
)

// SpecularReflection is a perfect mirror lobe scaled by a Fresnel term.
// F and Pdf are zero for any explicit pair of directions.
type SpecularReflection struct {
	R       core.Spectrum
	Fresnel Fresnel
}

// NewSpecularReflection creates a mirror lobe
func NewSpecularReflection(r core.Spectrum, fresnel Fresnel) *SpecularReflection {
	return &SpecularReflection{R: r, Fresnel: fresnel}
}

func (s *SpecularReflection) Type() Type { return Reflection | Specular }

func (s *SpecularReflection) F(wo, wi core.Vec3) core.Spectrum { return core.Black }

func (s *SpecularReflection) Pdf(wo, wi core.Vec3) float64 { return 0 }

func (s *SpecularReflection) SampleF(wo core.Vec3, u core.Vec2) (Sample, bool) {
	wi := core.NewVec3(-wo.X, -wo.Y, wo.Z)
	cos := AbsCosTheta(wi)
	if cos == 0 {
		return Sample{}, false
	}
	f := s.Fresnel.Evaluate(CosTheta(wi)).Mul(s.R).Scale(1 / cos)
	return Sample{F: f, Wi: wi, Pdf: 1, SampledType: s.Type()}, true
}

// SpecularTransmission is a perfect refraction lobe between two dielectrics
type SpecularTransmission struct {
	T          core.Spectrum
	EtaA, EtaB float64
	Mode       TransportMode
	fresnel    FresnelDielectric
}

// NewSpecularTransmission creates a refraction lobe; etaA is outside, etaB inside
func NewSpecularTransmission(t core.Spectrum, etaA, etaB float64, mode TransportMode) *SpecularTransmission {
	return &SpecularTransmission{
		T:       t,
		EtaA:    etaA,
		EtaB:    etaB,
		Mode:    mode,
		fresnel: FresnelDielectric{EtaI: etaA, EtaT: etaB},
	}
}

func (s *SpecularTransmission) Type() Type { return Transmission | Specular }

func (s *SpecularTransmission) F(wo, wi core.Vec3) core.Spectrum { return core.Black }

func (s *SpecularTransmission) Pdf(wo, wi core.Vec3) float64 { return 0 }

func (s *SpecularTransmission) SampleF(wo core.Vec3, u core.Vec2) (Sample, bool) {
	entering := CosTheta(wo) > 0
	etaI, etaT := s.EtaA, s.EtaB
	if !entering {
		etaI, etaT = etaT, etaI
	}

	n := core.NewVec3(0, 0, 1).FaceForward(wo)
	wi, ok := Refract(wo, n, etaI/etaT)
	if !ok {
		return Sample{}, false
	}
	cos := AbsCosTheta(wi)
	if cos == 0 {
		return Sample{}, false
	}

	ft := s.T.Mul(core.NewSpectrum(1).Sub(s.fresnel.Evaluate(CosTheta(wi))))
	if s.Mode == Radiance {
		ft = ft.Scale((etaI * etaI) / (etaT * etaT))
	}
	return Sample{F: ft.Scale(1 / cos), Wi: wi, Pdf: 1, SampledType: s.Type()}, true
}

// FresnelSpecular combines specular reflection and transmission,
// choosing between them by the dielectric Fresnel reflectance.
type FresnelSpecular struct {
	R, T       core.Spectrum
	EtaA, EtaB float64
	Mode       TransportMode
}

// NewFresnelSpecular creates a combined glass lobe
func NewFresnelSpecular(r, t core.Spectrum, etaA, etaB float64, mode TransportMode) *FresnelSpecular {
	return &FresnelSpecular{R: r, T: t, EtaA: etaA, EtaB: etaB, Mode: mode}
}

func (s *FresnelSpecular) Type() Type { return Reflection | Transmission | Specular }

func (s *FresnelSpecular) F(wo, wi core.Vec3) core.Spectrum { return core.Black }

func (s *FresnelSpecular) Pdf(wo, wi core.Vec3) float64 { return 0 }

func (s *FresnelSpecular) SampleF(wo core.Vec3, u core.Vec2) (Sample, bool) {
	fr := FrDielectric(CosTheta(wo), s.EtaA, s.EtaB)
	if u.X < fr {
		wi := core.NewVec3(-wo.X, -wo.Y, wo.Z)
		cos := AbsCosTheta(wi)
		if cos == 0 {
			return Sample{}, false
		}
		return Sample{
			F:           s.R.Scale(fr / cos),
			Wi:          wi,
			Pdf:         fr,
			SampledType: Reflection | Specular,
		}, true
	}

	entering := CosTheta(wo) > 0
	etaI, etaT := s.EtaA, s.EtaB
	if !entering {
		etaI, etaT = etaT, etaI
	}
	wi, ok := Refract(wo, core.NewVec3(0, 0, 1).FaceForward(wo), etaI/etaT)
	if !ok {
		return Sample{}, false
	}
	cos := AbsCosTheta(wi)
	if cos == 0 {
		return Sample{}, false
	}
	ft := s.T.Scale(1 - fr)
	if s.Mode == Radiance {
		ft = ft.Scale((etaI * etaI) / (etaT * etaT))
	}
	return Sample{
		F:           ft.Scale(1 / cos),
		Wi:          wi,
		Pdf:         1 - fr,
		SampledType: Transmission | Specular,
	}, true
}
