package bxdf

import (
	"math"

	"github.com/df07/go-pbrt-renderer/pkg/core"
)

// Fresnel computes the fraction of light reflected at an interface
type Fresnel interface {
	Evaluate(cosThetaI float64) core.Spectrum
}

// FresnelDielectric is the Fresnel term between two dielectrics
type FresnelDielectric struct {
	EtaI, EtaT float64
}

// Evaluate returns the dielectric reflectance
func (f FresnelDielectric) Evaluate(cosThetaI float64) core.Spectrum {
	return core.NewSpectrum(FrDielectric(cosThetaI, f.EtaI, f.EtaT))
}

// FresnelConductor is the Fresnel term at a dielectric/conductor boundary
type FresnelConductor struct {
	EtaI, EtaT, K core.Spectrum
}

// Evaluate returns the conductor reflectance
func (f FresnelConductor) Evaluate(cosThetaI float64) core.Spectrum {
	return FrConductor(math.Abs(cosThetaI), f.EtaI, f.EtaT, f.K)
}

// FresnelNoOp reflects everything
type FresnelNoOp struct{}

// Evaluate returns one
func (FresnelNoOp) Evaluate(float64) core.Spectrum {
	return core.NewSpectrum(1)
}

// FrDielectric is the unpolarized Fresnel reflectance of a dielectric interface
func FrDielectric(cosThetaI, etaI, etaT float64) float64 {
	cosThetaI = core.Clamp(cosThetaI, -1, 1)
	if cosThetaI <= 0 {
		etaI, etaT = etaT, etaI
		cosThetaI = math.Abs(cosThetaI)
	}

	sinThetaI := math.Sqrt(math.Max(0, 1-cosThetaI*cosThetaI))
	sinThetaT := etaI / etaT * sinThetaI
	if sinThetaT >= 1 {
		return 1
	}
	cosThetaT := math.Sqrt(math.Max(0, 1-sinThetaT*sinThetaT))

	rParl := (etaT*cosThetaI - etaI*cosThetaT) / (etaT*cosThetaI + etaI*cosThetaT)
	rPerp := (etaI*cosThetaI - etaT*cosThetaT) / (etaI*cosThetaI + etaT*cosThetaT)
	return (rParl*rParl + rPerp*rPerp) / 2
}

// FrConductor is the Fresnel reflectance of a conductor with absorption k
func FrConductor(cosThetaI float64, etaI, etaT, k core.Spectrum) core.Spectrum {
	cosThetaI = core.Clamp(cosThetaI, -1, 1)
	eta := etaT.Div(etaI)
	etak := k.Div(etaI)

	cos2 := cosThetaI * cosThetaI
	sin2 := 1 - cos2
	eta2 := eta.Mul(eta)
	etak2 := etak.Mul(etak)

	t0 := eta2.Sub(etak2).Sub(core.NewSpectrum(sin2))
	a2plusb2 := t0.Mul(t0).Add(eta2.Mul(etak2).Scale(4)).Sqrt()
	t1 := a2plusb2.Add(core.NewSpectrum(cos2))
	a := a2plusb2.Add(t0).Scale(0.5).Sqrt()
	t2 := a.Scale(2 * cosThetaI)
	rs := t1.Sub(t2).Div(t1.Add(t2))

	t3 := a2plusb2.Scale(cos2).Add(core.NewSpectrum(sin2 * sin2))
	t4 := t2.Scale(sin2)
	rp := rs.Mul(t3.Sub(t4)).Div(t3.Add(t4))

	return rp.Add(rs).Scale(0.5)
}
