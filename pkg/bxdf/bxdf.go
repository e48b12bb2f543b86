package bxdf

import (
	"math"

	"github.com/df07/go-pbrt-renderer/pkg/core"
)

// Type classifies a scattering lobe
type Type uint8

const (
	Reflection Type = 1 << iota
	Transmission
	Diffuse
	Glossy
	Specular
)

// All matches every lobe
const All = Reflection | Transmission | Diffuse | Glossy | Specular

// Has reports whether every bit of flag is set
func (t Type) Has(flag Type) bool {
	return t&flag == flag
}

// TransportMode tells whether a path carries radiance from lights or importance from the camera
type TransportMode int

const (
	Radiance TransportMode = iota
	Importance
)

// Sample is the result of sampling an incident direction from a lobe or BSDF
type Sample struct {
	F           core.Spectrum // value of the distribution for the sampled pair
	Wi          core.Vec3     // sampled incident direction
	Pdf         float64       // solid angle density
	SampledType Type          // lobe that produced the sample
}

// BxDF is a single scattering lobe expressed in the local shading frame,
// where the normal is +z.
type BxDF interface {
	Type() Type
	F(wo, wi core.Vec3) core.Spectrum
	SampleF(wo core.Vec3, u core.Vec2) (Sample, bool)
	Pdf(wo, wi core.Vec3) float64
}

// MatchesFlags reports whether the lobe is entirely within the requested flags
func MatchesFlags(b BxDF, flags Type) bool {
	return b.Type()&flags == b.Type()
}

// cosineSampleF draws a cosine-weighted direction in the hemisphere of wo.
// Lobes without a better importance function delegate to it.
func cosineSampleF(b BxDF, wo core.Vec3, u core.Vec2) (Sample, bool) {
	wi := core.CosineSampleHemisphere(u)
	if wo.Z < 0 {
		wi.Z *= -1
	}
	pdf := cosinePdf(wo, wi)
	if pdf == 0 {
		return Sample{}, false
	}
	return Sample{F: b.F(wo, wi), Wi: wi, Pdf: pdf, SampledType: b.Type()}, true
}

func cosinePdf(wo, wi core.Vec3) float64 {
	if !SameHemisphere(wo, wi) {
		return 0
	}
	return AbsCosTheta(wi) * core.InvPi
}

// CosTheta returns the cosine of the angle to the shading normal
func CosTheta(w core.Vec3) float64 { return w.Z }

// Cos2Theta returns the squared cosine of the angle to the shading normal
func Cos2Theta(w core.Vec3) float64 { return w.Z * w.Z }

// AbsCosTheta returns |cos θ|
func AbsCosTheta(w core.Vec3) float64 { return math.Abs(w.Z) }

// Sin2Theta returns the squared sine of the angle to the shading normal
func Sin2Theta(w core.Vec3) float64 { return math.Max(0, 1-Cos2Theta(w)) }

// SinTheta returns the sine of the angle to the shading normal
func SinTheta(w core.Vec3) float64 { return math.Sqrt(Sin2Theta(w)) }

// SameHemisphere reports whether two local directions are on the same side of the surface
func SameHemisphere(w, wp core.Vec3) bool {
	return w.Z*wp.Z > 0
}

// Reflect mirrors wo about n
func Reflect(wo, n core.Vec3) core.Vec3 {
	return wo.Negate().Add(n.Multiply(2 * wo.Dot(n)))
}

// Refract bends wi through a surface with normal n and relative index eta.
// It reports false on total internal reflection.
func Refract(wi, n core.Vec3, eta float64) (core.Vec3, bool) {
	cosThetaI := n.Dot(wi)
	sin2ThetaI := math.Max(0, 1-cosThetaI*cosThetaI)
	sin2ThetaT := eta * eta * sin2ThetaI
	if sin2ThetaT >= 1 {
		return core.Vec3{}, false
	}
	cosThetaT := math.Sqrt(1 - sin2ThetaT)
	return wi.Negate().Multiply(eta).Add(n.Multiply(eta*cosThetaI - cosThetaT)), true
}
