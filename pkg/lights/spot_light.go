package lights

import (
	"math"

	"github.com/df07/go-pbrt-renderer/pkg/core"
	"github.com/df07/go-pbrt-renderer/pkg/interaction"
)

// SpotLight is a point light restricted to a cone, fading out smoothly
// between the falloff start angle and the cone's total width
type SpotLight struct {
	I core.Spectrum

	pLight          core.Vec3
	direction       core.Vec3 // unit axis of the cone, pointing away from the light
	cosTotalWidth   float64
	cosFalloffStart float64
}

// NewSpotLight aims a spot light from `from` toward `to`. coneAngle is the
// half-angle of the cone in degrees; the last coneDelta degrees fade out.
func NewSpotLight(from, to core.Vec3, intensity core.Spectrum, coneAngle, coneDelta float64) *SpotLight {
	return &SpotLight{
		I:               intensity,
		pLight:          from,
		direction:       to.Subtract(from).Normalize(),
		cosTotalWidth:   math.Cos(core.Radians(coneAngle)),
		cosFalloffStart: math.Cos(core.Radians(coneAngle - coneDelta)),
	}
}

func (l *SpotLight) Type() Type { return DeltaPosition }

// falloff scales intensity for a unit direction leaving the light
func (l *SpotLight) falloff(w core.Vec3) float64 {
	cosTheta := l.direction.Dot(w)
	if cosTheta < l.cosTotalWidth {
		return 0
	}
	if cosTheta >= l.cosFalloffStart {
		return 1
	}
	delta := (cosTheta - l.cosTotalWidth) / (l.cosFalloffStart - l.cosTotalWidth)
	return (delta * delta) * (delta * delta)
}

func (l *SpotLight) SampleLi(ref *interaction.Interaction, u core.Vec2) (Sample, VisibilityTester, bool) {
	d2 := l.pLight.DistanceSquared(ref.P)
	if d2 == 0 {
		return Sample{}, VisibilityTester{}, false
	}
	wi := l.pLight.Subtract(ref.P).Normalize()
	vis := VisibilityTester{
		P0: *ref,
		P1: interaction.NewInteraction(l.pLight, ref.Time),
	}
	return Sample{
		Li:  l.I.Scale(l.falloff(wi.Negate()) / d2),
		Wi:  wi,
		Pdf: 1,
	}, vis, true
}

func (l *SpotLight) PdfLi(ref *interaction.Interaction, wi core.Vec3) float64 { return 0 }

// Power approximates the fading band as half lit
func (l *SpotLight) Power() core.Spectrum {
	return l.I.Scale(2 * math.Pi * (1 - 0.5*(l.cosFalloffStart+l.cosTotalWidth)))
}

func (l *SpotLight) Le(ray *core.RayDifferential) core.Spectrum { return core.Black }

func (l *SpotLight) Preprocess(worldBound core.Bounds3) {}

func (l *SpotLight) NSamples() int { return 1 }
