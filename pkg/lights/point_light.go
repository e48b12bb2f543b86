package lights

import (
	"math"

	"github.com/df07/go-pbrt-renderer/pkg/core"
	"github.com/df07/go-pbrt-renderer/pkg/interaction"
	"github.com/df07/go-pbrt-renderer/pkg/transform"
)

// PointLight emits uniformly in all directions from a single point
type PointLight struct {
	LightToWorld transform.Transform
	I            core.Spectrum

	pLight core.Vec3
}

// NewPointLight places a point light at the origin of lightToWorld
func NewPointLight(lightToWorld transform.Transform, intensity core.Spectrum) *PointLight {
	return &PointLight{
		LightToWorld: lightToWorld,
		I:            intensity,
		pLight:       lightToWorld.Point(core.Vec3{}),
	}
}

func (l *PointLight) Type() Type { return DeltaPosition }

// Position is the light's world-space location
func (l *PointLight) Position() core.Vec3 { return l.pLight }

func (l *PointLight) SampleLi(ref *interaction.Interaction, u core.Vec2) (Sample, VisibilityTester, bool) {
	d2 := l.pLight.DistanceSquared(ref.P)
	if d2 == 0 {
		return Sample{}, VisibilityTester{}, false
	}
	vis := VisibilityTester{
		P0: *ref,
		P1: interaction.NewInteraction(l.pLight, ref.Time),
	}
	return Sample{
		Li:  l.I.Scale(1 / d2),
		Wi:  l.pLight.Subtract(ref.P).Normalize(),
		Pdf: 1,
	}, vis, true
}

func (l *PointLight) PdfLi(ref *interaction.Interaction, wi core.Vec3) float64 { return 0 }

func (l *PointLight) Power() core.Spectrum { return l.I.Scale(4 * math.Pi) }

func (l *PointLight) Le(ray *core.RayDifferential) core.Spectrum { return core.Black }

func (l *PointLight) Preprocess(worldBound core.Bounds3) {}

func (l *PointLight) NSamples() int { return 1 }
