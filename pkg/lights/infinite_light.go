package lights

import (
	"math"

	"github.com/df07/go-pbrt-renderer/pkg/core"
	"github.com/df07/go-pbrt-renderer/pkg/interaction"
)

// infiniteLight is the environment surrounding the scene. Directions are
// sampled cosine-weighted around the reference normal, or uniformly over
// the sphere when the reference point has no normal.
type infiniteLight struct {
	radiance    func(w core.Vec3) core.Spectrum
	nSamples    int
	worldCenter core.Vec3
	worldRadius float64
}

func (l *infiniteLight) Type() Type { return Infinite }

func (l *infiniteLight) SampleLi(ref *interaction.Interaction, u core.Vec2) (Sample, VisibilityTester, bool) {
	var wi core.Vec3
	if ref.IsSurfaceInteraction() {
		local := core.CosineSampleHemisphere(u)
		s, t := core.CoordinateSystem(ref.N)
		wi = s.Multiply(local.X).Add(t.Multiply(local.Y)).Add(ref.N.Multiply(local.Z))
	} else {
		wi = core.UniformSampleSphere(u)
	}
	pdf := l.PdfLi(ref, wi)
	if pdf == 0 {
		return Sample{}, VisibilityTester{}, false
	}
	far := interaction.NewInteraction(ref.P.Add(wi.Multiply(2*l.worldRadius)), ref.Time)
	return Sample{Li: l.radiance(wi), Wi: wi, Pdf: pdf}, VisibilityTester{P0: *ref, P1: far}, true
}

func (l *infiniteLight) PdfLi(ref *interaction.Interaction, wi core.Vec3) float64 {
	if !ref.IsSurfaceInteraction() {
		return core.UniformSpherePdf()
	}
	cosTheta := wi.Dot(ref.N)
	if cosTheta <= 0 {
		return 0
	}
	return core.CosineHemispherePdf(cosTheta)
}

func (l *infiniteLight) Le(ray *core.RayDifferential) core.Spectrum {
	return l.radiance(ray.Direction.Normalize())
}

func (l *infiniteLight) Preprocess(worldBound core.Bounds3) {
	l.worldCenter, l.worldRadius = worldBound.BoundingSphere()
	logger.Debugf("Infinite light bounds scene with radius %.3f at %v", l.worldRadius, l.worldCenter)
}

func (l *infiniteLight) NSamples() int { return l.nSamples }

// UniformInfiniteLight is an environment of constant radiance
type UniformInfiniteLight struct {
	infiniteLight
	Lemit core.Spectrum
}

// NewUniformInfiniteLight creates a constant environment
func NewUniformInfiniteLight(lemit core.Spectrum, nSamples int) *UniformInfiniteLight {
	l := &UniformInfiniteLight{Lemit: lemit}
	l.infiniteLight = infiniteLight{
		radiance: func(core.Vec3) core.Spectrum { return lemit },
		nSamples: max(1, nSamples),
	}
	return l
}

func (l *UniformInfiniteLight) Power() core.Spectrum {
	return l.Lemit.Scale(math.Pi * l.worldRadius * l.worldRadius)
}

// GradientInfiniteLight blends from Bottom at -y to Top at +y
type GradientInfiniteLight struct {
	infiniteLight
	Top, Bottom core.Spectrum
}

// NewGradientInfiniteLight creates a sky-like environment
func NewGradientInfiniteLight(top, bottom core.Spectrum, nSamples int) *GradientInfiniteLight {
	l := &GradientInfiniteLight{Top: top, Bottom: bottom}
	l.infiniteLight = infiniteLight{
		radiance: func(w core.Vec3) core.Spectrum {
			t := 0.5 * (w.Y + 1)
			return bottom.Lerp(t, top)
		},
		nSamples: max(1, nSamples),
	}
	return l
}

// Power uses the mean radiance over all directions
func (l *GradientInfiniteLight) Power() core.Spectrum {
	mean := l.Bottom.Add(l.Top).Scale(0.5)
	return mean.Scale(math.Pi * l.worldRadius * l.worldRadius)
}
