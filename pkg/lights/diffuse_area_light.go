package lights

import (
	"math"

	"github.com/df07/go-pbrt-renderer/pkg/core"
	"github.com/df07/go-pbrt-renderer/pkg/geometry"
	"github.com/df07/go-pbrt-renderer/pkg/interaction"
)

// DiffuseAreaLight emits uniformly from the front of a shape
type DiffuseAreaLight struct {
	Lemit    core.Spectrum
	Shape    geometry.Shape
	TwoSided bool

	nSamples int
	area     float64
}

// NewDiffuseAreaLight attaches emission to shape. nSamples below one is
// treated as one.
func NewDiffuseAreaLight(lemit core.Spectrum, nSamples int, shape geometry.Shape, twoSided bool) *DiffuseAreaLight {
	return &DiffuseAreaLight{
		Lemit:    lemit,
		Shape:    shape,
		TwoSided: twoSided,
		nSamples: max(1, nSamples),
		area:     shape.Area(),
	}
}

func (l *DiffuseAreaLight) Type() Type { return Area }

// L is the radiance leaving surface point it in direction w
func (l *DiffuseAreaLight) L(it *interaction.Interaction, w core.Vec3) core.Spectrum {
	if !l.TwoSided && it.N.Dot(w) <= 0 {
		return core.Black
	}
	return l.Lemit
}

func (l *DiffuseAreaLight) SampleLi(ref *interaction.Interaction, u core.Vec2) (Sample, VisibilityTester, bool) {
	pShape, pdf := l.Shape.SampleRef(ref, u)
	pShape.Time = ref.Time
	toLight := pShape.P.Subtract(ref.P)
	if pdf == 0 || toLight.LengthSquared() == 0 {
		return Sample{}, VisibilityTester{}, false
	}
	wi := toLight.Normalize()
	li := l.L(&pShape, wi.Negate())
	return Sample{Li: li, Wi: wi, Pdf: pdf}, VisibilityTester{P0: *ref, P1: pShape}, true
}

func (l *DiffuseAreaLight) PdfLi(ref *interaction.Interaction, wi core.Vec3) float64 {
	return l.Shape.Pdf(ref, wi)
}

func (l *DiffuseAreaLight) Power() core.Spectrum {
	sides := 1.0
	if l.TwoSided {
		sides = 2
	}
	return l.Lemit.Scale(sides * l.area * math.Pi)
}

func (l *DiffuseAreaLight) Le(ray *core.RayDifferential) core.Spectrum { return core.Black }

func (l *DiffuseAreaLight) Preprocess(worldBound core.Bounds3) {}

func (l *DiffuseAreaLight) NSamples() int { return l.nSamples }
