package lights

import (
	"github.com/df07/go-pbrt-renderer/pkg/core"
	"github.com/df07/go-pbrt-renderer/pkg/interaction"
	"github.com/df07/go-pbrt-renderer/pkg/log"
)

var logger = log.New("lights")

// Type flags describe how a light's emission is distributed
type Type int

const (
	DeltaPosition Type = 1 << iota
	DeltaDirection
	Area
	Infinite
)

// IsDelta reports whether the light can only be reached by sampling it directly
func (t Type) IsDelta() bool {
	return t&DeltaPosition != 0 || t&DeltaDirection != 0
}

// Sample is incident radiance arriving at a reference point from a light
type Sample struct {
	Li  core.Spectrum
	Wi  core.Vec3 // unit direction from the reference point toward the light
	Pdf float64   // solid angle density, or 1 for delta lights
}

// Light is a source of emitted radiance
type Light interface {
	Type() Type

	// SampleLi samples incident illumination at ref. The returned tester
	// checks whether the sampled point on the light is visible from ref.
	SampleLi(ref *interaction.Interaction, u core.Vec2) (Sample, VisibilityTester, bool)

	// PdfLi is the solid angle density of SampleLi choosing wi from ref.
	// It is zero for delta lights.
	PdfLi(ref *interaction.Interaction, wi core.Vec3) float64

	// Power is the total emitted power
	Power() core.Spectrum

	// Le is the radiance carried by a ray that leaves the scene
	Le(ray *core.RayDifferential) core.Spectrum

	// Preprocess receives the world bound once the scene is assembled
	Preprocess(worldBound core.Bounds3)

	// NSamples is how many samples the light wants per estimate
	NSamples() int
}
