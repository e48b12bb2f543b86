package material

import (
	"github.com/df07/go-pbrt-renderer/pkg/core"
)

// ColorSource is a spectrum that varies over a surface. Image-like
// sources read uv; procedural ones may use the hit point p instead.
type ColorSource interface {
	Evaluate(uv core.Vec2, p core.Vec3) core.Spectrum
}

// SolidColor is the same spectrum everywhere
type SolidColor struct {
	Color core.Spectrum
}

func NewSolidColor(color core.Spectrum) *SolidColor {
	return &SolidColor{Color: color}
}

func (s *SolidColor) Evaluate(uv core.Vec2, p core.Vec3) core.Spectrum {
	return s.Color
}
