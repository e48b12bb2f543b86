package material

import (
	"math"

	"github.com/df07/go-pbrt-renderer/pkg/core"
)

// CheckerboardTexture alternates two colors over a grid in UV space
type CheckerboardTexture struct {
	ChecksU, ChecksV float64
	Even, Odd        ColorSource
}

// NewCheckerboardTexture creates a checkerboard with the given number of checks along u and v
func NewCheckerboardTexture(checksU, checksV int, even, odd core.Spectrum) *CheckerboardTexture {
	return &CheckerboardTexture{
		ChecksU: float64(checksU),
		ChecksV: float64(checksV),
		Even:    NewSolidColor(even),
		Odd:     NewSolidColor(odd),
	}
}

// Evaluate picks the color of the check containing uv
func (c *CheckerboardTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Spectrum {
	cu := int(math.Floor(uv.X * c.ChecksU))
	cv := int(math.Floor(uv.Y * c.ChecksV))
	if (cu+cv)&1 == 0 {
		return c.Even.Evaluate(uv, point)
	}
	return c.Odd.Evaluate(uv, point)
}

// NewGradientTexture creates a vertical gradient from color1 (top) to color2 (bottom)
func NewGradientTexture(width, height int, color1, color2 core.Spectrum) *ImageTexture {
	pixels := make([]core.Spectrum, width*height)

	for y := 0; y < height; y++ {
		t := float64(y) / float64(height-1)
		color := color1.Lerp(t, color2)

		for x := 0; x < width; x++ {
			pixels[y*width+x] = color
		}
	}

	return NewImageTexture(width, height, pixels)
}
