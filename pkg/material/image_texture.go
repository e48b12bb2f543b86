package material

import (
	"math"

	"github.com/df07/go-pbrt-renderer/pkg/core"
)

// ImageTexture looks up a row-major grid of spectra with nearest-texel
// filtering. Row 0 is the top of the image, at v = 1.
type ImageTexture struct {
	Width, Height int
	Pixels        []core.Spectrum // Pixels[y*Width+x]
}

func NewImageTexture(width, height int, pixels []core.Spectrum) *ImageTexture {
	return &ImageTexture{Width: width, Height: height, Pixels: pixels}
}

// Evaluate repeats the image outside [0,1)^2
func (t *ImageTexture) Evaluate(uv core.Vec2, p core.Vec3) core.Spectrum {
	u := uv.X - math.Floor(uv.X)
	v := uv.Y - math.Floor(uv.Y)

	x := core.ClampInt(int(u*float64(t.Width)), 0, t.Width-1)
	y := core.ClampInt(int((1-v)*float64(t.Height)), 0, t.Height-1)
	return t.Pixels[y*t.Width+x]
}
