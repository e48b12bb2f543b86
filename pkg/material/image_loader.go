package material

import (
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"io"

	"github.com/df07/go-pbrt-renderer/pkg/core"
)

// DecodeImageTexture reads a PNG or JPEG image into a texture, converting
// its sRGB values to linear
func DecodeImageTexture(r io.Reader) (*ImageTexture, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode texture: %w", err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	pixels := make([]core.Spectrum, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			// RGBA returns 16-bit channels
			cr, cg, cb, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			pixels[y*width+x] = core.NewRGB(
				core.InverseGammaCorrect(float64(cr)/65535),
				core.InverseGammaCorrect(float64(cg)/65535),
				core.InverseGammaCorrect(float64(cb)/65535))
		}
	}
	return NewImageTexture(width, height, pixels), nil
}
