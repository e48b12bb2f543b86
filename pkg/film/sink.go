package film

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
)

// ImageSink receives the final 8-bit RGB image, row by row from the top
type ImageSink interface {
	Write(width, height int, rgb []uint8) error
}

// PNGSink writes the image as a PNG file, creating its directory
type PNGSink struct {
	Path string
}

func (s PNGSink) Write(width, height int, rgb []uint8) error {
	if len(rgb) != 3*width*height {
		return fmt.Errorf("image data has %d bytes, want %d", len(rgb), 3*width*height)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := 3 * (y*width + x)
			img.SetRGBA(x, y, color.RGBA{R: rgb[i], G: rgb[i+1], B: rgb[i+2], A: 255})
		}
	}

	if err := os.MkdirAll(filepath.Dir(s.Path), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	file, err := os.Create(s.Path)
	if err != nil {
		return fmt.Errorf("create %s: %w", s.Path, err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("encode %s: %w", s.Path, err)
	}
	logger.Noticef("Image saved as %s", s.Path)
	return nil
}
