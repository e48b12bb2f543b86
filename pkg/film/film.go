package film

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/df07/go-pbrt-renderer/pkg/core"
	"github.com/df07/go-pbrt-renderer/pkg/log"
)

var logger = log.New("film")

const filterTableWidth = 16

// Config describes the image a Film accumulates
type Config struct {
	Width, Height int
	// CropMin and CropMax select a sub-rectangle in NDC, [0,1]^2 for the full image
	CropMin, CropMax core.Vec2
	Filter           Filter
	Scale            float64 // multiplies every pixel value on output
}

// DefaultFilmConfig returns a 400x225 image with a half-pixel box filter
func DefaultFilmConfig() Config {
	return Config{
		Width:   400,
		Height:  225,
		CropMin: core.NewVec2(0, 0),
		CropMax: core.NewVec2(1, 1),
		Filter:  NewBoxFilter(core.NewVec2(0.5, 0.5)),
		Scale:   1,
	}
}

// Validate checks the resolution and crop window
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("film resolution must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.CropMin.X >= c.CropMax.X || c.CropMin.Y >= c.CropMax.Y {
		return fmt.Errorf("empty crop window %v-%v", c.CropMin, c.CropMax)
	}
	if c.Filter == nil {
		return fmt.Errorf("film needs a reconstruction filter")
	}
	return nil
}

// atomicFloat64 accumulates with compare-and-swap on the bit pattern
type atomicFloat64 struct {
	bits atomic.Uint64
}

func (a *atomicFloat64) Add(v float64) {
	for {
		old := a.bits.Load()
		if a.bits.CompareAndSwap(old, math.Float64bits(math.Float64frombits(old)+v)) {
			return
		}
	}
}

func (a *atomicFloat64) Load() float64 {
	return math.Float64frombits(a.bits.Load())
}

// Pixel is the accumulated state of one film pixel
type Pixel struct {
	XYZ             [3]float64
	FilterWeightSum float64
	splatXYZ        [3]atomicFloat64
}

// Film accumulates filtered radiance samples. Tiles are merged under a
// mutex; splats may land anywhere and are added atomically.
type Film struct {
	FullResolution     core.Point2i
	CroppedPixelBounds core.Bounds2i
	filter             Filter
	scale              float64
	filterTable        [filterTableWidth * filterTableWidth]float64

	mu     sync.Mutex
	pixels []Pixel
}

// New creates a film and tabulates its filter
func New(config Config) (*Film, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	res := core.NewPoint2i(config.Width, config.Height)
	f := &Film{
		FullResolution: res,
		CroppedPixelBounds: core.Bounds2i{
			Min: core.NewPoint2i(
				int(math.Ceil(float64(res.X)*config.CropMin.X)),
				int(math.Ceil(float64(res.Y)*config.CropMin.Y))),
			Max: core.NewPoint2i(
				int(math.Ceil(float64(res.X)*config.CropMax.X)),
				int(math.Ceil(float64(res.Y)*config.CropMax.Y))),
		},
		filter: config.Filter,
		scale:  config.Scale,
	}
	f.pixels = make([]Pixel, f.CroppedPixelBounds.Area())

	// Tabulate one quadrant of the filter at sample centers
	radius := config.Filter.Radius()
	i := 0
	for y := 0; y < filterTableWidth; y++ {
		for x := 0; x < filterTableWidth; x++ {
			p := core.NewVec2(
				(float64(x)+0.5)*radius.X/filterTableWidth,
				(float64(y)+0.5)*radius.Y/filterTableWidth)
			f.filterTable[i] = config.Filter.Evaluate(p)
			i++
		}
	}

	logger.Debugf("Film %dx%d, cropped pixel bounds %v", res.X, res.Y, f.CroppedPixelBounds)
	return f, nil
}

func (f *Film) pixel(p core.Point2i) *Pixel {
	width := f.CroppedPixelBounds.Max.X - f.CroppedPixelBounds.Min.X
	offset := (p.X - f.CroppedPixelBounds.Min.X) + (p.Y-f.CroppedPixelBounds.Min.Y)*width
	return &f.pixels[offset]
}

// SampleBounds is the range of pixels that camera samples must cover so
// the filter reaches every pixel in the crop window
func (f *Film) SampleBounds() core.Bounds2i {
	r := f.filter.Radius()
	return core.Bounds2i{
		Min: core.NewPoint2i(
			int(math.Floor(float64(f.CroppedPixelBounds.Min.X)+0.5-r.X)),
			int(math.Floor(float64(f.CroppedPixelBounds.Min.Y)+0.5-r.Y))),
		Max: core.NewPoint2i(
			int(math.Ceil(float64(f.CroppedPixelBounds.Max.X)-0.5+r.X)),
			int(math.Ceil(float64(f.CroppedPixelBounds.Max.Y)-0.5+r.Y))),
	}
}

// GetFilmTile allocates a tile covering the pixels that samples taken in
// sampleBounds can contribute to
func (f *Film) GetFilmTile(sampleBounds core.Bounds2i) *FilmTile {
	f.mu.Lock()
	defer f.mu.Unlock()

	r := f.filter.Radius()
	p0 := core.NewPoint2i(
		int(math.Ceil(float64(sampleBounds.Min.X)-0.5-r.X)),
		int(math.Ceil(float64(sampleBounds.Min.Y)-0.5-r.Y)))
	p1 := core.NewPoint2i(
		int(math.Floor(float64(sampleBounds.Max.X)-0.5+r.X))+1,
		int(math.Floor(float64(sampleBounds.Max.Y)-0.5+r.Y))+1)
	bounds := core.Bounds2i{Min: p0, Max: p1}.Intersect(f.CroppedPixelBounds)
	return newFilmTile(bounds, r, &f.filterTable)
}

// MergeFilmTile adds a finished tile's contributions into the film
func (f *Film) MergeFilmTile(tile *FilmTile) {
	f.mu.Lock()
	defer f.mu.Unlock()

	tile.PixelBounds.Pixels(func(p core.Point2i) {
		tp := tile.pixel(p)
		xyz := tp.ContribSum.ToXYZ()
		px := f.pixel(p)
		for i := range xyz {
			px.XYZ[i] += xyz[i]
		}
		px.FilterWeightSum += tp.FilterWeightSum
	})
}

// AddSplat adds an unfiltered contribution at a continuous film position
func (f *Film) AddSplat(p core.Vec2, v core.Spectrum) {
	if v.HasNaN() || math.IsInf(v.Y(), 0) {
		logger.Errorf("Ignoring splatted value %v at %v", v, p)
		return
	}
	pi := core.NewPoint2i(int(math.Floor(p.X)), int(math.Floor(p.Y)))
	if !f.CroppedPixelBounds.InsideExclusive(pi) {
		return
	}
	xyz := v.ToXYZ()
	px := f.pixel(pi)
	for i := range xyz {
		px.splatXYZ[i].Add(xyz[i])
	}
}

// PixelXYZ returns the accumulated XYZ sum and filter weight of pixel p
func (f *Film) PixelXYZ(p core.Point2i) ([3]float64, float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	px := f.pixel(p)
	return px.XYZ, px.FilterWeightSum
}

// RGB resolves every pixel to linear RGB, adding splats scaled by splatScale
func (f *Film) RGB(splatScale float64) []core.Spectrum {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]core.Spectrum, len(f.pixels))
	for i := range f.pixels {
		px := &f.pixels[i]
		rgb := core.XYZToRGB(px.XYZ)
		if px.FilterWeightSum != 0 {
			inv := 1 / px.FilterWeightSum
			for c := range rgb {
				rgb[c] = math.Max(0, rgb[c]*inv)
			}
		}
		splat := core.XYZToRGB([3]float64{
			px.splatXYZ[0].Load(), px.splatXYZ[1].Load(), px.splatXYZ[2].Load(),
		})
		for c := range rgb {
			rgb[c] = (rgb[c] + splatScale*splat[c]) * f.scale
		}
		out[i] = core.NewRGB(rgb[0], rgb[1], rgb[2])
	}
	return out
}

// WriteImage gamma-encodes the film and hands it to sink
func (f *Film) WriteImage(sink ImageSink, splatScale float64) error {
	rgb := f.RGB(splatScale)
	d := f.CroppedPixelBounds.Diagonal()
	buf := make([]uint8, 0, 3*len(rgb))
	for _, s := range rgb {
		for _, v := range s.ToRGB() {
			buf = append(buf, toByte(v))
		}
	}
	if err := sink.Write(d.X, d.Y, buf); err != nil {
		return fmt.Errorf("write image: %w", err)
	}
	return nil
}

func toByte(v float64) uint8 {
	return uint8(core.Clamp(255*core.GammaCorrect(v)+0.5, 0, 255))
}
