package film

import (
	"image/png"
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/df07/go-pbrt-renderer/pkg/core"
)

type captureSink struct {
	width, height int
	rgb           []uint8
}

func (s *captureSink) Write(width, height int, rgb []uint8) error {
	s.width, s.height, s.rgb = width, height, rgb
	return nil
}

func newTestFilm(t *testing.T, w, h int, filter Filter) *Film {
	t.Helper()
	config := DefaultFilmConfig()
	config.Width, config.Height = w, h
	config.Filter = filter
	f, err := New(config)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return f
}

func TestFilters(t *testing.T) {
	r := core.NewVec2(2, 2)
	tests := []struct {
		name   string
		filter Filter
		center float64
		edge   float64
	}{
		{"box", NewBoxFilter(r), 1, 1},
		{"triangle", NewTriangleFilter(r), 4, 0},
		{"gaussian", NewGaussianFilter(r, 2), math.Pow(1-math.Exp(-8), 2), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Evaluate(core.NewVec2(0, 0)); math.Abs(got-tt.center) > 1e-12 {
				t.Errorf("center = %v, want %v", got, tt.center)
			}
			if got := tt.filter.Evaluate(core.NewVec2(2, 0)); math.Abs(got-tt.edge) > 1e-12 {
				t.Errorf("edge = %v, want %v", got, tt.edge)
			}
		})
	}
}

func TestFilmTile_BoxFilterHitsOnePixel(t *testing.T) {
	f := newTestFilm(t, 8, 8, NewBoxFilter(core.NewVec2(0.5, 0.5)))
	tile := f.GetFilmTile(core.Bounds2i{Min: core.NewPoint2i(0, 0), Max: core.NewPoint2i(4, 4)})

	tile.AddSample(core.NewVec2(2.3, 1.7), core.NewSpectrum(2), 1)

	for y := tile.PixelBounds.Min.Y; y < tile.PixelBounds.Max.Y; y++ {
		for x := tile.PixelBounds.Min.X; x < tile.PixelBounds.Max.X; x++ {
			px := tile.pixel(core.NewPoint2i(x, y))
			want := 0.0
			if x == 2 && y == 1 {
				want = 1
			}
			if px.FilterWeightSum != want {
				t.Errorf("pixel (%d,%d) weight = %v, want %v", x, y, px.FilterWeightSum, want)
			}
		}
	}
}

func TestFilmTile_ClipsToCropWindow(t *testing.T) {
	f := newTestFilm(t, 4, 4, NewTriangleFilter(core.NewVec2(2, 2)))
	tile := f.GetFilmTile(core.Bounds2i{Min: core.NewPoint2i(0, 0), Max: core.NewPoint2i(2, 2)})
	if tile.PixelBounds.Min != core.NewPoint2i(0, 0) || tile.PixelBounds.Max.X > 4 || tile.PixelBounds.Max.Y > 4 {
		t.Errorf("tile bounds %v escape the film", tile.PixelBounds)
	}
	// Samples near the edge must not write outside the tile
	tile.AddSample(core.NewVec2(0.1, 0.1), core.NewSpectrum(1), 1)
	tile.AddSample(core.NewVec2(100, 100), core.NewSpectrum(1), 1)
}

func TestFilm_MergeAndResolve(t *testing.T) {
	f := newTestFilm(t, 2, 1, NewBoxFilter(core.NewVec2(0.5, 0.5)))
	tile := f.GetFilmTile(f.SampleBounds())
	tile.AddSample(core.NewVec2(0.5, 0.5), core.NewRGB(0.2, 0.4, 0.6), 1)
	tile.AddSample(core.NewVec2(0.25, 0.75), core.NewRGB(0.4, 0.4, 0.4), 1)
	f.MergeFilmTile(tile)

	_, w := f.PixelXYZ(core.NewPoint2i(0, 0))
	if w != 2 {
		t.Errorf("filter weight sum = %v, want 2", w)
	}
	rgb := f.RGB(0)
	want := core.NewRGB(0.3, 0.4, 0.5)
	got := rgb[0]
	if math.Abs(got.R-want.R) > 1e-5 || math.Abs(got.G-want.G) > 1e-5 || math.Abs(got.B-want.B) > 1e-5 {
		t.Errorf("resolved pixel = %v, want %v", got, want)
	}
	if !rgb[1].IsBlack() {
		t.Errorf("untouched pixel = %v, want black", rgb[1])
	}
}

func TestFilm_ConcurrentSplats(t *testing.T) {
	f := newTestFilm(t, 4, 4, NewBoxFilter(core.NewVec2(0.5, 0.5)))
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				f.AddSplat(core.NewVec2(1.5, 2.5), core.NewRGB(1, 1, 1))
			}
		}()
	}
	wg.Wait()

	// Out of bounds and NaN splats are dropped
	f.AddSplat(core.NewVec2(-1, 0), core.NewRGB(1, 1, 1))
	f.AddSplat(core.NewVec2(0.5, 0.5), core.NewRGB(math.NaN(), 0, 0))

	rgb := f.RGB(1)
	got := rgb[2*4+1]
	if math.Abs(got.G-8000) > 0.5 {
		t.Errorf("splatted pixel = %v, want 8000 in each channel", got)
	}
	if !rgb[0].IsBlack() {
		t.Errorf("pixel (0,0) = %v, want black", rgb[0])
	}
}

func TestFilm_WriteImage(t *testing.T) {
	f := newTestFilm(t, 3, 2, NewBoxFilter(core.NewVec2(0.5, 0.5)))
	tile := f.GetFilmTile(f.SampleBounds())
	tile.AddSample(core.NewVec2(2.5, 1.5), core.NewRGB(1, 1, 1), 1)
	f.MergeFilmTile(tile)

	sink := &captureSink{}
	if err := f.WriteImage(sink, 0); err != nil {
		t.Fatalf("WriteImage: %v", err)
	}
	if sink.width != 3 || sink.height != 2 || len(sink.rgb) != 18 {
		t.Fatalf("sink got %dx%d with %d bytes", sink.width, sink.height, len(sink.rgb))
	}
	last := sink.rgb[15:]
	for _, v := range last {
		if v != 255 {
			t.Errorf("white pixel encoded as %v", last)
		}
	}
	if sink.rgb[0] != 0 {
		t.Errorf("black pixel encoded as %v", sink.rgb[:3])
	}
}

func TestPNGSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.png")
	rgb := []uint8{255, 0, 0, 0, 255, 0}
	if err := (PNGSink{Path: path}).Write(2, 1, rgb); err != nil {
		t.Fatalf("Write: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer file.Close()
	img, err := png.Decode(file)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if r, g, _, _ := img.At(0, 0).RGBA(); r != 0xffff || g != 0 {
		t.Errorf("pixel 0 = %v", img.At(0, 0))
	}
	if err := (PNGSink{Path: path}).Write(2, 2, rgb); err == nil {
		t.Error("expected error for short image data")
	}
}

func TestConfig_Validate(t *testing.T) {
	bad := DefaultFilmConfig()
	bad.Width = 0
	if _, err := New(bad); err == nil {
		t.Error("expected error for zero width")
	}
	bad = DefaultFilmConfig()
	bad.CropMin = core.NewVec2(0.5, 0)
	bad.CropMax = core.NewVec2(0.5, 1)
	if err := bad.Validate(); err == nil {
		t.Error("expected error for empty crop window")
	}
}
