package renderer

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/df07/go-pbrt-renderer/pkg/camera"
	"github.com/df07/go-pbrt-renderer/pkg/core"
	"github.com/df07/go-pbrt-renderer/pkg/film"
	"github.com/df07/go-pbrt-renderer/pkg/geometry"
	"github.com/df07/go-pbrt-renderer/pkg/integrator"
	"github.com/df07/go-pbrt-renderer/pkg/sampler"
	"github.com/df07/go-pbrt-renderer/pkg/scene"
)

func TestNewTileGrid(t *testing.T) {
	tests := []struct {
		name      string
		bounds    core.Bounds2i
		tileSize  int
		wantTiles int
	}{
		{"exact fit", core.Bounds2i{Max: core.NewPoint2i(32, 32)}, 16, 4},
		{"ragged edge", core.Bounds2i{Max: core.NewPoint2i(20, 10)}, 8, 6},
		{"single tile", core.Bounds2i{Max: core.NewPoint2i(5, 3)}, 16, 1},
		{"offset origin", core.Bounds2i{Min: core.NewPoint2i(-2, -2), Max: core.NewPoint2i(7, 7)}, 3, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tiles := NewTileGrid(tt.bounds, tt.tileSize)
			if len(tiles) != tt.wantTiles {
				t.Fatalf("got %d tiles, want %d", len(tiles), tt.wantTiles)
			}

			// Every pixel is covered by exactly one tile
			covered := make(map[core.Point2i]int)
			for i, tile := range tiles {
				if tile.ID != i {
					t.Errorf("tile %d has ID %d", i, tile.ID)
				}
				d := tile.Bounds.Diagonal()
				if d.X < 1 || d.Y < 1 || d.X > tt.tileSize || d.Y > tt.tileSize {
					t.Errorf("tile %d has extent %v", i, d)
				}
				tile.Bounds.Pixels(func(p core.Point2i) { covered[p]++ })
			}
			if len(covered) != tt.bounds.Area() {
				t.Errorf("covered %d pixels, want %d", len(covered), tt.bounds.Area())
			}
			for p, n := range covered {
				if n != 1 {
					t.Errorf("pixel %v covered %d times", p, n)
				}
				if !tt.bounds.InsideExclusive(p) {
					t.Errorf("pixel %v outside bounds", p)
				}
			}
		})
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"default", DefaultRenderConfig(), false},
		{"zero tile size", Config{TileSize: 0, Workers: 1}, true},
		{"zero workers", Config{TileSize: 8, Workers: 0}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.config.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

type fixture struct {
	scene  *scene.Scene
	camera camera.Camera
	film   *film.Film
}

func newFixture(t *testing.T, name string, width, height int) fixture {
	t.Helper()
	return newFilteredFixture(t, name, width, height, film.DefaultFilmConfig().Filter)
}

func newFilteredFixture(t *testing.T, name string, width, height int, filter film.Filter) fixture {
	t.Helper()
	s, err := scene.Load(name, geometry.DefaultBVHConfig())
	if err != nil {
		t.Fatalf("scene.Load: %v", err)
	}
	config := film.DefaultFilmConfig()
	config.Width, config.Height = width, height
	config.Filter = filter
	f, err := film.New(config)
	if err != nil {
		t.Fatalf("film.New: %v", err)
	}
	cam, err := camera.NewPerspectiveFromConfig(s.CameraConfig, f)
	if err != nil {
		t.Fatalf("NewPerspectiveFromConfig: %v", err)
	}
	return fixture{scene: s, camera: cam, film: f}
}

func smallSampler() sampler.Sampler {
	config := sampler.DefaultStratifiedConfig()
	config.XSamples, config.YSamples = 2, 2
	return sampler.NewStratifiedSampler(config, 0)
}

func render(t *testing.T, fx fixture, in integrator.Integrator, config Config) RenderStats {
	t.Helper()
	r, err := New(fx.scene, fx.camera, smallSampler(), in, config)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	stats, err := r.Render(context.Background())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	return stats
}

func TestRender_IndependentOfTiling(t *testing.T) {
	const width, height = 24, 18

	for _, name := range []string{"whitted", "directlighting", "path"} {
		t.Run(name, func(t *testing.T) {
			in, err := integrator.New(name, 3)
			if err != nil {
				t.Fatal(err)
			}
			single := newFixture(t, "default", width, height)
			render(t, single, in, Config{TileSize: 64, Workers: 1})

			in, err = integrator.New(name, 3)
			if err != nil {
				t.Fatal(err)
			}
			tiled := newFixture(t, "default", width, height)
			stats := render(t, tiled, in, Config{TileSize: 5, Workers: 4})
			if stats.Tiles != 20 {
				t.Errorf("Tiles = %d, want 20", stats.Tiles)
			}

			single.film.CroppedPixelBounds.Pixels(func(p core.Point2i) {
				a, wa := single.film.PixelXYZ(p)
				b, wb := tiled.film.PixelXYZ(p)
				if a != b || wa != wb {
					t.Errorf("pixel %v differs: %v/%v vs %v/%v", p, a, wa, b, wb)
				}
			})
		})
	}
}

func TestRender_WideFilter(t *testing.T) {
	const width, height = 24, 18
	filter := film.NewTriangleFilter(core.NewVec2(2, 2))

	renderWith := func(config Config) fixture {
		in, err := integrator.New("directlighting", 3)
		if err != nil {
			t.Fatal(err)
		}
		fx := newFilteredFixture(t, "default", width, height, filter)
		render(t, fx, in, config)
		return fx
	}

	// Overlapping tiles must merge identically no matter which worker
	// finishes first
	reference := renderWith(Config{TileSize: 5, Workers: 1})
	for run := 0; run < 3; run++ {
		parallel := renderWith(Config{TileSize: 5, Workers: 4})
		reference.film.CroppedPixelBounds.Pixels(func(p core.Point2i) {
			a, wa := reference.film.PixelXYZ(p)
			b, wb := parallel.film.PixelXYZ(p)
			if a != b || wa != wb {
				t.Errorf("run %d: pixel %v differs: %v/%v vs %v/%v", run, p, a, wa, b, wb)
			}
		})
	}

	// A different tiling only reorders the sums
	single := renderWith(Config{TileSize: 64, Workers: 1})
	single.film.CroppedPixelBounds.Pixels(func(p core.Point2i) {
		a, wa := single.film.PixelXYZ(p)
		b, wb := reference.film.PixelXYZ(p)
		if math.Abs(wa-wb) > 1e-12*math.Abs(wa) {
			t.Errorf("pixel %v weight %v vs %v", p, wa, wb)
		}
		for i := range a {
			if math.Abs(a[i]-b[i]) > 1e-12*math.Max(math.Abs(a[i]), 1e-12) {
				t.Errorf("pixel %v XYZ %v vs %v", p, a, b)
				break
			}
		}
	})
}

func TestRender_Stats(t *testing.T) {
	fx := newFixture(t, "default", 16, 8)
	in, err := integrator.New("normal", 1)
	if err != nil {
		t.Fatal(err)
	}
	stats := render(t, fx, in, Config{TileSize: 8, Workers: 2})

	if stats.Tiles != 2 {
		t.Errorf("Tiles = %d, want 2", stats.Tiles)
	}
	if stats.Pixels != 128 {
		t.Errorf("Pixels = %d, want 128", stats.Pixels)
	}
	if stats.Samples != 128*4 {
		t.Errorf("Samples = %d, want %d", stats.Samples, 128*4)
	}
	if stats.CameraRays != stats.Samples {
		t.Errorf("CameraRays = %d, want %d", stats.CameraRays, stats.Samples)
	}
	if stats.Rejected != 0 {
		t.Errorf("Rejected = %d, want 0", stats.Rejected)
	}
	if !stats.HasBVH || stats.BVH.TotalShapes == 0 {
		t.Errorf("missing BVH stats: %+v", stats.BVH)
	}

	table := stats.Table()
	for _, want := range []string{"Camera rays", "Rejected samples", "Primitives", "Total"} {
		if !strings.Contains(table, want) {
			t.Errorf("stats table missing %q:\n%s", want, table)
		}
	}

	// Every pixel received weight and a normal-shaded value in [0,1]
	fx.film.CroppedPixelBounds.Pixels(func(p core.Point2i) {
		_, w := fx.film.PixelXYZ(p)
		if w <= 0 {
			t.Errorf("pixel %v has filter weight %v", p, w)
		}
	})
}

// badRadiance returns NaN for every camera ray
type badRadiance struct{}

func (badRadiance) Preprocess(*scene.Scene, sampler.Sampler) {}

func (badRadiance) Li(*core.RayDifferential, *scene.Scene, sampler.Sampler, int) core.Spectrum {
	return core.NewSpectrum(math.NaN())
}

func TestRender_RejectsBadRadiance(t *testing.T) {
	fx := newFixture(t, "default", 4, 4)
	stats := render(t, fx, badRadiance{}, Config{TileSize: 4, Workers: 1})

	if stats.Rejected != stats.Samples {
		t.Errorf("Rejected = %d, want %d", stats.Rejected, stats.Samples)
	}
	fx.film.CroppedPixelBounds.Pixels(func(p core.Point2i) {
		xyz, w := fx.film.PixelXYZ(p)
		if xyz != [3]float64{} {
			t.Errorf("pixel %v = %v, want black", p, xyz)
		}
		if w <= 0 {
			t.Errorf("pixel %v has filter weight %v", p, w)
		}
	})
}

func TestRender_Cancelled(t *testing.T) {
	fx := newFixture(t, "default", 32, 32)
	in, err := integrator.New("normal", 1)
	if err != nil {
		t.Fatal(err)
	}
	r, err := New(fx.scene, fx.camera, smallSampler(), in, Config{TileSize: 4, Workers: 2})
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Render(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Render error = %v, want context.Canceled", err)
	}
	fx.film.CroppedPixelBounds.Pixels(func(p core.Point2i) {
		if _, w := fx.film.PixelXYZ(p); w != 0 {
			t.Errorf("cancelled render merged pixel %v", p)
		}
	})
}

func TestNew_InvalidConfig(t *testing.T) {
	fx := newFixture(t, "default", 4, 4)
	if _, err := New(fx.scene, fx.camera, smallSampler(), badRadiance{}, Config{}); err == nil {
		t.Error("expected error for zero config")
	}
}
