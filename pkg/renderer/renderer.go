package renderer

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/df07/go-pbrt-renderer/pkg/camera"
	"github.com/df07/go-pbrt-renderer/pkg/film"
	"github.com/df07/go-pbrt-renderer/pkg/integrator"
	"github.com/df07/go-pbrt-renderer/pkg/log"
	"github.com/df07/go-pbrt-renderer/pkg/sampler"
	"github.com/df07/go-pbrt-renderer/pkg/scene"
	"golang.org/x/sync/errgroup"
)

var logger = log.New("renderer")

// Config controls how the image is split up and rendered in parallel
type Config struct {
	TileSize int // tile edge length in pixels
	Workers  int // tiles rendered at once
}

// DefaultRenderConfig uses 16x16 tiles and one worker per CPU
func DefaultRenderConfig() Config {
	return Config{
		TileSize: 16,
		Workers:  runtime.NumCPU(),
	}
}

func (c Config) Validate() error {
	if c.TileSize < 1 {
		return fmt.Errorf("tile size must be positive, got %d", c.TileSize)
	}
	if c.Workers < 1 {
		return fmt.Errorf("worker count must be positive, got %d", c.Workers)
	}
	return nil
}

// Renderer drives an integrator over every pixel of a camera's film
type Renderer struct {
	scene      *scene.Scene
	camera     camera.Camera
	sampler    sampler.Sampler
	integrator integrator.Integrator
	config     Config

	samples, cameraRays, rejected atomic.Int64
}

// New prepares a render. smp is the prototype sampler; each tile renders
// with its own clone of it.
func New(s *scene.Scene, cam camera.Camera, smp sampler.Sampler, in integrator.Integrator, config Config) (*Renderer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid render config: %w", err)
	}
	return &Renderer{
		scene:      s,
		camera:     cam,
		sampler:    smp,
		integrator: in,
		config:     config,
	}, nil
}

// Render preprocesses the integrator, renders every tile and merges the
// results into the camera's film. It stops between tiles when ctx is
// cancelled, leaving the film untouched. The film contents never depend
// on worker count or finishing order. With a filter no wider than one
// pixel they do not depend on the tile size either; wider filters let
// tiles overlap, so the tile size changes summation order and the result
// only agrees to rounding.
func (r *Renderer) Render(ctx context.Context) (RenderStats, error) {
	start := time.Now()
	r.samples.Store(0)
	r.cameraRays.Store(0)
	r.rejected.Store(0)

	r.integrator.Preprocess(r.scene, r.sampler)

	f := r.camera.Film()
	sampleBounds := f.SampleBounds()
	tiles := NewTileGrid(sampleBounds, r.config.TileSize)
	logger.Noticef("rendering %q: %d tiles with %d workers", r.scene.Name, len(tiles), r.config.Workers)

	// Workers only fill their own slot; tiles are merged afterwards in ID
	// order so overlapping filter footprints always sum the same way
	filmTiles := make([]*film.FilmTile, len(tiles))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.config.Workers)
	for _, tile := range tiles {
		tile := tile
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			filmTiles[tile.ID] = r.renderTile(tile)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return RenderStats{}, fmt.Errorf("render cancelled: %w", err)
	}
	for _, ft := range filmTiles {
		f.MergeFilmTile(ft)
	}

	stats := RenderStats{
		Tiles:      len(tiles),
		Workers:    r.config.Workers,
		Pixels:     int64(sampleBounds.Area()),
		Samples:    r.samples.Load(),
		CameraRays: r.cameraRays.Load(),
		Rejected:   r.rejected.Load(),
		Elapsed:    time.Since(start),
	}
	stats.BVH, stats.HasBVH = r.scene.BVHStats()
	logger.Noticef("rendered %d samples in %v", stats.Samples, stats.Elapsed)
	return stats, nil
}
