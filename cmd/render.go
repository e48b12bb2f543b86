package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/df07/go-pbrt-renderer/pkg/camera"
	"github.com/df07/go-pbrt-renderer/pkg/film"
	"github.com/df07/go-pbrt-renderer/pkg/geometry"
	"github.com/df07/go-pbrt-renderer/pkg/integrator"
	"github.com/df07/go-pbrt-renderer/pkg/renderer"
	"github.com/df07/go-pbrt-renderer/pkg/sampler"
	"github.com/df07/go-pbrt-renderer/pkg/scene"
	"github.com/urfave/cli"
)

// RenderFlags are the options accepted by the render command.
var RenderFlags = []cli.Flag{
	cli.StringFlag{Name: "scene, s", Value: "default", Usage: "built-in scene to render"},
	cli.StringFlag{Name: "integrator, i", Value: "directlighting", Usage: "normal, whitted, directlighting or path"},
	cli.IntFlag{Name: "width", Value: 400, Usage: "image width"},
	cli.IntFlag{Name: "height", Value: 225, Usage: "image height"},
	cli.IntFlag{Name: "spp-x", Value: 4, Usage: "stratified samples per pixel along x"},
	cli.IntFlag{Name: "spp-y", Value: 4, Usage: "stratified samples per pixel along y"},
	cli.IntFlag{Name: "max-depth", Value: 5, Usage: "maximum ray depth"},
	cli.IntFlag{Name: "tile-size", Value: 16, Usage: "tile edge length in pixels"},
	cli.IntFlag{Name: "workers", Value: 0, Usage: "parallel tiles, 0 for one per CPU"},
	cli.StringFlag{Name: "bvh", Value: "sah", Usage: "BVH split method: sah, hlbvh, middle or equal"},
	cli.Int64Flag{Name: "seed", Value: 0, Usage: "sampler seed"},
	cli.StringFlag{Name: "out, o", Value: "", Usage: "output PNG, defaults to output/<scene>/render_<timestamp>.png"},
}

type renderOptions struct {
	Scene      string
	Integrator string
	Width      int
	Height     int
	SppX, SppY int
	MaxDepth   int
	TileSize   int
	Workers    int
	BVH        string
	Seed       int64
	Out        string
}

func optionsFromContext(ctx *cli.Context) renderOptions {
	return renderOptions{
		Scene:      ctx.String("scene"),
		Integrator: ctx.String("integrator"),
		Width:      ctx.Int("width"),
		Height:     ctx.Int("height"),
		SppX:       ctx.Int("spp-x"),
		SppY:       ctx.Int("spp-y"),
		MaxDepth:   ctx.Int("max-depth"),
		TileSize:   ctx.Int("tile-size"),
		Workers:    ctx.Int("workers"),
		BVH:        ctx.String("bvh"),
		Seed:       ctx.Int64("seed"),
		Out:        ctx.String("out"),
	}
}

func (o renderOptions) outputPath(now time.Time) string {
	if o.Out != "" {
		return o.Out
	}
	return filepath.Join("output", o.Scene, fmt.Sprintf("render_%s.png", now.Format("20060102_150405")))
}

// setupRenderer builds the scene, film, camera, sampler and integrator
// described by o.
func setupRenderer(o renderOptions) (*renderer.Renderer, *film.Film, error) {
	split, err := geometry.ParseSplitMethod(o.BVH)
	if err != nil {
		return nil, nil, err
	}
	bvh := geometry.DefaultBVHConfig()
	bvh.SplitMethod = split

	sc, err := scene.Load(o.Scene, bvh)
	if err != nil {
		return nil, nil, err
	}

	filmConfig := film.DefaultFilmConfig()
	filmConfig.Width, filmConfig.Height = o.Width, o.Height
	f, err := film.New(filmConfig)
	if err != nil {
		return nil, nil, err
	}

	cam, err := camera.NewPerspectiveFromConfig(sc.CameraConfig, f)
	if err != nil {
		return nil, nil, fmt.Errorf("camera: %w", err)
	}

	samplerConfig := sampler.DefaultStratifiedConfig()
	samplerConfig.XSamples, samplerConfig.YSamples = o.SppX, o.SppY
	if err := samplerConfig.Validate(); err != nil {
		return nil, nil, err
	}
	smp := sampler.NewStratifiedSampler(samplerConfig, o.Seed)

	in, err := integrator.New(o.Integrator, o.MaxDepth)
	if err != nil {
		return nil, nil, err
	}

	renderConfig := renderer.DefaultRenderConfig()
	renderConfig.TileSize = o.TileSize
	if o.Workers > 0 {
		renderConfig.Workers = o.Workers
	}
	r, err := renderer.New(sc, cam, smp, in, renderConfig)
	if err != nil {
		return nil, nil, err
	}
	return r, f, nil
}

// RenderScene renders a built-in scene to a PNG file.
func RenderScene(ctx *cli.Context) error {
	setupLogging(ctx)

	opts := optionsFromContext(ctx)
	r, f, err := setupRenderer(opts)
	if err != nil {
		return err
	}

	// Ctrl-C stops scheduling new tiles
	renderCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Noticef("rendering %s with %s integrator at %dx%d, %dx%d spp",
		opts.Scene, opts.Integrator, opts.Width, opts.Height, opts.SppX, opts.SppY)
	stats, err := r.Render(renderCtx)
	if err != nil {
		return err
	}
	logger.Noticef("render statistics\n%s", stats.Table())

	return f.WriteImage(film.PNGSink{Path: opts.outputPath(time.Now())}, 1)
}
