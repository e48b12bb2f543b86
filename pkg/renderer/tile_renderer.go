package renderer

import (
	"math"

	"github.com/df07/go-pbrt-renderer/pkg/core"
	"github.com/df07/go-pbrt-renderer/pkg/film"
	"github.com/df07/go-pbrt-renderer/pkg/sampler"
)

// renderTile samples every pixel of one tile into a private FilmTile
func (r *Renderer) renderTile(tile Tile) *film.FilmTile {
	f := r.camera.Film()
	sampleBounds := f.SampleBounds()
	width := int64(sampleBounds.Diagonal().X)

	tileSampler := r.sampler.Clone(int64(tile.ID))
	filmTile := f.GetFilmTile(tile.Bounds)
	invSqrtSpp := 1 / math.Sqrt(float64(tileSampler.SamplesPerPixel()))

	var samples, cameraRays, rejected int64
	tile.Bounds.Pixels(func(p core.Point2i) {
		// Seed by position in the image so the pixel's samples do not
		// depend on how the image was tiled
		tileSampler.Reseed(int64(p.Y-sampleBounds.Min.Y)*width + int64(p.X-sampleBounds.Min.X))
		tileSampler.StartPixel(p)

		for sampleIndex := 0; ; sampleIndex++ {
			cs := sampler.GetCameraSample(tileSampler, p)
			weight, ray := r.camera.GenerateRayDifferential(cs)
			ray.ScaleDifferentials(invSqrtSpp)

			L := core.Black
			if weight > 0 {
				L = r.integrator.Li(&ray, r.scene, tileSampler, 0)
				cameraRays++
			}
			if !validRadiance(L) {
				logger.Errorf("bad radiance %v for pixel (%d, %d), sample %d; using black", L, p.X, p.Y, sampleIndex)
				L = core.Black
				rejected++
			}

			filmTile.AddSample(cs.PFilm, L, weight)
			samples++
			if !tileSampler.StartNextSample() {
				break
			}
		}
	})

	r.samples.Add(samples)
	r.cameraRays.Add(cameraRays)
	r.rejected.Add(rejected)
	return filmTile
}

// validRadiance rejects NaN, infinite and clearly negative estimates
func validRadiance(L core.Spectrum) bool {
	if L.HasNaN() {
		return false
	}
	y := L.Y()
	return y >= -1e-5 && !math.IsInf(y, 0)
}
