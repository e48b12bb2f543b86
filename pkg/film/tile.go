package film

import (
	"math"

	"github.com/df07/go-pbrt-renderer/pkg/core"
)

// TilePixel accumulates weighted radiance for one pixel of a tile
type TilePixel struct {
	ContribSum      core.Spectrum
	FilterWeightSum float64
}

// FilmTile is a worker-private accumulator for a rectangle of pixels
type FilmTile struct {
	PixelBounds core.Bounds2i

	filterRadius    core.Vec2
	invFilterRadius core.Vec2
	filterTable     *[filterTableWidth * filterTableWidth]float64
	pixels          []TilePixel
}

func newFilmTile(bounds core.Bounds2i, radius core.Vec2, table *[filterTableWidth * filterTableWidth]float64) *FilmTile {
	return &FilmTile{
		PixelBounds:     bounds,
		filterRadius:    radius,
		invFilterRadius: core.NewVec2(1/radius.X, 1/radius.Y),
		filterTable:     table,
		pixels:          make([]TilePixel, max(0, bounds.Area())),
	}
}

func (t *FilmTile) pixel(p core.Point2i) *TilePixel {
	width := t.PixelBounds.Max.X - t.PixelBounds.Min.X
	offset := (p.X - t.PixelBounds.Min.X) + (p.Y-t.PixelBounds.Min.Y)*width
	return &t.pixels[offset]
}

// AddSample splats L onto every tile pixel within the filter radius of pFilm
func (t *FilmTile) AddSample(pFilm core.Vec2, l core.Spectrum, sampleWeight float64) {
	// Pixel centers sit at half-integer coordinates
	dx, dy := pFilm.X-0.5, pFilm.Y-0.5
	x0 := max(int(math.Ceil(dx-t.filterRadius.X)), t.PixelBounds.Min.X)
	y0 := max(int(math.Ceil(dy-t.filterRadius.Y)), t.PixelBounds.Min.Y)
	x1 := min(int(math.Floor(dx+t.filterRadius.X))+1, t.PixelBounds.Max.X)
	y1 := min(int(math.Floor(dy+t.filterRadius.Y))+1, t.PixelBounds.Max.Y)
	if x1 <= x0 || y1 <= y0 {
		return
	}

	ifx := make([]int, x1-x0)
	for x := x0; x < x1; x++ {
		fx := math.Abs((float64(x) - dx) * t.invFilterRadius.X * filterTableWidth)
		ifx[x-x0] = min(int(math.Floor(fx)), filterTableWidth-1)
	}
	ify := make([]int, y1-y0)
	for y := y0; y < y1; y++ {
		fy := math.Abs((float64(y) - dy) * t.invFilterRadius.Y * filterTableWidth)
		ify[y-y0] = min(int(math.Floor(fy)), filterTableWidth-1)
	}

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			weight := t.filterTable[ify[y-y0]*filterTableWidth+ifx[x-x0]]
			px := t.pixel(core.NewPoint2i(x, y))
			px.ContribSum = px.ContribSum.Add(l.Scale(sampleWeight * weight))
			px.FilterWeightSum += weight
		}
	}
}
