package renderer

import "github.com/df07/go-pbrt-renderer/pkg/core"

// Tile is a rectangle of the film's sample bounds rendered as one task
type Tile struct {
	ID     int           // row-major index in the grid
	Bounds core.Bounds2i // sample bounds covered by this tile
}

// NewTileGrid splits bounds into tiles of at most tileSize pixels a side
func NewTileGrid(bounds core.Bounds2i, tileSize int) []Tile {
	extent := bounds.Diagonal()
	tilesX := (extent.X + tileSize - 1) / tileSize
	tilesY := (extent.Y + tileSize - 1) / tileSize

	tiles := make([]Tile, 0, tilesX*tilesY)
	for ty := 0; ty < tilesY; ty++ {
		for tx := 0; tx < tilesX; tx++ {
			x0 := bounds.Min.X + tx*tileSize
			y0 := bounds.Min.Y + ty*tileSize
			x1 := min(x0+tileSize, bounds.Max.X)
			y1 := min(y0+tileSize, bounds.Max.Y)
			tiles = append(tiles, Tile{
				ID:     len(tiles),
				Bounds: core.Bounds2i{Min: core.NewPoint2i(x0, y0), Max: core.NewPoint2i(x1, y1)},
			})
		}
	}
	return tiles
}
