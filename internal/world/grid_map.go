package world

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrEmptyMap        = errors.New("map has no tiles")
	ErrLayerDimensions = errors.New("map layers differ in size")
	ErrBlockSize       = errors.New("block size must be positive")
	ErrNegativeTile    = errors.New("tile ids must not be negative")
	ErrBadSpawn        = errors.New("spawn must be on an open tile inside the map")
)

// GridMap is a stack of equally sized tile layers. It is immutable once built
// and safe for concurrent reads.
type GridMap struct {
	blockSize float64
	width     int // tiles along x
	length    int // tiles along y
	layers    [][][]int
}

// NewGridMap validates and copies layers, indexed [layer][row][column] with
// rows running along y.
func NewGridMap(blockSize float64, layers [][][]int) (*GridMap, error) {
	if blockSize <= 0 || math.IsNaN(blockSize) {
		return nil, fmt.Errorf("%w: %v", ErrBlockSize, blockSize)
	}
	if len(layers) == 0 || len(layers[0]) == 0 || len(layers[0][0]) == 0 {
		return nil, ErrEmptyMap
	}

	length := len(layers[0])
	width := len(layers[0][0])
	copied := make([][][]int, len(layers))
	for l, layer := range layers {
		if len(layer) != length {
			return nil, fmt.Errorf("%w: layer %d has %d rows, want %d", ErrLayerDimensions, l, len(layer), length)
		}
		copied[l] = make([][]int, length)
		for y, row := range layer {
			if len(row) != width {
				return nil, fmt.Errorf("%w: layer %d row %d has %d columns, want %d",
					ErrLayerDimensions, l, y, len(row), width)
			}
			for x, id := range row {
				if id < 0 {
					return nil, fmt.Errorf("%w: layer %d tile (%d,%d) = %d", ErrNegativeTile, l, x, y, id)
				}
			}
			copied[l][y] = append([]int(nil), row...)
		}
	}

	return &GridMap{
		blockSize: blockSize,
		width:     width,
		length:    length,
		layers:    copied,
	}, nil
}

func (m *GridMap) BlockSize() float64 { return m.blockSize }
func (m *GridMap) Width() int         { return m.width }
func (m *GridMap) Length() int        { return m.length }
func (m *GridMap) Layers() int        { return len(m.layers) }

// WorldSize returns the map extent in world units.
func (m *GridMap) WorldSize() (float64, float64) {
	return float64(m.width) * m.blockSize, float64(m.length) * m.blockSize
}

// Diagonal is the longest straight distance inside the map.
func (m *GridMap) Diagonal() float64 {
	w, h := m.WorldSize()
	return math.Hypot(w, h)
}

// InBounds reports whether a world point lies inside
// [0, width*block) x [0, length*block).
func (m *GridMap) InBounds(x, y float64) bool {
	w, h := m.WorldSize()
	return x >= 0 && y >= 0 && x < w && y < h
}

// TileAt returns the tile id at tile indices. Out-of-range indices or layers
// report ok=false and never index the grid.
func (m *GridMap) TileAt(layer, tileX, tileY int) (id int, ok bool) {
	if layer < 0 || layer >= len(m.layers) {
		return TileEmpty, false
	}
	if tileX < 0 || tileY < 0 || tileX >= m.width || tileY >= m.length {
		return TileEmpty, false
	}
	return m.layers[layer][tileY][tileX], true
}

// Solid answers which tile occupies layer at world point (x, y). A point
// outside the map is reported as empty with inBounds=false so traces can
// terminate on it.
func (m *GridMap) Solid(layer int, x, y float64) (id int, inBounds bool) {
	if !m.InBounds(x, y) {
		return TileEmpty, false
	}
	tileX, tileY := m.TileIndex(x, y)
	return m.TileAt(layer, tileX, tileY)
}

// TileIndex floors world coordinates into tile indices.
func (m *GridMap) TileIndex(x, y float64) (int, int) {
	return int(math.Floor(x / m.blockSize)), int(math.Floor(y / m.blockSize))
}

// IsTileBlocking implements collision.TileChecker against layer 0.
func (m *GridMap) IsTileBlocking(tileX, tileY int) bool {
	id, ok := m.TileAt(0, tileX, tileY)
	return ok && id != TileEmpty
}

// GetWorldBounds implements collision.TileChecker.
func (m *GridMap) GetWorldBounds() (width, height int) {
	return m.width, m.length
}
