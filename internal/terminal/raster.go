// Package terminal draws projected strips as character cells, for a local
// tcell screen or a raw ANSI stream.
package terminal

import (
	"yaraycaster/internal/projector"
	"yaraycaster/internal/world"
)

// Cell is one character with RGB colours.
type Cell struct {
	Ch     rune
	Fg, Bg [3]uint8
}

// Grid is a row-major block of cells.
type Grid struct {
	W, H  int
	Cells []Cell
}

// NewGrid creates a blank w x h grid.
func NewGrid(w, h int) *Grid {
	return &Grid{W: w, H: h, Cells: make([]Cell, w*h)}
}

// At returns the cell at column x, row y.
func (g *Grid) At(x, y int) Cell {
	return g.Cells[y*g.W+x]
}

func (g *Grid) set(x, y int, c Cell) {
	if x < 0 || y < 0 || x >= g.W || y >= g.H {
		return
	}
	g.Cells[y*g.W+x] = c
}

// ColorSource gives the flat colour of a tile.
type ColorSource interface {
	ColorFor(id int) [3]int
}

// Palette styles the rasterized view.
type Palette struct {
	Sky    [3]uint8
	Ground [3]uint8
	Tiles  ColorSource
	// Depth is the distance at which walls fade to blank.
	Depth float64
}

// wall shades, near to far
var wallShades = []rune{'█', '▓', '▒', '░'}

// floor shades, horizon to feet
var floorShades = []rune{' ', '-', '.', 'x', '#'}

// Rasterize paints strips, in order, over a sky and floor background.
func Rasterize(strips []projector.Strip, w, h int, pal Palette) *Grid {
	g := NewGrid(w, h)
	half := h / 2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if y < half {
				g.set(x, y, Cell{Ch: ' ', Bg: pal.Sky})
				continue
			}
			g.set(x, y, Cell{Ch: floorShade(y, h), Fg: pal.Ground})
		}
	}

	for _, s := range strips {
		top := int(s.Top)
		bottom := int(s.Top + s.Height)
		ch := wallShade(s.Distance, pal.Depth)
		fg := tileColor(pal.Tiles, s.TileID, s.Side)
		for y := max(top, 0); y < min(bottom, h); y++ {
			for x := s.Column; x < s.Column+s.Width; x++ {
				g.set(x, y, Cell{Ch: ch, Fg: fg})
			}
		}
	}
	return g
}

func wallShade(distance, depth float64) rune {
	if depth <= 0 {
		return wallShades[0]
	}
	switch {
	case distance <= depth/4:
		return wallShades[0]
	case distance <= depth/2:
		return wallShades[1]
	case distance <= depth*3/4:
		return wallShades[2]
	default:
		return wallShades[3]
	}
}

func floorShade(y, h int) rune {
	half := float64(h) / 2
	b := (float64(y) - half) / half
	idx := int(b * float64(len(floorShades)))
	return floorShades[min(max(idx, 0), len(floorShades)-1)]
}

func tileColor(tiles ColorSource, id int, side world.HitSide) [3]uint8 {
	rgb := [3]int{200, 200, 200}
	if tiles != nil {
		rgb = tiles.ColorFor(id)
	}
	var c [3]uint8
	for i, v := range rgb {
		if side == world.SideVertical {
			v = v * 6 / 10
		}
		c[i] = uint8(min(max(v, 0), 255))
	}
	return c
}
