package projector

import (
	"yaraycaster/internal/player"
	"yaraycaster/internal/raycast"
	"yaraycaster/internal/world"
)

// Kind tags an overlay primitive so the renderer can pick a colour.
type Kind uint8

const (
	KindBlock Kind = iota
	KindGrid
	KindPlayer
	KindPointer
	KindRay
)

const (
	playerMarkerSize = 8
	pointerLength    = 20
)

// Rect is a filled rectangle in world units.
type Rect struct {
	Kind       Kind
	X, Y, W, H float64
	TileID     int
}

// Line is a segment in world units.
type Line struct {
	Kind           Kind
	X1, Y1, X2, Y2 float64
}

// Overlay is the top-down view of layer 0: blocks, grid lines, the player
// marker and its direction pointer, and one line per ray hit.
type Overlay struct {
	Rects []Rect
	Lines []Line
}

// Overlay builds the 2D map primitives. The renderer scales them to the
// minimap size.
func (pr *Projector) Overlay(p *player.Player, m *world.GridMap, fan *raycast.Fan) Overlay {
	block := m.BlockSize()
	ov := Overlay{
		Rects: make([]Rect, 0, m.Width()*m.Length()*3+1),
	}

	for ty := 0; ty < m.Length(); ty++ {
		for tx := 0; tx < m.Width(); tx++ {
			x, y := float64(tx)*block, float64(ty)*block
			if id, _ := m.TileAt(0, tx, ty); id != world.TileEmpty {
				ov.Rects = append(ov.Rects, Rect{Kind: KindBlock, X: x, Y: y, W: block, H: block, TileID: id})
			}
			ov.Rects = append(ov.Rects,
				Rect{Kind: KindGrid, X: x + block - 1, Y: y, W: 1, H: block},
				Rect{Kind: KindGrid, X: x, Y: y + block - 1, W: block, H: 1},
			)
		}
	}

	half := float64(playerMarkerSize) / 2
	ov.Rects = append(ov.Rects, Rect{
		Kind: KindPlayer,
		X:    p.X - half, Y: p.Y - half,
		W: playerMarkerSize, H: playerMarkerSize,
	})

	ov.Lines = make([]Line, 0, fan.Len()+1)
	ov.Lines = append(ov.Lines, Line{
		Kind: KindPointer,
		X1:   p.X, Y1: p.Y,
		X2: p.X + p.DirX*pointerLength, Y2: p.Y + p.DirY*pointerLength,
	})
	if fan.Layers() > 0 {
		for _, r := range fan.Layer(0) {
			if r.Hit() {
				ov.Lines = append(ov.Lines, Line{Kind: KindRay, X1: p.X, Y1: p.Y, X2: r.HitX, Y2: r.HitY})
			}
		}
	}
	return ov
}
