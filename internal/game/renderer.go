package game

import (
	"image"
	"image/color"

	"yaraycaster/internal/frame"
	"yaraycaster/internal/graphics"
	"yaraycaster/internal/projector"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	gridColor    = color.RGBA{30, 30, 30, 255}
	playerColor  = color.RGBA{255, 220, 0, 255}
	pointerColor = color.RGBA{255, 220, 0, 255}
	rayColor     = color.RGBA{0, 200, 80, 160}
	mapBgColor   = color.RGBA{0, 0, 0, 160}
)

// Renderer draws a frame.Result with ebiten.
type Renderer struct {
	game *Game
	// Floor rendering buffers, reused every frame
	floorImage  *ebiten.Image
	floorPixels []byte
}

// NewRenderer creates a new renderer
func NewRenderer(game *Game) *Renderer {
	w, h := game.config.GetScreenWidth(), game.config.GetScreenHeight()
	return &Renderer{
		game:        game,
		floorImage:  ebiten.NewImage(w, h),
		floorPixels: make([]byte, w*h*4),
	}
}

// Draw renders sky, ground, walls and then the overlays.
func (r *Renderer) Draw(screen *ebiten.Image, res frame.Result) {
	cfg := r.game.config
	w, h := float32(cfg.GetScreenWidth()), float32(cfg.GetScreenHeight())

	vector.DrawFilledRect(screen, 0, 0, w, h/2, graphics.RGB(cfg.Graphics.Sky), false)
	if r.game.floorPass {
		FloorPass(r.floorPixels, cfg.GetScreenWidth(), cfg.GetScreenHeight(), res.Player,
			cfg.GetBlockSize(), cfg.GetFOV(), cfg.Graphics.Ground)
		r.floorImage.WritePixels(r.floorPixels)
		screen.DrawImage(r.floorImage, nil)
	} else {
		vector.DrawFilledRect(screen, 0, h/2, w, h/2, graphics.RGB(cfg.Graphics.Ground), false)
	}

	r.drawWalls(screen, res.Strips)
	if r.game.showMap {
		r.drawMinimap(screen, res.Overlay)
	}
}

// drawWalls scales one texture column per strip. Strips arrive upper layers
// first, so lower layers end up on top where they overlap.
func (r *Renderer) drawWalls(screen *ebiten.Image, strips []projector.Strip) {
	size := r.game.textures.Size()
	for _, st := range strips {
		tex := r.game.textures.GetTexture(st.Texture, r.game.tiles, st.TileID)
		col := tex.SubImage(image.Rect(st.TextureColumn, 0, st.TextureColumn+1, size)).(*ebiten.Image)

		opts := &ebiten.DrawImageOptions{}
		opts.GeoM.Scale(float64(st.Width), st.Height/float64(size))
		opts.GeoM.Translate(float64(st.Column), st.Top)
		screen.DrawImage(col, opts)
	}
}

// drawMinimap scales the top-down overlay into the upper left corner.
func (r *Renderer) drawMinimap(screen *ebiten.Image, ov projector.Overlay) {
	scale := float32(r.game.config.Graphics.MapScale)
	ww, wh := r.game.pipeline.Map.WorldSize()
	vector.DrawFilledRect(screen, 0, 0, float32(ww)*scale, float32(wh)*scale, mapBgColor, false)

	for _, rc := range ov.Rects {
		var clr color.Color
		switch rc.Kind {
		case projector.KindBlock:
			clr = graphics.RGB(r.game.tiles.ColorFor(rc.TileID))
		case projector.KindGrid:
			clr = gridColor
		default:
			clr = playerColor
		}
		w, h := max(float32(rc.W)*scale, 1), max(float32(rc.H)*scale, 1)
		vector.DrawFilledRect(screen, float32(rc.X)*scale, float32(rc.Y)*scale, w, h, clr, false)
	}
	for _, ln := range ov.Lines {
		clr, width := rayColor, float32(1)
		if ln.Kind == projector.KindPointer {
			clr, width = pointerColor, 2
		}
		vector.StrokeLine(screen, float32(ln.X1)*scale, float32(ln.Y1)*scale,
			float32(ln.X2)*scale, float32(ln.Y2)*scale, width, clr, false)
	}
}
