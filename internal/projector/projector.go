// Package projector turns a ray fan into screen strips and 2D overlay
// primitives. It draws nothing itself.
package projector

import (
	"fmt"
	"math"

	"yaraycaster/internal/raycast"
	"yaraycaster/internal/world"
)

// TextureSelector maps a tile id and the face that was hit to a texture key.
// *world.TileManager satisfies it.
type TextureSelector interface {
	TextureFor(id int, side world.HitSide) string
}

// Settings is the screen geometry the projector targets.
type Settings struct {
	ScreenWidth  int
	ScreenHeight int
	BlockSize    float64
	// TextureSize is the edge length of a square wall texture in pixels.
	TextureSize int
	// StripWidth is the screen width covered by one ray.
	StripWidth int
}

// Strip is one textured vertical rectangle. Strips are emitted in draw order.
type Strip struct {
	Column int
	Width  int
	// Top may be negative when the strip is taller than the screen.
	Top           float64
	Height        float64
	Texture       string
	TextureColumn int
	Layer         int
	Ray           int
	Distance      float64
	TileID        int
	Side          world.HitSide
}

// Projector converts corrected distances into screen geometry.
type Projector struct {
	cfg      Settings
	textures TextureSelector
}

// MinStripDistance bounds the distance used for strip height. A player
// standing on the boundary line of a solid tile hits it at distance 0.
const MinStripDistance = 1.0

// New creates a projector. A nil selector names textures "tile_<id>".
func New(cfg Settings, textures TextureSelector) *Projector {
	if textures == nil {
		textures = defaultTextures{}
	}
	return &Projector{cfg: cfg, textures: textures}
}

type defaultTextures struct{}

func (defaultTextures) TextureFor(id int, _ world.HitSide) string {
	return fmt.Sprintf("tile_%d", id)
}

// Settings returns the configured geometry.
func (pr *Projector) Settings() Settings { return pr.cfg }

// StripHeight is the projected height of a wall at corrected distance d.
func (pr *Projector) StripHeight(d float64) float64 {
	return pr.cfg.BlockSize * float64(pr.cfg.ScreenHeight) / d
}

// StripTop places a strip of height h centred on the horizon. Strips taller
// than the screen extend past both edges.
func (pr *Projector) StripTop(h float64) float64 {
	screen := float64(pr.cfg.ScreenHeight)
	if h > screen {
		return (screen - h) / 2
	}
	return math.Max(0, screen/2-h/2)
}

// Column returns the screen x of ray i. Ray 0 is the rightmost strip.
func (pr *Projector) Column(i int) int {
	return pr.cfg.ScreenWidth - (i+1)*pr.cfg.StripWidth
}

// Project builds the strips for every hit in fan, top layer first so that
// lower layers are drawn over it.
func (pr *Projector) Project(fan *raycast.Fan, m *world.GridMap) []Strip {
	strips := make([]Strip, 0, fan.Layers()*fan.Len())
	for layer := fan.Layers() - 1; layer >= 0; layer-- {
		strips = pr.projectLayer(strips, fan.Layer(layer), layer, m.BlockSize())
	}
	return strips
}

func (pr *Projector) projectLayer(strips []Strip, rays []raycast.Ray, layer int, block float64) []Strip {
	var prev raycast.Ray
	cut := 0
	for i, r := range rays {
		if !r.Hit() {
			prev = r
			continue
		}

		if i > 0 && r.SameTile(prev) {
			cut = max(0, cut-pr.cfg.StripWidth)
		} else {
			cut = pr.textureColumn(r, block)
		}
		prev = r

		h := pr.StripHeight(math.Max(r.Distance, MinStripDistance))
		strips = append(strips, Strip{
			Column:        pr.Column(i),
			Width:         pr.cfg.StripWidth,
			Top:           pr.StripTop(h) - float64(layer)*h,
			Height:        h,
			Texture:       pr.textures.TextureFor(r.TileID, r.Side),
			TextureColumn: cut,
			Layer:         layer,
			Ray:           i,
			Distance:      r.Distance,
			TileID:        r.TileID,
			Side:          r.Side,
		})
	}
	return strips
}

// textureColumn maps the hit position along the wall face to a column of a
// TextureSize wide texture.
func (pr *Projector) textureColumn(r raycast.Ray, block float64) int {
	along := r.HitX
	if r.Side == world.SideVertical {
		along = r.HitY
	}
	offset := math.Mod(along, block)
	if offset < 0 {
		offset += block
	}
	col := int(offset * float64(pr.cfg.TextureSize) / block)
	return min(max(col, 0), pr.cfg.TextureSize-1)
}
