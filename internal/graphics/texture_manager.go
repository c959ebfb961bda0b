package graphics

import (
	"errors"
	"image"
	"io/fs"
	"log"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// ColorSource gives the flat colour of a tile for placeholder textures.
type ColorSource interface {
	ColorFor(id int) [3]int
}

// TextureManager caches wall textures as ebiten images keyed by texture key.
type TextureManager struct {
	textures map[string]*ebiten.Image
	dir      string
	size     int
}

// NewTextureManager creates a manager that loads <dir>/<key>.png on demand
func NewTextureManager(dir string, size int) *TextureManager {
	return &TextureManager{
		textures: make(map[string]*ebiten.Image),
		dir:      dir,
		size:     size,
	}
}

// Size is the edge length every texture is normalized to.
func (tm *TextureManager) Size() int { return tm.size }

// Preload builds every key up front so Draw never touches the disk.
func (tm *TextureManager) Preload(keys map[string]int, colors ColorSource) {
	for key, id := range keys {
		tm.textures[key] = ebiten.NewImageFromImage(tm.build(key, colors, id))
	}
}

// GetTexture returns the texture for key, building a placeholder coloured
// for tileID when no file exists.
func (tm *TextureManager) GetTexture(key string, colors ColorSource, tileID int) *ebiten.Image {
	if tex, exists := tm.textures[key]; exists {
		return tex
	}
	tex := ebiten.NewImageFromImage(tm.build(key, colors, tileID))
	tm.textures[key] = tex
	return tex
}

func (tm *TextureManager) build(key string, colors ColorSource, tileID int) image.Image {
	img, err := LoadTexture(filepath.Join(tm.dir, key+".png"), tm.size)
	if err == nil {
		return img
	}
	if !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Warning: texture %s: %v", key, err)
	}

	// A missing dark variant is derived from its base texture
	if base, ok := strings.CutSuffix(key, "_dark"); ok {
		return Darken(tm.build(base, colors, tileID), DarkFactor)
	}

	base := RGB([3]int{128, 128, 128})
	if colors != nil {
		base = RGB(colors.ColorFor(tileID))
	}
	return Placeholder(tm.size, base)
}
