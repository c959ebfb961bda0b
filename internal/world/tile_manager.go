package world

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TileData describes how a solid tile id is drawn.
type TileData struct {
	Name string `yaml:"name"`
	// Texture is used for faces hit across horizontal grid lines.
	Texture string `yaml:"texture"`
	// VerticalTexture is used for faces hit across vertical grid lines.
	// Empty falls back to "<texture>_dark".
	VerticalTexture string `yaml:"vertical_texture"`
	Color           [3]int `yaml:"color"`
}

// TileConfig is the yaml document holding tile definitions keyed by id.
type TileConfig struct {
	Tiles map[int]TileData `yaml:"tiles"`
}

// TileManager handles tile configuration and texture selection
type TileManager struct {
	tileData map[int]*TileData
}

// defaultPalette colours tiles that have no configuration.
var defaultPalette = [][3]int{
	{200, 200, 200},
	{180, 80, 60},
	{60, 120, 180},
	{90, 160, 70},
	{200, 170, 60},
	{150, 90, 170},
}

// NewTileManager creates a new tile manager
func NewTileManager() *TileManager {
	return &TileManager{
		tileData: make(map[int]*TileData),
	}
}

// LoadTileConfig loads tile configuration from a YAML file
func (tm *TileManager) LoadTileConfig(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read tile config file: %w", err)
	}

	var tileConfig TileConfig
	if err := yaml.Unmarshal(data, &tileConfig); err != nil {
		return fmt.Errorf("failed to parse tile config: %w", err)
	}

	tm.tileData = make(map[int]*TileData, len(tileConfig.Tiles))
	for id, tileData := range tileConfig.Tiles {
		if id <= TileEmpty {
			return fmt.Errorf("tile config: id %d is reserved or negative: %w", id, ErrNegativeTile)
		}
		// Make a copy to avoid pointer issues
		tileCopy := tileData
		tm.tileData[id] = &tileCopy
	}
	return nil
}

// Register adds or replaces a tile definition.
func (tm *TileManager) Register(id int, data TileData) {
	tm.tileData[id] = &data
}

// GetTileData returns the configuration data for a tile id
func (tm *TileManager) GetTileData(id int) *TileData {
	return tm.tileData[id]
}

// TextureFor picks the texture key for a hit. Vertical faces get their own
// (by default darker) texture to fake a directional light.
func (tm *TileManager) TextureFor(id int, side HitSide) string {
	base := fmt.Sprintf("tile_%d", id)
	var vertical string
	if data := tm.GetTileData(id); data != nil {
		if data.Texture != "" {
			base = data.Texture
		}
		vertical = data.VerticalTexture
	}
	if side != SideVertical {
		return base
	}
	if vertical == "" {
		vertical = base + "_dark"
	}
	return vertical
}

// ColorFor returns the flat colour of a tile, used by the minimap and the
// terminal renderers.
func (tm *TileManager) ColorFor(id int) [3]int {
	if data := tm.GetTileData(id); data != nil && data.Color != [3]int{} {
		return data.Color
	}
	if id <= TileEmpty {
		return [3]int{0, 0, 0}
	}
	return defaultPalette[(id-1)%len(defaultPalette)]
}

// TextureKeys maps every texture key referenced by the configuration, both
// faces included, to the tile id that uses it.
func (tm *TileManager) TextureKeys() map[string]int {
	keys := make(map[string]int, len(tm.tileData)*2)
	for id := range tm.tileData {
		keys[tm.TextureFor(id, SideHorizontal)] = id
		keys[tm.TextureFor(id, SideVertical)] = id
	}
	return keys
}
