package terminal

import (
	"yaraycaster/internal/config"
)

// depthBlocks is how many blocks away walls fade out in character cells.
const depthBlocks = 8

// PaletteFromConfig colours the terminal view like the windowed one.
func PaletteFromConfig(cfg *config.Config, tiles ColorSource) Palette {
	return Palette{
		Sky:    rgb8(cfg.Graphics.Sky),
		Ground: rgb8(cfg.Graphics.Ground),
		Tiles:  tiles,
		Depth:  depthBlocks * cfg.GetBlockSize(),
	}
}

func rgb8(c [3]int) [3]uint8 {
	var out [3]uint8
	for i, v := range c {
		out[i] = uint8(min(max(v, 0), 255))
	}
	return out
}
