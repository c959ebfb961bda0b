package world

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Spawn is the player start pose stored with a map.
type Spawn struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Angle float64 `yaml:"angle"`
}

// MapData contains the loaded map information
type MapData struct {
	Name   string    `yaml:"name"`
	Player *Spawn    `yaml:"player,omitempty"`
	Layers [][][]int `yaml:"layers"`

	spawnInTiles bool
}

// spawnMarker in a text map marks an empty layer-0 tile as the start tile.
const spawnMarker = "@"

// layerSeparator splits stacked layers in a text map.
const layerSeparator = "---"

// LoadMapFile loads a map from the specified file path. Files ending in .yaml
// or .yml are parsed as yaml, everything else as the text grid format.
func LoadMapFile(mapPath string) (*MapData, error) {
	file, err := os.Open(mapPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open map file %s: %w", mapPath, err)
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(mapPath)) {
	case ".yaml", ".yml":
		return ParseYAMLMap(file)
	default:
		return ParseTextMap(file)
	}
}

// ParseYAMLMap reads the yaml map format.
func ParseYAMLMap(r io.Reader) (*MapData, error) {
	var data MapData
	if err := yaml.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to parse map: %w", err)
	}
	if len(data.Layers) == 0 {
		return nil, ErrEmptyMap
	}
	return &data, nil
}

// ParseTextMap reads rows of whitespace or comma separated tile ids. Lines
// starting with # are comments, a line holding only --- starts the next layer
// and a single @ token on layer 0 marks the spawn tile (facing 0 degrees).
func ParseTextMap(r io.Reader) (*MapData, error) {
	data := &MapData{}
	var current [][]int
	var spawnTile *[2]int
	scanner := bufio.NewScanner(r)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		// Skip empty lines and comment lines
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if line == layerSeparator {
			if len(current) > 0 {
				data.Layers = append(data.Layers, current)
			}
			current = nil
			continue
		}

		fields := strings.FieldsFunc(line, func(r rune) bool {
			return r == ' ' || r == '\t' || r == ','
		})
		row := make([]int, 0, len(fields))
		for col, field := range fields {
			if field == spawnMarker {
				if len(data.Layers) != 0 {
					return nil, fmt.Errorf("line %d: spawn marker is only allowed on layer 0", lineNo)
				}
				spawnTile = &[2]int{col, len(current)}
				row = append(row, TileEmpty)
				continue
			}
			id, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid tile %q: %w", lineNo, field, err)
			}
			row = append(row, id)
		}
		current = append(current, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading map file: %w", err)
	}
	if len(current) > 0 {
		data.Layers = append(data.Layers, current)
	}
	if len(data.Layers) == 0 {
		return nil, fmt.Errorf("map file contains no valid map data: %w", ErrEmptyMap)
	}

	// The spawn point is resolved in tile units; Build converts to world units.
	if spawnTile != nil {
		data.Player = &Spawn{X: float64(spawnTile[0]) + 0.5, Y: float64(spawnTile[1]) + 0.5}
		data.spawnInTiles = true
	}
	return data, nil
}

// Build validates the layers into a GridMap and resolves the spawn pose. A
// spawn must lie on an empty layer-0 tile. Maps without a spawn start at the
// centre of the first empty layer-0 tile.
func (md *MapData) Build(blockSize float64) (*GridMap, Spawn, error) {
	gm, err := NewGridMap(blockSize, md.Layers)
	if err != nil {
		return nil, Spawn{}, fmt.Errorf("map %q: %w", md.Name, err)
	}

	if md.Player != nil {
		spawn := *md.Player
		if md.spawnInTiles {
			spawn.X *= blockSize
			spawn.Y *= blockSize
		}
		if id, in := gm.Solid(0, spawn.X, spawn.Y); !in || id != TileEmpty || math.IsNaN(spawn.Angle) {
			return nil, Spawn{}, fmt.Errorf("map %q: %w: (%v, %v)", md.Name, ErrBadSpawn, spawn.X, spawn.Y)
		}
		return gm, spawn, nil
	}

	for y := 0; y < gm.Length(); y++ {
		for x := 0; x < gm.Width(); x++ {
			if id, _ := gm.TileAt(0, x, y); id == TileEmpty {
				return gm, Spawn{X: (float64(x) + 0.5) * blockSize, Y: (float64(y) + 0.5) * blockSize}, nil
			}
		}
	}
	return gm, Spawn{X: blockSize / 2, Y: blockSize / 2}, nil
}

// DefaultMap is the built-in 8x8 level: a closed room with a few interior
// walls on layer 0 and a second storey of the outer ring on layer 1.
func DefaultMap() *MapData {
	ground := [][]int{
		{1, 1, 1, 1, 1, 1, 1, 1},
		{1, 0, 0, 0, 0, 0, 1, 1},
		{1, 0, 1, 0, 0, 0, 0, 1},
		{1, 0, 1, 0, 0, 1, 0, 1},
		{1, 0, 1, 0, 0, 1, 0, 1},
		{1, 0, 0, 0, 0, 1, 0, 1},
		{1, 1, 0, 1, 0, 1, 0, 1},
		{1, 1, 1, 1, 1, 1, 1, 1},
	}
	upper := [][]int{
		{2, 2, 2, 2, 2, 2, 2, 2},
		{2, 0, 0, 0, 0, 0, 0, 2},
		{2, 0, 0, 0, 0, 0, 0, 2},
		{2, 0, 0, 0, 0, 3, 0, 2},
		{2, 0, 0, 0, 0, 3, 0, 2},
		{2, 0, 0, 0, 0, 0, 0, 2},
		{2, 0, 0, 0, 0, 0, 0, 2},
		{2, 2, 2, 2, 2, 2, 2, 2},
	}
	return &MapData{
		Name:   "default",
		Player: &Spawn{X: 256, Y: 256, Angle: 60},
		Layers: [][][]int{ground, upper},
	}
}
