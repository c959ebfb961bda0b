package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"yaraycaster/internal/config"
	"yaraycaster/internal/frame"
	"yaraycaster/internal/mathutil"
	"yaraycaster/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	windowWidth  = 1200
	windowHeight = 800
	sidebarWidth = 300
)

type mapInfo struct {
	Key  string
	Data *world.MapData
	Grid *world.GridMap
	// Spawn is the resolved start pose in world units
	Spawn world.Spawn
	Err   error
}

type viewer struct {
	maps        []mapInfo
	mapIndex    int
	layer       int
	showLegend  bool
	legendLines []string
	tileManager *world.TileManager
}

func main() {
	ensureRuntimeCWD()

	configPath := flag.String("config", "config.yaml", "path to the yaml config")
	mapsDir := flag.String("maps", "assets/maps", "directory of map files")
	flag.Parse()

	cfg := config.MustLoadConfig(*configPath)
	tm := frame.LoadTiles(cfg)

	maps, err := loadMaps(*mapsDir, cfg.GetBlockSize())
	if err != nil {
		log.Fatalf("Failed to load maps: %v", err)
	}
	if len(maps) == 0 {
		m, spawn, err := world.DefaultMap().Build(cfg.GetBlockSize())
		maps = append(maps, mapInfo{Key: "default (built in)", Data: world.DefaultMap(), Grid: m, Spawn: spawn, Err: err})
	}

	v := &viewer{
		maps:        maps,
		legendLines: buildLegendLines(tm),
		tileManager: tm,
	}

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("Map Viewer")
	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		v.showLegend = !v.showLegend
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyRight) || inpututil.IsKeyJustPressed(ebiten.KeyD) {
		v.mapIndex = (v.mapIndex + 1) % len(v.maps)
		v.layer = 0
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) || inpututil.IsKeyJustPressed(ebiten.KeyA) {
		v.mapIndex = (v.mapIndex + len(v.maps) - 1) % len(v.maps)
		v.layer = 0
	}
	if g := v.maps[v.mapIndex].Grid; g != nil {
		if inpututil.IsKeyJustPressed(ebiten.KeyUp) || inpututil.IsKeyJustPressed(ebiten.KeyW) {
			v.layer = min(v.layer+1, g.Layers()-1)
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyDown) || inpututil.IsKeyJustPressed(ebiten.KeyS) {
			v.layer = max(v.layer-1, 0)
		}
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{18, 18, 24, 255})
	m := v.maps[v.mapIndex]

	panelW := windowWidth - sidebarWidth
	drawMapHeader(screen, m, v.layer, 0, 0)
	if m.Err != nil {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("map %s failed to load: %v", m.Key, m.Err), 16, 48)
	} else {
		drawMapPanel(screen, m, v.layer, 0, 40, panelW, windowHeight-40, v.tileManager)
	}

	drawFilledRect(screen, panelW, 0, sidebarWidth, windowHeight, color.RGBA{30, 30, 40, 255})
	if v.showLegend {
		drawLines(screen, panelW, 0, v.legendLines)
	} else {
		drawLines(screen, panelW, 0, infoLines(m))
	}
}

func (v *viewer) Layout(_, _ int) (int, int) {
	return windowWidth, windowHeight
}

func drawMapHeader(screen *ebiten.Image, m mapInfo, layer, x, y int) {
	title := fmt.Sprintf("Map: %s  layer %d", m.Key, layer)
	ebitenutil.DebugPrintAt(screen, title, x+12, y+8)
	ebitenutil.DebugPrintAt(screen, "Left/Right switch maps, Up/Down switch layers, Tab legend, Esc quit", x+12, y+24)
}

func drawMapPanel(screen *ebiten.Image, m mapInfo, layer, x, y, w, h int, tm *world.TileManager) {
	g := m.Grid
	tileSize := min((w-24)/g.Width(), (h-24)/g.Length())
	if tileSize <= 0 {
		ebitenutil.DebugPrintAt(screen, "invalid map size", x+12, y+12)
		return
	}
	originX, originY := x+12, y+12

	for ty := 0; ty < g.Length(); ty++ {
		for tx := 0; tx < g.Width(); tx++ {
			clr := color.RGBA{50, 50, 50, 255}
			id, _ := g.TileAt(layer, tx, ty)
			if id != world.TileEmpty {
				clr = colorFromRGB(tm.ColorFor(id), 255)
			}
			drawFilledRect(screen, originX+tx*tileSize, originY+ty*tileSize, tileSize, tileSize, clr)
			drawRectBorder(screen, originX+tx*tileSize, originY+ty*tileSize, tileSize, tileSize, 1, color.RGBA{0, 0, 0, 255})
		}
	}

	// Start marker and facing
	scale := float32(tileSize) / float32(g.BlockSize())
	sx := float32(originX) + float32(m.Spawn.X)*scale
	sy := float32(originY) + float32(m.Spawn.Y)*scale
	cyan := color.RGBA{0, 220, 220, 255}
	vector.DrawFilledCircle(screen, sx, sy, float32(tileSize)/6, cyan, true)
	dx, dy := mathutil.Direction(m.Spawn.Angle)
	vector.StrokeLine(screen, sx, sy, sx+float32(dx)*float32(tileSize)/2, sy+float32(dy)*float32(tileSize)/2, 2, cyan, true)
}

func infoLines(m mapInfo) []string {
	lines := []string{"Info", "", "Key: " + m.Key}
	if m.Err != nil {
		return append(lines, "Error:", m.Err.Error())
	}
	if m.Data.Name != "" {
		lines = append(lines, "Name: "+m.Data.Name)
	}
	lines = append(lines,
		fmt.Sprintf("Size: %dx%d", m.Grid.Width(), m.Grid.Length()),
		fmt.Sprintf("Layers: %d", m.Grid.Layers()),
		fmt.Sprintf("Start: %.0f, %.0f facing %.0f", m.Spawn.X, m.Spawn.Y, m.Spawn.Angle),
		"",
		"Markers:",
		"Cyan: start and facing",
	)
	return lines
}

func drawLines(screen *ebiten.Image, x, y int, lines []string) {
	row := y + 12
	for _, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, x+12, row)
		row += 16
	}
}

// loadMaps reads every map file in dir, sorted by file name. Files that fail
// to parse are kept so the viewer can show the error.
func loadMaps(dir string, blockSize float64) ([]mapInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var maps []mapInfo
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		info := mapInfo{Key: e.Name()}
		info.Data, info.Err = world.LoadMapFile(filepath.Join(dir, e.Name()))
		if info.Err == nil {
			info.Grid, info.Spawn, info.Err = info.Data.Build(blockSize)
		}
		maps = append(maps, info)
	}
	sort.Slice(maps, func(i, j int) bool { return maps[i].Key < maps[j].Key })
	return maps, nil
}

func buildLegendLines(tm *world.TileManager) []string {
	lines := []string{"Tiles (id -> name, textures)", ""}
	keys := tm.TextureKeys()
	ids := make(map[int][]string)
	for key, id := range keys {
		ids[id] = append(ids[id], key)
	}
	sorted := make([]int, 0, len(ids))
	for id := range ids {
		sorted = append(sorted, id)
	}
	sort.Ints(sorted)
	for _, id := range sorted {
		name := "?"
		if data := tm.GetTileData(id); data != nil {
			name = data.Name
		}
		sort.Strings(ids[id])
		lines = append(lines, fmt.Sprintf("%d -> %s [%s]", id, name, strings.Join(ids[id], ", ")))
	}
	if len(sorted) == 0 {
		lines = append(lines, "no tile file, ids use tile_<id>")
	}
	return lines
}

func colorFromRGB(rgb [3]int, a uint8) color.RGBA {
	return color.RGBA{uint8(rgb[0]), uint8(rgb[1]), uint8(rgb[2]), a}
}

func drawFilledRect(screen *ebiten.Image, x, y, w, h int, clr color.RGBA) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), clr, false)
}

func drawRectBorder(screen *ebiten.Image, x, y, w, h, thickness int, clr color.RGBA) {
	t := float32(thickness)
	fx := float32(x)
	fy := float32(y)
	fw := float32(w)
	fh := float32(h)
	vector.DrawFilledRect(screen, fx, fy, fw, t, clr, false)
	vector.DrawFilledRect(screen, fx, fy+fh-t, fw, t, clr, false)
	vector.DrawFilledRect(screen, fx, fy, t, fh, clr, false)
	vector.DrawFilledRect(screen, fx+fw-t, fy, t, fh, clr, false)
}

// ensureRuntimeCWD moves to the executable directory when started outside
// the repository root.
func ensureRuntimeCWD() {
	if _, err := os.Stat("config.yaml"); err == nil {
		return
	}
	exe, err := os.Executable()
	if err != nil {
		return
	}
	execDir := filepath.Dir(exe)
	_ = os.Chdir(execDir)
}
