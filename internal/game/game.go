// Package game is the windowed ebiten front end.
package game

import (
	"fmt"
	"log"

	"yaraycaster/internal/audio"
	"yaraycaster/internal/config"
	"yaraycaster/internal/frame"
	"yaraycaster/internal/graphics"
	"yaraycaster/internal/stream"
	"yaraycaster/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// LocalSession names the windowed player on the stream.
const LocalSession = "local"

// Game implements ebiten.Game around a frame pipeline.
type Game struct {
	config   *config.Config
	pipeline *frame.Pipeline
	tiles    *world.TileManager
	textures *graphics.TextureManager
	sound    *audio.SoundManager
	hub      *stream.Hub

	input    *InputHandler
	renderer *Renderer
	last     frame.Result
	ticks    uint64

	showMap   bool
	showFPS   bool
	floorPass bool
}

// NewGame wires a pipeline to the window. sound and hub may be nil.
func NewGame(cfg *config.Config, pipeline *frame.Pipeline, tiles *world.TileManager,
	sound *audio.SoundManager, hub *stream.Hub) *Game {
	g := &Game{
		config:    cfg,
		pipeline:  pipeline,
		tiles:     tiles,
		textures:  graphics.NewTextureManager(cfg.Graphics.TexturesDir, cfg.Graphics.TextureSize),
		sound:     sound,
		hub:       hub,
		input:     NewInputHandler(),
		showMap:   cfg.Graphics.ShowMap,
		showFPS:   cfg.Display.ShowFPS,
		floorPass: cfg.Graphics.FloorPass,
	}
	g.textures.Preload(tiles.TextureKeys(), tiles)
	g.renderer = NewRenderer(g)
	pipeline.WithOverlay = g.showMap
	return g
}

// Update advances the simulation by one tick.
func (g *Game) Update() error {
	in := g.input.HandleInput()
	if in.Quit {
		return ebiten.Termination
	}
	if in.ToggleMap {
		g.showMap = !g.showMap
		g.pipeline.WithOverlay = g.showMap
	}
	if in.ToggleFPS {
		g.showFPS = !g.showFPS
		if g.showFPS {
			g.pipeline.Monitor.Reset()
		}
	}
	if in.Floor {
		g.floorPass = !g.floorPass
	}

	g.last = g.pipeline.Step(in.Commands)
	g.ticks++
	if g.last.Player.Fired && g.sound != nil {
		g.sound.PlayShot()
	}
	if g.hub != nil {
		if _, err := g.hub.Publish(LocalSession, g.last); err != nil {
			log.Printf("Warning: stream publish: %v", err)
		}
	}
	return nil
}

// Draw renders the most recent tick.
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.last)
	if g.showFPS {
		p := g.last.Player
		lines := append(g.statusLines(), fmt.Sprintf("X:%.0f Y:%.0f A:%.0f TPS:%.0f", p.X, p.Y, p.Angle, ebiten.ActualTPS()))
		y := g.config.GetScreenHeight() - 16*len(lines)
		for _, line := range lines {
			ebitenutil.DebugPrintAt(screen, line, 4, y)
			y += 16
		}
	}
}

// statusLines is the metrics line followed by one line per active alert.
func (g *Game) statusLines() []string {
	lines := []string{g.pipeline.Monitor.GetCurrentMetrics().String()}
	for _, a := range g.pipeline.Monitor.CheckPerformanceAlerts() {
		lines = append(lines, a.String())
	}
	return lines
}

// Layout keeps the logical screen at the configured size; ebiten scales it
// to the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return g.config.GetScreenWidth(), g.config.GetScreenHeight()
}

// Close releases audio, disconnects stream viewers and logs the session stats.
func (g *Game) Close() {
	frame.LogStats(LocalSession, g.pipeline.Monitor)
	if g.sound != nil {
		g.sound.Cleanup()
	}
	if g.hub != nil {
		g.hub.Close()
	}
}
