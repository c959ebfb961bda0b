package main

import (
	"errors"
	"flag"
	"log"
	"net/http"

	"yaraycaster/internal/audio"
	"yaraycaster/internal/config"
	"yaraycaster/internal/frame"
	"yaraycaster/internal/game"
	"yaraycaster/internal/stream"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the yaml config")
	flag.Parse()

	if err := run(*configPath); err != nil {
		log.Fatal(err)
	}
}

// run owns every resource so that its deferred cleanup happens before main
// exits.
func run(configPath string) error {
	// Load configuration
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	tiles := frame.LoadTiles(cfg)
	level, spawn, err := frame.LoadLevel(cfg)
	if err != nil {
		return err
	}

	pool := frame.StartPool(cfg)
	if pool != nil {
		defer pool.Stop()
	}
	pipeline, err := frame.NewPipeline(level, spawn, frame.OptionsFromConfig(cfg, tiles, pool))
	if err != nil {
		return err
	}

	var sound *audio.SoundManager
	if cfg.Audio.Enabled {
		sound = audio.NewSoundManager(cfg.Audio.Volume)
		if err := sound.Initialize(); err != nil {
			log.Printf("Warning: audio disabled: %v", err)
			sound = nil
		}
	}

	var hub *stream.Hub
	if cfg.Stream.Enabled {
		hub = stream.NewHub()
		mux := http.NewServeMux()
		mux.Handle(cfg.Stream.Path, hub)
		go func() {
			log.Printf("Streaming frames on ws://%s%s", cfg.Stream.Addr, cfg.Stream.Path)
			if err := http.ListenAndServe(cfg.Stream.Addr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("Warning: stream server: %v", err)
			}
		}()
	}

	// Set window properties from config
	ebiten.SetWindowSize(cfg.GetScreenWidth(), cfg.GetScreenHeight())
	ebiten.SetWindowTitle(cfg.Display.WindowTitle)
	if cfg.Display.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	g := game.NewGame(cfg, pipeline, tiles, sound, hub)
	defer g.Close()
	return ebiten.RunGame(g)
}
