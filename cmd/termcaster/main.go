package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"yaraycaster/internal/config"
	"yaraycaster/internal/frame"
	"yaraycaster/internal/terminal"

	"github.com/gdamore/tcell/v2"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the yaml config")
	flag.Parse()

	if err := run(*configPath); err != nil {
		log.Fatal(err)
	}
}

func run(configPath string) error {
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
	opts := frame.OptionsFromConfig(cfg, tiles, pool)
	pipeline, err := frame.NewPipeline(level, spawn, opts)
	if err != nil {
		return err
	}
	defer frame.LogStats("terminal", pipeline.Monitor)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initialize screen: %w", err)
	}
	screen.HideCursor()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	view := terminal.NewScreen(screen, pipeline, opts, terminal.PaletteFromConfig(cfg, tiles), cfg.Terminal.FPS)
	err = view.Run(ctx)
	screen.Fini()
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
