package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"yaraycaster/internal/config"
	"yaraycaster/internal/frame"
	"yaraycaster/internal/server"
	"yaraycaster/internal/stream"
	"yaraycaster/internal/terminal"
)

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)

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

	// Generate host key if it doesn't exist
	if err := ensureHostKey(cfg.SSH.HostKey); err != nil {
		return fmt.Errorf("host key: %w", err)
	}

	tiles := frame.LoadTiles(cfg)
	level, spawn, err := frame.LoadLevel(cfg)
	if err != nil {
		return err
	}
	log.Printf("Map loaded: %dx%d, %d layers", level.Width(), level.Length(), level.Layers())

	pool := frame.StartPool(cfg)
	if pool != nil {
		defer pool.Stop()
	}

	sshServer := server.NewSSHServer(cfg.SSH.Addr, cfg.SSH.HostKey,
		server.Level{Map: level, Spawn: spawn},
		frame.OptionsFromConfig(cfg, tiles, pool),
		terminal.PaletteFromConfig(cfg, tiles), cfg.Terminal.FPS)

	if cfg.Stream.Enabled {
		sshServer.Hub = stream.NewHub()
		mux := http.NewServeMux()
		mux.Handle(cfg.Stream.Path, sshServer.Hub)
		go func() {
			if err := http.ListenAndServe(cfg.Stream.Addr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("Stream server error: %v", err)
			}
		}()
	}

	log.Printf("Starting raycaster SSH server on %s", cfg.SSH.Addr)
	if err := sshServer.Start(); err != nil {
		return fmt.Errorf("ssh server: %w", err)
	}
	return nil
}

func ensureHostKey(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil // key already exists
	}

	log.Println("Generating new host key...")
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return err
	}

	keyBytes, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	return pem.Encode(f, &pem.Block{Type: "PRIVATE KEY", Bytes: keyBytes})
}
