package frame

import (
	"fmt"
	"log"

	"yaraycaster/internal/config"
	"yaraycaster/internal/projector"
	"yaraycaster/internal/raycast"
	"yaraycaster/internal/threading/core"
	"yaraycaster/internal/threading/monitoring"
	"yaraycaster/internal/world"
)

// OptionsFromConfig derives pipeline options for a screen of the configured
// size. pool may be nil for a serial cast.
func OptionsFromConfig(cfg *config.Config, textures projector.TextureSelector, pool *core.WorkerPool) Options {
	opts := Options{
		DetailedStats: cfg.Display.DetailedStats,
		MoveSpeed:     cfg.GetMoveSpeed(),
		RotationSpeed: cfg.GetRotSpeed(),
		Exclusive:     cfg.Movement.ExclusiveTranslateRotate,
		RayCount:      cfg.GetRayCount(),
		Textures:      textures,
		Projector: projector.Settings{
			ScreenWidth:  cfg.GetScreenWidth(),
			ScreenHeight: cfg.GetScreenHeight(),
			BlockSize:    cfg.GetBlockSize(),
			TextureSize:  cfg.Graphics.TextureSize,
			StripWidth:   cfg.GetStripWidth(),
		},
	}
	if pool != nil {
		opts.CasterOptions = append(opts.CasterOptions, raycast.WithWorkerPool(pool))
	}
	return opts
}

// ForGrid retargets the projector at a cols x rows character grid. Each ray
// covers at least one column.
func (o Options) ForGrid(cols, rows int) Options {
	strip := max(1, cols/o.RayCount)
	o.Projector.StripWidth = strip
	o.Projector.ScreenWidth = strip * o.RayCount
	o.Projector.ScreenHeight = rows
	return o
}

// LoadLevel builds the configured map, or the built-in level when no map file
// is set.
func LoadLevel(cfg *config.Config) (*world.GridMap, world.Spawn, error) {
	data := world.DefaultMap()
	if cfg.World.MapFile != "" {
		loaded, err := world.LoadMapFile(cfg.World.MapFile)
		if err != nil {
			return nil, world.Spawn{}, fmt.Errorf("loading map %s: %w", cfg.World.MapFile, err)
		}
		data = loaded
	}
	return data.Build(cfg.GetBlockSize())
}

// LoadTiles returns a tile manager, configured from the tile file when one is
// set. A broken tile file falls back to generated keys.
func LoadTiles(cfg *config.Config) *world.TileManager {
	tm := world.NewTileManager()
	if cfg.World.TileFile == "" {
		return tm
	}
	if err := tm.LoadTileConfig(cfg.World.TileFile); err != nil {
		log.Printf("Warning: %v, using default tile textures", err)
		return world.NewTileManager()
	}
	return tm
}

// StartPool starts the configured ray worker pool, or returns nil when the
// cast runs serially. Zero workers means one per CPU. The caller stops it.
func StartPool(cfg *config.Config) *core.WorkerPool {
	if !cfg.Rays.Parallel {
		return nil
	}
	if cfg.Rays.Workers <= 0 {
		return core.CreateDefaultWorkerPool()
	}
	pool := core.NewWorkerPool(cfg.Rays.Workers)
	pool.Start()
	return pool
}

// LogStats writes the monitor's session statistics, keyed by name.
func LogStats(name string, pm *monitoring.PerformanceMonitor) {
	stats := pm.GetDetailedStats()
	log.Printf("%s: %d frames, %d rays, avg frame %.2fms, avg cast %.2fms, %.0fs up",
		name, stats["frame_count"], stats["rays_cast"], stats["avg_frame_time_ms"],
		stats["avg_raycast_time_ms"], stats["uptime_seconds"])
}
