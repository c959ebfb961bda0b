package frame

import (
	"encoding/json"
	"math"
	"runtime"
	"testing"

	"yaraycaster/internal/config"
	"yaraycaster/internal/player"
	"yaraycaster/internal/threading/core"
	"yaraycaster/internal/world"
)

func defaultPipeline(t *testing.T) *Pipeline {
	t.Helper()
	cfg := config.DefaultConfig()
	m, spawn, err := LoadLevel(cfg)
	if err != nil {
		t.Fatalf("LoadLevel: %v", err)
	}
	pl, err := NewPipeline(m, spawn, OptionsFromConfig(cfg, nil, nil))
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	return pl
}

func TestLoadLevel_Default(t *testing.T) {
	m, spawn, err := LoadLevel(config.DefaultConfig())
	if err != nil {
		t.Fatalf("LoadLevel: %v", err)
	}
	if m.Width() != 8 || m.Length() != 8 || m.Layers() != 2 {
		t.Errorf("Expected 8x8x2 map, got %dx%dx%d", m.Width(), m.Length(), m.Layers())
	}
	if spawn.X != 256 || spawn.Y != 256 || spawn.Angle != 60 {
		t.Errorf("Expected spawn (256,256,60), got %+v", spawn)
	}
}

func TestLoadLevel_MissingFile(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.World.MapFile = "does/not/exist.yaml"
	if _, _, err := LoadLevel(cfg); err == nil {
		t.Error("Expected an error for a missing map file")
	}
}

func TestStep_MovesThenCasts(t *testing.T) {
	pl := defaultPipeline(t)
	before := *pl.Player

	res := pl.Step(player.NewCommandSet(player.Forward))

	dx, dy := res.Player.X-before.X, res.Player.Y-before.Y
	if math.Abs(math.Hypot(dx, dy)-4) > 1e-9 {
		t.Errorf("Expected a 4 unit step, moved (%v,%v)", dx, dy)
	}
	if res.Fan.Len() != 60 || res.Fan.Layers() != 2 {
		t.Fatalf("Expected a 2x60 fan, got %dx%d", res.Fan.Layers(), res.Fan.Len())
	}
	if res.Fan.Hits(0) != 60 {
		t.Errorf("Expected every ray to hit the closed room, got %d", res.Fan.Hits(0))
	}
	if len(res.Strips) < 60 {
		t.Errorf("Expected at least one strip per ray, got %d", len(res.Strips))
	}
	if res.Strips[len(res.Strips)-1].Layer != 0 {
		t.Error("Expected layer 0 strips last")
	}
	if len(res.Overlay.Rects) != 0 {
		t.Error("Expected no overlay unless requested")
	}
}

func TestStep_PlayerSnapshotIsDetached(t *testing.T) {
	pl := defaultPipeline(t)
	res := pl.Step(player.NewCommandSet(player.Fire))
	if !res.Player.Fired {
		t.Error("Expected Fired in the result")
	}

	pl.Step(player.NewCommandSet(player.TurnLeft))
	if res.Player.Angle != 60 {
		t.Errorf("Expected earlier result to keep angle 60, got %v", res.Player.Angle)
	}
	if pl.Player.Fired {
		t.Error("Expected Fired cleared on the next step")
	}
}

func TestStep_Overlay(t *testing.T) {
	pl := defaultPipeline(t)
	pl.WithOverlay = true

	res := pl.Step(player.CommandSet(0))
	if len(res.Overlay.Rects) == 0 || len(res.Overlay.Lines) != 61 {
		t.Errorf("Expected overlay rects and 61 lines, got %d rects %d lines",
			len(res.Overlay.Rects), len(res.Overlay.Lines))
	}
	if pl.Monitor.GetCurrentMetrics().FrameCount != 1 {
		t.Errorf("Expected one frame recorded, got %d", pl.Monitor.GetCurrentMetrics().FrameCount)
	}
}

func TestStep_ParallelPipelineMatches(t *testing.T) {
	pool := core.NewWorkerPool(2)
	pool.Start()
	defer pool.Stop()

	cfg := config.DefaultConfig()
	m, spawn, err := LoadLevel(cfg)
	if err != nil {
		t.Fatal(err)
	}
	serial, err := NewPipeline(m, spawn, OptionsFromConfig(cfg, nil, nil))
	if err != nil {
		t.Fatal(err)
	}
	parallel, err := NewPipeline(m, spawn, OptionsFromConfig(cfg, nil, pool))
	if err != nil {
		t.Fatal(err)
	}

	cmds := player.NewCommandSet(player.TurnRight)
	for i := 0; i < 10; i++ {
		a, b := serial.Step(cmds), parallel.Step(cmds)
		if len(a.Strips) != len(b.Strips) {
			t.Fatalf("Tick %d: strip counts differ %d vs %d", i, len(a.Strips), len(b.Strips))
		}
		for j := range a.Strips {
			if a.Strips[j] != b.Strips[j] {
				t.Errorf("Tick %d strip %d differs", i, j)
			}
		}
	}
}

func TestStartPool(t *testing.T) {
	cfg := config.DefaultConfig()
	if pool := StartPool(cfg); pool != nil {
		t.Error("Expected no pool for a serial cast")
	}
	cfg.Rays.Parallel, cfg.Rays.Workers = true, 3
	pool := StartPool(cfg)
	if pool == nil {
		t.Fatal("Expected a pool")
	}
	defer pool.Stop()
	if pool.GetNumWorkers() != 3 {
		t.Errorf("Expected 3 workers, got %d", pool.GetNumWorkers())
	}

	cfg.Rays.Workers = 0
	cpuPool := StartPool(cfg)
	if cpuPool == nil {
		t.Fatal("Expected a pool for zero workers")
	}
	defer cpuPool.Stop()
	if cpuPool.GetNumWorkers() != runtime.NumCPU() {
		t.Errorf("Expected one worker per CPU, got %d", cpuPool.GetNumWorkers())
	}
}

func TestOptionsFromConfig_DetailedStats(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Display.DetailedStats = false
	m, spawn, _ := LoadLevel(cfg)
	pl, err := NewPipeline(m, spawn, OptionsFromConfig(cfg, nil, nil))
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	pl.Step(player.NewCommandSet(player.Forward))

	stats := pl.Monitor.GetDetailedStats()
	if stats["frame_count"].(uint64) != 1 {
		t.Errorf("Expected one frame counted, got %v", stats["frame_count"])
	}
	if stats["avg_frame_time_ms"].(float64) != 0 {
		t.Errorf("Expected no running average with detailed stats off, got %v", stats["avg_frame_time_ms"])
	}
}

func TestStep_WalkIntoWallKeepsDrawing(t *testing.T) {
	m, err := world.NewGridMap(64, [][][]int{{
		{1, 1, 1, 1, 1, 1},
		{1, 0, 0, 0, 0, 1},
		{1, 1, 1, 1, 1, 1},
	}})
	if err != nil {
		t.Fatalf("NewGridMap: %v", err)
	}
	pl, err := NewPipeline(m, world.Spawn{X: 288, Y: 96, Angle: 180}, OptionsFromConfig(config.DefaultConfig(), nil, nil))
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}

	forward := player.NewCommandSet(player.Forward)
	var res Result
	for i := 0; i < 80; i++ {
		res = pl.Step(forward)
		if len(res.Strips) != res.Fan.Hits(0) {
			t.Fatalf("Tick %d at x=%v: expected a strip per hit, got %d strips for %d hits",
				i, res.Player.X, len(res.Strips), res.Fan.Hits(0))
		}
	}
	if res.Player.X != 64 {
		t.Errorf("Expected the player stopped on the wall line at x=64, got %v", res.Player.X)
	}
	if res.Fan.Hits(0) != res.Fan.Len() {
		t.Errorf("Expected every ray to hit the enclosed corridor, got %d of %d", res.Fan.Hits(0), res.Fan.Len())
	}
	for _, s := range res.Strips {
		if s.Height <= 0 || math.IsInf(s.Height, 0) {
			t.Fatalf("Expected finite positive strip heights, got %+v", s)
		}
	}
}

func TestNewPipeline_OddRayCount(t *testing.T) {
	cfg := config.DefaultConfig()
	m, spawn, _ := LoadLevel(cfg)
	opts := OptionsFromConfig(cfg, nil, nil)
	opts.RayCount = 7
	if _, err := NewPipeline(m, spawn, opts); err == nil {
		t.Error("Expected an error for an odd ray count")
	}
}

func TestOptionsForGrid(t *testing.T) {
	opts := OptionsFromConfig(config.DefaultConfig(), nil, nil).ForGrid(130, 40)
	if opts.Projector.StripWidth != 2 || opts.Projector.ScreenWidth != 120 || opts.Projector.ScreenHeight != 40 {
		t.Errorf("Unexpected grid settings %+v", opts.Projector)
	}
	narrow := OptionsFromConfig(config.DefaultConfig(), nil, nil).ForGrid(20, 10)
	if narrow.Projector.StripWidth != 1 {
		t.Errorf("Expected strip width floor of 1, got %d", narrow.Projector.StripWidth)
	}
}

func TestSnapshotJSON(t *testing.T) {
	pl := defaultPipeline(t)
	res := pl.Step(player.CommandSet(0))

	data, err := json.Marshal(res.Snapshot("local", 7))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var back Snapshot
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back.Session != "local" || back.Tick != 7 || back.X != 256 || len(back.Strips) != len(res.Strips) {
		t.Errorf("Unexpected snapshot %+v", back)
	}
	if back.Strips[0].Side == "" {
		t.Error("Expected side names in the snapshot")
	}
}
