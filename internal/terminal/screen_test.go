package terminal

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"yaraycaster/internal/config"
	"yaraycaster/internal/frame"
	"yaraycaster/internal/player"
	"yaraycaster/internal/threading/monitoring"
)

func playerCommand(c int) player.Command { return player.Command(c) }

type recordingScreen struct {
	cells map[[2]int]rune
}

func (r *recordingScreen) SetContent(x, y int, primary rune, _ []rune, _ tcell.Style) {
	r.cells[[2]int{x, y}] = primary
}

func newTestScreen(t *testing.T, w, h int) *Screen {
	t.Helper()
	cfg := config.DefaultConfig()
	m, spawn, err := frame.LoadLevel(cfg)
	if err != nil {
		t.Fatal(err)
	}
	opts := frame.OptionsFromConfig(cfg, nil, nil)
	pl, err := frame.NewPipeline(m, spawn, opts)
	if err != nil {
		t.Fatal(err)
	}

	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(sim.Fini)
	sim.SetSize(w, h)

	return NewScreen(sim, pl, opts, testPalette(), 30)
}

func TestKeyCommand(t *testing.T) {
	tests := []struct {
		key  tcell.Key
		r    rune
		cmd  player.Command
		ok   bool
		quit bool
	}{
		{tcell.KeyUp, 0, player.Forward, true, false},
		{tcell.KeyDown, 0, player.Backward, true, false},
		{tcell.KeyLeft, 0, player.TurnLeft, true, false},
		{tcell.KeyRight, 0, player.TurnRight, true, false},
		{tcell.KeyRune, 'a', player.TurnLeft, true, false},
		{tcell.KeyRune, ' ', player.Fire, true, false},
		{tcell.KeyRune, 'q', 0, false, true},
		{tcell.KeyEscape, 0, 0, false, true},
		{tcell.KeyCtrlC, 0, 0, false, true},
		{tcell.KeyRune, 'z', 0, false, false},
	}
	for _, tt := range tests {
		cmd, ok, quit := keyCommand(tt.key, tt.r)
		if ok != tt.ok || quit != tt.quit || (ok && cmd != tt.cmd) {
			t.Errorf("key %v rune %q: got (%v,%v,%v), want (%v,%v,%v)", tt.key, tt.r, cmd, ok, quit, tt.cmd, tt.ok, tt.quit)
		}
	}
}

func TestScreen_ResizeFitsRays(t *testing.T) {
	s := newTestScreen(t, 130, 40)
	cfg := s.pipeline.Projector.Settings()
	if cfg.StripWidth != 2 || cfg.ScreenWidth != 120 || cfg.ScreenHeight != 40 {
		t.Errorf("Unexpected projector settings %+v", cfg)
	}
}

func TestScreen_ResizeRestartsCounters(t *testing.T) {
	s := newTestScreen(t, 60, 20)
	s.Tick()
	s.Tick()
	if n := s.pipeline.Monitor.GetCurrentMetrics().FrameCount; n != 2 {
		t.Fatalf("Expected 2 frames, got %d", n)
	}

	s.screen.(tcell.SimulationScreen).SetSize(40, 10)
	s.Resize()
	if n := s.pipeline.Monitor.GetCurrentMetrics().FrameCount; n != 0 {
		t.Errorf("Expected counters cleared on resize, got %d frames", n)
	}
	if cfg := s.pipeline.Projector.Settings(); cfg.ScreenHeight != 10 {
		t.Errorf("Expected the projector refit to 10 rows, got %d", cfg.ScreenHeight)
	}
}

func TestHUD_ListsAlerts(t *testing.T) {
	res := frame.Result{}
	res.Player.X, res.Player.Y, res.Player.Angle = 10, 20, 90
	alerts := []monitoring.PerformanceAlert{{Type: "low_fps", Value: 12, Threshold: 30}}

	line := hud(res, monitoring.FrameMetrics{FramesPerSecond: 12}, alerts)
	if !strings.HasPrefix(line, "X=10.00, Y=20.00, A= 90, FPS: 12") {
		t.Errorf("Unexpected HUD prefix %q", line)
	}
	if !strings.HasSuffix(line, "  low_fps: 12 < 30") {
		t.Errorf("Expected the alert at the end of the HUD, got %q", line)
	}
	if strings.Contains(hud(res, monitoring.FrameMetrics{}, nil), "low_fps") {
		t.Error("Expected no alert text without alerts")
	}
}

func TestScreen_TickConsumesQueue(t *testing.T) {
	s := newTestScreen(t, 60, 20)
	start := *s.pipeline.Player

	s.queue(player.TurnLeft)
	grid, res := s.Tick()
	if res.Player.Angle != start.Angle+4 {
		t.Errorf("Expected a left turn, got angle %v", res.Player.Angle)
	}
	if grid.W != 60 || grid.H != 20 {
		t.Errorf("Expected a 60x20 grid, got %dx%d", grid.W, grid.H)
	}

	_, res = s.Tick()
	if res.Player.Angle != start.Angle+4 {
		t.Errorf("Expected the queue to be cleared, got angle %v", res.Player.Angle)
	}
}

func TestDraw(t *testing.T) {
	g := NewGrid(3, 2)
	for i := range g.Cells {
		g.Cells[i] = Cell{Ch: '▓'}
	}
	rec := &recordingScreen{cells: map[[2]int]rune{}}
	Draw(rec, g)
	DrawText(rec, 0, 1, "hi")

	if len(rec.cells) != 6 {
		t.Errorf("Expected 6 cells, got %d", len(rec.cells))
	}
	if rec.cells[[2]int{2, 0}] != '▓' || rec.cells[[2]int{1, 1}] != 'i' {
		t.Errorf("Unexpected cells %v", rec.cells)
	}
}
