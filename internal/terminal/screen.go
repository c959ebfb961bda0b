package terminal

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"yaraycaster/internal/frame"
	"yaraycaster/internal/player"
	"yaraycaster/internal/projector"
	"yaraycaster/internal/threading/monitoring"
)

// CellSetter is the drawing half of tcell.Screen.
type CellSetter interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

// Screen runs a pipeline on a tcell screen. Terminals report key presses but
// not releases, so a command applies on the tick after its key arrives.
type Screen struct {
	screen   tcell.Screen
	pipeline *frame.Pipeline
	base     frame.Options
	palette  Palette
	fps      int
	showHUD  bool

	mu      sync.Mutex
	pending player.CommandSet
	w, h    int
}

// NewScreen binds pl to an initialised tcell screen. base is retargeted to
// the screen size on every resize.
func NewScreen(screen tcell.Screen, pl *frame.Pipeline, base frame.Options, pal Palette, fps int) *Screen {
	if fps <= 0 {
		fps = 30
	}
	s := &Screen{
		screen:   screen,
		pipeline: pl,
		base:     base,
		palette:  pal,
		fps:      fps,
		showHUD:  true,
	}
	s.Resize()
	return s
}

// Resize refits the projector to the current screen size and restarts the
// frame counters, since timings at the old size no longer apply.
func (s *Screen) Resize() {
	w, h := s.screen.Size()
	s.mu.Lock()
	s.w, s.h = w, h
	s.mu.Unlock()
	opts := s.base.ForGrid(w, h)
	s.pipeline.Projector = projector.New(opts.Projector, opts.Textures)
	s.pipeline.Monitor.Reset()
}

// HandleEvent queues the command for a key event and reports whether the
// user asked to quit.
func (s *Screen) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		cmd, ok, quit := keyCommand(ev.Key(), ev.Rune())
		if quit {
			return true
		}
		if ok {
			s.queue(cmd)
		}
	case *tcell.EventResize:
		s.Resize()
		s.screen.Sync()
	}
	return false
}

func (s *Screen) queue(cmd player.Command) {
	s.mu.Lock()
	s.pending = s.pending.With(cmd)
	s.mu.Unlock()
}

func keyCommand(key tcell.Key, r rune) (cmd player.Command, ok, quit bool) {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return 0, false, true
	case tcell.KeyUp:
		return player.Forward, true, false
	case tcell.KeyDown:
		return player.Backward, true, false
	case tcell.KeyLeft:
		return player.TurnLeft, true, false
	case tcell.KeyRight:
		return player.TurnRight, true, false
	case tcell.KeyRune:
		if r == 'q' || r == 'Q' {
			return 0, false, true
		}
		cmd, ok = runeCommand(r)
		return cmd, ok, false
	}
	return 0, false, false
}

// Tick steps the pipeline with the queued commands and returns the frame.
func (s *Screen) Tick() (*Grid, frame.Result) {
	s.mu.Lock()
	cmds := s.pending
	s.pending = 0
	w, h := s.w, s.h
	s.mu.Unlock()

	res := s.pipeline.Step(cmds)
	return Rasterize(res.Strips, w, h, s.palette), res
}

// Run draws at the configured rate until ctx ends or the user quits.
func (s *Screen) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := s.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(s.fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if s.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			grid, res := s.Tick()
			Draw(s.screen, grid)
			if s.showHUD {
				pm := s.pipeline.Monitor
				DrawText(s.screen, 0, 0, hud(res, pm.GetCurrentMetrics(), pm.CheckPerformanceAlerts()))
			}
			s.screen.Show()
		}
	}
}

func hud(res frame.Result, m monitoring.FrameMetrics, alerts []monitoring.PerformanceAlert) string {
	line := fmt.Sprintf("X=%3.2f, Y=%3.2f, A=%3.0f, %s", res.Player.X, res.Player.Y, res.Player.Angle, m)
	for _, a := range alerts {
		line += "  " + a.String()
	}
	return line
}

// Draw copies g onto target.
func Draw(target CellSetter, g *Grid) {
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			c := g.At(x, y)
			target.SetContent(x, y, c.Ch, nil, cellStyle(c))
		}
	}
}

// DrawText writes text on one row using the default style.
func DrawText(target CellSetter, x, y int, text string) {
	for i, r := range []rune(text) {
		target.SetContent(x+i, y, r, nil, tcell.StyleDefault)
	}
}

func cellStyle(c Cell) tcell.Style {
	return tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(int32(c.Fg[0]), int32(c.Fg[1]), int32(c.Fg[2]))).
		Background(tcell.NewRGBColor(int32(c.Bg[0]), int32(c.Bg[1]), int32(c.Bg[2])))
}
