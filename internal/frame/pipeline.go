// Package frame runs one tick of the engine: movement, then the ray cast,
// then projection.
package frame

import (
	"yaraycaster/internal/collision"
	"yaraycaster/internal/player"
	"yaraycaster/internal/projector"
	"yaraycaster/internal/raycast"
	"yaraycaster/internal/threading/monitoring"
	"yaraycaster/internal/world"
)

// Result is everything a front end needs to present one tick.
type Result struct {
	Player  player.Player
	Fan     *raycast.Fan
	Strips  []projector.Strip
	Overlay projector.Overlay
}

// Pipeline owns the player state that carries over between ticks. The map is
// shared and read-only; a Pipeline itself is not safe for concurrent Step calls.
type Pipeline struct {
	Player    *player.Player
	Map       *world.GridMap
	Mover     *player.Mover
	Caster    *raycast.Caster
	Projector *projector.Projector
	Monitor   *monitoring.PerformanceMonitor

	// WithOverlay also builds the top-down primitives each tick.
	WithOverlay bool
}

// Options groups the tunables NewPipeline needs beyond the map.
type Options struct {
	MoveSpeed     float64
	RotationSpeed float64
	Exclusive     bool
	Projector     projector.Settings
	Textures      projector.TextureSelector
	CasterOptions []raycast.Option
	RayCount      int

	// Monitor is shared when set. Otherwise each pipeline gets its own, with
	// running averages when DetailedStats is set.
	Monitor       *monitoring.PerformanceMonitor
	DetailedStats bool
}

// NewPipeline wires a player spawned at spawn into m.
func NewPipeline(m *world.GridMap, spawn world.Spawn, opts Options) (*Pipeline, error) {
	caster, err := raycast.NewCaster(opts.RayCount, opts.CasterOptions...)
	if err != nil {
		return nil, err
	}
	monitor := opts.Monitor
	if monitor == nil {
		monitor = monitoring.NewPerformanceMonitor()
		monitor.EnableDetailedLogging(opts.DetailedStats)
	}
	cs := collision.NewCollisionSystem(m, m.BlockSize())
	return &Pipeline{
		Player:    player.New(spawn.X, spawn.Y, spawn.Angle),
		Map:       m,
		Mover:     player.NewMover(cs, opts.MoveSpeed, opts.RotationSpeed, opts.Exclusive),
		Caster:    caster,
		Projector: projector.New(opts.Projector, opts.Textures),
		Monitor:   monitor,
	}, nil
}

// Step applies cmds and renders the resulting view.
func (pl *Pipeline) Step(cmds player.CommandSet) Result {
	frameTimer := pl.Monitor.StartFrame()
	defer frameTimer.EndFrame()

	pl.Monitor.ProfiledFunction(monitoring.PhaseMove, func() {
		pl.Mover.Move(pl.Player, cmds)
	})

	rt := pl.Monitor.StartRaycast()
	fan := pl.Caster.Cast(pl.Player, pl.Map)
	rt.EndRaycast(fan.Layers() * fan.Len())

	res := Result{Player: *pl.Player, Fan: fan}
	pl.Monitor.ProfiledFunction(monitoring.PhaseProject, func() {
		res.Strips = pl.Projector.Project(fan, pl.Map)
		if pl.WithOverlay {
			res.Overlay = pl.Projector.Overlay(pl.Player, pl.Map, fan)
		}
	})
	pl.Monitor.RecordStrips(len(res.Strips))
	return res
}
