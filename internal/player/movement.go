package player

import "yaraycaster/internal/collision"

// Mover applies command sets to a player against a collision system.
type Mover struct {
	collision     *collision.CollisionSystem
	moveSpeed     float64
	rotationSpeed float64
	exclusive     bool
}

// NewMover creates a mover. With exclusive set, a tick applies only the first
// of forward, backward, turn_left, turn_right that is active; otherwise one
// translation and one rotation may both apply.
func NewMover(cs *collision.CollisionSystem, moveSpeed, rotationSpeed float64, exclusive bool) *Mover {
	return &Mover{
		collision:     cs,
		moveSpeed:     moveSpeed,
		rotationSpeed: rotationSpeed,
		exclusive:     exclusive,
	}
}

// Move advances p by one tick.
func (m *Mover) Move(p *Player, cmds CommandSet) {
	p.Fired = cmds.Has(Fire)

	translated := false
	switch {
	case cmds.Has(Forward):
		m.translate(p, m.moveSpeed)
		translated = true
	case cmds.Has(Backward):
		m.translate(p, -m.moveSpeed)
		translated = true
	}
	if translated && m.exclusive {
		return
	}

	switch {
	case cmds.Has(TurnLeft):
		p.Turn(m.rotationSpeed)
	case cmds.Has(TurnRight):
		p.Turn(-m.rotationSpeed)
	}
}

// translate moves along the facing direction, or not at all when the
// destination tile blocks.
func (m *Mover) translate(p *Player, speed float64) {
	nx := p.X + p.DirX*speed
	ny := p.Y + p.DirY*speed
	if !m.collision.CanMoveTo(nx, ny) {
		return
	}
	p.X, p.Y = nx, ny
}
