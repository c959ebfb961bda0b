// Package player holds the player pose and the per-tick movement rules.
package player

import (
	"fmt"

	"yaraycaster/internal/mathutil"
)

// Player is the viewer. Angle is in degrees within [0, 360) and DirX/DirY is
// always the unit vector derived from it.
type Player struct {
	X, Y       float64
	Angle      float64
	DirX, DirY float64
	// Fired is set for the tick in which the trigger was pulled.
	Fired bool
}

// New creates a player at world position (x, y) facing angle.
func New(x, y, angle float64) *Player {
	p := &Player{X: x, Y: y}
	p.SetAngle(angle)
	return p
}

// SetAngle normalizes angle and recomputes the direction vector with it.
func (p *Player) SetAngle(angle float64) {
	p.Angle = mathutil.NormalizeAngle(angle)
	p.DirX, p.DirY = mathutil.Direction(p.Angle)
}

// Turn rotates by delta degrees; positive turns left (counter-clockwise on screen).
func (p *Player) Turn(delta float64) {
	p.SetAngle(p.Angle + delta)
}

func (p *Player) String() string {
	return fmt.Sprintf("(POS[X=%g | Y=%g], Angle = %g, Dir[X=%g | Y=%g])", p.X, p.Y, p.Angle, p.DirX, p.DirY)
}
