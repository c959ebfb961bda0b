package raycast

import (
	"errors"
	"fmt"
	"math"

	"yaraycaster/internal/mathutil"
	"yaraycaster/internal/player"
	"yaraycaster/internal/threading/core"
	"yaraycaster/internal/world"
)

// ErrRayCount rejects fans that cannot be split evenly around the view axis.
var ErrRayCount = errors.New("ray count must be positive and even")

// axisEpsilon treats sin/cos below it as zero. sin(180°) and cos(90°) come
// out of math as ~1e-16, not 0.
const axisEpsilon = 1e-10

// Caster traces a fan of rays spaced one degree apart, so the field of view
// in degrees equals the ray count.
type Caster struct {
	rayCount int
	pool     *core.WorkerPool
}

// Option configures a Caster.
type Option func(*Caster)

// WithWorkerPool casts ray indices in parallel on pool. The result matches a
// serial cast.
func WithWorkerPool(pool *core.WorkerPool) Option {
	return func(c *Caster) {
		c.pool = pool
	}
}

// NewCaster creates a caster for rayCount rays.
func NewCaster(rayCount int, opts ...Option) (*Caster, error) {
	if rayCount <= 0 || rayCount%2 != 0 {
		return nil, fmt.Errorf("%w: %d", ErrRayCount, rayCount)
	}
	c := &Caster{rayCount: rayCount}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// RayCount returns the rays per layer.
func (c *Caster) RayCount() int { return c.rayCount }

// RayAngle returns the absolute angle of ray i for a player facing facing.
func (c *Caster) RayAngle(facing float64, i int) float64 {
	return mathutil.NormalizeAngle(facing - float64(c.rayCount/2) + float64(i))
}

// Cast traces every ray against every layer of m.
func (c *Caster) Cast(p *player.Player, m *world.GridMap) *Fan {
	fan := NewFan(m.Layers(), c.rayCount)
	c.CastInto(fan, p, m)
	return fan
}

// CastInto reuses fan, which must have been built for m and this caster.
func (c *Caster) CastInto(fan *Fan, p *player.Player, m *world.GridMap) {
	cast := func(i int) {
		c.castRay(fan, p, m, i)
	}
	if c.pool != nil {
		c.pool.ParallelFor(0, c.rayCount, cast)
		return
	}
	for i := 0; i < c.rayCount; i++ {
		cast(i)
	}
}

// traceHit is the first solid tile one trace found on one layer. dist is the
// raw distance and never leaves this package.
type traceHit struct {
	ok     bool
	x, y   float64
	dist   float64
	tx, ty int
	id     int
}

func (c *Caster) castRay(fan *Fan, p *player.Player, m *world.GridMap, i int) {
	angle := c.RayAngle(p.Angle, i)
	layers := m.Layers()

	horiz := make([]traceHit, layers)
	vert := make([]traceHit, layers)
	traceHorizontal(p, m, angle, horiz)
	traceVertical(p, m, angle, vert)

	for l := 0; l < layers; l++ {
		h, v := horiz[l], vert[l]
		var best traceHit
		side := world.SideNone
		switch {
		case h.ok && (!v.ok || h.dist <= v.dist):
			best, side = h, world.SideHorizontal
		case v.ok:
			best, side = v, world.SideVertical
		default:
			fan.Set(l, i, NoHit(angle))
			continue
		}
		fan.Set(l, i, Ray{
			Angle:    angle,
			Distance: mathutil.FixFisheye(p.Angle, angle, best.dist),
			Side:     side,
			HitX:     best.x,
			HitY:     best.y,
			TileX:    best.tx,
			TileY:    best.ty,
			TileID:   best.id,
		})
	}
}

// traceHorizontal steps across horizontal grid lines. "Up" is angle in
// (0, 180), which with dir_y = -sin means decreasing y.
func traceHorizontal(p *player.Player, m *world.GridMap, angle float64, out []traceHit) {
	rad := mathutil.DegToRad(angle)
	sin := math.Sin(rad)
	if math.Abs(sin) < axisEpsilon {
		return
	}
	block := m.BlockSize()
	tan := math.Tan(rad)

	var ry, yStep, ahead float64
	if sin > 0 {
		ry = math.Floor(p.Y/block) * block
		yStep = -block
		ahead = -block / 2
	} else {
		ry = math.Floor(p.Y/block)*block + block
		yStep = block
		ahead = block / 2
	}
	rx := p.X + (p.Y-ry)/tan
	xStep := -yStep / tan

	walk(p, m, rx, ry, xStep, yStep, 0, ahead, out)
}

// traceVertical steps across vertical grid lines. "Right" is cos > 0.
func traceVertical(p *player.Player, m *world.GridMap, angle float64, out []traceHit) {
	rad := mathutil.DegToRad(angle)
	cos := math.Cos(rad)
	if math.Abs(cos) < axisEpsilon {
		return
	}
	block := m.BlockSize()
	tan := math.Tan(rad)

	var rx, xStep, ahead float64
	if cos > 0 {
		rx = math.Floor(p.X/block)*block + block
		xStep = block
		ahead = block / 2
	} else {
		rx = math.Floor(p.X/block) * block
		xStep = -block
		ahead = -block / 2
	}
	ry := p.Y + (p.X-rx)*tan
	yStep := -xStep * tan

	walk(p, m, rx, ry, xStep, yStep, ahead, 0, out)
}

// walk advances along grid-line crossings and records the first solid tile
// per layer. The tile beyond a crossing is sampled half a block past the line.
// Leaving the map ends the walk; layers still unset stay no-hit.
func walk(p *player.Player, m *world.GridMap, rx, ry, xStep, yStep, aheadX, aheadY float64, out []traceHit) {
	remaining := len(out)
	maxSteps := max(m.Width(), m.Length()) + 1

	for step := 0; step <= maxSteps && remaining > 0; step++ {
		sx, sy := rx+aheadX, ry+aheadY
		if !m.InBounds(sx, sy) {
			return
		}
		for l := range out {
			if out[l].ok {
				continue
			}
			id, _ := m.Solid(l, sx, sy)
			if id == world.TileEmpty {
				continue
			}
			tx, ty := m.TileIndex(sx, sy)
			out[l] = traceHit{
				ok:   true,
				x:    rx,
				y:    ry,
				dist: mathutil.Distance(p.X, p.Y, rx, ry),
				tx:   tx,
				ty:   ty,
				id:   id,
			}
			remaining--
		}
		rx += xStep
		ry += yStep
	}
}
