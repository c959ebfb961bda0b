package raycast

import "yaraycaster/internal/world"

// NoHitDistance is the distance reported by a ray that found nothing within
// the trace bound.
const NoHitDistance = 9999

// Ray is the result of one angle on one layer.
type Ray struct {
	Angle float64
	// Distance is fisheye corrected.
	Distance float64
	Side     world.HitSide
	// HitX, HitY is the world intersection point, or (-1, -1).
	HitX, HitY float64
	// TileX, TileY index the tile that was hit, or (-1, -1).
	TileX, TileY int
	TileID       int
}

// Hit reports whether the ray found a solid tile.
func (r Ray) Hit() bool {
	return r.Side != world.SideNone
}

// SameTile reports whether both rays hit the same face of the identical tile.
func (r Ray) SameTile(o Ray) bool {
	return r.Hit() && o.Hit() && r.TileX == o.TileX && r.TileY == o.TileY && r.Side == o.Side
}

// NoHit returns the sentinel ray for angle.
func NoHit(angle float64) Ray {
	return Ray{
		Angle:    angle,
		Distance: NoHitDistance,
		Side:     world.SideNone,
		HitX:     -1,
		HitY:     -1,
		TileX:    -1,
		TileY:    -1,
		TileID:   world.TileEmpty,
	}
}
