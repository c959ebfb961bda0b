package collision

import "math"

// TileChecker interface for checking if tiles block movement
type TileChecker interface {
	IsTileBlocking(tileX, tileY int) bool
	GetWorldBounds() (width, height int)
}

// CollisionSystem answers whether a point in world space may be occupied.
type CollisionSystem struct {
	tileChecker TileChecker
	tileSize    float64
}

// NewCollisionSystem creates a new collision system
func NewCollisionSystem(tileChecker TileChecker, tileSize float64) *CollisionSystem {
	return &CollisionSystem{
		tileChecker: tileChecker,
		tileSize:    tileSize,
	}
}

// CanMoveTo reports whether the world point (x, y) lies on an open tile.
// Points outside the map are never open.
func (cs *CollisionSystem) CanMoveTo(x, y float64) bool {
	if math.IsNaN(x) || math.IsNaN(y) || x < 0 || y < 0 {
		return false
	}
	width, height := cs.tileChecker.GetWorldBounds()

	tileX := int(x / cs.tileSize)
	tileY := int(y / cs.tileSize)

	// Check bounds
	if tileX >= width || tileY >= height {
		return false
	}
	return !cs.tileChecker.IsTileBlocking(tileX, tileY)
}
