package world

// HitSide records which family of grid lines a ray crossed when it hit a tile.
type HitSide int

const (
	SideNone       HitSide = iota // No hit within the trace bound
	SideHorizontal                // Crossed a horizontal grid line (y = k*block)
	SideVertical                  // Crossed a vertical grid line (x = k*block)
)

func (s HitSide) String() string {
	switch s {
	case SideHorizontal:
		return "horizontal"
	case SideVertical:
		return "vertical"
	default:
		return "none"
	}
}

// TileEmpty is the reserved passable tile id. Any id above it is solid and
// doubles as a texture id.
const TileEmpty = 0

