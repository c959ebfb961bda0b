package game

import (
	"math"

	"yaraycaster/internal/mathutil"
	"yaraycaster/internal/player"
)

const (
	floorMinBrightness = 0.2
	// floorFadeBlocks is the distance, in blocks, at which the floor reaches
	// its minimum brightness.
	floorFadeBlocks = 12.0
	floorOddShade   = 0.85
)

// FloorPass fills the lower half of an RGBA buffer with a perspective
// checkerboard of the ground colour. The upper half is left untouched.
// The camera sits at half a block above the floor, matching wall projection.
func FloorPass(pixels []byte, w, h int, p player.Player, block, fov float64, ground [3]int) {
	horizon := h / 2
	half := math.Tan(mathutil.DegToRad(fov / 2))
	// Leftward perpendicular of the view direction, scaled to the half FOV.
	planeX := p.DirY * half
	planeY := -p.DirX * half

	for y := horizon; y < h; y++ {
		row := float64(y - horizon)
		if row == 0 {
			row = 1
		}
		rowDistance := 0.5 * float64(h) * block / row

		floorX := p.X + rowDistance*(p.DirX+planeX)
		floorY := p.Y + rowDistance*(p.DirY+planeY)
		stepX := -2 * rowDistance * planeX / float64(w)
		stepY := -2 * rowDistance * planeY / float64(w)

		for x := 0; x < w; x++ {
			tx := int(math.Floor(floorX / block))
			ty := int(math.Floor(floorY / block))
			shade := 1.0
			if (tx+ty)&1 != 0 {
				shade = floorOddShade
			}
			dist := mathutil.Distance(p.X, p.Y, floorX, floorY)
			brightness := math.Max(floorMinBrightness, 1-dist/(floorFadeBlocks*block)) * shade

			idx := (y*w + x) * 4
			pixels[idx] = uint8(float64(ground[0]) * brightness)
			pixels[idx+1] = uint8(float64(ground[1]) * brightness)
			pixels[idx+2] = uint8(float64(ground[2]) * brightness)
			pixels[idx+3] = 255

			floorX += stepX
			floorY += stepY
		}
	}
}
