package mathutil

import "math"

// Angles in this package are degrees. The world uses a screen-style frame
// where +y points down, so a positive angle rotates counter-clockwise on
// screen and the y component of a direction is negated.

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// NormalizeAngle maps any finite angle into [0, 360).
func NormalizeAngle(angle float64) float64 {
	a := math.Mod(angle, 360)
	if a < 0 {
		a += 360
	}
	// -tiny + 360 rounds to 360 and -0 must collapse to 0
	if a >= 360 || a == 0 {
		return 0
	}
	return a
}

// Direction returns the unit vector for angle: (cos, -sin).
func Direction(angle float64) (float64, float64) {
	rad := DegToRad(angle)
	return math.Cos(rad), -math.Sin(rad)
}

// Distance returns the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// FixFisheye projects a radial distance onto the viewing axis.
func FixFisheye(viewAngle, rayAngle, distance float64) float64 {
	return distance * math.Cos(DegToRad(viewAngle-rayAngle))
}
