// Package geometry provides the 2D kinematics used to describe pointer movement.
package geometry

import "math"

// Point is a surface-relative position. Y grows downward.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Center returns the midpoint of a and b.
func Center(a, b Point) Point {
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Vector is the movement from Start to End.
type Vector struct {
	Start Point   `json:"start"`
	End   Point   `json:"end"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	// Length is the Euclidean norm of (X, Y).
	Length float64 `json:"length"`
	// Direction is the angle of the vector in degrees, measured from the
	// positive X axis.
	Direction float64 `json:"direction"`
}

// NewVector returns the vector pointing from start to end.
func NewVector(start, end Point) Vector {
	dx := end.X - start.X
	dy := end.Y - start.Y
	return Vector{
		Start:     start,
		End:       end,
		X:         dx,
		Y:         dy,
		Length:    math.Hypot(dx, dy),
		Direction: degrees(math.Atan2(dy, dx)),
	}
}

// IsZero reports whether the vector has no length.
func (v Vector) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// LineAngle returns the angle in degrees of the line running from a to b.
func LineAngle(a, b Point) float64 {
	return degrees(math.Atan2(b.Y-a.Y, b.X-a.X))
}

// NormalizeAngle maps an angle in degrees into (-180, 180].
func NormalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg > 180 {
		deg -= 360
	} else if deg <= -180 {
		deg += 360
	}
	return deg
}

// Rotation returns the signed change in degrees from angle from to angle to,
// taking the shorter way around.
func Rotation(from, to float64) float64 {
	return NormalizeAngle(to - from)
}

// Speed divides distance by elapsed. A non-positive elapsed time yields 0.
func Speed(distance, elapsed float64) float64 {
	if elapsed <= 0 {
		return 0
	}
	return distance / elapsed
}

// RelativeChange returns (current-reference)/reference. ok is false when the
// reference is zero and the ratio is undefined.
func RelativeChange(reference, current float64) (change float64, ok bool) {
	if reference == 0 {
		return 0, false
	}
	return (current - reference) / reference, true
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
