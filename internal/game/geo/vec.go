// Package geo provides the 2D vector math used by the simulation plane:
// distances, normalization, and the angular helpers combat and steering
// are built on.
package geo

import "math"

// Vec2 is a point or direction on the simulation plane.
type Vec2 struct {
	X float64
	Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

// Length returns the Euclidean length of v.
func (v Vec2) Length() float64 { return math.Hypot(v.X, v.Y) }

// IsZero reports whether both components are exactly zero.
func (v Vec2) IsZero() bool { return v.X == 0 && v.Y == 0 }

// Normalize returns v scaled to unit length. The zero vector normalizes
// to the zero vector.
//
// Postcondition: Returns a vector of length 1, or the zero vector.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Distance returns the Euclidean distance between points a and b.
func Distance(a, b Vec2) float64 {
	return b.Sub(a).Length()
}

// AngleBetweenDeg returns the unsigned angle in degrees between directions
// a and b, in [0, 180]. A zero vector on either side yields 180 so that a
// degenerate direction can never pass a strict arc check.
//
// Postcondition: Returns a value in [0, 180].
func AngleBetweenDeg(a, b Vec2) float64 {
	la, lb := a.Length(), b.Length()
	if la == 0 || lb == 0 {
		return 180
	}
	cos := a.Dot(b) / (la * lb)
	// Guard against floating point drift before acos.
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return math.Acos(cos) * 180 / math.Pi
}

// FromAngleDeg returns the unit direction at the given angle in degrees,
// measured counter-clockwise from the +X axis.
func FromAngleDeg(deg float64) Vec2 {
	r := deg * math.Pi / 180
	return Vec2{math.Cos(r), math.Sin(r)}
}

// AngleDeg returns v's heading in degrees in [0, 360), measured
// counter-clockwise from the +X axis. The zero vector reports 0.
func (v Vec2) AngleDeg() float64 {
	if v.IsZero() {
		return 0
	}
	deg := math.Atan2(v.Y, v.X) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return deg
}

// RotateTowardDeg turns direction current toward direction target by at
// most maxStepDeg degrees, rotating the short way around. Both inputs are
// treated as headings; the result is a unit vector. When current is zero
// the target direction is returned unchanged.
//
// Precondition: maxStepDeg >= 0.
// Postcondition: AngleBetweenDeg(result, target) <= AngleBetweenDeg(current, target).
func RotateTowardDeg(current, target Vec2, maxStepDeg float64) Vec2 {
	if target.IsZero() {
		return current
	}
	if current.IsZero() {
		return target.Normalize()
	}
	diff := AngleBetweenDeg(current, target)
	if diff <= maxStepDeg {
		return target.Normalize()
	}
	// Cross product sign picks the turn direction.
	cross := current.X*target.Y - current.Y*target.X
	step := maxStepDeg
	if cross < 0 {
		step = -maxStepDeg
	}
	return FromAngleDeg(current.AngleDeg() + step)
}
