// Package vmath provides the 2D vector helpers shared by movement and collision.
//
// Vectors are mgl32.Vec2 values. The helpers here cover what mgl32 leaves to the
// caller: zero-safe normalisation, perpendiculars, rotation and clamping.
package vmath

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Epsilon is the length below which a vector is treated as zero.
const Epsilon float32 = 1e-6

// Zero is the zero vector.
var Zero = mgl32.Vec2{}

// Vec returns a vector from its components.
func Vec(x, y float32) mgl32.Vec2 {
	return mgl32.Vec2{x, y}
}

// NearZero reports whether v is shorter than Epsilon.
func NearZero(v mgl32.Vec2) bool {
	return v.Len() < Epsilon
}

// SafeNormalize returns the unit vector of v, or the zero vector when v is
// too short to have a direction.
func SafeNormalize(v mgl32.Vec2) mgl32.Vec2 {
	l := v.Len()
	if l < Epsilon {
		return Zero
	}
	return v.Mul(1 / l)
}

// Perp returns v rotated 90 degrees counter-clockwise.
func Perp(v mgl32.Vec2) mgl32.Vec2 {
	return mgl32.Vec2{-v.Y(), v.X()}
}

// Rotate rotates v by angle radians.
func Rotate(v mgl32.Vec2, angle float32) mgl32.Vec2 {
	s, c := math32.Sincos(angle)
	return mgl32.Vec2{v.X()*c - v.Y()*s, v.X()*s + v.Y()*c}
}

// FromAngle returns the unit vector pointing at angle radians.
func FromAngle(angle float32) mgl32.Vec2 {
	s, c := math32.Sincos(angle)
	return mgl32.Vec2{c, s}
}

// Angle returns the heading of v in radians.
func Angle(v mgl32.Vec2) float32 {
	return math32.Atan2(v.Y(), v.X())
}

// Distance returns the euclidean distance between a and b.
func Distance(a, b mgl32.Vec2) float32 {
	return math32.Hypot(b.X()-a.X(), b.Y()-a.Y())
}

// Lerp interpolates from a towards b by t.
func Lerp(a, b mgl32.Vec2, t float32) mgl32.Vec2 {
	return a.Add(b.Sub(a).Mul(t))
}

// ClampLength shortens v to max if it is longer.
func ClampLength(v mgl32.Vec2, max float32) mgl32.Vec2 {
	l := v.Len()
	if l <= max || l < Epsilon {
		return v
	}
	return v.Mul(max / l)
}

// Clamp clamps f into [lo, hi]. When the range is inverted the midpoint wins.
func Clamp(f, lo, hi float32) float32 {
	if lo > hi {
		return (lo + hi) / 2
	}
	return math32.Max(lo, math32.Min(hi, f))
}

// ClampVec clamps each component of v into the box [min, max].
func ClampVec(v, min, max mgl32.Vec2) mgl32.Vec2 {
	return mgl32.Vec2{
		Clamp(v.X(), min.X(), max.X()),
		Clamp(v.Y(), min.Y(), max.Y()),
	}
}

// Finite reports whether both components are neither NaN nor infinite.
func Finite(v mgl32.Vec2) bool {
	return finite(v.X()) && finite(v.Y())
}

func finite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}

// FiniteScalar reports whether f is neither NaN nor infinite.
func FiniteScalar(f float32) bool {
	return finite(f)
}

// ApproxEqual compares two vectors component-wise within tol.
func ApproxEqual(a, b mgl32.Vec2, tol float32) bool {
	return math32.Abs(a.X()-b.X()) <= tol && math32.Abs(a.Y()-b.Y()) <= tol
}
