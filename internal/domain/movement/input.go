package movement

import "github.com/go-gl/mathgl/mgl32"

// Direction is one logical input direction.
type Direction uint8

const (
	Up Direction = 1 << iota
	Down
	Left
	Right
)

// Directions is the set of directions pressed during one frame.
type Directions uint8

// Press returns the set with d added.
func (ds Directions) Press(d Direction) Directions {
	return ds | Directions(d)
}

// Has reports whether d is pressed.
func (ds Directions) Has(d Direction) bool {
	return ds&Directions(d) != 0
}

// Vector maps the pressed directions to a velocity vector in screen space
// (y grows downward). Opposite directions cancel. The result is not
// normalised; strategies decide the magnitude.
func (ds Directions) Vector() mgl32.Vec2 {
	var v mgl32.Vec2
	if ds.Has(Up) {
		v[1]--
	}
	if ds.Has(Down) {
		v[1]++
	}
	if ds.Has(Left) {
		v[0]--
	}
	if ds.Has(Right) {
		v[0]++
	}
	return v
}
