package movement

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/younwookim/harborsweep/internal/domain/vmath"
)

// Positionable is anything with a readable position. Strategies hold
// Positionable targets by reference and never own them.
type Positionable interface {
	Position() mgl32.Vec2
}

// Tracked is a Positionable whose velocity can be read, used for interception.
type Tracked interface {
	Positionable
	Velocity() mgl32.Vec2
}

// Movable is the capability a strategy needs to move something.
type Movable interface {
	Tracked
	SetPosition(p mgl32.Vec2)
	Speed() float32
	SetSpeed(s float32)
	SetVelocity(v mgl32.Vec2)
	NormalizeVelocity()
	ClearVelocity()
}

// State is the plain Movable implementation. Entities embed it, and the
// composite strategy uses copies of it as shadow state.
type State struct {
	pos   mgl32.Vec2
	speed float32
	vel   mgl32.Vec2
}

// NewState creates a state at pos with the given speed.
func NewState(pos mgl32.Vec2, speed float32) State {
	return State{pos: pos, speed: speed}
}

// Snapshot copies any Movable into a detached State.
func Snapshot(m Movable) *State {
	return &State{pos: m.Position(), speed: m.Speed(), vel: m.Velocity()}
}

func (s *State) Position() mgl32.Vec2     { return s.pos }
func (s *State) SetPosition(p mgl32.Vec2) { s.pos = p }
func (s *State) Speed() float32           { return s.speed }
func (s *State) SetSpeed(v float32)       { s.speed = v }
func (s *State) Velocity() mgl32.Vec2     { return s.vel }
func (s *State) SetVelocity(v mgl32.Vec2) { s.vel = v }
func (s *State) ClearVelocity()           { s.vel = vmath.Zero }

// NormalizeVelocity rescales the velocity to unit length, keeping its heading.
func (s *State) NormalizeVelocity() {
	s.vel = vmath.SafeNormalize(s.vel)
}
