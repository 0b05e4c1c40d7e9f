// Package physics defines the contract between the simulation core and a
// rigid-body backend. Backends live under internal/infrastructure/physics.
package physics

import (
	"github.com/go-gl/mathgl/mgl32"
)

// BodyKind selects how a body takes part in the simulation.
type BodyKind int

const (
	// Dynamic bodies are moved by impulses and contacts.
	Dynamic BodyKind = iota
	// Static bodies never move and have infinite mass.
	Static
)

// BodyDef describes a body to create. Position is the body centre.
type BodyDef struct {
	Kind          BodyKind
	Position      mgl32.Vec2
	Size          mgl32.Vec2
	Mass          float32
	LinearDamping float32
	// Sensor bodies report contacts but get no contact response.
	Sensor bool
	// Payload is handed back in contact events, normally the owning
	// collidable.
	Payload any
}

// Bounds is an axis-aligned world rectangle.
type Bounds struct {
	Min, Max mgl32.Vec2
}

// NewBounds returns the rectangle from the origin to size.
func NewBounds(width, height float32) Bounds {
	return Bounds{Max: mgl32.Vec2{width, height}}
}

// Size returns the rectangle's extent.
func (b Bounds) Size() mgl32.Vec2 {
	return b.Max.Sub(b.Min)
}

// Inset shrinks the rectangle by half on every side, so a box of the given
// size centred anywhere inside the result stays inside b.
func (b Bounds) Inset(size mgl32.Vec2) Bounds {
	half := size.Mul(0.5)
	return Bounds{Min: b.Min.Add(half), Max: b.Max.Sub(half)}
}

// Body is a backend-owned rigid body. Callers hold the handle but never own
// the body's lifetime.
type Body interface {
	Position() mgl32.Vec2
	SetPosition(p mgl32.Vec2)
	Velocity() mgl32.Vec2
	SetVelocity(v mgl32.Vec2)
	ApplyImpulse(impulse, point mgl32.Vec2)
	SetLinearDamping(d float32)
	Payload() any
	// Destroyed reports whether the body has been removed from its world.
	Destroyed() bool
}

// ContactListener receives contact begin/end events during Step. Payloads
// are opaque; implementations must only record them, since mutating the
// world inside a step is unsafe.
type ContactListener interface {
	BeginContact(a, b any)
	EndContact(a, b any)
}

// World is a physics backend.
type World interface {
	CreateBody(def BodyDef) Body
	DestroyBody(b Body)
	SetContactListener(l ContactListener)
	Step(dt float32)
}
