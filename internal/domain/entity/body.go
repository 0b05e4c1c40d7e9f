package entity

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/younwookim/harborsweep/internal/domain/collision"
	"github.com/younwookim/harborsweep/internal/domain/movement"
	"github.com/younwookim/harborsweep/internal/domain/physics"
	"github.com/younwookim/harborsweep/internal/domain/vmath"
)

// DefaultCollisionDuration is the collision-active window, in seconds, when
// Options leaves it unset.
const DefaultCollisionDuration = 0.25

// Options holds what every entity kind is constructed with.
type Options struct {
	Size  mgl32.Vec2
	Speed float32
	// CollisionDuration is how long a hit keeps the entity "in collision".
	CollisionDuration float64
	Clock             collision.Clock
	Rules             *collision.Registry
}

// Entity is the state shared by all kinds. Concrete kinds embed it and add
// CollideWith so that dispatch sees the concrete type.
type Entity struct {
	movement.State

	id     string
	kind   Kind
	size   mgl32.Vec2
	active bool
	sprite int

	body     physics.Body
	window   collision.Window
	clock    collision.Clock
	duration float64
	rules    *collision.Registry
}

func newEntity(id string, kind Kind, pos mgl32.Vec2, opts Options) Entity {
	if opts.CollisionDuration <= 0 {
		opts.CollisionDuration = DefaultCollisionDuration
	}
	return Entity{
		State:    movement.NewState(pos, opts.Speed),
		id:       id,
		kind:     kind,
		size:     opts.Size,
		active:   true,
		clock:    opts.Clock,
		duration: opts.CollisionDuration,
		rules:    opts.Rules,
	}
}

func (e *Entity) ID() string                { return e.id }
func (e *Entity) Kind() Kind                { return e.kind }
func (e *Entity) IsActive() bool            { return e.active }
func (e *Entity) SetActive(active bool)     { e.active = active }
func (e *Entity) Size() mgl32.Vec2          { return e.size }
func (e *Entity) Body() physics.Body        { return e.body }
func (e *Entity) AttachBody(b physics.Body) { e.body = b }

// SetVelocity also turns the sprite to face the new heading.
func (e *Entity) SetVelocity(v mgl32.Vec2) {
	e.State.SetVelocity(v)
	if vmath.NearZero(v) {
		return
	}
	if abs(v.X()) >= abs(v.Y()) {
		e.sprite = SpriteRight
		if v.X() < 0 {
			e.sprite = SpriteLeft
		}
		return
	}
	e.sprite = SpriteDown
	if v.Y() < 0 {
		e.sprite = SpriteUp
	}
}

// Sprite returns the current sprite index.
func (e *Entity) Sprite() int { return e.sprite }

func (e *Entity) now() float64 {
	if e.clock == nil {
		return 0
	}
	return e.clock.Now()
}

// IsInCollision reports whether the entity was hit within the last
// collision duration.
func (e *Entity) IsInCollision() bool {
	return e.window.Active(e.now())
}

// RefreshCollision reopens the collision-active window.
func (e *Entity) RefreshCollision() {
	e.window.Refresh(e.now(), e.duration)
}

// ClearCollision closes the collision-active window early.
func (e *Entity) ClearCollision() {
	e.window.Clear()
}

// Transform returns the entity as the renderer sees it.
func (e *Entity) Transform() Transform {
	p := e.Position()
	return Transform{
		X:      p.X(),
		Y:      p.Y(),
		Width:  e.size.X(),
		Height: e.size.Y(),
		Active: e.active,
		Sprite: e.sprite,
	}
}

func (e *Entity) dispatch(self, other collision.Collidable) {
	if e.rules != nil {
		e.rules.Dispatch(self, other)
	}
}

func abs(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
