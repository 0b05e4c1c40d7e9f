// Package chipmunk adapts the Chipmunk2D port github.com/jakecoffman/cp to
// physics.World. Entities are unrotatable boxes; the world edges are static
// segments whose payload is collision.Boundary.
package chipmunk

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jakecoffman/cp"
	"github.com/younwookim/harborsweep/internal/domain/collision"
	"github.com/younwookim/harborsweep/internal/domain/physics"
)

const (
	entityType cp.CollisionType = iota + 1
	boundaryType
)

const (
	wallRadius = 1
	elasticity = 0.3
	friction   = 0.2
)

func vec(v mgl32.Vec2) cp.Vector {
	return cp.Vector{X: float64(v.X()), Y: float64(v.Y())}
}

func fromVec(v cp.Vector) mgl32.Vec2 {
	return mgl32.Vec2{float32(v.X), float32(v.Y)}
}

type body struct {
	world     *World
	cb        *cp.Body
	shape     *cp.Shape
	static    bool
	damping   float64
	destroyed bool
}

func (b *body) Position() mgl32.Vec2 { return fromVec(b.cb.Position()) }
func (b *body) Velocity() mgl32.Vec2 { return fromVec(b.cb.Velocity()) }
func (b *body) Payload() any         { return b.cb.UserData }
func (b *body) Destroyed() bool      { return b.destroyed }

// SetPosition moves a dynamic body. Static bodies stay where they were
// created.
func (b *body) SetPosition(p mgl32.Vec2) {
	if !b.static {
		b.cb.SetPosition(vec(p))
	}
}

func (b *body) SetVelocity(v mgl32.Vec2) {
	if !b.static {
		b.cb.SetVelocityVector(vec(v))
	}
}

func (b *body) ApplyImpulse(impulse, point mgl32.Vec2) {
	if !b.static {
		b.cb.ApplyImpulseAtWorldPoint(vec(impulse), vec(point))
	}
}

func (b *body) SetLinearDamping(d float32) {
	b.damping = math.Max(float64(d), 0)
}

// updateVelocity is cp's default integration followed by linear damping.
func (b *body) updateVelocity(cb *cp.Body, gravity cp.Vector, damping, dt float64) {
	cp.BodyUpdateVelocity(cb, gravity, damping, dt)
	if b.damping > 0 {
		cb.SetVelocityVector(cb.Velocity().Mult(1 / (1 + dt*b.damping)))
	}
}

// World is the Chipmunk physics.World.
type World struct {
	space    *cp.Space
	walls    *cp.Body
	listener physics.ContactListener

	stepping bool
	doomed   []*body
}

// New creates a gravity-free space enclosed by bounds.
func New(bounds physics.Bounds) *World {
	w := &World{space: cp.NewSpace()}
	w.space.SetGravity(cp.Vector{})

	w.walls = w.space.AddBody(cp.NewStaticBody())
	w.walls.UserData = collision.Boundary
	lo, hi := vec(bounds.Min), vec(bounds.Max)
	corners := []cp.Vector{lo, {X: hi.X, Y: lo.Y}, hi, {X: lo.X, Y: hi.Y}}
	for i, a := range corners {
		b := corners[(i+1)%len(corners)]
		wall := w.space.AddShape(cp.NewSegment(w.walls, a, b, wallRadius))
		wall.SetCollisionType(boundaryType)
		wall.SetElasticity(elasticity)
		wall.SetFriction(friction)
	}

	for _, other := range []cp.CollisionType{entityType, boundaryType} {
		h := w.space.NewCollisionHandler(entityType, other)
		h.BeginFunc = w.begin
		h.SeparateFunc = w.separate
	}
	return w
}

func (w *World) begin(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
	if w.listener != nil {
		a, b := arb.Bodies()
		w.listener.BeginContact(a.UserData, b.UserData)
	}
	return true
}

func (w *World) separate(arb *cp.Arbiter, _ *cp.Space, _ interface{}) {
	if w.listener != nil {
		a, b := arb.Bodies()
		w.listener.EndContact(a.UserData, b.UserData)
	}
}

// CreateBody adds a box body. Dynamic bodies never rotate.
func (w *World) CreateBody(def physics.BodyDef) physics.Body {
	b := &body{world: w, static: def.Kind == physics.Static}
	if b.static {
		b.cb = cp.NewStaticBody()
	} else {
		mass := float64(def.Mass)
		if mass <= 0 {
			mass = 1
		}
		b.cb = cp.NewBody(mass, math.Inf(1))
		b.cb.SetVelocityUpdateFunc(b.updateVelocity)
	}
	b.cb.UserData = def.Payload
	b.cb.SetPosition(vec(def.Position))
	b.SetLinearDamping(def.LinearDamping)
	w.space.AddBody(b.cb)

	size := vec(def.Size)
	b.shape = w.space.AddShape(cp.NewBox(b.cb, size.X, size.Y, 0))
	b.shape.SetCollisionType(entityType)
	b.shape.SetSensor(def.Sensor)
	b.shape.SetElasticity(elasticity)
	b.shape.SetFriction(friction)
	return b
}

// DestroyBody removes a body from the space. Chipmunk forbids removal while
// the space is stepping, so removal is then postponed until Step returns.
func (w *World) DestroyBody(pb physics.Body) {
	b, ok := pb.(*body)
	if !ok || b.destroyed || b.world != w {
		return
	}
	if w.stepping {
		w.doomed = append(w.doomed, b)
		return
	}
	w.destroy(b)
}

func (w *World) destroy(b *body) {
	if b.destroyed {
		return
	}
	b.destroyed = true
	w.space.RemoveShape(b.shape)
	w.space.RemoveBody(b.cb)
}

// SetContactListener sets the receiver of contact events.
func (w *World) SetContactListener(l physics.ContactListener) {
	w.listener = l
}

// Step advances the space by dt seconds.
func (w *World) Step(dt float32) {
	if dt <= 0 {
		return
	}
	w.stepping = true
	w.space.Step(float64(dt))
	w.stepping = false

	doomed := w.doomed
	w.doomed = nil
	for _, b := range doomed {
		w.destroy(b)
	}
}

var _ physics.World = (*World)(nil)
