// Package kinematic is a headless physics backend: bodies integrate their
// velocity with linear damping, stay inside the world bounds, and report
// axis-aligned box overlaps as contacts. It has no contact response.
package kinematic

import (
	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/younwookim/harborsweep/internal/domain/collision"
	"github.com/younwookim/harborsweep/internal/domain/physics"
)

type body struct {
	def       physics.BodyDef
	pos, vel  mgl32.Vec2
	invMass   float32
	damping   float32
	destroyed bool
	onEdge    bool
}

func (b *body) Position() mgl32.Vec2       { return b.pos }
func (b *body) SetPosition(p mgl32.Vec2)   { b.pos = p }
func (b *body) Velocity() mgl32.Vec2       { return b.vel }
func (b *body) Payload() any               { return b.def.Payload }
func (b *body) Destroyed() bool            { return b.destroyed }
func (b *body) SetLinearDamping(d float32) { b.damping = max(d, 0) }

func (b *body) SetVelocity(v mgl32.Vec2) {
	if b.def.Kind == physics.Dynamic {
		b.vel = v
	}
}

// ApplyImpulse changes velocity by impulse/mass. There is no rotation, so
// the point is ignored.
func (b *body) ApplyImpulse(impulse, _ mgl32.Vec2) {
	if b.def.Kind == physics.Dynamic {
		b.vel = b.vel.Add(impulse.Mul(b.invMass))
	}
}

func (b *body) overlaps(o *body) bool {
	ah, bh := b.def.Size.Mul(0.5), o.def.Size.Mul(0.5)
	d := b.pos.Sub(o.pos)
	return abs(d.X()) < ah.X()+bh.X() && abs(d.Y()) < ah.Y()+bh.Y()
}

type contact [2]*body

// World is the kinematic physics.World.
type World struct {
	bounds   physics.Bounds
	bodies   []*body
	listener physics.ContactListener
	contacts *orderedmap.OrderedMap[contact, struct{}]

	stepping bool
	doomed   []*body
}

// New creates a world confined to bounds.
func New(bounds physics.Bounds) *World {
	return &World{
		bounds:   bounds,
		contacts: orderedmap.NewOrderedMap[contact, struct{}](),
	}
}

// CreateBody adds a body. A non-positive mass counts as 1.
func (w *World) CreateBody(def physics.BodyDef) physics.Body {
	mass := def.Mass
	if mass <= 0 {
		mass = 1
	}
	b := &body{def: def, pos: def.Position, invMass: 1 / mass}
	b.SetLinearDamping(def.LinearDamping)
	w.bodies = append(w.bodies, b)
	return b
}

// DestroyBody removes a body, ending its contacts. While stepping, the body
// is removed once the step finishes.
func (w *World) DestroyBody(pb physics.Body) {
	b, ok := pb.(*body)
	if !ok || b.destroyed {
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
	for i, o := range w.bodies {
		if o == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			break
		}
	}
	var ended []contact
	for el := w.contacts.Front(); el != nil; el = el.Next() {
		if el.Key[0] == b || el.Key[1] == b {
			ended = append(ended, el.Key)
		}
	}
	for _, c := range ended {
		w.contacts.Delete(c)
		w.end(c[0].def.Payload, c[1].def.Payload)
	}
	if b.onEdge {
		b.onEdge = false
		w.end(b.def.Payload, collision.Boundary)
	}
}

// SetContactListener sets the receiver of contact events.
func (w *World) SetContactListener(l physics.ContactListener) {
	w.listener = l
}

// Len returns the number of live bodies.
func (w *World) Len() int {
	return len(w.bodies)
}

// Step advances the world by dt seconds.
func (w *World) Step(dt float32) {
	if dt <= 0 {
		return
	}
	w.stepping = true
	for _, b := range w.bodies {
		if b.def.Kind != physics.Dynamic {
			continue
		}
		b.pos = b.pos.Add(b.vel.Mul(dt))
		b.vel = b.vel.Mul(1 / (1 + dt*b.damping))
		w.confine(b)
	}
	w.detect()
	w.stepping = false

	doomed := w.doomed
	w.doomed = nil
	for _, b := range doomed {
		w.destroy(b)
	}
}

// confine keeps b inside the bounds and reports boundary contacts. A body
// resting against an edge stays in contact with the boundary.
func (w *World) confine(b *body) {
	inner := w.bounds.Inset(b.def.Size)
	x, y := b.pos.X(), b.pos.Y()
	vx, vy := b.vel.X(), b.vel.Y()
	touching := false
	if x <= inner.Min.X() {
		x, vx, touching = inner.Min.X(), max(vx, 0), true
	} else if x >= inner.Max.X() {
		x, vx, touching = inner.Max.X(), min(vx, 0), true
	}
	if y <= inner.Min.Y() {
		y, vy, touching = inner.Min.Y(), max(vy, 0), true
	} else if y >= inner.Max.Y() {
		y, vy, touching = inner.Max.Y(), min(vy, 0), true
	}
	b.pos, b.vel = mgl32.Vec2{x, y}, mgl32.Vec2{vx, vy}

	switch {
	case touching && !b.onEdge:
		b.onEdge = true
		w.begin(b.def.Payload, collision.Boundary)
	case !touching && b.onEdge:
		b.onEdge = false
		w.end(b.def.Payload, collision.Boundary)
	}
}

func (w *World) detect() {
	seen := make(map[contact]bool)
	for i, a := range w.bodies {
		for _, b := range w.bodies[i+1:] {
			if a.def.Kind == physics.Static && b.def.Kind == physics.Static {
				continue
			}
			if !a.overlaps(b) {
				continue
			}
			c := contact{a, b}
			seen[c] = true
			if _, ok := w.contacts.Get(c); !ok {
				w.contacts.Set(c, struct{}{})
				w.begin(a.def.Payload, b.def.Payload)
			}
		}
	}

	var ended []contact
	for el := w.contacts.Front(); el != nil; el = el.Next() {
		if !seen[el.Key] {
			ended = append(ended, el.Key)
		}
	}
	for _, c := range ended {
		w.contacts.Delete(c)
		w.end(c[0].def.Payload, c[1].def.Payload)
	}
}

func (w *World) begin(a, b any) {
	if w.listener != nil {
		w.listener.BeginContact(a, b)
	}
}

func (w *World) end(a, b any) {
	if w.listener != nil {
		w.listener.EndContact(a, b)
	}
}

func abs(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}

var _ physics.World = (*World)(nil)
