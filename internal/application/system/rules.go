package system

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/younwookim/harborsweep/internal/domain/collision"
	"github.com/younwookim/harborsweep/internal/domain/entity"
	"github.com/younwookim/harborsweep/internal/domain/vmath"
)

// Remover schedules entities for deferred removal.
type Remover interface {
	ScheduleRemoval(c collision.Collidable) bool
}

// Rules holds the collision responses between entity kinds
type Rules struct {
	remover Remover

	// Event callbacks
	OnEvent func(Event)
}

// NewRules creates the rule set. Collected items are handed to remover.
func NewRules(remover Remover) *Rules {
	return &Rules{remover: remover}
}

// NewRegistry creates a registry with the default repulsion and every rule
// registered.
func (r *Rules) NewRegistry(defaultImpulse float32) *collision.Registry {
	reg := collision.NewRegistry(collision.Repel(defaultImpulse))
	r.Register(reg)
	return reg
}

// Register adds the kind-specific handlers to reg.
func (r *Rules) Register(reg *collision.Registry) {
	collision.Handle(reg, r.obstacleHitsMover)
	collision.Handle(reg, func(self entity.Mover, _ entity.Obstacle) { self.RefreshCollision() })
	collision.Handle(reg, func(self *entity.Rock, _ *entity.Rock) { self.RefreshCollision() })

	collision.Handle(reg, r.collect)
	collision.Handle(reg, func(entity.Collector, entity.Collectible) {})

	collision.Handle(reg, r.bite)
	collision.Handle(reg, func(self *entity.Boat, _ *entity.Shark) { self.RefreshCollision() })
}

func (r *Rules) emit(e Event) {
	if r.OnEvent != nil {
		r.OnEvent(e)
	}
}

// obstacleHitsMover pushes the mover radially away from the obstacle with
// the obstacle's base force scaled down by distance.
func (r *Rules) obstacleHitsMover(self entity.Obstacle, other entity.Mover) {
	self.RefreshCollision()
	body := other.Body()
	if body == nil || body.Destroyed() {
		return
	}
	offset := other.Position().Sub(self.Position())
	dir := vmath.SafeNormalize(offset)
	if vmath.NearZero(dir) {
		dir = vmath.Vec(0, -1)
	}
	magnitude := self.BaseForce() / math32.Max(offset.Len(), 1)
	body.ApplyImpulse(dir.Mul(magnitude), other.Position())
	r.emit(PushedEvent{Obstacle: self.ID(), Mover: other.ID(), Impulse: magnitude})
}

// collect hands a fully covered item to its collector. Permanent items stay
// where they are.
func (r *Rules) collect(self entity.Collectible, other entity.Collector) {
	if self.IsPermanent() || !self.IsActive() || !collision.Covers(other, self) {
		return
	}
	self.SetActive(false)
	other.Collect(self)
	r.remover.ScheduleRemoval(self)
	r.emit(CollectedEvent{Collector: other.ID(), Item: self.ID(), Value: self.Value()})
}

// bite knocks the boat away from the shark, at most once per cooldown.
func (r *Rules) bite(self *entity.Shark, other *entity.Boat) {
	self.RefreshCollision()
	if !self.TryBite() {
		return
	}
	other.RefreshCollision()
	if body := other.Body(); body != nil && !body.Destroyed() {
		dir := vmath.SafeNormalize(other.Position().Sub(self.Position()))
		if vmath.NearZero(dir) {
			dir = mgl32.Vec2{0, -1}
		}
		body.ApplyImpulse(dir.Mul(self.Knockback()), other.Position())
	}
	r.emit(BittenEvent{Shark: self.ID(), Boat: other.ID(), Bites: self.Bites()})
}
