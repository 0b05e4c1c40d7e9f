package entity

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/younwookim/harborsweep/internal/domain/collision"
	"github.com/younwookim/harborsweep/internal/domain/movement"
)

// Mover is a collidable that a strategy can move.
type Mover interface {
	collision.Collidable
	movement.Movable
}

// Collector picks up collectibles it fully covers.
type Collector interface {
	Mover
	Collect(item Collectible)
}

// Collectible can be picked up by a Collector.
type Collectible interface {
	collision.Collidable
	IsPermanent() bool
	Value() int
}

// Obstacle is a static collidable that pushes movers away.
type Obstacle interface {
	collision.Collidable
	BaseForce() float32
}

// Boat is the player-controlled collector.
type Boat struct {
	Entity
	haul  int
	score int
}

// NewBoat creates a boat centred at pos.
func NewBoat(id string, pos mgl32.Vec2, opts Options) *Boat {
	return &Boat{Entity: newEntity(id, KindBoat, pos, opts)}
}

func (b *Boat) CollideWith(other collision.Collidable) { b.dispatch(b, other) }
func (b *Boat) CollideWithBoundary()                   { b.RefreshCollision() }

// Collect counts item towards the boat's haul.
func (b *Boat) Collect(item Collectible) {
	b.haul++
	b.score += item.Value()
}

// Haul returns how many items the boat has collected.
func (b *Boat) Haul() int { return b.haul }

// Score returns the summed value of collected items.
func (b *Boat) Score() int { return b.score }

// Trash is floating debris. Permanent trash is never collected.
type Trash struct {
	Entity
	Permanent bool
	worth     int
}

// NewTrash creates a piece of trash centred at pos worth value points.
func NewTrash(id string, pos mgl32.Vec2, value int, opts Options) *Trash {
	return &Trash{Entity: newEntity(id, KindTrash, pos, opts), worth: value}
}

func (t *Trash) CollideWith(other collision.Collidable) { t.dispatch(t, other) }
func (t *Trash) CollideWithBoundary()                   { t.RefreshCollision() }
func (t *Trash) IsPermanent() bool                      { return t.Permanent }
func (t *Trash) Value() int                             { return t.worth }

// Rock is a static obstacle.
type Rock struct {
	Entity
	force float32
}

// NewRock creates a rock centred at pos pushing movers with baseForce.
func NewRock(id string, pos mgl32.Vec2, baseForce float32, opts Options) *Rock {
	return &Rock{Entity: newEntity(id, KindRock, pos, opts), force: baseForce}
}

func (r *Rock) CollideWith(other collision.Collidable) { r.dispatch(r, other) }
func (r *Rock) CollideWithBoundary()                   { r.RefreshCollision() }
func (r *Rock) BaseForce() float32                     { return r.force }

// DefaultBiteCooldown is the pause, in seconds, between two shark bites.
const DefaultBiteCooldown = 1.0

// Shark is a hostile mover that knocks boats back on contact.
type Shark struct {
	Entity
	// BiteCooldown is the minimum time between bites.
	BiteCooldown float64

	knockback float32
	bites     int
	cooldown  collision.Window
}

// NewShark creates a shark centred at pos.
func NewShark(id string, pos mgl32.Vec2, knockback float32, opts Options) *Shark {
	return &Shark{
		Entity:       newEntity(id, KindShark, pos, opts),
		BiteCooldown: DefaultBiteCooldown,
		knockback:    knockback,
	}
}

func (s *Shark) CollideWith(other collision.Collidable) { s.dispatch(s, other) }
func (s *Shark) CollideWithBoundary()                   { s.RefreshCollision() }
func (s *Shark) Knockback() float32                     { return s.knockback }
func (s *Shark) Bites() int                             { return s.bites }

// TryBite records a bite unless the shark bit within the cooldown.
func (s *Shark) TryBite() bool {
	now := s.now()
	if s.cooldown.Active(now) {
		return false
	}
	s.cooldown.Refresh(now, s.BiteCooldown)
	s.bites++
	return true
}

var (
	_ Collector   = (*Boat)(nil)
	_ Collectible = (*Trash)(nil)
	_ Obstacle    = (*Rock)(nil)
	_ Mover       = (*Shark)(nil)
	_ Mover       = (*Trash)(nil)
)
