package collision

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/younwookim/harborsweep/internal/domain/physics"
)

type fakeBody struct {
	pos, vel  mgl32.Vec2
	impulses  []mgl32.Vec2
	damping   float32
	payload   any
	destroyed bool
}

func (b *fakeBody) Position() mgl32.Vec2       { return b.pos }
func (b *fakeBody) SetPosition(p mgl32.Vec2)   { b.pos = p }
func (b *fakeBody) Velocity() mgl32.Vec2       { return b.vel }
func (b *fakeBody) SetVelocity(v mgl32.Vec2)   { b.vel = v }
func (b *fakeBody) SetLinearDamping(d float32) { b.damping = d }
func (b *fakeBody) Payload() any               { return b.payload }
func (b *fakeBody) Destroyed() bool            { return b.destroyed }
func (b *fakeBody) ApplyImpulse(impulse, _ mgl32.Vec2) {
	b.impulses = append(b.impulses, impulse)
}

// fakeCollidable records what happened to it.
type fakeCollidable struct {
	id        string
	active    bool
	pos, size mgl32.Vec2
	body      *fakeBody
	rules     *Registry

	hits      []string
	boundary  int
	refreshed int
	colliding bool
}

func newFake(id string, x, y, size float32) *fakeCollidable {
	f := &fakeCollidable{
		id:     id,
		active: true,
		pos:    mgl32.Vec2{x, y},
		size:   mgl32.Vec2{size, size},
		body:   &fakeBody{pos: mgl32.Vec2{x, y}},
	}
	f.body.payload = f
	return f
}

func (f *fakeCollidable) ID() string           { return f.id }
func (f *fakeCollidable) IsActive() bool       { return f.active }
func (f *fakeCollidable) SetActive(a bool)     { f.active = a }
func (f *fakeCollidable) Position() mgl32.Vec2 { return f.pos }
func (f *fakeCollidable) Size() mgl32.Vec2     { return f.size }
func (f *fakeCollidable) Body() physics.Body   { return f.body }
func (f *fakeCollidable) CollideWithBoundary() { f.boundary++ }
func (f *fakeCollidable) IsInCollision() bool  { return f.colliding }
func (f *fakeCollidable) RefreshCollision()    { f.refreshed++; f.colliding = true }
func (f *fakeCollidable) CollideWith(o Collidable) {
	f.hits = append(f.hits, o.ID())
	if f.rules != nil {
		f.rules.Dispatch(f, o)
	}
}

// rockLike is a second concrete type for registry tests.
type rockLike struct{ *fakeCollidable }

// heavy is an extra capability only rockLike has.
type heavy interface {
	Collidable
	Mass() float32
}

func (rockLike) Mass() float32 { return 100 }

var _ physics.Body = (*fakeBody)(nil)
