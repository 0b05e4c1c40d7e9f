// Package collision tracks contact pairs, dispatches collision responses
// between collidables, and queues bodies for removal outside the physics step.
package collision

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/younwookim/harborsweep/internal/domain/physics"
)

// Collidable is the capability an entity exposes to the collision engine.
//
// CollideWith is the first half of a double dispatch: each concrete type
// forwards to its Registry with itself as the receiver, and the registry
// picks the handler for the (self, other) type pair.
type Collidable interface {
	ID() string
	IsActive() bool
	SetActive(active bool)
	Position() mgl32.Vec2
	Size() mgl32.Vec2
	Body() physics.Body

	CollideWith(other Collidable)
	CollideWithBoundary()

	// IsInCollision reports whether the collision-active window is open.
	IsInCollision() bool
	// RefreshCollision reopens the collision-active window.
	RefreshCollision()
}

type boundaryMarker struct{}

func (*boundaryMarker) String() string { return "boundary" }

// Boundary is the payload carried by world-edge bodies.
var Boundary = &boundaryMarker{}

// IsBoundary reports whether payload is the world boundary.
func IsBoundary(payload any) bool {
	b, ok := payload.(*boundaryMarker)
	return ok && b == Boundary
}

// Covers reports whether the box of outer fully contains the box of inner.
// Positions are box centres.
func Covers(outer, inner Collidable) bool {
	oMin, oMax := bounds(outer)
	iMin, iMax := bounds(inner)
	return oMin.X() <= iMin.X() && oMin.Y() <= iMin.Y() &&
		oMax.X() >= iMax.X() && oMax.Y() >= iMax.Y()
}

// Overlaps reports whether the boxes of a and b intersect.
func Overlaps(a, b Collidable) bool {
	aMin, aMax := bounds(a)
	bMin, bMax := bounds(b)
	return aMin.X() < bMax.X() && bMin.X() < aMax.X() &&
		aMin.Y() < bMax.Y() && bMin.Y() < aMax.Y()
}

func bounds(c Collidable) (min, max mgl32.Vec2) {
	half := c.Size().Mul(0.5)
	return c.Position().Sub(half), c.Position().Add(half)
}
