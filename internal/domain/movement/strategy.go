// Package movement implements the pluggable per-frame motion algorithms and
// the manager that applies them to a Movable.
//
// A Strategy mutates the movable's position and velocity in place. Every
// strategy leaves the movable untouched when dt is zero.
package movement

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/younwookim/harborsweep/internal/domain/vmath"
)

// arriveEpsilon is the distance under which a seeking mover counts as arrived.
const arriveEpsilon float32 = 1e-3

// Strategy is one motion algorithm.
type Strategy interface {
	Move(m Movable, dt float32) error
}

// StrategyFunc adapts a function to the Strategy interface.
type StrategyFunc func(m Movable, dt float32) error

func (f StrategyFunc) Move(m Movable, dt float32) error {
	return f(m, dt)
}

// checkDelta validates dt and reports whether there is any time to simulate.
func checkDelta(dt float32) (bool, error) {
	if !vmath.FiniteScalar(dt) || dt < 0 {
		return false, errors.Wrapf(ErrInvalidDelta, "dt=%v", dt)
	}
	return dt > 0, nil
}

// speedOr returns override when positive, else the movable's own speed.
func speedOr(override float32, m Movable) float32 {
	if override > 0 {
		return override
	}
	return m.Speed()
}

// seek moves m towards point at speed without overshooting it.
func seek(m Movable, point mgl32.Vec2, speed, dt float32) {
	to := point.Sub(m.Position())
	dist := to.Len()
	if dist < arriveEpsilon || speed <= 0 {
		m.ClearVelocity()
		return
	}
	unit := to.Mul(1 / dist)
	step := math32.Min(speed*dt, dist)
	m.SetVelocity(unit.Mul(speed))
	m.SetPosition(m.Position().Add(unit.Mul(step)))
}
