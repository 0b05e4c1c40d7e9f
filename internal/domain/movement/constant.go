package movement

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/younwookim/harborsweep/internal/domain/vmath"
)

// Constant moves at a fixed speed along a heading. The heading is Direction
// when set, otherwise the movable's current velocity; it is normalised so
// diagonal and cardinal movement cover the same distance.
type Constant struct {
	Direction mgl32.Vec2
	Speed     float32 // falls back to the movable's speed when <= 0
}

// NewConstant returns a constant strategy that follows the movable's velocity.
func NewConstant() *Constant {
	return &Constant{}
}

func (c *Constant) Move(m Movable, dt float32) error {
	if ok, err := checkDelta(dt); !ok {
		return err
	}

	dir := c.Direction
	if vmath.NearZero(dir) {
		dir = m.Velocity()
	}
	vel := vmath.SafeNormalize(dir).Mul(speedOr(c.Speed, m))

	m.SetVelocity(vel)
	m.SetPosition(m.Position().Add(vel.Mul(dt)))
	return nil
}
