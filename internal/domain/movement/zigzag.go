package movement

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/younwookim/harborsweep/internal/domain/vmath"
)

// ZigZag advances along a heading while oscillating sideways:
// offset = Amplitude * sin(Frequency * elapsed).
//
// The heading is fixed on the first move (Heading if set, else the movable's
// velocity). Elapsed time only grows; build a new ZigZag to restart the phase.
type ZigZag struct {
	Speed     float32 // falls back to the movable's speed when <= 0
	Amplitude float32
	Frequency float32 // radians per second
	Heading   mgl32.Vec2

	elapsed float32
	heading mgl32.Vec2
}

// Elapsed returns the accumulated oscillation time.
func (z *ZigZag) Elapsed() float32 { return z.elapsed }

func (z *ZigZag) Move(m Movable, dt float32) error {
	if ok, err := checkDelta(dt); !ok {
		return err
	}

	if vmath.NearZero(z.heading) {
		z.heading = vmath.SafeNormalize(z.Heading)
		if vmath.NearZero(z.heading) {
			z.heading = vmath.SafeNormalize(m.Velocity())
		}
	}

	before := z.Amplitude * math32.Sin(z.Frequency*z.elapsed)
	z.elapsed += dt
	after := z.Amplitude * math32.Sin(z.Frequency*z.elapsed)

	forward := z.heading.Mul(speedOr(z.Speed, m) * dt)
	sideways := vmath.Perp(z.heading).Mul(after - before)
	delta := forward.Add(sideways)

	m.SetPosition(m.Position().Add(delta))
	m.SetVelocity(delta.Mul(1 / dt))
	return nil
}
