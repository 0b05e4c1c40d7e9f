package movement

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/younwookim/harborsweep/internal/domain/vmath"
)

// maxEccentricity keeps the orbit an ellipse.
const maxEccentricity float32 = 0.99

// Orbital circles a target on an ellipse with semi-major axis Radius and
// semi-minor axis Radius*sqrt(1-e²).
//
// The angle starts at the movable's current bearing from the target. A mover
// that is off the orbit drifts onto it at SettleRate (per second) instead of
// jumping; SettleRate <= 0 snaps immediately.
type Orbital struct {
	Target       Positionable
	Radius       float32
	AngularSpeed float32 // radians per second
	Eccentricity float32
	SettleRate   float32

	angle   float32
	started bool
}

// NewOrbital creates an orbital strategy with the default settle rate.
func NewOrbital(target Positionable, radius, angularSpeed, eccentricity float32) *Orbital {
	return &Orbital{
		Target:       target,
		Radius:       radius,
		AngularSpeed: angularSpeed,
		Eccentricity: eccentricity,
		SettleRate:   5,
	}
}

// Angle returns the current orbit angle.
func (o *Orbital) Angle() float32 { return o.angle }

func (o *Orbital) point(center mgl32.Vec2, angle float32) mgl32.Vec2 {
	e := vmath.Clamp(o.Eccentricity, 0, maxEccentricity)
	minor := o.Radius * math32.Sqrt(1-e*e)
	s, c := math32.Sincos(angle)
	return center.Add(mgl32.Vec2{o.Radius * c, minor * s})
}

func (o *Orbital) Move(m Movable, dt float32) error {
	if ok, err := checkDelta(dt); !ok {
		return err
	}
	if o.Target == nil {
		return errors.WithStack(ErrNoTarget)
	}

	center := o.Target.Position()
	pos := m.Position()
	if !o.started {
		if offset := pos.Sub(center); !vmath.NearZero(offset) {
			o.angle = vmath.Angle(offset)
		}
		o.started = true
	}

	from := o.point(center, o.angle)
	o.angle += o.AngularSpeed * dt
	to := o.point(center, o.angle)

	settle := float32(1)
	if o.SettleRate > 0 {
		settle = math32.Min(1, o.SettleRate*dt)
	}
	next := pos.Add(to.Sub(from)).Add(from.Sub(pos).Mul(settle))

	m.SetVelocity(next.Sub(pos).Mul(1 / dt))
	m.SetPosition(next)
	return nil
}
