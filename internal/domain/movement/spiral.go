package movement

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/younwookim/harborsweep/internal/domain/vmath"
)

const (
	// spiralFloor bounds tightness and approach speed away from zero.
	spiralFloor float32 = 0.01
	// spiralMinRadius bounds the distance used to scale angular speed.
	spiralMinRadius float32 = 1
)

// SpiralApproach closes in on a target while circling it. The radius shrinks
// at ApproachSpeed; the angular speed is Speed*Tightness/radius, so the
// spiral winds faster as it closes.
type SpiralApproach struct {
	Target        Positionable
	Speed         float32 // falls back to the movable's speed when <= 0
	Tightness     float32
	ApproachSpeed float32

	angle float32
}

// Angle returns the total angle swept so far.
func (s *SpiralApproach) Angle() float32 { return s.angle }

func (s *SpiralApproach) Move(m Movable, dt float32) error {
	if ok, err := checkDelta(dt); !ok {
		return err
	}
	if s.Target == nil {
		return errors.WithStack(ErrNoTarget)
	}

	center := s.Target.Position()
	pos := m.Position()
	offset := pos.Sub(center)
	radius := offset.Len()
	if radius < arriveEpsilon {
		m.ClearVelocity()
		return nil
	}

	tightness := math32.Max(s.Tightness, spiralFloor)
	approach := math32.Max(s.ApproachSpeed, spiralFloor)

	omega := speedOr(s.Speed, m) * tightness / math32.Max(radius, spiralMinRadius)
	turn := omega * dt
	s.angle += turn

	shrunk := math32.Max(radius-approach*dt, 0)
	next := center.Add(vmath.Rotate(offset.Mul(1/radius), turn).Mul(shrunk))

	m.SetVelocity(next.Sub(pos).Mul(1 / dt))
	m.SetPosition(next)
	return nil
}

// SpringFollow pulls towards a target with a damped spring:
// a = K*(target-pos) - Damping*vel, integrated semi-implicitly
// (velocity first, then position).
type SpringFollow struct {
	Target  Positionable
	K       float32
	Damping float32
	Offset  mgl32.Vec2 // rest offset from the target
}

func (s *SpringFollow) Move(m Movable, dt float32) error {
	if ok, err := checkDelta(dt); !ok {
		return err
	}
	if s.Target == nil {
		return errors.WithStack(ErrNoTarget)
	}

	rest := s.Target.Position().Add(s.Offset)
	vel := m.Velocity()
	accel := rest.Sub(m.Position()).Mul(s.K).Sub(vel.Mul(s.Damping))

	vel = vel.Add(accel.Mul(dt))
	m.SetVelocity(vel)
	m.SetPosition(m.Position().Add(vel.Mul(dt)))
	return nil
}
