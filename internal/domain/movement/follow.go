package movement

import (
	"github.com/chewxy/math32"
	"github.com/pkg/errors"
)

// defaultMaxLead caps how far ahead an interceptor predicts, in seconds.
const defaultMaxLead float32 = 2

// Follow heads straight for a target. It stops on top of the target rather
// than overshooting or dividing by a zero distance.
type Follow struct {
	Target Positionable
	Speed  float32 // falls back to the movable's speed when <= 0
}

func (f *Follow) Move(m Movable, dt float32) error {
	if ok, err := checkDelta(dt); !ok {
		return err
	}
	if f.Target == nil {
		return errors.WithStack(ErrNoTarget)
	}

	seek(m, f.Target.Position(), speedOr(f.Speed, m), dt)
	return nil
}

// Interceptor leads a moving target: it predicts where the target will be
// after the time needed to cover the current distance and seeks that point.
type Interceptor struct {
	Target  Tracked
	Speed   float32 // falls back to the movable's speed when <= 0
	MaxLead float32 // seconds; defaultMaxLead when <= 0
}

func (i *Interceptor) Move(m Movable, dt float32) error {
	if ok, err := checkDelta(dt); !ok {
		return err
	}
	if i.Target == nil {
		return errors.WithStack(ErrNoTarget)
	}

	speed := speedOr(i.Speed, m)
	target := i.Target.Position()
	dist := target.Sub(m.Position()).Len()

	var lead float32
	if speed > arriveEpsilon {
		lead = dist / speed
	}
	maxLead := i.MaxLead
	if maxLead <= 0 {
		maxLead = defaultMaxLead
	}
	lead = math32.Min(lead, maxLead)

	predicted := target.Add(i.Target.Velocity().Mul(lead))
	seek(m, predicted, speed, dt)
	return nil
}
