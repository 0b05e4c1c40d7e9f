package movement

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/younwookim/harborsweep/internal/domain/vmath"
)

// Phase is the speed-ramp state of an Accelerated strategy.
type Phase int

const (
	PhaseStopped Phase = iota
	PhaseAccelerating
	PhaseCruising
	PhaseDecelerating
)

// String returns the string representation of the phase
func (p Phase) String() string {
	switch p {
	case PhaseStopped:
		return "Stopped"
	case PhaseAccelerating:
		return "Accelerating"
	case PhaseCruising:
		return "Cruising"
	case PhaseDecelerating:
		return "Decelerating"
	default:
		return "Unknown"
	}
}

// Accelerated ramps a scalar speed up to the target speed while the movable
// wants to move, and down to zero otherwise. The movable wants to move while
// it has a non-zero velocity, or a Heading, and the strategy has not been
// stopped. Leave Heading zero for steered movers so they glide to a halt when
// input is released.
type Accelerated struct {
	Accel    float32    // units/s²
	Decel    float32    // units/s²
	MaxSpeed float32    // target speed; falls back to the movable's speed when <= 0
	Heading  mgl32.Vec2 // direction used while the movable has no velocity

	current float32
	heading mgl32.Vec2
	phase   Phase
	halted  bool
}

// NewAccelerated creates an accelerated strategy. Negative rates are taken
// as their magnitude.
func NewAccelerated(accel, decel, maxSpeed float32) *Accelerated {
	return &Accelerated{
		Accel:    math32.Abs(accel),
		Decel:    math32.Abs(decel),
		MaxSpeed: maxSpeed,
	}
}

// Stop makes the strategy decelerate to a halt.
func (a *Accelerated) Stop() { a.halted = true }

// Resume lets the strategy accelerate again.
func (a *Accelerated) Resume() { a.halted = false }

// Phase returns the current ramp phase.
func (a *Accelerated) Phase() Phase { return a.phase }

// CurrentSpeed returns the ramped speed.
func (a *Accelerated) CurrentSpeed() float32 { return a.current }

func (a *Accelerated) Move(m Movable, dt float32) error {
	if ok, err := checkDelta(dt); !ok {
		return err
	}

	dir := vmath.SafeNormalize(m.Velocity())
	if vmath.NearZero(dir) {
		dir = vmath.SafeNormalize(a.Heading)
	}
	if !vmath.NearZero(dir) {
		a.heading = dir
	}
	target := speedOr(a.MaxSpeed, m)

	if !a.halted && !vmath.NearZero(dir) {
		switch {
		case a.current < target:
			a.current = math32.Min(a.current+a.Accel*dt, target)
		case a.current > target:
			a.current = math32.Max(a.current-a.Decel*dt, target)
		}
		if a.current >= target {
			a.phase = PhaseCruising
		} else {
			a.phase = PhaseAccelerating
		}
	} else {
		a.current = math32.Max(a.current-a.Decel*dt, 0)
		if a.current == 0 {
			a.phase = PhaseStopped
		} else {
			a.phase = PhaseDecelerating
		}
	}

	vel := a.heading.Mul(a.current)
	m.SetVelocity(vel)
	m.SetPosition(m.Position().Add(vel.Mul(dt)))
	return nil
}
