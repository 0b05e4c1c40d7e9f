package movement

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/younwookim/harborsweep/internal/domain/vmath"
)

// Mode selects how configuration and runtime errors are handled.
type Mode int

const (
	// Lenient corrects bad input with a logged warning and keeps going.
	Lenient Mode = iota
	// Strict rejects bad input and propagates strategy failures.
	Strict
)

// ParseMode maps "strict" / "lenient" to a Mode. Anything else is lenient.
func ParseMode(s string) Mode {
	if s == "strict" {
		return Strict
	}
	return Lenient
}

// String returns the string representation of the mode
func (m Mode) String() string {
	if m == Strict {
		return "strict"
	}
	return "lenient"
}

// Manager owns one Movable and its current Strategy, and is the only writer
// of the movable's desired position.
type Manager struct {
	movable  Movable
	strategy Strategy
	mode     Mode
	log      logrus.FieldLogger
}

// Builder validates manager construction.
type Builder struct {
	movable  Movable
	strategy Strategy
	speed    *float32
	mode     Mode
	log      logrus.FieldLogger
}

// NewBuilder starts building a manager for m.
func NewBuilder(m Movable) *Builder {
	return &Builder{movable: m, log: logrus.StandardLogger()}
}

// Strategy sets the initial strategy.
func (b *Builder) Strategy(s Strategy) *Builder {
	b.strategy = s
	return b
}

// Speed overrides the movable's speed.
func (b *Builder) Speed(v float32) *Builder {
	b.speed = &v
	return b
}

// Mode sets the error handling mode.
func (b *Builder) Mode(m Mode) *Builder {
	b.mode = m
	return b
}

// Logger sets the logger used for lenient-mode warnings.
func (b *Builder) Logger(l logrus.FieldLogger) *Builder {
	if l != nil {
		b.log = l
	}
	return b
}

// Build validates the configuration and returns the manager.
func (b *Builder) Build() (*Manager, error) {
	if b.movable == nil {
		return nil, errors.WithStack(ErrNilMovable)
	}
	m := &Manager{movable: b.movable, mode: b.mode, log: b.log}

	speed := b.movable.Speed()
	if b.speed != nil {
		speed = *b.speed
	}
	if err := m.SetSpeed(speed); err != nil {
		return nil, err
	}
	if err := m.SetStrategy(b.strategy); err != nil {
		return nil, err
	}
	return m, nil
}

// Movable returns the managed movable.
func (m *Manager) Movable() Movable { return m.movable }

// Strategy returns the current strategy; never nil.
func (m *Manager) Strategy() Strategy { return m.strategy }

// Mode returns the error handling mode.
func (m *Manager) Mode() Mode { return m.mode }

// SetStrategy swaps the strategy. A nil strategy is rejected in strict mode
// and replaced with a Constant strategy in lenient mode.
func (m *Manager) SetStrategy(s Strategy) error {
	if s == nil {
		if m.mode == Strict {
			return errors.WithStack(ErrNilStrategy)
		}
		m.log.Warn("nil movement strategy, falling back to constant movement")
		s = NewConstant()
	}
	m.strategy = s
	return nil
}

// SetSpeed sets the movable's speed. Negative speeds are rejected in strict
// mode and replaced by their magnitude in lenient mode.
func (m *Manager) SetSpeed(v float32) error {
	if v < 0 || !vmath.FiniteScalar(v) {
		if m.mode == Strict || !vmath.FiniteScalar(v) {
			return errors.Wrapf(ErrNegativeSpeed, "speed=%v", v)
		}
		m.log.WithField("speed", v).Warn("negative speed, using its magnitude")
		v = math32.Abs(v)
	}
	m.movable.SetSpeed(v)
	return nil
}

// UpdateVelocity derives the desired velocity from the pressed directions.
func (m *Manager) UpdateVelocity(pressed Directions) {
	m.movable.SetVelocity(pressed.Vector())
}

// SyncPosition overwrites the desired position, used when reconciliation
// moves the entity.
func (m *Manager) SyncPosition(p mgl32.Vec2) {
	m.movable.SetPosition(p)
}

// UpdateMovement advances the movable by dt using the current strategy.
//
// A failing strategy (an error, a panic or a non-finite result) restores the
// previous position. Lenient mode then clears the velocity and returns nil;
// strict mode returns an error wrapping ErrMovement.
func (m *Manager) UpdateMovement(dt float32) error {
	prev := m.movable.Position()

	err := m.run(dt)
	if err == nil && !vmath.Finite(m.movable.Position()) {
		err = errors.Errorf("non-finite position %v", m.movable.Position())
	}
	if err == nil {
		return nil
	}

	m.movable.SetPosition(prev)
	if m.mode == Strict {
		return errors.Wrapf(ErrMovement, "%T: %v", m.strategy, err)
	}
	m.movable.ClearVelocity()
	m.log.WithFields(logrus.Fields{
		"strategy": fmt.Sprintf("%T", m.strategy),
		"error":    err,
	}).Warn("movement strategy failed, velocity cleared")
	return nil
}

func (m *Manager) run(dt float32) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("panic: %v", r)
		}
	}()
	return m.strategy.Move(m.movable, dt)
}
