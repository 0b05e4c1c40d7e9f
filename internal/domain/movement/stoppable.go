package movement

// Stoppable wraps a strategy so it can be paused. While stopped the inner
// strategy is not called at all, so its own clock (a zig-zag phase, an orbit
// angle) freezes and resumes exactly where it left off.
type Stoppable struct {
	inner   Strategy
	stopped bool
}

// NewStoppable wraps inner.
func NewStoppable(inner Strategy) *Stoppable {
	return &Stoppable{inner: inner}
}

// Stop suspends movement.
func (s *Stoppable) Stop() { s.stopped = true }

// Resume re-enables movement.
func (s *Stoppable) Resume() { s.stopped = false }

// Stopped reports whether movement is suspended.
func (s *Stoppable) Stopped() bool { return s.stopped }

// Unwrap returns the wrapped strategy.
func (s *Stoppable) Unwrap() Strategy { return s.inner }

func (s *Stoppable) Move(m Movable, dt float32) error {
	if ok, err := checkDelta(dt); !ok || s.stopped || s.inner == nil {
		return err
	}
	return s.inner.Move(m, dt)
}
