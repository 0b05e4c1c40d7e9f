package collision

// Clock is the simulation clock, in seconds.
type Clock interface {
	Now() float64
}

// SimClock is a Clock advanced explicitly once per frame.
type SimClock struct {
	now float64
}

// Now returns the simulated time.
func (c *SimClock) Now() float64 { return c.now }

// Advance moves the clock forward by dt seconds.
func (c *SimClock) Advance(dt float64) {
	if dt > 0 {
		c.now += dt
	}
}

// Window is a short, time-boxed "recently hit" flag.
type Window struct {
	active bool
	end    float64
}

// Refresh opens the window until now+duration, extending it if already open.
func (w *Window) Refresh(now, duration float64) {
	end := now + duration
	if !w.active || end > w.end {
		w.end = end
	}
	w.active = true
}

// Active reports whether the window is still open at now; an expired window
// closes itself.
func (w *Window) Active(now float64) bool {
	if w.active && now >= w.end {
		w.active = false
	}
	return w.active
}

// Clear closes the window.
func (w *Window) Clear() {
	w.active = false
}
