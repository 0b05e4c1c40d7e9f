package collision

import (
	"github.com/scylladb/go-set/strset"
)

// Action is a deferred collision response.
type Action struct {
	// Subject is the ID of the collidable whose handler runs.
	Subject string
	Run     func()
}

// Resolver turns physics contact events into deferred collision responses.
// It implements physics.ContactListener: the callbacks only record pairs and
// queue actions, which run later through Flush, outside the physics step.
type Resolver struct {
	tracker   *PairTracker
	sustained bool

	actions []Action
	queued  *strset.Set // pairs already queued since the last flush
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithSustainedDispatch makes QueueSustained re-dispatch every tracked pair.
func WithSustainedDispatch(enabled bool) ResolverOption {
	return func(r *Resolver) { r.sustained = enabled }
}

// NewResolver creates a resolver recording pairs in tracker.
func NewResolver(tracker *PairTracker, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		tracker: tracker,
		queued:  strset.New(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Tracker returns the pair tracker.
func (r *Resolver) Tracker() *PairTracker { return r.tracker }

// BeginContact records the pair and queues the double dispatch. A boundary
// contact queues CollideWithBoundary on the other side only.
func (r *Resolver) BeginContact(a, b any) {
	ca, okA := a.(Collidable)
	cb, okB := b.(Collidable)
	switch {
	case okA && okB:
		if r.tracker.AddPair(ca, cb) {
			r.queuePair(ca, cb)
		}
	case okA && IsBoundary(b):
		r.queueBoundary(ca)
	case okB && IsBoundary(a):
		r.queueBoundary(cb)
	}
}

// EndContact forgets the pair.
func (r *Resolver) EndContact(a, b any) {
	r.tracker.RemovePair(a, b)
}

// QueueSustained queues a dispatch for every pair still in contact that has
// not been queued since the last flush. It does nothing unless sustained
// dispatch is enabled.
func (r *Resolver) QueueSustained() {
	if !r.sustained {
		return
	}
	r.tracker.Each(func(p Pair) bool {
		r.queuePair(p.A, p.B)
		return true
	})
}

func (r *Resolver) queuePair(a, b Collidable) {
	key := pairKey(a.ID(), b.ID())
	if r.queued.Has(key) {
		return
	}
	r.queued.Add(key)
	r.actions = append(r.actions,
		Action{Subject: a.ID(), Run: func() { collide(a, b) }},
		Action{Subject: b.ID(), Run: func() { collide(b, a) }},
	)
}

func (r *Resolver) queueBoundary(c Collidable) {
	r.actions = append(r.actions, Action{Subject: c.ID(), Run: func() {
		if c.IsActive() {
			c.CollideWithBoundary()
		}
	}})
}

func collide(self, other Collidable) {
	if self.IsActive() && other.IsActive() {
		self.CollideWith(other)
	}
}

// Pending returns the number of queued actions.
func (r *Resolver) Pending() int {
	return len(r.actions)
}

// Flush hands every queued action to exec in order and empties the queue.
// Actions queued while flushing run in the same flush.
func (r *Resolver) Flush(exec func(Action)) int {
	n := 0
	for len(r.actions) > 0 {
		batch := r.actions
		r.actions = nil
		for _, a := range batch {
			exec(a)
			n++
		}
	}
	r.queued.Clear()
	return n
}
