package system

import (
	"fmt"

	"github.com/getsentry/sentry-go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/younwookim/harborsweep/internal/domain/collision"
	"github.com/younwookim/harborsweep/internal/domain/movement"
	"github.com/younwookim/harborsweep/internal/domain/physics"
	"github.com/younwookim/harborsweep/internal/domain/vmath"
	"github.com/younwookim/harborsweep/internal/ecs"
	"github.com/younwookim/harborsweep/internal/infrastructure/config"
)

// ErrDetachedBody marks a reconciliation skipped because the entity's body
// was already destroyed.
var ErrDetachedBody = errors.New("system: detached physics body")

// ErrEntityPanic is returned by Update when one entity's update panicked. The
// rest of the frame still ran.
var ErrEntityPanic = errors.New("system: entity update panicked")

// DefaultBlendFactor is used when the config leaves the blend factor unset.
const DefaultBlendFactor = 0.1

// CollisionManager runs the per-frame simulation: physics step, movement,
// deferred removal, reconciliation of desired and simulated positions, and
// the deferred collision responses.
type CollisionManager struct {
	world    *ecs.World
	physics  physics.World
	tracker  *collision.PairTracker
	resolver *collision.Resolver
	removals *collision.RemovalQueue
	clock    *collision.SimClock

	bounds physics.Bounds
	blend  float32

	log logrus.FieldLogger
	hub *sentry.Hub

	// OnRemoved is called once for every entity actually removed.
	OnRemoved collision.RemovalListener
}

// Option configures a CollisionManager.
type Option func(*CollisionManager)

// WithPhysics sets the physics backend. Without one, contacts come from the
// entity manager's overlap check and bodies are never simulated.
func WithPhysics(w physics.World) Option {
	return func(m *CollisionManager) { m.physics = w }
}

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(m *CollisionManager) {
		if l != nil {
			m.log = l
		}
	}
}

// WithHub sets the sentry hub that receives per-entity panics.
func WithHub(h *sentry.Hub) Option {
	return func(m *CollisionManager) {
		if h != nil {
			m.hub = h
		}
	}
}

// NewCollisionManager creates the manager for world, confined to bounds.
func NewCollisionManager(world *ecs.World, bounds physics.Bounds, cfg config.CollisionConfig, opts ...Option) *CollisionManager {
	tracker := collision.NewPairTracker()
	m := &CollisionManager{
		world:    world,
		tracker:  tracker,
		resolver: collision.NewResolver(tracker, collision.WithSustainedDispatch(cfg.SustainedDispatch)),
		removals: collision.NewRemovalQueue(),
		clock:    &collision.SimClock{},
		bounds:   bounds,
		blend:    cfg.BlendFactor,
		log:      logrus.StandardLogger(),
		hub:      sentry.CurrentHub(),
	}
	if m.blend <= 0 || m.blend > 1 {
		m.blend = DefaultBlendFactor
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.physics != nil {
		m.physics.SetContactListener(m.resolver)
	}
	return m
}

// World returns the entity manager.
func (m *CollisionManager) World() *ecs.World { return m.world }

// Physics returns the physics backend, nil when running without one.
func (m *CollisionManager) Physics() physics.World { return m.physics }

// Clock returns the simulation clock entities time their collision window on.
func (m *CollisionManager) Clock() collision.Clock { return m.clock }

// Tracker returns the contact pair tracker.
func (m *CollisionManager) Tracker() *collision.PairTracker { return m.tracker }

// Resolver returns the contact listener that queues collision responses.
func (m *CollisionManager) Resolver() *collision.Resolver { return m.resolver }

// Removals returns the deferred removal queue.
func (m *CollisionManager) Removals() *collision.RemovalQueue { return m.removals }

// Bounds returns the world rectangle.
func (m *CollisionManager) Bounds() physics.Bounds { return m.bounds }

// ScheduleRemoval queues c and its body for removal at the next update.
// Scheduling an entity twice is a no-op.
func (m *CollisionManager) ScheduleRemoval(c collision.Collidable) bool {
	ok := m.removals.Schedule(collision.RemovalRequest{
		Body:     c.Body(),
		Entity:   c,
		Listener: m.OnRemoved,
	})
	if ok {
		m.log.WithField("entity", c.ID()).Debug("removal scheduled")
	}
	return ok
}

// Update advances the simulation by dt with the given pressed directions
// applied to the player. Failures of one entity never stop the others; the
// first strict-mode movement error is returned after the whole frame ran.
func (m *CollisionManager) Update(dt float32, pressed movement.Directions) error {
	if !vmath.FiniteScalar(dt) || dt < 0 {
		return errors.Wrapf(movement.ErrInvalidDelta, "dt=%v", dt)
	}
	m.clock.Advance(float64(dt))

	if m.physics != nil {
		m.physics.Step(dt)
	} else {
		m.world.DetectContacts(m.resolver)
	}

	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	m.eachMoving(func(c collision.Collidable, mgr *movement.Manager) {
		keep(m.isolate(c.ID(), func() error {
			if m.world.IsPlayerControlled(c.ID()) {
				mgr.UpdateVelocity(pressed)
			}
			return mgr.UpdateMovement(dt)
		}))
	})

	m.removals.Drain(m.remove)

	m.world.Each(func(c collision.Collidable) bool {
		if c.IsActive() && m.tracker.IsInAnyPair(c) && !c.IsInCollision() {
			c.RefreshCollision()
		}
		return true
	})

	m.eachMoving(func(c collision.Collidable, mgr *movement.Manager) {
		keep(m.isolate(c.ID(), func() error {
			m.reconcile(c, mgr)
			return nil
		}))
	})

	m.resolver.QueueSustained()
	m.resolver.Flush(func(a collision.Action) {
		keep(m.isolate(a.Subject, func() error {
			a.Run()
			return nil
		}))
	})
	return firstErr
}

func (m *CollisionManager) eachMoving(fn func(collision.Collidable, *movement.Manager)) {
	m.world.Each(func(c collision.Collidable) bool {
		if mgr, ok := m.world.Movement[c.ID()]; ok && c.IsActive() {
			fn(c, mgr)
		}
		return true
	})
}

// reconcile resolves the desired position against the simulated one. Out of
// collision the movement wins and the body is snapped to it; in collision the
// body is pulled a blend fraction towards it so the contact response shows.
func (m *CollisionManager) reconcile(c collision.Collidable, mgr *movement.Manager) {
	inner := m.bounds.Inset(c.Size())
	mover := mgr.Movable()
	desired := vmath.ClampVec(mover.Position(), inner.Min, inner.Max)

	body := c.Body()
	if body == nil {
		mgr.SyncPosition(desired)
		return
	}
	if body.Destroyed() {
		m.log.WithFields(logrus.Fields{
			"entity": c.ID(),
			"error":  ErrDetachedBody,
		}).Warn("skipping reconciliation")
		return
	}

	if !c.IsInCollision() {
		body.SetPosition(desired)
		body.SetVelocity(mover.Velocity())
		mgr.SyncPosition(desired)
		return
	}

	blended := vmath.ClampVec(vmath.Lerp(body.Position(), desired, m.blend), inner.Min, inner.Max)
	body.SetPosition(blended)
	body.SetVelocity(vmath.Lerp(body.Velocity(), mover.Velocity(), m.blend))
	mgr.SyncPosition(blended)
}

func (m *CollisionManager) remove(req collision.RemovalRequest) {
	c := req.Entity
	c.SetActive(false)
	if req.Body != nil && !req.Body.Destroyed() && m.physics != nil {
		m.physics.DestroyBody(req.Body)
	}
	m.tracker.Forget(c)
	m.world.DestroyEntity(c.ID())
	m.log.WithField("entity", c.ID()).Debug("entity removed")

	if req.Listener != nil {
		req.Listener(c)
	}
}

// isolate runs fn for one entity. A panic is logged, reported to sentry and
// returned as ErrEntityPanic.
func (m *CollisionManager) isolate(id string, fn func() error) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		m.hub.WithScope(func(scope *sentry.Scope) {
			scope.SetTag("entity", id)
			m.hub.Recover(r)
		})
		m.log.WithFields(logrus.Fields{
			"entity": id,
			"panic":  fmt.Sprint(r),
		}).Error("entity update panicked")
		err = errors.Wrapf(ErrEntityPanic, "entity %s: %v", id, r)
	}()
	return fn()
}
