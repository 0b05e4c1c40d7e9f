package playing

import (
	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"github.com/younwookim/harborsweep/internal/application/system"
	"github.com/younwookim/harborsweep/internal/domain/collision"
	"github.com/younwookim/harborsweep/internal/domain/entity"
	"github.com/younwookim/harborsweep/internal/domain/movement"
	"github.com/younwookim/harborsweep/internal/domain/physics"
	"github.com/younwookim/harborsweep/internal/ecs"
	"github.com/younwookim/harborsweep/internal/infrastructure/config"
	"github.com/younwookim/harborsweep/internal/infrastructure/physics/chipmunk"
	"github.com/younwookim/harborsweep/internal/infrastructure/physics/kinematic"
)

const (
	biteShake  = 4
	shakeDecay = 0.85
)

// NewBackend creates the named physics backend. An empty name selects
// chipmunk.
func NewBackend(name string, bounds physics.Bounds) physics.World {
	if name == config.BackendKinematic {
		return kinematic.New(bounds)
	}
	return chipmunk.New(bounds)
}

// Session is one run of a scenario: the simulation plus the score kept from
// collision events. It has no rendering or input of its own, so replays can
// drive it headless.
type Session struct {
	cfg        *config.GameConfig
	collisions *system.CollisionManager
	dt         float32
	frame      int
	log        logrus.FieldLogger

	score     int
	collected int
	bites     int
	removed   int
	shake     float32

	// OnEvent, when set, sees every collision event after the session
	// has counted it.
	OnEvent func(system.Event)
}

// NewSession builds the world for cfg.Scenario and spawns it.
func NewSession(cfg *config.GameConfig, log logrus.FieldLogger, hub *sentry.Hub) (*Session, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	sim := cfg.Simulation
	bounds := physics.NewBounds(sim.World.Width, sim.World.Height)

	s := &Session{
		cfg: cfg,
		dt:  sim.Dt(),
		log: log.WithField("scenario", cfg.Scenario.ID),
	}
	s.collisions = system.NewCollisionManager(ecs.NewWorld(), bounds, sim.Collision,
		system.WithPhysics(NewBackend(sim.Physics.Backend, bounds)),
		system.WithLogger(s.log),
		system.WithHub(hub),
	)
	s.collisions.OnRemoved = s.onRemoved

	rules := system.NewRules(s.collisions)
	rules.OnEvent = s.onEvent
	registry := rules.NewRegistry(sim.Collision.DefaultImpulse)

	if err := system.NewSpawner(sim, s.collisions, registry, s.log).SpawnScenario(cfg.Scenario); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) onEvent(e system.Event) {
	switch ev := e.(type) {
	case system.CollectedEvent:
		s.score += ev.Value
		s.collected++
		s.log.WithFields(logrus.Fields{"item": ev.Item, "score": s.score}).Info("collected")
	case system.BittenEvent:
		s.bites++
		s.shake = biteShake
		s.log.WithField("bites", s.bites).Info("bitten")
	case system.PushedEvent:
		s.log.WithFields(logrus.Fields{
			"obstacle": ev.Obstacle,
			"mover":    ev.Mover,
			"impulse":  ev.Impulse,
		}).Debug("pushed")
	}
	if s.OnEvent != nil {
		s.OnEvent(e)
	}
}

func (s *Session) onRemoved(c collision.Collidable) {
	s.removed++
}

// Step advances the simulation one fixed frame with pressed applied to the
// player.
func (s *Session) Step(pressed movement.Directions) error {
	err := s.collisions.Update(s.dt, pressed)
	s.frame++
	s.shake *= shakeDecay
	if s.shake < 0.1 {
		s.shake = 0
	}
	return err
}

// Remaining counts the collectible trash still in play.
func (s *Session) Remaining() int {
	n := 0
	s.collisions.World().Each(func(c collision.Collidable) bool {
		if t, ok := c.(*entity.Trash); ok && t.IsActive() && !t.IsPermanent() {
			n++
		}
		return true
	})
	return n
}

// Cleared reports whether all collectible trash has been picked up.
func (s *Session) Cleared() bool {
	return s.Remaining() == 0
}

// Player returns the player's boat, nil if the scenario has none.
func (s *Session) Player() *entity.Boat {
	c, ok := s.collisions.World().Player()
	if !ok {
		return nil
	}
	b, _ := c.(*entity.Boat)
	return b
}

func (s *Session) World() *ecs.World                    { return s.collisions.World() }
func (s *Session) Collisions() *system.CollisionManager { return s.collisions }
func (s *Session) Config() *config.GameConfig           { return s.cfg }
func (s *Session) Frame() int                           { return s.frame }
func (s *Session) Score() int                           { return s.score }
func (s *Session) Collected() int                       { return s.collected }
func (s *Session) Bites() int                           { return s.bites }
func (s *Session) Removed() int                         { return s.removed }
func (s *Session) Shake() float32                       { return s.shake }
