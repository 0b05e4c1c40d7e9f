package system

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/younwookim/harborsweep/internal/domain/collision"
	"github.com/younwookim/harborsweep/internal/domain/entity"
	"github.com/younwookim/harborsweep/internal/domain/movement"
	"github.com/younwookim/harborsweep/internal/domain/physics"
	"github.com/younwookim/harborsweep/internal/infrastructure/config"
)

// Spawner turns scenario configs into entities with bodies and movement
// managers.
type Spawner struct {
	sim        *config.SimulationConfig
	collisions *CollisionManager
	rules      *collision.Registry
	strategies *StrategyFactory
	mode       movement.Mode
	log        logrus.FieldLogger
}

// NewSpawner creates a spawner adding entities to the collision manager's
// world, dispatching their collisions through rules.
func NewSpawner(sim *config.SimulationConfig, collisions *CollisionManager, rules *collision.Registry, log logrus.FieldLogger) *Spawner {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Spawner{
		sim:        sim,
		collisions: collisions,
		rules:      rules,
		strategies: NewStrategyFactory(collisions.World()),
		mode:       movement.ParseMode(sim.Movement.Mode),
		log:        log,
	}
}

type bodyAttacher interface {
	collision.Collidable
	AttachBody(b physics.Body)
}

// SpawnScenario creates every entity of sc. All entities exist before any
// strategy is built, so strategies may target entities spawned later.
func (s *Spawner) SpawnScenario(sc *config.ScenarioConfig) error {
	world := s.collisions.World()
	spawned := make([]collision.Collidable, len(sc.Spawns))
	for i, sp := range sc.Spawns {
		c, err := s.create(sp)
		if err != nil {
			return errors.Wrapf(err, "spawn %d", i)
		}
		if err := world.Add(c); err != nil {
			return err
		}
		spawned[i] = c
	}

	for i, sp := range sc.Spawns {
		if err := s.attachMovement(spawned[i], sp); err != nil {
			return err
		}
	}

	if sc.Player != "" {
		if err := world.SetPlayer(sc.Player); err != nil {
			return errors.Wrap(err, "scenario player")
		}
	}

	s.log.WithFields(logrus.Fields{
		"scenario": sc.ID,
		"entities": world.Len(),
	}).Info("scenario spawned")
	return nil
}

// Spawn creates a single entity with its movement and adds it to the world.
func (s *Spawner) Spawn(sp config.SpawnConfig) (collision.Collidable, error) {
	c, err := s.create(sp)
	if err != nil {
		return nil, err
	}
	if err := s.collisions.World().Add(c); err != nil {
		return nil, err
	}
	if err := s.attachMovement(c, sp); err != nil {
		s.collisions.World().DestroyEntity(c.ID())
		return nil, err
	}
	return c, nil
}

func (s *Spawner) create(sp config.SpawnConfig) (bodyAttacher, error) {
	kind, err := entity.ParseKind(sp.Kind)
	if err != nil {
		return nil, err
	}
	kc := s.sim.Entities[sp.Kind]
	id := sp.ID
	if id == "" {
		id = s.collisions.World().NewID(sp.Kind)
	}
	speed := kc.Speed
	if sp.Speed != nil {
		speed = *sp.Speed
	}

	pos := mgl32.Vec2{sp.X, sp.Y}
	opts := entity.Options{
		Size:              mgl32.Vec2{kc.Width, kc.Height},
		Speed:             speed,
		CollisionDuration: s.sim.Collision.ActiveDuration,
		Clock:             s.collisions.Clock(),
		Rules:             s.rules,
	}

	var c bodyAttacher
	bodyKind := physics.Dynamic
	switch kind {
	case entity.KindBoat:
		c = entity.NewBoat(id, pos, opts)
	case entity.KindTrash:
		t := entity.NewTrash(id, pos, kc.Value, opts)
		t.Permanent = kc.Permanent
		if sp.Permanent != nil {
			t.Permanent = *sp.Permanent
		}
		c = t
	case entity.KindRock:
		c = entity.NewRock(id, pos, kc.BaseForce, opts)
		bodyKind = physics.Static
	case entity.KindShark:
		c = entity.NewShark(id, pos, kc.Knockback, opts)
	}

	if w := s.collisions.Physics(); w != nil {
		c.AttachBody(w.CreateBody(physics.BodyDef{
			Kind:          bodyKind,
			Position:      pos,
			Size:          opts.Size,
			Mass:          kc.Mass,
			LinearDamping: s.sim.Physics.LinearDamping,
			Sensor:        kc.Sensor,
			Payload:       c,
		}))
	}
	return c, nil
}

// attachMovement builds the movement manager of a movable entity. Static
// kinds get none.
func (s *Spawner) attachMovement(c collision.Collidable, sp config.SpawnConfig) error {
	if sp.Kind == string(entity.KindRock) {
		return nil
	}
	mover, ok := c.(movement.Movable)
	if !ok {
		return nil
	}

	cfg := sp.Strategy
	if cfg == nil {
		cfg = s.sim.Entities[sp.Kind].Strategy
	}
	strategy, err := s.strategies.Build(cfg, c.ID())
	if err != nil {
		return err
	}

	mgr, err := movement.NewBuilder(mover).
		Strategy(strategy).
		Mode(s.mode).
		Logger(s.log.WithField("entity", c.ID())).
		Build()
	if err != nil {
		return errors.Wrapf(err, "movement for %s", c.ID())
	}
	return s.collisions.World().AttachMovement(c.ID(), mgr)
}
