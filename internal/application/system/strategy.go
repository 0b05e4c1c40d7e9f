package system

import (
	"fmt"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/younwookim/harborsweep/internal/domain/movement"
	"github.com/younwookim/harborsweep/internal/ecs"
	"github.com/younwookim/harborsweep/internal/infrastructure/config"
)

var (
	// ErrUnknownStrategy is returned for a strategy type with no builder.
	ErrUnknownStrategy = errors.New("system: unknown strategy type")
	// ErrUnknownTarget is returned when a strategy refers to a missing entity.
	ErrUnknownTarget = errors.New("system: unknown strategy target")
)

// StrategyFactory builds movement strategies from their config, resolving
// target and obstacle IDs through the entity manager.
type StrategyFactory struct {
	world *ecs.World
}

// NewStrategyFactory creates a factory resolving references in world.
func NewStrategyFactory(world *ecs.World) *StrategyFactory {
	return &StrategyFactory{world: world}
}

// Build returns the strategy described by cfg for the entity owner. A nil
// cfg yields a nil strategy, which the movement manager replaces or rejects
// depending on its mode. Randomized strategies are seeded from owner.
func (f *StrategyFactory) Build(cfg *config.StrategyConfig, owner string) (movement.Strategy, error) {
	if cfg == nil {
		return nil, nil
	}
	s, err := f.build(*cfg, owner)
	if err != nil {
		return nil, errors.Wrapf(err, "strategy for %s", owner)
	}
	return s, nil
}

func vec(v *config.Vec2Config) mgl32.Vec2 {
	if v == nil {
		return mgl32.Vec2{}
	}
	return mgl32.Vec2{v.X, v.Y}
}

func (f *StrategyFactory) build(cfg config.StrategyConfig, key string) (movement.Strategy, error) {
	switch cfg.Type {
	case config.StrategyConstant, "":
		return &movement.Constant{Direction: vec(cfg.Direction), Speed: cfg.Speed}, nil

	case config.StrategyAccelerated:
		a := movement.NewAccelerated(cfg.Accel, cfg.Decel, cfg.MaxSpeed)
		a.Heading = vec(cfg.Direction)
		if cfg.Direction == nil {
			a.Heading = vec(cfg.Heading)
		}
		return a, nil

	case config.StrategyZigZag:
		return &movement.ZigZag{
			Speed:     cfg.Speed,
			Amplitude: cfg.Amplitude,
			Frequency: cfg.Frequency,
			Heading:   vec(cfg.Heading),
		}, nil

	case config.StrategyFollow:
		target, err := f.tracked(cfg.Target)
		if err != nil {
			return nil, err
		}
		return &movement.Follow{Target: target, Speed: cfg.Speed}, nil

	case config.StrategyInterceptor:
		target, err := f.tracked(cfg.Target)
		if err != nil {
			return nil, err
		}
		return &movement.Interceptor{Target: target, Speed: cfg.Speed, MaxLead: cfg.MaxLead}, nil

	case config.StrategyOrbital:
		target, err := f.tracked(cfg.Target)
		if err != nil {
			return nil, err
		}
		return movement.NewOrbital(target, cfg.Radius, cfg.AngularSpeed, cfg.Eccentricity), nil

	case config.StrategySpiral:
		target, err := f.tracked(cfg.Target)
		if err != nil {
			return nil, err
		}
		return &movement.SpiralApproach{
			Target:        target,
			Speed:         cfg.Speed,
			Tightness:     cfg.Tightness,
			ApproachSpeed: cfg.ApproachSpeed,
		}, nil

	case config.StrategySpring:
		target, err := f.tracked(cfg.Target)
		if err != nil {
			return nil, err
		}
		return &movement.SpringFollow{
			Target:  target,
			K:       cfg.Stiffness,
			Damping: cfg.Damping,
			Offset:  vec(cfg.Offset),
		}, nil

	case config.StrategyAvoidance:
		obstacles := make([]movement.Positionable, 0, len(cfg.Obstacles))
		for _, id := range cfg.Obstacles {
			o, err := f.tracked(id)
			if err != nil {
				return nil, err
			}
			obstacles = append(obstacles, o)
		}
		return &movement.ObstacleAvoidance{
			Obstacles:       obstacles,
			Speed:           cfg.Speed,
			InfluenceRadius: cfg.InfluenceRadius,
			Weight:          cfg.Weight,
			Heading:         vec(cfg.Heading),
		}, nil

	case config.StrategyRandomized:
		pool, err := f.children(cfg.Strategies, key)
		if err != nil {
			return nil, err
		}
		rng := rand.New(rand.NewSource(movement.SeedFor(key)))
		return movement.NewRandomized(pool, cfg.MinDuration, cfg.MaxDuration, rng)

	case config.StrategyComposite:
		children, err := f.children(cfg.Strategies, key)
		if err != nil {
			return nil, err
		}
		weights := cfg.Weights
		if len(weights) == 0 {
			weights = lo.Times(len(children), func(int) float32 { return 1 })
		}
		return movement.NewComposite(children, weights)

	case config.StrategyStoppable:
		if cfg.Inner == nil {
			return nil, errors.Wrap(movement.ErrNilStrategy, "stoppable without inner strategy")
		}
		inner, err := f.build(*cfg.Inner, key+"/inner")
		if err != nil {
			return nil, err
		}
		s := movement.NewStoppable(inner)
		if cfg.Stopped {
			s.Stop()
		}
		return s, nil
	}
	return nil, errors.Wrapf(ErrUnknownStrategy, "%q", cfg.Type)
}

func (f *StrategyFactory) children(cfgs []config.StrategyConfig, key string) ([]movement.Strategy, error) {
	out := make([]movement.Strategy, 0, len(cfgs))
	for i, c := range cfgs {
		s, err := f.build(c, fmt.Sprintf("%s/%d", key, i))
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// tracked resolves id to an entity whose position and velocity strategies
// can read.
func (f *StrategyFactory) tracked(id string) (movement.Tracked, error) {
	c, ok := f.world.Get(id)
	if !ok {
		return nil, errors.Wrapf(ErrUnknownTarget, "%q", id)
	}
	t, ok := c.(movement.Tracked)
	if !ok {
		return nil, errors.Wrapf(ErrUnknownTarget, "%q has no velocity", id)
	}
	return t, nil
}
