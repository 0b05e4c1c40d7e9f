package system

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/harborsweep/internal/domain/collision"
	"github.com/younwookim/harborsweep/internal/domain/entity"
	"github.com/younwookim/harborsweep/internal/domain/movement"
	"github.com/younwookim/harborsweep/internal/domain/physics"
	"github.com/younwookim/harborsweep/internal/domain/vmath"
	"github.com/younwookim/harborsweep/internal/ecs"
	"github.com/younwookim/harborsweep/internal/infrastructure/config"
	"github.com/younwookim/harborsweep/internal/infrastructure/physics/chipmunk"
	"github.com/younwookim/harborsweep/internal/infrastructure/physics/kinematic"
)

const configDir = "../../../cmd/game/configs"

func loadScenario(t *testing.T, name string, backend func(physics.Bounds) physics.World) (*config.GameConfig, *CollisionManager, *Spawner) {
	t.Helper()
	cfg, err := config.NewLoader(configDir).LoadAll(name)
	require.NoError(t, err)

	log, _ := test.NewNullLogger()
	bounds := physics.NewBounds(cfg.Simulation.World.Width, cfg.Simulation.World.Height)
	mgr := NewCollisionManager(ecs.NewWorld(), bounds, cfg.Simulation.Collision,
		WithPhysics(backend(bounds)), WithLogger(log))
	reg := NewRules(mgr).NewRegistry(cfg.Simulation.Collision.DefaultImpulse)
	return cfg, mgr, NewSpawner(cfg.Simulation, mgr, reg, log)
}

func kinematicBackend(b physics.Bounds) physics.World { return kinematic.New(b) }
func chipmunkBackend(b physics.Bounds) physics.World  { return chipmunk.New(b) }

func TestSpawnHarbor(t *testing.T) {
	cfg, mgr, spawner := loadScenario(t, "harbor", kinematicBackend)
	require.NoError(t, spawner.SpawnScenario(cfg.Scenario))
	world := mgr.World()

	assert.Equal(t, 9, world.Len())
	require.Contains(t, world.Movement, "tire")
	assert.IsType(t, &movement.Accelerated{}, world.Movement["tire"].Strategy())
	player, ok := world.Player()
	require.True(t, ok)
	assert.Equal(t, "boat", player.ID())
	assert.NotNil(t, player.Body())

	net, ok := world.Get("net")
	require.True(t, ok)
	assert.True(t, net.(*entity.Trash).IsPermanent())
	bottle, _ := world.Get("bottle")
	assert.False(t, bottle.(*entity.Trash).IsPermanent())

	rock, _ := world.Get("rock-west")
	assert.Equal(t, float32(600), rock.(*entity.Rock).BaseForce())
	assert.NotContains(t, world.Movement, "rock-west")
	rock.Body().SetVelocity(vmath.Vec(10, 0))
	assert.Equal(t, vmath.Zero, rock.Body().Velocity(), "rocks are static")

	require.Contains(t, world.Movement, "bag")
	assert.IsType(t, &movement.Orbital{}, world.Movement["bag"].Strategy())
	require.Contains(t, world.Movement, "shark")
	assert.IsType(t, &movement.Composite{}, world.Movement["shark"].Strategy())
	require.Contains(t, world.Movement, "can")
	assert.IsType(t, &movement.Randomized{}, world.Movement["can"].Strategy(), "kind strategy")

	tire, _ := world.Get("tire")
	for i := 0; i < 30; i++ {
		require.NoError(t, mgr.Update(1.0/60, 0))
	}
	assert.Less(t, tire.Position().X(), float32(340), "accelerated trash leaves rest along its configured direction")

	shark, _ := world.Get("shark")
	assert.Equal(t, float32(45), world.Movement["shark"].Movable().Speed())
	assert.Equal(t, float32(150), shark.(*entity.Shark).Knockback())
}

func TestScenarioRuns(t *testing.T) {
	backends := []struct {
		name     string
		scenario string
		backend  func(physics.Bounds) physics.World
	}{
		{name: "harbor on kinematic", scenario: "harbor", backend: kinematicBackend},
		{name: "harbor on chipmunk", scenario: "harbor", backend: chipmunkBackend},
		{name: "lagoon on chipmunk", scenario: "lagoon", backend: chipmunkBackend},
	}

	for _, tt := range backends {
		t.Run(tt.name, func(t *testing.T) {
			cfg, mgr, spawner := loadScenario(t, tt.scenario, tt.backend)
			require.NoError(t, spawner.SpawnScenario(cfg.Scenario))

			pressed := movement.Directions(0).Press(movement.Right)
			dt := cfg.Simulation.Dt()
			for i := 0; i < 180; i++ {
				require.NoError(t, mgr.Update(dt, pressed))
			}

			bounds := mgr.Bounds()
			mgr.World().Each(func(c collision.Collidable) bool {
				inner := bounds.Inset(c.Size())
				p := c.Position()
				assert.True(t, vmath.Finite(p), "%s at %v", c.ID(), p)
				assert.True(t, p.X() >= inner.Min.X()-1e-3 && p.X() <= inner.Max.X()+1e-3, "%s at %v", c.ID(), p)
				assert.True(t, p.Y() >= inner.Min.Y()-1e-3 && p.Y() <= inner.Max.Y()+1e-3, "%s at %v", c.ID(), p)
				return true
			})

			boat, ok := mgr.World().Get("boat")
			require.True(t, ok)
			assert.Greater(t, boat.Position().X(), cfg.Scenario.Spawns[0].X, "player input moves the boat")
		})
	}
}

func TestSpawnGeneratesIDs(t *testing.T) {
	_, mgr, spawner := loadScenario(t, "harbor", kinematicBackend)

	a, err := spawner.Spawn(config.SpawnConfig{Kind: "trash", X: 10, Y: 10})
	require.NoError(t, err)
	b, err := spawner.Spawn(config.SpawnConfig{Kind: "trash", X: 20, Y: 10})
	require.NoError(t, err)

	assert.NotEqual(t, a.ID(), b.ID())
	assert.Regexp(t, `^trash-[0-9a-f]{8}$`, a.ID())
	assert.Equal(t, 2, mgr.World().Len())
}

func TestSpawnScenarioErrors(t *testing.T) {
	tests := []struct {
		name     string
		scenario config.ScenarioConfig
		want     error
	}{
		{
			name:     "unknown kind",
			scenario: config.ScenarioConfig{Spawns: []config.SpawnConfig{{Kind: "whale", ID: "w"}}},
			want:     entity.ErrUnknownKind,
		},
		{
			name: "duplicate id",
			scenario: config.ScenarioConfig{Spawns: []config.SpawnConfig{
				{Kind: "rock", ID: "r"},
				{Kind: "rock", ID: "r"},
			}},
			want: ecs.ErrDuplicateID,
		},
		{
			name: "missing target",
			scenario: config.ScenarioConfig{Spawns: []config.SpawnConfig{
				{Kind: "shark", ID: "s", Strategy: &config.StrategyConfig{Type: config.StrategyFollow, Target: "boat"}},
			}},
			want: ErrUnknownTarget,
		},
		{
			name:     "missing player",
			scenario: config.ScenarioConfig{Player: "boat"},
			want:     ecs.ErrUnknownEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, spawner := loadScenario(t, "harbor", kinematicBackend)
			sc := tt.scenario
			assert.ErrorIs(t, spawner.SpawnScenario(&sc), tt.want)
		})
	}
}

func TestSpawnerLogsScenario(t *testing.T) {
	cfg, err := config.NewLoader(configDir).LoadAll("lagoon")
	require.NoError(t, err)
	log, hook := test.NewNullLogger()
	mgr := NewCollisionManager(ecs.NewWorld(), physics.NewBounds(480, 320), cfg.Simulation.Collision, WithLogger(log))
	spawner := NewSpawner(cfg.Simulation, mgr, NewRules(mgr).NewRegistry(40), log)

	require.NoError(t, spawner.SpawnScenario(cfg.Scenario))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, "lagoon", entry.Data["scenario"])
	assert.Equal(t, 4, entry.Data["entities"])

	boat, _ := mgr.World().Get("boat")
	assert.Nil(t, boat.Body(), "no backend, no bodies")
}
