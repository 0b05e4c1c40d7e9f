package config

import (
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_LoadSimulation(t *testing.T) {
	loader := NewLoader("../../../cmd/game/configs")

	cfg, err := loader.LoadSimulation()
	require.NoError(t, err)

	assert.Equal(t, 480, cfg.Display.ScreenWidth)
	assert.Equal(t, 60, cfg.Display.Framerate)
	assert.InDelta(t, 1.0/60, cfg.Dt(), 1e-7)
	assert.Equal(t, float32(0.1), cfg.Collision.BlendFactor)
	assert.True(t, cfg.Collision.SustainedDispatch)
	assert.Equal(t, BackendChipmunk, cfg.Physics.Backend)
	assert.Equal(t, []string{"W", "ArrowUp"}, cfg.Controls.Up)

	rock, ok := cfg.Entities["rock"]
	require.True(t, ok)
	assert.Equal(t, float32(600), rock.BaseForce)

	trash, ok := cfg.Entities["trash"]
	require.True(t, ok)
	require.NotNil(t, trash.Strategy)
	assert.Equal(t, StrategyRandomized, trash.Strategy.Type)
	assert.Len(t, trash.Strategy.Strategies, 3)
}

func TestLoader_LoadScenario(t *testing.T) {
	loader := NewLoader("../../../cmd/game/configs")

	cfg, err := loader.LoadScenario("harbor")
	require.NoError(t, err)

	assert.Equal(t, "harbor", cfg.ID)
	assert.Equal(t, "boat", cfg.Player)
	require.Len(t, cfg.Spawns, 9)

	shark := cfg.Spawns[8]
	assert.Equal(t, "shark", shark.Kind)
	require.NotNil(t, shark.Strategy)
	assert.Equal(t, StrategyComposite, shark.Strategy.Type)
	assert.Equal(t, []float32{3, 1}, shark.Strategy.Weights)
	assert.Equal(t, "boat", shark.Strategy.Strategies[0].Target)

	net := cfg.Spawns[4]
	require.NotNil(t, net.Permanent)
	assert.True(t, *net.Permanent)
}

func TestLoader_LoadScenarioYAML(t *testing.T) {
	loader := NewLoader("../../../cmd/game/configs")

	cfg, err := loader.LoadScenario("lagoon")
	require.NoError(t, err)

	assert.Equal(t, "Quiet Lagoon", cfg.Name)
	require.Len(t, cfg.Spawns, 4)
	buoy := cfg.Spawns[1]
	require.NotNil(t, buoy.Strategy)
	assert.Equal(t, StrategySpring, buoy.Strategy.Type)
	assert.Equal(t, &Vec2Config{X: -40, Y: 0}, buoy.Strategy.Offset)
	assert.Equal(t, StrategySpiral, cfg.Spawns[3].Strategy.Inner.Type)
}

func TestLoader_FS(t *testing.T) {
	fsys := fstest.MapFS{
		"simulation.yaml": {Data: []byte(`
display: {screenWidth: 100, screenHeight: 80, scale: 1, framerate: 30}
world: {width: 100, height: 80}
collision: {activeDuration: 0.5, blendFactor: 0.2}
physics: {backend: kinematic}
`)},
		"scenarios/empty.json":  {Data: []byte(`{"spawns": []}`)},
		"scenarios/broken.json": {Data: []byte(`{"spawns": [`)},
	}
	loader := NewFSLoader(fsys, "mem")

	cfg, err := loader.LoadAll("empty")
	require.NoError(t, err)
	assert.Equal(t, BackendKinematic, cfg.Simulation.Physics.Backend)
	assert.Equal(t, "empty", cfg.Scenario.ID)

	_, err = loader.LoadScenario("broken")
	assert.ErrorContains(t, err, "failed to parse scenarios/broken.json")

	_, err = loader.LoadScenario("missing")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestSimulationConfig_Validate(t *testing.T) {
	valid := func() SimulationConfig {
		return SimulationConfig{
			Display:   DisplayConfig{ScreenWidth: 10, ScreenHeight: 10, Framerate: 60},
			World:     WorldConfig{Width: 10, Height: 10},
			Collision: CollisionConfig{BlendFactor: 0.1},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *SimulationConfig)
		wantErr string
	}{
		{name: "valid", mutate: func(*SimulationConfig) {}},
		{name: "no screen", mutate: func(c *SimulationConfig) { c.Display.ScreenWidth = 0 }, wantErr: "screen size"},
		{name: "no framerate", mutate: func(c *SimulationConfig) { c.Display.Framerate = 0 }, wantErr: "framerate"},
		{name: "no world", mutate: func(c *SimulationConfig) { c.World.Height = -1 }, wantErr: "world size"},
		{name: "blend too large", mutate: func(c *SimulationConfig) { c.Collision.BlendFactor = 1.5 }, wantErr: "blend factor"},
		{name: "negative duration", mutate: func(c *SimulationConfig) { c.Collision.ActiveDuration = -1 }, wantErr: "collision duration"},
		{name: "unknown backend", mutate: func(c *SimulationConfig) { c.Physics.Backend = "box2d" }, wantErr: "backend"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
