package config

// ScenarioConfig is the root config for scenario files
type ScenarioConfig struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	// Player is the ID of the entity driven by input.
	Player string        `json:"player" yaml:"player"`
	Spawns []SpawnConfig `json:"spawns" yaml:"spawns"`
}

// SpawnConfig places one entity. Zero-valued overrides fall back to the
// kind's EntityConfig.
type SpawnConfig struct {
	Kind string  `json:"kind" yaml:"kind"`
	ID   string  `json:"id,omitempty" yaml:"id,omitempty"`
	X    float32 `json:"x" yaml:"x"`
	Y    float32 `json:"y" yaml:"y"`

	Speed     *float32        `json:"speed,omitempty" yaml:"speed,omitempty"`
	Permanent *bool           `json:"permanent,omitempty" yaml:"permanent,omitempty"`
	Strategy  *StrategyConfig `json:"strategy,omitempty" yaml:"strategy,omitempty"`
}
