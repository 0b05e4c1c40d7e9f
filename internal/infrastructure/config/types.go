package config

import "fmt"

// SimulationConfig is the root config for simulation.json
type SimulationConfig struct {
	Display   DisplayConfig           `json:"display" yaml:"display"`
	World     WorldConfig             `json:"world" yaml:"world"`
	Collision CollisionConfig         `json:"collision" yaml:"collision"`
	Movement  MovementConfig          `json:"movement" yaml:"movement"`
	Physics   PhysicsConfig           `json:"physics" yaml:"physics"`
	Entities  map[string]EntityConfig `json:"entities" yaml:"entities"`
	Controls  ControlsConfig          `json:"controls" yaml:"controls"`
}

type DisplayConfig struct {
	ScreenWidth  int `json:"screenWidth" yaml:"screenWidth"`
	ScreenHeight int `json:"screenHeight" yaml:"screenHeight"`
	Scale        int `json:"scale" yaml:"scale"`
	Framerate    int `json:"framerate" yaml:"framerate"`
}

// WorldConfig is the playable rectangle, origin at the top left.
type WorldConfig struct {
	Width  float32 `json:"width" yaml:"width"`
	Height float32 `json:"height" yaml:"height"`
}

type CollisionConfig struct {
	// ActiveDuration is the collision-active window in seconds.
	ActiveDuration float64 `json:"activeDuration" yaml:"activeDuration"`
	// BlendFactor is the fraction of the gap between physics and desired
	// position closed per frame while in collision.
	BlendFactor    float32 `json:"blendFactor" yaml:"blendFactor"`
	DefaultImpulse float32 `json:"defaultImpulse" yaml:"defaultImpulse"`
	// SustainedDispatch re-runs collision handlers every frame while a pair
	// stays in contact.
	SustainedDispatch bool `json:"sustainedDispatch" yaml:"sustainedDispatch"`
}

type MovementConfig struct {
	Mode string `json:"mode" yaml:"mode"` // "strict" or "lenient"
}

type PhysicsConfig struct {
	Backend       string  `json:"backend" yaml:"backend"` // "chipmunk" or "kinematic"
	LinearDamping float32 `json:"linearDamping" yaml:"linearDamping"`
}

// ControlsConfig maps each direction to ebiten key names.
type ControlsConfig struct {
	Up    []string `json:"up" yaml:"up"`
	Down  []string `json:"down" yaml:"down"`
	Left  []string `json:"left" yaml:"left"`
	Right []string `json:"right" yaml:"right"`
	Pause []string `json:"pause" yaml:"pause"`
}

// Validate checks values the simulation cannot run with.
func (c *SimulationConfig) Validate() error {
	if c.Display.ScreenWidth <= 0 || c.Display.ScreenHeight <= 0 {
		return fmt.Errorf("invalid screen size %dx%d", c.Display.ScreenWidth, c.Display.ScreenHeight)
	}
	if c.Display.Framerate <= 0 {
		return fmt.Errorf("invalid framerate %d", c.Display.Framerate)
	}
	if c.World.Width <= 0 || c.World.Height <= 0 {
		return fmt.Errorf("invalid world size %vx%v", c.World.Width, c.World.Height)
	}
	if c.Collision.BlendFactor < 0 || c.Collision.BlendFactor > 1 {
		return fmt.Errorf("blend factor %v outside [0, 1]", c.Collision.BlendFactor)
	}
	if c.Collision.ActiveDuration < 0 {
		return fmt.Errorf("negative collision duration %v", c.Collision.ActiveDuration)
	}
	switch c.Physics.Backend {
	case "", BackendChipmunk, BackendKinematic:
	default:
		return fmt.Errorf("unknown physics backend %q", c.Physics.Backend)
	}
	return nil
}

// Physics backends.
const (
	BackendChipmunk  = "chipmunk"
	BackendKinematic = "kinematic"
)

// Dt returns the fixed frame step in seconds.
func (c *SimulationConfig) Dt() float32 {
	return 1 / float32(c.Display.Framerate)
}
