package config

// EntityConfig holds the settings shared by every entity of one kind.
type EntityConfig struct {
	Width  float32 `json:"width" yaml:"width"`
	Height float32 `json:"height" yaml:"height"`
	Speed  float32 `json:"speed" yaml:"speed"`
	Mass   float32 `json:"mass" yaml:"mass"`
	// Sensor bodies report contacts without pushing each other apart.
	Sensor bool `json:"sensor" yaml:"sensor"`

	BaseForce float32 `json:"baseForce,omitempty" yaml:"baseForce,omitempty"` // rock
	Knockback float32 `json:"knockback,omitempty" yaml:"knockback,omitempty"` // shark
	Value     int     `json:"value,omitempty" yaml:"value,omitempty"`         // trash
	Permanent bool    `json:"permanent,omitempty" yaml:"permanent,omitempty"` // trash

	Strategy *StrategyConfig `json:"strategy,omitempty" yaml:"strategy,omitempty"`
}

// Vec2Config is a 2D vector.
type Vec2Config struct {
	X float32 `json:"x" yaml:"x"`
	Y float32 `json:"y" yaml:"y"`
}

// Strategy types.
const (
	StrategyConstant    = "constant"
	StrategyAccelerated = "accelerated"
	StrategyZigZag      = "zigzag"
	StrategyFollow      = "follow"
	StrategyOrbital     = "orbital"
	StrategySpiral      = "spiral"
	StrategySpring      = "spring"
	StrategyAvoidance   = "avoidance"
	StrategyInterceptor = "interceptor"
	StrategyRandomized  = "randomized"
	StrategyComposite   = "composite"
	StrategyStoppable   = "stoppable"
)

// StrategyConfig describes a movement strategy. Only the fields of the
// selected Type are read. Targets and obstacles are entity IDs.
type StrategyConfig struct {
	Type  string  `json:"type" yaml:"type"`
	Speed float32 `json:"speed,omitempty" yaml:"speed,omitempty"`

	Direction *Vec2Config `json:"direction,omitempty" yaml:"direction,omitempty"`
	Heading   *Vec2Config `json:"heading,omitempty" yaml:"heading,omitempty"`

	Accel    float32 `json:"accel,omitempty" yaml:"accel,omitempty"`
	Decel    float32 `json:"decel,omitempty" yaml:"decel,omitempty"`
	MaxSpeed float32 `json:"maxSpeed,omitempty" yaml:"maxSpeed,omitempty"`

	Amplitude float32 `json:"amplitude,omitempty" yaml:"amplitude,omitempty"`
	Frequency float32 `json:"frequency,omitempty" yaml:"frequency,omitempty"`

	Target       string  `json:"target,omitempty" yaml:"target,omitempty"`
	Radius       float32 `json:"radius,omitempty" yaml:"radius,omitempty"`
	AngularSpeed float32 `json:"angularSpeed,omitempty" yaml:"angularSpeed,omitempty"`
	Eccentricity float32 `json:"eccentricity,omitempty" yaml:"eccentricity,omitempty"`

	Tightness     float32 `json:"tightness,omitempty" yaml:"tightness,omitempty"`
	ApproachSpeed float32 `json:"approachSpeed,omitempty" yaml:"approachSpeed,omitempty"`

	Stiffness float32     `json:"stiffness,omitempty" yaml:"stiffness,omitempty"`
	Damping   float32     `json:"damping,omitempty" yaml:"damping,omitempty"`
	Offset    *Vec2Config `json:"offset,omitempty" yaml:"offset,omitempty"`

	Obstacles       []string `json:"obstacles,omitempty" yaml:"obstacles,omitempty"`
	InfluenceRadius float32  `json:"influenceRadius,omitempty" yaml:"influenceRadius,omitempty"`
	Weight          float32  `json:"weight,omitempty" yaml:"weight,omitempty"`

	MaxLead float32 `json:"maxLead,omitempty" yaml:"maxLead,omitempty"`

	MinDuration float32 `json:"minDuration,omitempty" yaml:"minDuration,omitempty"`
	MaxDuration float32 `json:"maxDuration,omitempty" yaml:"maxDuration,omitempty"`

	Strategies []StrategyConfig `json:"strategies,omitempty" yaml:"strategies,omitempty"`
	Weights    []float32        `json:"weights,omitempty" yaml:"weights,omitempty"`

	Inner   *StrategyConfig `json:"inner,omitempty" yaml:"inner,omitempty"`
	Stopped bool            `json:"stopped,omitempty" yaml:"stopped,omitempty"`
}
