package movement

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/younwookim/harborsweep/internal/domain/vmath"
)

// Composite blends several strategies. Each one runs against its own shadow
// copy of the movable, and the weighted position deltas and velocities are
// summed and applied once. Running them one after another on the real state
// would compound their effects instead of blending them.
//
// Weights are renormalised so their absolute values sum to 1 whenever the
// set changes; if they are all ~0 every strategy gets an equal share.
type Composite struct {
	strategies []Strategy
	weights    []float32
}

// NewComposite creates a composite from matching strategy and weight lists.
func NewComposite(strategies []Strategy, weights []float32) (*Composite, error) {
	if len(strategies) != len(weights) {
		return nil, errors.Wrapf(ErrInvalidComposite, "%d strategies, %d weights", len(strategies), len(weights))
	}
	for i, s := range strategies {
		if s == nil {
			return nil, errors.Wrapf(ErrNilStrategy, "composite[%d]", i)
		}
	}
	c := &Composite{
		strategies: append([]Strategy(nil), strategies...),
		weights:    append([]float32(nil), weights...),
	}
	c.normalize()
	return c, nil
}

// Add appends a strategy with the given raw weight.
func (c *Composite) Add(s Strategy, weight float32) error {
	if s == nil {
		return errors.WithStack(ErrNilStrategy)
	}
	c.strategies = append(c.strategies, s)
	c.weights = append(c.weights, weight)
	c.normalize()
	return nil
}

// Remove drops the strategy at index i.
func (c *Composite) Remove(i int) error {
	if i < 0 || i >= len(c.strategies) {
		return errors.Wrapf(ErrInvalidComposite, "index %d out of range", i)
	}
	c.strategies = append(c.strategies[:i], c.strategies[i+1:]...)
	c.weights = append(c.weights[:i], c.weights[i+1:]...)
	c.normalize()
	return nil
}

// SetWeights replaces all weights.
func (c *Composite) SetWeights(weights []float32) error {
	if len(weights) != len(c.strategies) {
		return errors.Wrapf(ErrInvalidComposite, "%d strategies, %d weights", len(c.strategies), len(weights))
	}
	c.weights = append(c.weights[:0], weights...)
	c.normalize()
	return nil
}

// Weights returns a copy of the normalised weights.
func (c *Composite) Weights() []float32 {
	return append([]float32(nil), c.weights...)
}

// Len returns the number of blended strategies.
func (c *Composite) Len() int { return len(c.strategies) }

func (c *Composite) normalize() {
	if len(c.weights) == 0 {
		return
	}
	sum := lo.SumBy(c.weights, func(w float32) float32 { return math32.Abs(w) })
	if sum < vmath.Epsilon || !vmath.FiniteScalar(sum) {
		equal := 1 / float32(len(c.weights))
		for i := range c.weights {
			c.weights[i] = equal
		}
		return
	}
	for i := range c.weights {
		c.weights[i] /= sum
	}
}

func (c *Composite) Move(m Movable, dt float32) error {
	if ok, err := checkDelta(dt); !ok {
		return err
	}
	if len(c.strategies) == 0 {
		return nil
	}

	start := m.Position()
	var delta, vel mgl32.Vec2
	for i, s := range c.strategies {
		shadow := Snapshot(m)
		if err := s.Move(shadow, dt); err != nil {
			return errors.Wrapf(err, "composite[%d]", i)
		}
		w := c.weights[i]
		delta = delta.Add(shadow.Position().Sub(start).Mul(w))
		vel = vel.Add(shadow.Velocity().Mul(w))
	}

	m.SetPosition(start.Add(delta))
	m.SetVelocity(vel)
	return nil
}
