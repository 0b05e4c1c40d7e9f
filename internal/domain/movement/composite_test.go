package movement

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/harborsweep/internal/domain/vmath"
)

func TestComposite_BlendsInsteadOfCompounding(t *testing.T) {
	right := &Constant{Direction: vmath.Vec(1, 0), Speed: 10}
	down := &Constant{Direction: vmath.Vec(0, 1), Speed: 4}

	// displacement each strategy produces on its own from the same start
	d1 := newMover(5, 5, 0, vmath.Zero)
	require.NoError(t, right.Move(d1, 1))
	d2 := newMover(5, 5, 0, vmath.Zero)
	require.NoError(t, down.Move(d2, 1))

	c, err := NewComposite([]Strategy{right, down}, []float32{0.5, 0.5})
	require.NoError(t, err)

	m := newMover(5, 5, 0, vmath.Zero)
	require.NoError(t, c.Move(m, 1))

	start := vmath.Vec(5, 5)
	want := start.Add(d1.Position().Sub(start).Mul(0.5)).Add(d2.Position().Sub(start).Mul(0.5))
	assert.True(t, vmath.ApproxEqual(want, m.Position(), tol), "got %v want %v", m.Position(), want)
	assert.True(t, vmath.ApproxEqual(vmath.Vec(5, 2), m.Velocity(), tol))

	compounded := start.Add(d1.Position().Sub(start)).Add(d2.Position().Sub(start))
	assert.False(t, vmath.ApproxEqual(compounded, m.Position(), tol))
}

func TestComposite_ShadowStateIsolatesStrategies(t *testing.T) {
	var seen []mgl32.Vec2
	record := StrategyFunc(func(m Movable, dt float32) error {
		seen = append(seen, m.Position())
		m.SetPosition(m.Position().Add(vmath.Vec(100, 0)))
		return nil
	})

	c, err := NewComposite([]Strategy{record, record}, []float32{1, 1})
	require.NoError(t, err)

	m := newMover(1, 2, 0, vmath.Zero)
	require.NoError(t, c.Move(m, 0.1))

	require.Len(t, seen, 2)
	assert.Equal(t, vmath.Vec(1, 2), seen[0])
	assert.Equal(t, vmath.Vec(1, 2), seen[1], "second strategy must start from the real position")
	assert.True(t, vmath.ApproxEqual(vmath.Vec(101, 2), m.Position(), tol))
}

func TestComposite_WeightNormalization(t *testing.T) {
	tests := []struct {
		name    string
		weights []float32
		want    []float32
	}{
		{name: "already normalised", weights: []float32{0.25, 0.75}, want: []float32{0.25, 0.75}},
		{name: "scaled", weights: []float32{2, 2}, want: []float32{0.5, 0.5}},
		{name: "all zero falls back to equal", weights: []float32{0, 0}, want: []float32{0.5, 0.5}},
		{name: "absolute sum", weights: []float32{-1, 3}, want: []float32{-0.25, 0.75}},
		{name: "three way", weights: []float32{1, 1, 2}, want: []float32{0.25, 0.25, 0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strategies := make([]Strategy, len(tt.weights))
			for i := range strategies {
				strategies[i] = NewConstant()
			}

			c, err := NewComposite(strategies, tt.weights)
			require.NoError(t, err)

			assert.InDeltaSlice(t, tt.want, c.Weights(), 1e-6)
		})
	}
}

func TestComposite_RenormalizesOnMutation(t *testing.T) {
	c, err := NewComposite([]Strategy{NewConstant()}, []float32{3})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float32{1}, c.Weights(), 1e-6)

	require.NoError(t, c.Add(NewConstant(), 1))
	assert.InDeltaSlice(t, []float32{0.5, 0.5}, c.Weights(), 1e-6)

	require.NoError(t, c.SetWeights([]float32{1, 3}))
	assert.InDeltaSlice(t, []float32{0.25, 0.75}, c.Weights(), 1e-6)

	require.NoError(t, c.Remove(0))
	assert.Equal(t, 1, c.Len())
	assert.InDeltaSlice(t, []float32{1}, c.Weights(), 1e-6)

	assert.ErrorIs(t, c.Remove(4), ErrInvalidComposite)
	assert.ErrorIs(t, c.SetWeights([]float32{1, 2}), ErrInvalidComposite)
	assert.ErrorIs(t, c.Add(nil, 1), ErrNilStrategy)
}

func TestComposite_Validation(t *testing.T) {
	_, err := NewComposite([]Strategy{NewConstant()}, []float32{1, 2})
	assert.ErrorIs(t, err, ErrInvalidComposite)

	_, err = NewComposite([]Strategy{nil}, []float32{1})
	assert.ErrorIs(t, err, ErrNilStrategy)
}

func TestComposite_PropagatesSubStrategyError(t *testing.T) {
	c, err := NewComposite([]Strategy{NewConstant(), &Follow{}}, []float32{1, 1})
	require.NoError(t, err)

	m := newMover(0, 0, 1, vmath.Vec(1, 0))
	assert.ErrorIs(t, c.Move(m, 1), ErrNoTarget)
}
