package system

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/getsentry/sentry-go"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/harborsweep/internal/domain/collision"
	"github.com/younwookim/harborsweep/internal/domain/entity"
	"github.com/younwookim/harborsweep/internal/domain/movement"
	"github.com/younwookim/harborsweep/internal/domain/physics"
	"github.com/younwookim/harborsweep/internal/ecs"
	"github.com/younwookim/harborsweep/internal/infrastructure/config"
	"github.com/younwookim/harborsweep/internal/infrastructure/physics/kinematic"
)

type testEntity interface {
	collision.Collidable
	movement.Movable
	AttachBody(b physics.Body)
}

type testSim struct {
	mgr  *CollisionManager
	reg  *collision.Registry
	hook *test.Hook
}

func newTestSim(t *testing.T, w physics.World, cfg config.CollisionConfig) *testSim {
	t.Helper()
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	opts := []Option{WithLogger(log), WithHub(sentry.NewHub(nil, sentry.NewScope()))}
	if w != nil {
		opts = append(opts, WithPhysics(w))
	}
	mgr := NewCollisionManager(ecs.NewWorld(), physics.NewBounds(100, 100), cfg, opts...)
	return &testSim{
		mgr:  mgr,
		reg:  NewRules(mgr).NewRegistry(cfg.DefaultImpulse),
		hook: hook,
	}
}

func (s *testSim) options(size, speed float32) entity.Options {
	return entity.Options{
		Size:  mgl32.Vec2{size, size},
		Speed: speed,
		Clock: s.mgr.Clock(),
		Rules: s.reg,
	}
}

// add registers e with a body when the sim has a backend, and a movement
// manager when strategy is set.
func (s *testSim) add(t *testing.T, e testEntity, kind physics.BodyKind, strategy movement.Strategy, mode movement.Mode) {
	t.Helper()
	if w := s.mgr.Physics(); w != nil {
		e.AttachBody(w.CreateBody(physics.BodyDef{
			Kind:     kind,
			Position: e.Position(),
			Size:     e.Size(),
			Mass:     1,
			Payload:  e,
		}))
	}
	require.NoError(t, s.mgr.World().Add(e))
	if strategy == nil {
		return
	}
	mm, err := movement.NewBuilder(e).Strategy(strategy).Mode(mode).Logger(logrus.New()).Build()
	require.NoError(t, err)
	require.NoError(t, s.mgr.World().AttachMovement(e.ID(), mm))
}

func right() movement.Strategy {
	return &movement.Constant{Direction: mgl32.Vec2{1, 0}}
}

func TestUpdateMovesBodyToDesiredPosition(t *testing.T) {
	s := newTestSim(t, kinematic.New(physics.NewBounds(100, 100)), config.CollisionConfig{})
	boat := entity.NewBoat("boat", mgl32.Vec2{0, 0}, s.options(10, 10))
	s.add(t, boat, physics.Dynamic, right(), movement.Lenient)

	require.NoError(t, s.mgr.Update(1, 0))

	assert.InDelta(t, 10, boat.Position().X(), 1e-5)
	// y is clamped to the half extent
	assert.InDelta(t, 5, boat.Position().Y(), 1e-5)
	assert.Equal(t, boat.Position(), boat.Body().Position())
	assert.Equal(t, mgl32.Vec2{10, 0}, boat.Body().Velocity())
}

func TestUpdateWithoutBodySyncsClampedPosition(t *testing.T) {
	s := newTestSim(t, nil, config.CollisionConfig{})
	boat := entity.NewBoat("boat", mgl32.Vec2{90, 50}, s.options(10, 20))
	s.add(t, boat, physics.Dynamic, right(), movement.Lenient)

	require.NoError(t, s.mgr.Update(1, 0))

	assert.Nil(t, boat.Body())
	assert.Equal(t, mgl32.Vec2{95, 50}, boat.Position())
}

func TestUpdateAppliesPlayerInput(t *testing.T) {
	s := newTestSim(t, nil, config.CollisionConfig{})
	boat := entity.NewBoat("boat", mgl32.Vec2{50, 50}, s.options(10, 10))
	other := entity.NewBoat("other", mgl32.Vec2{20, 20}, s.options(10, 10))
	s.add(t, boat, physics.Dynamic, movement.NewConstant(), movement.Lenient)
	s.add(t, other, physics.Dynamic, movement.NewConstant(), movement.Lenient)
	require.NoError(t, s.mgr.World().SetPlayer("boat"))

	pressed := movement.Directions(0).Press(movement.Down)
	require.NoError(t, s.mgr.Update(1, pressed))

	assert.Equal(t, mgl32.Vec2{50, 60}, boat.Position())
	assert.Equal(t, entity.SpriteDown, boat.Sprite())
	assert.Equal(t, mgl32.Vec2{20, 20}, other.Position(), "input only reaches the player")
}

func TestCollectorCoveringCollectible(t *testing.T) {
	s := newTestSim(t, nil, config.CollisionConfig{SustainedDispatch: true})
	boat := entity.NewBoat("boat", mgl32.Vec2{50, 50}, s.options(20, 0))
	trash := entity.NewTrash("bottle", mgl32.Vec2{50, 50}, 10, s.options(4, 0))
	s.add(t, boat, physics.Dynamic, movement.NewConstant(), movement.Lenient)
	s.add(t, trash, physics.Dynamic, nil, movement.Lenient)

	var removed []string
	s.mgr.OnRemoved = func(c collision.Collidable) { removed = append(removed, c.ID()) }

	require.NoError(t, s.mgr.Update(0.1, 0))

	assert.False(t, trash.IsActive())
	assert.Equal(t, 1, s.mgr.Removals().Len())
	assert.True(t, s.mgr.Removals().Scheduled("bottle"))
	assert.Equal(t, 1, boat.Haul())
	assert.Equal(t, 10, boat.Score())
	assert.False(t, s.mgr.ScheduleRemoval(trash), "second schedule is a no-op")

	require.NoError(t, s.mgr.Update(0.1, 0))
	require.NoError(t, s.mgr.Update(0.1, 0))

	assert.Equal(t, []string{"bottle"}, removed)
	assert.False(t, s.mgr.World().Exists("bottle"))
	assert.False(t, s.mgr.Tracker().IsInAnyPair(boat))
	assert.Equal(t, 0, s.mgr.Removals().Len())
	assert.Equal(t, 1, boat.Haul())
}

func TestPermanentCollectibleStays(t *testing.T) {
	s := newTestSim(t, nil, config.CollisionConfig{SustainedDispatch: true})
	boat := entity.NewBoat("boat", mgl32.Vec2{50, 50}, s.options(20, 0))
	net := entity.NewTrash("net", mgl32.Vec2{50, 50}, 10, s.options(4, 0))
	net.Permanent = true
	s.add(t, boat, physics.Dynamic, movement.NewConstant(), movement.Lenient)
	s.add(t, net, physics.Dynamic, nil, movement.Lenient)

	for i := 0; i < 3; i++ {
		require.NoError(t, s.mgr.Update(0.1, 0))
	}

	assert.True(t, net.IsActive())
	assert.True(t, s.mgr.World().Exists("net"))
	assert.Equal(t, 0, boat.Haul())
}

func TestRemovalDestroysBody(t *testing.T) {
	w := kinematic.New(physics.NewBounds(100, 100))
	s := newTestSim(t, w, config.CollisionConfig{})
	shark := entity.NewShark("shark", mgl32.Vec2{50, 50}, 10, s.options(10, 0))
	s.add(t, shark, physics.Dynamic, movement.NewConstant(), movement.Lenient)

	calls := 0
	s.mgr.OnRemoved = func(collision.Collidable) { calls++ }
	assert.True(t, s.mgr.ScheduleRemoval(shark))
	assert.False(t, s.mgr.ScheduleRemoval(shark))

	require.NoError(t, s.mgr.Update(0.1, 0))

	assert.Equal(t, 1, calls)
	assert.True(t, shark.Body().Destroyed())
	assert.False(t, shark.IsActive())
	assert.Equal(t, 0, w.Len())
	assert.False(t, s.mgr.ScheduleRemoval(shark), "removed entities stay removed")
}

func TestReconcileBlendsWhileInCollision(t *testing.T) {
	s := newTestSim(t, kinematic.New(physics.NewBounds(100, 100)), config.CollisionConfig{BlendFactor: 0.1})
	boat := entity.NewBoat("boat", mgl32.Vec2{50, 50}, s.options(10, 100))
	s.add(t, boat, physics.Dynamic, right(), movement.Lenient)
	boat.RefreshCollision()

	require.NoError(t, s.mgr.Update(0.1, 0))

	// desired x is 60, the body only closes a tenth of the gap
	assert.InDelta(t, 51, boat.Body().Position().X(), 1e-4)
	assert.InDelta(t, 51, boat.Position().X(), 1e-4)
	assert.InDelta(t, 10, boat.Body().Velocity().X(), 1e-4)
}

func TestReconcileSnapsOnceWindowLapses(t *testing.T) {
	s := newTestSim(t, kinematic.New(physics.NewBounds(100, 100)), config.CollisionConfig{ActiveDuration: 0.25})
	boat := entity.NewBoat("boat", mgl32.Vec2{50, 50}, s.options(10, 100))
	s.add(t, boat, physics.Dynamic, right(), movement.Lenient)
	boat.RefreshCollision()

	require.NoError(t, s.mgr.Update(0.5, 0))

	assert.False(t, boat.IsInCollision())
	assert.InDelta(t, 95, boat.Body().Position().X(), 1e-4)
}

func TestReconcileSkipsDetachedBody(t *testing.T) {
	w := kinematic.New(physics.NewBounds(100, 100))
	s := newTestSim(t, w, config.CollisionConfig{})
	boat := entity.NewBoat("boat", mgl32.Vec2{50, 50}, s.options(10, 10))
	s.add(t, boat, physics.Dynamic, right(), movement.Lenient)
	w.DestroyBody(boat.Body())

	require.NoError(t, s.mgr.Update(1, 0))

	entry := s.hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, ErrDetachedBody, entry.Data["error"])
	assert.Equal(t, "boat", entry.Data["entity"])
	assert.Equal(t, mgl32.Vec2{50, 50}, boat.Body().Position())
}

func TestRefreshesWindowWhileTracked(t *testing.T) {
	s := newTestSim(t, nil, config.CollisionConfig{ActiveDuration: 0.25})
	a := entity.NewShark("a", mgl32.Vec2{50, 50}, 0, s.options(10, 0))
	b := entity.NewShark("b", mgl32.Vec2{52, 50}, 0, s.options(10, 0))
	s.add(t, a, physics.Dynamic, nil, movement.Lenient)
	s.add(t, b, physics.Dynamic, nil, movement.Lenient)

	for i := 0; i < 5; i++ {
		require.NoError(t, s.mgr.Update(0.2, 0))
		assert.True(t, a.IsInCollision(), "frame %d", i)
		assert.True(t, b.IsInCollision(), "frame %d", i)
	}
	assert.True(t, s.mgr.Tracker().Contains(a, b))
}

func TestUpdateIsolatesPanics(t *testing.T) {
	s := newTestSim(t, nil, config.CollisionConfig{})
	var hits []string
	reg := collision.NewRegistry(func(self, _ collision.Collidable) {
		if self.ID() == "bad" {
			panic("boom")
		}
		hits = append(hits, self.ID())
	})
	opts := s.options(10, 0)
	opts.Rules = reg
	bad := entity.NewShark("bad", mgl32.Vec2{50, 50}, 0, opts)
	good := entity.NewShark("good", mgl32.Vec2{50, 50}, 0, opts)
	s.add(t, bad, physics.Dynamic, nil, movement.Lenient)
	s.add(t, good, physics.Dynamic, nil, movement.Lenient)

	var err error
	require.NotPanics(t, func() {
		err = s.mgr.Update(0.1, 0)
	})
	assert.ErrorIs(t, err, ErrEntityPanic)
	assert.Contains(t, err.Error(), "entity bad: boom")
	assert.Equal(t, []string{"good"}, hits)

	var panicked *logrus.Entry
	for _, e := range s.hook.AllEntries() {
		if e.Level == logrus.ErrorLevel {
			panicked = e
		}
	}
	require.NotNil(t, panicked)
	assert.Equal(t, "bad", panicked.Data["entity"])
	assert.Equal(t, "boom", panicked.Data["panic"])
}

func TestUpdateReturnsStrictMovementError(t *testing.T) {
	s := newTestSim(t, nil, config.CollisionConfig{})
	failing := movement.StrategyFunc(func(movement.Movable, float32) error {
		return errors.New("stuck")
	})
	broken := entity.NewShark("broken", mgl32.Vec2{20, 20}, 0, s.options(10, 10))
	fine := entity.NewShark("fine", mgl32.Vec2{50, 80}, 0, s.options(10, 10))
	s.add(t, broken, physics.Dynamic, failing, movement.Strict)
	s.add(t, fine, physics.Dynamic, right(), movement.Strict)

	err := s.mgr.Update(1, 0)

	assert.ErrorIs(t, err, movement.ErrMovement)
	assert.Equal(t, mgl32.Vec2{20, 20}, broken.Position())
	assert.Equal(t, mgl32.Vec2{60, 80}, fine.Position(), "other entities still move")
}

func TestUpdateRejectsInvalidDelta(t *testing.T) {
	s := newTestSim(t, nil, config.CollisionConfig{})
	for _, dt := range []float32{-1, math32.NaN()} {
		assert.ErrorIs(t, s.mgr.Update(dt, 0), movement.ErrInvalidDelta)
	}
	assert.Zero(t, s.mgr.Clock().Now())
}

func TestDefaultBlendFactor(t *testing.T) {
	tests := []struct {
		name  string
		blend float32
		want  float32
	}{
		{name: "unset", blend: 0, want: DefaultBlendFactor},
		{name: "configured", blend: 0.5, want: 0.5},
		{name: "full", blend: 1, want: 1},
		{name: "out of range", blend: 2, want: DefaultBlendFactor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewCollisionManager(ecs.NewWorld(), physics.NewBounds(10, 10), config.CollisionConfig{BlendFactor: tt.blend})
			assert.Equal(t, tt.want, m.blend)
		})
	}
}
