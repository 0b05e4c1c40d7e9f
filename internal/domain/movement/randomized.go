package movement

import (
	"math/rand"

	"github.com/pkg/errors"
	"github.com/zeebo/xxh3"
)

// maxSwitchesPerMove bounds reselection inside a single long frame.
const maxSwitchesPerMove = 16

// SeedFor derives a stable RNG seed from a key such as an entity ID, so a
// replayed scenario makes the same random choices.
func SeedFor(key string) int64 {
	return int64(xxh3.HashString(key))
}

// Randomized runs a randomly chosen strategy from its pool for a random
// duration in [MinDuration, MaxDuration], then chooses again. Each pick
// continues from the movable's current position, so switching never snaps.
type Randomized struct {
	pool        []Strategy
	minDuration float32
	maxDuration float32
	rng         *rand.Rand

	current Strategy
	timer   float32
}

// NewRandomized validates the pool and durations. Swapped durations are
// reordered.
func NewRandomized(pool []Strategy, minDuration, maxDuration float32, rng *rand.Rand) (*Randomized, error) {
	if len(pool) == 0 {
		return nil, errors.WithStack(ErrEmptyPool)
	}
	for i, s := range pool {
		if s == nil {
			return nil, errors.Wrapf(ErrNilStrategy, "pool[%d]", i)
		}
	}
	if minDuration < 0 || maxDuration < 0 {
		return nil, errors.Errorf("movement: negative duration [%v, %v]", minDuration, maxDuration)
	}
	if minDuration > maxDuration {
		minDuration, maxDuration = maxDuration, minDuration
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Randomized{
		pool:        pool,
		minDuration: minDuration,
		maxDuration: maxDuration,
		rng:         rng,
	}, nil
}

// Current returns the strategy running now, nil before the first move.
func (r *Randomized) Current() Strategy { return r.current }

// Remaining returns the time left before the next pick.
func (r *Randomized) Remaining() float32 { return r.timer }

func (r *Randomized) pick() {
	r.current = r.pool[r.rng.Intn(len(r.pool))]
	r.timer = r.minDuration + r.rng.Float32()*(r.maxDuration-r.minDuration)
}

func (r *Randomized) Move(m Movable, dt float32) error {
	if ok, err := checkDelta(dt); !ok {
		return err
	}

	left := dt
	for i := 0; left > 0 && i < maxSwitchesPerMove; i++ {
		if r.current == nil || r.timer <= 0 {
			r.pick()
		}
		slice := left
		if r.timer > 0 && r.timer < slice {
			slice = r.timer
		}
		if err := r.current.Move(m, slice); err != nil {
			return err
		}
		r.timer -= slice
		left -= slice
	}
	return nil
}
