package movement

import "github.com/pkg/errors"

var (
	// ErrNilStrategy is returned when a manager is given no strategy in strict mode.
	ErrNilStrategy = errors.New("movement: nil strategy")
	// ErrNilMovable is returned when a manager is built without a movable.
	ErrNilMovable = errors.New("movement: nil movable")
	// ErrNegativeSpeed is returned for negative speeds in strict mode.
	ErrNegativeSpeed = errors.New("movement: negative speed")
	// ErrInvalidDelta is returned for NaN, infinite or negative frame deltas.
	ErrInvalidDelta = errors.New("movement: invalid delta time")
	// ErrNoTarget is returned by target-driven strategies without a target.
	ErrNoTarget = errors.New("movement: strategy has no target")
	// ErrMovement wraps any failure raised while a strategy moves an entity.
	ErrMovement = errors.New("movement: strategy failed")
	// ErrInvalidComposite is returned for mismatched strategies and weights.
	ErrInvalidComposite = errors.New("movement: invalid composite")
	// ErrEmptyPool is returned by a randomized strategy without candidates.
	ErrEmptyPool = errors.New("movement: empty strategy pool")
)
