// Package ecs is the entity manager: the authoritative entity list, the
// components attached to entities, and a backend-free contact check.
package ecs

import (
	"fmt"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/younwookim/harborsweep/internal/domain/collision"
	"github.com/younwookim/harborsweep/internal/domain/movement"
)

var (
	// ErrDuplicateID is returned when adding an entity whose ID is taken.
	ErrDuplicateID = errors.New("ecs: duplicate entity id")
	// ErrEmptyID is returned when adding an entity without an ID.
	ErrEmptyID = errors.New("ecs: empty entity id")
	// ErrUnknownEntity is returned for an ID that is not in the world.
	ErrUnknownEntity = errors.New("ecs: unknown entity")
)

// idSpace namespaces generated entity IDs.
var idSpace = uuid.MustParse("6f1c1a52-8e0b-4d4e-9a51-0c2f7c6b9e10")

// World holds all entities, their components and the next ID sequence
type World struct {
	seq      uint64
	entities *orderedmap.OrderedMap[string, collision.Collidable]

	// Components
	Movement map[string]*movement.Manager

	// Tags
	IsPlayer map[string]struct{}

	// Singleton references
	PlayerID string

	contacts *orderedmap.OrderedMap[string, collision.Pair]
}

// NewWorld creates a new empty world
func NewWorld() *World {
	return &World{
		entities: orderedmap.NewOrderedMap[string, collision.Collidable](),
		Movement: make(map[string]*movement.Manager),
		IsPlayer: make(map[string]struct{}),
		contacts: orderedmap.NewOrderedMap[string, collision.Pair](),
	}
}

// NewID returns a fresh entity ID. IDs are name-based UUIDs derived from
// prefix and a per-world sequence, so the same spawn order yields the same
// IDs on every run.
func (w *World) NewID(prefix string) string {
	w.seq++
	name := fmt.Sprintf("%s/%d", prefix, w.seq)
	return prefix + "-" + uuid.NewSHA1(idSpace, []byte(name)).String()[:8]
}

// Add registers an entity. IDs must be unique and non-empty.
func (w *World) Add(c collision.Collidable) error {
	id := c.ID()
	if id == "" {
		return errors.WithStack(ErrEmptyID)
	}
	if _, ok := w.entities.Get(id); ok {
		return errors.Wrapf(ErrDuplicateID, "%q", id)
	}
	w.entities.Set(id, c)
	return nil
}

// DestroyEntity removes an entity and all its components
func (w *World) DestroyEntity(id string) {
	w.entities.Delete(id)
	delete(w.Movement, id)
	delete(w.IsPlayer, id)
	if w.PlayerID == id {
		w.PlayerID = ""
	}

	var ended []string
	for el := w.contacts.Front(); el != nil; el = el.Next() {
		if el.Value.A.ID() == id || el.Value.B.ID() == id {
			ended = append(ended, el.Key)
		}
	}
	for _, k := range ended {
		w.contacts.Delete(k)
	}
}

// Exists reports whether id is in the world
func (w *World) Exists(id string) bool {
	_, ok := w.entities.Get(id)
	return ok
}

// Get returns the entity with the given ID
func (w *World) Get(id string) (collision.Collidable, bool) {
	return w.entities.Get(id)
}

// Len returns the number of entities
func (w *World) Len() int {
	return w.entities.Len()
}

// Each calls fn for every entity in insertion order until fn returns false
func (w *World) Each(fn func(collision.Collidable) bool) {
	for el := w.entities.Front(); el != nil; el = el.Next() {
		if !fn(el.Value) {
			return
		}
	}
}

// Entities returns every entity in insertion order
func (w *World) Entities() []collision.Collidable {
	out := make([]collision.Collidable, 0, w.entities.Len())
	w.Each(func(c collision.Collidable) bool {
		out = append(out, c)
		return true
	})
	return out
}

// Active returns the active entities in insertion order
func (w *World) Active() []collision.Collidable {
	return lo.Filter(w.Entities(), func(c collision.Collidable, _ int) bool {
		return c.IsActive()
	})
}

// AttachMovement gives an entity its movement manager
func (w *World) AttachMovement(id string, m *movement.Manager) error {
	if !w.Exists(id) {
		return errors.Wrapf(ErrUnknownEntity, "%q", id)
	}
	w.Movement[id] = m
	return nil
}

// SetPlayer marks id as the input-controlled entity
func (w *World) SetPlayer(id string) error {
	if !w.Exists(id) {
		return errors.Wrapf(ErrUnknownEntity, "%q", id)
	}
	for other := range w.IsPlayer {
		delete(w.IsPlayer, other)
	}
	w.IsPlayer[id] = struct{}{}
	w.PlayerID = id
	return nil
}

// IsPlayerControlled reports whether id takes input
func (w *World) IsPlayerControlled(id string) bool {
	_, ok := w.IsPlayer[id]
	return ok
}

// Player returns the input-controlled entity
func (w *World) Player() (collision.Collidable, bool) {
	if w.PlayerID == "" {
		return nil, false
	}
	return w.Get(w.PlayerID)
}
