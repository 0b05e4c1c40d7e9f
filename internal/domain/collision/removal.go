package collision

import (
	"github.com/elliotchance/orderedmap/v2"
	"github.com/scylladb/go-set/strset"
	"github.com/younwookim/harborsweep/internal/domain/physics"
)

// RemovalListener is told about each entity actually removed.
type RemovalListener func(removed Collidable)

// RemovalRequest asks for a body and its entity to leave the world.
type RemovalRequest struct {
	Body     physics.Body
	Entity   Collidable
	Listener RemovalListener
}

// RemovalQueue holds removal requests until they can be processed outside
// the physics step. Each entity is accepted at most once, including after it
// has been removed.
type RemovalQueue struct {
	pending *orderedmap.OrderedMap[string, RemovalRequest]
	removed *strset.Set
}

// NewRemovalQueue creates an empty queue.
func NewRemovalQueue() *RemovalQueue {
	return &RemovalQueue{
		pending: orderedmap.NewOrderedMap[string, RemovalRequest](),
		removed: strset.New(),
	}
}

// Schedule enqueues req. It returns false, and does nothing, if the entity is
// already scheduled or was already removed.
func (q *RemovalQueue) Schedule(req RemovalRequest) bool {
	if req.Entity == nil {
		return false
	}
	id := req.Entity.ID()
	if q.removed.Has(id) {
		return false
	}
	if _, ok := q.pending.Get(id); ok {
		return false
	}
	q.pending.Set(id, req)
	return true
}

// Scheduled reports whether id is waiting for removal.
func (q *RemovalQueue) Scheduled(id string) bool {
	_, ok := q.pending.Get(id)
	return ok
}

// Removed reports whether id has already been drained.
func (q *RemovalQueue) Removed(id string) bool {
	return q.removed.Has(id)
}

// Len returns the number of pending requests.
func (q *RemovalQueue) Len() int {
	return q.pending.Len()
}

// Drain calls process for each pending request in scheduling order and
// empties the queue.
func (q *RemovalQueue) Drain(process func(RemovalRequest)) int {
	n := 0
	for el := q.pending.Front(); el != nil; el = q.pending.Front() {
		req := el.Value
		q.pending.Delete(el.Key)
		q.removed.Add(el.Key)
		process(req)
		n++
	}
	return n
}

// Forget clears the removed mark for id so a respawned entity with the same
// ID can be scheduled again.
func (q *RemovalQueue) Forget(id string) {
	q.removed.Remove(id)
}
