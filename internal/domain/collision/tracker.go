package collision

import (
	"github.com/elliotchance/orderedmap/v2"
)

// Pair is an unordered pair of touching collidables.
type Pair struct {
	A, B Collidable
}

// pairKey builds an order-independent key from the two IDs.
func pairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "\x00" + b
}

// PairTracker is the set of currently touching pairs, from contact begin to
// contact end. Pairs are kept in insertion order so that anything iterating
// them (sustained dispatch) is deterministic.
type PairTracker struct {
	pairs    *orderedmap.OrderedMap[string, Pair]
	contacts map[string]int
}

// NewPairTracker creates an empty tracker.
func NewPairTracker() *PairTracker {
	return &PairTracker{
		pairs:    orderedmap.NewOrderedMap[string, Pair](),
		contacts: make(map[string]int),
	}
}

// AddPair records a contact between two payloads. It returns true only if
// both are collidables and the pair was not already tracked; boundary and
// unknown payloads are ignored.
func (t *PairTracker) AddPair(a, b any) bool {
	ca, okA := a.(Collidable)
	cb, okB := b.(Collidable)
	if !okA || !okB || ca.ID() == cb.ID() {
		return false
	}
	key := pairKey(ca.ID(), cb.ID())
	if _, exists := t.pairs.Get(key); exists {
		return false
	}
	t.pairs.Set(key, Pair{A: ca, B: cb})
	t.contacts[ca.ID()]++
	t.contacts[cb.ID()]++
	return true
}

// RemovePair forgets a contact. It returns true if the pair was tracked.
func (t *PairTracker) RemovePair(a, b any) bool {
	ca, okA := a.(Collidable)
	cb, okB := b.(Collidable)
	if !okA || !okB {
		return false
	}
	return t.remove(pairKey(ca.ID(), cb.ID()))
}

func (t *PairTracker) remove(key string) bool {
	p, ok := t.pairs.Get(key)
	if !ok {
		return false
	}
	t.pairs.Delete(key)
	t.release(p.A.ID())
	t.release(p.B.ID())
	return true
}

func (t *PairTracker) release(id string) {
	if t.contacts[id] <= 1 {
		delete(t.contacts, id)
		return
	}
	t.contacts[id]--
}

// Forget drops every pair involving c, used when c leaves the world.
func (t *PairTracker) Forget(c Collidable) int {
	var keys []string
	for el := t.pairs.Front(); el != nil; el = el.Next() {
		if el.Value.A.ID() == c.ID() || el.Value.B.ID() == c.ID() {
			keys = append(keys, el.Key)
		}
	}
	for _, k := range keys {
		t.remove(k)
	}
	return len(keys)
}

// Contains reports whether a and b are tracked as touching.
func (t *PairTracker) Contains(a, b Collidable) bool {
	_, ok := t.pairs.Get(pairKey(a.ID(), b.ID()))
	return ok
}

// IsInAnyPair reports whether c takes part in any tracked contact.
func (t *PairTracker) IsInAnyPair(c Collidable) bool {
	return t.contacts[c.ID()] > 0
}

// ContactCount returns how many tracked pairs involve c.
func (t *PairTracker) ContactCount(c Collidable) int {
	return t.contacts[c.ID()]
}

// IsEmpty reports whether no contact is tracked.
func (t *PairTracker) IsEmpty() bool {
	return t.pairs.Len() == 0
}

// Len returns the number of tracked pairs.
func (t *PairTracker) Len() int {
	return t.pairs.Len()
}

// Each calls fn for every pair in insertion order until fn returns false.
func (t *PairTracker) Each(fn func(Pair) bool) {
	for el := t.pairs.Front(); el != nil; el = el.Next() {
		if !fn(el.Value) {
			return
		}
	}
}
