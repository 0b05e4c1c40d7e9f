package ecs

import (
	"github.com/younwookim/harborsweep/internal/domain/collision"
	"github.com/younwookim/harborsweep/internal/domain/physics"
)

func contactKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "\x00" + b
}

// Overlapping returns every pair of active entities whose boxes overlap,
// checking all pairs.
func (w *World) Overlapping() []collision.Pair {
	active := w.Active()
	var pairs []collision.Pair
	for i, a := range active {
		for _, b := range active[i+1:] {
			if collision.Overlaps(a, b) {
				pairs = append(pairs, collision.Pair{A: a, B: b})
			}
		}
	}
	return pairs
}

// DetectContacts diffs the current overlaps against the previous call and
// reports new ones as begin events and vanished ones as end events, so the
// collision pipeline can run without a physics backend.
func (w *World) DetectContacts(l physics.ContactListener) (begun, ended int) {
	seen := make(map[string]bool)
	for _, p := range w.Overlapping() {
		key := contactKey(p.A.ID(), p.B.ID())
		seen[key] = true
		if _, ok := w.contacts.Get(key); ok {
			continue
		}
		w.contacts.Set(key, p)
		l.BeginContact(p.A, p.B)
		begun++
	}

	var gone []string
	for el := w.contacts.Front(); el != nil; el = el.Next() {
		if !seen[el.Key] {
			gone = append(gone, el.Key)
		}
	}
	for _, key := range gone {
		p, _ := w.contacts.Get(key)
		w.contacts.Delete(key)
		l.EndContact(p.A, p.B)
		ended++
	}
	return begun, ended
}
