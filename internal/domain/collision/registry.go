package collision

import (
	"reflect"

	"github.com/younwookim/harborsweep/internal/domain/vmath"
)

// HandlerFunc reacts to self touching other. Only self should be mutated
// beyond applying impulses to other's body; other gets its own call.
type HandlerFunc func(self, other Collidable)

type typePair struct {
	self, other reflect.Type
}

type rule struct {
	self, other reflect.Type
	fn          HandlerFunc
}

// Registry is the collision dispatch table. Handlers are registered per
// (self type, other type) where either side may be a concrete type or a
// capability interface. Dispatch picks the most specific match: a concrete
// type beats an interface, and a larger interface beats a smaller one, self
// side first. Lookups are cached per concrete type pair, so dispatch after
// the first contact is a single map read.
type Registry struct {
	rules    []rule
	cache    map[typePair]HandlerFunc
	fallback HandlerFunc
}

// NewRegistry creates a registry that uses fallback when no rule matches.
// A nil fallback does nothing.
func NewRegistry(fallback HandlerFunc) *Registry {
	if fallback == nil {
		fallback = func(Collidable, Collidable) {}
	}
	return &Registry{
		cache:    make(map[typePair]HandlerFunc),
		fallback: fallback,
	}
}

// Handle registers fn for collisions of an S against an O. S and O may be
// concrete types or interfaces.
func Handle[S Collidable, O any](r *Registry, fn func(self S, other O)) {
	r.rules = append(r.rules, rule{
		self:  reflect.TypeOf((*S)(nil)).Elem(),
		other: reflect.TypeOf((*O)(nil)).Elem(),
		fn: func(self, other Collidable) {
			fn(self.(S), any(other).(O))
		},
	})
	clear(r.cache)
}

// Dispatch runs the handler for self colliding with other.
func (r *Registry) Dispatch(self, other Collidable) {
	r.Lookup(self, other)(self, other)
}

// Lookup returns the handler Dispatch would run.
func (r *Registry) Lookup(self, other Collidable) HandlerFunc {
	key := typePair{self: reflect.TypeOf(self), other: reflect.TypeOf(other)}
	if fn, ok := r.cache[key]; ok {
		return fn
	}

	fn := r.fallback
	bestSelf, bestOther := -1, -1
	for _, rl := range r.rules {
		s := specificity(rl.self, key.self)
		o := specificity(rl.other, key.other)
		if s < 0 || o < 0 {
			continue
		}
		if s > bestSelf || (s == bestSelf && o > bestOther) {
			fn, bestSelf, bestOther = rl.fn, s, o
		}
	}
	r.cache[key] = fn
	return fn
}

// exactMatch outranks any interface match.
const exactMatch = 1 << 16

// specificity scores how closely want describes actual, or -1 if it does not.
func specificity(want, actual reflect.Type) int {
	switch {
	case want == actual:
		return exactMatch
	case want.Kind() == reflect.Interface && actual.Implements(want):
		return want.NumMethod()
	default:
		return -1
	}
}

// Repel returns a handler that pushes self's body directly away from other
// with the given impulse and reopens self's collision window. It is the
// default response for pairs without a dedicated rule.
func Repel(impulse float32) HandlerFunc {
	return func(self, other Collidable) {
		self.RefreshCollision()
		body := self.Body()
		if body == nil || body.Destroyed() {
			return
		}
		dir := vmath.SafeNormalize(self.Position().Sub(other.Position()))
		if vmath.NearZero(dir) {
			dir = vmath.Vec(0, -1)
		}
		body.ApplyImpulse(dir.Mul(impulse), self.Position())
	}
}
