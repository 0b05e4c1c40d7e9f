package entity

import (
	"github.com/pkg/errors"
)

// ErrUnknownKind is returned for an entity kind that has no constructor.
var ErrUnknownKind = errors.New("unknown entity kind")

// Kind names a concrete entity type.
type Kind string

const (
	KindBoat  Kind = "boat"
	KindTrash Kind = "trash"
	KindRock  Kind = "rock"
	KindShark Kind = "shark"
)

// Kinds lists every known kind in spawn order.
var Kinds = []Kind{KindRock, KindTrash, KindShark, KindBoat}

// ParseKind validates s as a Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", errors.Wrapf(ErrUnknownKind, "%q", s)
}

// Transform is the read-only view the renderer draws from. X and Y are the
// box centre.
type Transform struct {
	X, Y          float32
	Width, Height float32
	Active        bool
	Sprite        int
}

// Sprite indices by facing.
const (
	SpriteRight = iota
	SpriteDown
	SpriteLeft
	SpriteUp
)
