// Package scene defines the Scene interface for game screens.
//
// The game loop delegates Update and Draw calls to the current scene.
// Scene transitions are handled by returning a new Scene from Update.
package scene

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/errors"
)

// ErrQuit is returned from Update to end the game normally.
var ErrQuit = errors.New("scene: quit")

// Scene represents a game screen.
type Scene interface {
	// Update updates the scene state.
	// dt is the delta time in seconds (typically 1/60).
	// Returns the next scene if a transition is needed, nil to stay on current scene.
	// Returns an error to terminate the game.
	Update(dt float64) (next Scene, err error)

	// Draw renders the scene to the screen.
	Draw(screen *ebiten.Image)

	// OnEnter is called when entering this scene.
	OnEnter()

	// OnExit is called when leaving this scene, including on quit.
	OnExit()
}

// Named is implemented by scenes that report a name for logging.
type Named interface {
	Name() string
}

// Name returns s's name, or its type when it has none.
func Name(s Scene) string {
	if n, ok := s.(Named); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", s)
}
