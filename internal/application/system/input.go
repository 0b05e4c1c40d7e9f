package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/pkg/errors"
	"github.com/younwookim/harborsweep/internal/domain/movement"
	"github.com/younwookim/harborsweep/internal/infrastructure/config"
)

var defaultBindings = map[movement.Direction][]ebiten.Key{
	movement.Up:    {ebiten.KeyW, ebiten.KeyArrowUp},
	movement.Down:  {ebiten.KeyS, ebiten.KeyArrowDown},
	movement.Left:  {ebiten.KeyA, ebiten.KeyArrowLeft},
	movement.Right: {ebiten.KeyD, ebiten.KeyArrowRight},
}

// InputSystem maps keyboard state to the player's pressed directions
type InputSystem struct {
	bindings map[movement.Direction][]ebiten.Key
	pause    []ebiten.Key
}

// NewInputSystem creates an input system from the key bindings. Directions
// without bindings use WASD and the arrow keys.
func NewInputSystem(cfg config.ControlsConfig) (*InputSystem, error) {
	s := &InputSystem{bindings: make(map[movement.Direction][]ebiten.Key)}

	named := map[movement.Direction][]string{
		movement.Up:    cfg.Up,
		movement.Down:  cfg.Down,
		movement.Left:  cfg.Left,
		movement.Right: cfg.Right,
	}
	for dir, names := range named {
		keys, err := parseKeys(names)
		if err != nil {
			return nil, err
		}
		if len(keys) == 0 {
			keys = defaultBindings[dir]
		}
		s.bindings[dir] = keys
	}

	pause, err := parseKeys(cfg.Pause)
	if err != nil {
		return nil, err
	}
	if len(pause) == 0 {
		pause = []ebiten.Key{ebiten.KeyEscape}
	}
	s.pause = pause
	return s, nil
}

func parseKeys(names []string) ([]ebiten.Key, error) {
	keys := make([]ebiten.Key, 0, len(names))
	for _, name := range names {
		var k ebiten.Key
		if err := k.UnmarshalText([]byte(name)); err != nil {
			return nil, errors.Wrapf(err, "key binding %q", name)
		}
		keys = append(keys, k)
	}
	return keys, nil
}

// Keys returns the keys bound to dir.
func (s *InputSystem) Keys(dir movement.Direction) []ebiten.Key {
	return s.bindings[dir]
}

// Pressed reads the current keyboard state.
func (s *InputSystem) Pressed() movement.Directions {
	return s.PressedWith(ebiten.IsKeyPressed)
}

// PressedWith maps the keys isDown reports as held to directions.
func (s *InputSystem) PressedWith(isDown func(ebiten.Key) bool) movement.Directions {
	var pressed movement.Directions
	for dir, keys := range s.bindings {
		for _, k := range keys {
			if isDown(k) {
				pressed = pressed.Press(dir)
				break
			}
		}
	}
	return pressed
}

// PausePressed reports whether a pause key went down this tick.
func (s *InputSystem) PausePressed() bool {
	return s.PausePressedWith(inpututil.IsKeyJustPressed)
}

// PausePressedWith is PausePressed with an injectable key check.
func (s *InputSystem) PausePressedWith(justPressed func(ebiten.Key) bool) bool {
	for _, k := range s.pause {
		if justPressed(k) {
			return true
		}
	}
	return false
}
