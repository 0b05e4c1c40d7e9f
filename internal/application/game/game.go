// Package game runs a Scene inside ebiten's game loop.
package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/younwookim/harborsweep/internal/application/scene"
)

// Game implements ebiten.Game and manages Scene transitions.
type Game struct {
	current scene.Scene
	screenW int
	screenH int
	dt      float64
	ticks   uint64
	log     logrus.FieldLogger
}

// New creates a Game ticking tps times per second, starting on initial.
// The initial scene's OnEnter is called immediately.
func New(initial scene.Scene, screenW, screenH, tps int, log logrus.FieldLogger) *Game {
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	g := &Game{
		current: initial,
		screenW: screenW,
		screenH: screenH,
		dt:      1 / float64(tps),
		log:     log,
	}
	g.current.OnEnter()
	return g
}

// Update updates the current scene and handles scene transitions.
// A scene returning scene.ErrQuit ends the loop without an error.
func (g *Game) Update() error {
	g.ticks++
	next, err := g.current.Update(g.dt)
	if errors.Is(err, scene.ErrQuit) {
		g.current.OnExit()
		return ebiten.Termination
	}
	if err != nil {
		return err
	}

	if next != nil {
		g.log.WithFields(logrus.Fields{
			"from": scene.Name(g.current),
			"to":   scene.Name(next),
			"tick": g.ticks,
		}).Debug("scene transition")
		g.current.OnExit()
		g.current = next
		g.current.OnEnter()
	}
	return nil
}

// Draw renders the current scene.
func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

// Layout returns the game's logical screen dimensions.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.screenW, g.screenH
}

// Ticks returns how many updates have run.
func (g *Game) Ticks() uint64 {
	return g.ticks
}

// Current returns the active scene.
func (g *Game) Current() scene.Scene {
	return g.current
}
