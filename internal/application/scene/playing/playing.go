// Package playing provides the main gameplay scene.
package playing

import (
	"fmt"
	"image/color"

	"github.com/chewxy/math32"
	"github.com/getsentry/sentry-go"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/younwookim/harborsweep/internal/application/replay"
	"github.com/younwookim/harborsweep/internal/application/scene"
	"github.com/younwookim/harborsweep/internal/application/state"
	"github.com/younwookim/harborsweep/internal/application/system"
	"github.com/younwookim/harborsweep/internal/domain/collision"
	"github.com/younwookim/harborsweep/internal/domain/entity"
	"github.com/younwookim/harborsweep/internal/domain/movement"
	"github.com/younwookim/harborsweep/internal/infrastructure/config"
)

// Colors for rendering
var (
	colorBG        = color.RGBA{18, 40, 66, 255}
	colorBoat      = color.RGBA{230, 230, 240, 255}
	colorTrash     = color.RGBA{150, 200, 90, 255}
	colorPermanent = color.RGBA{110, 110, 80, 255}
	colorRock      = color.RGBA{90, 90, 100, 255}
	colorShark     = color.RGBA{200, 80, 80, 255}
	colorHit       = color.RGBA{255, 220, 0, 255}
	colorOverlay   = color.RGBA{0, 0, 0, 140}
)

// Options configures a Playing scene.
type Options struct {
	// RecordPath enables input recording when set.
	RecordPath string
	// Replay drives input from a recording instead of the keyboard.
	Replay *replay.Replayer
	Logger logrus.FieldLogger
	Hub    *sentry.Hub
	// Debug outlines entities whose collision window is open.
	Debug bool
}

// Playing is the main gameplay scene
type Playing struct {
	config  *config.GameConfig
	opts    Options
	session *Session
	input   *system.InputSystem
	state   state.GameState
	log     logrus.FieldLogger

	screenW int
	screenH int

	recorder *Recorder

	// key sources, swapped out in tests
	isKeyDown     func(ebiten.Key) bool
	isKeyJustDown func(ebiten.Key) bool
}

// New creates a new Playing scene for cfg.Scenario.
func New(cfg *config.GameConfig, opts Options) (*Playing, error) {
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	input, err := system.NewInputSystem(cfg.Simulation.Controls)
	if err != nil {
		return nil, err
	}

	p := &Playing{
		config:        cfg,
		opts:          opts,
		input:         input,
		log:           opts.Logger.WithField("scene", "playing"),
		screenW:       cfg.Simulation.Display.ScreenWidth,
		screenH:       cfg.Simulation.Display.ScreenHeight,
		isKeyDown:     ebiten.IsKeyPressed,
		isKeyJustDown: inpututil.IsKeyJustPressed,
	}
	if err := p.start(); err != nil {
		return nil, err
	}
	return p, nil
}

// start builds a fresh session and, when enabled, a fresh recorder.
func (p *Playing) start() error {
	session, err := NewSession(p.config, p.opts.Logger, p.opts.Hub)
	if err != nil {
		return err
	}
	p.session = session
	p.state = state.StatePlaying

	if p.opts.Replay != nil {
		p.opts.Replay.Reset()
	}
	if p.opts.RecordPath != "" {
		p.recorder = NewRecorder(p.config.Scenario.ID, p.config.Simulation.Physics.Backend)
		p.log.WithField("path", p.opts.RecordPath).Info("recording enabled")
	}
	return nil
}

// Session returns the running simulation.
func (p *Playing) Session() *Session { return p.session }

// State returns the scene state.
func (p *Playing) State() state.GameState { return p.state }

// Name implements scene.Named.
func (p *Playing) Name() string { return "playing" }

// Update proceeds the game state (implements scene.Scene)
func (p *Playing) Update(_ float64) (scene.Scene, error) {
	if p.isKeyJustDown(ebiten.KeyQ) {
		return nil, scene.ErrQuit
	}

	switch p.state {
	case state.StatePlaying:
		return nil, p.updatePlaying()
	case state.StatePaused:
		if p.input.PausePressedWith(p.isKeyJustDown) {
			p.state = state.StatePlaying
		}
	case state.StateCleared, state.StateReplayEnded:
		if p.isKeyJustDown(ebiten.KeyR) {
			return nil, p.restart()
		}
	}

	return nil, nil // nil = stay on this scene
}

func (p *Playing) updatePlaying() error {
	if p.input.PausePressedWith(p.isKeyJustDown) {
		p.state = state.StatePaused
		return nil
	}

	var pressed movement.Directions
	if p.opts.Replay != nil {
		var ok bool
		if pressed, ok = p.opts.Replay.GetInput(); !ok {
			p.state = state.StateReplayEnded
			p.log.WithField("frames", p.session.Frame()).Info("replay finished")
			return nil
		}
	} else {
		pressed = p.input.PressedWith(p.isKeyDown)
	}

	if p.recorder != nil {
		p.recorder.RecordFrame(pressed)
	}

	// a panicking entity is already logged and reported; keep the game running
	if err := p.session.Step(pressed); err != nil && !errors.Is(err, system.ErrEntityPanic) {
		return err
	}

	if p.session.Cleared() {
		p.state = state.StateCleared
		p.log.WithFields(logrus.Fields{
			"frames": p.session.Frame(),
			"score":  p.session.Score(),
			"bites":  p.session.Bites(),
		}).Info("scenario cleared")
		p.saveRecording()
	}
	return nil
}

func (p *Playing) restart() error {
	p.saveRecording()
	p.log.Info("restarting scenario")
	return p.start()
}

// saveRecording saves the current recording to file
func (p *Playing) saveRecording() {
	if p.recorder == nil || !p.recorder.IsRecording() {
		return
	}
	p.recorder.Stop()

	filename := p.opts.RecordPath
	if filename == "" {
		filename = GenerateFilename()
	}

	log := p.log.WithField("path", filename)
	if err := p.recorder.Save(filename); err != nil {
		log.WithError(err).Warn("failed to save recording")
		return
	}
	log.WithField("frames", p.recorder.FrameCount()).Info("recording saved")
}

// Draw renders the game screen
func (p *Playing) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	scale := p.worldScale()
	offX, offY := p.shakeOffset()

	p.session.World().Each(func(c collision.Collidable) bool {
		if !c.IsActive() {
			return true
		}
		r, ok := c.(interface{ Transform() entity.Transform })
		if !ok {
			return true
		}
		tr := r.Transform()
		x := (tr.X-tr.Width/2)*scale + offX
		y := (tr.Y-tr.Height/2)*scale + offY
		w, h := tr.Width*scale, tr.Height*scale

		vector.DrawFilledRect(screen, x, y, w, h, entityColor(c), false)
		if p.opts.Debug && c.IsInCollision() {
			vector.StrokeRect(screen, x, y, w, h, 1, colorHit, false)
		}
		return true
	})

	p.drawHUD(screen)

	switch p.state {
	case state.StatePaused:
		p.drawOverlay(screen, "PAUSED\n\nPress ESC to resume")
	case state.StateCleared:
		p.drawOverlay(screen, fmt.Sprintf("HARBOR CLEAR\n\nScore: %d\n\nR: restart  Q: quit", p.session.Score()))
	case state.StateReplayEnded:
		p.drawOverlay(screen, "REPLAY ENDED\n\nR: replay again  Q: quit")
	}
}

// worldScale fits the world rectangle into the screen.
func (p *Playing) worldScale() float32 {
	w := p.config.Simulation.World
	if w.Width <= 0 || w.Height <= 0 {
		return 1
	}
	return math32.Min(float32(p.screenW)/w.Width, float32(p.screenH)/w.Height)
}

// shakeOffset wobbles the view after a bite. It depends only on the frame
// so replays render identically.
func (p *Playing) shakeOffset() (float32, float32) {
	s := p.session.Shake()
	if s == 0 {
		return 0, 0
	}
	f := float32(p.session.Frame())
	return s * math32.Sin(f*1.7), s * math32.Cos(f*2.3)
}

func entityColor(c collision.Collidable) color.Color {
	switch e := c.(type) {
	case *entity.Boat:
		return colorBoat
	case *entity.Trash:
		if e.IsPermanent() {
			return colorPermanent
		}
		return colorTrash
	case *entity.Rock:
		return colorRock
	case *entity.Shark:
		return colorShark
	}
	return colorHit
}

func (p *Playing) drawHUD(screen *ebiten.Image) {
	text := fmt.Sprintf("Score: %d  Trash left: %d  Bites: %d",
		p.session.Score(), p.session.Remaining(), p.session.Bites())
	ebitenutil.DebugPrintAt(screen, text, 4, p.screenH-16)

	mode := "WASD/Arrows: Move | ESC: Pause | Q: Quit"
	if p.opts.Replay != nil {
		mode = fmt.Sprintf("Replay %d/%d", p.opts.Replay.CurrentFrame(), p.opts.Replay.TotalFrames())
	}
	ebitenutil.DebugPrint(screen, mode)
}

func (p *Playing) drawOverlay(screen *ebiten.Image, text string) {
	vector.DrawFilledRect(screen, 0, 0, float32(p.screenW), float32(p.screenH), colorOverlay, false)
	ebitenutil.DebugPrintAt(screen, text, p.screenW/2-60, p.screenH/2-30)
}

// OnEnter is called when entering this scene
func (p *Playing) OnEnter() {
	p.log.WithField("scenario", p.config.Scenario.ID).Debug("entered")
}

// OnExit is called when leaving this scene
func (p *Playing) OnExit() {
	p.saveRecording()
}
