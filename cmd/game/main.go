package main

import (
	"embed"
	"flag"
	"io/fs"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"
	"github.com/younwookim/harborsweep/internal/application/game"
	"github.com/younwookim/harborsweep/internal/application/replay"
	"github.com/younwookim/harborsweep/internal/application/scene/playing"
	"github.com/younwookim/harborsweep/internal/infrastructure/config"
)

//go:embed configs
var configFS embed.FS

func main() {
	recordFlag := flag.String("record", "", "Record input to file (e.g., -record replay.json)")
	replayFlag := flag.String("replay", "", "Replay a recording headless and print the result")
	watchFlag := flag.Bool("watch", false, "With -replay, show the replay in a window instead")
	scenarioFlag := flag.String("scenario", "harbor", "Scenario to load from configs/scenarios")
	debugFlag := flag.Bool("debug", false, "Outline entities in collision and log at debug level")
	statsFlag := flag.Bool("statsview", false, "Serve runtime stats on localhost:18066")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{ForceColors: true, FullTimestamp: true})
	if *debugFlag {
		log.SetLevel(logrus.DebugLevel)
	}

	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: dsn}); err != nil {
			log.WithError(err).Warn("sentry disabled")
		}
		defer sentry.Flush(2 * time.Second)
	}

	if *statsFlag {
		// set configurations before calling `statsview.New()` method
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr("localhost:18066"))
		mgr := statsview.New()
		go func() { _ = mgr.Start() }()
		defer mgr.Stop()
	}

	// Load configurations using embedded filesystem
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		log.WithError(err).Fatal("failed to open embedded configs")
	}
	loader := config.NewFSLoader(fsys, "configs")

	opts := playing.Options{
		RecordPath: *recordFlag,
		Logger:     log,
		Hub:        sentry.CurrentHub(),
		Debug:      *debugFlag,
	}

	scenario := *scenarioFlag
	if *replayFlag != "" {
		data, err := replay.LoadReplay(*replayFlag)
		if err != nil {
			log.WithError(err).Fatal("failed to load replay")
		}
		if !*watchFlag {
			result, err := RunReplay(loader, data, log)
			if err != nil {
				log.WithError(err).Fatal("replay failed")
			}
			result.Print(os.Stdout)
			return
		}
		scenario = data.Scenario
		opts.Replay = replay.NewReplayer(*data)
		opts.RecordPath = ""
	}

	cfg, err := loader.LoadAll(scenario)
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}
	if opts.Replay != nil && opts.Replay.Backend() != "" {
		cfg.Simulation.Physics.Backend = opts.Replay.Backend()
	}

	scene, err := playing.New(cfg, opts)
	if err != nil {
		log.WithError(err).Fatal("failed to start scenario")
	}

	display := cfg.Simulation.Display
	ebiten.SetWindowSize(display.ScreenWidth*display.Scale, display.ScreenHeight*display.Scale)
	ebiten.SetWindowTitle("Harbor Sweep - " + cfg.Scenario.Name)

	g := game.New(scene, display.ScreenWidth, display.ScreenHeight, display.Framerate, log)
	if err := ebiten.RunGame(g); err != nil {
		log.WithError(err).Fatal("game exited")
	}
}
