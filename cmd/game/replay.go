package main

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/younwookim/harborsweep/internal/application/replay"
	"github.com/younwookim/harborsweep/internal/application/scene/playing"
	"github.com/younwookim/harborsweep/internal/infrastructure/config"
)

// ReplayResult summarises a headless replay.
type ReplayResult struct {
	Scenario  string
	Backend   string
	Frames    int
	Score     int
	Collected int
	Bites     int
	Remaining int
	Cleared   bool
	// ClearedAt is the frame the last trash was collected, -1 if never.
	ClearedAt int
}

// Print writes the result in a human readable form.
func (r ReplayResult) Print(w io.Writer) {
	fmt.Fprintf(w, "scenario:  %s (%s)\n", r.Scenario, r.Backend)
	fmt.Fprintf(w, "frames:    %d\n", r.Frames)
	fmt.Fprintf(w, "score:     %d (%d collected, %d left)\n", r.Score, r.Collected, r.Remaining)
	fmt.Fprintf(w, "bites:     %d\n", r.Bites)
	if r.Cleared {
		fmt.Fprintf(w, "cleared:   frame %d\n", r.ClearedAt)
	} else {
		fmt.Fprintln(w, "cleared:   no")
	}
}

// RunReplay feeds every recorded frame to a fresh session without a window.
// Recordings carry no seed because every random choice in the simulation is
// seeded from entity IDs, so the same inputs always give the same result.
func RunReplay(loader *config.Loader, data *replay.ReplayData, log logrus.FieldLogger) (ReplayResult, error) {
	cfg, err := loader.LoadAll(data.Scenario)
	if err != nil {
		return ReplayResult{}, err
	}
	if data.Backend != "" {
		cfg.Simulation.Physics.Backend = data.Backend
	}

	session, err := playing.NewSession(cfg, log, nil)
	if err != nil {
		return ReplayResult{}, err
	}

	result := ReplayResult{
		Scenario:  data.Scenario,
		Backend:   cfg.Simulation.Physics.Backend,
		ClearedAt: -1,
	}
	replayer := replay.NewReplayer(*data)
	for {
		pressed, ok := replayer.GetInput()
		if !ok {
			break
		}
		if err := session.Step(pressed); err != nil {
			return result, errors.Wrapf(err, "frame %d", replayer.CurrentFrame()-1)
		}
		if result.ClearedAt < 0 && session.Cleared() {
			result.ClearedAt = session.Frame()
		}
	}

	result.Frames = session.Frame()
	result.Score = session.Score()
	result.Collected = session.Collected()
	result.Bites = session.Bites()
	result.Remaining = session.Remaining()
	result.Cleared = session.Cleared()
	return result, nil
}
