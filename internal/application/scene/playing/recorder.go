package playing

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/younwookim/harborsweep/internal/application/replay"
	"github.com/younwookim/harborsweep/internal/domain/movement"
)

// Recorder collects the pressed directions of every stepped frame so a run
// can be replayed.
type Recorder struct {
	data      replay.ReplayData
	recording bool
	frame     int
}

// NewRecorder creates a recorder for a run of scenario on backend
func NewRecorder(scenario, backend string) *Recorder {
	return &Recorder{
		data: replay.ReplayData{
			Version:   replay.Version,
			Scenario:  scenario,
			Backend:   backend,
			StartTime: time.Now().Format(time.RFC3339),
			Frames:    make([]replay.FrameInput, 0, 3600),
		},
		recording: true,
	}
}

// RecordFrame appends pressed as the next frame. Stopped recorders ignore it.
func (r *Recorder) RecordFrame(pressed movement.Directions) {
	if !r.recording {
		return
	}
	r.data.Frames = append(r.data.Frames, replay.FrameInput{F: r.frame, P: pressed})
	r.frame++
}

// Save writes the recording as indented JSON. Empty recordings are an error.
func (r *Recorder) Save(filename string) error {
	if len(r.data.Frames) == 0 {
		return errors.New("no frames to save")
	}

	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "failed to create replay file")
	}
	defer func() { _ = file.Close() }()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r.data); err != nil {
		return errors.Wrap(err, "failed to encode replay")
	}
	return nil
}

// Stop freezes the recording; frames recorded so far are kept.
func (r *Recorder) Stop() {
	r.recording = false
}

func (r *Recorder) IsRecording() bool {
	return r.recording
}

func (r *Recorder) FrameCount() int {
	return len(r.data.Frames)
}

// Data returns the recording so far.
func (r *Recorder) Data() replay.ReplayData {
	return r.data
}

// GenerateFilename names a recording after the current time.
func GenerateFilename() string {
	return fmt.Sprintf("replay_%s.json", time.Now().Format("20060102_150405"))
}
