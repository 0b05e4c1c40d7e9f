package replay

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/younwookim/harborsweep/internal/domain/movement"
)

// Replayer handles input playback from recorded data
type Replayer struct {
	data  ReplayData
	frame int
}

// NewReplayer creates a new replayer from replay data
func NewReplayer(data ReplayData) *Replayer {
	return &Replayer{data: data}
}

// LoadReplay loads replay data from a file
func LoadReplay(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open replay")
	}
	defer func() { _ = file.Close() }()

	var data ReplayData
	if err := json.NewDecoder(file).Decode(&data); err != nil {
		return nil, errors.Wrap(err, "failed to decode replay")
	}
	if data.Scenario == "" {
		return nil, errors.Errorf("replay %s names no scenario", filename)
	}
	return &data, nil
}

// GetInput returns the input for the current frame and advances
func (r *Replayer) GetInput() (movement.Directions, bool) {
	if r.frame >= len(r.data.Frames) {
		return 0, false
	}
	fi := r.data.Frames[r.frame]
	r.frame++
	return fi.P, true
}

// Done reports whether every frame has been played.
func (r *Replayer) Done() bool {
	return r.frame >= len(r.data.Frames)
}

// CurrentFrame returns the current frame number
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the total number of frames
func (r *Replayer) TotalFrames() int {
	return len(r.data.Frames)
}

// Scenario returns the scenario the replay was recorded on
func (r *Replayer) Scenario() string {
	return r.data.Scenario
}

// Backend returns the physics backend the replay was recorded with
func (r *Replayer) Backend() string {
	return r.data.Backend
}

// Reset resets the replayer to the beginning
func (r *Replayer) Reset() {
	r.frame = 0
}

// CreateTestReplayData creates replay data holding pressed for every frame
func CreateTestReplayData(frames int, scenario string, pressed movement.Directions) ReplayData {
	data := ReplayData{
		Version:   Version,
		Scenario:  scenario,
		StartTime: time.Now().Format(time.RFC3339),
		Frames:    make([]FrameInput, frames),
	}
	for i := range data.Frames {
		data.Frames[i] = FrameInput{F: i, P: pressed}
	}
	return data
}
