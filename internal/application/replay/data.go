// Package replay stores and plays back per-frame player input.
package replay

import "github.com/younwookim/harborsweep/internal/domain/movement"

// Version is the replay format version written by recorders.
const Version = "2.0"

// FrameInput records input state for a single frame
type FrameInput struct {
	F int                 `json:"f"`           // Frame number
	P movement.Directions `json:"p,omitempty"` // Pressed directions bitmask
}

// ReplayData contains all data needed to replay a game session. The
// simulation is deterministic for a given scenario and backend, so input is
// all that has to be stored.
type ReplayData struct {
	Version   string       `json:"version"`
	Scenario  string       `json:"scenario"`
	Backend   string       `json:"backend"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}
