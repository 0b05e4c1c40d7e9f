package state

// GameState represents the current state of a play session
type GameState int

const (
	StatePlaying GameState = iota
	StatePaused
	StateCleared
	StateReplayEnded
)

// String returns the string representation of the game state
func (s GameState) String() string {
	switch s {
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateCleared:
		return "Cleared"
	case StateReplayEnded:
		return "ReplayEnded"
	default:
		return "Unknown"
	}
}

// Running reports whether the simulation advances in this state.
func (s GameState) Running() bool {
	return s == StatePlaying
}
