package system

// Event is something a collision rule reports to the game layer
type Event interface {
	isEvent()
}

// CollectedEvent is emitted when a collector picks up an item
type CollectedEvent struct {
	Collector string
	Item      string
	Value     int
}

func (CollectedEvent) isEvent() {}

// BittenEvent is emitted when a shark bites a boat
type BittenEvent struct {
	Shark string
	Boat  string
	Bites int
}

func (BittenEvent) isEvent() {}

// PushedEvent is emitted when an obstacle repels a mover
type PushedEvent struct {
	Obstacle string
	Mover    string
	Impulse  float32
}

func (PushedEvent) isEvent() {}
