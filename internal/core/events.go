package core

// EventKind identifies a discrete simulation side effect.
type EventKind int

const (
	EventJump         EventKind = iota + 1 // body launched off a platform
	EventLanded                            // body touched down
	EventBreakStarted                      // breakable platform fuse lit
	EventNearDeath                         // body entered the bottom band while falling
	EventLevelUp                           // difficulty level changed
	EventGameOver                          // body fell below the screen
)

// String returns the audio/log name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventJump:
		return "jump"
	case EventLanded:
		return "landed"
	case EventBreakStarted:
		return "break"
	case EventNearDeath:
		return "near-death"
	case EventLevelUp:
		return "level-up"
	case EventGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// Event is emitted by a game during Step. Sinks may ignore any of them.
type Event struct {
	Kind  EventKind
	Score int // score at the time of the event
	Best  int // best score, set for EventGameOver
	Level int // new level for EventLevelUp, final level for EventGameOver
	Ticks int // ticks played in the run, set for EventGameOver
}
