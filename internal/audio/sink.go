// Package audio turns game events into short sound cues.
// Runners hand every event of a tick to a Sink; the simulation never waits on it.
package audio

import "github.com/vovakirdan/tui-jump/internal/core"

// Sink receives game events for playback.
type Sink interface {
	// Play queues the cue for e, if there is one. It never blocks.
	Play(e core.Event)

	// ToggleMute flips the mute state and reports whether sound is now muted.
	ToggleMute() bool

	// Close stops all sound.
	Close()
}

// Nop is a silent sink, used when no audio device is available
// and for SSH sessions.
type Nop struct {
	muted bool
}

// Play discards the event.
func (n *Nop) Play(core.Event) {}

// ToggleMute only tracks the flag, so runners can still report it.
func (n *Nop) ToggleMute() bool {
	n.muted = !n.muted
	return n.muted
}

// Close does nothing.
func (n *Nop) Close() {}

// PlayAll forwards every event of a step to s.
func PlayAll(s Sink, events []core.Event) {
	for _, e := range events {
		s.Play(e)
	}
}

var (
	_ Sink = (*Nop)(nil)
	_ Sink = (*SoundManager)(nil)
)
