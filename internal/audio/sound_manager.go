package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-jump/internal/core"
)

const sampleRate = beep.SampleRate(44100)

// note is one sine tone of a cue.
type note struct {
	freq float64
	dur  time.Duration
}

// cues maps event kinds to the notes played for them. Kinds without an
// entry are silent; landings happen every bounce and would only add noise.
var cues = map[core.EventKind][]note{
	core.EventJump:         {{523.25, 40 * time.Millisecond}, {783.99, 60 * time.Millisecond}},
	core.EventBreakStarted: {{196, 90 * time.Millisecond}},
	core.EventNearDeath:    {{440, 120 * time.Millisecond}, {330, 120 * time.Millisecond}, {220, 200 * time.Millisecond}},
	core.EventLevelUp:      {{659.25, 70 * time.Millisecond}, {783.99, 70 * time.Millisecond}, {1046.5, 120 * time.Millisecond}},
	core.EventGameOver:     {{146.83, 180 * time.Millisecond}, {110, 320 * time.Millisecond}},
}

// SoundManager plays event cues through the system speaker.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	output      *beep.Ctrl
	volume      float64
	muted       bool
	initialized bool
}

// NewSoundManager creates a sound manager. Nothing is played until Initialize.
func NewSoundManager() *SoundManager {
	mixer := &beep.Mixer{}
	return &SoundManager{
		mixer:  mixer,
		output: &beep.Ctrl{Streamer: mixer},
		volume: -2,
	}
}

// Initialize opens the speaker.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(sm.output)
	sm.initialized = true
	return nil
}

// Play queues the cue for e.
func (sm *SoundManager) Play(e core.Event) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return
	}

	s := cueStreamer(e.Kind, sampleRate, sm.volume)
	if s == nil {
		return
	}

	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// ToggleMute pauses or resumes the output.
func (sm *SoundManager) ToggleMute() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.muted = !sm.muted
	if sm.initialized {
		speaker.Lock()
		sm.output.Paused = sm.muted
		if sm.muted {
			sm.mixer.Clear()
		}
		speaker.Unlock()
	}
	return sm.muted
}

// Muted reports the mute state.
func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}

// Close stops all sounds.
func (sm *SoundManager) Close() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.output.Paused = true
	sm.mixer.Clear()
	speaker.Unlock()

	// beep has no way to release the device; the paused output keeps it quiet
	sm.initialized = false
}

// cueStreamer builds the finite streamer for kind, or nil when kind is silent.
func cueStreamer(kind core.EventKind, sr beep.SampleRate, volume float64) beep.Streamer {
	notes, ok := cues[kind]
	if !ok {
		return nil
	}

	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		tone, err := generators.SineTone(sr, n.freq)
		if err != nil {
			continue
		}
		parts = append(parts, beep.Take(sr.N(n.dur), tone))
	}
	if len(parts) == 0 {
		return nil
	}

	return &effects.Volume{
		Streamer: beep.Seq(parts...),
		Base:     2,
		Volume:   volume,
	}
}
