package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate   = beep.SampleRate(44100)
	shotDuration = 180 * time.Millisecond
)

// SoundManager plays the trigger sound. Every method is a no-op until
// Initialize has succeeded, so a machine without audio runs silent.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

// NewSoundManager creates a sound manager. volume is a base-2 exponent,
// 0 leaves samples unchanged.
func NewSoundManager(volume float64) *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: volume,
	}
}

// Initialize opens the speaker
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// PlayShot mixes in one shot. Overlapping shots stack.
func (sm *SoundManager) PlayShot() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Add(sm.shotStreamer())
	speaker.Unlock()
}

func (sm *SoundManager) shotStreamer() beep.Streamer {
	shot := beep.Take(sampleRate.N(shotDuration), NewShotGenerator(sampleRate, shotDuration))
	return &effects.Volume{Streamer: shot, Base: 2, Volume: sm.volume}
}

// Cleanup silences the mixer
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}
