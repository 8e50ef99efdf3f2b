package store

import (
	"sync"

	"github.com/burnhorn/LinkTale-frontend/internal/model"
)

// AudioStore holds the session's audio drama state.
type AudioStore struct {
	mu    sync.RWMutex
	state model.AudioState
	subs  subscribers
}

// NewAudioStore returns an empty audio store.
func NewAudioStore() *AudioStore {
	return &AudioStore{}
}

// Subscribe registers a listener invoked after every mutation.
func (a *AudioStore) Subscribe(fn Listener) func() {
	return a.subs.add(fn)
}

// SetAudio attaches a new audio source, resetting playback position.
func (a *AudioStore) SetAudio(src string) {
	a.mu.Lock()
	a.state.Src = src
	a.state.IsPlaying = false
	a.state.CurrentTime = 0
	a.mu.Unlock()
	a.subs.notify()
}

// Play marks the audio as playing.
func (a *AudioStore) Play() {
	a.setPlaying(true)
}

// Pause marks the audio as paused.
func (a *AudioStore) Pause() {
	a.setPlaying(false)
}

func (a *AudioStore) setPlaying(v bool) {
	a.mu.Lock()
	a.state.IsPlaying = v
	a.mu.Unlock()
	a.subs.notify()
}

// UpdateTime records the current playback position.
func (a *AudioStore) UpdateTime(t float64) {
	a.mu.Lock()
	a.state.CurrentTime = t
	a.mu.Unlock()
	a.subs.notify()
}

// SetDuration records the asset duration.
func (a *AudioStore) SetDuration(d float64) {
	a.mu.Lock()
	a.state.Duration = d
	a.mu.Unlock()
	a.subs.notify()
}

// Clear detaches the audio asset entirely.
func (a *AudioStore) Clear() {
	a.mu.Lock()
	a.state = model.AudioState{}
	a.mu.Unlock()
	a.subs.notify()
}

// Snapshot returns the current audio state.
func (a *AudioStore) Snapshot() model.AudioState {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state
}
