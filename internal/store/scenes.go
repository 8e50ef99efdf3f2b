package store

import (
	"sync"

	"github.com/burnhorn/LinkTale-frontend/internal/model"
)

// SceneRegistry holds the authoritative list of persisted scenes, as last
// confirmed by the backend. Scenes are never deleted client-side; the list is
// only replaced wholesale or patched with a new illustration URL.
type SceneRegistry struct {
	mu     sync.RWMutex
	scenes []model.Scene
	subs   subscribers
}

// NewSceneRegistry returns an empty registry.
func NewSceneRegistry() *SceneRegistry {
	return &SceneRegistry{}
}

// Subscribe registers a listener invoked after every mutation.
func (r *SceneRegistry) Subscribe(fn Listener) func() {
	return r.subs.add(fn)
}

// ReplaceAll sets the authoritative scene list, replacing any prior content.
func (r *SceneRegistry) ReplaceAll(scenes []model.Scene) {
	r.mu.Lock()
	r.scenes = make([]model.Scene, len(scenes))
	copy(r.scenes, scenes)
	r.mu.Unlock()
	r.subs.notify()
}

// UpdateImage replaces only the image URL of the scene with the given id.
// No-op when the scene is not registered.
func (r *SceneRegistry) UpdateImage(sceneID int, newURL string) {
	r.mu.Lock()
	for i := range r.scenes {
		if r.scenes[i].ID == sceneID {
			r.scenes[i].ImageURL = newURL
			r.mu.Unlock()
			r.subs.notify()
			return
		}
	}
	r.mu.Unlock()
}

// Get returns the scene with the given id.
func (r *SceneRegistry) Get(sceneID int) (model.Scene, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, sc := range r.scenes {
		if sc.ID == sceneID {
			return sc, true
		}
	}
	return model.Scene{}, false
}

// Snapshot returns a copy of the current scene list.
func (r *SceneRegistry) Snapshot() []model.Scene {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Scene, len(r.scenes))
	copy(out, r.scenes)
	return out
}

// Len returns the number of registered scenes.
func (r *SceneRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.scenes)
}
