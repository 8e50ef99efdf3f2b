package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/burnhorn/LinkTale-frontend/internal/model"
	"github.com/burnhorn/LinkTale-frontend/internal/store"
)

func TestFlag(t *testing.T) {
	t.Run("set and get", func(t *testing.T) {
		f := store.NewFlag(false)
		assert.False(t, f.Get())
		f.Set(true)
		assert.True(t, f.Get())
	})

	t.Run("notifies only on change", func(t *testing.T) {
		f := store.NewFlag(false)
		calls := 0
		unsub := f.Subscribe(func() { calls++ })
		defer unsub()

		f.Set(true)
		f.Set(true)
		f.Set(false)
		assert.Equal(t, 2, calls)
	})
}

func TestSceneRegistry(t *testing.T) {
	t.Run("replace and get", func(t *testing.T) {
		r := store.NewSceneRegistry()
		r.ReplaceAll([]model.Scene{
			{ID: 1, SceneNumber: 1, TextContent: "옛날 옛적에"},
			{ID: 2, SceneNumber: 2, TextContent: "용이 나타났다"},
		})

		assert.Equal(t, 2, r.Len())
		sc, ok := r.Get(2)
		require.True(t, ok)
		assert.Equal(t, "용이 나타났다", sc.TextContent)

		_, ok = r.Get(99)
		assert.False(t, ok)
	})

	t.Run("update image patches only the target scene", func(t *testing.T) {
		r := store.NewSceneRegistry()
		r.ReplaceAll([]model.Scene{
			{ID: 1, ImageURL: "a"},
			{ID: 2, ImageURL: "b"},
		})

		r.UpdateImage(2, "edited")

		sc, _ := r.Get(1)
		assert.Equal(t, "a", sc.ImageURL)
		sc, _ = r.Get(2)
		assert.Equal(t, "edited", sc.ImageURL)
	})

	t.Run("update image for unknown scene is a no-op", func(t *testing.T) {
		r := store.NewSceneRegistry()
		calls := 0
		unsub := r.Subscribe(func() { calls++ })
		defer unsub()

		r.UpdateImage(5, "u")
		assert.Zero(t, calls)
	})
}

func TestStoryPages(t *testing.T) {
	p := store.NewStoryPages()
	p.Add("text", "옛날 옛적에", "")
	p.Add("image", "https://cdn/p1.png", "첫 장면")

	pages := p.Snapshot()
	require.Len(t, pages, 2)
	assert.Equal(t, "text", pages[0].Type)
	assert.Equal(t, "image", pages[1].Type)
	assert.Equal(t, "첫 장면", pages[1].Caption)
	assert.NotEmpty(t, pages[0].ID)

	p.Clear()
	assert.Empty(t, p.Snapshot())
}

func TestAudioStore(t *testing.T) {
	t.Run("set audio resets playback", func(t *testing.T) {
		a := store.NewAudioStore()
		a.SetAudio("first.mp3")
		a.Play()
		a.UpdateTime(12.5)
		a.SetDuration(60)

		a.SetAudio("second.mp3")

		state := a.Snapshot()
		assert.Equal(t, "second.mp3", state.Src)
		assert.False(t, state.IsPlaying)
		assert.Zero(t, state.CurrentTime)
	})

	t.Run("play pause and clear", func(t *testing.T) {
		a := store.NewAudioStore()
		a.SetAudio("drama.mp3")
		a.Play()
		assert.True(t, a.Snapshot().IsPlaying)
		a.Pause()
		assert.False(t, a.Snapshot().IsPlaying)

		a.Clear()
		assert.Equal(t, model.AudioState{}, a.Snapshot())
	})
}
