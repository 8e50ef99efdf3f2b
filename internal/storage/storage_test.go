package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/burnhorn/LinkTale-frontend/internal/storage"
)

func TestMemory(t *testing.T) {
	t.Run("round trips session id and token", func(t *testing.T) {
		m := storage.NewMemory()
		m.SetSessionID("sess-1")
		m.SetAuthToken("jwt")

		assert.Equal(t, "sess-1", m.SessionID())
		assert.Equal(t, "jwt", m.AuthToken())
	})

	t.Run("clear keeps the token unless logging out", func(t *testing.T) {
		m := storage.NewMemory()
		m.SetSessionID("sess-1")
		m.SetAuthToken("jwt")

		m.Clear(false)
		assert.Empty(t, m.SessionID())
		assert.Equal(t, "jwt", m.AuthToken())

		m.SetSessionID("sess-2")
		m.Clear(true)
		assert.Empty(t, m.SessionID())
		assert.Empty(t, m.AuthToken())
	})

	t.Run("welcomed marker survives any clear", func(t *testing.T) {
		m := storage.NewMemory()
		assert.False(t, m.Welcomed())
		m.MarkWelcomed()
		m.Clear(true)
		assert.True(t, m.Welcomed())
	})
}
