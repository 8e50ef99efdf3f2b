// Package storage keeps the small set of values the web client persisted in
// browser tab storage: the remembered session id, the auth token and the
// "already welcomed" marker.
package storage

import "sync"

// SessionState is per-tab persisted state. Implementations must be safe for
// concurrent use.
type SessionState interface {
	SessionID() string
	SetSessionID(id string)
	AuthToken() string
	SetAuthToken(token string)
	// Welcomed reports whether the one-time welcome notice was already shown.
	Welcomed() bool
	MarkWelcomed()
	// Clear forgets the remembered session id; with logout it also drops the
	// auth token. The welcomed marker survives a reset so the welcome notice
	// is shown at most once per tab lifetime.
	Clear(logout bool)
}

// Memory is the in-process SessionState implementation.
type Memory struct {
	mu        sync.RWMutex
	sessionID string
	authToken string
	welcomed  bool
}

// NewMemory returns an empty session state.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) SessionID() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessionID
}

func (m *Memory) SetSessionID(id string) {
	m.mu.Lock()
	m.sessionID = id
	m.mu.Unlock()
}

func (m *Memory) AuthToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.authToken
}

func (m *Memory) SetAuthToken(token string) {
	m.mu.Lock()
	m.authToken = token
	m.mu.Unlock()
}

func (m *Memory) Welcomed() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.welcomed
}

func (m *Memory) MarkWelcomed() {
	m.mu.Lock()
	m.welcomed = true
	m.mu.Unlock()
}

func (m *Memory) Clear(logout bool) {
	m.mu.Lock()
	m.sessionID = ""
	if logout {
		m.authToken = ""
	}
	m.mu.Unlock()
}
