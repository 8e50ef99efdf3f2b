// Package store holds the mutable client-side session state: the conversation
// log, the scene registry, storybook pages, audio state and global flags.
//
// Each store owns its state behind a mutex and notifies subscribers after
// every mutation. Mutations are atomic: a subscriber callback or snapshot
// never observes a half-applied operation.
package store

import "sync"

// Listener is invoked after a store mutation. It runs outside the store lock,
// so it may read the store but must not assume the state it was notified for
// is still current.
type Listener func()

type subscribers struct {
	mu   sync.Mutex
	next int
	fns  map[int]Listener
}

// add registers fn and returns its cancel function.
func (s *subscribers) add(fn Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fns == nil {
		s.fns = make(map[int]Listener)
	}
	id := s.next
	s.next++
	s.fns[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.fns, id)
	}
}

func (s *subscribers) notify() {
	s.mu.Lock()
	fns := make([]Listener, 0, len(s.fns))
	for _, fn := range s.fns {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// Flag is a single observable boolean, the analogue of the frontend's global
// isLoading / isReady stores.
type Flag struct {
	mu   sync.RWMutex
	v    bool
	subs subscribers
}

// NewFlag returns a Flag with the given initial value.
func NewFlag(v bool) *Flag {
	return &Flag{v: v}
}

// Set updates the flag. Subscribers are notified only on an actual change.
func (f *Flag) Set(v bool) {
	f.mu.Lock()
	changed := f.v != v
	f.v = v
	f.mu.Unlock()
	if changed {
		f.subs.notify()
	}
}

// Get reads the flag.
func (f *Flag) Get() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.v
}

// Subscribe registers a listener and returns its cancel function.
func (f *Flag) Subscribe(fn Listener) func() {
	return f.subs.add(fn)
}
