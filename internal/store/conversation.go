package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/burnhorn/LinkTale-frontend/internal/model"
)

// ConversationLog is the ordered, mutable sequence of conversation entries.
//
// Invariant: at most one entry has IsLoading set, and it is the most recently
// appended AI entry. Appending any new entry first finalizes a still-loading
// predecessor, except when a streamed token extends it.
type ConversationLog struct {
	mu      sync.RWMutex
	entries []model.ConversationEntry
	subs    subscribers

	// now and newID are swappable for tests.
	now   func() time.Time
	newID func() string
}

// NewConversationLog returns an empty conversation log.
func NewConversationLog() *ConversationLog {
	return &ConversationLog{
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Subscribe registers a listener invoked after every mutation.
func (l *ConversationLog) Subscribe(fn Listener) func() {
	return l.subs.add(fn)
}

// Snapshot returns a copy of the current entries.
func (l *ConversationLog) Snapshot() []model.ConversationEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]model.ConversationEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries.
func (l *ConversationLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Last returns the most recent entry, if any.
func (l *ConversationLog) Last() (model.ConversationEntry, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if len(l.entries) == 0 {
		return model.ConversationEntry{}, false
	}
	return l.entries[len(l.entries)-1], true
}

// timestampLocked returns the creation time for a new entry, clamped so the
// sequence stays non-decreasing.
func (l *ConversationLog) timestampLocked() time.Time {
	ts := l.now()
	if n := len(l.entries); n > 0 && ts.Before(l.entries[n-1].Timestamp) {
		ts = l.entries[n-1].Timestamp
	}
	return ts
}

// finalizeLoadingLocked clears IsLoading wherever it is still set. Called
// before appending an entry that is not a streaming continuation.
func (l *ConversationLog) finalizeLoadingLocked() {
	for i := range l.entries {
		l.entries[i].IsLoading = false
	}
}

// AppendUser appends a finalized user entry.
func (l *ConversationLog) AppendUser(text string) {
	l.mu.Lock()
	l.finalizeLoadingLocked()
	l.entries = append(l.entries, model.ConversationEntry{
		ID:        l.newID(),
		Sender:    model.SenderUser,
		Text:      text,
		Timestamp: l.timestampLocked(),
	})
	l.mu.Unlock()
	l.subs.notify()
}

// AppendStreamedToken extends the in-progress AI entry with a streamed chunk,
// or starts a new one when the last entry is not an in-progress, non-system,
// non-image AI entry.
func (l *ConversationLog) AppendStreamedToken(chunk, source string) {
	l.mu.Lock()
	if n := len(l.entries); n > 0 {
		last := &l.entries[n-1]
		if last.Sender == model.SenderAI && last.IsLoading && !last.IsSystem && last.ImageURL == "" {
			last.Text += chunk
			if source != "" {
				last.Source = source
			}
			l.mu.Unlock()
			l.subs.notify()
			return
		}
	}
	l.finalizeLoadingLocked()
	l.entries = append(l.entries, model.ConversationEntry{
		ID:        l.newID(),
		Sender:    model.SenderAI,
		Text:      chunk,
		Source:    source,
		IsLoading: true,
		Timestamp: l.timestampLocked(),
	})
	l.mu.Unlock()
	l.subs.notify()
}

// AppendSystemNotice appends a finalized system entry.
func (l *ConversationLog) AppendSystemNotice(text string) {
	l.mu.Lock()
	l.finalizeLoadingLocked()
	l.entries = append(l.entries, model.ConversationEntry{
		ID:        l.newID(),
		Sender:    model.SenderAI,
		Text:      text,
		IsSystem:  true,
		Timestamp: l.timestampLocked(),
	})
	l.mu.Unlock()
	l.subs.notify()
}

// AppendProvisionalImage appends an AI image entry for a scene that is not
// confirmed yet. The entry carries the temporary identifier derived from the
// scene id; ReconcileWithScenes swaps it for the permanent one later.
func (l *ConversationLog) AppendProvisionalImage(imageURL, caption string, sceneID int) {
	l.mu.Lock()
	l.finalizeLoadingLocked()
	id := sceneID
	l.entries = append(l.entries, model.ConversationEntry{
		ID:        model.ProvisionalImageID(sceneID),
		Sender:    model.SenderAI,
		Text:      caption,
		ImageURL:  imageURL,
		SceneID:   &id,
		Timestamp: l.timestampLocked(),
	})
	l.mu.Unlock()
	l.subs.notify()
}

// FinalizeLastAI clears the loading state of the most recent AI entry, if any.
// Calling it again is a no-op.
func (l *ConversationLog) FinalizeLastAI() {
	l.mu.Lock()
	changed := false
	if n := len(l.entries); n > 0 && l.entries[n-1].Sender == model.SenderAI && l.entries[n-1].IsLoading {
		l.entries[n-1].IsLoading = false
		changed = true
	}
	l.mu.Unlock()
	if changed {
		l.subs.notify()
	}
}

// SetErrorOnLoading terminates the currently loading entry with an error
// message. When no entry is loading, a new finalized error entry is appended
// instead.
func (l *ConversationLog) SetErrorOnLoading(message string) {
	l.mu.Lock()
	for i := len(l.entries) - 1; i >= 0; i-- {
		if l.entries[i].IsLoading {
			l.entries[i].Text = message
			l.entries[i].IsLoading = false
			l.entries[i].IsError = true
			l.mu.Unlock()
			l.subs.notify()
			return
		}
	}
	l.entries = append(l.entries, model.ConversationEntry{
		ID:        l.newID(),
		Sender:    model.SenderAI,
		Text:      message,
		IsError:   true,
		Timestamp: l.timestampLocked(),
	})
	l.mu.Unlock()
	l.subs.notify()
}

// ReconcileWithScenes matches provisional image entries against confirmed
// scenes: the first match gets its identifier replaced with the permanent one
// and an immutable guide entry inserted immediately before it, tagged with the
// same scene back-reference. At most one match is processed per invocation,
// and replaying the same scene list never duplicates guide entries.
func (l *ConversationLog) ReconcileWithScenes(scenes []model.Scene) bool {
	l.mu.Lock()
	for _, sc := range scenes {
		tempID := model.ProvisionalImageID(sc.ID)
		for i := range l.entries {
			if l.entries[i].ID != tempID {
				continue
			}
			sceneID := sc.ID
			l.entries[i].ID = model.SceneImageID(sc.ID)
			l.entries[i].SceneID = &sceneID
			guide := model.ConversationEntry{
				ID:        model.SceneGuideID(sc.ID),
				Sender:    model.SenderAI,
				Text:      model.SceneGuideText,
				IsSystem:  true,
				Timestamp: l.entries[i].Timestamp,
				SceneID:   &sceneID,
			}
			l.entries = append(l.entries, model.ConversationEntry{})
			copy(l.entries[i+1:], l.entries[i:])
			l.entries[i] = guide
			l.mu.Unlock()
			l.subs.notify()
			return true
		}
	}
	l.mu.Unlock()
	return false
}

// UpdateImageForScene replaces the image URL of the entry referencing the
// given scene. No-op when no such entry exists.
func (l *ConversationLog) UpdateImageForScene(sceneID int, newURL string) {
	l.mu.Lock()
	for i := range l.entries {
		if l.entries[i].SceneID != nil && *l.entries[i].SceneID == sceneID && l.entries[i].ImageURL != "" {
			l.entries[i].ImageURL = newURL
			l.mu.Unlock()
			l.subs.notify()
			return
		}
	}
	l.mu.Unlock()
}

// ReplaceAll swaps the full entry sequence, used for history replay and reset.
func (l *ConversationLog) ReplaceAll(entries []model.ConversationEntry) {
	l.mu.Lock()
	l.entries = make([]model.ConversationEntry, len(entries))
	copy(l.entries, entries)
	l.mu.Unlock()
	l.subs.notify()
}
