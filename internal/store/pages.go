package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/burnhorn/LinkTale-frontend/internal/model"
)

// StoryPages is the ordered list of assembled storybook pages.
type StoryPages struct {
	mu    sync.RWMutex
	pages []model.StoryPage
	subs  subscribers

	now   func() time.Time
	newID func() string
}

// NewStoryPages returns an empty page list.
func NewStoryPages() *StoryPages {
	return &StoryPages{
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Subscribe registers a listener invoked after every mutation.
func (p *StoryPages) Subscribe(fn Listener) func() {
	return p.subs.add(fn)
}

// Add appends a page of the given type.
func (p *StoryPages) Add(pageType, content, caption string) {
	p.mu.Lock()
	p.pages = append(p.pages, model.StoryPage{
		ID:        p.newID(),
		Type:      pageType,
		Content:   content,
		Caption:   caption,
		Timestamp: p.now(),
	})
	p.mu.Unlock()
	p.subs.notify()
}

// ReplaceAll swaps the full page list.
func (p *StoryPages) ReplaceAll(pages []model.StoryPage) {
	p.mu.Lock()
	p.pages = make([]model.StoryPage, len(pages))
	copy(p.pages, pages)
	p.mu.Unlock()
	p.subs.notify()
}

// Clear removes all pages.
func (p *StoryPages) Clear() {
	p.ReplaceAll(nil)
}

// Snapshot returns a copy of the current pages.
func (p *StoryPages) Snapshot() []model.StoryPage {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]model.StoryPage, len(p.pages))
	copy(out, p.pages)
	return out
}
