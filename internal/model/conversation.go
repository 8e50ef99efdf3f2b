package model

import "time"

// Sender identifies who produced a conversation entry.
type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

// ConversationEntry is one row of the chat log the UI renders.
//
// The ID is either a client-generated provisional identifier or a
// server-confirmed one; it is never reused. Text is mutable only while the
// entry is the most recent AI entry and still streaming (IsLoading). ImageURL
// is set once a generated illustration arrives; a later scene edit may replace
// it, nothing else mutates it. SceneID is a back-reference (not ownership)
// to a persisted scene, used only for reconciliation.
type ConversationEntry struct {
	ID        string    `json:"id"`
	Sender    Sender    `json:"sender"`
	Text      string    `json:"text"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	IsSystem  bool      `json:"isSystem,omitempty"`
	IsLoading bool      `json:"isLoading,omitempty"`
	IsError   bool      `json:"isError,omitempty"`
	// Source labels which backend node produced a streamed chunk, when known.
	Source  string `json:"source,omitempty"`
	SceneID *int   `json:"sceneId,omitempty"`
}

// StoryPage is one page of the assembled storybook, produced by the
// collaborating page-builder agent via page_created events.
type StoryPage struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"` // "text" or "image"
	Content   string    `json:"content"`
	Caption   string    `json:"caption,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// AudioState describes the audio drama asset attached to the session.
type AudioState struct {
	Src         string  `json:"src"`
	IsPlaying   bool    `json:"isPlaying"`
	CurrentTime float64 `json:"currentTime"`
	Duration    float64 `json:"duration"`
}
