package model

import "time"

// Message types of persisted log entries.
const (
	MessageTypeText   = "text"
	MessageTypeImage  = "image"
	MessageTypeAudio  = "audio"
	MessageTypeSystem = "system"
)

// LogEntry is one persisted conversation record as the backend stores it.
type LogEntry struct {
	ID           int       `json:"id"`
	SessionID    string    `json:"session_id"`
	Sender       Sender    `json:"sender"`
	MessageType  string    `json:"message_type"`
	Content      string    `json:"content,omitempty"`
	ImageURL     string    `json:"image_url,omitempty"`
	ImageCaption string    `json:"image_caption,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// HistoryResponse is the body of GET /history/{sessionId}.
type HistoryResponse struct {
	Logs   []LogEntry `json:"logs"`
	Scenes []Scene    `json:"scenes"`
}
