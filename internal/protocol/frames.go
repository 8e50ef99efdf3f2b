// Package protocol defines the JSON frames exchanged with the AI backend over
// the persistent websocket connection.
package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/burnhorn/LinkTale-frontend/internal/model"
)

// Event discriminants of inbound frames.
const (
	EventSessionCreated    = "session_created"
	EventToken             = "token"
	EventImageGenerated    = "image_generated"
	EventScenesUpdated     = "scenes_updated"
	EventAudioGenerated    = "audio_generated"
	EventPageCreated       = "page_created"
	EventImageEditComplete = "image_edit_complete"
	EventError             = "error"
	EventEndOfTurn         = "end_of_turn"
)

// Frame is one decoded inbound event. The concrete type is determined by the
// frame's event discriminant; unknown discriminants decode to Unknown so the
// protocol stays forward compatible.
type Frame interface {
	isFrame()
}

// SessionCreated confirms the handshake and carries the session identifier.
type SessionCreated struct {
	SessionID string
}

// Token carries one streamed chunk of AI text and an optional source label
// naming the backend node that produced it.
type Token struct {
	Text   string
	Source string
}

// ImageGenerated announces a freshly generated illustration for a scene that
// has not been confirmed yet.
type ImageGenerated struct {
	ImageURL string
	Caption  string
	SceneID  int
}

// ScenesUpdated carries the authoritative, full list of persisted scenes.
type ScenesUpdated struct {
	Scenes []model.Scene
}

// AudioGenerated announces that the session's audio drama is ready.
type AudioGenerated struct {
	AudioURL string
}

// PageCreated announces a storybook page assembled by the page-builder agent.
type PageCreated struct {
	Type    string
	Content string
	Caption string
}

// ImageEditComplete announces that a user-requested illustration edit was
// applied to a persisted scene.
type ImageEditComplete struct {
	SceneID     int
	NewImageURL string
}

// ErrorEvent is a mid-stream backend error. It is a normal event, not a
// connection failure: it terminates the currently loading entry.
type ErrorEvent struct {
	Message string
}

// EndOfTurn marks the end of the AI's turn.
type EndOfTurn struct{}

// Unknown is any frame with an unrecognized discriminant. Receivers ignore it.
type Unknown struct {
	Event string
}

func (SessionCreated) isFrame()    {}
func (Token) isFrame()             {}
func (ImageGenerated) isFrame()    {}
func (ScenesUpdated) isFrame()     {}
func (AudioGenerated) isFrame()    {}
func (PageCreated) isFrame()       {}
func (ImageEditComplete) isFrame() {}
func (ErrorEvent) isFrame()        {}
func (EndOfTurn) isFrame()         {}
func (Unknown) isFrame()           {}

// envelope is the outer shape of every inbound frame. session_created puts the
// id at the top level; token puts the node label there.
type envelope struct {
	Event     string          `json:"event"`
	SessionID string          `json:"session_id"`
	NodeName  string          `json:"node_name"`
	Data      json.RawMessage `json:"data"`
}

// ClientMessage is the single outbound message shape.
type ClientMessage struct {
	Content string `json:"content"`
	Action  string `json:"action,omitempty"`
}

// Parse decodes one inbound frame. A decoding error means the frame is
// malformed and must be dropped by the caller; it never aborts the stream.
func Parse(raw []byte) (Frame, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("malformed frame: %w", err)
	}
	if env.Event == "" {
		return nil, fmt.Errorf("malformed frame: missing event discriminant")
	}

	switch env.Event {
	case EventSessionCreated:
		sc := SessionCreated{SessionID: env.SessionID}
		if sc.SessionID == "" && len(env.Data) > 0 {
			var data struct {
				SessionID string `json:"session_id"`
			}
			if err := json.Unmarshal(env.Data, &data); err != nil {
				return nil, fmt.Errorf("malformed session_created payload: %w", err)
			}
			sc.SessionID = data.SessionID
		}
		if sc.SessionID == "" {
			return nil, fmt.Errorf("session_created frame without session_id")
		}
		return sc, nil

	case EventToken:
		text, fields, err := textOrObject(env.Data)
		if err != nil {
			return nil, fmt.Errorf("malformed token payload: %w", err)
		}
		tok := Token{Text: text, Source: env.NodeName}
		if fields != nil {
			tok.Text = fields["text"]
			if s := fields["source"]; s != "" {
				tok.Source = s
			}
		}
		return tok, nil

	case EventImageGenerated:
		var data struct {
			ImageURL string `json:"image_url"`
			Caption  string `json:"image_caption"`
			SceneID  int    `json:"scene_id"`
		}
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return nil, fmt.Errorf("malformed image_generated payload: %w", err)
		}
		return ImageGenerated{ImageURL: data.ImageURL, Caption: data.Caption, SceneID: data.SceneID}, nil

	case EventScenesUpdated:
		var data struct {
			Scenes []model.Scene `json:"scenes"`
		}
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return nil, fmt.Errorf("malformed scenes_updated payload: %w", err)
		}
		return ScenesUpdated{Scenes: data.Scenes}, nil

	case EventAudioGenerated:
		var data struct {
			AudioURL string `json:"audio_url"`
		}
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return nil, fmt.Errorf("malformed audio_generated payload: %w", err)
		}
		return AudioGenerated{AudioURL: data.AudioURL}, nil

	case EventPageCreated:
		var data struct {
			Type    string `json:"type"`
			Content string `json:"content"`
			Caption string `json:"caption"`
		}
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return nil, fmt.Errorf("malformed page_created payload: %w", err)
		}
		return PageCreated{Type: data.Type, Content: data.Content, Caption: data.Caption}, nil

	case EventImageEditComplete:
		var data struct {
			SceneID     int    `json:"scene_id"`
			NewImageURL string `json:"new_image_url"`
		}
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return nil, fmt.Errorf("malformed image_edit_complete payload: %w", err)
		}
		return ImageEditComplete{SceneID: data.SceneID, NewImageURL: data.NewImageURL}, nil

	case EventError:
		text, fields, err := textOrObject(env.Data)
		if err != nil {
			return nil, fmt.Errorf("malformed error payload: %w", err)
		}
		if fields != nil {
			text = fields["message"]
		}
		return ErrorEvent{Message: text}, nil

	case EventEndOfTurn:
		return EndOfTurn{}, nil

	default:
		return Unknown{Event: env.Event}, nil
	}
}

// textOrObject decodes a payload that older backend revisions sent as a bare
// JSON string and current ones send as an object. Exactly one of the returns
// is meaningful: fields is nil for the string form.
func textOrObject(raw json.RawMessage) (string, map[string]string, error) {
	if len(raw) == 0 {
		return "", nil, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil, nil
	}
	var fields map[string]string
	if err := json.Unmarshal(raw, &fields); err != nil {
		return "", nil, err
	}
	return "", fields, nil
}
