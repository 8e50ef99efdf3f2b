package model

import (
	"fmt"
	"time"
)

// Scene is a server-persisted unit of the story: generated narrative text plus
// an optional illustration. The backend assigns the id; SceneNumber is the
// ordinal position within the story and increases monotonically per session.
type Scene struct {
	ID          int       `json:"id"`
	SceneNumber int       `json:"scene_number"`
	TextContent string    `json:"text_content"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// SceneGuideText is the fixed caption inserted ahead of every confirmed scene
// illustration in the conversation log.
const SceneGuideText = "장면이 완성되었어요! 그림과 함께 이야기를 감상해보세요. ✨"

// ProvisionalImageID is the temporary conversation-entry id given to an
// illustration that streamed in before its scene record was confirmed. It
// embeds the scene's eventual id so reconciliation can match the two.
func ProvisionalImageID(sceneID int) string {
	return fmt.Sprintf("temp-img-%d", sceneID)
}

// SceneImageID is the permanent conversation-entry id of a confirmed scene
// illustration.
func SceneImageID(sceneID int) string {
	return fmt.Sprintf("scene-img-%d", sceneID)
}

// SceneGuideID is the conversation-entry id of the guide entry inserted ahead
// of a confirmed scene illustration.
func SceneGuideID(sceneID int) string {
	return fmt.Sprintf("scene-guide-%d", sceneID)
}
