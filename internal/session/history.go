package session

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/burnhorn/LinkTale-frontend/internal/model"
)

// restoreHistory replays the persisted conversation of a resumed session into
// the stores. Fetch failures degrade to a user-visible notice; they never
// abort readiness.
func (c *Controller) restoreHistory(ctx context.Context, sessionID string) {
	history, err := c.api.History(ctx, sessionID, c.state.AuthToken())
	if err != nil {
		c.logger.Warn("Failed to fetch history", zap.Error(err))
		c.Conversation.AppendSystemNotice(historyFailedNotice)
		return
	}

	if len(history.Logs) == 0 && len(history.Scenes) == 0 {
		c.showWelcomeIfNeeded()
		return
	}

	c.Conversation.ReplaceAll(historyEntries(history))
	c.Scenes.ReplaceAll(history.Scenes)

	for _, log := range history.Logs {
		if log.MessageType == model.MessageTypeAudio {
			c.fetchLatestAudioAsync(sessionID)
			break
		}
	}
}

// fetchLatestAudioAsync restores the audio player asset in the background.
// This is an enhancement on top of the restored conversation: failures are
// logged and swallowed, and the fetch runs in its own failure domain so it
// cannot affect the main flow's state.
func (c *Controller) fetchLatestAudioAsync(sessionID string) {
	c.background.Add(1)
	go func() {
		defer c.background.Done()
		audioURL, err := c.api.LatestAudio(context.Background(), sessionID, c.state.AuthToken())
		if err != nil {
			c.logger.Warn("Failed to fetch latest audio", zap.Error(err))
			return
		}
		if audioURL != "" {
			c.Audio.SetAudio(audioURL)
		}
	}()
}

// historyEntries converts persisted logs and scenes into conversation entries
// and merges them in timestamp order. The sort is stable: ties keep the
// original relative order (logs before scenes, each in backend order).
func historyEntries(history *model.HistoryResponse) []model.ConversationEntry {
	entries := make([]model.ConversationEntry, 0, len(history.Logs)+2*len(history.Scenes))

	for _, log := range history.Logs {
		entry := model.ConversationEntry{
			ID:        fmt.Sprintf("log-%d", log.ID),
			Sender:    log.Sender,
			Text:      log.Content,
			Timestamp: log.CreatedAt,
			IsSystem:  log.MessageType == model.MessageTypeSystem || log.MessageType == model.MessageTypeAudio,
		}
		if log.MessageType == model.MessageTypeImage {
			entry.ImageURL = log.ImageURL
			entry.Text = log.ImageCaption
		}
		entries = append(entries, entry)
	}

	for _, scene := range history.Scenes {
		sceneID := scene.ID
		entries = append(entries, model.ConversationEntry{
			ID:        model.SceneGuideID(scene.ID),
			Sender:    model.SenderAI,
			Text:      model.SceneGuideText,
			IsSystem:  true,
			Timestamp: scene.CreatedAt,
			SceneID:   &sceneID,
		})
		if scene.ImageURL != "" {
			entries = append(entries, model.ConversationEntry{
				ID:        model.SceneImageID(scene.ID),
				Sender:    model.SenderAI,
				Text:      scene.TextContent,
				ImageURL:  scene.ImageURL,
				Timestamp: scene.CreatedAt,
				SceneID:   &sceneID,
			})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.Before(entries[j].Timestamp)
	})
	return entries
}
