// Package session orchestrates the live storytelling session: connection
// lifecycle, history restoration and the application of streamed backend
// events to the client-side stores.
package session

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/burnhorn/LinkTale-frontend/internal/model"
	"github.com/burnhorn/LinkTale-frontend/internal/protocol"
	"github.com/burnhorn/LinkTale-frontend/internal/storage"
	"github.com/burnhorn/LinkTale-frontend/internal/store"
	"github.com/burnhorn/LinkTale-frontend/internal/transport"
)

// State is the lifecycle state of the session.
type State int32

const (
	StateIdle State = iota
	StateConnecting
	StateRestoring
	StateWelcoming
	StateReady
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConnecting:
		return "connecting"
	case StateRestoring:
		return "restoring"
	case StateWelcoming:
		return "welcoming"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Transport is the connection surface the controller drives. Implemented by
// transport.Transport.
type Transport interface {
	SetHandler(h transport.Handler)
	Connect(ctx context.Context, sessionID, authToken string) (string, error)
	Send(msg protocol.ClientMessage) error
	Close()
	IsConnected() bool
}

// BackendAPI is the HTTP collaborator surface the controller consumes.
// Implemented by client.Client.
type BackendAPI interface {
	History(ctx context.Context, sessionID, authToken string) (*model.HistoryResponse, error)
	LatestAudio(ctx context.Context, sessionID, authToken string) (string, error)
}

// Controller owns the session lifecycle and all session stores. It is the
// transport's event handler: inbound frames arrive sequentially and each
// mutates exactly the stores the event concerns.
type Controller struct {
	transport Transport
	api       BackendAPI
	state     storage.SessionState
	logger    *zap.Logger

	Conversation *store.ConversationLog
	Scenes       *store.SceneRegistry
	Pages        *store.StoryPages
	Audio        *store.AudioStore

	Ready        *store.Flag
	Loading      *store.Flag
	AudioLoading *store.Flag

	mu sync.Mutex
	st State

	// background tracks the best-effort audio fetch so tests and shutdown can
	// wait for it; its failure never affects the main flow.
	background sync.WaitGroup
}

// NewController builds a controller and installs it as the transport's event
// handler.
func NewController(t Transport, api BackendAPI, state storage.SessionState, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Controller{
		transport:    t,
		api:          api,
		state:        state,
		logger:       logger.Named("SessionController"),
		Conversation: store.NewConversationLog(),
		Scenes:       store.NewSceneRegistry(),
		Pages:        store.NewStoryPages(),
		Audio:        store.NewAudioStore(),
		Ready:        store.NewFlag(false),
		Loading:      store.NewFlag(false),
		AudioLoading: store.NewFlag(false),
	}
	t.SetHandler(c)
	return c
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.st
}

func (c *Controller) setState(s State) {
	c.mu.Lock()
	c.st = s
	c.mu.Unlock()
}

// SessionID returns the remembered session identifier, if any.
func (c *Controller) SessionID() string {
	return c.state.SessionID()
}

// Start brings the session to the ready state: connect and handshake, then
// either restore history (when a prior session id was remembered) or show the
// one-time welcome notice. A Start while already ready or connecting is a
// no-op. On failure the controller falls back to idle and returns the error;
// the caller may retry with another Start.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.st == StateReady || c.st == StateConnecting {
		c.mu.Unlock()
		c.logger.Debug("Start skipped: already ready or connecting")
		return nil
	}
	c.st = StateConnecting
	c.mu.Unlock()

	c.Ready.Set(false)
	c.Loading.Set(true)
	defer c.Loading.Set(false)

	remembered := c.state.SessionID()
	sessionID, err := c.transport.Connect(ctx, remembered, c.state.AuthToken())
	if err != nil {
		if errors.Is(err, transport.ErrConnectInProgress) {
			// Another Start owns the connection attempt.
			c.setState(StateConnecting)
			return nil
		}
		c.setState(StateIdle)
		c.logger.Error("Failed to start chat session", zap.Error(err))
		return err
	}
	c.state.SetSessionID(sessionID)

	if remembered != "" {
		c.setState(StateRestoring)
		c.restoreHistory(ctx, sessionID)
	} else {
		c.setState(StateWelcoming)
		c.showWelcomeIfNeeded()
	}

	c.setState(StateReady)
	c.Ready.Set(true)
	c.logger.Info("Session ready", zap.String("sessionID", sessionID))
	return nil
}

// Reset disconnects, clears the remembered session (and the auth token on
// logout), empties every session store and starts over.
func (c *Controller) Reset(ctx context.Context, logout bool) error {
	c.logger.Info("Resetting session", zap.Bool("logout", logout))
	c.Loading.Set(true)

	c.transport.Close()
	c.state.Clear(logout)

	c.Conversation.ReplaceAll(nil)
	c.Scenes.ReplaceAll(nil)
	c.Pages.Clear()
	c.Audio.Clear()

	c.setState(StateIdle)
	c.Ready.Set(false)

	return c.Start(ctx)
}

// SendUserMessage appends the user's entry to the conversation and transmits
// it. When no open connection exists, a system notice is shown instead and
// nothing is sent.
func (c *Controller) SendUserMessage(content string) {
	if !c.transport.IsConnected() {
		c.logger.Warn("Send attempted without a connection")
		c.Conversation.AppendSystemNotice(offlineNotice)
		return
	}
	c.Conversation.AppendUser(content)
	c.send(protocol.ClientMessage{Content: content})
}

// SendAction transmits an action request (for example audio generation),
// posting the given notice to the conversation for immediate feedback.
func (c *Controller) SendAction(action, content string) {
	if action == ActionGenerateAudio && content == "" {
		content = audioRequestedNotice
	}
	c.Conversation.AppendSystemNotice(content)
	if !c.transport.IsConnected() {
		c.logger.Warn("Action attempted without a connection")
		c.Conversation.AppendSystemNotice(offlineNotice)
		return
	}
	if action == ActionGenerateAudio {
		c.AudioLoading.Set(true)
	}
	c.send(protocol.ClientMessage{Content: content, Action: action})
}

func (c *Controller) send(msg protocol.ClientMessage) {
	if err := c.transport.Send(msg); err != nil {
		c.logger.Error("Failed to send message", zap.Error(err))
		c.Conversation.AppendSystemNotice(offlineNotice)
		return
	}
	c.Loading.Set(true)
}

// Wait blocks until in-flight background fetches finish. Used by tests and
// graceful shutdown.
func (c *Controller) Wait() {
	c.background.Wait()
}

func (c *Controller) showWelcomeIfNeeded() {
	if c.state.Welcomed() {
		return
	}
	c.Conversation.AppendSystemNotice(welcomeNotice)
	c.state.MarkWelcomed()
}

// --- transport.Handler ---

func (c *Controller) OnToken(text, source string) {
	c.Conversation.AppendStreamedToken(text, source)
}

func (c *Controller) OnImageGenerated(imageURL, caption string, sceneID int) {
	c.Conversation.AppendProvisionalImage(imageURL, caption, sceneID)
}

func (c *Controller) OnScenesUpdated(scenes []model.Scene) {
	c.Scenes.ReplaceAll(scenes)
	c.Conversation.ReconcileWithScenes(scenes)
}

func (c *Controller) OnAudioGenerated(audioURL string) {
	if audioURL != "" {
		c.Audio.SetAudio(audioURL)
		c.Conversation.AppendSystemNotice(audioReadyNotice)
	}
	c.AudioLoading.Set(false)
}

func (c *Controller) OnPageCreated(pageType, content, caption string) {
	c.Pages.Add(pageType, content, caption)
}

func (c *Controller) OnImageEditComplete(sceneID int, newImageURL string) {
	c.Scenes.UpdateImage(sceneID, newImageURL)
	c.Conversation.UpdateImageForScene(sceneID, newImageURL)
}

func (c *Controller) OnStreamError(message string) {
	c.Conversation.SetErrorOnLoading(message)
}

func (c *Controller) OnEndOfTurn() {
	c.Loading.Set(false)
	c.Conversation.FinalizeLastAI()
}
