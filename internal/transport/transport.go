// Package transport owns the persistent websocket connection to the AI
// backend: the session handshake and the steady-state demultiplexing of
// inbound event frames.
package transport

import (
	"context"
	"errors"
	"net"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/burnhorn/LinkTale-frontend/internal/model"
	"github.com/burnhorn/LinkTale-frontend/internal/protocol"
)

const (
	// handshakeTimeout bounds the wait for the session_created frame.
	handshakeTimeout = 10 * time.Second
	// writeWait bounds a single outbound write.
	writeWait = 10 * time.Second
)

var (
	// ErrConnectionFailed means the underlying channel could not be opened.
	ErrConnectionFailed = errors.New("websocket connection failed")
	// ErrHandshakeTimeout means no session confirmation arrived in time.
	ErrHandshakeTimeout = errors.New("session creation timed out")
	// ErrUnexpectedClose means the peer closed non-cleanly during the handshake.
	ErrUnexpectedClose = errors.New("websocket closed unexpectedly")
	// ErrNotConnected means there is no open connection to send on.
	ErrNotConnected = errors.New("websocket is not connected")
	// ErrConnectInProgress means another Connect call is already outstanding.
	// Callers treat it as a no-op, not a failure.
	ErrConnectInProgress = errors.New("connect already in progress")
)

// Handler receives demultiplexed steady-state events. All methods are invoked
// sequentially from the read loop, in frame arrival order.
type Handler interface {
	OnToken(text, source string)
	OnImageGenerated(imageURL, caption string, sceneID int)
	OnScenesUpdated(scenes []model.Scene)
	OnAudioGenerated(audioURL string)
	OnPageCreated(pageType, content, caption string)
	OnImageEditComplete(sceneID int, newImageURL string)
	OnStreamError(message string)
	OnEndOfTurn()
}

// Transport is the single persistent connection to the AI backend. It is
// exclusively owned by the session lifecycle controller; no other component
// opens a second connection.
type Transport struct {
	wsURL   string
	dialer  *websocket.Dialer
	logger  zerolog.Logger
	handler Handler

	mu         sync.Mutex
	conn       *websocket.Conn
	connecting bool
}

// New creates a transport dialing the given websocket URL.
func New(wsURL string, logger zerolog.Logger) *Transport {
	dialer := *websocket.DefaultDialer
	dialer.HandshakeTimeout = handshakeTimeout
	return &Transport{
		wsURL:  wsURL,
		dialer: &dialer,
		logger: logger.With().Str("component", "Transport").Logger(),
	}
}

// SetHandler installs the steady-state event handler. Must be called before
// Connect.
func (t *Transport) SetHandler(h Handler) {
	t.mu.Lock()
	t.handler = h
	t.mu.Unlock()
}

// IsConnected reports whether an open connection exists.
func (t *Transport) IsConnected() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.conn != nil
}

// Connect opens the channel, performs the session handshake and switches the
// connection into steady state. A remembered session id and auth token are
// attached as connection parameters when non-empty. A second Connect while one
// is outstanding returns ErrConnectInProgress and does nothing.
func (t *Transport) Connect(ctx context.Context, sessionID, authToken string) (string, error) {
	t.mu.Lock()
	if t.connecting {
		t.mu.Unlock()
		return "", ErrConnectInProgress
	}
	t.connecting = true
	t.mu.Unlock()
	defer func() {
		t.mu.Lock()
		t.connecting = false
		t.mu.Unlock()
	}()

	wsURL := t.wsURL
	params := url.Values{}
	if authToken != "" {
		params.Set("token", authToken)
	}
	if sessionID != "" {
		params.Set("session_id", sessionID)
	}
	if q := params.Encode(); q != "" {
		wsURL += "?" + q
	}

	conn, _, err := t.dialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		t.logger.Error().Err(err).Msg("Failed to open websocket connection")
		return "", errors.Join(ErrConnectionFailed, err)
	}
	t.logger.Info().Msg("Connection established, waiting for session ID")

	newSessionID, err := t.awaitSession(conn)
	if err != nil {
		_ = conn.Close()
		return "", err
	}
	t.logger.Info().Str("sessionID", newSessionID).Msg("Session confirmed")

	t.mu.Lock()
	if old := t.conn; old != nil {
		_ = old.Close()
	}
	t.conn = conn
	handler := t.handler
	t.mu.Unlock()

	go t.readLoop(conn, handler)
	return newSessionID, nil
}

// awaitSession reads frames until the session_created confirmation arrives.
// Frames that are malformed or of another type are ignored during this phase.
func (t *Transport) awaitSession(conn *websocket.Conn) (string, error) {
	deadline := time.Now().Add(handshakeTimeout)
	_ = conn.SetReadDeadline(deadline)
	defer func() { _ = conn.SetReadDeadline(time.Time{}) }()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				return "", ErrHandshakeTimeout
			}
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				t.logger.Warn().Err(err).Msg("Connection closed during handshake")
			}
			return "", errors.Join(ErrUnexpectedClose, err)
		}
		frame, err := protocol.Parse(raw)
		if err != nil {
			t.logger.Warn().Err(err).Msg("Dropping malformed frame during handshake")
			continue
		}
		if sc, ok := frame.(protocol.SessionCreated); ok {
			return sc.SessionID, nil
		}
	}
}

// readLoop is the steady-state demultiplexer. It runs until the connection
// closes; malformed frames are logged and dropped without breaking the
// ordering of subsequent frames.
func (t *Transport) readLoop(conn *websocket.Conn, handler Handler) {
	defer func() {
		t.mu.Lock()
		if t.conn == conn {
			t.conn = nil
		}
		t.mu.Unlock()
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			t.mu.Lock()
			stale := t.conn != conn
			t.mu.Unlock()
			switch {
			case stale:
				// Local disconnect discarded this connection already.
				t.logger.Info().Msg("Read loop finished after local disconnect")
			case websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway):
				t.logger.Warn().Err(err).Msg("Websocket read error")
			default:
				t.logger.Info().Msg("Websocket connection closed")
			}
			return
		}

		frame, err := protocol.Parse(raw)
		if err != nil {
			t.logger.Warn().Err(err).Msg("Dropping malformed frame")
			continue
		}
		t.dispatch(frame, handler)
	}
}

func (t *Transport) dispatch(frame protocol.Frame, handler Handler) {
	if handler == nil {
		return
	}
	switch f := frame.(type) {
	case protocol.Token:
		handler.OnToken(f.Text, f.Source)
	case protocol.ImageGenerated:
		handler.OnImageGenerated(f.ImageURL, f.Caption, f.SceneID)
	case protocol.ScenesUpdated:
		handler.OnScenesUpdated(f.Scenes)
	case protocol.AudioGenerated:
		handler.OnAudioGenerated(f.AudioURL)
	case protocol.PageCreated:
		handler.OnPageCreated(f.Type, f.Content, f.Caption)
	case protocol.ImageEditComplete:
		handler.OnImageEditComplete(f.SceneID, f.NewImageURL)
	case protocol.ErrorEvent:
		handler.OnStreamError(f.Message)
	case protocol.EndOfTurn:
		handler.OnEndOfTurn()
	case protocol.SessionCreated:
		// Duplicate confirmation after the handshake; nothing to do.
	case protocol.Unknown:
		t.logger.Debug().Str("event", f.Event).Msg("Ignoring unknown event")
	}
}

// Send transmits one client message on the open connection.
func (t *Transport) Send(msg protocol.ClientMessage) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.conn == nil {
		return ErrNotConnected
	}
	_ = t.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := t.conn.WriteJSON(msg); err != nil {
		return errors.Join(ErrNotConnected, err)
	}
	return nil
}

// Close performs an explicit local disconnect: the connection is closed
// cleanly and the read loop's resulting error is suppressed. Reconnection is
// never automatic; only a lifecycle action opens a new connection.
func (t *Transport) Close() {
	t.mu.Lock()
	conn := t.conn
	t.conn = nil
	t.mu.Unlock()
	if conn == nil {
		return
	}
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "client initiated disconnect")
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
	_ = conn.Close()
	t.logger.Info().Msg("Disconnected")
}
