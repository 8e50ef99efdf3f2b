package transport_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/burnhorn/LinkTale-frontend/internal/model"
	"github.com/burnhorn/LinkTale-frontend/internal/protocol"
	"github.com/burnhorn/LinkTale-frontend/internal/transport"
)

var upgrader = websocket.Upgrader{}

// wsURL rewrites an httptest server URL to the websocket scheme.
func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

type event struct {
	kind string
	text string
	id   int
}

// recordingHandler funnels every dispatched event into a channel so tests can
// assert on arrival order.
type recordingHandler struct {
	events chan event
}

func newRecordingHandler() *recordingHandler {
	return &recordingHandler{events: make(chan event, 32)}
}

func (h *recordingHandler) OnToken(text, source string) {
	h.events <- event{kind: "token", text: text}
}
func (h *recordingHandler) OnImageGenerated(imageURL, caption string, sceneID int) {
	h.events <- event{kind: "image", text: imageURL, id: sceneID}
}
func (h *recordingHandler) OnScenesUpdated(scenes []model.Scene) {
	h.events <- event{kind: "scenes", id: len(scenes)}
}
func (h *recordingHandler) OnAudioGenerated(audioURL string) {
	h.events <- event{kind: "audio", text: audioURL}
}
func (h *recordingHandler) OnPageCreated(pageType, content, caption string) {
	h.events <- event{kind: "page", text: content}
}
func (h *recordingHandler) OnImageEditComplete(sceneID int, newImageURL string) {
	h.events <- event{kind: "edit", text: newImageURL, id: sceneID}
}
func (h *recordingHandler) OnStreamError(message string) {
	h.events <- event{kind: "error", text: message}
}
func (h *recordingHandler) OnEndOfTurn() {
	h.events <- event{kind: "end"}
}

func (h *recordingHandler) next(t *testing.T) event {
	t.Helper()
	select {
	case ev := <-h.events:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a dispatched event")
		return event{}
	}
}

func TestConnect(t *testing.T) {
	t.Run("handshake resolves the session id", func(t *testing.T) {
		var query sync.Map
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			query.Store("token", r.URL.Query().Get("token"))
			query.Store("session_id", r.URL.Query().Get("session_id"))
			conn, err := upgrader.Upgrade(w, r, nil)
			require.NoError(t, err)
			defer conn.Close()
			require.NoError(t, conn.WriteMessage(websocket.TextMessage,
				[]byte(`{"event":"session_created","session_id":"abc"}`)))
			// Hold the connection open until the client hangs up.
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}))
		defer srv.Close()

		tr := transport.New(wsURL(srv), zerolog.Nop())
		tr.SetHandler(newRecordingHandler())

		sessionID, err := tr.Connect(context.Background(), "prev-session", "jwt-token")
		require.NoError(t, err)
		defer tr.Close()

		assert.Equal(t, "abc", sessionID)
		assert.True(t, tr.IsConnected())

		tok, _ := query.Load("token")
		assert.Equal(t, "jwt-token", tok)
		sid, _ := query.Load("session_id")
		assert.Equal(t, "prev-session", sid)
	})

	t.Run("frames before the confirmation are ignored", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			conn, err := upgrader.Upgrade(w, r, nil)
			require.NoError(t, err)
			defer conn.Close()
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`not json`))
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"event":"token","data":"early"}`))
			_ = conn.WriteMessage(websocket.TextMessage,
				[]byte(`{"event":"session_created","session_id":"late"}`))
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}))
		defer srv.Close()

		tr := transport.New(wsURL(srv), zerolog.Nop())
		tr.SetHandler(newRecordingHandler())

		sessionID, err := tr.Connect(context.Background(), "", "")
		require.NoError(t, err)
		defer tr.Close()
		assert.Equal(t, "late", sessionID)
	})

	t.Run("peer close before confirmation fails the handshake", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			conn, err := upgrader.Upgrade(w, r, nil)
			require.NoError(t, err)
			conn.Close()
		}))
		defer srv.Close()

		tr := transport.New(wsURL(srv), zerolog.Nop())
		_, err := tr.Connect(context.Background(), "", "")
		require.Error(t, err)
		assert.ErrorIs(t, err, transport.ErrUnexpectedClose)
		assert.False(t, tr.IsConnected())
	})

	t.Run("unreachable server fails the dial", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		tr := transport.New(wsURL(srv), zerolog.Nop())
		_, err := tr.Connect(context.Background(), "", "")
		assert.ErrorIs(t, err, transport.ErrConnectionFailed)
	})

	t.Run("second connect while one is outstanding is rejected", func(t *testing.T) {
		started := make(chan struct{})
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			conn, err := upgrader.Upgrade(w, r, nil)
			require.NoError(t, err)
			defer conn.Close()
			close(started)
			<-release
			_ = conn.WriteMessage(websocket.TextMessage,
				[]byte(`{"event":"session_created","session_id":"abc"}`))
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}))
		defer srv.Close()

		tr := transport.New(wsURL(srv), zerolog.Nop())

		done := make(chan error, 1)
		go func() {
			_, err := tr.Connect(context.Background(), "", "")
			done <- err
		}()

		// The first attempt holds the connecting guard until the server
		// releases the confirmation.
		<-started
		_, err := tr.Connect(context.Background(), "", "")
		assert.ErrorIs(t, err, transport.ErrConnectInProgress)

		close(release)
		require.NoError(t, <-done)
		tr.Close()
	})
}

func TestSteadyState(t *testing.T) {
	t.Run("frames dispatch in arrival order", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			conn, err := upgrader.Upgrade(w, r, nil)
			require.NoError(t, err)
			defer conn.Close()
			frames := []string{
				`{"event":"session_created","session_id":"abc"}`,
				`{"event":"token","data":{"text":"Once "}}`,
				`{"event":"token","data":{"text":"upon a time"}}`,
				`{"event":"image_generated","data":{"image_url":"u1","image_caption":"c","scene_id":42}}`,
				`{"event":"scenes_updated","data":{"scenes":[{"id":42}]}}`,
				`{"event":"end_of_turn"}`,
			}
			for _, f := range frames {
				_ = conn.WriteMessage(websocket.TextMessage, []byte(f))
			}
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}))
		defer srv.Close()

		h := newRecordingHandler()
		tr := transport.New(wsURL(srv), zerolog.Nop())
		tr.SetHandler(h)

		_, err := tr.Connect(context.Background(), "", "")
		require.NoError(t, err)
		defer tr.Close()

		assert.Equal(t, event{kind: "token", text: "Once "}, h.next(t))
		assert.Equal(t, event{kind: "token", text: "upon a time"}, h.next(t))
		assert.Equal(t, event{kind: "image", text: "u1", id: 42}, h.next(t))
		assert.Equal(t, event{kind: "scenes", id: 1}, h.next(t))
		assert.Equal(t, event{kind: "end"}, h.next(t))
	})

	t.Run("a malformed frame is dropped without breaking the stream", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			conn, err := upgrader.Upgrade(w, r, nil)
			require.NoError(t, err)
			defer conn.Close()
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"event":"session_created","session_id":"abc"}`))
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{{{`))
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"event":"end_of_turn"}`))
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}))
		defer srv.Close()

		h := newRecordingHandler()
		tr := transport.New(wsURL(srv), zerolog.Nop())
		tr.SetHandler(h)

		_, err := tr.Connect(context.Background(), "", "")
		require.NoError(t, err)
		defer tr.Close()

		assert.Equal(t, event{kind: "end"}, h.next(t))
	})
}

func TestSend(t *testing.T) {
	t.Run("delivers the client message", func(t *testing.T) {
		received := make(chan protocol.ClientMessage, 1)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			conn, err := upgrader.Upgrade(w, r, nil)
			require.NoError(t, err)
			defer conn.Close()
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"event":"session_created","session_id":"abc"}`))
			var msg protocol.ClientMessage
			if err := conn.ReadJSON(&msg); err == nil {
				received <- msg
			}
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}))
		defer srv.Close()

		tr := transport.New(wsURL(srv), zerolog.Nop())
		tr.SetHandler(newRecordingHandler())
		_, err := tr.Connect(context.Background(), "", "")
		require.NoError(t, err)
		defer tr.Close()

		require.NoError(t, tr.Send(protocol.ClientMessage{Content: "용 이야기", Action: "generate_audio"}))

		select {
		case msg := <-received:
			assert.Equal(t, "용 이야기", msg.Content)
			assert.Equal(t, "generate_audio", msg.Action)
		case <-time.After(2 * time.Second):
			t.Fatal("server never received the message")
		}
	})

	t.Run("send without a connection is rejected", func(t *testing.T) {
		tr := transport.New("ws://127.0.0.1:0", zerolog.Nop())
		err := tr.Send(protocol.ClientMessage{Content: "x"})
		assert.ErrorIs(t, err, transport.ErrNotConnected)
	})
}

func TestClose(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"event":"session_created","session_id":"abc"}`))
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	tr := transport.New(wsURL(srv), zerolog.Nop())
	tr.SetHandler(newRecordingHandler())
	_, err := tr.Connect(context.Background(), "", "")
	require.NoError(t, err)
	require.True(t, tr.IsConnected())

	tr.Close()
	assert.False(t, tr.IsConnected())
	assert.ErrorIs(t, tr.Send(protocol.ClientMessage{Content: "x"}), transport.ErrNotConnected)

	// A repeat close is a harmless no-op.
	tr.Close()
}
