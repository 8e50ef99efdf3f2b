// Package client talks to the HTTP side of the LinkTale backends: history and
// scene endpoints of the chat backend, the export backend (audio, PDF) and the
// token backend (login, register).
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/burnhorn/LinkTale-frontend/internal/model"
)

// ErrHistoryFetch marks a non-2xx response from the history endpoint.
var ErrHistoryFetch = errors.New("failed to fetch history")

// StatusError carries the backend's status code and error detail.
type StatusError struct {
	Code   int
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend returned %d: %s", e.Code, e.Detail)
	}
	return fmt.Sprintf("backend returned %d", e.Code)
}

// Config holds the backend base URLs for the client.
type Config struct {
	ChatBaseURL   string
	ExportBaseURL string
	TokenBaseURL  string
	Timeout       time.Duration
}

// Client is the HTTP collaborator set of the session core.
type Client struct {
	chatBaseURL   string
	exportBaseURL string
	tokenBaseURL  string
	httpClient    *http.Client
	logger        *zap.Logger
}

// New validates the base URLs and builds a client.
func New(cfg Config, logger *zap.Logger) (*Client, error) {
	for _, base := range []string{cfg.ChatBaseURL, cfg.ExportBaseURL, cfg.TokenBaseURL} {
		if _, err := url.ParseRequestURI(base); err != nil {
			return nil, fmt.Errorf("invalid backend base URL %q: %w", base, err)
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		chatBaseURL:   cfg.ChatBaseURL,
		exportBaseURL: cfg.ExportBaseURL,
		tokenBaseURL:  cfg.TokenBaseURL,
		httpClient:    &http.Client{Timeout: timeout},
		logger:        logger.Named("BackendClient"),
	}, nil
}

// History fetches the persisted logs and scenes of a session.
func (c *Client) History(ctx context.Context, sessionID, authToken string) (*model.HistoryResponse, error) {
	historyURL := fmt.Sprintf("%s/history/%s", c.chatBaseURL, url.PathEscape(sessionID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, historyURL, nil)
	if err != nil {
		return nil, fmt.Errorf("internal error creating request: %w", err)
	}
	setBearer(req, authToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHistoryFetch, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %w", ErrHistoryFetch, &StatusError{Code: resp.StatusCode})
	}

	var history model.HistoryResponse
	if err := json.NewDecoder(resp.Body).Decode(&history); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %w", ErrHistoryFetch, err)
	}
	return &history, nil
}

// LatestAudio fetches the most recent audio drama URL for a session.
func (c *Client) LatestAudio(ctx context.Context, sessionID, authToken string) (string, error) {
	audioURL := fmt.Sprintf("%s/audio/latest/%s", c.exportBaseURL, url.PathEscape(sessionID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, audioURL, nil)
	if err != nil {
		return "", fmt.Errorf("internal error creating request: %w", err)
	}
	setBearer(req, authToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch latest audio: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{Code: resp.StatusCode, Detail: readDetail(resp.Body)}
	}

	var body struct {
		AudioURL string `json:"audio_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decoding audio response: %w", err)
	}
	return body.AudioURL, nil
}

// UpdateSceneImage uploads a replacement illustration for a persisted scene.
// The backend accepts the edit asynchronously with 202.
func (c *Client) UpdateSceneImage(ctx context.Context, sceneID int, filename string, image io.Reader, authToken string) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", filename)
	if err != nil {
		return fmt.Errorf("internal error building multipart body: %w", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return fmt.Errorf("reading image: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("internal error building multipart body: %w", err)
	}

	editURL := fmt.Sprintf("%s/scenes/%d/image", c.chatBaseURL, sceneID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, editURL, &buf)
	if err != nil {
		return fmt.Errorf("internal error creating request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	setBearer(req, authToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to upload scene image: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusAccepted {
		return &StatusError{Code: resp.StatusCode, Detail: readDetail(resp.Body)}
	}
	return nil
}

// TokenResponse is the body of a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login exchanges credentials for an access token. The token backend expects
// multipart form fields, matching the original OAuth2 password flow.
func (c *Client) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("username", email)
	_ = mw.WriteField("password", password)
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("internal error building form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenBaseURL+"/login", &buf)
	if err != nil {
		return nil, fmt.Errorf("internal error creating request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode, Detail: readDetail(resp.Body)}
	}

	var token TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return nil, fmt.Errorf("decoding login response: %w", err)
	}
	return &token, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, username, email, password string) error {
	payload, err := json.Marshal(map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
	if err != nil {
		return fmt.Errorf("internal error marshalling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenBaseURL+"/register", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("internal error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("register request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return &StatusError{Code: resp.StatusCode, Detail: readDetail(resp.Body)}
	}
	return nil
}

// ExportPDF streams the rendered storybook PDF for a session. Rendering
// happens on the export backend; the caller owns the returned body.
func (c *Client) ExportPDF(ctx context.Context, sessionID string) (io.ReadCloser, error) {
	pdfURL := fmt.Sprintf("%s/pdf/%s", c.exportBaseURL, url.PathEscape(sessionID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pdfURL, nil)
	if err != nil {
		return nil, fmt.Errorf("internal error creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pdf export request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		detail := readDetail(resp.Body)
		resp.Body.Close()
		return nil, &StatusError{Code: resp.StatusCode, Detail: detail}
	}
	return resp.Body, nil
}

func setBearer(req *http.Request, token string) {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// readDetail extracts the backend's error detail from a response body: the
// "detail" field of a JSON error, or up to 512 bytes of raw text.
func readDetail(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 512))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var parsed struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &parsed); err == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return string(raw)
}
