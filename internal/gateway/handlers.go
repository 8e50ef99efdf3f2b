// Package gateway is the thin backend-for-frontend: it proxies the chat
// backend, looks up audio assets and serves the page-data endpoints the web
// app loads its dashboards from.
package gateway

import (
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/burnhorn/LinkTale-frontend/internal/mockdata"
)

// Handlers holds the gateway's route handlers.
type Handlers struct {
	backendURL *url.URL
	useMock    bool
	httpClient *http.Client
	logger     *zap.Logger
}

// NewHandlers builds the handler set. backendBaseURL is the private backend
// the gateway fronts.
func NewHandlers(backendBaseURL string, useMock bool, httpClient *http.Client, logger *zap.Logger) (*Handlers, error) {
	parsed, err := url.Parse(backendBaseURL)
	if err != nil {
		return nil, err
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		backendURL: parsed,
		useMock:    useMock,
		httpClient: httpClient,
		logger:     logger.Named("Gateway"),
	}, nil
}

// ChatProxy forwards /chat/* requests verbatim to the backend, streaming both
// directions. The frontend never talks to the private backend directly.
func (h *Handlers) ChatProxy() gin.HandlerFunc {
	proxy := httputil.NewSingleHostReverseProxy(h.backendURL)
	director := proxy.Director
	proxy.Director = func(req *http.Request) {
		director(req)
		req.Host = h.backendURL.Host
	}
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		h.logger.Error("Chat proxy error", zap.String("path", r.URL.Path), zap.Error(err))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"detail":"Bad Gateway"}`))
	}
	return func(c *gin.Context) {
		proxy.ServeHTTP(c.Writer, c.Request)
	}
}

// LatestAudio proxies GET /api/audio/latest/:sessionId to the backend's
// /chat/audio/latest endpoint, passing the caller's Authorization header
// through and relaying error bodies as-is.
func (h *Handlers) LatestAudio(c *gin.Context) {
	sessionID := c.Param("sessionId")
	backendURL := h.backendURL.JoinPath("chat", "audio", "latest", sessionID)

	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, backendURL.String(), nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal Server Error"})
		return
	}
	if auth := c.GetHeader("Authorization"); auth != "" {
		req.Header.Set("Authorization", auth)
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		h.logger.Error("Failed to fetch latest audio", zap.String("sessionID", sessionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal Server Error"})
		return
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/json"
	}
	c.DataFromReader(resp.StatusCode, resp.ContentLength, contentType, resp.Body, nil)
}

// Page-data endpoints. Each serves its canned payload in mock mode and
// proxies the backend path otherwise.

func (h *Handlers) AdminDashboard(c *gin.Context) {
	h.pageData(c, "/api/v1/admin/dashboard", mockdata.Dashboard)
}

func (h *Handlers) AdminUsers(c *gin.Context) {
	h.pageData(c, "/api/v1/admin/users", mockdata.Users)
}

func (h *Handlers) AdminContent(c *gin.Context) {
	h.pageData(c, "/api/v1/admin/content", mockdata.Content)
}

func (h *Handlers) AdminRevenue(c *gin.Context) {
	h.pageData(c, "/api/v1/admin/revenue", mockdata.Revenue)
}

func (h *Handlers) AppBookshelf(c *gin.Context) {
	h.pageData(c, "/api/v1/app/bookshelf", gin.H{"books": mockdata.BookshelfBooks})
}

func (h *Handlers) AppPricing(c *gin.Context) {
	h.pageData(c, "/api/v1/app/pricing", gin.H{"plans": mockdata.Plans, "faqs": mockdata.FAQs})
}

func (h *Handlers) AppAdventure(c *gin.Context) {
	h.pageData(c, "/api/v1/app/adventure", gin.H{"books": mockdata.AdventureBooks})
}

func (h *Handlers) AppEncyclopedia(c *gin.Context) {
	h.pageData(c, "/api/v1/app/encyclopedia", gin.H{"items": mockdata.EncyclopediaItems})
}

func (h *Handlers) pageData(c *gin.Context, backendPath string, mock any) {
	if h.useMock {
		c.JSON(http.StatusOK, mock)
		return
	}

	backendURL := h.backendURL.JoinPath(strings.Split(strings.TrimPrefix(backendPath, "/"), "/")...)
	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, backendURL.String(), nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal Server Error"})
		return
	}
	if auth := c.GetHeader("Authorization"); auth != "" {
		req.Header.Set("Authorization", auth)
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		h.logger.Error("Failed to fetch page data", zap.String("path", backendPath), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"detail": "Bad Gateway"})
		return
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/json"
	}
	c.DataFromReader(resp.StatusCode, resp.ContentLength, contentType, resp.Body, nil)
}
