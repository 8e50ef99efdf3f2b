package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the full configuration for the LinkTale gateway and session client.
type Config struct {
	Server  ServerConfig
	Backend BackendConfig
	Auth    AuthConfig
	Log     LogConfig
}

// ServerConfig holds HTTP server settings for the gateway.
type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"8080"`
	AllowedOrigins  []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// BackendConfig holds addresses of the external AI backend services.
type BackendConfig struct {
	// ChatAPIBaseURL serves /history and /scenes (HTTP side of the chat backend).
	ChatAPIBaseURL string `envconfig:"CHAT_API_BASE_URL" required:"true"`
	// ExportAPIBaseURL serves /pdf and /audio/latest.
	ExportAPIBaseURL string `envconfig:"EXPORT_API_BASE_URL" required:"true"`
	// TokenAPIBaseURL serves /login and /register.
	TokenAPIBaseURL string `envconfig:"TOKEN_API_BASE_URL" required:"true"`
	// WSBaseURL is the websocket endpoint the session transport dials.
	WSBaseURL      string        `envconfig:"WS_BASE_URL" required:"true"`
	RequestTimeout time.Duration `envconfig:"BACKEND_REQUEST_TIMEOUT" default:"15s"`
	// UseMockData makes the gateway serve canned page data instead of
	// proxying the backend, for local development without a backend.
	UseMockData bool `envconfig:"USE_MOCK_DATA" default:"false"`
}

// AuthConfig holds token verification settings.
type AuthConfig struct {
	// JWTSecret enables bearer-token checks on admin routes when set.
	JWTSecret string `envconfig:"JWT_SECRET"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level    string `envconfig:"LOG_LEVEL" default:"info"`
	Encoding string `envconfig:"LOG_ENCODING" default:"json"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env config: %w", err)
	}
	return &cfg, nil
}
