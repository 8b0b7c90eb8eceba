package main

import (
	"fmt"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds the server configuration loaded from environment variables.
type Config struct {
	// API keys
	GeminiAPIKey    string `env:"GEMINI_API_KEY" env-default:""`
	OpenAIAPIKey    string `env:"OPENAI_API_KEY" env-default:""`
	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY" env-default:""`
	MCPAPIKey       string `env:"MCP_API_KEY" env-default:"sk-1234"`

	// Server binding
	Host      string `env:"MCP_HOST" env-default:"0.0.0.0"`
	Port      int    `env:"MCP_PORT" env-default:"8000"`
	Transport string `env:"MCP_TRANSPORT" env-default:"streamable-http"`

	LogLevel string `env:"LOG_LEVEL" env-default:"info"`

	// Storage
	StaticDir      string `env:"STATIC_DIR" env-default:"static"`
	BaseURL        string `env:"BASE_URL" env-default:""`
	StorageBackend string `env:"STORAGE_BACKEND" env-default:"auto"`
	GCSBucket      string `env:"GCS_BUCKET" env-default:""`
	GCSPrefix      string `env:"GCS_PREFIX" env-default:""`
	GCSPublicRead  bool   `env:"GCS_PUBLIC_READ" env-default:"false"`

	// Backward-compat aliases
	LegacyHost      string `env:"HOST" env-default:""`
	LegacyPort      int    `env:"PORT" env-default:"0"`
	LegacyGoogleKey string `env:"GOOGLE_API_KEY" env-default:""`
}

// LoadConfig reads configuration from a .env file (if present) and the
// environment, then resolves the legacy aliases and the default base URL.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if cfg.LegacyHost != "" {
		cfg.Host = cfg.LegacyHost
	}
	if cfg.LegacyPort != 0 {
		cfg.Port = cfg.LegacyPort
	}
	if cfg.GeminiAPIKey == "" && cfg.LegacyGoogleKey != "" {
		cfg.GeminiAPIKey = cfg.LegacyGoogleKey
	}

	if cfg.BaseURL == "" {
		host := cfg.Host
		if host == "0.0.0.0" || host == "::" {
			host = "localhost"
		}
		cfg.BaseURL = fmt.Sprintf("http://%s:%d", host, cfg.Port)
	}

	return cfg, nil
}

// NormalizedTransport canonicalizes the transport name.
func (c *Config) NormalizedTransport() string {
	t := strings.ToLower(strings.TrimSpace(c.Transport))
	t = strings.ReplaceAll(t, "_", "-")
	if t == "" {
		return "streamable-http"
	}
	return t
}

// Addr is the host:port the HTTP transport binds to.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
