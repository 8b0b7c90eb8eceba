// Package google wraps the Google GenAI SDK for image generation, speech
// synthesis, and image analysis.
package google

import (
	"context"

	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

const (
	DefaultImageModel  = "imagen-4.0-generate-001"
	DefaultSpeechModel = "gemini-2.5-flash-preview-tts"
	DefaultVisionModel = "gemini-2.5-flash"
	defaultImageMIME   = "image/png"
	defaultAnalyzeMIME = "image/jpeg"
)

// Client wraps the Google GenAI SDK.
type Client struct {
	client *genai.Client
	logger zerolog.Logger
}

// New creates a Google GenAI client with the given API key.
func New(ctx context.Context, apiKey string, opts ...ClientOption) (*Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	c := &Client{
		client: client,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ClientOption configures the Google client.
type ClientOption func(*Client)

// WithLogger sets the client logger.
func WithLogger(logger zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}
