// Package anthropic wraps the Anthropic SDK for image analysis.
package anthropic

import (
	"context"
	"errors"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rs/zerolog"

	"github.com/mediaforge/mediaforge"
)

const DefaultVisionModel = "claude-sonnet-4-5"

const defaultMaxTokens = 4096

// Client wraps the Anthropic SDK.
type Client struct {
	client *anthropic.Client
	logger zerolog.Logger
}

// New creates an Anthropic client with the given API key.
func New(apiKey string, opts ...ClientOption) *Client {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	c := &Client{
		client: &client,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ClientOption configures the Anthropic client.
type ClientOption func(*Client)

// WithLogger sets the client logger.
func WithLogger(logger zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// Analyze answers a prompt about a base64-encoded image.
func (c *Client) Analyze(ctx context.Context, model string, req *mediaforge.AnalyzeRequest) (string, error) {
	mediaType := req.MIMEType
	if mediaType == "" {
		mediaType = "image/jpeg"
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: defaultMaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewImageBlockBase64(mediaType, req.ImageBase64),
				anthropic.NewTextBlock(req.Prompt),
			),
		},
	}

	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", wrapError(err)
	}

	var text string
	for _, block := range resp.Content {
		text += block.Text
	}
	if text == "" {
		return "", &mediaforge.MalformedResponseError{What: "analysis response contained no text"}
	}
	return text, nil
}

// wrapError categorizes an Anthropic SDK error by its HTTP status code.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *anthropic.Error
	if !errors.As(err, &apiErr) {
		return err
	}

	code := apiErr.StatusCode
	msg := err.Error()

	switch {
	case code == 429 || code == 529 || (code >= 500 && code < 600):
		return mediaforge.NewTransientError(msg, code, err)
	case code == 400 || code == 404 || code == 422:
		return mediaforge.NewUserInputError(msg, code, err)
	default:
		return mediaforge.NewPermanentError(msg, code, err)
	}
}
