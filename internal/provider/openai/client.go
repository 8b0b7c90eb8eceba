// Package openai wraps the OpenAI SDK for image generation.
package openai

import (
	"context"
	"encoding/base64"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/rs/zerolog"

	"github.com/mediaforge/mediaforge"
)

const DefaultImageModel = "gpt-image-1"

// Client wraps the OpenAI SDK.
type Client struct {
	client *openai.Client
	logger zerolog.Logger
}

// New creates an OpenAI client with the given API key.
func New(apiKey string, opts ...ClientOption) *Client {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	c := &Client{
		client: &client,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ClientOption configures the OpenAI client.
type ClientOption func(*Client)

// WithLogger sets the client logger.
func WithLogger(logger zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// GenerateImage produces an image for the request using the given model.
// OpenAI models take pixel dimensions rather than an aspect ratio, so the
// requested ratio maps to the closest supported size. The image size knob has
// no OpenAI equivalent and is ignored.
func (c *Client) GenerateImage(ctx context.Context, model string, req *mediaforge.ImageRequest) (*mediaforge.Artifact, error) {
	params := openai.ImageGenerateParams{
		Model:  openai.ImageModel(model),
		Prompt: req.Prompt,
		Size:   openai.ImageGenerateParamsSize(pixelSize(model, req.AspectRatio)),
		N:      openai.Int(1),
	}
	// gpt-image-1 always returns base64; dall-e-3 needs it requested.
	if !strings.HasPrefix(model, "gpt-image") {
		params.ResponseFormat = openai.ImageGenerateParamsResponseFormatB64JSON
	}

	resp, err := c.client.Images.Generate(ctx, params)
	if err != nil {
		return nil, wrapError(err)
	}

	for _, img := range resp.Data {
		if img.B64JSON == "" {
			continue
		}
		data, err := base64.StdEncoding.DecodeString(img.B64JSON)
		if err != nil {
			return nil, &mediaforge.MalformedResponseError{What: "image payload is not valid base64"}
		}
		return &mediaforge.Artifact{Data: data, MIMEType: "image/png"}, nil
	}
	return nil, &mediaforge.MalformedResponseError{What: "image response contained no data"}
}

// pixelSize maps an aspect ratio to the nearest size the model supports.
func pixelSize(model string, aspect mediaforge.AspectRatio) string {
	landscape, portrait := "1536x1024", "1024x1536"
	if strings.HasPrefix(model, "dall-e") {
		landscape, portrait = "1792x1024", "1024x1792"
	}
	switch aspect {
	case mediaforge.AspectRatio16x9, mediaforge.AspectRatio4x3:
		return landscape
	case mediaforge.AspectRatio9x16, mediaforge.AspectRatio3x4:
		return portrait
	default:
		return "1024x1024"
	}
}
