// Package tools implements the four generative-media tools. Each service
// wires validation, model fallback, provider calls, payload fetching, and a
// storage sink into one operation returning a structured result.
package tools

import (
	"context"
	"encoding/base64"
	"strings"

	"github.com/mediaforge/mediaforge"
	"github.com/mediaforge/mediaforge/fetch"
)

// Default candidate model lists, tried in order.
var (
	DefaultVideoModels = []string{
		"veo-3.0-generate-001",
		"veo-3.0-fast-generate-001",
		"veo-3.1-generate-001",
		"veo-3.1-fast-generate-001",
		"veo-3.1-generate-preview",
	}
	DefaultImageModels = []string{
		"imagen-4.0-generate-001",
		"gemini-2.5-flash-image",
		"gpt-image-1",
		"dall-e-3",
	}
	DefaultSpeechModels = []string{
		"gemini-2.5-flash-preview-tts",
		"gemini-2.5-pro-preview-tts",
	}
	DefaultAnalyzeModels = []string{
		"gemini-2.5-flash",
		"claude-sonnet-4-5",
	}
)

// Reference image downloads are capped well below provider payload limits.
const maxReferenceImageBytes = 20 << 20

// VideoGenerator runs one video candidate end to end and returns the bytes.
type VideoGenerator interface {
	Generate(ctx context.Context, model string, req *mediaforge.VideoRequest) ([]byte, error)
}

// ImageGenerator produces a single image for a validated request.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, model string, req *mediaforge.ImageRequest) (*mediaforge.Artifact, error)
}

// SpeechSynthesizer renders speech audio for a validated request.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, model string, req *mediaforge.SpeechRequest) ([]byte, error)
}

// VisionAnalyzer answers a prompt about a base64-encoded image.
type VisionAnalyzer interface {
	Analyze(ctx context.Context, model string, req *mediaforge.AnalyzeRequest) (string, error)
}

// isOpenAIImageModel routes image candidates between the two providers.
func isOpenAIImageModel(model string) bool {
	return strings.HasPrefix(model, "gpt-image") || strings.HasPrefix(model, "dall-e")
}

// isClaudeModel routes analyze candidates between the two providers.
func isClaudeModel(model string) bool {
	return strings.HasPrefix(model, "claude-")
}

// fetchAsBase64 downloads a remote image and returns its base64 content and
// media type.
func fetchAsBase64(ctx context.Context, fetcher *fetch.Client, url, fallbackMIME string) (string, string, error) {
	data, contentType, err := fetcher.Download(ctx, url)
	if err != nil {
		return "", "", err
	}
	mimeType := fallbackMIME
	ct, _, _ := strings.Cut(contentType, ";")
	ct = strings.TrimSpace(ct)
	if strings.HasPrefix(ct, "image/") {
		mimeType = ct
	}
	return base64.StdEncoding.EncodeToString(data), mimeType, nil
}

// extensionForMIME picks a filename extension for a stored artifact.
func extensionForMIME(mimeType string) string {
	switch mimeType {
	case "image/png":
		return "png"
	case "image/jpeg":
		return "jpg"
	case "image/webp":
		return "webp"
	case "video/mp4":
		return "mp4"
	case "audio/wav":
		return "wav"
	default:
		return "bin"
	}
}

func hintOr(hint, fallback string) string {
	if strings.TrimSpace(hint) != "" {
		return hint
	}
	return fallback
}
