// Package mcp exposes the media tools over the Model Context Protocol using
// mark3labs/mcp-go, with stdio and streamable HTTP transports.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mediaforge/mediaforge/tools"
	"github.com/mediaforge/mediaforge/validate"
)

// Services holds the tool services exposed by the server. Nil services are
// not registered.
type Services struct {
	Video   *tools.VideoService
	Image   *tools.ImageService
	Speech  *tools.SpeechService
	Analyze *tools.AnalyzeService
}

// ServerOption configures the MCP server identity.
type ServerOption func(*serverConfig)

type serverConfig struct {
	name    string
	version string
}

// WithName sets the server name reported to MCP clients.
func WithName(name string) ServerOption {
	return func(c *serverConfig) {
		c.name = name
	}
}

// WithVersion sets the server version reported to MCP clients.
func WithVersion(version string) ServerOption {
	return func(c *serverConfig) {
		c.version = version
	}
}

// NewServer creates an MCP server with the four media tools registered.
func NewServer(svcs Services, opts ...ServerOption) *server.MCPServer {
	cfg := &serverConfig{
		name:    "mediaforge",
		version: "1.0.0",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	s := server.NewMCPServer(
		cfg.name,
		cfg.version,
		server.WithToolCapabilities(true),
	)

	if svcs.Video != nil {
		s.AddTool(
			mcp.NewToolWithRawSchema("create_video", "Generate a video from a text prompt, optionally guided by a reference image.", createVideoSchema),
			handle(func(ctx context.Context, p videoParams) (any, error) {
				return svcs.Video.Create(ctx, validate.VideoInput{
					Prompt:         p.Prompt,
					NegativePrompt: p.NegativePrompt,
					AspectRatio:    p.AspectRatio,
					Resolution:     p.Resolution,
					ImageURL:       p.ImageURL,
					ImageBase64:    p.ImageBase64,
					ImageMIMEType:  p.ImageMIMEType,
					FilenameHint:   p.FilenameHint,
				})
			}),
		)
	}

	if svcs.Image != nil {
		s.AddTool(
			mcp.NewToolWithRawSchema("create_visualization", "Generate an image from a text prompt.", createVisualizationSchema),
			handle(func(ctx context.Context, p imageParams) (any, error) {
				return svcs.Image.Create(ctx, validate.ImageInput{
					Prompt:       p.Prompt,
					AspectRatio:  p.AspectRatio,
					ImageSize:    p.ImageSize,
					FilenameHint: p.FilenameHint,
				})
			}),
		)
	}

	if svcs.Speech != nil {
		s.AddTool(
			mcp.NewToolWithRawSchema("text_to_speech", "Synthesize speech audio from text, with optional multi-speaker voices.", textToSpeechSchema),
			handle(func(ctx context.Context, p speechParams) (any, error) {
				return svcs.Speech.Create(ctx, validate.SpeechInput{
					Prompt:             p.Prompt,
					VoiceName:          p.VoiceName,
					MultiSpeakerConfig: p.MultiSpeakerConfig.raw,
					FilenameHint:       p.FilenameHint,
				})
			}),
		)
	}

	if svcs.Analyze != nil {
		s.AddTool(
			mcp.NewToolWithRawSchema("analyze_image", "Answer a prompt about an image given by URL or inline base64.", analyzeImageSchema),
			handle(func(ctx context.Context, p analyzeParams) (any, error) {
				return svcs.Analyze.Create(ctx, validate.AnalyzeInput{
					Prompt:      p.Prompt,
					ImageURL:    p.ImageURL,
					ImageBase64: p.ImageBase64,
					MIMEType:    p.MIMEType,
				})
			}),
		)
	}

	return s
}

// ServeStdio serves the tools over stdin/stdout.
func ServeStdio(svcs Services, opts ...ServerOption) error {
	return server.ServeStdio(NewServer(svcs, opts...))
}

// HTTPHandler wraps the server in the streamable HTTP transport for mounting
// on a router.
func HTTPHandler(s *server.MCPServer) http.Handler {
	return server.NewStreamableHTTPServer(s)
}

type videoParams struct {
	Prompt         string `json:"prompt"`
	NegativePrompt string `json:"negative_prompt"`
	AspectRatio    string `json:"aspect_ratio"`
	Resolution     string `json:"resolution"`
	ImageURL       string `json:"image_url"`
	ImageBase64    string `json:"image_base64"`
	ImageMIMEType  string `json:"image_mime_type"`
	FilenameHint   string `json:"filename_hint"`
}

type imageParams struct {
	Prompt       string `json:"prompt"`
	AspectRatio  string `json:"aspect_ratio"`
	ImageSize    string `json:"image_size"`
	FilenameHint string `json:"filename_hint"`
}

type speechParams struct {
	Prompt             string     `json:"prompt"`
	VoiceName          string     `json:"voice_name"`
	MultiSpeakerConfig jsonString `json:"multi_speaker_config"`
	FilenameHint       string     `json:"filename_hint"`
}

type analyzeParams struct {
	Prompt      string `json:"prompt"`
	ImageURL    string `json:"image_url"`
	ImageBase64 string `json:"image_base64"`
	MIMEType    string `json:"mime_type"`
}

// jsonString accepts either a JSON string or an inline JSON value and keeps
// the raw text. Clients have historically sent multi_speaker_config both ways.
type jsonString struct {
	raw string
}

func (j *jsonString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		j.raw = s
		return nil
	}
	j.raw = string(data)
	return nil
}

// handle decodes tool arguments into P and renders the service result as
// JSON. Service errors become tool errors, not protocol errors.
func handle[P any](fn func(ctx context.Context, params P) (any, error)) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var params P
		if args := req.GetArguments(); args != nil {
			data, err := json.Marshal(args)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
			}
			if err := json.Unmarshal(data, &params); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
			}
		}

		result, err := fn(ctx, params)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		out, err := json.Marshal(result)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", err)), nil
		}
		return mcp.NewToolResultText(string(out)), nil
	}
}
