package tools

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mediaforge/mediaforge"
	"github.com/mediaforge/mediaforge/fallback"
	"github.com/mediaforge/mediaforge/fetch"
	"github.com/mediaforge/mediaforge/validate"
)

// AnalyzeService implements the analyze_image tool. Candidates are routed to
// the Google or Anthropic analyzer by model name; a nil Anthropic analyzer
// skips its candidates.
type AnalyzeService struct {
	google    VisionAnalyzer
	anthropic VisionAnalyzer
	fetcher   *fetch.Client
	models    []string
	logger    zerolog.Logger
}

// NewAnalyzeService builds an analyze service. A nil fetcher gets a default
// with the reference-image size cap; empty models fall back to
// DefaultAnalyzeModels.
func NewAnalyzeService(google, anthropic VisionAnalyzer, fetcher *fetch.Client, models []string, logger zerolog.Logger) *AnalyzeService {
	if fetcher == nil {
		fetcher = fetch.New(fetch.WithMaxBytes(maxReferenceImageBytes))
	}
	if len(models) == 0 {
		models = DefaultAnalyzeModels
	}
	return &AnalyzeService{
		google:    google,
		anthropic: anthropic,
		fetcher:   fetcher,
		models:    models,
		logger:    logger,
	}
}

// Create runs the tool for raw parameters.
func (s *AnalyzeService) Create(ctx context.Context, in validate.AnalyzeInput) (*mediaforge.AnalyzeResult, error) {
	req, err := validate.Analyze(in)
	if err != nil {
		return nil, err
	}

	source := "<base64>"
	if req.ImageURL != "" {
		source = req.ImageURL
		content, mimeType, err := fetchAsBase64(ctx, s.fetcher, req.ImageURL, req.MIMEType)
		if err != nil {
			return nil, err
		}
		req.ImageBase64 = content
		req.MIMEType = mimeType
	}

	analysis, model, err := fallback.Run(ctx, s.logger, s.models, func(ctx context.Context, model string) (string, error) {
		analyzer := s.google
		if isClaudeModel(model) {
			analyzer = s.anthropic
		}
		if analyzer == nil {
			return "", fmt.Errorf("no provider configured for model %s", model)
		}
		return analyzer.Analyze(ctx, model, req)
	})
	if err != nil {
		return nil, err
	}

	return &mediaforge.AnalyzeResult{
		Prompt:   req.Prompt,
		Model:    model,
		Analysis: analysis,
		ImageURL: source,
		MIMEType: req.MIMEType,
	}, nil
}
