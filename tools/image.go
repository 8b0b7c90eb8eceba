package tools

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mediaforge/mediaforge"
	"github.com/mediaforge/mediaforge/fallback"
	"github.com/mediaforge/mediaforge/storage"
	"github.com/mediaforge/mediaforge/validate"
)

// ImageService implements the create_visualization tool. Candidates are
// routed to the Google or OpenAI generator by model name; a nil OpenAI
// generator skips its candidates.
type ImageService struct {
	google ImageGenerator
	openai ImageGenerator
	sink   storage.Sink
	models []string
	logger zerolog.Logger
}

// NewImageService builds an image service. Empty models fall back to
// DefaultImageModels.
func NewImageService(google, openai ImageGenerator, sink storage.Sink, models []string, logger zerolog.Logger) *ImageService {
	if len(models) == 0 {
		models = DefaultImageModels
	}
	return &ImageService{
		google: google,
		openai: openai,
		sink:   sink,
		models: models,
		logger: logger,
	}
}

// Create runs the tool for raw parameters.
func (s *ImageService) Create(ctx context.Context, in validate.ImageInput) (*mediaforge.ImageResult, error) {
	req, err := validate.Image(in)
	if err != nil {
		return nil, err
	}

	img, model, err := fallback.Run(ctx, s.logger, s.models, func(ctx context.Context, model string) (*mediaforge.Artifact, error) {
		gen := s.google
		if isOpenAIImageModel(model) {
			gen = s.openai
		}
		if gen == nil {
			return nil, fmt.Errorf("no provider configured for model %s", model)
		}
		return gen.GenerateImage(ctx, model, req)
	})
	if err != nil {
		return nil, err
	}

	ext := extensionForMIME(img.MIMEType)
	saved, err := s.sink.Store(ctx, img.Data, ext, hintOr(req.FilenameHint, "image"), img.MIMEType)
	if err != nil {
		return nil, &mediaforge.StorageError{Err: err}
	}

	return &mediaforge.ImageResult{
		Prompt:      req.Prompt,
		Model:       model,
		AspectRatio: string(req.AspectRatio),
		ImageSize:   string(req.Size),
		MIMEType:    img.MIMEType,
		URL:         saved.URL,
		GSURI:       saved.GSURI,
	}, nil
}
