package tools

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mediaforge/mediaforge"
	"github.com/mediaforge/mediaforge/fallback"
	"github.com/mediaforge/mediaforge/fetch"
	"github.com/mediaforge/mediaforge/storage"
	"github.com/mediaforge/mediaforge/validate"
)

// VideoService implements the create_video tool: validate, resolve a remote
// reference image if given, try candidate models in order, store the result.
type VideoService struct {
	generator VideoGenerator
	sink      storage.Sink
	fetcher   *fetch.Client
	models    []string
	logger    zerolog.Logger
}

// NewVideoService builds a video service. A nil fetcher gets a default with
// the reference-image size cap; empty models fall back to DefaultVideoModels.
func NewVideoService(generator VideoGenerator, sink storage.Sink, fetcher *fetch.Client, models []string, logger zerolog.Logger) *VideoService {
	if fetcher == nil {
		fetcher = fetch.New(fetch.WithMaxBytes(maxReferenceImageBytes))
	}
	if len(models) == 0 {
		models = DefaultVideoModels
	}
	return &VideoService{
		generator: generator,
		sink:      sink,
		fetcher:   fetcher,
		models:    models,
		logger:    logger,
	}
}

// Create runs the tool for raw parameters.
func (s *VideoService) Create(ctx context.Context, in validate.VideoInput) (*mediaforge.VideoResult, error) {
	req, err := validate.Video(in)
	if err != nil {
		return nil, err
	}

	if req.ImageURL != "" {
		if err := validate.CheckPublicURL(req.ImageURL); err != nil {
			return nil, err
		}
		content, mimeType, err := fetchAsBase64(ctx, s.fetcher, req.ImageURL, "image/jpeg")
		if err != nil {
			return nil, err
		}
		req.Image = &mediaforge.ReferenceImage{Base64: content, MIMEType: mimeType}
	}

	data, model, err := fallback.Run(ctx, s.logger, s.models, func(ctx context.Context, model string) ([]byte, error) {
		return s.generator.Generate(ctx, model, req)
	})
	if err != nil {
		return nil, err
	}

	saved, err := s.sink.Store(ctx, data, "mp4", hintOr(req.FilenameHint, "video"), "video/mp4")
	if err != nil {
		return nil, &mediaforge.StorageError{Err: err}
	}

	return &mediaforge.VideoResult{
		Prompt:      req.Prompt,
		Model:       model,
		AspectRatio: string(req.AspectRatio),
		Resolution:  string(req.Resolution),
		MIMEType:    "video/mp4",
		URL:         saved.URL,
		GSURI:       saved.GSURI,
	}, nil
}
