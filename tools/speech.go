package tools

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mediaforge/mediaforge"
	"github.com/mediaforge/mediaforge/fallback"
	"github.com/mediaforge/mediaforge/retry"
	"github.com/mediaforge/mediaforge/storage"
	"github.com/mediaforge/mediaforge/validate"
)

// SpeechService implements the text_to_speech tool. Each candidate model is
// retried on transient failures before the next one is tried.
type SpeechService struct {
	synth    SpeechSynthesizer
	sink     storage.Sink
	models   []string
	retryCfg retry.Config
	logger   zerolog.Logger
}

// NewSpeechService builds a speech service. Empty models fall back to
// DefaultSpeechModels; a zero retry config gets retry.DefaultConfig.
func NewSpeechService(synth SpeechSynthesizer, sink storage.Sink, models []string, retryCfg retry.Config, logger zerolog.Logger) *SpeechService {
	if len(models) == 0 {
		models = DefaultSpeechModels
	}
	if retryCfg.MaxAttempts == 0 {
		retryCfg = retry.DefaultConfig()
	}
	return &SpeechService{
		synth:    synth,
		sink:     sink,
		models:   models,
		retryCfg: retryCfg,
		logger:   logger,
	}
}

// Create runs the tool for raw parameters.
func (s *SpeechService) Create(ctx context.Context, in validate.SpeechInput) (*mediaforge.SpeechResult, error) {
	req, err := validate.Speech(in)
	if err != nil {
		return nil, err
	}

	audio, model, err := fallback.Run(ctx, s.logger, s.models, func(ctx context.Context, model string) ([]byte, error) {
		return retry.Do(ctx, s.retryCfg, func() ([]byte, error) {
			return s.synth.Synthesize(ctx, model, req)
		})
	})
	if err != nil {
		return nil, err
	}

	saved, err := s.sink.Store(ctx, audio, "wav", hintOr(req.FilenameHint, "speech"), "audio/wav")
	if err != nil {
		return nil, &mediaforge.StorageError{Err: err}
	}

	return &mediaforge.SpeechResult{
		Prompt:       req.Prompt,
		Model:        model,
		VoiceName:    req.Voice,
		MultiSpeaker: len(req.Speakers) > 0,
		MIMEType:     "audio/wav",
		URL:          saved.URL,
		GSURI:        saved.GSURI,
	}, nil
}
