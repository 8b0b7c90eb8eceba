package tools

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediaforge/mediaforge"
	"github.com/mediaforge/mediaforge/retry"
	"github.com/mediaforge/mediaforge/validate"
)

type fakeSynthesizer struct {
	calls    []string
	failures int // leading calls that fail transiently
	lastReq  *mediaforge.SpeechRequest
}

func (f *fakeSynthesizer) Synthesize(ctx context.Context, model string, req *mediaforge.SpeechRequest) ([]byte, error) {
	f.calls = append(f.calls, model)
	f.lastReq = req
	if len(f.calls) <= f.failures {
		return nil, mediaforge.NewTransientError("overloaded", 503, nil)
	}
	return []byte("wav-bytes"), nil
}

func fastRetry() retry.Config {
	cfg := retry.DefaultConfig()
	cfg.InitialDelay = 0
	cfg.MaxDelay = 0
	return cfg
}

func TestSpeechCreateSuccess(t *testing.T) {
	synth := &fakeSynthesizer{}
	sink := &fakeSink{}
	svc := NewSpeechService(synth, sink, nil, fastRetry(), zerolog.Nop())

	res, err := svc.Create(context.Background(), validate.SpeechInput{Prompt: "hello there"})
	require.NoError(t, err)

	assert.Equal(t, "gemini-2.5-flash-preview-tts", res.Model)
	assert.Equal(t, "Kore", res.VoiceName)
	assert.False(t, res.MultiSpeaker)
	assert.Equal(t, "audio/wav", res.MIMEType)
	assert.Equal(t, "wav", sink.ext)
	assert.Equal(t, "speech", sink.hint)
}

func TestSpeechCreateRetriesBeforeFallingBack(t *testing.T) {
	// Two transient failures are absorbed by the retry budget of the first
	// candidate; the third attempt succeeds on the same model.
	synth := &fakeSynthesizer{failures: 2}
	svc := NewSpeechService(synth, &fakeSink{}, nil, fastRetry(), zerolog.Nop())

	res, err := svc.Create(context.Background(), validate.SpeechInput{Prompt: "p"})
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-flash-preview-tts", res.Model)
	assert.Equal(t, []string{
		"gemini-2.5-flash-preview-tts",
		"gemini-2.5-flash-preview-tts",
		"gemini-2.5-flash-preview-tts",
	}, synth.calls)
}

func TestSpeechCreateFallsBackAfterRetryExhaustion(t *testing.T) {
	synth := &fakeSynthesizer{failures: 3}
	svc := NewSpeechService(synth, &fakeSink{}, nil, fastRetry(), zerolog.Nop())

	res, err := svc.Create(context.Background(), validate.SpeechInput{Prompt: "p"})
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-pro-preview-tts", res.Model)
	assert.Len(t, synth.calls, 4)
}

func TestSpeechCreateMultiSpeaker(t *testing.T) {
	synth := &fakeSynthesizer{}
	svc := NewSpeechService(synth, &fakeSink{}, nil, fastRetry(), zerolog.Nop())

	res, err := svc.Create(context.Background(), validate.SpeechInput{
		Prompt:             "A: hi. B: hello.",
		MultiSpeakerConfig: `[{"speaker":"A","voice":"Kore"},{"speaker":"B","voice":"Puck"}]`,
	})
	require.NoError(t, err)
	assert.True(t, res.MultiSpeaker)
	require.NotNil(t, synth.lastReq)
	assert.Len(t, synth.lastReq.Speakers, 2)
}

func TestSpeechCreateRejectsEmptyPrompt(t *testing.T) {
	synth := &fakeSynthesizer{}
	svc := NewSpeechService(synth, &fakeSink{}, nil, fastRetry(), zerolog.Nop())

	_, err := svc.Create(context.Background(), validate.SpeechInput{Prompt: "   "})
	assert.True(t, mediaforge.IsInvalidArgument(err))
	assert.Empty(t, synth.calls)
}
