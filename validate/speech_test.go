package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediaforge/mediaforge"
)

func TestSpeechDefaults(t *testing.T) {
	req, err := Speech(SpeechInput{Prompt: "Hello there"})

	require.NoError(t, err)
	assert.Equal(t, "Kore", req.Voice)
	assert.Empty(t, req.Speakers)
}

func TestSpeechEmptyPrompt(t *testing.T) {
	_, err := Speech(SpeechInput{Prompt: " "})

	assert.True(t, mediaforge.IsInvalidArgument(err))
}

func TestSpeechMultiSpeaker(t *testing.T) {
	req, err := Speech(SpeechInput{
		Prompt:             "Alice: hi\nBob: hello",
		MultiSpeakerConfig: `[{"speaker":"Alice","voice":"Kore"},{"speaker":"Bob","voice":"Puck"}]`,
	})

	require.NoError(t, err)
	require.Len(t, req.Speakers, 2)
	assert.Equal(t, mediaforge.SpeakerVoice{Speaker: "Alice", Voice: "Kore"}, req.Speakers[0])
	assert.Equal(t, mediaforge.SpeakerVoice{Speaker: "Bob", Voice: "Puck"}, req.Speakers[1])
}

func TestSpeechMultiSpeakerRejections(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "not json", raw: "Alice as Kore"},
		{name: "empty array", raw: "[]"},
		{name: "too many speakers", raw: `[{"speaker":"a","voice":"v"},{"speaker":"b","voice":"v"},{"speaker":"c","voice":"v"}]`},
		{name: "missing voice", raw: `[{"speaker":"Alice"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Speech(SpeechInput{Prompt: "p", MultiSpeakerConfig: tt.raw})

			var argErr *mediaforge.ArgumentError
			require.ErrorAs(t, err, &argErr)
			assert.Equal(t, "multi_speaker_config", argErr.Field)
		})
	}
}
