package validate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mediaforge/mediaforge"
)

// DefaultVoice is the prebuilt voice used when none is requested.
const DefaultVoice = "Kore"

// maxSpeakers is the provider limit for multi-speaker synthesis.
const maxSpeakers = 2

// SpeechInput holds the raw text_to_speech tool parameters before validation.
// MultiSpeakerConfig is the raw JSON value for the multi_speaker_config
// parameter: either empty, or an array of {speaker, voice} objects.
type SpeechInput struct {
	Prompt             string
	VoiceName          string
	MultiSpeakerConfig string
	FilenameHint       string
}

// Speech validates and normalizes raw speech synthesis parameters.
func Speech(in SpeechInput) (*mediaforge.SpeechRequest, error) {
	prompt, err := requirePrompt(in.Prompt)
	if err != nil {
		return nil, err
	}

	voice := strings.TrimSpace(in.VoiceName)
	if voice == "" {
		voice = DefaultVoice
	}

	req := &mediaforge.SpeechRequest{
		Prompt:       prompt,
		Voice:        voice,
		FilenameHint: in.FilenameHint,
	}

	raw := strings.TrimSpace(in.MultiSpeakerConfig)
	if raw == "" {
		return req, nil
	}

	var speakers []mediaforge.SpeakerVoice
	if err := json.Unmarshal([]byte(raw), &speakers); err != nil {
		return nil, mediaforge.NewArgumentError("multi_speaker_config", "must be a JSON array of {speaker, voice} objects")
	}
	if len(speakers) == 0 || len(speakers) > maxSpeakers {
		return nil, mediaforge.NewArgumentError("multi_speaker_config", fmt.Sprintf("must list between 1 and %d speakers", maxSpeakers))
	}
	for i, s := range speakers {
		if strings.TrimSpace(s.Speaker) == "" || strings.TrimSpace(s.Voice) == "" {
			return nil, mediaforge.NewArgumentError("multi_speaker_config", fmt.Sprintf("entry %d must set both speaker and voice", i))
		}
	}
	req.Speakers = speakers

	return req, nil
}
