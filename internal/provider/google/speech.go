package google

import (
	"context"

	"google.golang.org/genai"

	"github.com/mediaforge/mediaforge"
)

// Synthesize renders speech audio for the request using the given TTS model.
// The SDK returns raw PCM which is wrapped into a WAV container.
func (c *Client) Synthesize(ctx context.Context, model string, req *mediaforge.SpeechRequest) ([]byte, error) {
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig:       speechConfig(req),
	}
	contents := []*genai.Content{
		genai.NewContentFromText(req.Prompt, genai.RoleUser),
	}

	resp, err := c.client.Models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return nil, wrapError(err)
	}

	pcm := firstInlineAudio(resp)
	if len(pcm) == 0 {
		return nil, &mediaforge.MalformedResponseError{What: "tts response contained no audio part"}
	}
	return encodeWAV(pcm), nil
}

func speechConfig(req *mediaforge.SpeechRequest) *genai.SpeechConfig {
	if len(req.Speakers) > 0 {
		voices := make([]*genai.SpeakerVoiceConfig, len(req.Speakers))
		for i, sv := range req.Speakers {
			voices[i] = &genai.SpeakerVoiceConfig{
				Speaker:     sv.Speaker,
				VoiceConfig: prebuiltVoice(sv.Voice),
			}
		}
		return &genai.SpeechConfig{
			MultiSpeakerVoiceConfig: &genai.MultiSpeakerVoiceConfig{
				SpeakerVoiceConfigs: voices,
			},
		}
	}
	return &genai.SpeechConfig{VoiceConfig: prebuiltVoice(req.Voice)}
}

func prebuiltVoice(name string) *genai.VoiceConfig {
	return &genai.VoiceConfig{
		PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: name},
	}
}

func firstInlineAudio(resp *genai.GenerateContentResponse) []byte {
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData.Data
			}
		}
	}
	return nil
}
