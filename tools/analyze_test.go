package tools

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediaforge/mediaforge"
	"github.com/mediaforge/mediaforge/validate"
)

type fakeAnalyzer struct {
	calls   []string
	lastReq *mediaforge.AnalyzeRequest
	text    string
	err     error
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, model string, req *mediaforge.AnalyzeRequest) (string, error) {
	f.calls = append(f.calls, model)
	f.lastReq = req
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

func TestAnalyzeCreateInlineImage(t *testing.T) {
	google := &fakeAnalyzer{text: "a red square"}
	svc := NewAnalyzeService(google, nil, nil, nil, zerolog.Nop())

	encoded := base64.StdEncoding.EncodeToString([]byte("img"))
	res, err := svc.Create(context.Background(), validate.AnalyzeInput{ImageBase64: encoded})
	require.NoError(t, err)

	assert.Equal(t, "gemini-2.5-flash", res.Model)
	assert.Equal(t, "a red square", res.Analysis)
	assert.Equal(t, "<base64>", res.ImageURL)
	assert.Equal(t, "image/jpeg", res.MIMEType)
	assert.Equal(t, validate.DefaultAnalyzePrompt, res.Prompt)
	require.NotNil(t, google.lastReq)
	assert.Equal(t, encoded, google.lastReq.ImageBase64)
}

func TestAnalyzeCreateStripsDataURL(t *testing.T) {
	google := &fakeAnalyzer{text: "ok"}
	svc := NewAnalyzeService(google, nil, nil, nil, zerolog.Nop())

	encoded := base64.StdEncoding.EncodeToString([]byte("img"))
	_, err := svc.Create(context.Background(), validate.AnalyzeInput{
		ImageBase64: "data:image/png;base64," + encoded,
	})
	require.NoError(t, err)
	assert.Equal(t, encoded, google.lastReq.ImageBase64)
}

func TestAnalyzeCreateFallsBackToClaude(t *testing.T) {
	google := &fakeAnalyzer{err: mediaforge.NewTransientError("down", 503, nil)}
	claude := &fakeAnalyzer{text: "from claude"}
	svc := NewAnalyzeService(google, claude, nil, nil, zerolog.Nop())

	encoded := base64.StdEncoding.EncodeToString([]byte("img"))
	res, err := svc.Create(context.Background(), validate.AnalyzeInput{ImageBase64: encoded})
	require.NoError(t, err)

	assert.Equal(t, "claude-sonnet-4-5", res.Model)
	assert.Equal(t, "from claude", res.Analysis)
	assert.Equal(t, []string{"gemini-2.5-flash"}, google.calls)
	assert.Equal(t, []string{"claude-sonnet-4-5"}, claude.calls)
}

func TestAnalyzeCreateRequiresOneSource(t *testing.T) {
	google := &fakeAnalyzer{}
	svc := NewAnalyzeService(google, nil, nil, nil, zerolog.Nop())

	_, err := svc.Create(context.Background(), validate.AnalyzeInput{})
	assert.True(t, mediaforge.IsInvalidArgument(err))

	_, err = svc.Create(context.Background(), validate.AnalyzeInput{
		ImageURL:    "https://example.com/a.png",
		ImageBase64: "aGk=",
	})
	assert.True(t, mediaforge.IsInvalidArgument(err))
	assert.Empty(t, google.calls)
}

func TestAnalyzeCreateRejectsPrivateURL(t *testing.T) {
	google := &fakeAnalyzer{}
	svc := NewAnalyzeService(google, nil, nil, nil, zerolog.Nop())

	_, err := svc.Create(context.Background(), validate.AnalyzeInput{ImageURL: "http://10.0.0.5/internal.png"})
	assert.True(t, mediaforge.IsInvalidArgument(err))
	assert.Empty(t, google.calls)
}
