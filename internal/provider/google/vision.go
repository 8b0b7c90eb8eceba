package google

import (
	"context"
	"encoding/base64"

	"google.golang.org/genai"

	"github.com/mediaforge/mediaforge"
)

// Analyze answers a prompt about a base64-encoded image.
func (c *Client) Analyze(ctx context.Context, model string, req *mediaforge.AnalyzeRequest) (string, error) {
	data, err := base64.StdEncoding.DecodeString(req.ImageBase64)
	if err != nil {
		return "", mediaforge.NewArgumentError("image_base64", "invalid base64 encoding")
	}

	mimeType := req.MIMEType
	if mimeType == "" {
		mimeType = defaultAnalyzeMIME
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(data, mimeType),
			genai.NewPartFromText(req.Prompt),
		}, genai.RoleUser),
	}

	resp, err := c.client.Models.GenerateContent(ctx, model, contents, nil)
	if err != nil {
		return "", wrapError(err)
	}

	text := collectText(resp)
	if text == "" {
		return "", &mediaforge.MalformedResponseError{What: "analysis response contained no text"}
	}
	return text, nil
}

func collectText(resp *genai.GenerateContentResponse) string {
	var out string
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			out += part.Text
		}
	}
	return out
}
