package google

import (
	"context"
	"strings"

	"google.golang.org/genai"

	"github.com/mediaforge/mediaforge"
)

// isImagenModel reports whether the model uses the dedicated Imagen endpoint
// rather than Gemini multimodal output.
func isImagenModel(model string) bool {
	return strings.HasPrefix(model, "imagen-")
}

// GenerateImage produces an image for the request using the given model.
// Imagen models honor aspect ratio and image size; Gemini image models take
// the prompt alone.
func (c *Client) GenerateImage(ctx context.Context, model string, req *mediaforge.ImageRequest) (*mediaforge.Artifact, error) {
	if isImagenModel(model) {
		return c.generateImagen(ctx, model, req)
	}
	return c.generateGeminiImage(ctx, model, req)
}

func (c *Client) generateImagen(ctx context.Context, model string, req *mediaforge.ImageRequest) (*mediaforge.Artifact, error) {
	config := &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		AspectRatio:    string(req.AspectRatio),
		ImageSize:      string(req.Size),
	}

	resp, err := c.client.Models.GenerateImages(ctx, model, req.Prompt, config)
	if err != nil {
		return nil, wrapError(err)
	}

	for _, img := range resp.GeneratedImages {
		if img.Image != nil && len(img.Image.ImageBytes) > 0 {
			mimeType := img.Image.MIMEType
			if mimeType == "" {
				mimeType = defaultImageMIME
			}
			return &mediaforge.Artifact{Data: img.Image.ImageBytes, MIMEType: mimeType}, nil
		}
	}
	return nil, &mediaforge.MalformedResponseError{What: "imagen response contained no image bytes"}
}

func (c *Client) generateGeminiImage(ctx context.Context, model string, req *mediaforge.ImageRequest) (*mediaforge.Artifact, error) {
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"TEXT", "IMAGE"},
	}
	contents := []*genai.Content{
		genai.NewContentFromText(req.Prompt, genai.RoleUser),
	}

	resp, err := c.client.Models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return nil, wrapError(err)
	}

	if img := firstInlineImage(resp); img != nil {
		return img, nil
	}
	return nil, &mediaforge.MalformedResponseError{What: "gemini response contained no image part"}
}

func firstInlineImage(resp *genai.GenerateContentResponse) *mediaforge.Artifact {
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				mimeType := part.InlineData.MIMEType
				if mimeType == "" {
					mimeType = defaultImageMIME
				}
				return &mediaforge.Artifact{Data: part.InlineData.Data, MIMEType: mimeType}
			}
		}
	}
	return nil
}
