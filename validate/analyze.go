package validate

import (
	"github.com/mediaforge/mediaforge"
)

// DefaultAnalyzePrompt is used when the caller does not specify what to look for.
const DefaultAnalyzePrompt = "Describe this image in detail."

// DefaultImageMIMEType is assumed for inline images without a declared type.
const DefaultImageMIMEType = "image/jpeg"

// AnalyzeInput holds the raw analyze_image tool parameters before validation.
type AnalyzeInput struct {
	Prompt      string
	ImageURL    string
	ImageBase64 string
	MIMEType    string
}

// Analyze validates and normalizes raw vision analysis parameters.
//
// Exactly one of image_url and image_base64 must be provided. A URL must pass
// the public-address guard (see CheckPublicURL) so the server cannot be used
// to fetch internal network resources.
func Analyze(in AnalyzeInput) (*mediaforge.AnalyzeRequest, error) {
	if in.ImageURL == "" && in.ImageBase64 == "" {
		return nil, mediaforge.NewArgumentError("image_url", "provide image_url or image_base64")
	}
	if in.ImageURL != "" && in.ImageBase64 != "" {
		return nil, mediaforge.NewArgumentError("image_url", "provide either image_url or image_base64, not both")
	}

	prompt := in.Prompt
	if prompt == "" {
		prompt = DefaultAnalyzePrompt
	}
	mimeType := in.MIMEType
	if mimeType == "" {
		mimeType = DefaultImageMIMEType
	}

	req := &mediaforge.AnalyzeRequest{
		Prompt:   prompt,
		MIMEType: mimeType,
	}

	if in.ImageURL != "" {
		if err := CheckPublicURL(in.ImageURL); err != nil {
			return nil, err
		}
		req.ImageURL = in.ImageURL
		return req, nil
	}

	content, err := normalizeBase64("image_base64", in.ImageBase64)
	if err != nil {
		return nil, err
	}
	req.ImageBase64 = content
	return req, nil
}
