package validate

import (
	"github.com/mediaforge/mediaforge"
)

// Defaults applied when a video parameter is omitted.
const (
	DefaultVideoAspectRatio = mediaforge.AspectRatio16x9
	DefaultVideoResolution  = mediaforge.Resolution720p
)

var (
	videoAspectRatios = []mediaforge.AspectRatio{
		mediaforge.AspectRatio16x9,
		mediaforge.AspectRatio9x16,
	}
	videoResolutions = []mediaforge.Resolution{
		mediaforge.Resolution720p,
		mediaforge.Resolution1080p,
	}
)

// VideoInput holds the raw create_video tool parameters before validation.
type VideoInput struct {
	Prompt         string
	NegativePrompt string
	AspectRatio    string
	Resolution     string
	ImageURL       string
	ImageBase64    string
	ImageMIMEType  string
	FilenameHint   string
}

// Video validates and normalizes raw video parameters.
//
// Constraints: the prompt must be non-empty, aspect ratio and resolution must
// come from the allowed sets, 9:16 video only supports 720p, 1080p video only
// supports 16:9, and at most one of image_url / image_base64 may be provided.
// An inline image given as a data URL is stripped to its raw base64 content.
func Video(in VideoInput) (*mediaforge.VideoRequest, error) {
	prompt, err := requirePrompt(in.Prompt)
	if err != nil {
		return nil, err
	}

	aspect := mediaforge.AspectRatio(in.AspectRatio)
	if aspect == "" {
		aspect = DefaultVideoAspectRatio
	}
	if !contains(videoAspectRatios, aspect) {
		return nil, mediaforge.NewArgumentError("aspect_ratio", oneOf(videoAspectRatios))
	}

	resolution := mediaforge.Resolution(in.Resolution)
	if resolution == "" {
		resolution = DefaultVideoResolution
	}
	if !contains(videoResolutions, resolution) {
		return nil, mediaforge.NewArgumentError("resolution", oneOf(videoResolutions))
	}

	// Provider constraint: portrait video only renders at 720p, and 1080p is
	// only available for landscape.
	if aspect == mediaforge.AspectRatio9x16 && resolution != mediaforge.Resolution720p {
		return nil, mediaforge.NewArgumentError("resolution", `must be "720p" when aspect_ratio is "9:16"`)
	}
	if resolution == mediaforge.Resolution1080p && aspect != mediaforge.AspectRatio16x9 {
		return nil, mediaforge.NewArgumentError("aspect_ratio", `must be "16:9" when resolution is "1080p"`)
	}

	if in.ImageURL != "" && in.ImageBase64 != "" {
		return nil, mediaforge.NewArgumentError("image_url", "provide either image_url or image_base64, not both")
	}

	req := &mediaforge.VideoRequest{
		Prompt:         prompt,
		NegativePrompt: in.NegativePrompt,
		AspectRatio:    aspect,
		Resolution:     resolution,
		ImageURL:       in.ImageURL,
		FilenameHint:   in.FilenameHint,
	}

	if in.ImageBase64 != "" {
		content, err := normalizeBase64("image_base64", in.ImageBase64)
		if err != nil {
			return nil, err
		}
		req.Image = &mediaforge.ReferenceImage{
			Base64:   content,
			MIMEType: in.ImageMIMEType,
		}
	}

	return req, nil
}

func contains[T comparable](values []T, v T) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
