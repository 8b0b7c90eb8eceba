package validate

import (
	"github.com/mediaforge/mediaforge"
)

// Defaults applied when an image parameter is omitted.
const (
	DefaultImageAspectRatio = mediaforge.AspectRatio1x1
	DefaultImageSize        = mediaforge.ImageSize2K
)

var (
	imageAspectRatios = []mediaforge.AspectRatio{
		mediaforge.AspectRatio1x1,
		mediaforge.AspectRatio16x9,
		mediaforge.AspectRatio9x16,
		mediaforge.AspectRatio4x3,
		mediaforge.AspectRatio3x4,
	}
	imageSizes = []mediaforge.ImageSize{
		mediaforge.ImageSize1K,
		mediaforge.ImageSize2K,
		mediaforge.ImageSize4K,
	}
)

// ImageInput holds the raw create_visualization tool parameters before validation.
type ImageInput struct {
	Prompt       string
	AspectRatio  string
	ImageSize    string
	FilenameHint string
}

// Image validates and normalizes raw image generation parameters against the
// fixed aspect-ratio and size allow-lists.
func Image(in ImageInput) (*mediaforge.ImageRequest, error) {
	prompt, err := requirePrompt(in.Prompt)
	if err != nil {
		return nil, err
	}

	aspect := mediaforge.AspectRatio(in.AspectRatio)
	if aspect == "" {
		aspect = DefaultImageAspectRatio
	}
	if !contains(imageAspectRatios, aspect) {
		return nil, mediaforge.NewArgumentError("aspect_ratio", oneOf(imageAspectRatios))
	}

	size := mediaforge.ImageSize(in.ImageSize)
	if size == "" {
		size = DefaultImageSize
	}
	if !contains(imageSizes, size) {
		return nil, mediaforge.NewArgumentError("image_size", oneOf(imageSizes))
	}

	return &mediaforge.ImageRequest{
		Prompt:       prompt,
		AspectRatio:  aspect,
		Size:         size,
		FilenameHint: in.FilenameHint,
	}, nil
}
