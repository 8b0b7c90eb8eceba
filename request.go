package mediaforge

// AspectRatio is a width:height ratio accepted by the generation providers.
type AspectRatio string

const (
	AspectRatio1x1  AspectRatio = "1:1"
	AspectRatio16x9 AspectRatio = "16:9"
	AspectRatio9x16 AspectRatio = "9:16"
	AspectRatio4x3  AspectRatio = "4:3"
	AspectRatio3x4  AspectRatio = "3:4"
)

// Resolution is a video output resolution.
type Resolution string

const (
	Resolution720p  Resolution = "720p"
	Resolution1080p Resolution = "1080p"
)

// ImageSize is an image output size class.
type ImageSize string

const (
	ImageSize1K ImageSize = "1K"
	ImageSize2K ImageSize = "2K"
	ImageSize4K ImageSize = "4K"
)

// ReferenceImage is an inline conditioning image for image-to-video generation.
// Bytes are already decoded from any data-URL or base64 transport wrapping.
type ReferenceImage struct {
	Base64   string // raw base64 content, no data-URL prefix
	MIMEType string
}

// VideoRequest is a validated, normalized video generation request. Values are
// only constructed by the validate package; a VideoRequest is never mutated
// after construction.
type VideoRequest struct {
	Prompt         string
	NegativePrompt string
	AspectRatio    AspectRatio
	Resolution     Resolution
	// At most one of ImageURL and Image is set: a remote reference image is
	// fetched and inlined by the tool layer before submission.
	ImageURL     string
	Image        *ReferenceImage
	FilenameHint string
}

// ImageRequest is a validated image generation request.
type ImageRequest struct {
	Prompt       string
	AspectRatio  AspectRatio
	Size         ImageSize
	FilenameHint string
}

// SpeakerVoice assigns a prebuilt voice to a named speaker for multi-speaker
// speech synthesis.
type SpeakerVoice struct {
	Speaker string `json:"speaker"`
	Voice   string `json:"voice"`
}

// SpeechRequest is a validated speech synthesis request. When Speakers is
// non-empty the request uses multi-speaker synthesis and Voice is ignored.
type SpeechRequest struct {
	Prompt       string
	Voice        string
	Speakers     []SpeakerVoice
	FilenameHint string
}

// AnalyzeRequest is a validated vision analysis request. Exactly one of
// ImageURL and ImageBase64 is set.
type AnalyzeRequest struct {
	Prompt      string
	ImageURL    string
	ImageBase64 string // raw base64 content, no data-URL prefix
	MIMEType    string
}
