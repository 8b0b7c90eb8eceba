package mediaforge

// Artifact is a generated binary payload with its media type.
type Artifact struct {
	Data     []byte
	MIMEType string
}

// SaveResult is returned by a storage sink after it durably accepted a payload.
type SaveResult struct {
	// URL is the public, caller-facing locator for the stored artifact.
	URL string `json:"url"`
	// GSURI is the internal object-storage URI (gs://bucket/object), empty for
	// sinks without one.
	GSURI string `json:"gs_uri,omitempty"`
}

// VideoResult is the structured result of a create_video invocation.
type VideoResult struct {
	Prompt      string `json:"prompt"`
	Model       string `json:"model"`
	AspectRatio string `json:"aspect_ratio"`
	Resolution  string `json:"resolution"`
	MIMEType    string `json:"mime_type"`
	URL         string `json:"url"`
	GSURI       string `json:"gs_uri"`
}

// ImageResult is the structured result of a create_visualization invocation.
type ImageResult struct {
	Prompt      string `json:"prompt"`
	Model       string `json:"model"`
	AspectRatio string `json:"aspect_ratio"`
	ImageSize   string `json:"image_size"`
	MIMEType    string `json:"mime_type"`
	URL         string `json:"url"`
	GSURI       string `json:"gs_uri"`
}

// SpeechResult is the structured result of a text_to_speech invocation.
type SpeechResult struct {
	Prompt       string `json:"prompt"`
	Model        string `json:"model"`
	VoiceName    string `json:"voice_name"`
	MultiSpeaker bool   `json:"multi_speaker"`
	MIMEType     string `json:"mime_type"`
	URL          string `json:"url"`
	GSURI        string `json:"gs_uri"`
}

// AnalyzeResult is the structured result of an analyze_image invocation.
type AnalyzeResult struct {
	Prompt   string `json:"prompt"`
	Model    string `json:"model"`
	Analysis string `json:"analysis"`
	ImageURL string `json:"image_url"` // the source URL, or "<base64>" for inline input
	MIMEType string `json:"mime_type"`
}
