package mcp

import "encoding/json"

// Raw JSON schemas for the tool parameters. Kept as literals so the wire
// schema is exactly what clients see.
var (
	createVideoSchema = json.RawMessage(`{
  "type": "object",
  "properties": {
    "prompt": {"type": "string", "description": "What the video should show."},
    "negative_prompt": {"type": "string", "description": "What the video should avoid."},
    "aspect_ratio": {"type": "string", "enum": ["16:9", "9:16"], "default": "16:9"},
    "resolution": {"type": "string", "enum": ["720p", "1080p"], "default": "720p", "description": "1080p requires 16:9; 9:16 only supports 720p."},
    "image_url": {"type": "string", "description": "Public URL of a reference image. Mutually exclusive with image_base64."},
    "image_base64": {"type": "string", "description": "Base64 reference image, data URLs accepted. Mutually exclusive with image_url."},
    "image_mime_type": {"type": "string", "description": "Media type of image_base64, defaults to image/jpeg."},
    "filename_hint": {"type": "string", "description": "Hint for the stored filename."}
  },
  "required": ["prompt"]
}`)

	createVisualizationSchema = json.RawMessage(`{
  "type": "object",
  "properties": {
    "prompt": {"type": "string", "description": "What the image should show."},
    "aspect_ratio": {"type": "string", "enum": ["1:1", "16:9", "9:16", "4:3", "3:4"], "default": "1:1"},
    "image_size": {"type": "string", "enum": ["1K", "2K", "4K"], "default": "2K"},
    "filename_hint": {"type": "string", "description": "Hint for the stored filename."}
  },
  "required": ["prompt"]
}`)

	textToSpeechSchema = json.RawMessage(`{
  "type": "object",
  "properties": {
    "prompt": {"type": "string", "description": "Text to speak."},
    "voice_name": {"type": "string", "default": "Kore", "description": "Prebuilt voice for single-speaker synthesis."},
    "multi_speaker_config": {"type": "string", "description": "JSON array of {speaker, voice} objects, at most two speakers. Overrides voice_name."},
    "filename_hint": {"type": "string", "description": "Hint for the stored filename."}
  },
  "required": ["prompt"]
}`)

	analyzeImageSchema = json.RawMessage(`{
  "type": "object",
  "properties": {
    "image_url": {"type": "string", "description": "Public URL of the image. Mutually exclusive with image_base64."},
    "image_base64": {"type": "string", "description": "Base64 image content, data URLs accepted. Mutually exclusive with image_url."},
    "mime_type": {"type": "string", "default": "image/jpeg", "description": "Media type of image_base64."},
    "prompt": {"type": "string", "default": "Describe this image in detail."}
  }
}`)
)
