package storage

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// safeFilename strips anything that could escape the storage root or confuse
// a URL out of a caller-supplied name hint.
func safeFilename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "file"
	}
	name = unsafeChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._-")
	if name == "" {
		name = "file"
	}
	return name
}

// makeFilename builds a unique object name from a hint and extension, e.g.
// "3f2a9c1b04de_sunset.mp4".
func makeFilename(extension, nameHint string) string {
	ext := strings.TrimPrefix(extension, ".")
	if ext == "" {
		ext = "bin"
	}
	unique := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return unique + "_" + safeFilename(nameHint) + "." + ext
}
