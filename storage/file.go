package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mediaforge/mediaforge"
)

// FileStore persists artifacts onto the local filesystem and serves them via
// the static file route. It is intended for development and single-node
// deployments where an object storage service is not available.
type FileStore struct {
	dir     string
	baseURL string
}

// NewFileStore initializes a FileStore rooted at dir. Stored files are
// addressed as baseURL/static/<name>.
func NewFileStore(dir, baseURL string) (*FileStore, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("storage: directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: ensure directory: %w", err)
	}
	return &FileStore{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Dir returns the root directory, for mounting the static file route.
func (s *FileStore) Dir() string {
	return s.dir
}

// Store writes data to a uniquely named file and returns its public URL.
func (s *FileStore) Store(ctx context.Context, data []byte, extension, nameHint, mimeType string) (mediaforge.SaveResult, error) {
	if err := ctx.Err(); err != nil {
		return mediaforge.SaveResult{}, err
	}

	name := makeFilename(extension, nameHint)
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return mediaforge.SaveResult{}, fmt.Errorf("storage: write file: %w", err)
	}

	return mediaforge.SaveResult{URL: s.baseURL + "/static/" + name}, nil
}

var _ Sink = (*FileStore)(nil)
