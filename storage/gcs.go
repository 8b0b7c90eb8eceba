package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gcs "cloud.google.com/go/storage"

	"github.com/mediaforge/mediaforge"
)

// GCSStore persists artifacts into a Google Cloud Storage bucket.
type GCSStore struct {
	client     *gcs.Client
	bucket     string
	prefix     string
	publicRead bool
}

// GCSOptions configures a GCSStore.
type GCSOptions struct {
	Bucket string
	// Prefix is prepended to every object name, without leading or trailing
	// slashes.
	Prefix string
	// PublicRead attempts to set a public-read ACL on each object. Buckets
	// with uniform bucket-level access reject per-object ACLs; the store then
	// relies on the bucket policy and still returns the public URL.
	PublicRead bool
}

// NewGCSStore creates a sink writing into the given bucket.
func NewGCSStore(client *gcs.Client, opts GCSOptions) (*GCSStore, error) {
	bucket := strings.TrimSpace(opts.Bucket)
	if bucket == "" {
		return nil, errors.New("storage: gcs bucket is required")
	}
	return &GCSStore{
		client:     client,
		bucket:     bucket,
		prefix:     strings.Trim(opts.Prefix, "/"),
		publicRead: opts.PublicRead,
	}, nil
}

// Store uploads data and returns both the public URL and the gs:// URI.
func (s *GCSStore) Store(ctx context.Context, data []byte, extension, nameHint, mimeType string) (mediaforge.SaveResult, error) {
	object := makeFilename(extension, nameHint)
	if s.prefix != "" {
		object = s.prefix + "/" + object
	}

	w := s.client.Bucket(s.bucket).Object(object).NewWriter(ctx)
	w.ContentType = mimeType
	if _, err := w.Write(data); err != nil {
		w.Close()
		return mediaforge.SaveResult{}, fmt.Errorf("storage: gcs write: %w", err)
	}
	if err := w.Close(); err != nil {
		return mediaforge.SaveResult{}, fmt.Errorf("storage: gcs close: %w", err)
	}

	if s.publicRead {
		// Best effort; uniform bucket-level access blocks object ACLs.
		_ = s.client.Bucket(s.bucket).Object(object).ACL().Set(ctx, gcs.AllUsers, gcs.RoleReader)
	}

	return mediaforge.SaveResult{
		URL:   fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, object),
		GSURI: fmt.Sprintf("gs://%s/%s", s.bucket, object),
	}, nil
}

var _ Sink = (*GCSStore)(nil)
