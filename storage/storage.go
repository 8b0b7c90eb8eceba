// Package storage persists generated media and hands back retrievable
// locators. The generation pipeline only depends on the Sink interface; the
// backend (local disk for development, Google Cloud Storage for deployments)
// is chosen at startup.
package storage

import (
	"context"

	"github.com/mediaforge/mediaforge"
)

// Sink durably accepts generated bytes and returns a public locator.
// Ownership of the bytes transfers to the sink once Store returns nil.
type Sink interface {
	// Store persists data under a unique name derived from nameHint and
	// extension. mimeType is recorded where the backend supports it.
	Store(ctx context.Context, data []byte, extension, nameHint, mimeType string) (mediaforge.SaveResult, error)
}
