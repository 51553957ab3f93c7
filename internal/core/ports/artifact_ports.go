package ports

import (
	"context"
	"io"
)

// ArtifactStore persists opaque binary blobs (identity proofs, candidate
// images) under server-derived names. Implementations never trust a
// caller-supplied filename.
type ArtifactStore interface {
	// Store writes content under the given name and returns the reference
	// to persist alongside the owning record.
	Store(ctx context.Context, name string, content io.Reader) (string, error)
	Open(ctx context.Context, ref string) (io.ReadCloser, error)
	Delete(ctx context.Context, ref string) error
}
