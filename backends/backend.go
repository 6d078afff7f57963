// Package backends defines the storage backend contract for silo.
// Every backend translates the same small operation set onto its
// substrate: a local directory tree, an S3 bucket, or any
// S3-compatible cloud container.
package backends

import (
	"context"
	"io"
)

// Backend is the capability set every storage backend must implement.
// Paths passed to a Backend have already been resolved by the storage
// facade: they are clean, slash-separated, relative keys with no
// leading slash and no traversal segments.
type Backend interface {
	// OpenReader opens the file at path for reading.
	// Returns ErrNotFound if nothing exists at the path.
	OpenReader(ctx context.Context, path string) (io.ReadCloser, error)

	// OpenWriter opens the file at path for writing, creating it if
	// absent and overwriting existing content. Any parent structure
	// the substrate requires is created implicitly. The write is
	// committed when the returned WriteCloser is closed; backends that
	// can guarantee atomic replace do so at commit time.
	OpenWriter(ctx context.Context, path string) (io.WriteCloser, error)

	// Exists reports whether a file exists at path. A missing file is
	// not an error; only connectivity or auth failures are.
	Exists(ctx context.Context, path string) (bool, error)

	// Size returns the byte count of the file at path.
	// Returns ErrNotFound if nothing exists at the path.
	Size(ctx context.Context, path string) (int64, error)

	// Delete removes the file at path. Deleting a missing file returns
	// ErrNotFound on every backend, including object stores whose
	// native delete is a no-op for absent keys.
	Delete(ctx context.Context, path string) error

	// Close releases any resources held by the backend.
	Close() error
}

// URLGenerator is an optional interface for backends that can produce
// a URL addressing a stored file, presigned where the substrate
// requires authentication.
type URLGenerator interface {
	URL(ctx context.Context, path string) (string, error)
}
