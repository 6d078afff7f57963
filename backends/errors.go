package backends

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by all backends. Implementations return
// errors that satisfy errors.Is against these values.
var (
	// ErrNotFound indicates no file exists at the requested path.
	ErrNotFound = errors.New("file not found")

	// ErrInvalidPath indicates a path that failed normalization or
	// escaped the storage root.
	ErrInvalidPath = errors.New("invalid path")
)

// BackendError wraps a substrate-level failure (connectivity, auth,
// unexpected provider response) with the backend and operation that
// produced it.
type BackendError struct {
	Backend string
	Op      string
	Path    string
	Err     error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s: %s %s: %v", e.Backend, e.Op, e.Path, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}
