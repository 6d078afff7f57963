package storage

import (
	"errors"

	"github.com/silolabs/silo/backends"
)

// Errors surfaced by the storage facade and file handles. The backend
// sentinels are re-exported here so callers only need this package for
// errors.Is checks.
var (
	// ErrNotFound indicates no file exists at the requested path.
	ErrNotFound = backends.ErrNotFound

	// ErrInvalidPath indicates a path that failed normalization or
	// escaped the storage root.
	ErrInvalidPath = backends.ErrInvalidPath

	// ErrInvalidMode indicates an unrecognized open-mode string.
	ErrInvalidMode = errors.New("invalid mode")

	// ErrWrongMode indicates a read on a write handle or vice versa.
	ErrWrongMode = errors.New("operation does not match handle mode")

	// ErrHandleClosed indicates an operation on a closed handle.
	ErrHandleClosed = errors.New("handle is closed")

	// ErrDecode indicates text-mode content that is not valid UTF-8.
	ErrDecode = errors.New("invalid UTF-8 sequence")

	// ErrURLNotSupported indicates the backend cannot generate URLs.
	ErrURLNotSupported = errors.New("backend does not support URL generation")
)
