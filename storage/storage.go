// Package storage provides the uniform file-access facade of silo:
// open, read, write, check existence, measure size and delete, with
// identical behavior over a local directory, an S3 bucket, or any
// S3-compatible cloud container.
//
// Callers construct a Storage bound to one root and one backend:
//
//	st, err := storage.NewFileSystemStorage("my_directory")
//	if err != nil { ... }
//	defer st.Close()
//
//	err = st.WithFile(ctx, "foo.txt", "w", func(h *storage.Handle) error {
//		_, err := h.WriteString("Hello World!")
//		return err
//	})
//
// Every operation validates the relative path against the storage root
// before any backend call; paths that escape the root fail with
// ErrInvalidPath.
package storage

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/silolabs/silo/backends"
	"github.com/silolabs/silo/backends/cloud"
	"github.com/silolabs/silo/backends/localfs"
	"github.com/silolabs/silo/backends/s3"
	"github.com/silolabs/silo/internal/pathutil"
	"github.com/silolabs/silo/metrics"
)

// Storage binds one storage root to one backend adapter and exposes
// the uniform operation set. Instances share no mutable state; a
// Storage is safe for concurrent use as long as each caller obtains
// its own Handle.
type Storage struct {
	backend backends.Backend
	kind    string
	logger  *zap.Logger
}

// Option configures a Storage instance.
type Option func(*options)

type options struct {
	logger *zap.Logger
}

// WithLogger sets the logger used by the facade and its backend.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func applyOptions(opts []Option) options {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// New creates a Storage over a custom backend. kind labels the backend
// in errors, logs and metrics.
func New(backend backends.Backend, kind string, opts ...Option) *Storage {
	o := applyOptions(opts)
	return &Storage{
		backend: backend,
		kind:    kind,
		logger:  o.logger,
	}
}

// NewFileSystemStorage creates a Storage rooted at a local directory,
// which is created if absent.
func NewFileSystemStorage(rootDir string, opts ...Option) (*Storage, error) {
	o := applyOptions(opts)
	adapter, err := localfs.NewAdapter(rootDir, o.logger)
	if err != nil {
		return nil, err
	}
	return &Storage{backend: adapter, kind: localfs.BackendType, logger: o.logger}, nil
}

// NewS3Storage creates a Storage bound to an S3 bucket.
func NewS3Storage(cfg s3.Config, opts ...Option) (*Storage, error) {
	o := applyOptions(opts)
	adapter, err := s3.NewAdapter(cfg, o.logger)
	if err != nil {
		return nil, err
	}
	return &Storage{backend: adapter, kind: s3.BackendType, logger: o.logger}, nil
}

// NewCloudStorage creates a Storage bound to a container on an
// S3-compatible cloud provider.
func NewCloudStorage(ctx context.Context, cfg cloud.Config, opts ...Option) (*Storage, error) {
	o := applyOptions(opts)
	adapter, err := cloud.NewAdapter(ctx, cfg, o.logger)
	if err != nil {
		return nil, err
	}
	return &Storage{backend: adapter, kind: cloud.BackendType, logger: o.logger}, nil
}

// Backend returns the label of the bound backend.
func (s *Storage) Backend() string {
	return s.kind
}

// Open opens the file at path and returns a Handle in the requested
// mode. Recognized modes are "r", "w", "rb", "wb"; the empty string
// means "rb". Path validation happens before any backend call.
func (s *Storage) Open(ctx context.Context, path, mode string) (h *Handle, err error) {
	defer func(start time.Time) { metrics.ObserveOp(s.kind, "open", start, err) }(time.Now())

	m, err := ParseMode(mode)
	if err != nil {
		return nil, err
	}

	key, err := pathutil.Resolve(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, path)
	}

	handle := &Handle{path: path, mode: m}
	switch m.Direction {
	case Read:
		handle.reader, err = s.backend.OpenReader(ctx, key)
	case Write:
		handle.writer, err = s.backend.OpenWriter(ctx, key)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Opened file",
		zap.String("backend", s.kind),
		zap.String("path", key),
		zap.String("direction", m.Direction.String()),
		zap.String("encoding", m.Encoding.String()))

	return handle, nil
}

// WithFile opens the file at path, invokes fn with the handle, and
// closes the handle on every exit path. A Close failure is returned
// when fn itself succeeded, so committed-write errors are never lost.
func (s *Storage) WithFile(ctx context.Context, path, mode string, fn func(*Handle) error) (err error) {
	h, err := s.Open(ctx, path, mode)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := h.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(h)
}

// Exists reports whether a file exists at path.
func (s *Storage) Exists(ctx context.Context, path string) (ok bool, err error) {
	defer func(start time.Time) { metrics.ObserveOp(s.kind, "exists", start, err) }(time.Now())

	key, err := pathutil.Resolve(path)
	if err != nil {
		return false, fmt.Errorf("%w: %q", err, path)
	}
	return s.backend.Exists(ctx, key)
}

// Size returns the byte count of the file at path. It fails with
// ErrNotFound if the file does not exist.
func (s *Storage) Size(ctx context.Context, path string) (n int64, err error) {
	defer func(start time.Time) { metrics.ObserveOp(s.kind, "size", start, err) }(time.Now())

	key, err := pathutil.Resolve(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", err, path)
	}
	return s.backend.Size(ctx, key)
}

// Delete removes the file at path. It fails with ErrNotFound if the
// file does not exist, on every backend.
func (s *Storage) Delete(ctx context.Context, path string) (err error) {
	defer func(start time.Time) { metrics.ObserveOp(s.kind, "delete", start, err) }(time.Now())

	key, err := pathutil.Resolve(path)
	if err != nil {
		return fmt.Errorf("%w: %q", err, path)
	}

	if err := s.backend.Delete(ctx, key); err != nil {
		return err
	}

	s.logger.Debug("Deleted file",
		zap.String("backend", s.kind),
		zap.String("path", key))

	return nil
}

// URL returns a URL addressing the file at path, presigned where the
// backend requires authentication. Backends without URL support fail
// with ErrURLNotSupported.
func (s *Storage) URL(ctx context.Context, path string) (u string, err error) {
	defer func(start time.Time) { metrics.ObserveOp(s.kind, "url", start, err) }(time.Now())

	key, err := pathutil.Resolve(path)
	if err != nil {
		return "", fmt.Errorf("%w: %q", err, path)
	}

	gen, ok := s.backend.(backends.URLGenerator)
	if !ok {
		return "", ErrURLNotSupported
	}
	return gen.URL(ctx, key)
}

// Close releases the backend's resources. Handles opened from this
// Storage must be closed independently.
func (s *Storage) Close() error {
	return s.backend.Close()
}
