// Package localfs implements the backends.Backend interface on top of
// a local filesystem directory.
package localfs

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/silolabs/silo/backends"
	"github.com/silolabs/silo/internal/pathutil"
)

// BackendType identifies this adapter in errors, logs and metrics.
const BackendType = "localfs"

// Adapter implements backends.Backend for a local directory tree.
type Adapter struct {
	root    string
	absRoot string
	logger  *zap.Logger
}

// NewAdapter creates a local filesystem adapter rooted at root.
// The root directory is created if it does not exist.
func NewAdapter(root string, logger *zap.Logger) (*Adapter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create root path %s: %w", root, err)
	}

	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("root path %s is not accessible: %w", root, err)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root path %s: %w", root, err)
	}

	return &Adapter{
		root:    root,
		absRoot: absRoot,
		logger:  logger,
	}, nil
}

func (a *Adapter) fullPath(path string) (string, error) {
	return pathutil.JoinUnder(a.root, path)
}

func (a *Adapter) backendErr(op, path string, err error) error {
	return &backends.BackendError{Backend: BackendType, Op: op, Path: path, Err: err}
}

// OpenReader opens a file for reading.
func (a *Adapter) OpenReader(ctx context.Context, path string) (io.ReadCloser, error) {
	fullPath, err := a.fullPath(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, backends.ErrNotFound
		}
		return nil, a.backendErr("open", path, err)
	}

	return file, nil
}

// OpenWriter opens a file for writing. Content is written to a
// temporary file in the destination directory and renamed into place
// on Close, so a reader never observes a partially written file.
func (a *Adapter) OpenWriter(ctx context.Context, path string) (io.WriteCloser, error) {
	fullPath, err := a.fullPath(path)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, a.backendErr("write", path, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(fullPath)+".tmp-*")
	if err != nil {
		return nil, a.backendErr("write", path, err)
	}

	a.logger.Debug("Opened local file for writing",
		zap.String("path", path),
		zap.String("tmp", tmp.Name()))

	return &atomicWriter{file: tmp, target: fullPath}, nil
}

// Exists reports whether a file exists at path.
func (a *Adapter) Exists(ctx context.Context, path string) (bool, error) {
	fullPath, err := a.fullPath(path)
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(fullPath); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, a.backendErr("stat", path, err)
	}

	return true, nil
}

// Size returns the byte count of the file at path.
func (a *Adapter) Size(ctx context.Context, path string) (int64, error) {
	fullPath, err := a.fullPath(path)
	if err != nil {
		return 0, err
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, backends.ErrNotFound
		}
		return 0, a.backendErr("stat", path, err)
	}

	return info.Size(), nil
}

// Delete removes the file at path.
func (a *Adapter) Delete(ctx context.Context, path string) error {
	fullPath, err := a.fullPath(path)
	if err != nil {
		return err
	}

	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			return backends.ErrNotFound
		}
		return a.backendErr("delete", path, err)
	}

	return nil
}

// URL returns a file:// URL for the file at path. The file does not
// have to exist.
func (a *Adapter) URL(ctx context.Context, path string) (string, error) {
	key, err := pathutil.Resolve(path)
	if err != nil {
		return "", err
	}

	u := url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(filepath.Join(a.absRoot, filepath.FromSlash(key))),
	}
	return u.String(), nil
}

// Close releases any resources used by the adapter.
func (a *Adapter) Close() error {
	return nil
}
