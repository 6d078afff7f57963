// Package cloud implements the backends.Backend interface for any
// S3-compatible cloud object storage provider, using the MinIO client.
package cloud

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/silolabs/silo/backends"
)

// BackendType identifies this adapter in errors, logs and metrics.
const BackendType = "cloud"

// DefaultPresignExpiry is the lifetime of presigned URLs when none is
// configured.
const DefaultPresignExpiry = time.Hour

// Config holds the settings needed to reach an S3-compatible provider.
type Config struct {
	Endpoint      string // host[:port] of the provider
	Container     string // bucket/container name
	AccessKey     string
	SecretKey     string
	Region        string
	UseSSL        bool
	PresignExpiry time.Duration
}

// Adapter implements backends.Backend for S3-compatible providers.
type Adapter struct {
	client        *minio.Client
	container     string
	presignExpiry time.Duration
	logger        *zap.Logger
}

// NewAdapter creates a cloud storage adapter and verifies that the
// container exists and is reachable.
func NewAdapter(ctx context.Context, cfg Config, logger *zap.Logger) (*Adapter, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("cloud endpoint is required")
	}
	if cfg.Container == "" {
		return nil, fmt.Errorf("cloud container name is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create cloud client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Container)
	if err != nil {
		return nil, fmt.Errorf("failed to access container %s: %w", cfg.Container, err)
	}
	if !exists {
		return nil, fmt.Errorf("container %s does not exist", cfg.Container)
	}

	expiry := cfg.PresignExpiry
	if expiry <= 0 {
		expiry = DefaultPresignExpiry
	}

	return &Adapter{
		client:        client,
		container:     cfg.Container,
		presignExpiry: expiry,
		logger:        logger,
	}, nil
}

// OpenReader opens an object for reading. The object's existence is
// verified up front so a missing key fails at open time rather than on
// the first read.
func (a *Adapter) OpenReader(ctx context.Context, path string) (io.ReadCloser, error) {
	obj, err := a.client.GetObject(ctx, a.container, path, minio.GetObjectOptions{})
	if err != nil {
		return nil, a.backendErr("get", path, err)
	}

	if _, err := obj.Stat(); err != nil {
		obj.Close()
		if isNotFound(err) {
			return nil, backends.ErrNotFound
		}
		return nil, a.backendErr("get", path, err)
	}

	a.logger.Debug("Object opened from cloud storage",
		zap.String("container", a.container),
		zap.String("key", path))

	return obj, nil
}

// OpenWriter opens an object for writing. Bytes are streamed through a
// pipe into an upload running in the background; Close waits for the
// upload result. The provider replaces the object atomically when the
// upload completes.
func (a *Adapter) OpenWriter(ctx context.Context, path string) (io.WriteCloser, error) {
	pr, pw := io.Pipe()

	w := &uploadWriter{
		pw:   pw,
		done: make(chan error, 1),
	}

	go func() {
		_, err := a.client.PutObject(ctx, a.container, path, pr, -1, minio.PutObjectOptions{})
		if err != nil {
			err = a.backendErr("put", path, err)
		}
		pr.CloseWithError(err)
		w.done <- err
	}()

	a.logger.Debug("Object opened for writing to cloud storage",
		zap.String("container", a.container),
		zap.String("key", path))

	return w, nil
}

// Exists reports whether an object exists at path.
func (a *Adapter) Exists(ctx context.Context, path string) (bool, error) {
	_, err := a.client.StatObject(ctx, a.container, path, minio.StatObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, a.backendErr("stat", path, err)
	}
	return true, nil
}

// Size returns the byte count of the object at path.
func (a *Adapter) Size(ctx context.Context, path string) (int64, error) {
	info, err := a.client.StatObject(ctx, a.container, path, minio.StatObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return 0, backends.ErrNotFound
		}
		return 0, a.backendErr("stat", path, err)
	}
	return info.Size, nil
}

// Delete removes the object at path. Providers treat deletion of a
// missing key as a no-op, so the key is checked first to keep delete
// semantics uniform across backends.
func (a *Adapter) Delete(ctx context.Context, path string) error {
	if _, err := a.client.StatObject(ctx, a.container, path, minio.StatObjectOptions{}); err != nil {
		if isNotFound(err) {
			return backends.ErrNotFound
		}
		return a.backendErr("stat", path, err)
	}

	if err := a.client.RemoveObject(ctx, a.container, path, minio.RemoveObjectOptions{}); err != nil {
		return a.backendErr("delete", path, err)
	}

	a.logger.Debug("Object deleted from cloud storage",
		zap.String("container", a.container),
		zap.String("key", path))

	return nil
}

// URL returns a presigned GET URL for the object at path.
func (a *Adapter) URL(ctx context.Context, path string) (string, error) {
	u, err := a.client.PresignedGetObject(ctx, a.container, path, a.presignExpiry, nil)
	if err != nil {
		return "", a.backendErr("presign", path, err)
	}
	return u.String(), nil
}

// Close releases any resources used by the cloud adapter.
func (a *Adapter) Close() error {
	return nil
}

func (a *Adapter) backendErr(op, path string, err error) error {
	return &backends.BackendError{Backend: BackendType, Op: op, Path: path, Err: err}
}

// isNotFound reports whether a provider error indicates a missing
// object.
func isNotFound(err error) bool {
	resp := minio.ToErrorResponse(err)
	return resp.Code == "NoSuchKey" || resp.Code == "NotFound"
}
