package s3

import (
	"context"
	"errors"
	"io"
	"sync/atomic"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"go.uber.org/zap"

	"github.com/silolabs/silo/backends"
)

// OpenReader opens an object for reading.
func (a *Adapter) OpenReader(ctx context.Context, path string) (io.ReadCloser, error) {
	result, err := a.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, backends.ErrNotFound
		}
		return nil, a.backendErr("get", path, err)
	}

	a.logger.Debug("Object opened from S3",
		zap.String("bucket", a.bucket),
		zap.String("key", path))

	return result.Body, nil
}

// OpenWriter opens an object for writing. Bytes are streamed through a
// pipe into a managed upload running in the background; Close waits
// for the upload to finish and returns its result. S3 replaces the
// object atomically when the upload completes, so a failed upload
// leaves any existing object untouched.
func (a *Adapter) OpenWriter(ctx context.Context, path string) (io.WriteCloser, error) {
	pr, pw := io.Pipe()

	w := &uploadWriter{
		pw:   pw,
		done: make(chan error, 1),
	}

	go func() {
		_, err := a.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
			Bucket: aws.String(a.bucket),
			Key:    aws.String(path),
			Body:   pr,
		})
		if err != nil {
			err = a.backendErr("put", path, err)
		}
		pr.CloseWithError(err)
		w.done <- err
	}()

	a.logger.Debug("Object opened for writing to S3",
		zap.String("bucket", a.bucket),
		zap.String("key", path))

	return w, nil
}

// Exists reports whether an object exists at path.
func (a *Adapter) Exists(ctx context.Context, path string) (bool, error) {
	_, err := a.client.HeadObjectWithContext(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, a.backendErr("head", path, err)
	}
	return true, nil
}

// Size returns the byte count of the object at path.
func (a *Adapter) Size(ctx context.Context, path string) (int64, error) {
	result, err := a.client.HeadObjectWithContext(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		if isNotFound(err) {
			return 0, backends.ErrNotFound
		}
		return 0, a.backendErr("head", path, err)
	}
	return aws.Int64Value(result.ContentLength), nil
}

// Delete removes the object at path. S3 treats deletion of a missing
// key as a no-op, so the key is checked first to keep delete semantics
// uniform across backends.
func (a *Adapter) Delete(ctx context.Context, path string) error {
	if _, err := a.client.HeadObjectWithContext(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(path),
	}); err != nil {
		if isNotFound(err) {
			return backends.ErrNotFound
		}
		return a.backendErr("head", path, err)
	}

	if _, err := a.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(path),
	}); err != nil {
		return a.backendErr("delete", path, err)
	}

	a.logger.Debug("Object deleted from S3",
		zap.String("bucket", a.bucket),
		zap.String("key", path))

	return nil
}

// uploadWriter is the io.WriteCloser handed out by OpenWriter.
type uploadWriter struct {
	pw       *io.PipeWriter
	done     chan error
	finished atomic.Bool
}

func (w *uploadWriter) Write(p []byte) (int, error) {
	return w.pw.Write(p)
}

func (w *uploadWriter) Close() error {
	if !w.finished.CompareAndSwap(false, true) {
		return errors.New("upload already closed")
	}
	if err := w.pw.Close(); err != nil {
		return err
	}
	return <-w.done
}
